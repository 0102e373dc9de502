package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/hero-api/internal/api/shared"
	"github.com/phrazzld/hero-api/internal/domain"
	"github.com/phrazzld/hero-api/internal/platform/filestore"
	"github.com/phrazzld/hero-api/internal/platform/logger"
	"github.com/phrazzld/hero-api/internal/service"
	"github.com/phrazzld/hero-api/internal/store"
)

// maxAvatarBytes caps avatar uploads. Format validation is out of scope;
// only the size is bounded.
const maxAvatarBytes = 8 << 20

// HeroHandler handles hero-related HTTP requests.
type HeroHandler struct {
	heroes  service.HeroService
	avatars *service.AvatarService
	logger  *slog.Logger
}

// NewHeroHandler creates a new HeroHandler with the given dependencies.
func NewHeroHandler(
	heroes service.HeroService,
	avatars *service.AvatarService,
	log *slog.Logger,
) *HeroHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HeroHandler{
		heroes:  heroes,
		avatars: avatars,
		logger:  log.With(slog.String("component", "hero_handler")),
	}
}

// RegisterRoutes mounts the hero routes on the given router.
func (h *HeroHandler) RegisterRoutes(r chi.Router) {
	r.Post("/hero", h.Create)
	r.Get("/hero", h.List)
	r.Get("/hero/{name}", h.Get)
	r.Put("/hero/{name}", h.Update)
	r.Post("/hero/{name}/avatar", h.UploadAvatar)
	r.Get("/hero/{name}/avatar", h.GetAvatar)
}

// Create handles POST /hero requests. Creation is an idempotent upsert:
// inserting a new hero responds 201, repeating a create for an existing
// name responds 200 with the stored record and never overwrites it.
func (h *HeroHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req HeroRequest
	if err := shared.DecodeValidated(r, &req); err != nil {
		HandleError(w, r, err)
		return
	}

	hero, created, err := h.heroes.Create(r.Context(), req.Hero())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	log.Debug("hero create handled",
		slog.String("name", hero.Name),
		slog.Bool("created", created))
	shared.RespondWithJSON(w, r, status, heroToResponse(hero))
}

// List handles GET /hero requests.
func (h *HeroHandler) List(w http.ResponseWriter, r *http.Request) {
	heroes, err := h.heroes.List(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	responses := make([]HeroResponse, 0, len(heroes))
	for _, hero := range heroes {
		responses = append(responses, heroToResponse(hero))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Get handles GET /hero/{name} requests.
func (h *HeroHandler) Get(w http.ResponseWriter, r *http.Request) {
	name, err := pathName(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	hero, err := h.heroes.Get(r.Context(), name)
	if err != nil {
		HandleError(w, r, notFoundToValidation(err, name))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, heroToResponse(hero))
}

// Update handles PUT /hero/{name} requests. Only the fields present in the
// payload are merged into the stored record.
func (h *HeroHandler) Update(w http.ResponseWriter, r *http.Request) {
	name, err := pathName(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var req HeroUpdateRequest
	if err := shared.DecodeValidated(r, &req); err != nil {
		HandleError(w, r, err)
		return
	}

	hero, err := h.heroes.Update(r.Context(), name, req.Patch())
	if err != nil {
		HandleError(w, r, notFoundToValidation(err, name))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, heroToResponse(hero))
}

// UploadAvatar handles POST /hero/{name}/avatar requests. The upload is a
// multipart form with a single "avatar" file field and is accepted only
// when the named hero exists.
func (h *HeroHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	name, err := pathName(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	file, _, err := r.FormFile("avatar")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			HandleError(w, r, domain.NewValidationError(
				fmt.Sprintf("avatar file must not be larger than %d bytes", maxErr.Limit)))
			return
		}
		HandleError(w, r, domain.NewValidationError("avatar file is required"))
		return
	}
	defer func() { _ = file.Close() }()

	hero, err := h.avatars.Upload(r.Context(), name, file)
	if err != nil {
		HandleError(w, r, notFoundToValidation(err, name))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, heroToResponse(hero))
}

// GetAvatar handles GET /hero/{name}/avatar requests.
func (h *HeroHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	name, err := pathName(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	f, modTime, err := h.avatars.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, filestore.ErrAvatarNotFound) {
			HandleError(w, r, domain.NewValidationError(fmt.Sprintf("%s doesn't have an avatar", name)))
			return
		}
		HandleError(w, r, notFoundToValidation(err, name))
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Content-Type", "image/jpeg")
	http.ServeContent(w, r, name+".jpeg", modTime, f)
}

// pathName extracts the hero name path parameter. An empty name is a
// validation failure, never a lookup.
func pathName(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if name == "" {
		return "", domain.NewValidationError("name is required")
	}
	return name, nil
}

// notFoundToValidation converts a repository absence into the client-facing
// not-found convention: a 400 validation error carrying the single message
// "<name> doesn't exist". Other errors pass through unchanged.
func notFoundToValidation(err error, name string) error {
	if errors.Is(err, store.ErrHeroNotFound) {
		return domain.NewValidationError(fmt.Sprintf("%s doesn't exist", name))
	}
	return err
}
