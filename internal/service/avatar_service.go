package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/hero-api/internal/domain"
	"github.com/phrazzld/hero-api/internal/platform/filestore"
)

// AvatarStore defines the blob storage the avatar service depends on.
// It is implemented by filestore.Store.
type AvatarStore interface {
	Save(name string, src io.Reader) error
	Exists(name string) bool
	Open(name string) (io.ReadSeekCloser, time.Time, error)
}

// AvatarService associates binary avatars with heroes. Every operation is
// gated on the named hero existing; beyond that pre-check there is no
// transactional linkage between the hero record and the stored file.
type AvatarService struct {
	heroes  HeroService
	avatars AvatarStore
	logger  *slog.Logger
}

// NewAvatarService creates an AvatarService.
func NewAvatarService(heroes HeroService, avatars AvatarStore, logger *slog.Logger) *AvatarService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AvatarService{
		heroes:  heroes,
		avatars: avatars,
		logger:  logger.With(slog.String("component", "avatar_service")),
	}
}

// Upload stores the avatar for the named hero after confirming the hero
// exists. Returns the hero the avatar is now associated with.
func (s *AvatarService) Upload(ctx context.Context, name string, src io.Reader) (domain.Hero, error) {
	hero, err := s.heroes.Get(ctx, name)
	if err != nil {
		return domain.Hero{}, err
	}

	if err := s.avatars.Save(name, src); err != nil {
		if errors.Is(err, filestore.ErrInvalidName) {
			return domain.Hero{}, domain.NewValidationError(fmt.Sprintf("%s is not a valid hero name", name))
		}
		return domain.Hero{}, fmt.Errorf("failed to store avatar for %q: %w", name, err)
	}

	s.logger.Debug("avatar stored", slog.String("name", name))
	return hero, nil
}

// Open returns the stored avatar for the named hero.
// Returns store.ErrHeroNotFound when the hero is absent and
// filestore.ErrAvatarNotFound when the hero has no avatar.
func (s *AvatarService) Open(ctx context.Context, name string) (io.ReadSeekCloser, time.Time, error) {
	if _, err := s.heroes.Get(ctx, name); err != nil {
		return nil, time.Time{}, err
	}

	f, modTime, err := s.avatars.Open(name)
	if err != nil {
		if errors.Is(err, filestore.ErrInvalidName) {
			return nil, time.Time{}, domain.NewValidationError(fmt.Sprintf("%s is not a valid hero name", name))
		}
		return nil, time.Time{}, err
	}
	return f, modTime, nil
}
