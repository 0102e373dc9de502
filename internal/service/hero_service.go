package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/hero-api/internal/domain"
	"github.com/phrazzld/hero-api/internal/store"
)

// HeroService provides the hero CRUD operations.
type HeroService interface {
	// Create looks up the hero by name and inserts it only when absent.
	// The returned flag reports whether an insert happened; a repeated
	// create is a no-op that returns the stored record unchanged.
	Create(ctx context.Context, hero domain.Hero) (domain.Hero, bool, error)

	// List returns all heroes in insertion order.
	List(ctx context.Context) ([]domain.Hero, error)

	// Get retrieves a hero by name.
	// Returns store.ErrHeroNotFound when the hero does not exist; the
	// boundary layer decides how to surface that to the client.
	Get(ctx context.Context, name string) (domain.Hero, error)

	// Update merges the present patch fields into the stored hero and
	// persists the result. Returns store.ErrHeroNotFound when absent.
	Update(ctx context.Context, name string, patch domain.HeroPatch) (domain.Hero, error)
}

type heroService struct {
	heroes store.HeroStore
	logger *slog.Logger
}

// NewHeroService creates a HeroService backed by the given store.
func NewHeroService(heroes store.HeroStore, logger *slog.Logger) HeroService {
	if logger == nil {
		logger = slog.Default()
	}
	return &heroService{
		heroes: heroes,
		logger: logger.With(slog.String("component", "hero_service")),
	}
}

func (s *heroService) Create(ctx context.Context, hero domain.Hero) (domain.Hero, bool, error) {
	existing, err := s.heroes.GetByName(ctx, hero.Name)
	if err == nil {
		// Idempotent no-op: the stored version wins over the new payload.
		return *existing, false, nil
	}
	if !errors.Is(err, store.ErrHeroNotFound) {
		return domain.Hero{}, false, fmt.Errorf("failed to look up hero %q: %w", hero.Name, err)
	}

	if err := s.heroes.Create(ctx, &hero); err != nil {
		if errors.Is(err, store.ErrHeroExists) {
			// Lost a check-then-insert race against a concurrent create for
			// the same name. The winner's record is the stored version.
			s.logger.Debug("create raced with concurrent insert", slog.String("name", hero.Name))
			stored, getErr := s.heroes.GetByName(ctx, hero.Name)
			if getErr != nil {
				return domain.Hero{}, false, fmt.Errorf("failed to re-read hero %q after race: %w", hero.Name, getErr)
			}
			return *stored, false, nil
		}
		return domain.Hero{}, false, fmt.Errorf("failed to create hero %q: %w", hero.Name, err)
	}

	return hero, true, nil
}

func (s *heroService) List(ctx context.Context) ([]domain.Hero, error) {
	heroes, err := s.heroes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list heroes: %w", err)
	}
	return heroes, nil
}

func (s *heroService) Get(ctx context.Context, name string) (domain.Hero, error) {
	hero, err := s.heroes.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrHeroNotFound) {
			return domain.Hero{}, err
		}
		return domain.Hero{}, fmt.Errorf("failed to get hero %q: %w", name, err)
	}
	return *hero, nil
}

func (s *heroService) Update(ctx context.Context, name string, patch domain.HeroPatch) (domain.Hero, error) {
	hero, err := s.heroes.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrHeroNotFound) {
			return domain.Hero{}, err
		}
		return domain.Hero{}, fmt.Errorf("failed to get hero %q: %w", name, err)
	}

	patch.Apply(hero)

	if err := s.heroes.Update(ctx, hero); err != nil {
		return domain.Hero{}, fmt.Errorf("failed to update hero %q: %w", name, err)
	}

	return *hero, nil
}
