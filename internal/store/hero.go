package store

import (
	"context"

	"github.com/phrazzld/hero-api/internal/domain"
)

// HeroStore defines the interface for hero data persistence. The service
// layer depends on this contract only and never on a concrete storage
// technology.
type HeroStore interface {
	// Create saves a new hero to the store.
	// Returns ErrHeroExists if a hero with the same name already exists.
	Create(ctx context.Context, hero *domain.Hero) error

	// GetByName retrieves a hero by its name.
	// Returns ErrHeroNotFound if the hero does not exist.
	GetByName(ctx context.Context, name string) (*domain.Hero, error)

	// List retrieves all heroes in insertion order.
	List(ctx context.Context) ([]domain.Hero, error)

	// Update persists the given hero's attributes. The name identifies the
	// record and is never changed.
	// Returns ErrHeroNotFound if the hero does not exist.
	Update(ctx context.Context, hero *domain.Hero) error
}
