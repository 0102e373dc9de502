package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/hero-api/internal/domain"
	"github.com/phrazzld/hero-api/internal/store"
)

// MockHeroStore implements store.HeroStore for testing. The default
// implementation is an in-memory map preserving insertion order; function
// fields override individual operations when set.
type MockHeroStore struct {
	// Function fields for customizable behavior
	CreateFn    func(ctx context.Context, hero *domain.Hero) error
	GetByNameFn func(ctx context.Context, name string) (*domain.Hero, error)
	ListFn      func(ctx context.Context) ([]domain.Hero, error)
	UpdateFn    func(ctx context.Context, hero *domain.Hero) error

	// Errors returned by the default implementation when set
	CreateError error
	GetError    error
	ListError   error
	UpdateError error

	mu     sync.Mutex
	heroes map[string]*domain.Hero
	order  []string
}

// NewMockHeroStore creates a new mock store with initialized defaults.
func NewMockHeroStore() *MockHeroStore {
	return &MockHeroStore{
		heroes: make(map[string]*domain.Hero),
	}
}

// Create implements the HeroStore interface.
func (m *MockHeroStore) Create(ctx context.Context, hero *domain.Hero) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, hero)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.heroes[hero.Name]; exists {
		return store.ErrHeroExists
	}
	now := time.Now().UTC()
	hero.CreatedAt = now
	hero.UpdatedAt = now
	copied := *hero
	m.heroes[hero.Name] = &copied
	m.order = append(m.order, hero.Name)
	return nil
}

// GetByName implements the HeroStore interface.
func (m *MockHeroStore) GetByName(ctx context.Context, name string) (*domain.Hero, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}
	if m.GetError != nil {
		return nil, m.GetError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	hero, exists := m.heroes[name]
	if !exists {
		return nil, store.ErrHeroNotFound
	}
	copied := *hero
	return &copied, nil
}

// List implements the HeroStore interface.
func (m *MockHeroStore) List(ctx context.Context) ([]domain.Hero, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	heroes := make([]domain.Hero, 0, len(m.order))
	for _, name := range m.order {
		heroes = append(heroes, *m.heroes[name])
	}
	return heroes, nil
}

// Update implements the HeroStore interface.
func (m *MockHeroStore) Update(ctx context.Context, hero *domain.Hero) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, hero)
	}
	if m.UpdateError != nil {
		return m.UpdateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	stored, exists := m.heroes[hero.Name]
	if !exists {
		return store.ErrHeroNotFound
	}
	hero.CreatedAt = stored.CreatedAt
	hero.UpdatedAt = time.Now().UTC()
	copied := *hero
	m.heroes[hero.Name] = &copied
	return nil
}
