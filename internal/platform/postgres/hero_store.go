package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/phrazzld/hero-api/internal/domain"
	"github.com/phrazzld/hero-api/internal/store"
)

// uniqueViolationCode is the PostgreSQL unique violation error code. The
// heroes primary key makes the name the uniqueness constraint used to close
// the check-then-insert race on create.
const uniqueViolationCode = "23505"

// HeroStore implements the store.HeroStore interface using a PostgreSQL
// database as the storage backend.
type HeroStore struct {
	db *sql.DB
}

// NewHeroStore creates a PostgreSQL implementation of the HeroStore
// interface. It accepts a database connection that should be initialized
// and managed by the caller.
func NewHeroStore(db *sql.DB) *HeroStore {
	return &HeroStore{db: db}
}

var _ store.HeroStore = (*HeroStore)(nil)

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// Create implements store.HeroStore.Create.
func (s *HeroStore) Create(ctx context.Context, hero *domain.Hero) error {
	if err := hero.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO heroes (name, strength, dexterity, intellect, is_invincible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := s.db.QueryRowContext(ctx, query,
		hero.Name, hero.Strength, hero.Dexterity, hero.Intellect, hero.IsInvincible,
	).Scan(&hero.CreatedAt, &hero.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrHeroExists
		}
		return fmt.Errorf("failed to insert hero: %w", err)
	}
	return nil
}

// GetByName implements store.HeroStore.GetByName.
func (s *HeroStore) GetByName(ctx context.Context, name string) (*domain.Hero, error) {
	query := `
		SELECT name, strength, dexterity, intellect, is_invincible, created_at, updated_at, deleted_at
		FROM heroes
		WHERE name = $1 AND deleted_at IS NULL`

	var hero domain.Hero
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&hero.Name, &hero.Strength, &hero.Dexterity, &hero.Intellect,
		&hero.IsInvincible, &hero.CreatedAt, &hero.UpdatedAt, &hero.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrHeroNotFound
		}
		return nil, fmt.Errorf("failed to get hero: %w", err)
	}
	return &hero, nil
}

// List implements store.HeroStore.List.
func (s *HeroStore) List(ctx context.Context) ([]domain.Hero, error) {
	query := `
		SELECT name, strength, dexterity, intellect, is_invincible, created_at, updated_at, deleted_at
		FROM heroes
		WHERE deleted_at IS NULL
		ORDER BY created_at, name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list heroes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var heroes []domain.Hero
	for rows.Next() {
		var hero domain.Hero
		if err := rows.Scan(
			&hero.Name, &hero.Strength, &hero.Dexterity, &hero.Intellect,
			&hero.IsInvincible, &hero.CreatedAt, &hero.UpdatedAt, &hero.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan hero row: %w", err)
		}
		heroes = append(heroes, hero)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hero rows: %w", err)
	}
	return heroes, nil
}

// Update implements store.HeroStore.Update. The name identifies the record
// and is never changed.
func (s *HeroStore) Update(ctx context.Context, hero *domain.Hero) error {
	if err := hero.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE heroes
		SET strength = $2, dexterity = $3, intellect = $4, is_invincible = $5, updated_at = NOW()
		WHERE name = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := s.db.QueryRowContext(ctx, query,
		hero.Name, hero.Strength, hero.Dexterity, hero.Intellect, hero.IsInvincible,
	).Scan(&hero.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrHeroNotFound
		}
		return fmt.Errorf("failed to update hero: %w", err)
	}
	return nil
}
