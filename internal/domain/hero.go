package domain

import (
	"fmt"
	"time"
)

// Attribute bounds shared by strength, dexterity and intellect.
const (
	MinAttribute = 1
	MaxAttribute = 100

	// MinNameLength is the minimum number of characters in a hero name.
	MinNameLength = 4
)

// Common hero validation errors.
var (
	ErrEmptyHeroName = fmt.Errorf("%w: hero name cannot be empty", ErrValidation)
	ErrNameTooShort  = fmt.Errorf(
		"%w: hero name must be at least %d characters long",
		ErrValidation,
		MinNameLength,
	)
	ErrAttributeOutOfRange = fmt.Errorf(
		"%w: attributes must be between %d and %d",
		ErrValidation,
		MinAttribute,
		MaxAttribute,
	)
)

// Hero represents a hero record. The name is the primary key and is
// immutable once the hero has been created.
type Hero struct {
	Name         string `json:"name"`
	Strength     int    `json:"strength"`
	Dexterity    int    `json:"dexterity"`
	Intellect    int    `json:"intellect"`
	IsInvincible bool   `json:"isInvincible"`

	// Storage lifecycle timestamps. DeletedAt exists at the storage layer
	// but no API operation exercises soft deletion.
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
	DeletedAt *time.Time `json:"-"`
}

// Validate checks if the Hero has valid data.
// Returns an error if any field fails validation.
func (h *Hero) Validate() error {
	if h.Name == "" {
		return ErrEmptyHeroName
	}
	if len(h.Name) < MinNameLength {
		return ErrNameTooShort
	}
	for _, attr := range []int{h.Strength, h.Dexterity, h.Intellect} {
		if attr < MinAttribute || attr > MaxAttribute {
			return ErrAttributeOutOfRange
		}
	}
	return nil
}

// HeroPatch carries a partial update for a hero. Nil fields are absent
// from the update payload and leave the stored value untouched.
type HeroPatch struct {
	Strength     *int
	Dexterity    *int
	Intellect    *int
	IsInvincible *bool
}

// IsEmpty reports whether the patch carries no fields at all.
func (p HeroPatch) IsEmpty() bool {
	return p.Strength == nil && p.Dexterity == nil && p.Intellect == nil && p.IsInvincible == nil
}

// Apply merges the present patch fields into the hero. The hero name is
// never touched.
func (p HeroPatch) Apply(h *Hero) {
	if p.Strength != nil {
		h.Strength = *p.Strength
	}
	if p.Dexterity != nil {
		h.Dexterity = *p.Dexterity
	}
	if p.Intellect != nil {
		h.Intellect = *p.Intellect
	}
	if p.IsInvincible != nil {
		h.IsInvincible = *p.IsInvincible
	}
}
