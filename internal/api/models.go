package api

import (
	"github.com/phrazzld/hero-api/internal/domain"
)

// Request shapes. The validate tags are the declarative constraint model:
// pure data declared once per shape, consumed by the shared decode pipeline.

// HeroCreateRequest is the transient signup-style shape. It is validated
// but never persisted as-is; the Hero shape supersedes it.
type HeroCreateRequest struct {
	Email    string `json:"email"    validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=5"`
}

// HeroRequest defines the payload for creating a hero. The attributes are
// pointers so a present zero fails the range rule rather than the required
// rule: required rejects only an absent field.
type HeroRequest struct {
	Name         string `json:"name"         validate:"required,min=4"`
	Strength     *int   `json:"strength"     validate:"required,min=1,max=100"`
	Dexterity    *int   `json:"dexterity"    validate:"required,min=1,max=100"`
	Intellect    *int   `json:"intellect"    validate:"required,min=1,max=100"`
	IsInvincible *bool  `json:"isInvincible" validate:"required"`
}

// Hero converts the request into the domain entity. Validation guarantees
// every pointer field is set.
func (r HeroRequest) Hero() domain.Hero {
	hero := domain.Hero{Name: r.Name}
	if r.Strength != nil {
		hero.Strength = *r.Strength
	}
	if r.Dexterity != nil {
		hero.Dexterity = *r.Dexterity
	}
	if r.Intellect != nil {
		hero.Intellect = *r.Intellect
	}
	if r.IsInvincible != nil {
		hero.IsInvincible = *r.IsInvincible
	}
	return hero
}

// HeroUpdateRequest defines the payload for partially updating a hero.
// Every field is optional; each present field is validated against the
// same rules as HeroRequest.
type HeroUpdateRequest struct {
	Strength     *int  `json:"strength"     validate:"omitempty,min=1,max=100"`
	Dexterity    *int  `json:"dexterity"    validate:"omitempty,min=1,max=100"`
	Intellect    *int  `json:"intellect"    validate:"omitempty,min=1,max=100"`
	IsInvincible *bool `json:"isInvincible"`
}

// Patch converts the request into a domain patch carrying only the
// present fields.
func (r HeroUpdateRequest) Patch() domain.HeroPatch {
	return domain.HeroPatch{
		Strength:     r.Strength,
		Dexterity:    r.Dexterity,
		Intellect:    r.Intellect,
		IsInvincible: r.IsInvincible,
	}
}

// HeroResponse is the client-facing projection of a hero.
type HeroResponse struct {
	Name         string `json:"name"`
	Strength     int    `json:"strength"`
	Dexterity    int    `json:"dexterity"`
	Intellect    int    `json:"intellect"`
	IsInvincible bool   `json:"isInvincible"`
}

func heroToResponse(hero domain.Hero) HeroResponse {
	return HeroResponse{
		Name:         hero.Name,
		Strength:     hero.Strength,
		Dexterity:    hero.Dexterity,
		Intellect:    hero.Intellect,
		IsInvincible: hero.IsInvincible,
	}
}
