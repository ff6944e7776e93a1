// Package spells provides the repository for spell definitions. Spell
// content is read-only at runtime; sessions look definitions up by ID
// when casters learn or cast.
package spells

import (
	"context"

	"github.com/KirkDiggler/rogue-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=spellsmock github.com/KirkDiggler/rogue-api/internal/repositories/spells Repository

// GetInput contains parameters for retrieving a spell definition.
type GetInput struct {
	SpellID string
}

// GetOutput contains the retrieved spell definition.
type GetOutput struct {
	Spell entities.Spell
}

// ListInput contains parameters for listing spell definitions. A zero
// School lists everything.
type ListInput struct {
	School entities.SpellSchool
}

// ListOutput contains the listed spell definitions.
type ListOutput struct {
	Spells []entities.Spell
}

// Repository defines the interface for spell definition storage.
type Repository interface {
	// Get retrieves a spell definition by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List retrieves spell definitions, optionally filtered by school,
	// in definition order
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}
