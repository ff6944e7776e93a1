package spells

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
)

// Config holds the spell definitions for the in-memory repository.
type Config struct {
	Spells []entities.Spell
}

// Validate ensures the definitions are well formed.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	seen := make(map[string]bool, len(c.Spells))
	for i, spell := range c.Spells {
		if spell.ID == "" {
			vb.Fieldf("Spells", "spell at index %d has no ID", i)
			continue
		}
		if seen[spell.ID] {
			vb.Fieldf("Spells", "duplicate spell ID %q", spell.ID)
		}
		seen[spell.ID] = true
	}
	return vb.Build()
}

// InMemoryRepository implements Repository over a fixed spell list.
type InMemoryRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]entities.Spell
}

// NewInMemory creates an in-memory spell repository. Listing order
// follows the order definitions were supplied in.
func NewInMemory(cfg *Config) (*InMemoryRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	repo := &InMemoryRepository{
		byID: make(map[string]entities.Spell, len(cfg.Spells)),
	}
	for _, spell := range cfg.Spells {
		repo.order = append(repo.order, spell.ID)
		repo.byID[spell.ID] = spell
	}
	return repo, nil
}

var _ Repository = (*InMemoryRepository)(nil)

// Get retrieves a spell definition by ID.
func (r *InMemoryRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.SpellID == "" {
		return nil, errors.InvalidArgument("spell ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	spell, ok := r.byID[input.SpellID]
	if !ok {
		return nil, errors.NotFoundf("spell %q not found", input.SpellID)
	}
	return &GetOutput{Spell: spell}, nil
}

// List retrieves spells in definition order, optionally filtered by
// school.
func (r *InMemoryRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := &ListOutput{}
	for _, id := range r.order {
		spell := r.byID[id]
		if input.School != "" && spell.School != input.School {
			continue
		}
		out.Spells = append(out.Spells, spell)
	}
	return out, nil
}
