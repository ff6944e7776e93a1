package templates

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rogue-api/internal/errors"
)

// Config holds the template definitions for the in-memory repository.
type Config struct {
	Templates []*Template
}

// Validate ensures the definitions are well formed: unique non-empty
// IDs, a name and glyph on every template, and parseable hit dice.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	seen := make(map[string]bool, len(c.Templates))
	for i, tpl := range c.Templates {
		if tpl == nil {
			vb.Fieldf("Templates", "template at index %d is nil", i)
			continue
		}
		if tpl.ID == "" {
			vb.Fieldf("Templates", "template at index %d has no ID", i)
			continue
		}
		if seen[tpl.ID] {
			vb.Fieldf("Templates", "duplicate template ID %q", tpl.ID)
		}
		seen[tpl.ID] = true
		if tpl.Name == "" {
			vb.Fieldf("Templates", "template %q has no name", tpl.ID)
		}
		if tpl.Glyph == "" {
			vb.Fieldf("Templates", "template %q has no glyph", tpl.ID)
		}
		if tpl.Health != nil && tpl.Health.HitDice != "" {
			if _, _, _, err := ParseHitDice(tpl.Health.HitDice); err != nil {
				vb.Fieldf("Templates", "template %q: bad hit dice %q", tpl.ID, tpl.Health.HitDice)
			}
		}
	}
	return vb.Build()
}

// InMemoryRepository implements Repository over a fixed template list.
type InMemoryRepository struct {
	mu    sync.RWMutex
	order []*Template
	byID  map[string]*Template
}

// NewInMemory creates an in-memory template repository.
func NewInMemory(cfg *Config) (*InMemoryRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	repo := &InMemoryRepository{
		byID: make(map[string]*Template, len(cfg.Templates)),
	}
	for _, tpl := range cfg.Templates {
		repo.order = append(repo.order, tpl)
		repo.byID[tpl.ID] = tpl
	}
	return repo, nil
}

var _ Repository = (*InMemoryRepository)(nil)

// Get retrieves a template by ID.
func (r *InMemoryRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.TemplateID == "" {
		return nil, errors.InvalidArgument("template ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	tpl, ok := r.byID[input.TemplateID]
	if !ok {
		return nil, errors.NotFoundf("template %q not found", input.TemplateID)
	}
	return &GetOutput{Template: tpl}, nil
}

// List retrieves templates in definition order, optionally filtered by
// kind.
func (r *InMemoryRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := &ListOutput{}
	for _, tpl := range r.order {
		if input.Kind != "" && tpl.Kind != input.Kind {
			continue
		}
		out.Templates = append(out.Templates, tpl)
	}
	return out, nil
}
