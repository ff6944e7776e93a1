package recipes

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
)

// Config holds the recipe definitions for the in-memory repository.
type Config struct {
	Recipes []*entities.Recipe
}

// Validate ensures the definitions are well formed.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	seen := make(map[string]bool, len(c.Recipes))
	for i, recipe := range c.Recipes {
		if recipe == nil {
			vb.Fieldf("Recipes", "recipe at index %d is nil", i)
			continue
		}
		if recipe.ID == "" {
			vb.Fieldf("Recipes", "recipe at index %d has no ID", i)
			continue
		}
		if seen[recipe.ID] {
			vb.Fieldf("Recipes", "duplicate recipe ID %q", recipe.ID)
		}
		seen[recipe.ID] = true
		if len(recipe.RequiredTags) == 0 {
			vb.Fieldf("Recipes", "recipe %q requires no ingredients", recipe.ID)
		}
		if recipe.ResultTemplateID == "" {
			vb.Fieldf("Recipes", "recipe %q has no result template", recipe.ID)
		}
	}
	return vb.Build()
}

// InMemoryRepository implements Repository over a fixed recipe list.
type InMemoryRepository struct {
	mu    sync.RWMutex
	order []*entities.Recipe
	byID  map[string]*entities.Recipe
}

// NewInMemory creates an in-memory recipe repository.
func NewInMemory(cfg *Config) (*InMemoryRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	repo := &InMemoryRepository{
		byID: make(map[string]*entities.Recipe, len(cfg.Recipes)),
	}
	for _, recipe := range cfg.Recipes {
		repo.order = append(repo.order, recipe)
		repo.byID[recipe.ID] = recipe
	}
	return repo, nil
}

var _ Repository = (*InMemoryRepository)(nil)

// Get retrieves a recipe by ID.
func (r *InMemoryRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.RecipeID == "" {
		return nil, errors.InvalidArgument("recipe ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	recipe, ok := r.byID[input.RecipeID]
	if !ok {
		return nil, errors.NotFoundf("recipe %q not found", input.RecipeID)
	}
	return &GetOutput{Recipe: recipe}, nil
}

// List retrieves all recipes in definition order.
func (r *InMemoryRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := &ListOutput{Recipes: make([]*entities.Recipe, len(r.order))}
	copy(out.Recipes, r.order)
	return out, nil
}
