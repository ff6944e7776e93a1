// Package recipes provides the repository for crafting recipe
// definitions. Listing order is definition order, and callers rely on
// it: when supplied ingredients satisfy several recipes, the first
// listed recipe wins.
package recipes

import (
	"context"

	"github.com/KirkDiggler/rogue-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=recipesmock github.com/KirkDiggler/rogue-api/internal/repositories/recipes Repository

// GetInput contains parameters for retrieving a recipe.
type GetInput struct {
	RecipeID string
}

// GetOutput contains the retrieved recipe.
type GetOutput struct {
	Recipe *entities.Recipe
}

// ListInput contains parameters for listing recipes.
type ListInput struct{}

// ListOutput contains recipes in definition order.
type ListOutput struct {
	Recipes []*entities.Recipe
}

// Repository defines the interface for recipe definition storage.
type Repository interface {
	// Get retrieves a recipe by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List retrieves all recipes in definition order
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}
