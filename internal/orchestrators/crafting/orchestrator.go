// Package crafting implements tag-based recipe resolution.
//
// The resolver matches ingredients against recipes and spawns results,
// but it never touches an inventory: consumable ingredients are handed
// back to the caller for removal, keeping inventory ownership with the
// command layer.
package crafting

//go:generate mockgen -destination=mock/mock_service.go -package=craftingmock github.com/KirkDiggler/rogue-api/internal/orchestrators/crafting Service

import (
	"context"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/events"
	"github.com/KirkDiggler/rogue-api/internal/repositories/recipes"
)

// Auto-craft tries ingredient combinations of these sizes, in order.
// Larger combinations first, so a three-part recipe is preferred over
// a two-part one hiding inside it.
var autoCraftSizes = []int{3, 2}

// EntitySpawner creates a live entity from a content template. The
// game session's entity factory implements this.
type EntitySpawner interface {
	Spawn(ctx context.Context, templateID string, pos entities.Position) (*entities.Entity, error)
}

// Service defines the crafting operations.
type Service interface {
	// FindRecipe resolves the first recipe, in definition order, that
	// the ingredients satisfy. Every ingredient must carry crafting
	// tags for any recipe to match.
	FindRecipe(ctx context.Context, input *FindRecipeInput) (*FindRecipeOutput, error)

	// Craft matches the ingredients and spawns the result. The
	// consumable ingredients come back in the output for the caller to
	// remove; failure to match is an outcome, not an error.
	Craft(ctx context.Context, input *CraftInput) (*CraftOutput, error)

	// AutoCraft searches the given items for the first combination
	// that crafts, preferring larger combinations.
	AutoCraft(ctx context.Context, input *AutoCraftInput) (*AutoCraftOutput, error)
}

// Config holds the dependencies for the crafting orchestrator.
type Config struct {
	EventBus *events.Bus
	Recipes  recipes.Repository
	Spawner  EntitySpawner
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.Recipes == nil {
		vb.RequiredField("Recipes")
	}
	if c.Spawner == nil {
		vb.RequiredField("Spawner")
	}

	return vb.Build()
}

type orchestrator struct {
	bus     *events.Bus
	recipes recipes.Repository
	spawner EntitySpawner
}

// NewOrchestrator creates a new crafting orchestrator.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		bus:     cfg.EventBus,
		recipes: cfg.Recipes,
		spawner: cfg.Spawner,
	}, nil
}

func (o *orchestrator) FindRecipe(ctx context.Context, input *FindRecipeInput) (*FindRecipeOutput, error) {
	if input == nil || len(input.Ingredients) == 0 {
		return nil, errors.InvalidArgument("at least one ingredient is required")
	}

	tagSets := make([]entities.TagSet, 0, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		if ing == nil {
			return nil, errors.InvalidArgument("nil ingredient")
		}
		crafting := ing.Crafting()
		if crafting == nil {
			// A tagless ingredient can never fill a slot.
			return &FindRecipeOutput{}, nil
		}
		tagSets = append(tagSets, crafting.TagSet())
	}

	listed, err := o.recipes.List(ctx, recipes.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "listing recipes")
	}

	for _, recipe := range listed.Recipes {
		if recipe.Matches(tagSets) {
			return &FindRecipeOutput{Found: true, Recipe: recipe}, nil
		}
	}
	return &FindRecipeOutput{}, nil
}

func (o *orchestrator) Craft(ctx context.Context, input *CraftInput) (*CraftOutput, error) {
	if input == nil || len(input.Ingredients) == 0 {
		return nil, errors.InvalidArgument("at least one ingredient is required")
	}

	found, err := o.FindRecipe(ctx, &FindRecipeInput{Ingredients: input.Ingredients})
	if err != nil {
		return nil, err
	}
	if !found.Found {
		o.bus.Publish(events.CraftingAttemptEvent{
			CrafterName:     crafterName(input.Crafter),
			IngredientNames: ingredientNames(input.Ingredients),
			Success:         false,
		})
		return &CraftOutput{}, nil
	}
	recipe := found.Recipe

	pos, err := spawnPosition(input)
	if err != nil {
		return nil, err
	}

	result, err := o.spawner.Spawn(ctx, recipe.ResultTemplateID, pos)
	if err != nil {
		return nil, errors.Wrapf(err, "spawning %s", recipe.ResultTemplateID)
	}

	var consumed []*entities.Entity
	for _, ing := range input.Ingredients {
		if crafting := ing.Crafting(); crafting != nil && crafting.Consumable {
			consumed = append(consumed, ing)
		}
	}

	out := &CraftOutput{
		Crafted:  true,
		Recipe:   recipe,
		Result:   result,
		Consumed: consumed,
	}

	if input.Crafter != nil {
		if book := input.Crafter.RecipeBook(); book != nil && book.Discover(recipe.ID) {
			out.Discovered = true
		}
	}

	o.bus.Publish(events.CraftingAttemptEvent{
		CrafterName:     crafterName(input.Crafter),
		IngredientNames: ingredientNames(input.Ingredients),
		Success:         true,
		ResultName:      result.Name,
	})
	if out.Discovered {
		o.bus.Publish(events.RecipeDiscoveredEvent{
			RecipeID:       recipe.ID,
			RecipeName:     recipe.Name,
			DiscovererName: input.Crafter.Name,
		})
	}

	return out, nil
}

func (o *orchestrator) AutoCraft(ctx context.Context, input *AutoCraftInput) (*AutoCraftOutput, error) {
	if input == nil || input.Crafter == nil {
		return nil, errors.InvalidArgument("crafter entity is required")
	}

	var craftable []*entities.Entity
	for _, item := range input.Items {
		if item != nil && item.Crafting() != nil {
			craftable = append(craftable, item)
		}
	}

	for _, size := range autoCraftSizes {
		if len(craftable) < size {
			continue
		}
		var match *CraftOutput
		var matched []*entities.Entity
		err := forEachCombination(craftable, size, func(combo []*entities.Entity) (bool, error) {
			found, err := o.FindRecipe(ctx, &FindRecipeInput{Ingredients: combo})
			if err != nil || !found.Found {
				return false, err
			}
			crafted, err := o.Craft(ctx, &CraftInput{
				Ingredients: combo,
				Crafter:     input.Crafter,
				Position:    input.Position,
			})
			if err != nil {
				return false, err
			}
			match = crafted
			matched = append([]*entities.Entity(nil), combo...)
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		if match != nil {
			return &AutoCraftOutput{
				Crafted:     true,
				Ingredients: matched,
				Recipe:      match.Recipe,
				Result:      match.Result,
				Consumed:    match.Consumed,
				Discovered:  match.Discovered,
			}, nil
		}
	}

	return &AutoCraftOutput{}, nil
}

// spawnPosition picks where the crafted entity appears: the explicit
// position when given, otherwise the crafter's feet.
func spawnPosition(input *CraftInput) (entities.Position, error) {
	if input.Position != nil {
		return *input.Position, nil
	}
	if input.Crafter != nil {
		return input.Crafter.Position, nil
	}
	return entities.Position{}, errors.InvalidArgument("crafting needs a crafter or an explicit position")
}

// forEachCombination visits index-ordered combinations of the given
// size until the visitor reports done.
func forEachCombination(items []*entities.Entity, size int, visit func([]*entities.Entity) (bool, error)) error {
	combo := make([]*entities.Entity, 0, size)

	var walk func(start int) (bool, error)
	walk = func(start int) (bool, error) {
		if len(combo) == size {
			return visit(combo)
		}
		for i := start; i <= len(items)-(size-len(combo)); i++ {
			combo = append(combo, items[i])
			done, err := walk(i + 1)
			combo = combo[:len(combo)-1]
			if done || err != nil {
				return done, err
			}
		}
		return false, nil
	}

	_, err := walk(0)
	return err
}

func crafterName(crafter *entities.Entity) string {
	if crafter == nil {
		return ""
	}
	return crafter.Name
}

func ingredientNames(ingredients []*entities.Entity) []string {
	names := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		names = append(names, ing.Name)
	}
	return names
}
