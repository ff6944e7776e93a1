package crafting

import (
	"github.com/KirkDiggler/rogue-api/internal/entities"
)

// FindRecipeInput carries the candidate ingredients.
type FindRecipeInput struct {
	Ingredients []*entities.Entity
}

// FindRecipeOutput reports the first matching recipe, if any.
type FindRecipeOutput struct {
	Found  bool
	Recipe *entities.Recipe
}

// CraftInput asks to combine Ingredients. Position overrides where the
// result spawns; when nil the crafter's position is used.
type CraftInput struct {
	Ingredients []*entities.Entity
	Crafter     *entities.Entity
	Position    *entities.Position
}

// CraftOutput reports the craft. Consumed lists the ingredients the
// caller must now remove; Discovered is true the first time this
// crafter completes this recipe.
type CraftOutput struct {
	Crafted    bool
	Recipe     *entities.Recipe
	Result     *entities.Entity
	Consumed   []*entities.Entity
	Discovered bool
}

// AutoCraftInput searches Items for a craftable combination on behalf
// of Crafter.
type AutoCraftInput struct {
	Crafter  *entities.Entity
	Items    []*entities.Entity
	Position *entities.Position
}

// AutoCraftOutput reports the first combination that crafted, along
// with the same result fields a direct Craft returns.
type AutoCraftOutput struct {
	Crafted     bool
	Ingredients []*entities.Entity
	Recipe      *entities.Recipe
	Result      *entities.Entity
	Consumed    []*entities.Entity
	Discovered  bool
}
