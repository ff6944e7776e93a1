package entities

import (
	"encoding/json"
	"sort"
)

// TagSet is a set of crafting tags. It marshals as a sorted JSON
// array, which is the form recipe and template data files use.
type TagSet map[string]struct{}

// MarshalJSON implements json.Marshaler.
func (ts TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Tags())
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *TagSet) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}
	*ts = NewTagSet(tags...)
	return nil
}

// NewTagSet builds a TagSet from tag strings. Duplicates collapse.
func NewTagSet(tags ...string) TagSet {
	set := make(TagSet, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

// Contains reports whether the tag is in the set.
func (ts TagSet) Contains(tag string) bool {
	_, ok := ts[tag]
	return ok
}

// IsSubsetOf reports whether every tag in the set is also in other.
// The empty set is a subset of everything.
func (ts TagSet) IsSubsetOf(other TagSet) bool {
	for tag := range ts {
		if !other.Contains(tag) {
			return false
		}
	}
	return true
}

// Tags returns the tags in sorted order.
func (ts TagSet) Tags() []string {
	tags := make([]string, 0, len(ts))
	for t := range ts {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Len returns the number of tags.
func (ts TagSet) Len() int { return len(ts) }

// Crafting marks an entity as usable in crafting and carries its
// ingredient tags. Consumable ingredients are destroyed by a
// successful craft; Craftable entities can themselves be produced by a
// recipe.
type Crafting struct {
	tags       TagSet
	Consumable bool
	Craftable  bool
}

// NewCrafting creates a Crafting component with the given tags.
func NewCrafting(consumable, craftable bool, tags ...string) *Crafting {
	return &Crafting{tags: NewTagSet(tags...), Consumable: consumable, Craftable: craftable}
}

// Capability implements Component.
func (c *Crafting) Capability() Capability { return CapabilityCrafting }

// HasTag reports whether the ingredient carries the tag.
func (c *Crafting) HasTag(tag string) bool {
	return c.tags.Contains(tag)
}

// HasAllTags reports whether the ingredient carries every tag in
// required.
func (c *Crafting) HasAllTags(required TagSet) bool {
	return required.IsSubsetOf(c.tags)
}

// HasAnyTag reports whether the ingredient carries at least one of the
// given tags.
func (c *Crafting) HasAnyTag(tags ...string) bool {
	for _, t := range tags {
		if c.tags.Contains(t) {
			return true
		}
	}
	return false
}

// Tags returns the ingredient's tags in sorted order.
func (c *Crafting) Tags() []string {
	return c.tags.Tags()
}

// TagSet returns the ingredient's tags as a set, for recipe matching.
func (c *Crafting) TagSet() TagSet {
	return c.tags
}

// Recipe is a crafting recipe definition. RequiredTags has one TagSet
// per ingredient slot; an ingredient fills a slot when it carries
// every tag in that slot's set. Slot order does not constrain the
// order ingredients are supplied in.
type Recipe struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	RequiredTags     []TagSet `json:"required_tags"`
	ResultTemplateID string   `json:"result_template_id"`
	Description      string   `json:"description,omitempty"`
}

// Matches reports whether the ingredient tag sets satisfy the recipe.
// The ingredient count must equal the slot count and there must be a
// pairing of ingredients to slots where each slot's required tags are
// a subset of its ingredient's tags. Pairing is found by backtracking,
// so the answer does not depend on ingredient order.
func (r *Recipe) Matches(ingredients []TagSet) bool {
	if len(ingredients) != len(r.RequiredTags) {
		return false
	}
	return matchSlots(ingredients, r.RequiredTags)
}

func matchSlots(ingredients, required []TagSet) bool {
	if len(required) == 0 {
		return true
	}
	for i, ing := range ingredients {
		if !required[0].IsSubsetOf(ing) {
			continue
		}
		rest := make([]TagSet, 0, len(ingredients)-1)
		rest = append(rest, ingredients[:i]...)
		rest = append(rest, ingredients[i+1:]...)
		if matchSlots(rest, required[1:]) {
			return true
		}
	}
	return false
}

// RecipeBook tracks which recipes an entity has discovered.
type RecipeBook struct {
	discovered map[string]struct{}
}

// NewRecipeBook creates an empty RecipeBook component.
func NewRecipeBook() *RecipeBook {
	return &RecipeBook{discovered: make(map[string]struct{})}
}

// Capability implements Component.
func (rb *RecipeBook) Capability() Capability { return CapabilityRecipeBook }

// Discover records a recipe as known. It returns true only the first
// time the recipe is discovered.
func (rb *RecipeBook) Discover(recipeID string) bool {
	if _, ok := rb.discovered[recipeID]; ok {
		return false
	}
	rb.discovered[recipeID] = struct{}{}
	return true
}

// Knows reports whether a recipe has been discovered.
func (rb *RecipeBook) Knows(recipeID string) bool {
	_, ok := rb.discovered[recipeID]
	return ok
}

// Count returns the number of discovered recipes.
func (rb *RecipeBook) Count() int { return len(rb.discovered) }

// IDs returns the discovered recipe IDs in sorted order.
func (rb *RecipeBook) IDs() []string {
	ids := make([]string, 0, len(rb.discovered))
	for id := range rb.discovered {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
