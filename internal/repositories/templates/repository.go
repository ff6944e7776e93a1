// Package templates provides the repository for entity templates, the
// data-driven definitions every spawnable entity (player, monsters,
// items, scenery) is assembled from.
package templates

import (
	"context"
	"regexp"
	"strconv"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=templatesmock github.com/KirkDiggler/rogue-api/internal/repositories/templates Repository

// HealthSpec describes a template's Health component. MaxHP is the
// fixed maximum; HitDice, when set, replaces it with a rolled value at
// spawn (notation like "3d8+2").
type HealthSpec struct {
	MaxHP   int    `json:"max_hp"`
	HitDice string `json:"hit_dice,omitempty"`
}

// ManaSpec describes a template's Mana component.
type ManaSpec struct {
	MaxMP int `json:"max_mp"`
	Regen int `json:"regen"`
}

// InventorySpec describes a template's Inventory component.
type InventorySpec struct {
	Capacity int `json:"capacity"`
}

// CraftingSpec describes a template's Crafting component.
type CraftingSpec struct {
	Tags       []string `json:"tags"`
	Consumable bool     `json:"consumable"`
	Craftable  bool     `json:"craftable"`
}

// Template is a spawnable entity definition. Component specs are
// optional; absent specs mean the component is not attached.
type Template struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Glyph          string `json:"glyph"`
	Kind           string `json:"kind"`
	BlocksMovement bool   `json:"blocks_movement,omitempty"`

	Health        *HealthSpec              `json:"health,omitempty"`
	Combat        *entities.Combat         `json:"combat,omitempty"`
	Level         *entities.Level          `json:"level,omitempty"`
	Mana          *ManaSpec                `json:"mana,omitempty"`
	Inventory     *InventorySpec           `json:"inventory,omitempty"`
	Item          *entities.Item           `json:"item,omitempty"`
	Equippable    *entities.EquipmentStats `json:"equippable,omitempty"`
	Crafting      *CraftingSpec            `json:"crafting,omitempty"`
	KnownSpells   []string                 `json:"known_spells,omitempty"`
	Equipment     bool                     `json:"equipment,omitempty"`
	StatusEffects bool                     `json:"status_effects,omitempty"`
	RecipeBook    bool                     `json:"recipe_book,omitempty"`
}

// GlyphRune returns the template's display glyph as a rune, '?' when
// the template carries none.
func (t *Template) GlyphRune() rune {
	for _, r := range t.Glyph {
		return r
	}
	return '?'
}

// hitDicePattern matches notation like "3d8", "1d10+2", "2d6-1".
var hitDicePattern = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?$`)

// ParseHitDice splits hit-dice notation into count, die size, and
// modifier. Content validation and the spawn factory share this.
func ParseHitDice(notation string) (count, size, modifier int, err error) {
	matches := hitDicePattern.FindStringSubmatch(notation)
	if matches == nil {
		return 0, 0, 0, errors.InvalidArgumentf("invalid hit dice notation %q", notation)
	}

	count, _ = strconv.Atoi(matches[1])
	size, _ = strconv.Atoi(matches[2])
	if matches[3] != "" {
		modifier, _ = strconv.Atoi(matches[3])
	}
	if count < 1 || size < 2 {
		return 0, 0, 0, errors.InvalidArgumentf("invalid hit dice notation %q", notation)
	}
	return count, size, modifier, nil
}

// GetInput contains parameters for retrieving a template.
type GetInput struct {
	TemplateID string
}

// GetOutput contains the retrieved template.
type GetOutput struct {
	Template *Template
}

// ListInput contains parameters for listing templates. A zero Kind
// lists everything.
type ListInput struct {
	Kind string
}

// ListOutput contains templates in definition order.
type ListOutput struct {
	Templates []*Template
}

// Repository defines the interface for template storage.
type Repository interface {
	// Get retrieves a template by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List retrieves templates, optionally filtered by kind, in
	// definition order
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}
