// Package gamestate provides persistence for session snapshots. A
// snapshot is the full serialized state of one running game: map,
// entities with their components, turn counter, and the RNG cursor
// needed to resume the exact random sequence.
package gamestate

import (
	"context"
	"time"

	"github.com/KirkDiggler/rogue-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=gamestatemock github.com/KirkDiggler/rogue-api/internal/repositories/gamestate Repository

// MapSnapshot is the serialized tile grid. Rows hold one string per
// row, '#' for wall and '.' for floor. Explored mirrors Rows with '*'
// for tiles the player has seen and ' ' for tiles they have not.
type MapSnapshot struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Rows     []string `json:"rows"`
	Explored []string `json:"explored,omitempty"`
}

// HealthSnapshot is serialized Health component state.
type HealthSnapshot struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// ManaSnapshot is serialized Mana component state.
type ManaSnapshot struct {
	Current int `json:"current"`
	Max     int `json:"max"`
	Regen   int `json:"regen"`
}

// StatusEffectsSnapshot is serialized StatusEffects state. Effects
// keep application order.
type StatusEffectsSnapshot struct {
	Effects []entities.Effect `json:"effects"`
}

// InventorySnapshot is serialized Inventory state. Carried items are
// referenced by entity ID and appear in the snapshot's entity list
// with HeldBy set.
type InventorySnapshot struct {
	Capacity int      `json:"capacity"`
	ItemIDs  []string `json:"item_ids"`
}

// EquipmentSnapshot is serialized Equipment state, slot name to worn
// item entity ID.
type EquipmentSnapshot struct {
	Worn map[string]string `json:"worn"`
}

// SpellbookSnapshot is serialized Spellbook state. Spells are restored
// from the spell repository by ID on load.
type SpellbookSnapshot struct {
	SpellIDs []string `json:"spell_ids"`
}

// RecipeBookSnapshot is serialized RecipeBook state.
type RecipeBookSnapshot struct {
	RecipeIDs []string `json:"recipe_ids"`
}

// CraftingSnapshot is serialized Crafting component state.
type CraftingSnapshot struct {
	Tags       []string `json:"tags"`
	Consumable bool     `json:"consumable"`
	Craftable  bool     `json:"craftable"`
}

// EntitySnapshot is one serialized entity with whichever component
// states it carries.
type EntitySnapshot struct {
	ID             string            `json:"id"`
	Kind           string            `json:"kind"`
	Name           string            `json:"name"`
	Glyph          string            `json:"glyph"`
	Position       entities.Position `json:"position"`
	BlocksMovement bool              `json:"blocks_movement,omitempty"`

	// HeldBy is the carrying or wearing entity's ID; empty means the
	// entity stands on the map.
	HeldBy string `json:"held_by,omitempty"`

	Health        *HealthSnapshot          `json:"health,omitempty"`
	Combat        *entities.Combat         `json:"combat,omitempty"`
	Level         *entities.Level          `json:"level,omitempty"`
	Mana          *ManaSnapshot            `json:"mana,omitempty"`
	StatusEffects *StatusEffectsSnapshot   `json:"status_effects,omitempty"`
	Inventory     *InventorySnapshot       `json:"inventory,omitempty"`
	Equipment     *EquipmentSnapshot       `json:"equipment,omitempty"`
	Spellbook     *SpellbookSnapshot       `json:"spellbook,omitempty"`
	RecipeBook    *RecipeBookSnapshot      `json:"recipe_book,omitempty"`
	Item          *entities.Item           `json:"item,omitempty"`
	Equippable    *entities.EquipmentStats `json:"equippable,omitempty"`
	Crafting      *CraftingSnapshot        `json:"crafting,omitempty"`
}

// Snapshot is the full serialized state of one session.
type Snapshot struct {
	SessionID   string           `json:"session_id"`
	SavedAt     time.Time        `json:"saved_at"`
	Turn        int              `json:"turn"`
	GameOver    bool             `json:"game_over"`
	RNGSeed     int64            `json:"rng_seed"`
	RNGPosition int64            `json:"rng_position"`
	Map         MapSnapshot      `json:"map"`
	PlayerID    string           `json:"player_id"`
	Entities    []EntitySnapshot `json:"entities"`
}

// SaveInput contains parameters for saving a snapshot.
type SaveInput struct {
	Snapshot *Snapshot
	// TTL overrides the default retention; zero keeps the default.
	TTL time.Duration
}

// SaveOutput contains the result of saving a snapshot.
type SaveOutput struct {
	ExpiresAt time.Time
}

// GetInput contains parameters for loading a snapshot.
type GetInput struct {
	SessionID string
}

// GetOutput contains the loaded snapshot.
type GetOutput struct {
	Snapshot *Snapshot
}

// DeleteInput contains parameters for deleting a snapshot.
type DeleteInput struct {
	SessionID string
}

// DeleteOutput contains the result of deleting a snapshot.
type DeleteOutput struct {
	Existed bool
}

// ListInput contains parameters for listing saved sessions.
type ListInput struct{}

// ListOutput contains the saved session IDs, sorted.
type ListOutput struct {
	SessionIDs []string
}

// Repository defines the interface for snapshot storage.
type Repository interface {
	// Save stores a snapshot with a TTL
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get loads a snapshot by session ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes a snapshot
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// List returns the IDs of saved sessions
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}
