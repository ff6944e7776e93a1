// Package entities implements the component-entity model at the heart
// of the simulation. An Entity is an identity plus an open set of
// attached components keyed by capability; there is no role hierarchy.
// The player, an orc, a healing potion, and a pile of bones are all the
// same type, differentiated only by which components they carry.
package entities

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Capability identifies a component kind. An entity holds at most one
// component per capability.
type Capability string

// Capabilities of the components defined in this package.
const (
	CapabilityHealth         Capability = "health"
	CapabilityCombat         Capability = "combat"
	CapabilityLevel          Capability = "level"
	CapabilityMana           Capability = "mana"
	CapabilitySpellbook      Capability = "spellbook"
	CapabilityInventory      Capability = "inventory"
	CapabilityEquipment      Capability = "equipment"
	CapabilityEquipmentStats Capability = "equipment_stats"
	CapabilityStatusEffects  Capability = "status_effects"
	CapabilityCrafting       Capability = "crafting"
	CapabilityRecipeBook     Capability = "recipe_book"
	CapabilityItem           Capability = "item"
)

// Component is an attachable capability record.
type Component interface {
	Capability() Capability
}

// Kind values used for core.Entity typing, event payloads, and
// persistence. Kind never drives simulation behavior; systems query
// components instead.
const (
	KindPlayer  = "player"
	KindMonster = "monster"
	KindItem    = "item"
	KindScenery = "scenery"
)

// Entity is an identity (name, glyph), a position, a movement-blocking
// flag, and an open set of components. Entities are owned exclusively
// by the simulation that created them and are never shared across
// sessions.
type Entity struct {
	id   string
	kind string

	// Name and Glyph are presentation identity; systems read Name for
	// event payloads.
	Name  string
	Glyph rune

	// Position is mutated only through Move/MoveTo.
	Position Position

	// BlocksMovement marks the tile occupied. Cleared by callers when
	// an entity becomes a corpse.
	BlocksMovement bool

	components map[Capability]Component
}

var _ core.Entity = (*Entity)(nil)

// New creates an entity with no components attached.
func New(id, kind, name string, glyph rune, pos Position) *Entity {
	return &Entity{
		id:         id,
		kind:       kind,
		Name:       name,
		Glyph:      glyph,
		Position:   pos,
		components: make(map[Capability]Component),
	}
}

// GetID implements core.Entity.
func (e *Entity) GetID() string {
	return e.id
}

// GetType implements core.Entity.
func (e *Entity) GetType() string {
	return e.kind
}

// Attach adds a component, replacing any existing component of the
// same capability.
func (e *Entity) Attach(c Component) {
	e.components[c.Capability()] = c
}

// Get returns the component for a capability, or absent=false.
func (e *Entity) Get(cap Capability) (Component, bool) {
	c, ok := e.components[cap]
	return c, ok
}

// Has reports whether a component of the capability is attached.
func (e *Entity) Has(cap Capability) bool {
	_, ok := e.components[cap]
	return ok
}

// Detach removes the component for a capability, if present.
func (e *Entity) Detach(cap Capability) {
	delete(e.components, cap)
}

// Move offsets the position by (dx, dy). No collision checks happen
// here; the movement caller enforces walkability.
func (e *Entity) Move(dx, dy int) {
	e.Position = e.Position.Shift(dx, dy)
}

// MoveTo places the entity at pos. No collision checks.
func (e *Entity) MoveTo(pos Position) {
	e.Position = pos
}

// Typed accessors. These return nil when the component is absent so
// callers can branch on capability without a type assertion.

// Health returns the Health component or nil.
func (e *Entity) Health() *Health {
	if c, ok := e.components[CapabilityHealth]; ok {
		return c.(*Health)
	}
	return nil
}

// Combat returns the Combat component or nil.
func (e *Entity) Combat() *Combat {
	if c, ok := e.components[CapabilityCombat]; ok {
		return c.(*Combat)
	}
	return nil
}

// Level returns the Level component or nil.
func (e *Entity) Level() *Level {
	if c, ok := e.components[CapabilityLevel]; ok {
		return c.(*Level)
	}
	return nil
}

// Mana returns the Mana component or nil.
func (e *Entity) Mana() *Mana {
	if c, ok := e.components[CapabilityMana]; ok {
		return c.(*Mana)
	}
	return nil
}

// Spellbook returns the Spellbook component or nil.
func (e *Entity) Spellbook() *Spellbook {
	if c, ok := e.components[CapabilitySpellbook]; ok {
		return c.(*Spellbook)
	}
	return nil
}

// Inventory returns the Inventory component or nil.
func (e *Entity) Inventory() *Inventory {
	if c, ok := e.components[CapabilityInventory]; ok {
		return c.(*Inventory)
	}
	return nil
}

// Equipment returns the Equipment component or nil.
func (e *Entity) Equipment() *Equipment {
	if c, ok := e.components[CapabilityEquipment]; ok {
		return c.(*Equipment)
	}
	return nil
}

// EquipmentStats returns the EquipmentStats component or nil.
func (e *Entity) EquipmentStats() *EquipmentStats {
	if c, ok := e.components[CapabilityEquipmentStats]; ok {
		return c.(*EquipmentStats)
	}
	return nil
}

// StatusEffects returns the StatusEffects component or nil.
func (e *Entity) StatusEffects() *StatusEffects {
	if c, ok := e.components[CapabilityStatusEffects]; ok {
		return c.(*StatusEffects)
	}
	return nil
}

// Crafting returns the Crafting component or nil.
func (e *Entity) Crafting() *Crafting {
	if c, ok := e.components[CapabilityCrafting]; ok {
		return c.(*Crafting)
	}
	return nil
}

// RecipeBook returns the RecipeBook component or nil.
func (e *Entity) RecipeBook() *RecipeBook {
	if c, ok := e.components[CapabilityRecipeBook]; ok {
		return c.(*RecipeBook)
	}
	return nil
}

// Item returns the Item component or nil.
func (e *Entity) Item() *Item {
	if c, ok := e.components[CapabilityItem]; ok {
		return c.(*Item)
	}
	return nil
}

// MissingComponentError reports a derived-stat access on an entity
// lacking the backing component. This is a programmer fault (a
// malformed template or a system asking scenery for combat stats),
// never a runtime game state, so the strict accessors panic with it
// instead of returning an error.
type MissingComponentError struct {
	EntityName string
	Capability Capability
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("entity %q has no %s component", e.EntityName, e.Capability)
}

func (e *Entity) mustComponent(cap Capability) Component {
	c, ok := e.components[cap]
	if !ok {
		panic(&MissingComponentError{EntityName: e.Name, Capability: cap})
	}
	return c
}

// Strict derived-stat accessors. These fault on entities without the
// backing component; use the nil-returning accessors to branch on
// capability first.

// HP returns current hit points. Faults without a Health component.
func (e *Entity) HP() int {
	return e.mustComponent(CapabilityHealth).(*Health).HP()
}

// MaxHP returns maximum hit points. Faults without a Health component.
func (e *Entity) MaxHP() int {
	return e.mustComponent(CapabilityHealth).(*Health).MaxHP()
}

// Power returns base combat power, with any applied equipment bonuses
// already folded in. Faults without a Combat component.
func (e *Entity) Power() int {
	return e.mustComponent(CapabilityCombat).(*Combat).Power
}

// Defense returns base combat defense, with any applied equipment
// bonuses already folded in. Faults without a Combat component.
func (e *Entity) Defense() int {
	return e.mustComponent(CapabilityCombat).(*Combat).Defense
}

// XPValue returns the XP this entity's death is worth. Faults without
// a Level component.
func (e *Entity) XPValue() int {
	return e.mustComponent(CapabilityLevel).(*Level).XPValue
}
