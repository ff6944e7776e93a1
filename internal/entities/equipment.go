package entities

import "sort"

// Slot names an equipment slot.
type Slot string

// Equipment slots.
const (
	SlotWeapon Slot = "weapon"
	SlotArmor  Slot = "armor"
	SlotHelmet Slot = "helmet"
	SlotBoots  Slot = "boots"
	SlotGloves Slot = "gloves"
	SlotRing   Slot = "ring"
	SlotAmulet Slot = "amulet"
)

// AllSlots lists every slot in display order.
var AllSlots = []Slot{
	SlotWeapon,
	SlotArmor,
	SlotHelmet,
	SlotBoots,
	SlotGloves,
	SlotRing,
	SlotAmulet,
}

// ParseSlot returns the Slot for a string, or false for an unknown
// slot name.
func ParseSlot(s string) (Slot, bool) {
	for _, slot := range AllSlots {
		if string(slot) == s {
			return slot, true
		}
	}
	return "", false
}

// Equipment tracks worn items by slot. The bonus arithmetic lives in
// the equipment manager; this component only holds what occupies each
// slot.
type Equipment struct {
	worn map[Slot]*Entity
}

// NewEquipment creates an Equipment component with all slots empty.
func NewEquipment() *Equipment {
	return &Equipment{worn: make(map[Slot]*Entity)}
}

// Capability implements Component.
func (eq *Equipment) Capability() Capability { return CapabilityEquipment }

// Equip places an item in a slot and returns whatever previously
// occupied it, or nil.
func (eq *Equipment) Equip(slot Slot, item *Entity) *Entity {
	prev := eq.worn[slot]
	eq.worn[slot] = item
	return prev
}

// Unequip empties a slot and returns the removed item, or nil if the
// slot was already empty.
func (eq *Equipment) Unequip(slot Slot) *Entity {
	item := eq.worn[slot]
	delete(eq.worn, slot)
	return item
}

// Worn returns the item in a slot, or nil.
func (eq *Equipment) Worn(slot Slot) *Entity {
	return eq.worn[slot]
}

// IsWorn reports whether a slot is occupied.
func (eq *Equipment) IsWorn(slot Slot) bool {
	return eq.worn[slot] != nil
}

// Slots returns the occupied slots in alphabetical order.
func (eq *Equipment) Slots() []Slot {
	slots := make([]Slot, 0, len(eq.worn))
	for slot := range eq.worn {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}

// Count returns the number of occupied slots.
func (eq *Equipment) Count() int { return len(eq.worn) }

// EquipmentStats marks an entity as equippable and carries the bonuses
// it grants while worn.
type EquipmentStats struct {
	Slot         Slot `json:"slot"`
	PowerBonus   int  `json:"power_bonus"`
	DefenseBonus int  `json:"defense_bonus"`
	MaxHPBonus   int  `json:"max_hp_bonus"`
}

// Capability implements Component.
func (es *EquipmentStats) Capability() Capability { return CapabilityEquipmentStats }
