package equipment

import (
	"github.com/KirkDiggler/rogue-api/internal/entities"
)

// EquipInput asks to equip Item on Owner in the item's own slot.
type EquipInput struct {
	Owner *entities.Entity
	Item  *entities.Entity
}

// EquipOutput reports the result. When Equipped is false, Reason says
// why in player-facing words. Previous carries the item swapped out of
// the slot, or nil.
type EquipOutput struct {
	Equipped bool
	Reason   string
	Previous *entities.Entity
}

// UnequipInput asks to empty a slot on Owner.
type UnequipInput struct {
	Owner *entities.Entity
	Slot  entities.Slot
}

// UnequipOutput carries the removed item, or nil if the slot was
// already empty.
type UnequipOutput struct {
	Item *entities.Entity
}
