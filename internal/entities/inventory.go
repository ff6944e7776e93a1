package entities

// DefaultInventoryCapacity is the carry limit used when no explicit
// capacity is configured, one item per letter of the alphabet.
const DefaultInventoryCapacity = 26

// Inventory holds carried item entities in pickup order.
type Inventory struct {
	items    []*Entity
	capacity int
}

// NewInventory creates an Inventory component with the given capacity.
// Capacities below one fall back to DefaultInventoryCapacity.
func NewInventory(capacity int) *Inventory {
	if capacity < 1 {
		capacity = DefaultInventoryCapacity
	}
	return &Inventory{capacity: capacity}
}

// Capability implements Component.
func (inv *Inventory) Capability() Capability { return CapabilityInventory }

// Capacity returns the carry limit.
func (inv *Inventory) Capacity() int { return inv.capacity }

// Count returns the number of carried items.
func (inv *Inventory) Count() int { return len(inv.items) }

// IsFull reports whether the inventory has no room left.
func (inv *Inventory) IsFull() bool { return len(inv.items) >= inv.capacity }

// Add appends an item. It returns false and keeps the inventory
// unchanged when full.
func (inv *Inventory) Add(item *Entity) bool {
	if inv.IsFull() {
		return false
	}
	inv.items = append(inv.items, item)
	return true
}

// Remove takes the first item with the given entity ID out of the
// inventory and returns it, or nil when absent. Order of the remaining
// items is preserved.
func (inv *Inventory) Remove(id string) *Entity {
	for i, item := range inv.items {
		if item.GetID() == id {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return item
		}
	}
	return nil
}

// Contains reports whether an item with the given entity ID is
// carried.
func (inv *Inventory) Contains(id string) bool {
	for _, item := range inv.items {
		if item.GetID() == id {
			return true
		}
	}
	return false
}

// Get returns the carried item with the given entity ID, or nil.
func (inv *Inventory) Get(id string) *Entity {
	for _, item := range inv.items {
		if item.GetID() == id {
			return item
		}
	}
	return nil
}

// Items returns the carried items in pickup order. The slice is a
// copy; the items themselves are shared.
func (inv *Inventory) Items() []*Entity {
	out := make([]*Entity, len(inv.items))
	copy(out, inv.items)
	return out
}
