package entities

// ItemEffect describes what using a consumable item does.
type ItemEffect string

// Item use effects.
const (
	ItemEffectHeal        ItemEffect = "heal"
	ItemEffectDamage      ItemEffect = "damage"
	ItemEffectRestoreMana ItemEffect = "restore_mana"
	ItemEffectApplyStatus ItemEffect = "apply_effect"
)

// Item marks an entity as a usable consumable. Kind is the display
// category (potion, scroll). Amount parameterizes heal, damage, and
// mana effects; StatusType, Duration, and Power parameterize status
// application. NeedsTarget items require an explicit target entity and
// cannot be used on the user directly.
type Item struct {
	Kind        string     `json:"kind"`
	Effect      ItemEffect `json:"effect"`
	Amount      int        `json:"amount,omitempty"`
	StatusType  EffectType `json:"status_type,omitempty"`
	Duration    int        `json:"duration,omitempty"`
	Power       int        `json:"power,omitempty"`
	NeedsTarget bool       `json:"needs_target,omitempty"`
}

// Capability implements Component.
func (i *Item) Capability() Capability { return CapabilityItem }
