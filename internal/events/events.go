package events

// Type identifies an event kind on the bus.
type Type string

// Event types published by the simulation.
const (
	TypeCombat              Type = "combat"
	TypeDeath               Type = "death"
	TypeXPGain              Type = "xp_gain"
	TypeLevelUp             Type = "level_up"
	TypeHealing             Type = "healing"
	TypeItemPickup          Type = "item_pickup"
	TypeItemDrop            Type = "item_drop"
	TypeItemUse             Type = "item_use"
	TypeStatusEffectApplied Type = "status_effect_applied"
	TypeStatusEffectTick    Type = "status_effect_tick"
	TypeStatusEffectExpired Type = "status_effect_expired"
	TypeEquip               Type = "equip"
	TypeUnequip             Type = "unequip"
	TypeManaChanged         Type = "mana_changed"
	TypeSpellCast           Type = "spell_cast"
	TypeCraftingAttempt     Type = "crafting_attempt"
	TypeRecipeDiscovered    Type = "recipe_discovered"
)

// Event is an immutable record of a single state change. Payload fields
// are exported and JSON-tagged so the websocket layer can stream events
// without an extra conversion step.
type Event interface {
	Type() Type
}

// CombatEvent is published once per resolved attack, including attacks
// that dealt zero damage.
type CombatEvent struct {
	AttackerName string `json:"attacker_name"`
	DefenderName string `json:"defender_name"`
	Damage       int    `json:"damage"`
	DefenderDied bool   `json:"defender_died"`
}

// Type implements Event.
func (CombatEvent) Type() Type { return TypeCombat }

// DeathEvent is published when an entity dies, carrying the XP its
// death is worth.
type DeathEvent struct {
	EntityName     string `json:"entity_name"`
	XPValue        int    `json:"xp_value"`
	KilledByPlayer bool   `json:"killed_by_player"`
}

// Type implements Event.
func (DeathEvent) Type() Type { return TypeDeath }

// XPGainEvent is published when XP is awarded, after any bonuses.
type XPGainEvent struct {
	EntityName string `json:"entity_name"`
	XPGained   int    `json:"xp_gained"`
}

// Type implements Event.
func (XPGainEvent) Type() Type { return TypeXPGain }

// LevelUpEvent is published when an XP award crosses the level
// threshold.
type LevelUpEvent struct {
	EntityName      string `json:"entity_name"`
	NewLevel        int    `json:"new_level"`
	HPIncrease      int    `json:"hp_increase"`
	PowerIncrease   int    `json:"power_increase"`
	DefenseIncrease int    `json:"defense_increase"`
}

// Type implements Event.
func (LevelUpEvent) Type() Type { return TypeLevelUp }

// HealingEvent is published when an entity recovers hit points.
type HealingEvent struct {
	EntityName   string `json:"entity_name"`
	AmountHealed int    `json:"amount_healed"`
}

// Type implements Event.
func (HealingEvent) Type() Type { return TypeHealing }

// ItemPickupEvent is published when an entity picks an item up off the
// floor.
type ItemPickupEvent struct {
	EntityName string `json:"entity_name"`
	ItemName   string `json:"item_name"`
}

// Type implements Event.
func (ItemPickupEvent) Type() Type { return TypeItemPickup }

// ItemDropEvent is published when an entity drops a carried item onto
// its own tile.
type ItemDropEvent struct {
	EntityName string `json:"entity_name"`
	ItemName   string `json:"item_name"`
}

// Type implements Event.
func (ItemDropEvent) Type() Type { return TypeItemDrop }

// ItemUseEvent is published when an item is used, before its effect is
// applied.
type ItemUseEvent struct {
	EntityName string `json:"entity_name"`
	ItemName   string `json:"item_name"`
	ItemKind   string `json:"item_kind"`
}

// Type implements Event.
func (ItemUseEvent) Type() Type { return TypeItemUse }

// StatusEffectAppliedEvent is published when an effect lands on an
// entity, including a re-application that extended an existing effect.
type StatusEffectAppliedEvent struct {
	EntityName string `json:"entity_name"`
	EffectType string `json:"effect_type"`
	Duration   int    `json:"duration"`
	Power      int    `json:"power"`
}

// Type implements Event.
func (StatusEffectAppliedEvent) Type() Type { return TypeStatusEffectApplied }

// StatusEffectTickEvent is published once per active effect per
// processing pass, carrying the duration remaining after this tick.
type StatusEffectTickEvent struct {
	EntityName        string `json:"entity_name"`
	EffectType        string `json:"effect_type"`
	Power             int    `json:"power"`
	RemainingDuration int    `json:"remaining_duration"`
}

// Type implements Event.
func (StatusEffectTickEvent) Type() Type { return TypeStatusEffectTick }

// StatusEffectExpiredEvent is published when an effect's duration runs
// out or it is explicitly removed.
type StatusEffectExpiredEvent struct {
	EntityName string `json:"entity_name"`
	EffectType string `json:"effect_type"`
}

// Type implements Event.
func (StatusEffectExpiredEvent) Type() Type { return TypeStatusEffectExpired }

// EquipEvent is published after an item's bonuses are applied.
type EquipEvent struct {
	EntityName   string `json:"entity_name"`
	ItemName     string `json:"item_name"`
	Slot         string `json:"slot"`
	PowerBonus   int    `json:"power_bonus"`
	DefenseBonus int    `json:"defense_bonus"`
	MaxHPBonus   int    `json:"max_hp_bonus"`
}

// Type implements Event.
func (EquipEvent) Type() Type { return TypeEquip }

// UnequipEvent is published after an item's bonuses are removed,
// including the implicit unequip when a slot is swapped.
type UnequipEvent struct {
	EntityName string `json:"entity_name"`
	ItemName   string `json:"item_name"`
	Slot       string `json:"slot"`
}

// Type implements Event.
func (UnequipEvent) Type() Type { return TypeUnequip }

// ManaChangedEvent is published whenever current MP moves, from
// spending or regeneration.
type ManaChangedEvent struct {
	EntityName string `json:"entity_name"`
	OldMP      int    `json:"old_mp"`
	NewMP      int    `json:"new_mp"`
	MaxMP      int    `json:"max_mp"`
}

// Type implements Event.
func (ManaChangedEvent) Type() Type { return TypeManaChanged }

// SpellCastEvent is published after a successful cast, carrying the
// effect handler's outcome message.
type SpellCastEvent struct {
	CasterName    string `json:"caster_name"`
	SpellName     string `json:"spell_name"`
	TargetName    string `json:"target_name"`
	ManaCost      int    `json:"mana_cost"`
	EffectMessage string `json:"effect_message"`
}

// Type implements Event.
func (SpellCastEvent) Type() Type { return TypeSpellCast }

// CraftingAttemptEvent is published for every craft attempt, success or
// failure.
type CraftingAttemptEvent struct {
	CrafterName     string   `json:"crafter_name"`
	IngredientNames []string `json:"ingredient_names"`
	Success         bool     `json:"success"`
	ResultName      string   `json:"result_name,omitempty"`
}

// Type implements Event.
func (CraftingAttemptEvent) Type() Type { return TypeCraftingAttempt }

// RecipeDiscoveredEvent is published the first time a crafter
// successfully completes a recipe.
type RecipeDiscoveredEvent struct {
	RecipeID       string `json:"recipe_id"`
	RecipeName     string `json:"recipe_name"`
	DiscovererName string `json:"discoverer_name"`
}

// Type implements Event.
func (RecipeDiscoveredEvent) Type() Type { return TypeRecipeDiscovered }
