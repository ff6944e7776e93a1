package entities

// Combat holds base attack and defense stats. Equipping an item folds
// its bonuses directly into these fields and unequipping subtracts
// them back out, so Power and Defense always reflect worn gear.
// Status-effect modifiers are NOT folded in; the combat resolver adds
// those at attack time.
type Combat struct {
	Power   int `json:"power"`
	Defense int `json:"defense"`
}

// NewCombat creates a Combat component.
func NewCombat(power, defense int) *Combat {
	return &Combat{Power: power, Defense: defense}
}

// Capability implements Component.
func (c *Combat) Capability() Capability { return CapabilityCombat }

// Level tracks progression state. XPValue is what this entity's death
// awards its killer; Level and XP track the entity's own growth.
type Level struct {
	Level   int `json:"level"`
	XP      int `json:"xp"`
	XPValue int `json:"xp_value"`
}

// NewLevel creates a Level component starting at the given level with
// zero accumulated XP.
func NewLevel(level, xpValue int) *Level {
	return &Level{Level: level, XPValue: xpValue}
}

// Capability implements Component.
func (l *Level) Capability() Capability { return CapabilityLevel }

// XPToNextLevel returns the threshold the entity's accumulated XP must
// reach to advance: next level squared times one hundred.
func (l *Level) XPToNextLevel() int {
	next := l.Level + 1
	return next * next * 100
}
