package entities

// IsAlive reports whether the entity has a Health component with hit
// points above zero. Entities without Health are never alive, which
// keeps items and scenery out of combat and targeting.
func IsAlive(e *Entity) bool {
	if e == nil {
		return false
	}
	h := e.Health()
	return h != nil && h.IsAlive()
}

// IsPlayer reports whether the entity is the player.
func IsPlayer(e *Entity) bool {
	return e != nil && e.GetType() == KindPlayer
}

// IsMonster reports whether the entity is a hostile actor: it has
// Health and Combat, blocks movement, and is not the player.
func IsMonster(e *Entity) bool {
	if e == nil || IsPlayer(e) {
		return false
	}
	return e.Has(CapabilityHealth) && e.Has(CapabilityCombat) && e.BlocksMovement
}

// EffectivePower returns attack power after active status-effect
// modifiers. Equipment bonuses are already folded into the Combat
// component, so only status modifiers are added here.
func EffectivePower(e *Entity) int {
	power := e.Power()
	if se := e.StatusEffects(); se != nil {
		power += se.PowerModifier()
	}
	return power
}

// EffectiveDefense returns defense after active status-effect
// modifiers.
func EffectiveDefense(e *Entity) int {
	defense := e.Defense()
	if se := e.StatusEffects(); se != nil {
		defense += se.DefenseModifier()
	}
	return defense
}
