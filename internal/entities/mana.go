package entities

// Mana tracks the resource pool for spell casting, with the same
// clamped-mutation shape as Health.
type Mana struct {
	current int
	max     int
	regen   int
}

// NewMana creates a Mana component at full pool with the given
// per-turn regeneration rate.
func NewMana(max, regen int) *Mana {
	return &Mana{current: max, max: max, regen: regen}
}

// Capability implements Component.
func (m *Mana) Capability() Capability { return CapabilityMana }

// MP returns current mana points.
func (m *Mana) MP() int { return m.current }

// MaxMP returns maximum mana points.
func (m *Mana) MaxMP() int { return m.max }

// RegenRate returns mana restored per upkeep tick.
func (m *Mana) RegenRate() int { return m.regen }

// HasMana reports whether the pool covers a cost.
func (m *Mana) HasMana(cost int) bool { return m.current >= cost }

// SetMP sets current mana, clamped to [0, max].
func (m *Mana) SetMP(mp int) {
	m.current = clamp(mp, 0, m.max)
}

// Consume deducts cost from the pool. It returns false and deducts
// nothing when the pool cannot cover the full cost.
func (m *Mana) Consume(cost int) bool {
	if cost < 0 || m.current < cost {
		return false
	}
	m.current -= cost
	return true
}

// Restore adds up to amount mana and returns how much was actually
// added after clamping at max.
func (m *Mana) Restore(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := m.current
	m.current = clamp(m.current+amount, 0, m.max)
	return m.current - before
}

// Regenerate applies one upkeep tick of regeneration and returns how
// much mana was actually restored.
func (m *Mana) Regenerate() int {
	return m.Restore(m.regen)
}
