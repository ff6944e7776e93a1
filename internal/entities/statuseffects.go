package entities

// EffectType names a status effect.
type EffectType string

// Known status effects. Power carries the per-type magnitude: tick
// damage for poison, attack bonus for strength, defense bonus for
// defense, XP bonus percentage for lucky. Confusion and invisibility
// ignore it.
const (
	EffectPoison       EffectType = "poison"
	EffectStrength     EffectType = "strength"
	EffectDefense      EffectType = "defense"
	EffectConfusion    EffectType = "confusion"
	EffectInvisibility EffectType = "invisibility"
	EffectGigantism    EffectType = "gigantism"
	EffectShrinking    EffectType = "shrinking"
	EffectLucky        EffectType = "lucky"
)

// Effect is one active status effect instance.
type Effect struct {
	Type     EffectType `json:"type"`
	Duration int        `json:"duration"`
	Power    int        `json:"power"`
}

// StatusEffects tracks active effects on an entity. At most one effect
// per type is active; reapplying merges by keeping the larger duration
// and the larger power. Iteration order is application order, so event
// emission stays deterministic across runs.
type StatusEffects struct {
	effects map[EffectType]*Effect
	order   []EffectType
}

// NewStatusEffects creates an empty StatusEffects component.
func NewStatusEffects() *StatusEffects {
	return &StatusEffects{effects: make(map[EffectType]*Effect)}
}

// Capability implements Component.
func (s *StatusEffects) Capability() Capability { return CapabilityStatusEffects }

// Add applies an effect. An effect of the same type already active is
// merged: the larger duration and larger power win. It returns the
// resulting effect and false when duration is not positive, in which
// case nothing is applied.
func (s *StatusEffects) Add(t EffectType, duration, power int) (Effect, bool) {
	if duration <= 0 {
		return Effect{}, false
	}
	if existing, ok := s.effects[t]; ok {
		if duration > existing.Duration {
			existing.Duration = duration
		}
		if power > existing.Power {
			existing.Power = power
		}
		return *existing, true
	}
	e := &Effect{Type: t, Duration: duration, Power: power}
	s.effects[t] = e
	s.order = append(s.order, t)
	return *e, true
}

// Has reports whether an effect of the type is active.
func (s *StatusEffects) Has(t EffectType) bool {
	_, ok := s.effects[t]
	return ok
}

// Get returns a copy of the active effect of the type.
func (s *StatusEffects) Get(t EffectType) (Effect, bool) {
	if e, ok := s.effects[t]; ok {
		return *e, true
	}
	return Effect{}, false
}

// Count returns the number of active effects.
func (s *StatusEffects) Count() int { return len(s.order) }

// All returns copies of the active effects in application order.
func (s *StatusEffects) All() []Effect {
	out := make([]Effect, 0, len(s.order))
	for _, t := range s.order {
		out = append(out, *s.effects[t])
	}
	return out
}

// TickDurations decrements every active effect's duration by one and
// removes those that reach zero, returning the expired effects in
// application order.
func (s *StatusEffects) TickDurations() []Effect {
	var expired []Effect
	remaining := s.order[:0]
	for _, t := range s.order {
		e := s.effects[t]
		e.Duration--
		if e.Duration <= 0 {
			expired = append(expired, *e)
			delete(s.effects, t)
			continue
		}
		remaining = append(remaining, t)
	}
	s.order = remaining
	return expired
}

// Remove drops an active effect immediately, reporting whether it was
// present.
func (s *StatusEffects) Remove(t EffectType) bool {
	if _, ok := s.effects[t]; !ok {
		return false
	}
	delete(s.effects, t)
	for i, existing := range s.order {
		if existing == t {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes all active effects.
func (s *StatusEffects) Clear() {
	s.effects = make(map[EffectType]*Effect)
	s.order = nil
}

// PowerModifier returns the total attack power contribution of active
// effects. Strength and gigantism both add their full power.
func (s *StatusEffects) PowerModifier() int {
	total := 0
	for _, t := range s.order {
		switch t {
		case EffectStrength, EffectGigantism:
			total += s.effects[t].Power
		}
	}
	return total
}

// DefenseModifier returns the total defense contribution of active
// effects. Defense and shrinking add their full power; gigantism adds
// half, rounded down.
func (s *StatusEffects) DefenseModifier() int {
	total := 0
	for _, t := range s.order {
		switch t {
		case EffectDefense, EffectShrinking:
			total += s.effects[t].Power
		case EffectGigantism:
			total += s.effects[t].Power / 2
		}
	}
	return total
}

// XPBonusPercent returns the percentage bonus applied to XP awards. A
// lucky effect's power is read as a percentage, so power 50 turns a
// 100 XP kill into 150.
func (s *StatusEffects) XPBonusPercent() int {
	if e, ok := s.effects[EffectLucky]; ok {
		return e.Power
	}
	return 0
}
