package entities

// Health tracks current and maximum hit points. Current is always
// kept within [0, max]; mutation goes through the clamping methods so
// no caller can push it out of range.
type Health struct {
	current int
	max     int
}

// NewHealth creates a Health component at full hit points.
func NewHealth(max int) *Health {
	return &Health{current: max, max: max}
}

// Capability implements Component.
func (h *Health) Capability() Capability { return CapabilityHealth }

// HP returns current hit points.
func (h *Health) HP() int { return h.current }

// MaxHP returns maximum hit points.
func (h *Health) MaxHP() int { return h.max }

// IsAlive reports whether current hit points are above zero.
func (h *Health) IsAlive() bool { return h.current > 0 }

// SetHP sets current hit points, clamped to [0, max].
func (h *Health) SetHP(hp int) {
	h.current = clamp(hp, 0, h.max)
}

// SetMaxHP sets maximum hit points and re-clamps current into the new
// range. Max never drops below 1.
func (h *Health) SetMaxHP(max int) {
	if max < 1 {
		max = 1
	}
	h.max = max
	h.current = clamp(h.current, 0, h.max)
}

// Heal restores up to amount hit points and returns how many were
// actually restored after clamping at max. Negative amounts heal
// nothing.
func (h *Health) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := h.current
	h.current = clamp(h.current+amount, 0, h.max)
	return h.current - before
}

// TakeDamage removes up to amount hit points and returns how many were
// actually removed after clamping at zero. Negative amounts remove
// nothing.
func (h *Health) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := h.current
	h.current = clamp(h.current-amount, 0, h.max)
	return before - h.current
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
