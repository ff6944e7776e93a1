package magic

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/statuseffect"
)

// DefaultBuffDuration is how long the buff handler's strength effect
// lasts when no duration is configured.
const DefaultBuffDuration = 10

// EffectResult is what applying a spell effect did. Success false with
// a message is a valid outcome (healing at full health), not a fault.
type EffectResult struct {
	Success     bool
	Message     string
	DamageDealt int
	HealingDone int
	TargetDied  bool
}

// EffectHandler applies one spell's effect to a target. Handlers are
// registered per spell ID and receive the spell's power value.
type EffectHandler interface {
	Apply(ctx context.Context, caster, target *entities.Entity, power int) EffectResult
}

// DamageHandler deals the spell's power as direct damage, ignoring
// defense.
type DamageHandler struct{}

// NewDamageHandler creates a DamageHandler.
func NewDamageHandler() *DamageHandler { return &DamageHandler{} }

// Apply implements EffectHandler.
func (h *DamageHandler) Apply(ctx context.Context, caster, target *entities.Entity, power int) EffectResult {
	health := target.Health()
	if health == nil {
		return EffectResult{
			Message: fmt.Sprintf("%s cannot be harmed!", target.Name),
		}
	}

	dealt := health.TakeDamage(power)
	died := !health.IsAlive()

	var message string
	if died {
		message = fmt.Sprintf("%s's spell kills %s!", caster.Name, target.Name)
	} else {
		message = fmt.Sprintf("%s's spell hits %s for %d damage!", caster.Name, target.Name, dealt)
	}

	return EffectResult{
		Success:     true,
		Message:     message,
		DamageDealt: dealt,
		TargetDied:  died,
	}
}

// HealHandler restores the spell's power as hit points.
type HealHandler struct{}

// NewHealHandler creates a HealHandler.
func NewHealHandler() *HealHandler { return &HealHandler{} }

// Apply implements EffectHandler.
func (h *HealHandler) Apply(ctx context.Context, caster, target *entities.Entity, power int) EffectResult {
	health := target.Health()
	if health == nil {
		return EffectResult{
			Message: fmt.Sprintf("%s cannot be healed!", target.Name),
		}
	}

	healed := health.Heal(power)
	if healed == 0 {
		return EffectResult{
			Message: fmt.Sprintf("%s is already at full health!", target.Name),
		}
	}

	var message string
	if caster == target {
		message = fmt.Sprintf("%s heals for %d HP!", caster.Name, healed)
	} else {
		message = fmt.Sprintf("%s heals %s for %d HP!", caster.Name, target.Name, healed)
	}

	return EffectResult{
		Success:     true,
		Message:     message,
		HealingDone: healed,
	}
}

// BuffHandler grants a timed strength effect worth the spell's power,
// rather than permanently rewriting combat stats.
type BuffHandler struct {
	effects  statuseffect.Service
	duration int
}

// NewBuffHandler creates a BuffHandler backed by the status effect
// engine. A duration of zero or less falls back to
// DefaultBuffDuration.
func NewBuffHandler(effects statuseffect.Service, duration int) *BuffHandler {
	if duration <= 0 {
		duration = DefaultBuffDuration
	}
	return &BuffHandler{effects: effects, duration: duration}
}

// Apply implements EffectHandler.
func (h *BuffHandler) Apply(ctx context.Context, caster, target *entities.Entity, power int) EffectResult {
	out, err := h.effects.Apply(ctx, &statuseffect.ApplyInput{
		Target:   target,
		Type:     entities.EffectStrength,
		Duration: h.duration,
		Power:    power,
	})
	if err != nil || !out.Applied {
		return EffectResult{
			Message: fmt.Sprintf("The spell washes over %s with no effect.", target.Name),
		}
	}

	var message string
	if caster == target {
		message = fmt.Sprintf("%s feels empowered! (+%d power)", caster.Name, power)
	} else {
		message = fmt.Sprintf("%s empowers %s! (+%d power)", caster.Name, target.Name, power)
	}

	return EffectResult{
		Success: true,
		Message: message,
	}
}

// StatusHandler applies an arbitrary timed effect, for spells like
// confusion or stoneskin whose whole point is the status itself.
type StatusHandler struct {
	effects  statuseffect.Service
	effect   entities.EffectType
	duration int
	verb     string
}

// NewStatusHandler creates a StatusHandler applying the given effect
// type for duration turns. verb completes the cast message, as in
// "Orc looks confused!".
func NewStatusHandler(effects statuseffect.Service, effect entities.EffectType, duration int, verb string) *StatusHandler {
	return &StatusHandler{
		effects:  effects,
		effect:   effect,
		duration: duration,
		verb:     verb,
	}
}

// Apply implements EffectHandler.
func (h *StatusHandler) Apply(ctx context.Context, caster, target *entities.Entity, power int) EffectResult {
	out, err := h.effects.Apply(ctx, &statuseffect.ApplyInput{
		Target:   target,
		Type:     h.effect,
		Duration: h.duration,
		Power:    power,
	})
	if err != nil || !out.Applied {
		return EffectResult{
			Message: fmt.Sprintf("The spell washes over %s with no effect.", target.Name),
		}
	}

	return EffectResult{
		Success: true,
		Message: fmt.Sprintf("%s %s!", target.Name, h.verb),
	}
}
