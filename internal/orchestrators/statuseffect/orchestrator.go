// Package statuseffect implements the status effect engine: applying
// timed effects to entities, running their per-turn behavior, and
// expiring them.
//
// Effect processing order is part of the engine's contract. For each
// active effect, per-tick behavior runs first (today only poison deals
// damage); a death from tick damage stops the pass immediately, clears
// every remaining effect, and skips duration decrements for that turn.
// Only when the entity survives the pass are durations decremented and
// expirations emitted.
package statuseffect

//go:generate mockgen -destination=mock/mock_service.go -package=statuseffectmock github.com/KirkDiggler/rogue-api/internal/orchestrators/statuseffect Service

import (
	"context"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/events"
)

// Service defines the status effect operations.
type Service interface {
	// Apply puts an effect on an entity, attaching a StatusEffects
	// component if it has none. Reapplying an active effect type merges
	// by keeping the larger duration and power.
	Apply(ctx context.Context, input *ApplyInput) (*ApplyOutput, error)

	// Process runs one turn of effect behavior on an entity: tick
	// damage, tick events, duration decrements, expirations.
	Process(ctx context.Context, input *ProcessInput) (*ProcessOutput, error)

	// Remove strips one effect immediately, emitting an expired event
	// if it was active.
	Remove(ctx context.Context, input *RemoveInput) (*RemoveOutput, error)

	// Clear strips every effect without emitting expirations, the same
	// silent wipe a death performs.
	Clear(ctx context.Context, input *ClearInput) (*ClearOutput, error)

	// StatModifiers aggregates the stat contributions of an entity's
	// active effects. Pure read.
	StatModifiers(ctx context.Context, input *StatModifiersInput) (*StatModifiersOutput, error)
}

// Config holds the dependencies for the status effect orchestrator.
type Config struct {
	EventBus *events.Bus
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}

	return vb.Build()
}

type orchestrator struct {
	bus *events.Bus
}

// NewOrchestrator creates a new status effect orchestrator.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		bus: cfg.EventBus,
	}, nil
}

func (o *orchestrator) Apply(ctx context.Context, input *ApplyInput) (*ApplyOutput, error) {
	if input == nil || input.Target == nil {
		return nil, errors.InvalidArgument("target entity is required")
	}
	if input.Type == "" {
		return nil, errors.InvalidArgument("effect type is required")
	}

	effects := input.Target.StatusEffects()
	if effects == nil {
		effects = entities.NewStatusEffects()
		input.Target.Attach(effects)
	}

	applied, ok := effects.Add(input.Type, input.Duration, input.Power)
	if !ok {
		return &ApplyOutput{}, nil
	}

	o.bus.Publish(events.StatusEffectAppliedEvent{
		EntityName: input.Target.Name,
		EffectType: string(input.Type),
		Duration:   input.Duration,
		Power:      input.Power,
	})

	return &ApplyOutput{
		Applied: true,
		Effect:  applied,
	}, nil
}

func (o *orchestrator) Process(ctx context.Context, input *ProcessInput) (*ProcessOutput, error) {
	if input == nil || input.Target == nil {
		return nil, errors.InvalidArgument("target entity is required")
	}

	effects := input.Target.StatusEffects()
	if effects == nil || effects.Count() == 0 {
		return &ProcessOutput{}, nil
	}

	for _, effect := range effects.All() {
		if o.applyTickBehavior(input.Target, effect) {
			// Tick damage killed the entity. Remaining effects never
			// run and durations never decrement on a corpse.
			effects.Clear()
			return &ProcessOutput{Died: true}, nil
		}

		o.bus.Publish(events.StatusEffectTickEvent{
			EntityName:        input.Target.Name,
			EffectType:        string(effect.Type),
			Power:             effect.Power,
			RemainingDuration: effect.Duration - 1,
		})
	}

	expired := effects.TickDurations()
	for _, effect := range expired {
		o.bus.Publish(events.StatusEffectExpiredEvent{
			EntityName: input.Target.Name,
			EffectType: string(effect.Type),
		})
	}

	return &ProcessOutput{Expired: expired}, nil
}

// applyTickBehavior runs one effect's per-turn behavior and reports
// whether it killed the entity. Everything except poison is a pure
// flag read by other systems.
func (o *orchestrator) applyTickBehavior(target *entities.Entity, effect entities.Effect) bool {
	if effect.Type != entities.EffectPoison || effect.Power <= 0 {
		return false
	}

	health := target.Health()
	if health == nil {
		return false
	}

	health.TakeDamage(effect.Power)
	return !health.IsAlive()
}

func (o *orchestrator) Remove(ctx context.Context, input *RemoveInput) (*RemoveOutput, error) {
	if input == nil || input.Target == nil {
		return nil, errors.InvalidArgument("target entity is required")
	}

	effects := input.Target.StatusEffects()
	if effects == nil || !effects.Remove(input.Type) {
		return &RemoveOutput{}, nil
	}

	o.bus.Publish(events.StatusEffectExpiredEvent{
		EntityName: input.Target.Name,
		EffectType: string(input.Type),
	})

	return &RemoveOutput{Removed: true}, nil
}

func (o *orchestrator) Clear(ctx context.Context, input *ClearInput) (*ClearOutput, error) {
	if input == nil || input.Target == nil {
		return nil, errors.InvalidArgument("target entity is required")
	}

	effects := input.Target.StatusEffects()
	if effects == nil {
		return &ClearOutput{}, nil
	}

	cleared := effects.Count()
	effects.Clear()

	return &ClearOutput{Cleared: cleared}, nil
}

func (o *orchestrator) StatModifiers(ctx context.Context, input *StatModifiersInput) (*StatModifiersOutput, error) {
	if input == nil || input.Target == nil {
		return nil, errors.InvalidArgument("target entity is required")
	}

	effects := input.Target.StatusEffects()
	if effects == nil {
		return &StatModifiersOutput{}, nil
	}

	return &StatModifiersOutput{
		Power:   effects.PowerModifier(),
		Defense: effects.DefenseModifier(),
	}, nil
}
