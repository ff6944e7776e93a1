// Package combat implements attack resolution, death bookkeeping, and
// experience awards.
//
// The resolver mutates hit points and publishes events, but it never
// removes entities or rewrites them into corpses. Death sequencing
// (corpse transforms, XP awards for player kills) belongs to the
// caller, which knows whether the kill came from a bump attack, a
// spell, or a status effect.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/KirkDiggler/rogue-api/internal/orchestrators/combat Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/events"
)

// Stat growth applied on every level up.
const (
	levelUpHPBonus      = 20
	levelUpPowerBonus   = 1
	levelUpDefenseBonus = 1
)

// Service defines the combat operations.
type Service interface {
	// ResolveAttack applies one melee attack from attacker to defender.
	// Damage is effective power minus effective defense, floored at
	// zero. A combat event is published even for zero-damage attacks.
	ResolveAttack(ctx context.Context, input *ResolveAttackInput) (*ResolveAttackOutput, error)

	// HandleDeath announces a death and reports the XP it is worth. It
	// does not mutate the victim.
	HandleDeath(ctx context.Context, input *HandleDeathInput) (*HandleDeathOutput, error)

	// AwardXP grants experience, applying any lucky bonus, and advances
	// the recipient at most one level per award.
	AwardXP(ctx context.Context, input *AwardXPInput) (*AwardXPOutput, error)
}

// Config holds the dependencies for the combat orchestrator.
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

// NewOrchestrator creates a new combat orchestrator.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		bus: cfg.EventBus,
	}, nil
}

func (o *orchestrator) ResolveAttack(ctx context.Context, input *ResolveAttackInput) (*ResolveAttackOutput, error) {
	if input == nil || input.Attacker == nil {
		return nil, errors.InvalidArgument("attacker entity is required")
	}
	if input.Defender == nil {
		return nil, errors.InvalidArgument("defender entity is required")
	}
	if input.Attacker.Combat() == nil {
		return nil, errors.InvalidArgumentf("attacker %s has no combat stats", input.Attacker.Name)
	}
	if input.Defender.Combat() == nil || input.Defender.Health() == nil {
		return nil, errors.InvalidArgumentf("defender %s cannot be attacked", input.Defender.Name)
	}

	damage := entities.EffectivePower(input.Attacker) - entities.EffectiveDefense(input.Defender)
	if damage < 0 {
		damage = 0
	}

	health := input.Defender.Health()
	health.TakeDamage(damage)
	died := !health.IsAlive()

	o.bus.Publish(events.CombatEvent{
		AttackerName: input.Attacker.Name,
		DefenderName: input.Defender.Name,
		Damage:       damage,
		DefenderDied: died,
	})

	return &ResolveAttackOutput{
		Damage:       damage,
		DefenderDied: died,
	}, nil
}

func (o *orchestrator) HandleDeath(ctx context.Context, input *HandleDeathInput) (*HandleDeathOutput, error) {
	if input == nil || input.Victim == nil {
		return nil, errors.InvalidArgument("victim entity is required")
	}

	xp := 0
	if level := input.Victim.Level(); level != nil {
		xp = level.XPValue
	}

	o.bus.Publish(events.DeathEvent{
		EntityName:     input.Victim.Name,
		XPValue:        xp,
		KilledByPlayer: input.KilledByPlayer,
	})

	return &HandleDeathOutput{XPValue: xp}, nil
}

func (o *orchestrator) AwardXP(ctx context.Context, input *AwardXPInput) (*AwardXPOutput, error) {
	if input == nil || input.Recipient == nil {
		return nil, errors.InvalidArgument("recipient entity is required")
	}
	level := input.Recipient.Level()
	if level == nil {
		return nil, errors.InvalidArgumentf("recipient %s cannot gain experience", input.Recipient.Name)
	}
	if input.Amount <= 0 {
		return &AwardXPOutput{}, nil
	}

	final := input.Amount
	if se := input.Recipient.StatusEffects(); se != nil {
		if pct := se.XPBonusPercent(); pct > 0 {
			final = input.Amount + input.Amount*pct/100
		}
	}

	level.XP += final
	o.bus.Publish(events.XPGainEvent{
		EntityName: input.Recipient.Name,
		XPGained:   final,
	})

	out := &AwardXPOutput{XPAwarded: final}
	if level.XP < level.XPToNextLevel() {
		return out, nil
	}

	level.Level++
	if health := input.Recipient.Health(); health != nil {
		health.SetMaxHP(health.MaxHP() + levelUpHPBonus)
		health.SetHP(health.MaxHP())
	}
	if cmb := input.Recipient.Combat(); cmb != nil {
		cmb.Power += levelUpPowerBonus
		cmb.Defense += levelUpDefenseBonus
	}

	o.bus.Publish(events.LevelUpEvent{
		EntityName:      input.Recipient.Name,
		NewLevel:        level.Level,
		HPIncrease:      levelUpHPBonus,
		PowerIncrease:   levelUpPowerBonus,
		DefenseIncrease: levelUpDefenseBonus,
	})

	slog.Info("entity leveled up",
		"entity", input.Recipient.Name,
		"new_level", level.Level,
		"total_xp", level.XP,
	)

	out.LeveledUp = true
	out.NewLevel = level.Level

	return out, nil
}
