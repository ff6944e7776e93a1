// Package item resolves consumable use: potions, scrolls, and food.
// The resolver applies the item's effect and reports whether the item
// was spent; removing it from an inventory is the caller's job, the
// same split the crafting resolver uses.
package item

//go:generate mockgen -destination=mock/mock_service.go -package=itemmock github.com/KirkDiggler/rogue-api/internal/orchestrators/item Service

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/events"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/statuseffect"
)

// Service defines the item usage operations.
type Service interface {
	// UseItem applies a consumable's effect. A failed effect (healing
	// at full HP, missing target) is an outcome, not an error: the
	// item is not spent and Used is false.
	UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error)
}

// Config holds the dependencies for the item orchestrator.
type Config struct {
	EventBus      *events.Bus
	StatusEffects statuseffect.Service
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.StatusEffects == nil {
		vb.RequiredField("StatusEffects")
	}

	return vb.Build()
}

type orchestrator struct {
	bus     *events.Bus
	effects statuseffect.Service
}

// NewOrchestrator creates a new item orchestrator.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		bus:     cfg.EventBus,
		effects: cfg.StatusEffects,
	}, nil
}

func (o *orchestrator) UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error) {
	if input == nil || input.User == nil {
		return nil, errors.InvalidArgument("user entity is required")
	}
	if input.Item == nil {
		return nil, errors.InvalidArgument("item entity is required")
	}

	spec := input.Item.Item()
	if spec == nil {
		// Trying to drink a sword is player input, not a fault.
		return &UseItemOutput{
			Message: fmt.Sprintf("%s cannot be used", input.Item.Name),
		}, nil
	}

	// The use is announced before the effect resolves, so the message
	// log reads "Hero uses X" before whatever X did.
	o.bus.Publish(events.ItemUseEvent{
		EntityName: input.User.Name,
		ItemName:   input.Item.Name,
		ItemKind:   spec.Kind,
	})

	target := input.User
	if spec.NeedsTarget {
		if !entities.IsAlive(input.Target) {
			return &UseItemOutput{
				Message: fmt.Sprintf("The %s needs a living target!", input.Item.Name),
			}, nil
		}
		target = input.Target
	}

	switch spec.Effect {
	case entities.ItemEffectHeal:
		return o.applyHeal(input.Item, target, spec.Amount)
	case entities.ItemEffectDamage:
		return o.applyDamage(input.Item, target, spec.Amount)
	case entities.ItemEffectRestoreMana:
		return o.applyManaRestore(input.Item, target, spec.Amount)
	case entities.ItemEffectApplyStatus:
		return o.applyStatus(ctx, input.Item, target, spec)
	default:
		return &UseItemOutput{Message: "Nothing happens."}, nil
	}
}

func (o *orchestrator) applyHeal(item, target *entities.Entity, amount int) (*UseItemOutput, error) {
	health := target.Health()
	if health == nil {
		return &UseItemOutput{
			Message: fmt.Sprintf("%s cannot be healed!", target.Name),
		}, nil
	}
	if health.HP() >= health.MaxHP() {
		return &UseItemOutput{
			Message: fmt.Sprintf("%s is already at full health!", target.Name),
		}, nil
	}

	healed := health.Heal(amount)
	o.bus.Publish(events.HealingEvent{
		EntityName:   target.Name,
		AmountHealed: healed,
	})

	return &UseItemOutput{
		Used:    true,
		Healed:  healed,
		Message: fmt.Sprintf("%s feels better! (+%d HP)", target.Name, healed),
	}, nil
}

func (o *orchestrator) applyDamage(item, target *entities.Entity, amount int) (*UseItemOutput, error) {
	health := target.Health()
	if health == nil {
		return &UseItemOutput{
			Message: fmt.Sprintf("%s cannot be harmed!", target.Name),
		}, nil
	}

	dealt := health.TakeDamage(amount)
	out := &UseItemOutput{
		Used:        true,
		DamageDealt: dealt,
		TargetDied:  !health.IsAlive(),
	}
	if out.TargetDied {
		out.Message = fmt.Sprintf("The %s kills %s!", item.Name, target.Name)
	} else {
		out.Message = fmt.Sprintf("The %s hits %s for %d damage!", item.Name, target.Name, dealt)
	}
	return out, nil
}

func (o *orchestrator) applyManaRestore(item, target *entities.Entity, amount int) (*UseItemOutput, error) {
	mana := target.Mana()
	if mana == nil {
		return &UseItemOutput{
			Message: fmt.Sprintf("%s has no mana to restore!", target.Name),
		}, nil
	}
	if mana.MP() >= mana.MaxMP() {
		return &UseItemOutput{
			Message: fmt.Sprintf("%s's mana is already full!", target.Name),
		}, nil
	}

	oldMP := mana.MP()
	restored := mana.Restore(amount)
	o.bus.Publish(events.ManaChangedEvent{
		EntityName: target.Name,
		OldMP:      oldMP,
		NewMP:      mana.MP(),
		MaxMP:      mana.MaxMP(),
	})

	return &UseItemOutput{
		Used:         true,
		ManaRestored: restored,
		Message:      fmt.Sprintf("%s feels a surge of mana! (+%d MP)", target.Name, restored),
	}, nil
}

func (o *orchestrator) applyStatus(ctx context.Context, item, target *entities.Entity, spec *entities.Item) (*UseItemOutput, error) {
	applied, err := o.effects.Apply(ctx, &statuseffect.ApplyInput{
		Target:   target,
		Type:     spec.StatusType,
		Duration: spec.Duration,
		Power:    spec.Power,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "applying %s from %s", spec.StatusType, item.Name)
	}
	if !applied.Applied {
		return &UseItemOutput{Message: "Nothing happens."}, nil
	}

	return &UseItemOutput{
		Used:    true,
		Message: statusMessage(target, spec.StatusType),
	}, nil
}

// statusMessage picks the narrative line for a status landing.
func statusMessage(target *entities.Entity, t entities.EffectType) string {
	switch t {
	case entities.EffectInvisibility:
		return fmt.Sprintf("%s fades from sight!", target.Name)
	case entities.EffectConfusion:
		return fmt.Sprintf("%s looks confused!", target.Name)
	case entities.EffectStrength, entities.EffectGigantism:
		return fmt.Sprintf("%s feels stronger!", target.Name)
	case entities.EffectDefense, entities.EffectShrinking:
		return fmt.Sprintf("%s feels harder to hit!", target.Name)
	case entities.EffectLucky:
		return fmt.Sprintf("%s feels lucky!", target.Name)
	case entities.EffectPoison:
		return fmt.Sprintf("%s is poisoned!", target.Name)
	default:
		return fmt.Sprintf("%s is affected by %s!", target.Name, t)
	}
}
