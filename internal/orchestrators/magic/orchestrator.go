// Package magic implements mana-gated spell casting through pluggable
// effect handlers.
//
// A cast is gated four ways, each with its own player-facing reason:
// the caster must be alive, must know the spell (when it carries a
// spellbook), must afford the mana cost (when it carries a mana pool),
// and the spell must have a registered handler. Mana is deducted and
// announced before the handler runs, so a handler that kills the
// caster's target still leaves the pool spent.
package magic

//go:generate mockgen -destination=mock/mock_service.go -package=magicmock github.com/KirkDiggler/rogue-api/internal/orchestrators/magic Service

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/events"
	"github.com/KirkDiggler/rogue-api/internal/repositories/spells"
)

// Service defines the magic operations.
type Service interface {
	// RegisterHandler binds an effect handler to a spell ID, replacing
	// any previous binding. Casting a spell with no handler fails as a
	// precondition.
	RegisterHandler(spellID string, handler EffectHandler)

	// CanCast checks every cast precondition without mutating anything
	// and resolves the spell definition for the caller.
	CanCast(ctx context.Context, input *CanCastInput) (*CanCastOutput, error)

	// Cast re-validates, spends mana, and runs the spell's handler on
	// the target, and on every in-blast candidate for area spells.
	Cast(ctx context.Context, input *CastInput) (*CastOutput, error)

	// RegenerateMana applies one upkeep tick of mana regeneration.
	RegenerateMana(ctx context.Context, input *RegenerateManaInput) (*RegenerateManaOutput, error)
}

// Config holds the dependencies for the magic orchestrator.
type Config struct {
	EventBus *events.Bus
	Spells   spells.Repository
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.Spells == nil {
		vb.RequiredField("Spells")
	}

	return vb.Build()
}

type orchestrator struct {
	bus      *events.Bus
	spells   spells.Repository
	handlers map[string]EffectHandler
}

// NewOrchestrator creates a new magic orchestrator with no handlers
// registered.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		bus:      cfg.EventBus,
		spells:   cfg.Spells,
		handlers: make(map[string]EffectHandler),
	}, nil
}

func (o *orchestrator) RegisterHandler(spellID string, handler EffectHandler) {
	o.handlers[spellID] = handler
}

func (o *orchestrator) CanCast(ctx context.Context, input *CanCastInput) (*CanCastOutput, error) {
	if input == nil || input.Caster == nil {
		return nil, errors.InvalidArgument("caster entity is required")
	}
	if input.SpellID == "" {
		return nil, errors.InvalidArgument("spell id is required")
	}

	if !entities.IsAlive(input.Caster) {
		return &CanCastOutput{
			Reason: fmt.Sprintf("%s is dead!", input.Caster.Name),
		}, nil
	}

	spell, known, err := o.resolveSpell(ctx, input.Caster, input.SpellID)
	if err != nil {
		return nil, err
	}
	if !known {
		return &CanCastOutput{
			Reason: fmt.Sprintf("%s doesn't know %s!", input.Caster.Name, spell.Name),
		}, nil
	}

	if mana := input.Caster.Mana(); mana != nil && !mana.HasMana(spell.ManaCost) {
		return &CanCastOutput{
			Spell: spell,
			Reason: fmt.Sprintf("%s doesn't have enough mana! (%d/%d)",
				input.Caster.Name, mana.MP(), spell.ManaCost),
		}, nil
	}

	if _, ok := o.handlers[spell.ID]; !ok {
		return &CanCastOutput{
			Spell:  spell,
			Reason: fmt.Sprintf("No effect registered for %s!", spell.Name),
		}, nil
	}

	return &CanCastOutput{CanCast: true, Spell: spell}, nil
}

// resolveSpell finds the spell definition, preferring the caster's own
// spellbook. known is false when the caster carries a spellbook that
// lacks the spell, or the ID matches no definition at all.
func (o *orchestrator) resolveSpell(ctx context.Context, caster *entities.Entity, spellID string) (spell entities.Spell, known bool, err error) {
	book := caster.Spellbook()
	if book != nil {
		if learned, ok := book.Get(spellID); ok {
			return learned, true, nil
		}
	}

	out, err := o.spells.Get(ctx, spells.GetInput{SpellID: spellID})
	if err != nil {
		if errors.IsNotFound(err) {
			// Nothing defines this ID; name it by the ID in the reason.
			return entities.Spell{ID: spellID, Name: spellID}, false, nil
		}
		return entities.Spell{}, false, errors.Wrapf(err, "resolving spell %s", spellID)
	}

	// A caster without a spellbook may cast any defined spell, the way
	// scroll-bound casting works for monsters.
	return out.Spell, book == nil, nil
}

func (o *orchestrator) Cast(ctx context.Context, input *CastInput) (*CastOutput, error) {
	if input == nil || input.Caster == nil {
		return nil, errors.InvalidArgument("caster entity is required")
	}
	if input.Target == nil {
		return nil, errors.InvalidArgument("target entity is required")
	}

	check, err := o.CanCast(ctx, &CanCastInput{Caster: input.Caster, SpellID: input.SpellID})
	if err != nil {
		return nil, err
	}
	if !check.CanCast {
		return &CastOutput{
			Spell:  check.Spell,
			Result: EffectResult{Message: check.Reason},
		}, nil
	}
	spell := check.Spell

	if mana := input.Caster.Mana(); mana != nil {
		oldMP := mana.MP()
		mana.Consume(spell.ManaCost)
		o.bus.Publish(events.ManaChangedEvent{
			EntityName: input.Caster.Name,
			OldMP:      oldMP,
			NewMP:      mana.MP(),
			MaxMP:      mana.MaxMP(),
		})
	}

	handler := o.handlers[spell.ID]
	result := handler.Apply(ctx, input.Caster, input.Target, spell.Power)

	out := &CastOutput{
		Spell:  spell,
		Result: result,
	}
	if spell.Target == entities.TargetArea && spell.AreaRadius > 0 {
		out.AreaResults = o.applyToBlast(ctx, handler, spell, input)
	}

	o.bus.Publish(events.SpellCastEvent{
		CasterName:    input.Caster.Name,
		SpellName:     spell.Name,
		TargetName:    input.Target.Name,
		ManaCost:      spell.ManaCost,
		EffectMessage: result.Message,
	})

	return out, nil
}

// applyToBlast runs the handler on every living candidate inside the
// blast radius around the primary target, skipping the target itself.
func (o *orchestrator) applyToBlast(ctx context.Context, handler EffectHandler, spell entities.Spell, input *CastInput) []AreaResult {
	var hits []AreaResult
	for _, candidate := range input.Candidates {
		if candidate == nil || candidate == input.Target || candidate == input.Caster {
			continue
		}
		if !entities.IsAlive(candidate) {
			continue
		}
		if input.Target.Position.Manhattan(candidate.Position) > spell.AreaRadius {
			continue
		}
		hits = append(hits, AreaResult{
			Target: candidate,
			Result: handler.Apply(ctx, input.Caster, candidate, spell.Power),
		})
	}
	return hits
}

func (o *orchestrator) RegenerateMana(ctx context.Context, input *RegenerateManaInput) (*RegenerateManaOutput, error) {
	if input == nil || input.Target == nil {
		return nil, errors.InvalidArgument("target entity is required")
	}

	mana := input.Target.Mana()
	if mana == nil {
		return &RegenerateManaOutput{}, nil
	}

	oldMP := mana.MP()
	restored := mana.Regenerate()
	if restored > 0 {
		o.bus.Publish(events.ManaChangedEvent{
			EntityName: input.Target.Name,
			OldMP:      oldMP,
			NewMP:      mana.MP(),
			MaxMP:      mana.MaxMP(),
		})
	}

	return &RegenerateManaOutput{Restored: restored}, nil
}
