// Package game assembles and runs live sessions. The factory turns
// content templates into component entities, and the Session owns one
// running simulation end to end: map, entity list, orchestrators, the
// targeting flow, and save and restore.
package game

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/crafting"
	"github.com/KirkDiggler/rogue-api/internal/pkg/idgen"
	"github.com/KirkDiggler/rogue-api/internal/repositories/spells"
	"github.com/KirkDiggler/rogue-api/internal/repositories/templates"
)

// FactoryConfig holds the dependencies for the entity factory.
type FactoryConfig struct {
	Templates templates.Repository
	Spells    spells.Repository
	IDGen     idgen.Generator
}

// Validate ensures all required dependencies are provided.
func (c *FactoryConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Templates == nil {
		vb.RequiredField("Templates")
	}
	if c.Spells == nil {
		vb.RequiredField("Spells")
	}
	if c.IDGen == nil {
		vb.RequiredField("IDGen")
	}

	return vb.Build()
}

// Factory spawns live entities from templates. Spawn never places the
// result anywhere; the caller decides whether it joins the session's
// entity list, lands in an inventory, or stays detached.
type Factory struct {
	templates templates.Repository
	spells    spells.Repository
	idgen     idgen.Generator
}

var _ crafting.EntitySpawner = (*Factory)(nil)

// NewFactory creates an entity factory.
func NewFactory(cfg *FactoryConfig) (*Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Factory{
		templates: cfg.Templates,
		spells:    cfg.Spells,
		idgen:     cfg.IDGen,
	}, nil
}

// Spawn builds a live entity from a template, rolling hit dice when
// the template carries them. Component specs copy into fresh
// components, so two spawns of the same template never share state.
func (f *Factory) Spawn(ctx context.Context, templateID string, pos entities.Position) (*entities.Entity, error) {
	got, err := f.templates.Get(ctx, templates.GetInput{TemplateID: templateID})
	if err != nil {
		return nil, errors.Wrapf(err, "get template %q", templateID)
	}
	tpl := got.Template

	e := entities.New(f.idgen.Generate(), tpl.Kind, tpl.Name, tpl.GlyphRune(), pos)
	e.BlocksMovement = tpl.BlocksMovement

	if tpl.Health != nil {
		hp, err := rollHitPoints(tpl.Health)
		if err != nil {
			return nil, err
		}
		e.Attach(entities.NewHealth(hp))
	}
	if tpl.Combat != nil {
		cmb := *tpl.Combat
		e.Attach(&cmb)
	}
	if tpl.Level != nil {
		lvl := *tpl.Level
		e.Attach(&lvl)
	}
	if tpl.Mana != nil {
		e.Attach(entities.NewMana(tpl.Mana.MaxMP, tpl.Mana.Regen))
	}
	if tpl.Inventory != nil {
		e.Attach(entities.NewInventory(tpl.Inventory.Capacity))
	}
	if tpl.Item != nil {
		it := *tpl.Item
		e.Attach(&it)
	}
	if tpl.Equippable != nil {
		stats := *tpl.Equippable
		e.Attach(&stats)
	}
	if tpl.Crafting != nil {
		e.Attach(entities.NewCrafting(tpl.Crafting.Consumable, tpl.Crafting.Craftable, tpl.Crafting.Tags...))
	}
	if len(tpl.KnownSpells) > 0 {
		book := entities.NewSpellbook()
		for _, spellID := range tpl.KnownSpells {
			spellOut, err := f.spells.Get(ctx, spells.GetInput{SpellID: spellID})
			if err != nil {
				return nil, errors.Wrapf(err, "template %q: resolve known spell %q", templateID, spellID)
			}
			book.Learn(spellOut.Spell)
		}
		e.Attach(book)
	}
	if tpl.Equipment {
		e.Attach(entities.NewEquipment())
	}
	if tpl.StatusEffects {
		e.Attach(entities.NewStatusEffects())
	}
	if tpl.RecipeBook {
		e.Attach(entities.NewRecipeBook())
	}

	return e, nil
}

// rollHitPoints resolves a health spec to starting hit points. Rolled
// entities keep at least one hit point no matter how bad the dice come
// up.
func rollHitPoints(spec *templates.HealthSpec) (int, error) {
	if spec.HitDice == "" {
		return spec.MaxHP, nil
	}

	count, size, modifier, err := templates.ParseHitDice(spec.HitDice)
	if err != nil {
		return 0, err
	}
	roll, err := dice.NewRoll(count, size)
	if err != nil {
		return 0, errors.Wrapf(err, "roll hit dice %q", spec.HitDice)
	}

	hp := roll.GetValue() + modifier
	if hp < 1 {
		hp = 1
	}
	return hp, nil
}
