// Package equipment implements slot-based equip and unequip with
// immediate, reversible stat bonuses.
//
// Power and defense bonuses fold directly into the wearer's Combat
// component. Max HP bonuses rescale current HP to keep the pre-change
// percentage, rounded, floored at 1 for a living wearer, so an equip
// followed by an unequip lands back on the exact pre-equip stats.
package equipment

//go:generate mockgen -destination=mock/mock_service.go -package=equipmentmock github.com/KirkDiggler/rogue-api/internal/orchestrators/equipment Service

import (
	"context"
	"fmt"
	"math"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/events"
)

// Service defines the equipment operations.
type Service interface {
	// Equip places an item in its slot on the owner, swapping out and
	// returning any previous occupant. An item without equipment stats
	// fails as a precondition, reported in the output rather than as an
	// error.
	Equip(ctx context.Context, input *EquipInput) (*EquipOutput, error)

	// Unequip empties a slot, removing the item's bonuses. An empty
	// slot yields a nil item.
	Unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error)
}

// Config holds the dependencies for the equipment orchestrator.
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

// NewOrchestrator creates a new equipment orchestrator.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		bus: cfg.EventBus,
	}, nil
}

func (o *orchestrator) Equip(ctx context.Context, input *EquipInput) (*EquipOutput, error) {
	if input == nil || input.Owner == nil {
		return nil, errors.InvalidArgument("owner entity is required")
	}
	if input.Item == nil {
		return nil, errors.InvalidArgument("item entity is required")
	}
	worn := input.Owner.Equipment()
	if worn == nil {
		return nil, errors.InvalidArgumentf("entity %s cannot wear equipment", input.Owner.Name)
	}

	stats := input.Item.EquipmentStats()
	if stats == nil {
		return &EquipOutput{
			Reason: fmt.Sprintf("%s cannot be equipped", input.Item.Name),
		}, nil
	}

	previous := worn.Worn(stats.Slot)
	if previous != nil {
		o.unapplyBonuses(input.Owner, previous.EquipmentStats())
		o.bus.Publish(events.UnequipEvent{
			EntityName: input.Owner.Name,
			ItemName:   previous.Name,
			Slot:       string(stats.Slot),
		})
	}

	worn.Equip(stats.Slot, input.Item)
	o.applyBonuses(input.Owner, stats)

	o.bus.Publish(events.EquipEvent{
		EntityName:   input.Owner.Name,
		ItemName:     input.Item.Name,
		Slot:         string(stats.Slot),
		PowerBonus:   stats.PowerBonus,
		DefenseBonus: stats.DefenseBonus,
		MaxHPBonus:   stats.MaxHPBonus,
	})

	return &EquipOutput{
		Equipped: true,
		Previous: previous,
	}, nil
}

func (o *orchestrator) Unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error) {
	if input == nil || input.Owner == nil {
		return nil, errors.InvalidArgument("owner entity is required")
	}
	worn := input.Owner.Equipment()
	if worn == nil {
		return nil, errors.InvalidArgumentf("entity %s cannot wear equipment", input.Owner.Name)
	}

	item := worn.Unequip(input.Slot)
	if item == nil {
		return &UnequipOutput{}, nil
	}

	o.unapplyBonuses(input.Owner, item.EquipmentStats())

	o.bus.Publish(events.UnequipEvent{
		EntityName: input.Owner.Name,
		ItemName:   item.Name,
		Slot:       string(input.Slot),
	})

	return &UnequipOutput{Item: item}, nil
}

func (o *orchestrator) applyBonuses(owner *entities.Entity, stats *entities.EquipmentStats) {
	o.shiftBonuses(owner, stats, 1)
}

func (o *orchestrator) unapplyBonuses(owner *entities.Entity, stats *entities.EquipmentStats) {
	o.shiftBonuses(owner, stats, -1)
}

func (o *orchestrator) shiftBonuses(owner *entities.Entity, stats *entities.EquipmentStats, sign int) {
	if stats == nil {
		return
	}

	if cmb := owner.Combat(); cmb != nil {
		cmb.Power += sign * stats.PowerBonus
		cmb.Defense += sign * stats.DefenseBonus
	}

	if stats.MaxHPBonus == 0 {
		return
	}
	health := owner.Health()
	if health == nil {
		return
	}

	// Keep the HP percentage across the max change so a swap never
	// silently drains or tops up the wearer.
	pct := 1.0
	if health.MaxHP() > 0 {
		pct = float64(health.HP()) / float64(health.MaxHP())
	}

	health.SetMaxHP(health.MaxHP() + sign*stats.MaxHPBonus)

	newHP := int(math.Round(float64(health.MaxHP()) * pct))
	if newHP == 0 && pct > 0 {
		newHP = 1
	}
	health.SetHP(newHP)
}
