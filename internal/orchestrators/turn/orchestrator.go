// Package turn sequences one full simulation turn. A decoded player
// action comes in, gets dispatched to the owning resolver, and if it
// consumed the turn the cycle runs: player status effects and mana
// regeneration, then the monster pass, then monster status effects.
// Precondition failures (a blocked move, a failed cast) cost nothing;
// the player keeps their turn.
package turn

//go:generate mockgen -destination=mock/mock_service.go -package=turnmock github.com/KirkDiggler/rogue-api/internal/orchestrators/turn Service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/events"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/ai"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/combat"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/crafting"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/equipment"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/item"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/magic"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/statuseffect"
)

// World answers walkability for player movement.
type World interface {
	IsWalkable(pos entities.Position) bool
}

// EntityStore is the live entity list a turn runs against. The game
// session implements it; mutations (pickup, crafted drops) go through
// it so the session's bookkeeping stays consistent.
type EntityStore interface {
	Entities() []*entities.Entity
	Add(e *entities.Entity)
	Remove(entityID string)
}

// Service defines the turn pipeline.
type Service interface {
	// ExecuteTurn dispatches one player action and, when the action
	// consumed the turn, runs the full cycle behind it.
	ExecuteTurn(ctx context.Context, input *ExecuteTurnInput) (*ExecuteTurnOutput, error)
}

// Config holds the dependencies for the turn orchestrator.
type Config struct {
	EventBus             *events.Bus
	World                World
	Store                EntityStore
	CombatService        combat.Service
	StatusEffectsService statuseffect.Service
	AIService            ai.Service
	MagicService         magic.Service
	EquipmentService     equipment.Service
	ItemService          item.Service
	CraftingService      crafting.Service
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.World == nil {
		vb.RequiredField("World")
	}
	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.CombatService == nil {
		vb.RequiredField("CombatService")
	}
	if c.StatusEffectsService == nil {
		vb.RequiredField("StatusEffectsService")
	}
	if c.AIService == nil {
		vb.RequiredField("AIService")
	}
	if c.MagicService == nil {
		vb.RequiredField("MagicService")
	}
	if c.EquipmentService == nil {
		vb.RequiredField("EquipmentService")
	}
	if c.ItemService == nil {
		vb.RequiredField("ItemService")
	}
	if c.CraftingService == nil {
		vb.RequiredField("CraftingService")
	}

	return vb.Build()
}

type orchestrator struct {
	bus       *events.Bus
	world     World
	store     EntityStore
	combat    combat.Service
	effects   statuseffect.Service
	ai        ai.Service
	magic     magic.Service
	equipment equipment.Service
	items     item.Service
	crafting  crafting.Service
}

// NewOrchestrator creates a new turn orchestrator.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		bus:       cfg.EventBus,
		world:     cfg.World,
		store:     cfg.Store,
		combat:    cfg.CombatService,
		effects:   cfg.StatusEffectsService,
		ai:        cfg.AIService,
		magic:     cfg.MagicService,
		equipment: cfg.EquipmentService,
		items:     cfg.ItemService,
		crafting:  cfg.CraftingService,
	}, nil
}

func (o *orchestrator) ExecuteTurn(ctx context.Context, input *ExecuteTurnInput) (*ExecuteTurnOutput, error) {
	if input == nil || input.Player == nil {
		return nil, errors.InvalidArgument("player entity is required")
	}

	var out *ExecuteTurnOutput
	var err error

	switch input.Action.Kind {
	case ActionMove:
		out, err = o.move(ctx, input.Player, input.Action.DX, input.Action.DY)
	case ActionWait:
		out = &ExecuteTurnOutput{TurnConsumed: true}
	case ActionPickup:
		out, err = o.pickup(ctx, input.Player)
	case ActionDrop:
		out, err = o.drop(ctx, input.Player, input.Action.ItemID)
	case ActionUseItem:
		out, err = o.useItem(ctx, input.Player, input.Action.ItemID, input.Action.TargetID)
	case ActionEquip:
		out, err = o.equip(ctx, input.Player, input.Action.ItemID)
	case ActionUnequip:
		out, err = o.unequip(ctx, input.Player, input.Action.Slot)
	case ActionCast:
		out, err = o.cast(ctx, input.Player, input.Action.SpellID, input.Action.TargetID)
	case ActionCraft:
		out, err = o.craft(ctx, input.Player, input.Action.IngredientIDs)
	case ActionAutoCraft:
		out, err = o.autoCraft(ctx, input.Player)
	case ActionQuit:
		return &ExecuteTurnOutput{Quit: true}, nil
	default:
		return nil, errors.InvalidArgumentf("unknown action kind %q", input.Action.Kind)
	}
	if err != nil {
		return nil, err
	}

	if out.TurnConsumed && entities.IsAlive(input.Player) && !out.GameOver {
		gameOver, err := o.runCycle(ctx, input.Player)
		if err != nil {
			return nil, err
		}
		out.GameOver = out.GameOver || gameOver
	}

	if out.GameOver {
		slog.Info("game over", "player", input.Player.Name)
	}

	return out, nil
}

// runCycle drives the post-action phases in their fixed order. Each
// phase fully returns before the next starts, and a player death
// short-circuits whatever remains.
func (o *orchestrator) runCycle(ctx context.Context, player *entities.Entity) (bool, error) {
	procOut, err := o.effects.Process(ctx, &statuseffect.ProcessInput{Target: player})
	if err != nil {
		return false, errors.Wrap(err, "processing player effects")
	}
	if procOut.Died {
		if _, err := o.combat.HandleDeath(ctx, &combat.HandleDeathInput{Victim: player}); err != nil {
			return false, errors.Wrap(err, "handling player death")
		}
		player.BlocksMovement = false
		return true, nil
	}

	if _, err := o.magic.RegenerateMana(ctx, &magic.RegenerateManaInput{Target: player}); err != nil {
		return false, errors.Wrap(err, "regenerating mana")
	}

	aiOut, err := o.ai.ProcessTurns(ctx, &ai.ProcessTurnsInput{
		Player:   player,
		Entities: o.store.Entities(),
	})
	if err != nil {
		return false, errors.Wrap(err, "processing monster turns")
	}
	if aiOut.PlayerDied {
		return true, nil
	}

	for _, e := range o.store.Entities() {
		if !entities.IsMonster(e) || !entities.IsAlive(e) {
			continue
		}
		monsterOut, err := o.effects.Process(ctx, &statuseffect.ProcessInput{Target: e})
		if err != nil {
			return false, errors.Wrapf(err, "processing effects on %s", e.Name)
		}
		if monsterOut.Died {
			// Effect deaths award no experience.
			if _, err := o.combat.HandleDeath(ctx, &combat.HandleDeathInput{Victim: e}); err != nil {
				return false, errors.Wrapf(err, "handling death of %s", e.Name)
			}
			if err := o.makeCorpse(ctx, e); err != nil {
				return false, err
			}
		}
	}

	return false, nil
}

// sequenceKill settles a kill the player scored: the death event, the
// corpse, then the experience.
func (o *orchestrator) sequenceKill(ctx context.Context, player, victim *entities.Entity) (*combat.AwardXPOutput, error) {
	deathOut, err := o.combat.HandleDeath(ctx, &combat.HandleDeathInput{
		Victim:         victim,
		KilledByPlayer: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "handling death of %s", victim.Name)
	}
	if err := o.makeCorpse(ctx, victim); err != nil {
		return nil, err
	}

	award, err := o.combat.AwardXP(ctx, &combat.AwardXPInput{
		Recipient: player,
		Amount:    deathOut.XPValue,
	})
	if err != nil {
		return nil, errors.Wrap(err, "awarding experience")
	}
	return award, nil
}

// makeCorpse turns a dead entity into its remnant: effects wiped, a
// new name and glyph, and the tile freed up.
func (o *orchestrator) makeCorpse(ctx context.Context, victim *entities.Entity) error {
	if _, err := o.effects.Clear(ctx, &statuseffect.ClearInput{Target: victim}); err != nil {
		return errors.Wrapf(err, "clearing effects on %s", victim.Name)
	}
	o.ai.Unregister(victim.GetID())
	victim.Name = fmt.Sprintf("remains of %s", victim.Name)
	victim.Glyph = '%'
	victim.BlocksMovement = false
	return nil
}

func (o *orchestrator) move(ctx context.Context, player *entities.Entity, dx, dy int) (*ExecuteTurnOutput, error) {
	dest := player.Position.Shift(dx, dy)

	if blocker := blockingEntityAt(dest, player, o.store.Entities()); blocker != nil {
		if !entities.IsMonster(blocker) || !entities.IsAlive(blocker) {
			return &ExecuteTurnOutput{}, nil
		}

		// Bump attack.
		result, err := o.combat.ResolveAttack(ctx, &combat.ResolveAttackInput{
			Attacker: player,
			Defender: blocker,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "attacking %s", blocker.Name)
		}
		if result.DefenderDied {
			if _, err := o.sequenceKill(ctx, player, blocker); err != nil {
				return nil, err
			}
		}
		return &ExecuteTurnOutput{TurnConsumed: true}, nil
	}

	if !o.world.IsWalkable(dest) {
		return &ExecuteTurnOutput{}, nil
	}

	player.MoveTo(dest)
	return &ExecuteTurnOutput{TurnConsumed: true}, nil
}

func (o *orchestrator) pickup(ctx context.Context, player *entities.Entity) (*ExecuteTurnOutput, error) {
	inventory := player.Inventory()
	if inventory == nil {
		return &ExecuteTurnOutput{Message: "You have no inventory!"}, nil
	}

	var found *entities.Entity
	for _, e := range o.store.Entities() {
		if e != nil && e != player && e.GetType() == entities.KindItem && e.Position == player.Position {
			found = e
			break
		}
	}
	if found == nil {
		return &ExecuteTurnOutput{Message: "There is nothing here to pick up."}, nil
	}
	if inventory.IsFull() {
		return &ExecuteTurnOutput{Message: "Your inventory is full!"}, nil
	}

	inventory.Add(found)
	o.store.Remove(found.GetID())
	o.bus.Publish(events.ItemPickupEvent{
		EntityName: player.Name,
		ItemName:   found.Name,
	})

	return &ExecuteTurnOutput{
		TurnConsumed: true,
		Message:      fmt.Sprintf("You picked up %s.", found.Name),
	}, nil
}

func (o *orchestrator) drop(ctx context.Context, player *entities.Entity, itemID string) (*ExecuteTurnOutput, error) {
	inventory := player.Inventory()
	if inventory == nil {
		return &ExecuteTurnOutput{Message: "You have no inventory!"}, nil
	}
	item := inventory.Get(itemID)
	if item == nil {
		return &ExecuteTurnOutput{Message: "You don't have that."}, nil
	}

	inventory.Remove(itemID)
	item.MoveTo(player.Position)
	o.store.Add(item)
	o.bus.Publish(events.ItemDropEvent{
		EntityName: player.Name,
		ItemName:   item.Name,
	})

	return &ExecuteTurnOutput{
		TurnConsumed: true,
		Message:      fmt.Sprintf("You dropped %s.", item.Name),
	}, nil
}

func (o *orchestrator) useItem(ctx context.Context, player *entities.Entity, itemID, targetID string) (*ExecuteTurnOutput, error) {
	inventory := player.Inventory()
	if inventory == nil {
		return &ExecuteTurnOutput{Message: "You have no inventory!"}, nil
	}
	carried := inventory.Get(itemID)
	if carried == nil {
		return &ExecuteTurnOutput{Message: "You don't have that."}, nil
	}

	target := o.findEntity(targetID)
	useOut, err := o.items.UseItem(ctx, &item.UseItemInput{
		User:   player,
		Item:   carried,
		Target: target,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "using %s", carried.Name)
	}
	if !useOut.Used {
		return &ExecuteTurnOutput{Message: useOut.Message}, nil
	}

	inventory.Remove(itemID)

	out := &ExecuteTurnOutput{TurnConsumed: true, Message: useOut.Message}
	if useOut.TargetDied {
		// Untargeted effects land on the user.
		victim := player
		if spec := carried.Item(); spec != nil && spec.NeedsTarget {
			victim = target
		}
		if err := o.settleVictim(ctx, player, victim, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (o *orchestrator) equip(ctx context.Context, player *entities.Entity, itemID string) (*ExecuteTurnOutput, error) {
	inventory := player.Inventory()
	if inventory == nil {
		return &ExecuteTurnOutput{Message: "You have no inventory!"}, nil
	}
	carried := inventory.Get(itemID)
	if carried == nil {
		return &ExecuteTurnOutput{Message: "You don't have that."}, nil
	}

	equipOut, err := o.equipment.Equip(ctx, &equipment.EquipInput{
		Owner: player,
		Item:  carried,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "equipping %s", carried.Name)
	}
	if !equipOut.Equipped {
		return &ExecuteTurnOutput{Message: equipOut.Reason}, nil
	}

	inventory.Remove(itemID)
	if equipOut.Previous != nil {
		// A slot just freed up, so this cannot fail.
		inventory.Add(equipOut.Previous)
	}

	return &ExecuteTurnOutput{
		TurnConsumed: true,
		Message:      fmt.Sprintf("You equip %s.", carried.Name),
	}, nil
}

func (o *orchestrator) unequip(ctx context.Context, player *entities.Entity, slotName string) (*ExecuteTurnOutput, error) {
	slot, ok := entities.ParseSlot(slotName)
	if !ok {
		return &ExecuteTurnOutput{Message: fmt.Sprintf("There is no %q slot.", slotName)}, nil
	}
	inventory := player.Inventory()
	if inventory == nil {
		return &ExecuteTurnOutput{Message: "You have no inventory!"}, nil
	}
	if inventory.IsFull() {
		return &ExecuteTurnOutput{Message: "Your inventory is full!"}, nil
	}

	unequipOut, err := o.equipment.Unequip(ctx, &equipment.UnequipInput{
		Owner: player,
		Slot:  slot,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unequipping %s", slot)
	}
	if unequipOut.Item == nil {
		return &ExecuteTurnOutput{Message: "Nothing is equipped there."}, nil
	}

	inventory.Add(unequipOut.Item)
	return &ExecuteTurnOutput{
		TurnConsumed: true,
		Message:      fmt.Sprintf("You remove %s.", unequipOut.Item.Name),
	}, nil
}

func (o *orchestrator) cast(ctx context.Context, player *entities.Entity, spellID, targetID string) (*ExecuteTurnOutput, error) {
	canOut, err := o.magic.CanCast(ctx, &magic.CanCastInput{
		Caster:  player,
		SpellID: spellID,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "checking cast of %s", spellID)
	}
	if !canOut.CanCast {
		return &ExecuteTurnOutput{Message: canOut.Reason}, nil
	}

	target := player
	if canOut.Spell.Target != entities.TargetSelf {
		target = o.findEntity(targetID)
		if target == nil {
			return &ExecuteTurnOutput{Message: "There is no target there."}, nil
		}
	}

	castOut, err := o.magic.Cast(ctx, &magic.CastInput{
		Caster:     player,
		Target:     target,
		SpellID:    spellID,
		Candidates: o.store.Entities(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "casting %s", spellID)
	}
	if !castOut.Result.Success {
		return &ExecuteTurnOutput{Message: castOut.Result.Message}, nil
	}

	out := &ExecuteTurnOutput{TurnConsumed: true, Message: castOut.Result.Message}
	if castOut.Result.TargetDied {
		if err := o.settleVictim(ctx, player, target, out); err != nil {
			return nil, err
		}
	}
	for _, area := range castOut.AreaResults {
		if area.Result.TargetDied {
			if err := o.settleVictim(ctx, player, area.Target, out); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// settleVictim closes out one kill the player caused. The player
// burning themself down is a game over, not a kill to score.
func (o *orchestrator) settleVictim(ctx context.Context, player, victim *entities.Entity, out *ExecuteTurnOutput) error {
	if victim == nil {
		return nil
	}
	if victim == player {
		if _, err := o.combat.HandleDeath(ctx, &combat.HandleDeathInput{Victim: player}); err != nil {
			return errors.Wrap(err, "handling player death")
		}
		player.BlocksMovement = false
		out.GameOver = true
		return nil
	}
	_, err := o.sequenceKill(ctx, player, victim)
	return err
}

func (o *orchestrator) craft(ctx context.Context, player *entities.Entity, ingredientIDs []string) (*ExecuteTurnOutput, error) {
	inventory := player.Inventory()
	if inventory == nil {
		return &ExecuteTurnOutput{Message: "You have no inventory!"}, nil
	}

	ingredients := make([]*entities.Entity, 0, len(ingredientIDs))
	for _, id := range ingredientIDs {
		carried := inventory.Get(id)
		if carried == nil {
			return &ExecuteTurnOutput{Message: "Those ingredients are not in your inventory!"}, nil
		}
		ingredients = append(ingredients, carried)
	}
	if len(ingredients) == 0 {
		return &ExecuteTurnOutput{Message: "You have nothing selected to craft with."}, nil
	}

	craftOut, err := o.crafting.Craft(ctx, &crafting.CraftInput{
		Ingredients: ingredients,
		Crafter:     player,
	})
	if err != nil {
		return nil, errors.Wrap(err, "crafting")
	}
	if !craftOut.Crafted {
		return &ExecuteTurnOutput{Message: "These ingredients cannot be crafted together."}, nil
	}

	return o.storeCraftResult(player, inventory, craftOut.Result, craftOut.Consumed), nil
}

func (o *orchestrator) autoCraft(ctx context.Context, player *entities.Entity) (*ExecuteTurnOutput, error) {
	inventory := player.Inventory()
	if inventory == nil {
		return &ExecuteTurnOutput{Message: "You have no inventory!"}, nil
	}

	var craftable []*entities.Entity
	for _, carried := range inventory.Items() {
		if carried.Crafting() != nil {
			craftable = append(craftable, carried)
		}
	}
	if len(craftable) < 2 {
		return &ExecuteTurnOutput{Message: "You need at least 2 craftable items!"}, nil
	}

	autoOut, err := o.crafting.AutoCraft(ctx, &crafting.AutoCraftInput{
		Crafter: player,
		Items:   craftable,
	})
	if err != nil {
		return nil, errors.Wrap(err, "auto-crafting")
	}
	if !autoOut.Crafted {
		return &ExecuteTurnOutput{Message: "No craftable recipes found with your current items."}, nil
	}

	return o.storeCraftResult(player, inventory, autoOut.Result, autoOut.Consumed), nil
}

// storeCraftResult moves consumed ingredients out of the inventory and
// puts the crafted item in, dropping it on the floor when the pack is
// full.
func (o *orchestrator) storeCraftResult(player *entities.Entity, inventory *entities.Inventory, result *entities.Entity, consumed []*entities.Entity) *ExecuteTurnOutput {
	for _, ingredient := range consumed {
		inventory.Remove(ingredient.GetID())
	}

	out := &ExecuteTurnOutput{
		TurnConsumed: true,
		Message:      fmt.Sprintf("You craft %s.", result.Name),
	}
	if !inventory.Add(result) {
		o.store.Add(result)
		out.Message = fmt.Sprintf("Inventory full! %s dropped on ground.", result.Name)
	}
	return out
}

func (o *orchestrator) findEntity(id string) *entities.Entity {
	if id == "" {
		return nil
	}
	for _, e := range o.store.Entities() {
		if e != nil && e.GetID() == id {
			return e
		}
	}
	return nil
}

func blockingEntityAt(pos entities.Position, mover *entities.Entity, all []*entities.Entity) *entities.Entity {
	for _, e := range all {
		if e == nil || e == mover {
			continue
		}
		if e.Position == pos && e.BlocksMovement {
			return e
		}
	}
	return nil
}
