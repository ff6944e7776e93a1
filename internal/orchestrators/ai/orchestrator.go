// Package ai drives monster behavior. Every registered monster runs a
// small state machine once per coordinator pass: idle when the player
// is far away or dead, chase when the player is inside the pursuit
// radius, attack when adjacent. Confusion on the monster or
// invisibility on the player overrides the machine with a random walk.
package ai

//go:generate mockgen -destination=mock/mock_service.go -package=aimock github.com/KirkDiggler/rogue-api/internal/orchestrators/ai Service

import (
	"context"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/combat"
	"github.com/KirkDiggler/rogue-api/internal/pkg/rng"
)

const (
	// attackRange is the Manhattan distance at which a monster stops
	// moving and swings instead.
	attackRange = 1

	// chaseRadius is the Manhattan distance inside which a monster
	// pursues the player. At exactly this distance it still idles.
	chaseRadius = 10
)

// State is the behavior a monster resolved to on a coordinator pass.
type State string

// Behavior states. Wander is not a machine state: it is the override
// applied when the monster is confused or the player is invisible.
const (
	StateIdle   State = "idle"
	StateChase  State = "chase"
	StateAttack State = "attack"
	StateWander State = "wander"
)

// World answers the terrain questions the coordinator asks. Off-grid
// positions must report as not walkable.
type World interface {
	IsWalkable(pos entities.Position) bool
}

// Service defines the monster turn coordinator.
type Service interface {
	// Register adds a monster to the coordinator. Registering a
	// monster twice is a no-op.
	Register(monster *entities.Entity)

	// Unregister removes a monster, typically after its death.
	Unregister(entityID string)

	// MonsterState reports the behavior a monster resolved to on the
	// most recent pass. The second return is false for unregistered
	// monsters.
	MonsterState(entityID string) (State, bool)

	// ProcessTurns runs one behavior pass over every registered,
	// living monster, in entity-list order.
	ProcessTurns(ctx context.Context, input *ProcessTurnsInput) (*ProcessTurnsOutput, error)
}

// Config holds the dependencies for the AI coordinator.
type Config struct {
	CombatService combat.Service
	World         World
	RNG           *rng.RNG
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CombatService == nil {
		vb.RequiredField("CombatService")
	}
	if c.World == nil {
		vb.RequiredField("World")
	}
	if c.RNG == nil {
		vb.RequiredField("RNG")
	}

	return vb.Build()
}

type orchestrator struct {
	combat combat.Service
	world  World
	rng    *rng.RNG
	states map[string]State
}

// NewOrchestrator creates a new AI coordinator.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		combat: cfg.CombatService,
		world:  cfg.World,
		rng:    cfg.RNG,
		states: make(map[string]State),
	}, nil
}

func (o *orchestrator) Register(monster *entities.Entity) {
	if monster == nil {
		return
	}
	if _, ok := o.states[monster.GetID()]; !ok {
		o.states[monster.GetID()] = StateIdle
	}
}

func (o *orchestrator) Unregister(entityID string) {
	delete(o.states, entityID)
}

func (o *orchestrator) MonsterState(entityID string) (State, bool) {
	state, ok := o.states[entityID]
	return state, ok
}

func (o *orchestrator) ProcessTurns(ctx context.Context, input *ProcessTurnsInput) (*ProcessTurnsOutput, error) {
	if input == nil || input.Player == nil {
		return nil, errors.InvalidArgument("player entity is required")
	}

	out := &ProcessTurnsOutput{}
	playerInvisible := hasEffect(input.Player, entities.EffectInvisibility)

	for _, monster := range input.Entities {
		if !entities.IsMonster(monster) || !entities.IsAlive(monster) {
			continue
		}
		id := monster.GetID()
		if _, registered := o.states[id]; !registered {
			continue
		}

		// A confused monster stumbles, and a monster that cannot see
		// the player has nothing better to do.
		if hasEffect(monster, entities.EffectConfusion) || playerInvisible {
			o.states[id] = StateWander
			o.randomWalk(monster, input.Entities)
			continue
		}

		state := decide(monster, input.Player)
		o.states[id] = state

		switch state {
		case StateAttack:
			result, err := o.combat.ResolveAttack(ctx, &combat.ResolveAttackInput{
				Attacker: monster,
				Defender: input.Player,
			})
			if err != nil {
				return nil, errors.Wrapf(err, "resolving attack by %s", monster.Name)
			}
			if result.DefenderDied {
				if _, err := o.combat.HandleDeath(ctx, &combat.HandleDeathInput{
					Victim: input.Player,
				}); err != nil {
					return nil, errors.Wrap(err, "handling player death")
				}
				// Corpses don't block movement.
				input.Player.BlocksMovement = false
				out.PlayerDied = true
			}
		case StateChase:
			o.chaseStep(monster, input.Player, input.Entities)
		}
	}

	return out, nil
}

// decide runs the transition table. Order matters: a dead player
// idles every monster regardless of distance.
func decide(monster, player *entities.Entity) State {
	if !entities.IsAlive(player) {
		return StateIdle
	}
	switch dist := monster.Position.Manhattan(player.Position); {
	case dist <= attackRange:
		return StateAttack
	case dist < chaseRadius:
		return StateChase
	default:
		return StateIdle
	}
}

// Neighbor offsets a wandering monster tries, before shuffling.
var walkOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// randomWalk shuffles the neighbor offsets and takes the first open
// step. A boxed-in monster stays put.
func (o *orchestrator) randomWalk(monster *entities.Entity, all []*entities.Entity) {
	offsets := walkOffsets
	o.rng.Shuffle(len(offsets), func(i, j int) {
		offsets[i], offsets[j] = offsets[j], offsets[i]
	})

	for _, off := range offsets {
		dest := monster.Position.Shift(off[0], off[1])
		if o.stepOpen(dest, monster, all) {
			monster.MoveTo(dest)
			return
		}
	}
}

// chaseStep moves one greedy step toward the player, both axes at
// once. A blocked destination means the monster waits; there is no
// fallback pathing.
func (o *orchestrator) chaseStep(monster, player *entities.Entity, all []*entities.Entity) {
	dx, dy := monster.Position.StepToward(player.Position)
	dest := monster.Position.Shift(dx, dy)
	if o.stepOpen(dest, monster, all) {
		monster.MoveTo(dest)
	}
}

// stepOpen reports whether a monster can stand on dest: the tile is
// walkable and no other entity blocks it.
func (o *orchestrator) stepOpen(dest entities.Position, mover *entities.Entity, all []*entities.Entity) bool {
	if !o.world.IsWalkable(dest) {
		return false
	}
	for _, e := range all {
		if e == nil || e == mover {
			continue
		}
		if e.Position == dest && e.BlocksMovement {
			return false
		}
	}
	return true
}

func hasEffect(e *entities.Entity, t entities.EffectType) bool {
	effects := e.StatusEffects()
	return effects != nil && effects.Has(t)
}
