package game

import (
	"context"
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
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/targeting"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/turn"
	"github.com/KirkDiggler/rogue-api/internal/pkg/idgen"
	"github.com/KirkDiggler/rogue-api/internal/pkg/rng"
	"github.com/KirkDiggler/rogue-api/internal/repositories/gamestate"
	"github.com/KirkDiggler/rogue-api/internal/repositories/recipes"
	"github.com/KirkDiggler/rogue-api/internal/repositories/spells"
	"github.com/KirkDiggler/rogue-api/internal/repositories/templates"
	"github.com/KirkDiggler/rogue-api/internal/world"
)

// fovRadius is how far the player sees.
const fovRadius = 8

// SessionConfig holds the dependencies for one game session.
type SessionConfig struct {
	// SessionID is generated when empty.
	SessionID string

	// Map is the tile grid the session runs on. LoadSession ignores it
	// and rebuilds the grid from the snapshot.
	Map *world.Map

	Templates templates.Repository
	Spells    spells.Repository
	Recipes   recipes.Repository

	// Saves is optional; Save and LoadSession need it.
	Saves gamestate.Repository

	// IDGen mints entity IDs. Defaults to a prefixed generator.
	IDGen idgen.Generator

	// Seed feeds the session RNG. LoadSession ignores it in favor of
	// the snapshot's RNG cursor.
	Seed int64
}

// Validate ensures all required dependencies are provided.
func (c *SessionConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Templates == nil {
		vb.RequiredField("Templates")
	}
	if c.Spells == nil {
		vb.RequiredField("Spells")
	}
	if c.Recipes == nil {
		vb.RequiredField("Recipes")
	}

	return vb.Build()
}

// Session owns one running simulation: the map, the player, the live
// entity list, the event bus, the orchestrator set, and the targeting
// flow. It implements turn.EntityStore so the turn pipeline's world
// mutations go through the session's bookkeeping.
//
// A Session is not safe for concurrent use; the transport serializes
// access to it.
type Session struct {
	id      string
	gameMap *world.Map
	bus     *events.Bus
	rng     *rng.RNG

	factory   *Factory
	spellRepo spells.Repository
	saves     gamestate.Repository

	combatSvc  combat.Service
	effectsSvc statuseffect.Service
	aiSvc      ai.Service
	magicSvc   magic.Service
	turnSvc    turn.Service

	targeting      *targeting.Session
	pendingSpellID string

	player   *entities.Entity
	entities []*entities.Entity

	turn     int
	gameOver bool

	visible  map[entities.Position]bool
	explored map[entities.Position]bool

	// pending collects bus events during one action so the transport
	// can stream them.
	pending []events.Event
}

var _ turn.EntityStore = (*Session)(nil)

// NewSession assembles a fresh session on the config's map. The
// context covers the repository reads done during setup.
func NewSession(ctx context.Context, cfg *SessionConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if cfg.Map == nil {
		return nil, errors.InvalidArgument("map is required")
	}

	s, err := assemble(ctx, cfg, cfg.Map, rng.New(cfg.Seed))
	if err != nil {
		return nil, err
	}

	slog.Info("session created", "session_id", s.id, "seed", cfg.Seed)
	return s, nil
}

// assemble wires the orchestrator set around the given map and RNG.
// Both construction paths (fresh and restored) funnel through here so
// they cannot drift apart.
func assemble(ctx context.Context, cfg *SessionConfig, m *world.Map, r *rng.RNG) (*Session, error) {
	id := cfg.SessionID
	if id == "" {
		id = idgen.NewUUID("sess").Generate()
	}
	entityIDs := cfg.IDGen
	if entityIDs == nil {
		entityIDs = idgen.NewPrefixed("ent")
	}

	bus := events.NewBus()

	factory, err := NewFactory(&FactoryConfig{
		Templates: cfg.Templates,
		Spells:    cfg.Spells,
		IDGen:     entityIDs,
	})
	if err != nil {
		return nil, err
	}

	combatSvc, err := combat.NewOrchestrator(&combat.Config{EventBus: bus})
	if err != nil {
		return nil, err
	}
	effectsSvc, err := statuseffect.NewOrchestrator(&statuseffect.Config{EventBus: bus})
	if err != nil {
		return nil, err
	}
	aiSvc, err := ai.NewOrchestrator(&ai.Config{
		CombatService: combatSvc,
		World:         m,
		RNG:           r,
	})
	if err != nil {
		return nil, err
	}
	magicSvc, err := magic.NewOrchestrator(&magic.Config{
		EventBus: bus,
		Spells:   cfg.Spells,
	})
	if err != nil {
		return nil, err
	}
	equipSvc, err := equipment.NewOrchestrator(&equipment.Config{EventBus: bus})
	if err != nil {
		return nil, err
	}
	itemSvc, err := item.NewOrchestrator(&item.Config{
		EventBus:      bus,
		StatusEffects: effectsSvc,
	})
	if err != nil {
		return nil, err
	}
	craftSvc, err := crafting.NewOrchestrator(&crafting.Config{
		EventBus: bus,
		Recipes:  cfg.Recipes,
		Spawner:  factory,
	})
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:         id,
		gameMap:    m,
		bus:        bus,
		rng:        r,
		factory:    factory,
		spellRepo:  cfg.Spells,
		saves:      cfg.Saves,
		combatSvc:  combatSvc,
		effectsSvc: effectsSvc,
		aiSvc:      aiSvc,
		magicSvc:   magicSvc,
		turnSvc:    nil,
		targeting:  targeting.NewSession(),
		visible:    make(map[entities.Position]bool),
		explored:   make(map[entities.Position]bool),
	}

	turnSvc, err := turn.NewOrchestrator(&turn.Config{
		EventBus:             bus,
		World:                m,
		Store:                s,
		CombatService:        combatSvc,
		StatusEffectsService: effectsSvc,
		AIService:            aiSvc,
		MagicService:         magicSvc,
		EquipmentService:     equipSvc,
		ItemService:          itemSvc,
		CraftingService:      craftSvc,
	})
	if err != nil {
		return nil, err
	}
	s.turnSvc = turnSvc

	bus.SubscribeAll(func(e events.Event) {
		s.pending = append(s.pending, e)
	})

	if err := s.bindSpellHandlers(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// bindSpellHandlers registers an effect handler for every spell the
// repository defines, driven by the definition's effect class.
func (s *Session) bindSpellHandlers(ctx context.Context) error {
	list, err := s.spellRepo.List(ctx, spells.ListInput{})
	if err != nil {
		return errors.Wrap(err, "list spells")
	}
	for _, sp := range list.Spells {
		handler, err := s.handlerFor(sp)
		if err != nil {
			return err
		}
		s.magicSvc.RegisterHandler(sp.ID, handler)
	}
	return nil
}

func (s *Session) handlerFor(sp entities.Spell) (magic.EffectHandler, error) {
	switch sp.Effect {
	case entities.SpellEffectDamage:
		return magic.NewDamageHandler(), nil
	case entities.SpellEffectHeal:
		return magic.NewHealHandler(), nil
	case entities.SpellEffectBuff:
		return magic.NewBuffHandler(s.effectsSvc, sp.Duration), nil
	case entities.SpellEffectStatus:
		if sp.StatusType == "" {
			return nil, errors.InvalidArgumentf("spell %q applies a status but names no status type", sp.ID)
		}
		verb := sp.Verb
		if verb == "" {
			verb = "is affected by " + string(sp.StatusType)
		}
		return magic.NewStatusHandler(s.effectsSvc, sp.StatusType, sp.Duration, verb), nil
	case "":
		return nil, errors.InvalidArgumentf("spell %q has no effect class", sp.ID)
	default:
		return nil, errors.InvalidArgumentf("spell %q has unknown effect class %q", sp.ID, sp.Effect)
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Player returns the acting player entity, nil before SpawnPlayer.
func (s *Session) Player() *entities.Entity { return s.player }

// TurnCount returns how many turns the world has advanced.
func (s *Session) TurnCount() int { return s.turn }

// IsGameOver reports whether the run has ended.
func (s *Session) IsGameOver() bool { return s.gameOver }

// Map returns the session's tile grid.
func (s *Session) Map() *world.Map { return s.gameMap }

// Entities implements turn.EntityStore.
func (s *Session) Entities() []*entities.Entity { return s.entities }

// Add places an entity in the world. Monsters register with the AI
// coordinator here, so every entry path (spawn, restore, a dropped
// item) gets the same bookkeeping.
func (s *Session) Add(e *entities.Entity) {
	if e == nil {
		return
	}
	s.entities = append(s.entities, e)
	if entities.IsMonster(e) {
		s.aiSvc.Register(e)
	}
}

// Remove takes an entity out of the world and off the AI coordinator.
func (s *Session) Remove(entityID string) {
	for i, e := range s.entities {
		if e != nil && e.GetID() == entityID {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
	s.aiSvc.Unregister(entityID)
}

// SpawnPlayer spawns the player template and adopts it as the acting
// player.
func (s *Session) SpawnPlayer(ctx context.Context, templateID string, pos entities.Position) (*entities.Entity, error) {
	if s.player != nil {
		return nil, errors.AlreadyExists("session already has a player")
	}
	e, err := s.spawnOnto(ctx, templateID, pos)
	if err != nil {
		return nil, err
	}
	s.player = e
	s.updateFOV()
	return e, nil
}

// SpawnAt spawns a template into the world at a floor tile.
func (s *Session) SpawnAt(ctx context.Context, templateID string, pos entities.Position) (*entities.Entity, error) {
	return s.spawnOnto(ctx, templateID, pos)
}

func (s *Session) spawnOnto(ctx context.Context, templateID string, pos entities.Position) (*entities.Entity, error) {
	if !s.gameMap.IsWalkable(pos) {
		return nil, errors.InvalidArgumentf("position (%d, %d) is not walkable", pos.X, pos.Y)
	}
	e, err := s.factory.Spawn(ctx, templateID, pos)
	if err != nil {
		return nil, err
	}
	s.Add(e)
	return e, nil
}

// ActionResult is what one player action produced, ready for the
// transport: the turn outcome, the events the simulation published,
// and the log lines they render to.
type ActionResult struct {
	TurnConsumed bool
	GameOver     bool
	Quit         bool
	Messages     []string
	Events       []events.Event
}

// HandleAction runs one decoded player action through the turn
// pipeline and refreshes the field of view. An open targeting flow is
// abandoned first; a client that acts has stopped aiming.
func (s *Session) HandleAction(ctx context.Context, action turn.Action) (*ActionResult, error) {
	if s.player == nil {
		return nil, errors.FailedPrecondition("session has no player")
	}
	if s.gameOver && action.Kind != turn.ActionQuit {
		return &ActionResult{GameOver: true, Messages: []string{"The game is over."}}, nil
	}
	if s.targeting.Active() {
		s.targeting.Cancel()
		s.pendingSpellID = ""
	}

	s.pending = nil
	out, err := s.turnSvc.ExecuteTurn(ctx, &turn.ExecuteTurnInput{
		Player: s.player,
		Action: action,
	})
	if err != nil {
		return nil, err
	}

	if out.TurnConsumed {
		s.turn++
	}
	if out.GameOver {
		s.gameOver = true
	}
	s.updateFOV()

	result := &ActionResult{
		TurnConsumed: out.TurnConsumed,
		GameOver:     s.gameOver,
		Quit:         out.Quit,
		Events:       append([]events.Event(nil), s.pending...),
	}
	if out.Message != "" {
		result.Messages = append(result.Messages, out.Message)
	}
	for _, e := range s.pending {
		if msg, ok := eventMessage(e); ok {
			result.Messages = append(result.Messages, msg)
		}
	}
	return result, nil
}

// updateFOV recomputes visibility from the player's position and folds
// it into the explored memory.
func (s *Session) updateFOV() {
	if s.player == nil {
		return
	}
	s.visible = world.VisibleTiles(s.gameMap, s.player.Position, fovRadius)
	for pos := range s.visible {
		s.explored[pos] = true
	}
}

// Visible reports whether the player currently sees the position.
func (s *Session) Visible(pos entities.Position) bool {
	return s.visible[pos]
}

// Explored reports whether the player has ever seen the position.
func (s *Session) Explored(pos entities.Position) bool {
	return s.explored[pos]
}

// TargetingUpdate is the state of the targeting flow after a driving
// call. Result is set when the flow completed with a cast.
type TargetingUpdate struct {
	Active     bool
	Cursor     entities.Position
	TargetID   string
	TargetName string
	Message    string
	Result     *ActionResult
}

func (s *Session) targetingUpdate(msg string) *TargetingUpdate {
	u := &TargetingUpdate{Active: s.targeting.Active(), Message: msg}
	if pos, ok := s.targeting.Cursor(); ok {
		u.Cursor = pos
	}
	if t := s.targeting.CurrentTarget(); t != nil {
		u.TargetID = t.GetID()
		u.TargetName = t.Name
	}
	return u
}

// StartTargeting opens cursor targeting for a spell. Self-targeted
// spells skip the cursor and cast immediately. Candidates are living
// monsters the player can currently see.
func (s *Session) StartTargeting(ctx context.Context, spellID string) (*TargetingUpdate, error) {
	if s.player == nil {
		return nil, errors.FailedPrecondition("session has no player")
	}

	canOut, err := s.magicSvc.CanCast(ctx, &magic.CanCastInput{Caster: s.player, SpellID: spellID})
	if err != nil {
		return nil, err
	}
	if !canOut.CanCast {
		return s.targetingUpdate(canOut.Reason), nil
	}
	if canOut.Spell.Target == entities.TargetSelf {
		result, err := s.HandleAction(ctx, turn.Action{Kind: turn.ActionCast, SpellID: spellID})
		if err != nil {
			return nil, err
		}
		u := s.targetingUpdate("")
		u.Result = result
		return u, nil
	}

	var candidates []*entities.Entity
	for _, e := range s.entities {
		if entities.IsMonster(e) && entities.IsAlive(e) && s.visible[e.Position] {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return s.targetingUpdate("No visible targets!"), nil
	}
	if !s.targeting.Start(s.player.Position, canOut.Spell.Range, candidates, s.gameMap.Width(), s.gameMap.Height()) {
		return s.targetingUpdate("No targets in range!"), nil
	}

	s.pendingSpellID = spellID
	return s.targetingUpdate("Select a target."), nil
}

// MoveTargetCursor nudges the targeting cursor.
func (s *Session) MoveTargetCursor(dx, dy int) *TargetingUpdate {
	s.targeting.MoveCursor(dx, dy)
	return s.targetingUpdate("")
}

// CycleTarget steps through the candidate list, +1 for next and -1
// for previous.
func (s *Session) CycleTarget(direction int) *TargetingUpdate {
	s.targeting.Cycle(direction)
	return s.targetingUpdate("")
}

// CancelTargeting abandons the targeting flow.
func (s *Session) CancelTargeting() *TargetingUpdate {
	s.targeting.Cancel()
	s.pendingSpellID = ""
	return s.targetingUpdate("")
}

// ConfirmTarget fires the pending spell at the entity under the
// cursor.
func (s *Session) ConfirmTarget(ctx context.Context) (*TargetingUpdate, error) {
	if !s.targeting.Active() {
		return s.targetingUpdate("Nothing is being targeted."), nil
	}

	spellID := s.pendingSpellID
	target := s.targeting.Select()
	s.pendingSpellID = ""
	if target == nil {
		return s.targetingUpdate("There is no target there."), nil
	}

	result, err := s.HandleAction(ctx, turn.Action{
		Kind:     turn.ActionCast,
		SpellID:  spellID,
		TargetID: target.GetID(),
	})
	if err != nil {
		return nil, err
	}
	u := s.targetingUpdate("")
	u.Result = result
	return u, nil
}

// Save writes the full session snapshot through the gamestate
// repository.
func (s *Session) Save(ctx context.Context) error {
	if s.saves == nil {
		return errors.FailedPrecondition("session has no save repository")
	}

	if _, err := s.saves.Save(ctx, &gamestate.SaveInput{Snapshot: s.snapshot()}); err != nil {
		return errors.Wrap(err, "save session")
	}
	slog.Info("session saved", "session_id", s.id, "turn", s.turn)
	return nil
}

// LoadSession rebuilds a session from its saved snapshot. The config's
// Map, SessionID, and Seed are ignored; the snapshot's grid, identity,
// and RNG cursor win.
func LoadSession(ctx context.Context, cfg *SessionConfig, sessionID string) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if cfg.Saves == nil {
		return nil, errors.InvalidArgument("save repository is required")
	}

	got, err := cfg.Saves.Get(ctx, &gamestate.GetInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.Wrapf(err, "load session %q", sessionID)
	}
	snap := got.Snapshot

	loadCfg := *cfg
	loadCfg.SessionID = snap.SessionID
	s, err := assemble(ctx, &loadCfg, restoreMap(&snap.Map), rng.Restore(snap.RNGSeed, snap.RNGPosition))
	if err != nil {
		return nil, err
	}
	if err := s.restore(ctx, snap); err != nil {
		return nil, err
	}

	slog.Info("session loaded", "session_id", s.id, "turn", s.turn)
	return s, nil
}
