package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/pkg/rng"
	"github.com/KirkDiggler/rogue-api/internal/repositories/gamestate"
	"github.com/KirkDiggler/rogue-api/internal/repositories/recipes"
	"github.com/KirkDiggler/rogue-api/internal/repositories/spells"
	"github.com/KirkDiggler/rogue-api/internal/repositories/templates"
	"github.com/KirkDiggler/rogue-api/internal/world"
)

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/KirkDiggler/rogue-api/internal/game SessionService

// SessionService is the session lifecycle surface the transport layer
// drives.
type SessionService interface {
	// NewSession starts a fresh demo session
	NewSession(ctx context.Context) (*Session, error)

	// LoadSession restores a saved session by ID
	LoadSession(ctx context.Context, sessionID string) (*Session, error)

	// ListSaves returns the IDs of saved sessions
	ListSaves(ctx context.Context) ([]string, error)
}

// SpawnWeight is one weighted entry in a scenario spawn table.
type SpawnWeight struct {
	TemplateID string
	Weight     int
}

// Scenario describes how a fresh demo level is populated. The player
// enters in the first room; monsters and items are scattered across
// the rest, drawn from the weighted tables.
type Scenario struct {
	PlayerTemplateID   string
	Monsters           []SpawnWeight
	Items              []SpawnWeight
	MaxMonstersPerRoom int
	MaxItemsPerRoom    int
}

// DefaultScenario returns the stock demo encounter: orcs with the
// occasional troll, and a loot table skewed toward potions and basic
// gear with rare high-end pieces.
func DefaultScenario() *Scenario {
	return &Scenario{
		PlayerTemplateID:   "player",
		MaxMonstersPerRoom: 2,
		MaxItemsPerRoom:    2,
		Monsters: []SpawnWeight{
			{TemplateID: "orc", Weight: 80},
			{TemplateID: "troll", Weight: 20},
		},
		Items: []SpawnWeight{
			{TemplateID: "healing_potion", Weight: 30},
			{TemplateID: "greater_healing_potion", Weight: 15},
			{TemplateID: "strength_potion", Weight: 10},
			{TemplateID: "defense_potion", Weight: 10},
			{TemplateID: "mana_potion", Weight: 8},
			{TemplateID: "lightning_scroll", Weight: 5},
			{TemplateID: "confusion_scroll", Weight: 5},
			{TemplateID: "cheese_wheel", Weight: 3},
			{TemplateID: "invisibility_potion", Weight: 2},
			{TemplateID: "lucky_coin", Weight: 2},
			{TemplateID: "moonleaf", Weight: 10},
			{TemplateID: "mana_crystal", Weight: 8},
			{TemplateID: "purifying_salt", Weight: 6},
			{TemplateID: "dragon_scale", Weight: 2},
			{TemplateID: "wooden_club", Weight: 8},
			{TemplateID: "iron_sword", Weight: 6},
			{TemplateID: "steel_sword", Weight: 4},
			{TemplateID: "battle_axe", Weight: 3},
			{TemplateID: "leather_armor", Weight: 8},
			{TemplateID: "chainmail", Weight: 5},
			{TemplateID: "plate_armor", Weight: 3},
			{TemplateID: "leather_helmet", Weight: 6},
			{TemplateID: "steel_helmet", Weight: 4},
			{TemplateID: "leather_boots", Weight: 6},
			{TemplateID: "steel_boots", Weight: 4},
			{TemplateID: "leather_gloves", Weight: 6},
			{TemplateID: "gauntlets", Weight: 3},
			{TemplateID: "ring_of_power", Weight: 2},
			{TemplateID: "ring_of_protection", Weight: 2},
			{TemplateID: "amulet_of_strength", Weight: 2},
			{TemplateID: "amulet_of_defense", Weight: 2},
		},
	}
}

// ManagerConfig holds the dependencies for creating a Manager.
type ManagerConfig struct {
	Templates templates.Repository
	Spells    spells.Repository
	Recipes   recipes.Repository

	// Saves is optional. Sessions created without it cannot save.
	Saves gamestate.Repository

	// Scenario defaults to DefaultScenario.
	Scenario *Scenario

	// Width and Height size the demo level. Defaults are 40 by 24.
	Width  int
	Height int

	// Seed fixes every session's RNG when non-zero. Zero draws a
	// fresh time-based seed per session.
	Seed int64
}

// Validate checks the configuration is usable.
func (c *ManagerConfig) Validate() error {
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
	if c.Width != 0 && c.Width < 12 {
		vb.InvalidField("Width", "must be at least 12")
	}
	if c.Height != 0 && c.Height < 10 {
		vb.InvalidField("Height", "must be at least 10")
	}
	return vb.Build()
}

// Manager creates and restores game sessions. It owns the content
// repositories and the demo scenario; transports hold one Manager and
// mint a Session per connection.
type Manager struct {
	templates templates.Repository
	spells    spells.Repository
	recipes   recipes.Repository
	saves     gamestate.Repository
	scenario  *Scenario
	width     int
	height    int
	seed      int64
}

var _ SessionService = (*Manager)(nil)

// NewManager creates a Manager from the given configuration.
func NewManager(cfg *ManagerConfig) (*Manager, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	scenario := cfg.Scenario
	if scenario == nil {
		scenario = DefaultScenario()
	}
	width := cfg.Width
	if width == 0 {
		width = 40
	}
	height := cfg.Height
	if height == 0 {
		height = 24
	}

	return &Manager{
		templates: cfg.Templates,
		spells:    cfg.Spells,
		recipes:   cfg.Recipes,
		saves:     cfg.Saves,
		scenario:  scenario,
		width:     width,
		height:    height,
		seed:      cfg.Seed,
	}, nil
}

// NewSession builds a fresh demo session: the fixed pillared arena,
// the player in the first quadrant, and scenario spawns in the rest.
func (m *Manager) NewSession(ctx context.Context) (*Session, error) {
	seed := m.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	lvl := world.NewDemoLevel(m.width, m.height)
	sess, err := NewSession(ctx, &SessionConfig{
		Map:       lvl.Map,
		Templates: m.templates,
		Spells:    m.spells,
		Recipes:   m.recipes,
		Saves:     m.saves,
		Seed:      seed,
	})
	if err != nil {
		return nil, err
	}

	if err := m.populate(ctx, sess, lvl, rng.New(seed)); err != nil {
		return nil, errors.Wrap(err, "populate demo level")
	}

	slog.Info("demo session populated",
		"session_id", sess.ID(),
		"entities", len(sess.Entities()),
	)
	return sess, nil
}

// LoadSession restores a saved session by ID.
func (m *Manager) LoadSession(ctx context.Context, sessionID string) (*Session, error) {
	return LoadSession(ctx, &SessionConfig{
		Templates: m.templates,
		Spells:    m.spells,
		Recipes:   m.recipes,
		Saves:     m.saves,
	}, sessionID)
}

// ListSaves returns the IDs of saved sessions.
func (m *Manager) ListSaves(ctx context.Context) ([]string, error) {
	if m.saves == nil {
		return nil, errors.FailedPrecondition("no save repository configured")
	}
	out, err := m.saves.List(ctx, &gamestate.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "list saves")
	}
	return out.SessionIDs, nil
}

func (m *Manager) populate(ctx context.Context, sess *Session, lvl *world.Level, pr *rng.RNG) error {
	start, ok := startTile(sess, lvl)
	if !ok {
		return errors.Internal("demo level has no walkable start tile")
	}
	if _, err := sess.SpawnPlayer(ctx, m.scenario.PlayerTemplateID, start); err != nil {
		return err
	}

	for _, room := range lvl.Rooms[1:] {
		count := pr.Intn(m.scenario.MaxMonstersPerRoom + 1)
		if err := m.spawnGroup(ctx, sess, room, pr, m.scenario.Monsters, count); err != nil {
			return err
		}
		count = pr.Intn(m.scenario.MaxItemsPerRoom + 1)
		if err := m.spawnGroup(ctx, sess, room, pr, m.scenario.Items, count); err != nil {
			return err
		}
	}
	return nil
}

// spawnGroup places count entities drawn from the weighted table onto
// distinct open tiles of the room. Each group draws from its own tile
// pool, so monsters never stack on monsters but an item can share a
// tile with one.
func (m *Manager) spawnGroup(ctx context.Context, sess *Session, room world.Rect, pr *rng.RNG, table []SpawnWeight, count int) error {
	tiles := roomTiles(sess, room)
	for i := 0; i < count && len(tiles) > 0; i++ {
		idx := pr.Intn(len(tiles))
		pos := tiles[idx]
		tiles = append(tiles[:idx], tiles[idx+1:]...)

		templateID := pickWeighted(pr, table)
		if templateID == "" {
			continue
		}
		if _, err := sess.SpawnAt(ctx, templateID, pos); err != nil {
			return err
		}
	}
	return nil
}

// startTile returns the player entry tile: the first room's center,
// falling back to the first open interior tile when a pillar landed on
// the center.
func startTile(sess *Session, lvl *world.Level) (entities.Position, bool) {
	center := lvl.StartPosition()
	if sess.Map().IsWalkable(center) {
		return center, true
	}
	tiles := roomTiles(sess, lvl.Rooms[0])
	if len(tiles) == 0 {
		return entities.Position{}, false
	}
	return tiles[0], true
}

// roomTiles returns the walkable interior tiles of a room footprint.
func roomTiles(sess *Session, room world.Rect) []entities.Position {
	var tiles []entities.Position
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			pos := entities.Position{X: x, Y: y}
			if sess.Map().IsWalkable(pos) {
				tiles = append(tiles, pos)
			}
		}
	}
	return tiles
}

// pickWeighted rolls against the table's cumulative weights. Entries
// with non-positive weight never win.
func pickWeighted(pr *rng.RNG, table []SpawnWeight) string {
	total := 0
	for _, entry := range table {
		if entry.Weight > 0 {
			total += entry.Weight
		}
	}
	if total == 0 {
		return ""
	}

	roll := pr.Range(1, total)
	for _, entry := range table {
		if entry.Weight <= 0 {
			continue
		}
		roll -= entry.Weight
		if roll <= 0 {
			return entry.TemplateID
		}
	}
	return ""
}
