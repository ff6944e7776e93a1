package world

import (
	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/pkg/rng"
)

// Rect is a room footprint during generation. The carved interior is
// one tile smaller on each edge, so touching footprints still leave a
// wall between rooms.
type Rect struct {
	X, Y, W, H int
}

// Center returns the footprint's center position.
func (r Rect) Center() entities.Position {
	return entities.Position{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Intersects reports whether two footprints overlap or touch.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// GeneratorConfig parameterizes level generation.
type GeneratorConfig struct {
	Width       int
	Height      int
	MaxRooms    int
	MinRoomSize int
	MaxRoomSize int
	RNG         *rng.RNG
}

// Validate checks the configuration is usable.
func (cfg *GeneratorConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if cfg.RNG == nil {
		vb.RequiredField("RNG")
	}
	errors.ValidatePositive("MaxRooms", cfg.MaxRooms, vb)
	errors.ValidateRange("MinRoomSize", cfg.MinRoomSize, 3, 50, vb)
	if cfg.MaxRoomSize < cfg.MinRoomSize {
		vb.InvalidField("MaxRoomSize", "smaller than MinRoomSize")
	}
	if cfg.Width < cfg.MaxRoomSize+3 {
		vb.InvalidField("Width", "too small for the configured room size")
	}
	if cfg.Height < cfg.MaxRoomSize+3 {
		vb.InvalidField("Height", "too small for the configured room size")
	}
	return vb.Build()
}

// Level is a generated map plus the room list used to place its
// contents.
type Level struct {
	Map   *Map
	Rooms []Rect
}

// StartPosition returns the center of the first room, where the player
// enters the level.
func (l *Level) StartPosition() entities.Position {
	if len(l.Rooms) == 0 {
		return entities.Position{}
	}
	return l.Rooms[0].Center()
}

// Generate carves a rooms-and-corridors level: random non-overlapping
// rooms, each connected to the previous one with an L-shaped corridor.
func Generate(cfg *GeneratorConfig) (*Level, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid generator config")
	}

	m := NewMap(cfg.Width, cfg.Height)
	m.Fill(true)

	var rooms []Rect
	for i := 0; i < cfg.MaxRooms; i++ {
		w := cfg.RNG.Range(cfg.MinRoomSize, cfg.MaxRoomSize)
		h := cfg.RNG.Range(cfg.MinRoomSize, cfg.MaxRoomSize)
		x := cfg.RNG.Range(1, cfg.Width-w-2)
		y := cfg.RNG.Range(1, cfg.Height-h-2)

		room := Rect{X: x, Y: y, W: w, H: h}
		overlaps := false
		for _, other := range rooms {
			if room.Intersects(other) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		carveRoom(m, room)
		if len(rooms) > 0 {
			prev := rooms[len(rooms)-1].Center()
			curr := room.Center()
			if cfg.RNG.Intn(2) == 0 {
				carveHCorridor(m, prev.X, curr.X, prev.Y)
				carveVCorridor(m, prev.Y, curr.Y, curr.X)
			} else {
				carveVCorridor(m, prev.Y, curr.Y, prev.X)
				carveHCorridor(m, prev.X, curr.X, curr.Y)
			}
		}
		rooms = append(rooms, room)
	}

	return &Level{Map: m, Rooms: rooms}, nil
}

// NewArena creates a bordered open map with no interior walls. Used by
// quick-start sessions and anywhere a predictable layout matters more
// than variety.
func NewArena(width, height int) *Map {
	m := NewMap(width, height)
	for x := 0; x < width; x++ {
		m.SetWall(entities.Position{X: x, Y: 0}, true)
		m.SetWall(entities.Position{X: x, Y: height - 1}, true)
	}
	for y := 0; y < height; y++ {
		m.SetWall(entities.Position{X: 0, Y: y}, true)
		m.SetWall(entities.Position{X: width - 1, Y: y}, true)
	}
	return m
}

// demoPillarStep is the spacing of the demo arena's pillar grid.
const demoPillarStep = 6

// NewDemoLevel builds the fixed demo layout: a bordered arena with a
// sparse pillar grid, its interior split into four quadrant rooms that
// anchor spawn placement. The first room is where the player enters.
// Quadrant centers can land on a pillar for some sizes, so callers
// placing entities should fall back to another room tile when the
// center is not walkable.
func NewDemoLevel(width, height int) *Level {
	m := NewArena(width, height)
	for y := demoPillarStep; y < height-1; y += demoPillarStep {
		for x := demoPillarStep; x < width-1; x += demoPillarStep {
			m.SetWall(entities.Position{X: x, Y: y}, true)
		}
	}

	halfW := width / 2
	halfH := height / 2
	rooms := []Rect{
		{X: 1, Y: 1, W: halfW - 2, H: halfH - 2},
		{X: halfW + 1, Y: 1, W: width - halfW - 3, H: halfH - 2},
		{X: 1, Y: halfH + 1, W: halfW - 2, H: height - halfH - 3},
		{X: halfW + 1, Y: halfH + 1, W: width - halfW - 3, H: height - halfH - 3},
	}
	return &Level{Map: m, Rooms: rooms}
}

func carveRoom(m *Map, room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			m.SetWall(entities.Position{X: x, Y: y}, false)
		}
	}
}

func carveHCorridor(m *Map, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		m.SetWall(entities.Position{X: x, Y: y}, false)
	}
}

func carveVCorridor(m *Map, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		m.SetWall(entities.Position{X: x, Y: y}, false)
	}
}
