// Package world provides the tile grid the simulation runs on, plus
// visibility queries and level generation. The grid answers spatial
// questions only; entity placement and collision against other
// entities are the session's concern.
package world

import "github.com/KirkDiggler/rogue-api/internal/entities"

// Tile is one grid cell.
type Tile struct {
	Wall bool `json:"wall"`
}

// Map is a fixed-size tile grid.
type Map struct {
	width  int
	height int
	tiles  [][]Tile
}

// NewMap creates an all-floor map of the given dimensions. Dimensions
// below one are raised to one.
func NewMap(width, height int) *Map {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
	}
	return &Map{width: width, height: height, tiles: tiles}
}

// Width returns the horizontal tile count.
func (m *Map) Width() int { return m.width }

// Height returns the vertical tile count.
func (m *Map) Height() int { return m.height }

// InBounds reports whether the position is on the grid.
func (m *Map) InBounds(pos entities.Position) bool {
	return pos.X >= 0 && pos.X < m.width && pos.Y >= 0 && pos.Y < m.height
}

// IsWall reports whether the position blocks movement and sight.
// Anything off the grid counts as wall.
func (m *Map) IsWall(pos entities.Position) bool {
	if !m.InBounds(pos) {
		return true
	}
	return m.tiles[pos.Y][pos.X].Wall
}

// IsWalkable reports whether an entity can stand on the position.
func (m *Map) IsWalkable(pos entities.Position) bool {
	return m.InBounds(pos) && !m.tiles[pos.Y][pos.X].Wall
}

// IsTransparent reports whether sight passes through the position.
// Only walls are opaque.
func (m *Map) IsTransparent(pos entities.Position) bool {
	return !m.IsWall(pos)
}

// SetWall sets the wall flag at a position. Off-grid positions are
// ignored.
func (m *Map) SetWall(pos entities.Position, wall bool) {
	if !m.InBounds(pos) {
		return
	}
	m.tiles[pos.Y][pos.X].Wall = wall
}

// Fill sets every tile's wall flag.
func (m *Map) Fill(wall bool) {
	for y := range m.tiles {
		for x := range m.tiles[y] {
			m.tiles[y][x].Wall = wall
		}
	}
}

// Tiles returns the backing grid, row-major. Shared, not a copy; used
// by rendering and persistence.
func (m *Map) Tiles() [][]Tile {
	return m.tiles
}
