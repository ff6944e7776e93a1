package world

import "github.com/KirkDiggler/rogue-api/internal/entities"

// HasLineOfSight reports whether an unobstructed straight line runs
// between two positions, stepped with integer Bresenham. Walls on the
// endpoints themselves do not block, so an actor standing in a doorway
// can still be seen.
func HasLineOfSight(m *Map, from, to entities.Position) bool {
	if from == to {
		return true
	}

	x0, y0 := from.X, from.Y
	x1, y1 := to.X, to.Y

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	sx := step(x0, x1)
	sy := step(y0, y1)

	err := dx - dy
	for {
		at := entities.Position{X: x0, Y: y0}
		if at != from && at != to && m.IsWall(at) {
			return false
		}
		if x0 == x1 && y0 == y1 {
			return true
		}
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func step(from, to int) int {
	switch {
	case to > from:
		return 1
	case to < from:
		return -1
	default:
		return 0
	}
}

// Octant coordinate transforms for recursive shadowcasting.
var octants = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// VisibleTiles computes the field of view from origin out to radius
// using recursive shadowcasting over eight octants. The origin is
// always visible. A non-positive radius sees nothing.
func VisibleTiles(m *Map, origin entities.Position, radius int) map[entities.Position]bool {
	visible := make(map[entities.Position]bool)
	if radius <= 0 || !m.InBounds(origin) {
		return visible
	}

	visible[origin] = true
	for i := 0; i < 8; i++ {
		castLight(m, origin, 1, 1.0, 0.0, radius,
			octants[0][i], octants[1][i], octants[2][i], octants[3][i], visible)
	}
	return visible
}

func castLight(m *Map, origin entities.Position, row int, start, end float64, radius, xx, xy, yx, yy int, visible map[entities.Position]bool) {
	if start < end {
		return
	}

	radiusSq := float64(radius * radius)

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for dx < 0 {
			dx++
			dy = -j

			leftSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rightSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rightSlope {
				continue
			}
			if end > leftSlope {
				break
			}

			at := entities.Position{
				X: origin.X + dx*xx + dy*xy,
				Y: origin.Y + dx*yx + dy*yy,
			}

			if m.InBounds(at) && float64(dx*dx+dy*dy) < radiusSq {
				visible[at] = true
			}

			if blocked {
				if m.IsWall(at) {
					newStart = rightSlope
					continue
				}
				blocked = false
				start = newStart
			} else if m.IsWall(at) && j < radius {
				blocked = true
				castLight(m, origin, j+1, start, leftSlope, radius, xx, xy, yx, yy, visible)
				newStart = rightSlope
			}
		}
		if blocked {
			break
		}
	}
}

// LinePositions returns the Bresenham line from start through to the
// target, excluding the start itself. Beam spells use this to find
// what stands along their path.
func LinePositions(from, to entities.Position) []entities.Position {
	if from == to {
		return nil
	}

	var line []entities.Position
	x0, y0 := from.X, from.Y
	x1, y1 := to.X, to.Y

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	sx := step(x0, x1)
	sy := step(y0, y1)

	err := dx - dy
	for {
		if x0 == x1 && y0 == y1 {
			line = append(line, entities.Position{X: x0, Y: y0})
			return line
		}
		if !(x0 == from.X && y0 == from.Y) {
			line = append(line, entities.Position{X: x0, Y: y0})
		}
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}
