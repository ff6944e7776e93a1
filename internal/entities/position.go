package entities

// Position is a grid coordinate. Values are immutable; movement
// produces new positions.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shift returns the position offset by (dx, dy).
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the Manhattan distance to other. This is the
// distance measure for attack adjacency, chase radius, and targeting
// range.
func (p Position) Manhattan(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// Neighbors returns the 4 orthogonal neighbors, or all 8 when
// diagonals are included. Order is deterministic: clockwise from
// north.
func (p Position) Neighbors(diagonals bool) []Position {
	if !diagonals {
		return []Position{
			{p.X, p.Y - 1},
			{p.X + 1, p.Y},
			{p.X, p.Y + 1},
			{p.X - 1, p.Y},
		}
	}
	return []Position{
		{p.X, p.Y - 1},
		{p.X + 1, p.Y - 1},
		{p.X + 1, p.Y},
		{p.X + 1, p.Y + 1},
		{p.X, p.Y + 1},
		{p.X - 1, p.Y + 1},
		{p.X - 1, p.Y},
		{p.X - 1, p.Y - 1},
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// sign returns -1, 0, or 1. Used for greedy single-step movement.
func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// StepToward returns the greedy single-step offset from p toward
// target, moving on both axes independently.
func (p Position) StepToward(target Position) (dx, dy int) {
	return sign(target.X - p.X), sign(target.Y - p.Y)
}
