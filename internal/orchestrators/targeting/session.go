// Package targeting implements cursor-based target acquisition within
// a range limit. A Session is a small state machine owned by the game
// session: inactive until Start succeeds, then driven by cursor and
// cycle inputs until Select or Cancel deactivates it.
package targeting

import (
	"github.com/KirkDiggler/rogue-api/internal/entities"
)

// Session holds the state of one targeting interaction. The zero value
// is an inactive session ready for Start.
type Session struct {
	active     bool
	origin     entities.Position
	maxRange   int
	cursor     entities.Position
	candidates []*entities.Entity
	index      int
	mapWidth   int
	mapHeight  int
}

// NewSession creates an inactive targeting session.
func NewSession() *Session {
	return &Session{}
}

// Start enters targeting mode. Candidates are filtered to living
// entities within Manhattan distance maxRange of origin; the cursor
// snaps to the first survivor. Returns false, leaving the session
// inactive, when nothing is in range.
func (s *Session) Start(origin entities.Position, maxRange int, candidates []*entities.Entity, mapWidth, mapHeight int) bool {
	inRange := make([]*entities.Entity, 0, len(candidates))
	for _, c := range candidates {
		if entities.IsAlive(c) && origin.Manhattan(c.Position) <= maxRange {
			inRange = append(inRange, c)
		}
	}
	if len(inRange) == 0 {
		return false
	}

	s.active = true
	s.origin = origin
	s.maxRange = maxRange
	s.mapWidth = mapWidth
	s.mapHeight = mapHeight
	s.candidates = inRange
	s.index = 0
	s.cursor = inRange[0].Position

	return true
}

// Active reports whether a targeting interaction is in progress.
func (s *Session) Active() bool { return s.active }

// Cursor returns the cursor position; ok is false while inactive.
func (s *Session) Cursor() (pos entities.Position, ok bool) {
	if !s.active {
		return entities.Position{}, false
	}
	return s.cursor, true
}

// Candidates returns the in-range targets captured at Start, in their
// original order.
func (s *Session) Candidates() []*entities.Entity {
	return s.candidates
}

// MoveCursor nudges the cursor by one step. Moves that would leave the
// map or exceed the range limit from the origin are ignored.
func (s *Session) MoveCursor(dx, dy int) {
	if !s.active {
		return
	}

	next := s.cursor.Shift(dx, dy)
	if next.X < 0 || next.X >= s.mapWidth || next.Y < 0 || next.Y >= s.mapHeight {
		return
	}
	if s.origin.Manhattan(next) > s.maxRange {
		return
	}
	s.cursor = next
}

// Cycle advances through the candidate list, wrapping at either end,
// and snaps the cursor to the new candidate. Direction is +1 for next
// and -1 for previous.
func (s *Session) Cycle(direction int) {
	if !s.active || len(s.candidates) == 0 {
		return
	}

	n := len(s.candidates)
	s.index = ((s.index+direction)%n + n) % n
	s.cursor = s.candidates[s.index].Position
}

// CurrentTarget returns the candidate exactly under the cursor, or nil
// when the cursor sits on empty ground.
func (s *Session) CurrentTarget() *entities.Entity {
	if !s.active {
		return nil
	}
	for _, c := range s.candidates {
		if c.Position == s.cursor {
			return c
		}
	}
	return nil
}

// Select confirms the current target, deactivating the session. The
// returned target is nil when the cursor was not on a candidate.
func (s *Session) Select() *entities.Entity {
	target := s.CurrentTarget()
	s.Cancel()
	return target
}

// Cancel deactivates the session and clears every piece of captured
// state.
func (s *Session) Cancel() {
	*s = Session{}
}
