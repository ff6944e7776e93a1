package world_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/world"
)

type MapTestSuite struct {
	suite.Suite
}

func (s *MapTestSuite) TestNewMapIsAllFloor() {
	m := world.NewMap(10, 6)

	s.Equal(10, m.Width())
	s.Equal(6, m.Height())
	s.True(m.IsWalkable(entities.Position{X: 0, Y: 0}))
	s.True(m.IsWalkable(entities.Position{X: 9, Y: 5}))
}

func (s *MapTestSuite) TestBounds() {
	m := world.NewMap(10, 6)

	testCases := []struct {
		name string
		pos  entities.Position
		in   bool
	}{
		{name: "origin", pos: entities.Position{X: 0, Y: 0}, in: true},
		{name: "far corner", pos: entities.Position{X: 9, Y: 5}, in: true},
		{name: "negative x", pos: entities.Position{X: -1, Y: 3}, in: false},
		{name: "x past width", pos: entities.Position{X: 10, Y: 3}, in: false},
		{name: "y past height", pos: entities.Position{X: 3, Y: 6}, in: false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.in, m.InBounds(tc.pos))
			if !tc.in {
				s.True(m.IsWall(tc.pos), "off-grid counts as wall")
				s.False(m.IsWalkable(tc.pos))
			}
		})
	}
}

func (s *MapTestSuite) TestSetWall() {
	m := world.NewMap(10, 6)
	pos := entities.Position{X: 4, Y: 2}

	m.SetWall(pos, true)
	s.True(m.IsWall(pos))
	s.False(m.IsWalkable(pos))

	m.SetWall(pos, false)
	s.True(m.IsWalkable(pos))

	m.SetWall(entities.Position{X: 99, Y: 99}, true)
}

func (s *MapTestSuite) TestFill() {
	m := world.NewMap(4, 4)
	m.Fill(true)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			s.True(m.IsWall(entities.Position{X: x, Y: y}))
		}
	}
}

func (s *MapTestSuite) TestNewArena() {
	m := world.NewArena(8, 5)

	s.True(m.IsWall(entities.Position{X: 0, Y: 0}))
	s.True(m.IsWall(entities.Position{X: 7, Y: 4}))
	s.True(m.IsWall(entities.Position{X: 3, Y: 0}))
	s.True(m.IsWall(entities.Position{X: 0, Y: 2}))
	s.True(m.IsWalkable(entities.Position{X: 1, Y: 1}))
	s.True(m.IsWalkable(entities.Position{X: 6, Y: 3}))
}

func TestMapTestSuite(t *testing.T) {
	suite.Run(t, new(MapTestSuite))
}
