package spells_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/repositories/spells"
)

type InMemoryTestSuite struct {
	suite.Suite

	ctx  context.Context
	repo *spells.InMemoryRepository
}

func (s *InMemoryTestSuite) SetupTest() {
	s.ctx = context.Background()

	repo, err := spells.NewInMemory(&spells.Config{
		Spells: []entities.Spell{
			{
				ID:       "spell-lightning",
				Name:     "Lightning Bolt",
				School:   entities.SchoolEvocation,
				ManaCost: 5,
				Power:    12,
				Target:   entities.TargetSingle,
				Range:    6,
			},
			{
				ID:       "spell-heal",
				Name:     "Cure Wounds",
				School:   entities.SchoolConjuration,
				ManaCost: 4,
				Power:    10,
				Target:   entities.TargetSelf,
			},
			{
				ID:         "spell-fireball",
				Name:       "Fireball",
				School:     entities.SchoolEvocation,
				ManaCost:   8,
				Power:      10,
				Target:     entities.TargetArea,
				Range:      6,
				AreaRadius: 2,
			},
		},
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *InMemoryTestSuite) TestGet() {
	out, err := s.repo.Get(s.ctx, spells.GetInput{SpellID: "spell-heal"})
	s.Require().NoError(err)
	s.Equal("Cure Wounds", out.Spell.Name)
	s.Equal(4, out.Spell.ManaCost)
}

func (s *InMemoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, spells.GetInput{SpellID: "spell-meteor"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryTestSuite) TestGetRequiresID() {
	_, err := s.repo.Get(s.ctx, spells.GetInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *InMemoryTestSuite) TestListDefinitionOrder() {
	out, err := s.repo.List(s.ctx, spells.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Spells, 3)
	s.Equal("spell-lightning", out.Spells[0].ID)
	s.Equal("spell-heal", out.Spells[1].ID)
	s.Equal("spell-fireball", out.Spells[2].ID)
}

func (s *InMemoryTestSuite) TestListBySchool() {
	out, err := s.repo.List(s.ctx, spells.ListInput{School: entities.SchoolEvocation})
	s.Require().NoError(err)
	s.Require().Len(out.Spells, 2)
	s.Equal("spell-lightning", out.Spells[0].ID)
	s.Equal("spell-fireball", out.Spells[1].ID)
}

func (s *InMemoryTestSuite) TestRejectsDuplicateIDs() {
	_, err := spells.NewInMemory(&spells.Config{
		Spells: []entities.Spell{
			{ID: "spell-x", Name: "First"},
			{ID: "spell-x", Name: "Second"},
		},
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *InMemoryTestSuite) TestParse() {
	data := []byte(`{
		"spells": [
			{
				"id": "spell-shield",
				"name": "Stoneskin",
				"school": "transmutation",
				"mana_cost": 6,
				"power": 3,
				"target": "self"
			}
		]
	}`)

	defs, err := spells.Parse(data)
	s.Require().NoError(err)
	s.Require().Len(defs, 1)
	s.Equal("Stoneskin", defs[0].Name)
	s.Equal(entities.SchoolTransmutation, defs[0].School)
	s.Equal(entities.TargetSelf, defs[0].Target)
}

func (s *InMemoryTestSuite) TestParseRejectsBadJSON() {
	_, err := spells.Parse([]byte(`{"spells": [`))
	s.Require().Error(err)
}

func TestInMemoryTestSuite(t *testing.T) {
	suite.Run(t, new(InMemoryTestSuite))
}
