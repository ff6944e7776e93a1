package entities_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rogue-api/internal/entities"
)

type EntityTestSuite struct {
	suite.Suite
}

func (s *EntityTestSuite) TestNewEntityHasNoComponents() {
	e := entities.New("ent-1", entities.KindMonster, "Orc", 'o', entities.Position{X: 3, Y: 4})

	s.Equal("ent-1", e.GetID())
	s.Equal(entities.KindMonster, e.GetType())
	s.Equal("Orc", e.Name)
	s.Equal(entities.Position{X: 3, Y: 4}, e.Position)
	s.False(e.Has(entities.CapabilityHealth))
	s.Nil(e.Health())
	s.Nil(e.Combat())
	s.Nil(e.Inventory())
}

func (s *EntityTestSuite) TestAttachAndTypedAccessors() {
	e := entities.New("ent-1", entities.KindMonster, "Orc", 'o', entities.Position{})
	e.Attach(entities.NewHealth(10))
	e.Attach(entities.NewCombat(3, 1))

	s.True(e.Has(entities.CapabilityHealth))
	s.Require().NotNil(e.Health())
	s.Equal(10, e.Health().HP())
	s.Require().NotNil(e.Combat())
	s.Equal(3, e.Combat().Power)
}

func (s *EntityTestSuite) TestAttachReplacesSameCapability() {
	e := entities.New("ent-1", entities.KindMonster, "Orc", 'o', entities.Position{})
	e.Attach(entities.NewHealth(10))
	e.Attach(entities.NewHealth(25))

	s.Equal(25, e.MaxHP())
}

func (s *EntityTestSuite) TestDetach() {
	e := entities.New("ent-1", entities.KindMonster, "Orc", 'o', entities.Position{})
	e.Attach(entities.NewHealth(10))
	e.Detach(entities.CapabilityHealth)

	s.False(e.Has(entities.CapabilityHealth))
	s.Nil(e.Health())
}

func (s *EntityTestSuite) TestStrictAccessorPanicsWithoutComponent() {
	e := entities.New("ent-1", entities.KindScenery, "Boulder", '0', entities.Position{})

	defer func() {
		r := recover()
		s.Require().NotNil(r)
		missing, ok := r.(*entities.MissingComponentError)
		s.Require().True(ok)
		s.Equal("Boulder", missing.EntityName)
		s.Equal(entities.CapabilityCombat, missing.Capability)
	}()
	_ = e.Power()
}

func (s *EntityTestSuite) TestMove() {
	e := entities.New("ent-1", entities.KindPlayer, "Hero", '@', entities.Position{X: 5, Y: 5})

	e.Move(1, -1)
	s.Equal(entities.Position{X: 6, Y: 4}, e.Position)

	e.MoveTo(entities.Position{X: 0, Y: 0})
	s.Equal(entities.Position{X: 0, Y: 0}, e.Position)
}

func (s *EntityTestSuite) TestIsAlive() {
	s.Run("nil entity is not alive", func() {
		s.False(entities.IsAlive(nil))
	})

	s.Run("entity without health is not alive", func() {
		item := entities.New("item-1", entities.KindItem, "Potion", '!', entities.Position{})
		s.False(entities.IsAlive(item))
	})

	s.Run("entity with positive hit points is alive", func() {
		orc := entities.New("ent-1", entities.KindMonster, "Orc", 'o', entities.Position{})
		orc.Attach(entities.NewHealth(10))
		s.True(entities.IsAlive(orc))
	})

	s.Run("entity at zero hit points is dead", func() {
		orc := entities.New("ent-1", entities.KindMonster, "Orc", 'o', entities.Position{})
		health := entities.NewHealth(10)
		health.TakeDamage(10)
		orc.Attach(health)
		s.False(entities.IsAlive(orc))
	})
}

func (s *EntityTestSuite) TestIsMonster() {
	player := entities.New("player-1", entities.KindPlayer, "Hero", '@', entities.Position{})
	player.Attach(entities.NewHealth(30))
	player.Attach(entities.NewCombat(5, 2))
	player.BlocksMovement = true
	s.False(entities.IsMonster(player))

	orc := entities.New("ent-1", entities.KindMonster, "Orc", 'o', entities.Position{})
	orc.Attach(entities.NewHealth(10))
	orc.Attach(entities.NewCombat(3, 0))
	orc.BlocksMovement = true
	s.True(entities.IsMonster(orc))

	corpse := entities.New("ent-2", entities.KindScenery, "remains of Orc", '%', entities.Position{})
	s.False(entities.IsMonster(corpse))
}

func (s *EntityTestSuite) TestEffectiveStats() {
	orc := entities.New("ent-1", entities.KindMonster, "Orc", 'o', entities.Position{})
	orc.Attach(entities.NewCombat(5, 2))

	s.Run("without status effects the base stats apply", func() {
		s.Equal(5, entities.EffectivePower(orc))
		s.Equal(2, entities.EffectiveDefense(orc))
	})

	s.Run("strength and defense effects raise the stats", func() {
		effects := entities.NewStatusEffects()
		_, ok := effects.Add(entities.EffectStrength, 10, 3)
		s.Require().True(ok)
		_, ok = effects.Add(entities.EffectDefense, 5, 2)
		s.Require().True(ok)
		orc.Attach(effects)

		s.Equal(8, entities.EffectivePower(orc))
		s.Equal(4, entities.EffectiveDefense(orc))
	})

	s.Run("poison does not change stats", func() {
		effects := entities.NewStatusEffects()
		_, ok := effects.Add(entities.EffectPoison, 4, 2)
		s.Require().True(ok)
		orc.Attach(effects)

		s.Equal(5, entities.EffectivePower(orc))
		s.Equal(2, entities.EffectiveDefense(orc))
	})
}

func TestEntityTestSuite(t *testing.T) {
	suite.Run(t, new(EntityTestSuite))
}
