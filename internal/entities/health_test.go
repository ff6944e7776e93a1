package entities_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rogue-api/internal/entities"
)

type HealthTestSuite struct {
	suite.Suite
}

func (s *HealthTestSuite) TestNewHealthStartsFull() {
	h := entities.NewHealth(30)
	s.Equal(30, h.HP())
	s.Equal(30, h.MaxHP())
	s.True(h.IsAlive())
}

func (s *HealthTestSuite) TestTakeDamage() {
	s.Run("partial damage", func() {
		h := entities.NewHealth(10)
		s.Equal(3, h.TakeDamage(3))
		s.Equal(7, h.HP())
		s.True(h.IsAlive())
	})

	s.Run("overkill clamps at zero", func() {
		h := entities.NewHealth(10)
		s.Equal(10, h.TakeDamage(25))
		s.Equal(0, h.HP())
		s.False(h.IsAlive())
	})

	s.Run("negative damage is ignored", func() {
		h := entities.NewHealth(10)
		s.Equal(0, h.TakeDamage(-5))
		s.Equal(10, h.HP())
	})
}

func (s *HealthTestSuite) TestHeal() {
	h := entities.NewHealth(20)
	h.TakeDamage(15)

	s.Run("partial heal", func() {
		s.Equal(5, h.Heal(5))
		s.Equal(10, h.HP())
	})

	s.Run("overheal clamps at max and reports actual", func() {
		s.Equal(10, h.Heal(50))
		s.Equal(20, h.HP())
	})

	s.Run("healing at full restores nothing", func() {
		s.Equal(0, h.Heal(5))
	})
}

func (s *HealthTestSuite) TestSetMaxHP() {
	s.Run("raising max keeps current", func() {
		h := entities.NewHealth(10)
		h.SetMaxHP(20)
		s.Equal(20, h.MaxHP())
		s.Equal(10, h.HP())
	})

	s.Run("lowering max clamps current", func() {
		h := entities.NewHealth(20)
		h.SetMaxHP(8)
		s.Equal(8, h.MaxHP())
		s.Equal(8, h.HP())
	})

	s.Run("max never drops below one", func() {
		h := entities.NewHealth(10)
		h.SetMaxHP(0)
		s.Equal(1, h.MaxHP())
	})
}

func (s *HealthTestSuite) TestSetHPClamps() {
	h := entities.NewHealth(10)

	h.SetHP(-3)
	s.Equal(0, h.HP())

	h.SetHP(99)
	s.Equal(10, h.HP())
}

func TestHealthTestSuite(t *testing.T) {
	suite.Run(t, new(HealthTestSuite))
}
