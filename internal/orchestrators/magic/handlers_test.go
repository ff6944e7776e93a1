package magic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/events"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/magic"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/statuseffect"
	"github.com/KirkDiggler/rogue-api/internal/testutils"
)

type HandlersTestSuite struct {
	suite.Suite

	ctx     context.Context
	effects statuseffect.Service

	player *entities.Entity
	orc    *entities.Entity
}

func (s *HandlersTestSuite) SetupTest() {
	s.ctx = context.Background()

	effects, err := statuseffect.NewOrchestrator(&statuseffect.Config{
		EventBus: events.NewBus(),
	})
	s.Require().NoError(err)
	s.effects = effects

	s.player = testutils.CreateTestPlayer("ent_player", entities.Position{X: 1, Y: 1})
	s.orc = testutils.CreateTestOrc("ent_orc", entities.Position{X: 2, Y: 1})
}

func (s *HandlersTestSuite) TestDamageHandler() {
	result := magic.NewDamageHandler().Apply(s.ctx, s.player, s.orc, 4)

	s.True(result.Success)
	s.Equal(4, result.DamageDealt)
	s.False(result.TargetDied)
	s.Equal("Hero's spell hits Orc for 4 damage!", result.Message)
	s.Equal(testutils.TestOrcMaxHP-4, s.orc.HP())
}

func (s *HandlersTestSuite) TestDamageHandlerKills() {
	result := magic.NewDamageHandler().Apply(s.ctx, s.player, s.orc, 50)

	s.True(result.Success)
	s.True(result.TargetDied)
	s.Equal("Hero's spell kills Orc!", result.Message)
	s.Equal(testutils.TestOrcMaxHP, result.DamageDealt, "overkill reports actual HP removed")
}

func (s *HandlersTestSuite) TestDamageHandlerWithoutHealth() {
	door := entities.New("ent_door", entities.KindScenery, "Door", '+', entities.Position{})

	result := magic.NewDamageHandler().Apply(s.ctx, s.player, door, 4)
	s.False(result.Success)
	s.Equal("Door cannot be harmed!", result.Message)
}

func (s *HandlersTestSuite) TestHealHandler() {
	s.player.Health().TakeDamage(8)

	result := magic.NewHealHandler().Apply(s.ctx, s.player, s.player, 5)
	s.True(result.Success)
	s.Equal(5, result.HealingDone)
	s.Equal("Hero heals for 5 HP!", result.Message)
}

func (s *HandlersTestSuite) TestHealHandlerOnOther() {
	s.orc.Health().TakeDamage(4)

	result := magic.NewHealHandler().Apply(s.ctx, s.player, s.orc, 10)
	s.True(result.Success)
	s.Equal(4, result.HealingDone, "healing clamps at max")
	s.Equal("Hero heals Orc for 4 HP!", result.Message)
}

func (s *HandlersTestSuite) TestHealHandlerAtFull() {
	result := magic.NewHealHandler().Apply(s.ctx, s.player, s.player, 5)
	s.False(result.Success)
	s.Equal("Hero is already at full health!", result.Message)
	s.Equal(0, result.HealingDone)
}

func (s *HandlersTestSuite) TestHealHandlerWithoutHealth() {
	door := entities.New("ent_door", entities.KindScenery, "Door", '+', entities.Position{})

	result := magic.NewHealHandler().Apply(s.ctx, s.player, door, 5)
	s.False(result.Success)
	s.Equal("Door cannot be healed!", result.Message)
}

func (s *HandlersTestSuite) TestBuffHandler() {
	handler := magic.NewBuffHandler(s.effects, 0)

	result := handler.Apply(s.ctx, s.player, s.player, 3)
	s.True(result.Success)
	s.Equal("Hero feels empowered! (+3 power)", result.Message)

	buff, ok := s.player.StatusEffects().Get(entities.EffectStrength)
	s.Require().True(ok, "the buff lives in the status effect engine")
	s.Equal(magic.DefaultBuffDuration, buff.Duration)
	s.Equal(3, buff.Power)
	s.Equal(testutils.TestPlayerPower+3, entities.EffectivePower(s.player))
	s.Equal(testutils.TestPlayerPower, s.player.Power(),
		"base combat stats stay untouched")
}

func (s *HandlersTestSuite) TestBuffHandlerOnOther() {
	handler := magic.NewBuffHandler(s.effects, 5)

	result := handler.Apply(s.ctx, s.player, s.orc, 2)
	s.True(result.Success)
	s.Equal("Hero empowers Orc! (+2 power)", result.Message)

	buff, ok := s.orc.StatusEffects().Get(entities.EffectStrength)
	s.Require().True(ok)
	s.Equal(5, buff.Duration)
}

func (s *HandlersTestSuite) TestStatusHandler() {
	handler := magic.NewStatusHandler(s.effects, entities.EffectConfusion, 4, "looks confused")

	result := handler.Apply(s.ctx, s.player, s.orc, 0)
	s.True(result.Success)
	s.Equal("Orc looks confused!", result.Message)
	s.True(s.orc.StatusEffects().Has(entities.EffectConfusion))
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
