package equipment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/events"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/equipment"
	"github.com/KirkDiggler/rogue-api/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite

	ctx      context.Context
	bus      *events.Bus
	recorded []events.Event
	svc      equipment.Service

	player *entities.Entity
	sword  *entities.Entity
	armor  *entities.Entity
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.bus = events.NewBus()
	s.recorded = nil
	s.bus.SubscribeAll(func(e events.Event) {
		s.recorded = append(s.recorded, e)
	})

	svc, err := equipment.NewOrchestrator(&equipment.Config{
		EventBus: s.bus,
	})
	s.Require().NoError(err)
	s.svc = svc

	s.player = testutils.CreateTestPlayer("ent_player", entities.Position{X: 1, Y: 1})
	s.sword = testutils.CreateTestSword("ent_sword", entities.Position{})
	s.armor = testutils.CreateTestArmor("ent_armor", entities.Position{})
}

func (s *OrchestratorTestSuite) TestConfigValidation() {
	_, err := equipment.NewOrchestrator(&equipment.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestEquip() {
	out, err := s.svc.Equip(s.ctx, &equipment.EquipInput{
		Owner: s.player,
		Item:  s.sword,
	})
	s.Require().NoError(err)
	s.True(out.Equipped)
	s.Nil(out.Previous)

	s.Equal(testutils.TestPlayerPower+3, s.player.Power())
	s.Same(s.sword, s.player.Equipment().Worn(entities.SlotWeapon))

	s.Require().Len(s.recorded, 1)
	evt := s.recorded[0].(events.EquipEvent)
	s.Equal("Hero", evt.EntityName)
	s.Equal("Iron Sword", evt.ItemName)
	s.Equal("weapon", evt.Slot)
	s.Equal(3, evt.PowerBonus)
}

func (s *OrchestratorTestSuite) TestEquipRejectsNonEquippable() {
	potion := testutils.CreateTestHealingPotion("ent_potion", entities.Position{})

	out, err := s.svc.Equip(s.ctx, &equipment.EquipInput{
		Owner: s.player,
		Item:  potion,
	})
	s.Require().NoError(err, "a non-equippable item is a gameplay outcome, not a fault")
	s.False(out.Equipped)
	s.Equal("Healing Potion cannot be equipped", out.Reason)

	s.Equal(testutils.TestPlayerPower, s.player.Power())
	s.Empty(s.recorded)
}

func (s *OrchestratorTestSuite) TestEquipSwapsOccupiedSlot() {
	_, err := s.svc.Equip(s.ctx, &equipment.EquipInput{Owner: s.player, Item: s.sword})
	s.Require().NoError(err)
	s.recorded = nil

	dagger := entities.New("ent_dagger", entities.KindItem, "Dagger", '/', entities.Position{})
	dagger.Attach(&entities.EquipmentStats{Slot: entities.SlotWeapon, PowerBonus: 1})

	out, err := s.svc.Equip(s.ctx, &equipment.EquipInput{Owner: s.player, Item: dagger})
	s.Require().NoError(err)
	s.True(out.Equipped)
	s.Same(s.sword, out.Previous)

	s.Equal(testutils.TestPlayerPower+1, s.player.Power(),
		"the swapped-out bonus is gone, not stacked")
	s.Same(dagger, s.player.Equipment().Worn(entities.SlotWeapon))

	s.Require().Len(s.recorded, 2)
	unequip := s.recorded[0].(events.UnequipEvent)
	s.Equal("Iron Sword", unequip.ItemName)
	equip := s.recorded[1].(events.EquipEvent)
	s.Equal("Dagger", equip.ItemName)
}

func (s *OrchestratorTestSuite) TestUnequip() {
	_, err := s.svc.Equip(s.ctx, &equipment.EquipInput{Owner: s.player, Item: s.sword})
	s.Require().NoError(err)
	s.recorded = nil

	out, err := s.svc.Unequip(s.ctx, &equipment.UnequipInput{
		Owner: s.player,
		Slot:  entities.SlotWeapon,
	})
	s.Require().NoError(err)
	s.Same(s.sword, out.Item)
	s.Equal(testutils.TestPlayerPower, s.player.Power())
	s.False(s.player.Equipment().IsWorn(entities.SlotWeapon))

	s.Require().Len(s.recorded, 1)
	s.Equal("Iron Sword", s.recorded[0].(events.UnequipEvent).ItemName)
}

func (s *OrchestratorTestSuite) TestUnequipEmptySlot() {
	out, err := s.svc.Unequip(s.ctx, &equipment.UnequipInput{
		Owner: s.player,
		Slot:  entities.SlotRing,
	})
	s.Require().NoError(err)
	s.Nil(out.Item)
	s.Empty(s.recorded)
}

func (s *OrchestratorTestSuite) TestRoundTripRestoresStats() {
	s.player.Health().TakeDamage(15)
	basePower := s.player.Power()
	baseDefense := s.player.Defense()
	baseMaxHP := s.player.MaxHP()
	baseHP := s.player.HP()

	_, err := s.svc.Equip(s.ctx, &equipment.EquipInput{Owner: s.player, Item: s.armor})
	s.Require().NoError(err)
	_, err = s.svc.Unequip(s.ctx, &equipment.UnequipInput{Owner: s.player, Slot: entities.SlotArmor})
	s.Require().NoError(err)

	s.Equal(basePower, s.player.Power())
	s.Equal(baseDefense, s.player.Defense())
	s.Equal(baseMaxHP, s.player.MaxHP())
	s.Equal(baseHP, s.player.HP())
}

func (s *OrchestratorTestSuite) TestMaxHPBonusPreservesPercentage() {
	s.player.Health().SetHP(15)

	_, err := s.svc.Equip(s.ctx, &equipment.EquipInput{Owner: s.player, Item: s.armor})
	s.Require().NoError(err)

	s.Equal(40, s.player.MaxHP())
	s.Equal(20, s.player.HP(), "half health stays half health")
}

func (s *OrchestratorTestSuite) TestMaxHPRescaleNeverKills() {
	tank := entities.New("ent_tank", entities.KindPlayer, "Tank", '@', entities.Position{})
	tank.Attach(entities.NewHealth(100))
	tank.Attach(entities.NewCombat(1, 1))
	tank.Attach(entities.NewEquipment())
	tank.Health().SetHP(1)

	girdle := entities.New("ent_girdle", entities.KindItem, "Girdle", '[', entities.Position{})
	girdle.Attach(&entities.EquipmentStats{Slot: entities.SlotArmor, MaxHPBonus: 120})

	_, err := s.svc.Equip(s.ctx, &equipment.EquipInput{Owner: tank, Item: girdle})
	s.Require().NoError(err)
	tank.Health().SetHP(1)

	_, err = s.svc.Unequip(s.ctx, &equipment.UnequipInput{Owner: tank, Slot: entities.SlotArmor})
	s.Require().NoError(err)
	s.Equal(1, tank.HP(), "a living wearer is floored at one hit point")
}

func (s *OrchestratorTestSuite) TestEquipRequiresEquipmentComponent() {
	orc := testutils.CreateTestOrc("ent_orc", entities.Position{})

	_, err := s.svc.Equip(s.ctx, &equipment.EquipInput{Owner: orc, Item: s.sword})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
