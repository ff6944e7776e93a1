package game_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/game"
	"github.com/KirkDiggler/rogue-api/internal/pkg/idgen"
	"github.com/KirkDiggler/rogue-api/internal/repositories/spells"
	"github.com/KirkDiggler/rogue-api/internal/repositories/templates"
)

type FactoryTestSuite struct {
	suite.Suite

	ctx     context.Context
	factory *game.Factory
}

func (s *FactoryTestSuite) SetupTest() {
	s.ctx = context.Background()

	tplRepo, err := templates.NewInMemory(&templates.Config{
		Templates: []*templates.Template{
			{
				ID:             "hero",
				Name:           "Hero",
				Glyph:          "@",
				Kind:           entities.KindPlayer,
				BlocksMovement: true,
				Health:         &templates.HealthSpec{MaxHP: 30},
				Combat:         &entities.Combat{Power: 5, Defense: 2},
				Level:          &entities.Level{Level: 1},
				Mana:           &templates.ManaSpec{MaxMP: 20, Regen: 1},
				Inventory:      &templates.InventorySpec{Capacity: 10},
				KnownSpells:    []string{"lightning"},
				Equipment:      true,
				StatusEffects:  true,
				RecipeBook:     true,
			},
			{
				ID:             "orc",
				Name:           "Orc",
				Glyph:          "o",
				Kind:           entities.KindMonster,
				BlocksMovement: true,
				Health:         &templates.HealthSpec{HitDice: "3d8+2"},
				Combat:         &entities.Combat{Power: 3},
				Level:          &entities.Level{Level: 1, XPValue: 35},
				StatusEffects:  true,
			},
			{
				ID:    "healing_potion",
				Name:  "Healing Potion",
				Glyph: "!",
				Kind:  entities.KindItem,
				Item:  &entities.Item{Kind: "potion", Effect: entities.ItemEffectHeal, Amount: 10},
				Crafting: &templates.CraftingSpec{
					Tags:       []string{"healing", "liquid"},
					Consumable: true,
					Craftable:  true,
				},
			},
			{
				ID:         "iron_sword",
				Name:       "Iron Sword",
				Glyph:      "/",
				Kind:       entities.KindItem,
				Equippable: &entities.EquipmentStats{Slot: entities.SlotWeapon, PowerBonus: 3},
			},
			{
				ID:          "bard",
				Name:        "Bard",
				Glyph:       "b",
				Kind:        entities.KindMonster,
				KnownSpells: []string{"polka"},
			},
		},
	})
	s.Require().NoError(err)

	spellRepo, err := spells.NewInMemory(&spells.Config{
		Spells: []entities.Spell{
			{
				ID:       "lightning",
				Name:     "Lightning Bolt",
				School:   entities.SchoolEvocation,
				ManaCost: 8,
				Power:    20,
				Target:   entities.TargetSingle,
				Range:    6,
			},
		},
	})
	s.Require().NoError(err)

	factory, err := game.NewFactory(&game.FactoryConfig{
		Templates: tplRepo,
		Spells:    spellRepo,
		IDGen:     idgen.NewSequential("ent"),
	})
	s.Require().NoError(err)
	s.factory = factory
}

func (s *FactoryTestSuite) TestConfigValidation() {
	_, err := game.NewFactory(&game.FactoryConfig{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *FactoryTestSuite) TestSpawnPlayer() {
	e, err := s.factory.Spawn(s.ctx, "hero", entities.Position{X: 3, Y: 4})
	s.Require().NoError(err)

	s.Equal("ent_1", e.GetID())
	s.Equal(entities.KindPlayer, e.GetType())
	s.Equal("Hero", e.Name)
	s.Equal('@', e.Glyph)
	s.Equal(entities.Position{X: 3, Y: 4}, e.Position)
	s.True(e.BlocksMovement)

	s.Equal(30, e.HP())
	s.Equal(30, e.MaxHP())
	s.Equal(5, e.Power())
	s.Equal(2, e.Defense())
	s.Equal(20, e.Mana().MP())
	s.Equal(1, e.Mana().RegenRate())
	s.Equal(10, e.Inventory().Capacity())
	s.True(e.Spellbook().Knows("lightning"))
	s.NotNil(e.Equipment())
	s.NotNil(e.StatusEffects())
	s.NotNil(e.RecipeBook())
}

func (s *FactoryTestSuite) TestSpawnRollsHitDice() {
	for i := 0; i < 20; i++ {
		e, err := s.factory.Spawn(s.ctx, "orc", entities.Position{X: 1, Y: 1})
		s.Require().NoError(err)

		hp := e.MaxHP()
		s.GreaterOrEqual(hp, 5, "3d8+2 cannot roll below 5")
		s.LessOrEqual(hp, 26, "3d8+2 cannot roll above 26")
		s.Equal(hp, e.HP(), "spawned entities start at full health")
	}
}

func (s *FactoryTestSuite) TestSpawnItem() {
	e, err := s.factory.Spawn(s.ctx, "healing_potion", entities.Position{X: 2, Y: 2})
	s.Require().NoError(err)

	s.Equal(entities.KindItem, e.GetType())
	s.False(e.BlocksMovement)
	s.Nil(e.Health())

	item := e.Item()
	s.Require().NotNil(item)
	s.Equal(entities.ItemEffectHeal, item.Effect)
	s.Equal(10, item.Amount)

	crafting := e.Crafting()
	s.Require().NotNil(crafting)
	s.True(crafting.Consumable)
	s.True(crafting.HasTag("healing"))
}

func (s *FactoryTestSuite) TestSpawnEquippable() {
	e, err := s.factory.Spawn(s.ctx, "iron_sword", entities.Position{})
	s.Require().NoError(err)

	stats := e.EquipmentStats()
	s.Require().NotNil(stats)
	s.Equal(entities.SlotWeapon, stats.Slot)
	s.Equal(3, stats.PowerBonus)
}

func (s *FactoryTestSuite) TestSpawnsDoNotShareComponents() {
	first, err := s.factory.Spawn(s.ctx, "hero", entities.Position{})
	s.Require().NoError(err)
	second, err := s.factory.Spawn(s.ctx, "hero", entities.Position{})
	s.Require().NoError(err)

	s.NotEqual(first.GetID(), second.GetID())

	first.Combat().Power = 99
	s.Equal(5, second.Power(), "spawned components must be independent copies")

	first.Health().SetHP(1)
	s.Equal(30, second.HP())
}

func (s *FactoryTestSuite) TestSpawnUnknownTemplate() {
	_, err := s.factory.Spawn(s.ctx, "dragon", entities.Position{})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *FactoryTestSuite) TestSpawnUnknownSpellFails() {
	_, err := s.factory.Spawn(s.ctx, "bard", entities.Position{})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Contains(err.Error(), "polka")
}

func TestFactoryTestSuite(t *testing.T) {
	suite.Run(t, new(FactoryTestSuite))
}
