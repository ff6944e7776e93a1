package game_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/events"
	"github.com/KirkDiggler/rogue-api/internal/game"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/turn"
	"github.com/KirkDiggler/rogue-api/internal/pkg/idgen"
	"github.com/KirkDiggler/rogue-api/internal/repositories/recipes"
	"github.com/KirkDiggler/rogue-api/internal/repositories/spells"
	"github.com/KirkDiggler/rogue-api/internal/repositories/templates"
	"github.com/KirkDiggler/rogue-api/internal/world"
)

type SessionTestSuite struct {
	suite.Suite

	ctx       context.Context
	templates templates.Repository
	spells    spells.Repository
	recipes   recipes.Repository
}

func (s *SessionTestSuite) SetupTest() {
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
				KnownSpells:    []string{"lightning", "mend"},
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
				Health:         &templates.HealthSpec{MaxHP: 10},
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
		},
	})
	s.Require().NoError(err)
	s.templates = tplRepo

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
				Effect:   entities.SpellEffectDamage,
			},
			{
				ID:       "mend",
				Name:     "Mend",
				School:   entities.SchoolConjuration,
				ManaCost: 6,
				Power:    8,
				Target:   entities.TargetSelf,
				Effect:   entities.SpellEffectHeal,
			},
			{
				ID:         "venom_dart",
				Name:       "Venom Dart",
				School:     entities.SchoolTransmutation,
				ManaCost:   5,
				Power:      2,
				Target:     entities.TargetSingle,
				Range:      4,
				Effect:     entities.SpellEffectStatus,
				StatusType: entities.EffectPoison,
				Duration:   3,
				Verb:       "is poisoned",
			},
		},
	})
	s.Require().NoError(err)
	s.spells = spellRepo

	recipeRepo, err := recipes.NewInMemory(&recipes.Config{
		Recipes: []*entities.Recipe{
			{
				ID:   "healing_draught",
				Name: "Healing Draught",
				RequiredTags: []entities.TagSet{
					entities.NewTagSet("herb"),
					entities.NewTagSet("liquid"),
				},
				ResultTemplateID: "healing_potion",
			},
		},
	})
	s.Require().NoError(err)
	s.recipes = recipeRepo
}

func (s *SessionTestSuite) config() *game.SessionConfig {
	return &game.SessionConfig{
		Map:       world.NewArena(20, 15),
		Templates: s.templates,
		Spells:    s.spells,
		Recipes:   s.recipes,
		IDGen:     idgen.NewSequential("ent"),
		Seed:      42,
	}
}

func (s *SessionTestSuite) newSession() *game.Session {
	sess, err := game.NewSession(s.ctx, s.config())
	s.Require().NoError(err)
	return sess
}

func (s *SessionTestSuite) spawnHero(sess *game.Session) *entities.Entity {
	hero, err := sess.SpawnPlayer(s.ctx, "hero", entities.Position{X: 5, Y: 5})
	s.Require().NoError(err)
	return hero
}

func (s *SessionTestSuite) act(sess *game.Session, action turn.Action) *game.ActionResult {
	out, err := sess.HandleAction(s.ctx, action)
	s.Require().NoError(err)
	return out
}

func (s *SessionTestSuite) TestConfigValidation() {
	_, err := game.NewSession(s.ctx, &game.SessionConfig{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *SessionTestSuite) TestNewSessionRequiresMap() {
	cfg := s.config()
	cfg.Map = nil

	_, err := game.NewSession(s.ctx, cfg)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *SessionTestSuite) TestSessionIDGenerated() {
	sess := s.newSession()
	s.True(strings.HasPrefix(sess.ID(), "sess_"), "got id %q", sess.ID())
}

func (s *SessionTestSuite) TestExplicitSessionID() {
	cfg := s.config()
	cfg.SessionID = "sess_keep"

	sess, err := game.NewSession(s.ctx, cfg)
	s.Require().NoError(err)
	s.Equal("sess_keep", sess.ID())
}

func (s *SessionTestSuite) TestSpellWithoutEffectClassFailsAssembly() {
	broken, err := spells.NewInMemory(&spells.Config{
		Spells: []entities.Spell{
			{ID: "hum", Name: "Hum", ManaCost: 1, Target: entities.TargetSelf},
		},
	})
	s.Require().NoError(err)

	cfg := s.config()
	cfg.Spells = broken

	_, err = game.NewSession(s.ctx, cfg)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "hum")
}

func (s *SessionTestSuite) TestSpawnPlayer() {
	sess := s.newSession()
	hero := s.spawnHero(sess)

	s.Same(hero, sess.Player())
	s.Equal(entities.Position{X: 5, Y: 5}, hero.Position)
	s.True(sess.Visible(hero.Position))
	s.True(sess.Explored(hero.Position))
	s.Len(sess.Entities(), 1)
}

func (s *SessionTestSuite) TestSpawnPlayerTwice() {
	sess := s.newSession()
	s.spawnHero(sess)

	_, err := sess.SpawnPlayer(s.ctx, "hero", entities.Position{X: 6, Y: 5})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *SessionTestSuite) TestSpawnOnWallFails() {
	sess := s.newSession()

	_, err := sess.SpawnAt(s.ctx, "orc", entities.Position{X: 0, Y: 0})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *SessionTestSuite) TestHandleActionWithoutPlayer() {
	sess := s.newSession()

	_, err := sess.HandleAction(s.ctx, turn.Action{Kind: turn.ActionWait})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *SessionTestSuite) TestMoveAdvancesTurn() {
	sess := s.newSession()
	hero := s.spawnHero(sess)

	out := s.act(sess, turn.Action{Kind: turn.ActionMove, DX: 1})

	s.True(out.TurnConsumed)
	s.Equal(1, sess.TurnCount())
	s.Equal(entities.Position{X: 6, Y: 5}, hero.Position)
}

func (s *SessionTestSuite) TestRefusedMoveCostsNothing() {
	sess := s.newSession()
	_, err := sess.SpawnPlayer(s.ctx, "hero", entities.Position{X: 1, Y: 1})
	s.Require().NoError(err)

	out := s.act(sess, turn.Action{Kind: turn.ActionMove, DX: -1})

	s.False(out.TurnConsumed)
	s.Equal(0, sess.TurnCount())
	s.Empty(out.Messages)
}

func (s *SessionTestSuite) TestBumpAttackTradesBlows() {
	sess := s.newSession()
	s.spawnHero(sess)
	orc, err := sess.SpawnAt(s.ctx, "orc", entities.Position{X: 6, Y: 5})
	s.Require().NoError(err)

	out := s.act(sess, turn.Action{Kind: turn.ActionMove, DX: 1})

	s.True(out.TurnConsumed)
	s.Equal(5, orc.HP())
	s.Equal(29, sess.Player().HP(), "the orc strikes back in the same cycle")
	s.Equal([]string{
		"Hero attacks Orc for 5 damage!",
		"Orc attacks Hero for 1 damage!",
	}, out.Messages)
}

func (s *SessionTestSuite) TestKillSequence() {
	sess := s.newSession()
	hero := s.spawnHero(sess)
	orc, err := sess.SpawnAt(s.ctx, "orc", entities.Position{X: 6, Y: 5})
	s.Require().NoError(err)
	orc.Health().SetHP(5)

	out := s.act(sess, turn.Action{Kind: turn.ActionMove, DX: 1})

	s.True(out.TurnConsumed)
	s.False(out.GameOver)
	s.Equal([]string{
		"Hero attacks Orc for 5 damage!",
		"Orc dies!",
		"You gain 35 XP!",
	}, out.Messages)
	s.Equal(35, hero.Level().XP)
	s.Equal("remains of Orc", orc.Name)
	s.False(orc.BlocksMovement)
}

func (s *SessionTestSuite) TestPlayerDeathEndsGame() {
	sess := s.newSession()
	hero := s.spawnHero(sess)
	hero.Health().SetHP(1)
	_, err := sess.SpawnAt(s.ctx, "orc", entities.Position{X: 6, Y: 5})
	s.Require().NoError(err)

	out := s.act(sess, turn.Action{Kind: turn.ActionWait})

	s.True(out.GameOver)
	s.True(sess.IsGameOver())
	s.Equal([]string{
		"Orc attacks Hero for 1 damage!",
		"Hero dies!",
	}, out.Messages)

	blocked := s.act(sess, turn.Action{Kind: turn.ActionMove, DX: 1})
	s.True(blocked.GameOver)
	s.False(blocked.TurnConsumed)
	s.Equal([]string{"The game is over."}, blocked.Messages)

	quit := s.act(sess, turn.Action{Kind: turn.ActionQuit})
	s.True(quit.Quit)
}

func (s *SessionTestSuite) TestQuit() {
	sess := s.newSession()
	s.spawnHero(sess)

	out := s.act(sess, turn.Action{Kind: turn.ActionQuit})

	s.True(out.Quit)
	s.False(out.TurnConsumed)
	s.Equal(0, sess.TurnCount())
}

func (s *SessionTestSuite) TestMonstersActOnlyAfterSpentTurns() {
	sess := s.newSession()
	s.spawnHero(sess)
	_, err := sess.SpawnAt(s.ctx, "orc", entities.Position{X: 6, Y: 5})
	s.Require().NoError(err)

	out := s.act(sess, turn.Action{Kind: turn.ActionDrop, ItemID: "ent_missing"})

	s.False(out.TurnConsumed)
	s.Equal(30, sess.Player().HP(), "a refused action must not give monsters a turn")
}

func (s *SessionTestSuite) TestPickupAndDrop() {
	sess := s.newSession()
	hero := s.spawnHero(sess)
	potion, err := sess.SpawnAt(s.ctx, "healing_potion", entities.Position{X: 5, Y: 5})
	s.Require().NoError(err)

	out := s.act(sess, turn.Action{Kind: turn.ActionPickup})
	s.True(out.TurnConsumed)
	s.Equal("You picked up Healing Potion.", out.Messages[0])
	s.True(hero.Inventory().Contains(potion.GetID()))
	s.Len(sess.Entities(), 1)

	out = s.act(sess, turn.Action{Kind: turn.ActionDrop, ItemID: potion.GetID()})
	s.True(out.TurnConsumed)
	s.Equal("You dropped Healing Potion.", out.Messages[0])
	s.False(hero.Inventory().Contains(potion.GetID()))
	s.Len(sess.Entities(), 2)
}

func (s *SessionTestSuite) TestActionResultCarriesEvents() {
	sess := s.newSession()
	s.spawnHero(sess)
	_, err := sess.SpawnAt(s.ctx, "orc", entities.Position{X: 6, Y: 5})
	s.Require().NoError(err)

	out := s.act(sess, turn.Action{Kind: turn.ActionMove, DX: 1})

	s.Require().NotEmpty(out.Events)
	first, ok := out.Events[0].(events.CombatEvent)
	s.Require().True(ok)
	s.Equal("Hero", first.AttackerName)
	s.Equal("Orc", first.DefenderName)
}

func (s *SessionTestSuite) TestTargetingFlow() {
	sess := s.newSession()
	s.spawnHero(sess)
	orc, err := sess.SpawnAt(s.ctx, "orc", entities.Position{X: 8, Y: 5})
	s.Require().NoError(err)

	u, err := sess.StartTargeting(s.ctx, "lightning")
	s.Require().NoError(err)
	s.True(u.Active)
	s.Equal("Select a target.", u.Message)
	s.Equal(orc.Position, u.Cursor)
	s.Equal("Orc", u.TargetName)

	confirm, err := sess.ConfirmTarget(s.ctx)
	s.Require().NoError(err)
	s.False(confirm.Active)
	s.Require().NotNil(confirm.Result)
	s.True(confirm.Result.TurnConsumed)
	s.Equal([]string{
		"Hero's spell kills Orc!",
		"Orc dies!",
		"You gain 35 XP!",
	}, confirm.Result.Messages)
	s.False(entities.IsAlive(orc))
	s.Equal(13, sess.Player().Mana().MP(), "8 spent, 1 regenerated")
}

func (s *SessionTestSuite) TestTargetingNoVisibleTargets() {
	sess := s.newSession()
	_, err := sess.SpawnPlayer(s.ctx, "hero", entities.Position{X: 2, Y: 2})
	s.Require().NoError(err)
	_, err = sess.SpawnAt(s.ctx, "orc", entities.Position{X: 14, Y: 12})
	s.Require().NoError(err)

	u, err := sess.StartTargeting(s.ctx, "lightning")
	s.Require().NoError(err)
	s.False(u.Active)
	s.Equal("No visible targets!", u.Message)
}

func (s *SessionTestSuite) TestTargetingOutOfRange() {
	sess := s.newSession()
	s.spawnHero(sess)
	_, err := sess.SpawnAt(s.ctx, "orc", entities.Position{X: 12, Y: 5})
	s.Require().NoError(err)

	u, err := sess.StartTargeting(s.ctx, "lightning")
	s.Require().NoError(err)
	s.False(u.Active)
	s.Equal("No targets in range!", u.Message)
}

func (s *SessionTestSuite) TestSelfTargetCastsImmediately() {
	sess := s.newSession()
	hero := s.spawnHero(sess)
	hero.Health().SetHP(20)

	u, err := sess.StartTargeting(s.ctx, "mend")
	s.Require().NoError(err)
	s.False(u.Active)
	s.Require().NotNil(u.Result)
	s.Equal("Hero heals for 8 HP!", u.Result.Messages[0])
	s.Equal(28, hero.HP())
	s.Equal(15, hero.Mana().MP(), "6 spent, 1 regenerated")
}

func (s *SessionTestSuite) TestCannotStartTargetingWithoutMana() {
	sess := s.newSession()
	hero := s.spawnHero(sess)
	hero.Mana().SetMP(0)
	_, err := sess.SpawnAt(s.ctx, "orc", entities.Position{X: 8, Y: 5})
	s.Require().NoError(err)

	u, err := sess.StartTargeting(s.ctx, "lightning")
	s.Require().NoError(err)
	s.False(u.Active)
	s.Equal("Hero doesn't have enough mana! (0/8)", u.Message)
}

func (s *SessionTestSuite) TestActionAbandonsTargeting() {
	sess := s.newSession()
	s.spawnHero(sess)
	_, err := sess.SpawnAt(s.ctx, "orc", entities.Position{X: 8, Y: 5})
	s.Require().NoError(err)

	u, err := sess.StartTargeting(s.ctx, "lightning")
	s.Require().NoError(err)
	s.True(u.Active)

	s.act(sess, turn.Action{Kind: turn.ActionWait})

	confirm, err := sess.ConfirmTarget(s.ctx)
	s.Require().NoError(err)
	s.Nil(confirm.Result)
	s.Equal("Nothing is being targeted.", confirm.Message)
}

func (s *SessionTestSuite) TestCycleAndCursorDriving() {
	sess := s.newSession()
	s.spawnHero(sess)
	first, err := sess.SpawnAt(s.ctx, "orc", entities.Position{X: 8, Y: 5})
	s.Require().NoError(err)
	second, err := sess.SpawnAt(s.ctx, "orc", entities.Position{X: 5, Y: 8})
	s.Require().NoError(err)

	u, err := sess.StartTargeting(s.ctx, "lightning")
	s.Require().NoError(err)
	s.Equal(first.Position, u.Cursor)

	u = sess.CycleTarget(1)
	s.Equal(second.Position, u.Cursor)
	s.Equal("Orc", u.TargetName)

	u = sess.MoveTargetCursor(1, 0)
	s.Equal(entities.Position{X: 6, Y: 8}, u.Cursor)
	s.Empty(u.TargetID, "cursor moved onto empty ground")

	u = sess.CancelTargeting()
	s.False(u.Active)
}

func (s *SessionTestSuite) TestConfirmOnEmptyGround() {
	sess := s.newSession()
	s.spawnHero(sess)
	_, err := sess.SpawnAt(s.ctx, "orc", entities.Position{X: 8, Y: 5})
	s.Require().NoError(err)

	_, err = sess.StartTargeting(s.ctx, "lightning")
	s.Require().NoError(err)
	sess.MoveTargetCursor(0, 1)

	confirm, err := sess.ConfirmTarget(s.ctx)
	s.Require().NoError(err)
	s.Nil(confirm.Result)
	s.False(confirm.Active)
	s.Equal("There is no target there.", confirm.Message)
}

func (s *SessionTestSuite) TestStatusSpellPoisonsTarget() {
	sess := s.newSession()
	s.spawnHero(sess)
	orc, err := sess.SpawnAt(s.ctx, "orc", entities.Position{X: 7, Y: 5})
	s.Require().NoError(err)

	u, err := sess.StartTargeting(s.ctx, "venom_dart")
	s.Require().NoError(err)
	s.True(u.Active)

	confirm, err := sess.ConfirmTarget(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(confirm.Result)
	s.Equal("Orc is poisoned!", confirm.Result.Messages[0])
	s.Contains(confirm.Result.Messages, "Orc is affected by Poison for 3 turns!")
	s.True(orc.StatusEffects().Has(entities.EffectPoison))
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}
