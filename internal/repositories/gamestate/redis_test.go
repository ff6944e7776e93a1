package gamestate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/pkg/clock"
	"github.com/KirkDiggler/rogue-api/internal/repositories/gamestate"
	"github.com/KirkDiggler/rogue-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite

	ctx     context.Context
	repo    gamestate.Repository
	cleanup func()
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()

	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := gamestate.NewRedisRepository(&gamestate.Config{
		Client: client,
		Clock:  clock.New(),
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func (s *RedisRepositoryTestSuite) snapshot(sessionID string) *gamestate.Snapshot {
	return &gamestate.Snapshot{
		SessionID:   sessionID,
		Turn:        12,
		RNGSeed:     42,
		RNGPosition: 57,
		PlayerID:    "ent_player",
		Map: gamestate.MapSnapshot{
			Width:  4,
			Height: 3,
			Rows:   []string{"####", "#..#", "####"},
		},
		Entities: []gamestate.EntitySnapshot{
			{
				ID:             "ent_player",
				Kind:           entities.KindPlayer,
				Name:           "Hero",
				Glyph:          "@",
				Position:       entities.Position{X: 1, Y: 1},
				BlocksMovement: true,
				Health:         &gamestate.HealthSnapshot{Current: 21, Max: 30},
				Combat:         &entities.Combat{Power: 5, Defense: 2},
				Mana:           &gamestate.ManaSnapshot{Current: 14, Max: 20, Regen: 1},
				StatusEffects: &gamestate.StatusEffectsSnapshot{
					Effects: []entities.Effect{
						{Type: entities.EffectPoison, Duration: 3, Power: 2},
					},
				},
				Inventory: &gamestate.InventorySnapshot{Capacity: 26, ItemIDs: []string{"ent_potion"}},
			},
			{
				ID:     "ent_potion",
				Kind:   entities.KindItem,
				Name:   "Healing Potion",
				Glyph:  "!",
				HeldBy: "ent_player",
				Item: &entities.Item{
					Kind:   "potion",
					Effect: entities.ItemEffectHeal,
					Amount: 10,
				},
			},
		},
	}
}

func (s *RedisRepositoryTestSuite) TestSaveAndGet() {
	saved, err := s.repo.Save(s.ctx, &gamestate.SaveInput{Snapshot: s.snapshot("session_1")})
	s.Require().NoError(err)
	s.False(saved.ExpiresAt.IsZero())

	out, err := s.repo.Get(s.ctx, &gamestate.GetInput{SessionID: "session_1"})
	s.Require().NoError(err)

	got := out.Snapshot
	s.Equal(12, got.Turn)
	s.Equal(int64(42), got.RNGSeed)
	s.Equal(int64(57), got.RNGPosition)
	s.Equal([]string{"####", "#..#", "####"}, got.Map.Rows)
	s.Require().Len(got.Entities, 2)

	player := got.Entities[0]
	s.Equal(21, player.Health.Current)
	s.Require().Len(player.StatusEffects.Effects, 1)
	s.Equal(entities.EffectPoison, player.StatusEffects.Effects[0].Type)
	s.Equal([]string{"ent_potion"}, player.Inventory.ItemIDs)

	potion := got.Entities[1]
	s.Equal("ent_player", potion.HeldBy)
	s.Equal(entities.ItemEffectHeal, potion.Item.Effect)
}

func (s *RedisRepositoryTestSuite) TestSaveOverwrites() {
	snap := s.snapshot("session_1")
	_, err := s.repo.Save(s.ctx, &gamestate.SaveInput{Snapshot: snap})
	s.Require().NoError(err)

	snap.Turn = 99
	_, err = s.repo.Save(s.ctx, &gamestate.SaveInput{Snapshot: snap})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, &gamestate.GetInput{SessionID: "session_1"})
	s.Require().NoError(err)
	s.Equal(99, out.Snapshot.Turn)
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, &gamestate.GetInput{SessionID: "session_missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSaveValidation() {
	_, err := s.repo.Save(s.ctx, &gamestate.SaveInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, &gamestate.SaveInput{Snapshot: &gamestate.Snapshot{}})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Save(s.ctx, &gamestate.SaveInput{Snapshot: s.snapshot("session_1")})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, &gamestate.DeleteInput{SessionID: "session_1"})
	s.Require().NoError(err)
	s.True(out.Existed)

	_, err = s.repo.Get(s.ctx, &gamestate.GetInput{SessionID: "session_1"})
	s.True(errors.IsNotFound(err))

	out, err = s.repo.Delete(s.ctx, &gamestate.DeleteInput{SessionID: "session_1"})
	s.Require().NoError(err)
	s.False(out.Existed, "second delete reports nothing existed")
}

func (s *RedisRepositoryTestSuite) TestList() {
	_, err := s.repo.Save(s.ctx, &gamestate.SaveInput{Snapshot: s.snapshot("session_b")})
	s.Require().NoError(err)
	_, err = s.repo.Save(s.ctx, &gamestate.SaveInput{Snapshot: s.snapshot("session_a")})
	s.Require().NoError(err)

	out, err := s.repo.List(s.ctx, &gamestate.ListInput{})
	s.Require().NoError(err)
	s.Equal([]string{"session_a", "session_b"}, out.SessionIDs)
}

func (s *RedisRepositoryTestSuite) TestListPrunesExpired() {
	mr, client, cleanup := testutils.CreateTestRedisServer(s.T())
	defer cleanup()

	repo, err := gamestate.NewRedisRepository(&gamestate.Config{
		Client: client,
		Clock:  clock.New(),
	})
	s.Require().NoError(err)

	_, err = repo.Save(s.ctx, &gamestate.SaveInput{
		Snapshot: s.snapshot("session_short"),
		TTL:      time.Minute,
	})
	s.Require().NoError(err)
	_, err = repo.Save(s.ctx, &gamestate.SaveInput{Snapshot: s.snapshot("session_long")})
	s.Require().NoError(err)

	mr.FastForward(2 * time.Minute)

	out, err := repo.List(s.ctx, &gamestate.ListInput{})
	s.Require().NoError(err)
	s.Equal([]string{"session_long"}, out.SessionIDs)
}

func (s *RedisRepositoryTestSuite) TestConfigValidation() {
	_, err := gamestate.NewRedisRepository(&gamestate.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
