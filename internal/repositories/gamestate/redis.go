package gamestate

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rogue-api/internal/redis"
)

const (
	// Key pattern: gamestate:{session_id}
	snapshotKeyPrefix = "gamestate:"
	// Set of session IDs with a stored snapshot. Entries can outlive
	// their snapshot's TTL; List prunes them lazily.
	sessionIndexKey = "gamestate:sessions"

	defaultTTL = 24 * time.Hour
)

// Config holds the configuration for the Redis repository.
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a Redis-backed snapshot repository.
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Save stores a snapshot with a TTL and registers the session in the
// index set.
func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil || input.Snapshot == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}
	if input.Snapshot.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	now := r.clock.Now()
	input.Snapshot.SavedAt = now

	data, err := json.Marshal(input.Snapshot)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal snapshot")
	}

	key := r.buildKey(input.Snapshot.SessionID)
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, ttl)
	pipe.SAdd(ctx, sessionIndexKey, input.Snapshot.SessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to store snapshot in Redis")
	}

	return &SaveOutput{ExpiresAt: now.Add(ttl)}, nil
}

// Get loads a snapshot by session ID.
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	data, err := r.client.Get(ctx, r.buildKey(input.SessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no saved game for session %q", input.SessionID)
		}
		return nil, errors.Wrap(err, "failed to get snapshot from Redis")
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal snapshot")
	}

	return &GetOutput{Snapshot: &snapshot}, nil
}

// Delete removes a snapshot and its index entry.
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	pipe := r.client.TxPipeline()
	delCmd := pipe.Del(ctx, r.buildKey(input.SessionID))
	pipe.SRem(ctx, sessionIndexKey, input.SessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to delete snapshot from Redis")
	}

	return &DeleteOutput{Existed: delCmd.Val() > 0}, nil
}

// List returns saved session IDs, pruning index entries whose
// snapshot has expired.
func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, sessionIndexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions from Redis")
	}

	out := &ListOutput{}
	for _, id := range ids {
		exists, err := r.client.Exists(ctx, r.buildKey(id)).Result()
		if err != nil {
			return nil, errors.Wrap(err, "failed to check session in Redis")
		}
		if exists == 0 {
			_ = r.client.SRem(ctx, sessionIndexKey, id)
			continue
		}
		out.SessionIDs = append(out.SessionIDs, id)
	}

	sort.Strings(out.SessionIDs)
	return out, nil
}

func (r *redisRepository) buildKey(sessionID string) string {
	return snapshotKeyPrefix + sessionID
}
