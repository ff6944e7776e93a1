package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client narrows the dependency surface to redis.UniversalClient so a
// single repository implementation serves every topology.
type Client interface {
	redis.UniversalClient
}

// Pipeliner aliases redis.Pipeliner for repositories that batch
// writes.
type Pipeliner interface {
	redis.Pipeliner
}
