package updatecursor

import (
	e "birthdaybot/internal/core/domain/errors"
	"context"
	"errors"

	"github.com/go-redis/redis/v9"
)

const offsetKey = "telegram::updates::offset"

// Redis persists the polling offset so that manually fetched updates
// are confirmed to Telegram across process restarts.
type Redis struct {
	redisClient *redis.Client
}

func NewRedis(redisClient *redis.Client) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	return &Redis{redisClient: redisClient}
}

func (c *Redis) Get(ctx context.Context) (int64, error) {
	offset, err := c.redisClient.Get(ctx, offsetKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return offset, err
}

func (c *Redis) Set(ctx context.Context, offset int64) error {
	return c.redisClient.Set(ctx, offsetKey, offset, 0).Err()
}
