package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var RedisClient *redis.Client
var redisEnabled bool

// InitRedis connects to REDIS_URL. An unreachable server is logged and leaves
// the cache disabled.
func InitRedis(ctx context.Context, cfg *config.Config) error {
	if cfg.RedisURL == "" {
		redisEnabled = false
		log.Info().Str("component", "redis").Msg("REDIS_URL not set, bot move cache disabled")
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		// plain host:port
		opts = &redis.Options{Addr: cfg.RedisURL}
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	RedisClient = redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := RedisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("component", "redis").Msg("could not connect to Redis, bot move cache disabled")
		redisEnabled = false
		return nil
	}

	redisEnabled = true
	log.Info().Str("component", "redis").Str("addr", opts.Addr).Msg("connected successfully")
	return nil
}

// IsRedisEnabled returns whether Redis is available
func IsRedisEnabled() bool {
	return redisEnabled
}

// CloseRedis closes the Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// MoveCache stores bot decisions under their position key.
type MoveCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMoveCache(client *redis.Client, ttl time.Duration) *MoveCache {
	return &MoveCache{client: client, ttl: ttl}
}

// GetMove reports the cached column for key. A miss is not an error.
func (c *MoveCache) GetMove(ctx context.Context, key string) (int, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	column, err := strconv.Atoi(value)
	if err != nil {
		// stale or foreign value, treat as a miss
		c.client.Del(ctx, key)
		return 0, false, nil
	}
	return column, true, nil
}

func (c *MoveCache) SetMove(ctx context.Context, key string, column int) error {
	return c.client.Set(ctx, key, column, c.ttl).Err()
}
