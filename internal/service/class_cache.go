package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gymwarriors/fitnesshub-backend/internal/config"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ClassListCache stores the class listing under a generation number.
// Invalidate moves the generation forward, so a listing read from the
// database before an invalidation is stored under a key nobody reads again.
type ClassListCache interface {
	Generation(ctx context.Context) (int64, error)
	Load(ctx context.Context, gen int64) ([]model.Class, bool)
	Store(ctx context.Context, gen int64, classes []model.Class)
	Invalidate(ctx context.Context)
}

// RedisClassCache keeps the class listing in Redis.
type RedisClassCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewRedisClassCache creates a new RedisClassCache.
func NewRedisClassCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisClassCache {
	return &RedisClassCache{
		rdb: rdb,
		ttl: ttl,
		log: log.With().Str("component", "class_cache").Logger(),
	}
}

// Generation returns the current listing generation. A missing counter is
// generation zero.
func (c *RedisClassCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, config.CacheKey.ClassGen).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisClassCache) Load(ctx context.Context, gen int64) ([]model.Class, bool) {
	data, err := c.rdb.Get(ctx, config.CacheKey.ClassListKey(gen)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("Class list cache read failed")
		}
		return nil, false
	}

	var classes []model.Class
	if err := json.Unmarshal(data, &classes); err != nil {
		c.log.Warn().Err(err).Msg("Discarding undecodable class list cache")
		return nil, false
	}
	return classes, true
}

func (c *RedisClassCache) Store(ctx context.Context, gen int64, classes []model.Class) {
	data, err := json.Marshal(classes)
	if err != nil {
		c.log.Error().Err(err).Msg("Failed to encode class list")
		return
	}
	if err := c.rdb.Set(ctx, config.CacheKey.ClassListKey(gen), data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("Failed to cache class list")
	}
}

// Invalidate bumps the generation. Listings stored under older generations
// expire on their own TTL.
func (c *RedisClassCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, config.CacheKey.ClassGen).Err(); err != nil {
		c.log.Warn().Err(err).Msg("Failed to invalidate class list cache")
	}
}
