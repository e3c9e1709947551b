package service

import (
	"context"
	"encoding/json"

	"github.com/gymwarriors/fitnesshub-backend/internal/config"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisSlotNotifier invalidates the cached class list and publishes the new slot
// count on the slot channel so websocket clients can reconcile their view.
type RedisSlotNotifier struct {
	rdb   *redis.Client
	cache ClassListCache
	log   zerolog.Logger
}

// NewRedisSlotNotifier creates a new RedisSlotNotifier.
func NewRedisSlotNotifier(rdb *redis.Client, cache ClassListCache, log zerolog.Logger) *RedisSlotNotifier {
	return &RedisSlotNotifier{
		rdb:   rdb,
		cache: cache,
		log:   log.With().Str("component", "slot_notifier").Logger(),
	}
}

// SlotsChanged never fails the caller: the booking it reports on is already
// committed. Redis errors are only logged.
func (n *RedisSlotNotifier) SlotsChanged(ctx context.Context, update model.SlotUpdate) {
	n.cache.Invalidate(ctx)

	payload, err := json.Marshal(update)
	if err != nil {
		n.log.Error().Err(err).Msg("Failed to encode slot update")
		return
	}
	if err := n.rdb.Publish(ctx, config.CacheKey.SlotChannel, payload).Err(); err != nil {
		n.log.Warn().
			Err(err).
			Str("class_id", update.ClassID.String()).
			Msg("Failed to publish slot update")
	}
}
