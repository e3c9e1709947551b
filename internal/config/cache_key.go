package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct {
	// ClassGen is the counter bumped whenever the class listing changes.
	ClassGen string
	// SlotChannel is the Redis PubSub channel for available slot changes.
	SlotChannel string
}

// ClassListKey returns the key holding the JSON-encoded class listing built
// while ClassGen was gen.
func (r *CacheKeyStruct) ClassListKey(gen int64) string {
	return fmt.Sprintf("classes:list:%d", gen)
}

// SessionKey returns the cache key holding the active JTI for an account.
func (r *CacheKeyStruct) SessionKey(accountID uuid.UUID) string {
	return fmt.Sprintf("session:%s", accountID)
}

// RateLimitKey returns the fixed-window counter key for a client on a route group.
func (r *CacheKeyStruct) RateLimitKey(scope, clientIP string, window int64) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", scope, clientIP, window)
}

var CacheKey = &CacheKeyStruct{
	ClassGen:    "classes:gen",
	SlotChannel: "classes:slots",
}
