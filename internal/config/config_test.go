package config

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOOKING_TIMEOUT_MS", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("MAX_DB_CONNS", "")

	cfg := Load()

	assert.Equal(t, 5*time.Second, cfg.BookingTimeout)
	assert.Nil(t, cfg.AllowedOrigins)
	assert.Equal(t, int32(16), cfg.MaxDBConns)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BOOKING_TIMEOUT_MS", "750")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("CLASS_CACHE_TTL_SECONDS", "5")
	t.Setenv("AUTH_RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", " https://app.fitnesshub.id , ,https://staff.fitnesshub.id")

	cfg := Load()

	assert.Equal(t, 750*time.Millisecond, cfg.BookingTimeout)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5*time.Second, cfg.ClassCacheTTL)
	assert.Equal(t, 30, cfg.AuthRatePerMinute, "unparsable values fall back")
	assert.Equal(t, []string{"https://app.fitnesshub.id", "https://staff.fitnesshub.id"}, cfg.AllowedOrigins)
}

func TestCacheKeys(t *testing.T) {
	id := uuid.MustParse("6a1f0c52-8e0b-4c1e-9d2a-3b7c5e9f1a20")

	assert.Equal(t, "classes:list:0", CacheKey.ClassListKey(0))
	assert.Equal(t, "classes:list:42", CacheKey.ClassListKey(42))
	assert.Equal(t, "session:6a1f0c52-8e0b-4c1e-9d2a-3b7c5e9f1a20", CacheKey.SessionKey(id))
	assert.Equal(t, "ratelimit:auth:10.0.0.7:29614", CacheKey.RateLimitKey("auth", "10.0.0.7", 29614))
}
