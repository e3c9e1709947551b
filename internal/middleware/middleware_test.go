package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/gymwarriors/fitnesshub-backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireStaffPermission(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		claims     *service.Claims
		permission Permission
		wantStatus int
	}{
		{"trainer schedules", newClaims(service.TokenTypeStaff, "trainer"), ManageClasses, http.StatusNoContent},
		{"admin schedules", newClaims(service.TokenTypeStaff, "admin"), ManageClasses, http.StatusNoContent},
		{"it admin cannot schedule", newClaims(service.TokenTypeStaff, "it_admin"), ManageClasses, http.StatusForbidden},
		{"trainer cannot approve", newClaims(service.TokenTypeStaff, "trainer"), ManageUsers, http.StatusForbidden},
		{"it admin approves", newClaims(service.TokenTypeStaff, "it_admin"), ManageUsers, http.StatusNoContent},
		{"unknown role", newClaims(service.TokenTypeStaff, "janitor"), ManageUsers, http.StatusForbidden},
		{"member token", newClaims(service.TokenTypeUser, "admin"), ManageUsers, http.StatusForbidden},
		{"admin bills", newClaims(service.TokenTypeStaff, "admin"), ManageInvoices, http.StatusNoContent},
		{"it admin cannot bill", newClaims(service.TokenTypeStaff, "it_admin"), ManageInvoices, http.StatusForbidden},
		{"trainer cannot bill", newClaims(service.TokenTypeStaff, "trainer"), ManageInvoices, http.StatusForbidden},
		{"no claims", nil, ManageUsers, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/",
				func(c *gin.Context) {
					if tt.claims != nil {
						c.Set(ContextKeyClaims, tt.claims)
					}
				},
				RequireStaffPermission(tt.permission),
				func(c *gin.Context) { c.Status(http.StatusNoContent) },
			)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestBrotli(t *testing.T) {
	gin.SetMode(gin.TestMode)

	large := strings.Repeat(`{"name":"Morning Spin","available_slots":4},`, 100)
	router := gin.New()
	router.Use(Brotli(brotli.DefaultCompression))
	router.GET("/large", func(c *gin.Context) { c.String(http.StatusOK, large) })
	router.GET("/small", func(c *gin.Context) { c.String(http.StatusCreated, "ok") })

	t.Run("large body compressed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/large", nil)
		req.Header.Set("Accept-Encoding", "gzip, br;q=0.9")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "br", w.Header().Get("Content-Encoding"))
		plain, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
		require.NoError(t, err)
		assert.Equal(t, large, string(plain))
	})

	t.Run("small body plain", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/small", nil)
		req.Header.Set("Accept-Encoding", "br")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("client without br", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/large", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Equal(t, large, w.Body.String())
	})

	t.Run("br refused by q=0", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/large", nil)
		req.Header.Set("Accept-Encoding", "br;q=0")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Content-Encoding"))
	})
}

func TestCacheHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/public", CacheControl(60), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/private", NoStore(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
	assert.Equal(t, "public, max-age=60", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Nothing listens on port 1, so every pipeline fails.
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	limiter := NewRateLimiter(rdb, "auth", 1, time.Minute, zerolog.Nop())
	router := gin.New()
	router.POST("/login", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for range 3 {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}
