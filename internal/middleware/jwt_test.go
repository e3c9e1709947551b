package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/response"
	"github.com/gymwarriors/fitnesshub-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerifier accepts tokens present in its map.
type stubVerifier struct {
	tokens     map[string]*service.Claims
	sessionErr error
}

func (v *stubVerifier) ValidateToken(tokenStr string) (*service.Claims, error) {
	claims, ok := v.tokens[tokenStr]
	if !ok {
		return nil, errors.New("token is malformed")
	}
	return claims, nil
}

func (v *stubVerifier) ValidateSession(context.Context, uuid.UUID, string) error {
	return v.sessionErr
}

func newClaims(tokenType service.TokenType, role string) *service.Claims {
	return &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ID: uuid.NewString()},
		TokenType:        tokenType,
		UserID:           uuid.New(),
		Role:             role,
	}
}

func serve(t *testing.T, router *gin.Engine, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) response.ErrCode {
	t.Helper()
	var env response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if env.Error == nil {
		return ""
	}
	return env.Error.Code
}

func TestAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	member := newClaims(service.TokenTypeUser, "user")
	staff := newClaims(service.TokenTypeStaff, "admin")
	verifier := &stubVerifier{tokens: map[string]*service.Claims{"member": member, "staff": staff}}

	router := gin.New()
	ok := func(c *gin.Context) {
		assert.NotNil(t, GetClaims(c))
		c.Status(http.StatusNoContent)
	}
	router.GET("/any", RequireAuth(verifier), ok)
	router.GET("/member", RequireUserJWT(verifier), ok)
	router.GET("/staff", RequireStaffJWT(verifier), ok)

	tests := []struct {
		name       string
		target     string
		token      string
		wantStatus int
		wantCode   response.ErrCode
	}{
		{"no token", "/any", "", http.StatusUnauthorized, response.ErrTokenRequired},
		{"bad token", "/any", "forged", http.StatusUnauthorized, response.ErrTokenInvalid},
		{"member on any", "/any", "member", http.StatusNoContent, ""},
		{"staff on any", "/any", "staff", http.StatusNoContent, ""},
		{"member on member", "/member", "member", http.StatusNoContent, ""},
		{"staff on member", "/member", "staff", http.StatusForbidden, response.ErrUserAccessOnly},
		{"member on staff", "/staff", "member", http.StatusForbidden, response.ErrStaffAccessOnly},
		{"query token", "/member?token=member", "", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, router, tt.target, tt.token)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, w))
			}
		})
	}
}

func TestAuthenticate_Session(t *testing.T) {
	gin.SetMode(gin.TestMode)
	member := newClaims(service.TokenTypeUser, "user")

	tests := []struct {
		name       string
		sessionErr error
		wantStatus int
		wantCode   response.ErrCode
	}{
		{"replaced by newer login", service.ErrSessionInvalid, http.StatusUnauthorized, response.ErrSessionInvalidated},
		{"redis down", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, response.ErrStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{tokens: map[string]*service.Claims{"member": member}, sessionErr: tt.sessionErr}
			router := gin.New()
			router.GET("/member", RequireUserJWT(verifier), func(c *gin.Context) { c.Status(http.StatusNoContent) })

			w := serve(t, router, "/member", "member")
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			c.Request.Header.Set("Authorization", tt.header)
		}
		got, err := bearerToken(c)
		assert.Equal(t, tt.ok, err == nil, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}
