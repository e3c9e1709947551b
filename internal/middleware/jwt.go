package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/response"
	"github.com/gymwarriors/fitnesshub-backend/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
)

var errTokenMissing = errors.New("authorization header or token query required")

// TokenVerifier validates bearer tokens and their live session.
// *service.AuthService implements it.
type TokenVerifier interface {
	ValidateToken(tokenStr string) (*service.Claims, error)
	ValidateSession(ctx context.Context, accountID uuid.UUID, jti string) error
}

// RequireAuth accepts any valid token (client or staff) whose JTI is still
// the account's active session.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return authenticate(verifier, "")
}

// RequireUserJWT accepts only client tokens.
func RequireUserJWT(verifier TokenVerifier) gin.HandlerFunc {
	return authenticate(verifier, service.TokenTypeUser)
}

// RequireStaffJWT accepts only staff tokens.
func RequireStaffJWT(verifier TokenVerifier) gin.HandlerFunc {
	return authenticate(verifier, service.TokenTypeStaff)
}

func authenticate(verifier TokenVerifier, want service.TokenType) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := bearerToken(c)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := verifier.ValidateToken(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		if want != "" && claims.TokenType != want {
			code := response.ErrUserAccessOnly
			if want == service.TokenTypeStaff {
				code = response.ErrStaffAccessOnly
			}
			response.AbortFail(c, http.StatusForbidden, code)
			return
		}

		if !checkSession(c, verifier, claims) {
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the JWT claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

// bearerToken reads the Authorization header, falling back to ?token= for
// websocket upgrades, which cannot carry custom headers from browsers.
func bearerToken(c *gin.Context) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
			return parts[1], nil
		}
	}
	if tokenStr := c.Query("token"); tokenStr != "" {
		return tokenStr, nil
	}
	return "", errTokenMissing
}
