package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gymwarriors/fitnesshub-backend/internal/response"
	"github.com/gymwarriors/fitnesshub-backend/internal/service"
)

// checkSession rejects tokens whose JTI is no longer the account's session:
// a newer login or a logout has replaced it. It aborts and returns false on
// rejection.
func checkSession(c *gin.Context, verifier TokenVerifier, claims *service.Claims) bool {
	err := verifier.ValidateSession(c.Request.Context(), claims.UserID, claims.ID)
	switch {
	case err == nil:
		return true
	case errors.Is(err, service.ErrSessionInvalid):
		response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
	default:
		_ = c.Error(err)
		response.AbortFail(c, http.StatusServiceUnavailable, response.ErrStorageUnavailable)
	}
	return false
}
