package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/response"
)

// Permission is a capability derived from a staff role.
type Permission func(model.StaffRole) bool

var (
	ManageClasses  Permission = model.StaffRole.CanManageClasses
	ManageUsers    Permission = model.StaffRole.CanManageUsers
	ManageInvoices Permission = model.StaffRole.CanManageInvoices
	ManageContent  Permission = model.StaffRole.CanManageContent
)

// RequireStaffPermission must run after RequireStaffJWT.
func RequireStaffPermission(allowed Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		role, ok := claims.StaffRole()
		if !ok || !allowed(role) {
			response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return
		}

		c.Next()
	}
}
