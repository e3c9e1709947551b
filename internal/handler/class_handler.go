package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/middleware"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/response"
	"github.com/gymwarriors/fitnesshub-backend/internal/validator"
)

// ClassCatalog is the class read and scheduling surface the handler needs.
// *service.ClassService implements it.
type ClassCatalog interface {
	ListClasses(ctx context.Context) ([]model.Class, error)
	GetClass(ctx context.Context, id uuid.UUID) (*model.Class, error)
	ListUserBookings(ctx context.Context, userID uuid.UUID) ([]model.UserBooking, error)
	CreateClass(ctx context.Context, req *model.CreateClassRequest, caller uuid.UUID, callerRole model.StaffRole) (*model.Class, error)
}

// ClassHandler serves the class schedule and a member's own bookings.
type ClassHandler struct {
	classes ClassCatalog
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classes ClassCatalog) *ClassHandler {
	return &ClassHandler{classes: classes}
}

// ListClasses godoc
// GET /api/v1/classes
// Lists upcoming and past classes of active trainers by date and start time.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classes.ListClasses(c.Request.Context())
	if err != nil {
		failWithServiceError(c, err)
		return
	}

	response.List(c, classes)
}

// GetClass godoc
// GET /api/v1/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, ok := validator.ParamUUID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	class, err := h.classes.GetClass(c.Request.Context(), id)
	if err != nil {
		failWithServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// ListMyBookings godoc
// GET /api/v1/me/bookings
// Lists the caller's bookings, newest first.
func (h *ClassHandler) ListMyBookings(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	bookings, err := h.classes.ListUserBookings(c.Request.Context(), claims.UserID)
	if err != nil {
		failWithServiceError(c, err)
		return
	}

	response.List(c, bookings)
}

// CreateClass godoc
// POST /api/v1/staff/classes
// Schedules a class. Trainers may omit trainer_id to schedule themselves.
func (h *ClassHandler) CreateClass(c *gin.Context) {
	claims := middleware.GetClaims(c)
	role, ok := claims.StaffRole()
	if !ok {
		response.Fail(c, http.StatusForbidden, response.ErrStaffAccessOnly)
		return
	}

	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classes.CreateClass(c.Request.Context(), &req, claims.UserID, role)
	if err != nil {
		failWithServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": class})
}
