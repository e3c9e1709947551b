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

// StaffManager is the staff account surface. *service.StaffService
// implements it.
type StaffManager interface {
	ListStaff(ctx context.Context) ([]model.Trainer, error)
	CreateStaff(ctx context.Context, req *model.CreateStaffRequest, actor uuid.UUID) (*model.Trainer, error)
	UpdateStaff(ctx context.Context, id uuid.UUID, req *model.UpdateStaffRequest, actor uuid.UUID) (*model.Trainer, error)
	DeactivateStaff(ctx context.Context, id, actor uuid.UUID) error
}

// StaffHandler lets user managers maintain trainer and admin accounts.
type StaffHandler struct {
	staff StaffManager
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(staff StaffManager) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// ListStaff godoc
// GET /api/v1/staff/trainers
func (h *StaffHandler) ListStaff(c *gin.Context) {
	staff, err := h.staff.ListStaff(c.Request.Context())
	if err != nil {
		failWithServiceError(c, err)
		return
	}

	response.List(c, staff)
}

// CreateStaff godoc
// POST /api/v1/staff/trainers
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req model.CreateStaffRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	trainer, err := h.staff.CreateStaff(c.Request.Context(), &req, middleware.GetClaims(c).UserID)
	if err != nil {
		failWithServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, trainer)
}

// UpdateStaff godoc
// PATCH /api/v1/staff/trainers/:id
// Setting is_active back to true reactivates a deactivated account.
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	id, ok := validator.ParamUUID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateStaffRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	trainer, err := h.staff.UpdateStaff(c.Request.Context(), id, &req, middleware.GetClaims(c).UserID)
	if err != nil {
		failWithServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, trainer)
}

// DeactivateStaff godoc
// DELETE /api/v1/staff/trainers/:id
// The account is kept with is_active=false.
func (h *StaffHandler) DeactivateStaff(c *gin.Context) {
	id, ok := validator.ParamUUID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.staff.DeactivateStaff(c.Request.Context(), id, middleware.GetClaims(c).UserID); err != nil {
		failWithServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"trainer_id": id, "is_active": false})
}
