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

// Booker books and cancels class slots. *service.BookingService implements it.
type Booker interface {
	BookClass(ctx context.Context, classID, userID uuid.UUID) (*model.ClassBooking, error)
	CancelClass(ctx context.Context, bookingID, userID uuid.UUID) error
}

// BookingHandler exposes the booking engine to members.
type BookingHandler struct {
	booker Booker
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(booker Booker) *BookingHandler {
	return &BookingHandler{booker: booker}
}

// BookClass godoc
// POST /api/v1/classes/:id/bookings
// Reserves one slot of the class for the caller.
func (h *BookingHandler) BookClass(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	classID, ok := validator.ParamUUID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	booking, err := h.booker.BookClass(c.Request.Context(), classID, claims.UserID)
	if err != nil {
		failWithServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": booking})
}

// CancelBooking godoc
// DELETE /api/v1/bookings/:id
// Cancels one of the caller's bookings and frees its slot.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	bookingID, ok := validator.ParamUUID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.booker.CancelClass(c.Request.Context(), bookingID, claims.UserID); err != nil {
		failWithServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking_id": bookingID})
}
