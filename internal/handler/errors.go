package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gymwarriors/fitnesshub-backend/internal/response"
	"github.com/gymwarriors/fitnesshub-backend/internal/service"
)

// serviceErrors maps service sentinels to their HTTP status and code.
var serviceErrors = []struct {
	err    error
	status int
	code   response.ErrCode
}{
	{service.ErrClassFull, http.StatusConflict, response.ErrClassFull},
	{service.ErrAlreadyBooked, http.StatusConflict, response.ErrAlreadyBooked},
	{service.ErrEmailTaken, http.StatusConflict, response.ErrEmailTaken},
	{service.ErrAccountNotActive, http.StatusForbidden, response.ErrAccountNotActive},
	{service.ErrUnauthorized, http.StatusForbidden, response.ErrNotBookingOwner},
	{service.ErrUserNotFound, http.StatusNotFound, response.ErrUserNotFound},
	{service.ErrClassNotFound, http.StatusNotFound, response.ErrClassNotFound},
	{service.ErrBookingNotFound, http.StatusNotFound, response.ErrBookingNotFound},
	{service.ErrTrainerNotFound, http.StatusUnprocessableEntity, response.ErrTrainerNotFound},
	{service.ErrStaffNotFound, http.StatusNotFound, response.ErrStaffNotFound},
	{service.ErrCannotDeactivateSelf, http.StatusConflict, response.ErrCannotDeactivateSelf},
	{service.ErrInvoiceNotFound, http.StatusNotFound, response.ErrInvoiceNotFound},
	{service.ErrInvoiceAlreadyPaid, http.StatusConflict, response.ErrInvoiceAlreadyPaid},
	{service.ErrCarouselImageNotFound, http.StatusNotFound, response.ErrCarouselImageNotFound},
	{service.ErrDuplicateCarouselID, http.StatusBadRequest, response.ErrInvalidPayload},
	{service.ErrInvalidSchedule, http.StatusBadRequest, response.ErrInvalidSchedule},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, response.ErrInvalidCredentials},
	{service.ErrStorageUnavailable, http.StatusServiceUnavailable, response.ErrStorageUnavailable},
}

// failWithServiceError writes the response for err. Unknown errors become a
// 500 and are attached to the gin context for the request logger.
func failWithServiceError(c *gin.Context, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			response.Fail(c, m.status, m.code)
			return
		}
	}
	_ = c.Error(err)
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
