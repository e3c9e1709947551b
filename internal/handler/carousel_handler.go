package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/response"
	"github.com/gymwarriors/fitnesshub-backend/internal/validator"
)

// CarouselManager is the banner surface. *service.CarouselService implements it.
type CarouselManager interface {
	ListImages(ctx context.Context) ([]model.CarouselImage, error)
	AddImage(ctx context.Context, req *model.AddCarouselImageRequest) (*model.CarouselImage, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
	ReorderImages(ctx context.Context, order []model.CarouselPosition) error
}

// CarouselHandler serves the homepage carousel.
type CarouselHandler struct {
	carousel CarouselManager
}

// NewCarouselHandler creates a new CarouselHandler.
func NewCarouselHandler(carousel CarouselManager) *CarouselHandler {
	return &CarouselHandler{carousel: carousel}
}

// ListImages godoc
// GET /api/v1/carousel
func (h *CarouselHandler) ListImages(c *gin.Context) {
	images, err := h.carousel.ListImages(c.Request.Context())
	if err != nil {
		failWithServiceError(c, err)
		return
	}

	response.List(c, images)
}

// AddImage godoc
// POST /api/v1/staff/carousel
func (h *CarouselHandler) AddImage(c *gin.Context) {
	var req model.AddCarouselImageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	image, err := h.carousel.AddImage(c.Request.Context(), &req)
	if err != nil {
		failWithServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, image)
}

// DeleteImage godoc
// DELETE /api/v1/staff/carousel/:id
func (h *CarouselHandler) DeleteImage(c *gin.Context) {
	id, ok := validator.ParamUUID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.carousel.DeleteImage(c.Request.Context(), id); err != nil {
		failWithServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"image_id": id})
}

// ReorderImages godoc
// PUT /api/v1/staff/carousel/order
func (h *CarouselHandler) ReorderImages(c *gin.Context) {
	var req model.ReorderCarouselRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.carousel.ReorderImages(c.Request.Context(), req.Order); err != nil {
		failWithServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reordered": len(req.Order)})
}
