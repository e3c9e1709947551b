package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/response"
	"github.com/gymwarriors/fitnesshub-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCarousel struct {
	err   error
	added *model.AddCarouselImageRequest
	order []model.CarouselPosition
}

func (s *stubCarousel) ListImages(context.Context) ([]model.CarouselImage, error) {
	return []model.CarouselImage{{ID: uuid.New(), URL: "https://cdn.gym.test/a.webp"}}, s.err
}

func (s *stubCarousel) AddImage(_ context.Context, req *model.AddCarouselImageRequest) (*model.CarouselImage, error) {
	s.added = req
	return &model.CarouselImage{ID: uuid.New(), URL: req.URL, Position: req.Position}, s.err
}

func (s *stubCarousel) DeleteImage(context.Context, uuid.UUID) error {
	return s.err
}

func (s *stubCarousel) ReorderImages(_ context.Context, order []model.CarouselPosition) error {
	s.order = order
	return s.err
}

func setupCarouselApp(carousel CarouselManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewCarouselHandler(carousel)
	router.GET("/api/v1/carousel", h.ListImages)
	router.POST("/api/v1/staff/carousel", h.AddImage)
	router.PUT("/api/v1/staff/carousel/order", h.ReorderImages)
	router.DELETE("/api/v1/staff/carousel/:id", h.DeleteImage)
	return router
}

func TestAddCarouselImageHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"https url", `{"url":"https://cdn.gym.test/a.webp","position":0}`, http.StatusCreated},
		{"not a url", `{"url":"banner.webp","position":0}`, http.StatusBadRequest},
		{"non http scheme", `{"url":"ftp://cdn.gym.test/a.webp","position":0}`, http.StatusBadRequest},
		{"negative position", `{"url":"https://cdn.gym.test/a.webp","position":-1}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carousel := &stubCarousel{}
			w := sendJSON(setupCarouselApp(carousel), http.MethodPost, "/api/v1/staff/carousel", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusCreated {
				require.NotNil(t, carousel.added)
				return
			}
			assert.Equal(t, response.ErrValidation, decodeEnvelope(t, w).Error.Code)
			assert.Nil(t, carousel.added)
		})
	}
}

func TestReorderCarouselHandler(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	body := `{"order":[{"id":"` + a.String() + `","position":1},{"id":"` + b.String() + `","position":0}]}`

	carousel := &stubCarousel{}
	w := sendJSON(setupCarouselApp(carousel), http.MethodPut, "/api/v1/staff/carousel/order", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []model.CarouselPosition{{ID: a, Position: 1}, {ID: b, Position: 0}}, carousel.order)

	w = sendJSON(setupCarouselApp(&stubCarousel{}), http.MethodPut, "/api/v1/staff/carousel/order", `{"order":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = sendJSON(setupCarouselApp(&stubCarousel{err: service.ErrCarouselImageNotFound}), http.MethodPut, "/api/v1/staff/carousel/order", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.ErrCarouselImageNotFound, decodeEnvelope(t, w).Error.Code)

	w = sendJSON(setupCarouselApp(&stubCarousel{err: service.ErrDuplicateCarouselID}), http.MethodPut, "/api/v1/staff/carousel/order", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrInvalidPayload, decodeEnvelope(t, w).Error.Code)
}
