package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gymwarriors/fitnesshub-backend/internal/response"
	"github.com/gymwarriors/fitnesshub-backend/internal/service"
)

// TrainerHandler serves the public trainer directory.
type TrainerHandler struct {
	trainerService *service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService *service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// ListTrainers godoc
// GET /api/v1/trainers
func (h *TrainerHandler) ListTrainers(c *gin.Context) {
	trainers, err := h.trainerService.ListTrainers(c.Request.Context())
	if err != nil {
		failWithServiceError(c, err)
		return
	}

	response.List(c, trainers)
}
