package service

import (
	"context"

	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/repository"
)

// TrainerService exposes the public trainer directory.
type TrainerService struct {
	trainerRepo *repository.TrainerRepository
}

// NewTrainerService creates a new TrainerService.
func NewTrainerService(trainerRepo *repository.TrainerRepository) *TrainerService {
	return &TrainerService{trainerRepo: trainerRepo}
}

// ListTrainers returns active trainers. Password hashes never leave the model.
func (s *TrainerService) ListTrainers(ctx context.Context) ([]model.Trainer, error) {
	return s.trainerRepo.ListActive(ctx)
}
