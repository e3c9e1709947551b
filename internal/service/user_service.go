package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/repository"
	"github.com/rs/zerolog"
)

// UserService lets staff review and approve client accounts.
type UserService struct {
	userRepo *repository.UserRepository
	log      zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		log:      log.With().Str("component", "user_service").Logger(),
	}
}

// ListUsers returns every active client record, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateUserStatus moves a client between pending and active.
func (s *UserService) UpdateUserStatus(ctx context.Context, id uuid.UUID, status model.UserStatus, actor uuid.UUID) error {
	if err := s.userRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.log.Info().
		Str("user_id", id.String()).
		Str("status", string(status)).
		Str("actor_id", actor.String()).
		Msg("User status updated")
	return nil
}
