package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Staff management errors.
var (
	ErrStaffNotFound        = errors.New("staff account not found")
	ErrCannotDeactivateSelf = errors.New("staff cannot deactivate their own account")
)

// StaffStore is the staff account storage. *repository.TrainerRepository
// implements it.
type StaffStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Trainer, error)
	GetByEmail(ctx context.Context, email string) (*model.Trainer, error)
	ListAll(ctx context.Context) ([]model.Trainer, error)
	Create(ctx context.Context, t *model.Trainer) error
	Update(ctx context.Context, t *model.Trainer) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// MemberEmails finds a client account by email.
type MemberEmails interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Credentials hashes passwords and ends sessions. *AuthService implements it.
type Credentials interface {
	HashPassword(password string) (string, error)
	Logout(ctx context.Context, accountID uuid.UUID) error
}

// StaffService lets user managers open, edit and deactivate staff accounts.
type StaffService struct {
	staff   StaffStore
	members MemberEmails
	creds   Credentials
	cache   ClassListCache
	log     zerolog.Logger
}

// NewStaffService creates a new StaffService.
func NewStaffService(staff StaffStore, members MemberEmails, creds Credentials, cache ClassListCache, log zerolog.Logger) *StaffService {
	return &StaffService{
		staff:   staff,
		members: members,
		creds:   creds,
		cache:   cache,
		log:     log.With().Str("component", "staff_service").Logger(),
	}
}

// ListStaff returns every staff account, deactivated ones included.
func (s *StaffService) ListStaff(ctx context.Context) ([]model.Trainer, error) {
	return s.staff.ListAll(ctx)
}

// CreateStaff opens an active staff account.
func (s *StaffService) CreateStaff(ctx context.Context, req *model.CreateStaffRequest, actor uuid.UUID) (*model.Trainer, error) {
	email := normalizeEmail(req.Email)
	if err := s.ensureEmailFree(ctx, email, uuid.Nil); err != nil {
		return nil, err
	}

	hash, err := s.creds.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	trainer := &model.Trainer{
		Name:           strings.TrimSpace(req.Name),
		Email:          email,
		PasswordHash:   hash,
		Role:           req.Role,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		Bio:            req.Bio,
		PhoneNumber:    req.PhoneNumber,
	}
	if err := s.staff.Create(ctx, trainer); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info().
		Str("staff_id", trainer.ID.String()).
		Str("role", string(trainer.Role)).
		Str("actor_id", actor.String()).
		Msg("Staff account created")
	return trainer, nil
}

// UpdateStaff applies the present fields of req. A change of role, password
// or active flag ends the account's current session, since its token carries
// the old role.
func (s *StaffService) UpdateStaff(ctx context.Context, id uuid.UUID, req *model.UpdateStaffRequest, actor uuid.UUID) (*model.Trainer, error) {
	trainer, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}

	if req.IsActive != nil && !*req.IsActive && id == actor {
		return nil, ErrCannotDeactivateSelf
	}

	revoke := false
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != trainer.Email {
			if err := s.ensureEmailFree(ctx, email, id); err != nil {
				return nil, err
			}
			trainer.Email = email
		}
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := s.creds.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		trainer.PasswordHash = hash
		revoke = true
	}
	if req.Role != nil && *req.Role != trainer.Role {
		trainer.Role = *req.Role
		revoke = true
	}
	if req.IsActive != nil && *req.IsActive != trainer.IsActive {
		trainer.IsActive = *req.IsActive
		revoke = revoke || !trainer.IsActive
	}
	if req.Name != nil {
		trainer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Specialization != nil {
		trainer.Specialization = *req.Specialization
	}
	if req.Experience != nil {
		trainer.Experience = *req.Experience
	}
	if req.Bio != nil {
		trainer.Bio = *req.Bio
	}
	if req.PhoneNumber != nil {
		trainer.PhoneNumber = *req.PhoneNumber
	}

	if err := s.staff.Update(ctx, trainer); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrStaffNotFound
		}
		return nil, err
	}

	if revoke {
		s.endSession(ctx, id)
	}
	// Listings carry the trainer name and hide classes of inactive trainers.
	s.cache.Invalidate(ctx)

	s.log.Info().
		Str("staff_id", id.String()).
		Str("actor_id", actor.String()).
		Bool("session_revoked", revoke).
		Msg("Staff account updated")
	return trainer, nil
}

// DeactivateStaff soft-deletes a staff account and ends its session. The
// account's classes stay in place but leave the public listing.
func (s *StaffService) DeactivateStaff(ctx context.Context, id, actor uuid.UUID) error {
	if id == actor {
		return ErrCannotDeactivateSelf
	}
	if err := s.staff.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStaffNotFound
		}
		return err
	}

	s.endSession(ctx, id)
	s.cache.Invalidate(ctx)

	s.log.Info().
		Str("staff_id", id.String()).
		Str("actor_id", actor.String()).
		Msg("Staff account deactivated")
	return nil
}

// ensureEmailFree checks both account tables, since clients and staff share
// one login form. self is the staff account allowed to hold the email.
func (s *StaffService) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	if _, err := s.members.GetByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	existing, err := s.staff.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != self:
		return ErrEmailTaken
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return err
	}
	return nil
}

func (s *StaffService) endSession(ctx context.Context, id uuid.UUID) {
	if err := s.creds.Logout(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("staff_id", id.String()).Msg("Failed to end staff session")
	}
}
