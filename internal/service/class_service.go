package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Class scheduling errors.
var (
	ErrInvalidSchedule = errors.New("end time must be after start time")
	ErrTrainerNotFound = errors.New("trainer not found or inactive")
)

// ClassStore is the class storage the ClassService reads and writes.
type ClassStore interface {
	List(ctx context.Context) ([]model.Class, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error)
	Create(ctx context.Context, c *model.Class) error
}

// BookingLister lists a member's bookings.
type BookingLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserBooking, error)
}

// TrainerLookup resolves a staff account by id.
type TrainerLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Trainer, error)
}

// ClassService serves the read side of classes and lets staff schedule new ones.
type ClassService struct {
	classes  ClassStore
	bookings BookingLister
	trainers TrainerLookup
	cache    ClassListCache
	log      zerolog.Logger
}

// NewClassService creates a new ClassService.
func NewClassService(
	classes ClassStore,
	bookings BookingLister,
	trainers TrainerLookup,
	cache ClassListCache,
	log zerolog.Logger,
) *ClassService {
	return &ClassService{
		classes:  classes,
		bookings: bookings,
		trainers: trainers,
		cache:    cache,
		log:      log.With().Str("component", "class_service").Logger(),
	}
}

// ListClasses returns every class of an active trainer, ordered by date then
// start time. The listing is served from the cache when present; any cache
// problem falls through to Postgres.
func (s *ClassService) ListClasses(ctx context.Context) ([]model.Class, error) {
	// The generation is read before the query. If slots change while the
	// query runs, the result lands under a generation that is already stale.
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Class list generation read failed")
		return s.classes.List(ctx)
	}
	if classes, ok := s.cache.Load(ctx, gen); ok {
		return classes, nil
	}

	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Store(ctx, gen, classes)
	return classes, nil
}

// GetClass retrieves a class with its trainer name.
func (s *ClassService) GetClass(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return class, nil
}

// ListUserBookings returns the caller's bookings, newest first.
func (s *ClassService) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]model.UserBooking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// CreateClass schedules a class with every slot available. A trainer
// creating a class without naming one is assigned to it.
func (s *ClassService) CreateClass(ctx context.Context, req *model.CreateClassRequest, caller uuid.UUID, callerRole model.StaffRole) (*model.Class, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}
	if !endsAfter(req.StartTime, req.EndTime) {
		return nil, ErrInvalidSchedule
	}

	trainerID := req.TrainerID
	if trainerID == uuid.Nil && callerRole == model.StaffRoleTrainer {
		trainerID = caller
	}
	trainer, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if !trainer.IsActive || trainer.Role != model.StaffRoleTrainer {
		return nil, ErrTrainerNotFound
	}

	class := &model.Class{
		Name:        req.Name,
		Category:    req.Category,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Capacity:    req.Capacity,
		TrainerID:   trainer.ID,
		TrainerName: trainer.Name,
	}
	if err := s.classes.Create(ctx, class); err != nil {
		// The trainer row can disappear between the lookup and the insert.
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	s.cache.Invalidate(ctx)

	s.log.Info().
		Str("class_id", class.ID.String()).
		Str("trainer_id", trainer.ID.String()).
		Int("capacity", class.Capacity).
		Msg("Class scheduled")
	return class, nil
}

// endsAfter compares two HH:MM clock times.
func endsAfter(start, end string) bool {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return false
	}
	return e.After(s)
}
