package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/repository"
	"github.com/rs/zerolog"
)

// BookingStore is the persistence collaborator of the booking engine.
type BookingStore interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	WithinTx(ctx context.Context, fn func(tx repository.BookingTx) error) error
}

// SlotNotifier is told about the new slot count of a class after a booking
// or cancellation has committed.
type SlotNotifier interface {
	SlotsChanged(ctx context.Context, update model.SlotUpdate)
}

// BookingService books and cancels class slots. Every mutation runs in a
// single store transaction, so available_slots + bookings == capacity holds
// for each class whatever the interleaving of concurrent callers.
type BookingService struct {
	store    BookingStore
	notifier SlotNotifier
	timeout  time.Duration
	log      zerolog.Logger
}

// NewBookingService creates a new BookingService. A nil notifier disables
// post-commit notifications; a zero timeout leaves ctx untouched.
func NewBookingService(store BookingStore, notifier SlotNotifier, timeout time.Duration, log zerolog.Logger) *BookingService {
	return &BookingService{
		store:    store,
		notifier: notifier,
		timeout:  timeout,
		log:      log.With().Str("component", "booking_service").Logger(),
	}
}

// BookClass reserves one slot of classID for userID.
//
// Returns ErrUserNotFound, ErrAccountNotActive, ErrClassNotFound, ErrClassFull
// or ErrAlreadyBooked for rejected requests and a *StorageError for
// infrastructure faults. On any error nothing is persisted.
func (s *BookingService) BookClass(ctx context.Context, classID, userID uuid.UUID) (*model.ClassBooking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	log := s.log.With().
		Str("class_id", classID.String()).
		Str("user_id", userID.String()).
		Logger()

	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.storageFault(log, "find user", err)
	}
	if !user.CanBook() {
		return nil, ErrAccountNotActive
	}

	var (
		booking *model.ClassBooking
		slots   int
	)
	err = s.store.WithinTx(ctx, func(tx repository.BookingTx) error {
		class, err := tx.FindClassForUpdate(ctx, classID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrClassNotFound
			}
			return err
		}
		if class.IsFull() {
			return ErrClassFull
		}

		_, err = tx.FindBooking(ctx, classID, userID)
		switch {
		case err == nil:
			return ErrAlreadyBooked
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}

		if slots, err = tx.DecrementAvailableSlots(ctx, classID); err != nil {
			return err
		}
		booking, err = tx.InsertBooking(ctx, classID, userID)
		return err
	})
	if err != nil {
		return nil, s.translate(log, "book class", err)
	}

	log.Info().
		Str("booking_id", booking.ID.String()).
		Int("available_slots", slots).
		Msg("Class booked")

	s.notify(ctx, model.SlotUpdate{ClassID: classID, AvailableSlots: slots})
	return booking, nil
}

// CancelClass releases the slot held by bookingID. Only the user who owns the
// booking may cancel it; account status is not consulted.
//
// Returns ErrBookingNotFound or ErrUnauthorized for rejected requests and a
// *StorageError for infrastructure faults. On any error nothing is persisted.
func (s *BookingService) CancelClass(ctx context.Context, bookingID, userID uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	log := s.log.With().
		Str("booking_id", bookingID.String()).
		Str("user_id", userID.String()).
		Logger()

	var (
		classID uuid.UUID
		slots   int
	)
	err := s.store.WithinTx(ctx, func(tx repository.BookingTx) error {
		booking, err := tx.FindBookingByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.UserID != userID {
			return ErrUnauthorized
		}

		// Lock the class before touching the booking row, in the same order
		// BookClass takes them.
		class, err := tx.FindClassForUpdate(ctx, booking.ClassID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrClassNotFound
			}
			return err
		}

		if err := tx.DeleteBooking(ctx, booking.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Cancelled concurrently by another request.
				return ErrBookingNotFound
			}
			return err
		}

		classID = class.ID
		if class.AvailableSlots >= class.Capacity {
			log.Error().
				Str("class_id", class.ID.String()).
				Int("capacity", class.Capacity).
				Int("available_slots", class.AvailableSlots).
				Msg("Capacity invariant violated: cancelling would exceed capacity, slot count left unchanged")
			slots = class.AvailableSlots
			return nil
		}

		slots, err = tx.IncrementAvailableSlots(ctx, class.ID)
		return err
	})
	if err != nil {
		return s.translate(log, "cancel class", err)
	}

	log.Info().
		Str("class_id", classID.String()).
		Int("available_slots", slots).
		Msg("Booking cancelled")

	s.notify(ctx, model.SlotUpdate{ClassID: classID, AvailableSlots: slots})
	return nil
}

// translate maps an error returned from a booking transaction to the
// engine's taxonomy. Store conflicts become domain errors; anything that is
// not a domain outcome is a storage fault.
func (s *BookingService) translate(log zerolog.Logger, op string, err error) error {
	switch {
	case IsDomainError(err):
		return err
	case errors.Is(err, repository.ErrDuplicateBooking):
		// Lost the race between the existence check and the insert.
		return ErrAlreadyBooked
	case errors.Is(err, repository.ErrNoSlots):
		return ErrClassFull
	default:
		return s.storageFault(log, op, err)
	}
}

func (s *BookingService) storageFault(log zerolog.Logger, op string, err error) error {
	log.Error().Err(err).Str("op", op).Msg("Booking storage fault")
	return &StorageError{Op: op, Err: err}
}

func (s *BookingService) notify(ctx context.Context, update model.SlotUpdate) {
	if s.notifier == nil {
		return
	}
	// The transaction is already committed; the request deadline must not
	// cut the notification short.
	s.notifier.SlotsChanged(context.WithoutCancel(ctx), update)
}

func (s *BookingService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
