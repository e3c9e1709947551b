package worker

import (
	"context"
	"time"

	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/rs/zerolog"
)

// DriftFinder reports classes whose slot counter disagrees with their bookings.
// *repository.BookingRepository implements it.
type DriftFinder interface {
	FindSlotDrift(ctx context.Context) ([]model.SlotDrift, error)
}

// SlotAuditWorker periodically checks available_slots + bookings == capacity
// for every class. It only reports: the booking engine stays the single
// writer of available_slots.
type SlotAuditWorker struct {
	finder   DriftFinder
	interval time.Duration
	log      zerolog.Logger
}

func NewSlotAuditWorker(finder DriftFinder, interval time.Duration, log zerolog.Logger) *SlotAuditWorker {
	return &SlotAuditWorker{
		finder:   finder,
		interval: interval,
		log:      log.With().Str("component", "slot_audit_worker").Logger(),
	}
}

// Start blocks until ctx is cancelled.
func (w *SlotAuditWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("SlotAuditWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("SlotAuditWorker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single audit pass and returns the number of drifting classes.
func (w *SlotAuditWorker) RunOnce(ctx context.Context) int {
	drifts, err := w.finder.FindSlotDrift(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error().Err(err).Msg("Slot audit query failed")
		}
		return 0
	}

	for _, d := range drifts {
		w.log.Error().
			Str("class_id", d.ClassID.String()).
			Int("capacity", d.Capacity).
			Int("available_slots", d.AvailableSlots).
			Int("active_bookings", d.ActiveBookings).
			Msg("Capacity invariant violated")
	}

	if len(drifts) == 0 {
		w.log.Debug().Msg("Slot audit clean")
	}
	return len(drifts)
}
