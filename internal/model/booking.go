package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassBooking grants one user one slot in one class.
// (ClassID, UserID) is unique.
type ClassBooking struct {
	ID          uuid.UUID `json:"id"`
	ClassID     uuid.UUID `json:"class_id"`
	UserID      uuid.UUID `json:"user_id"`
	BookingDate time.Time `json:"booking_date"`
}

// UserBooking is a booking joined with the class it reserves.
type UserBooking struct {
	ClassBooking
	Class Class `json:"class"`
}

// SlotUpdate is broadcast after a booking or cancellation commits.
type SlotUpdate struct {
	ClassID        uuid.UUID `json:"class_id"`
	AvailableSlots int       `json:"available_slots"`
}
