package model

import (
	"time"

	"github.com/google/uuid"
)

// Class is a scheduled gym session with a fixed number of slots.
// AvailableSlots is only ever written by the booking engine.
type Class struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Date           time.Time `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Capacity       int       `json:"capacity"`
	AvailableSlots int       `json:"available_slots"`
	TrainerID      uuid.UUID `json:"trainer_id"`
	TrainerName    string    `json:"trainer_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsFull reports whether no slot is left.
func (c *Class) IsFull() bool {
	return c.AvailableSlots <= 0
}

// BookedCount is the number of slots consumed according to the cached counter.
func (c *Class) BookedCount() int {
	return c.Capacity - c.AvailableSlots
}

// CreateClassRequest is the payload for scheduling a new class.
type CreateClassRequest struct {
	Name      string    `json:"name" binding:"required,min=2,max=100"`
	Category  string    `json:"category" binding:"required,min=2,max=50"`
	Date      string    `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string    `json:"start_time" binding:"required,datetime=15:04"`
	EndTime   string    `json:"end_time" binding:"required,datetime=15:04"`
	Capacity  int       `json:"capacity" binding:"required,min=1,max=500"`
	TrainerID uuid.UUID `json:"trainer_id"`
}

// SlotDrift describes a class whose cached counter disagrees with its bookings.
type SlotDrift struct {
	ClassID        uuid.UUID `json:"class_id"`
	Capacity       int       `json:"capacity"`
	AvailableSlots int       `json:"available_slots"`
	ActiveBookings int       `json:"active_bookings"`
}
