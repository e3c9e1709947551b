package repository

import (
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/jackc/pgx/v5"
)

// classColumns selects a class row aliased as c. Times are rendered as HH:MM.
const classColumns = `c.id, c.name, c.category, c.date,
	to_char(c.start_time, 'HH24:MI'), to_char(c.end_time, 'HH24:MI'),
	c.capacity, c.available_slots, c.trainer_id, c.created_at, c.updated_at`

func scanClass(row pgx.Row, c *model.Class, extra ...any) error {
	dest := []any{
		&c.ID, &c.Name, &c.Category, &c.Date,
		&c.StartTime, &c.EndTime,
		&c.Capacity, &c.AvailableSlots, &c.TrainerID, &c.CreatedAt, &c.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

const bookingColumns = `b.id, b.class_id, b.user_id, b.booking_date`

func scanBooking(row pgx.Row, b *model.ClassBooking) error {
	return row.Scan(&b.ID, &b.ClassID, &b.UserID, &b.BookingDate)
}
