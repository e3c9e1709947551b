package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingTx is the set of store operations that must run inside one
// booking or cancellation transaction.
type BookingTx interface {
	// FindClassForUpdate reads the class row and holds its write lock until
	// the transaction ends.
	FindClassForUpdate(ctx context.Context, classID uuid.UUID) (*model.Class, error)
	FindBooking(ctx context.Context, classID, userID uuid.UUID) (*model.ClassBooking, error)
	FindBookingByID(ctx context.Context, bookingID uuid.UUID) (*model.ClassBooking, error)
	// DecrementAvailableSlots returns the new slot count, or ErrNoSlots.
	DecrementAvailableSlots(ctx context.Context, classID uuid.UUID) (int, error)
	// IncrementAvailableSlots returns the new slot count, never above capacity.
	IncrementAvailableSlots(ctx context.Context, classID uuid.UUID) (int, error)
	InsertBooking(ctx context.Context, classID, userID uuid.UUID) (*model.ClassBooking, error)
	DeleteBooking(ctx context.Context, bookingID uuid.UUID) error
}

// BookingRepository is the Postgres store behind the booking engine.
type BookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository creates a new BookingRepository.
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// FindUserByID loads the booking user outside of any transaction.
func (r *BookingRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, phone_number, role, status, is_active, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.PhoneNumber, &u.Role, &u.Status, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// WithinTx runs fn in a read-committed transaction. The transaction commits
// only if fn returns nil; any error, including a cancelled or expired ctx,
// rolls everything back.
func (r *BookingRepository) WithinTx(ctx context.Context, fn func(tx BookingTx) error) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			// ctx may already be done; rollback must still reach the server.
			_ = tx.Rollback(context.Background())
		}
	}()

	if err = fn(&bookingTx{tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ListByUser returns a user's bookings newest-first, each joined with its class.
func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserBooking, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingColumns+`, `+classColumns+`, t.name
		 FROM class_bookings b
		 JOIN classes c ON c.id = b.class_id
		 JOIN trainers t ON t.id = c.trainer_id
		 WHERE b.user_id = $1
		 ORDER BY b.booking_date DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []model.UserBooking{}
	for rows.Next() {
		var ub model.UserBooking
		c := &ub.Class
		err := rows.Scan(
			&ub.ID, &ub.ClassID, &ub.UserID, &ub.BookingDate,
			&c.ID, &c.Name, &c.Category, &c.Date,
			&c.StartTime, &c.EndTime,
			&c.Capacity, &c.AvailableSlots, &c.TrainerID, &c.CreatedAt, &c.UpdatedAt,
			&c.TrainerName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, ub)
	}
	return bookings, rows.Err()
}

// FindSlotDrift returns every class whose available_slots plus live bookings
// does not add up to its capacity.
func (r *BookingRepository) FindSlotDrift(ctx context.Context) ([]model.SlotDrift, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.capacity, c.available_slots, COUNT(b.id)::int
		 FROM classes c
		 LEFT JOIN class_bookings b ON b.class_id = c.id
		 GROUP BY c.id
		 HAVING c.available_slots + COUNT(b.id) <> c.capacity`,
	)
	if err != nil {
		return nil, fmt.Errorf("find slot drift: %w", err)
	}
	defer rows.Close()

	var drifts []model.SlotDrift
	for rows.Next() {
		var d model.SlotDrift
		if err := rows.Scan(&d.ClassID, &d.Capacity, &d.AvailableSlots, &d.ActiveBookings); err != nil {
			return nil, fmt.Errorf("scan slot drift: %w", err)
		}
		drifts = append(drifts, d)
	}
	return drifts, rows.Err()
}

// bookingTx implements BookingTx on a live pgx transaction.
type bookingTx struct {
	tx pgx.Tx
}

func (t *bookingTx) FindClassForUpdate(ctx context.Context, classID uuid.UUID) (*model.Class, error) {
	c := &model.Class{}
	err := scanClass(t.tx.QueryRow(ctx,
		`SELECT `+classColumns+`
		 FROM classes c
		 WHERE c.id = $1
		 FOR UPDATE`, classID,
	), c)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (t *bookingTx) FindBooking(ctx context.Context, classID, userID uuid.UUID) (*model.ClassBooking, error) {
	b := &model.ClassBooking{}
	err := scanBooking(t.tx.QueryRow(ctx,
		`SELECT `+bookingColumns+`
		 FROM class_bookings b
		 WHERE b.class_id = $1 AND b.user_id = $2`, classID, userID,
	), b)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (t *bookingTx) FindBookingByID(ctx context.Context, bookingID uuid.UUID) (*model.ClassBooking, error) {
	b := &model.ClassBooking{}
	err := scanBooking(t.tx.QueryRow(ctx,
		`SELECT `+bookingColumns+`
		 FROM class_bookings b
		 WHERE b.id = $1`, bookingID,
	), b)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (t *bookingTx) DecrementAvailableSlots(ctx context.Context, classID uuid.UUID) (int, error) {
	var slots int
	err := t.tx.QueryRow(ctx,
		`UPDATE classes
		 SET available_slots = available_slots - 1, updated_at = NOW()
		 WHERE id = $1 AND available_slots > 0
		 RETURNING available_slots`, classID,
	).Scan(&slots)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNoSlots
		}
		return 0, fmt.Errorf("decrement available slots: %w", err)
	}
	return slots, nil
}

func (t *bookingTx) IncrementAvailableSlots(ctx context.Context, classID uuid.UUID) (int, error) {
	var slots int
	err := t.tx.QueryRow(ctx,
		`UPDATE classes
		 SET available_slots = LEAST(capacity, available_slots + 1), updated_at = NOW()
		 WHERE id = $1
		 RETURNING available_slots`, classID,
	).Scan(&slots)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("increment available slots: %w", err)
	}
	return slots, nil
}

func (t *bookingTx) InsertBooking(ctx context.Context, classID, userID uuid.UUID) (*model.ClassBooking, error) {
	b := &model.ClassBooking{ClassID: classID, UserID: userID}
	err := t.tx.QueryRow(ctx,
		`INSERT INTO class_bookings (class_id, user_id)
		 VALUES ($1, $2)
		 RETURNING id, booking_date`, classID, userID,
	).Scan(&b.ID, &b.BookingDate)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateBooking
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return b, nil
}

func (t *bookingTx) DeleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM class_bookings WHERE id = $1`, bookingID)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
