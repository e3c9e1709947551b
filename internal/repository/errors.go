package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateBooking is returned when the (class, user) pair is already booked.
	ErrDuplicateBooking = errors.New("booking already exists for this class and user")

	// ErrNoSlots is returned when a guarded slot decrement matched no row.
	ErrNoSlots = errors.New("no available slots")

	// ErrDuplicateEmail is returned when an account email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvoiceAlreadyPaid is returned when a paid invoice is marked paid again.
	ErrInvoiceAlreadyPaid = errors.New("invoice already paid")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err is a Postgres FK violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// notFound maps pgx.ErrNoRows to ErrNotFound and passes anything else through.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
