package service

import (
	"errors"
	"fmt"
)

// Booking domain errors. They are expected outcomes the caller branches on,
// never retried by the engine.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrAccountNotActive = errors.New("account is not active, please contact admin")
	ErrClassNotFound    = errors.New("class not found")
	ErrClassFull        = errors.New("class is already full")
	ErrAlreadyBooked    = errors.New("class already booked by this user")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrUnauthorized     = errors.New("not authorized to cancel this booking")
)

// ErrStorageUnavailable matches every *StorageError.
var ErrStorageUnavailable = errors.New("storage unavailable")

var domainErrors = []error{
	ErrUserNotFound,
	ErrAccountNotActive,
	ErrClassNotFound,
	ErrClassFull,
	ErrAlreadyBooked,
	ErrBookingNotFound,
	ErrUnauthorized,
}

// IsDomainError reports whether err is one of the booking domain errors.
func IsDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// StorageError wraps an infrastructure fault (connection loss, timeout,
// aborted transaction) raised while booking or cancelling.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorageUnavailable, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrStorageUnavailable) match any StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}
