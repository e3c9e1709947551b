package model

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus gates whether a client may book classes.
type UserStatus string

const (
	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
)

// Valid reports whether s is one of the known statuses.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusPending, UserStatusActive:
		return true
	default:
		return false
	}
}

// UserRole is fixed for bookable clients.
const UserRole = "user"

// User is a gym client.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	Role         string     `json:"role"`
	Status       UserStatus `json:"status"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CanBook reports whether the account has been approved and not disabled.
func (u *User) CanBook() bool {
	return u.IsActive && u.Status == UserStatusActive
}

// SignupRequest is the payload for client self-registration.
type SignupRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email,max=255"`
	Password    string `json:"password" binding:"required,min=6,max=128"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=30"`
}

// LoginRequest is shared by clients and staff.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateUserStatusRequest is the payload used by staff to approve accounts.
type UpdateUserStatusRequest struct {
	Status UserStatus `json:"status" binding:"required,user_status"`
}
