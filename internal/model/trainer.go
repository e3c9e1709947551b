package model

import (
	"time"

	"github.com/google/uuid"
)

// StaffRole is the closed set of administrative roles.
type StaffRole string

const (
	StaffRoleTrainer StaffRole = "trainer"
	StaffRoleAdmin   StaffRole = "admin"
	StaffRoleITAdmin StaffRole = "it_admin"
)

// ParseStaffRole validates a raw role string.
func ParseStaffRole(raw string) (StaffRole, bool) {
	switch r := StaffRole(raw); r {
	case StaffRoleTrainer, StaffRoleAdmin, StaffRoleITAdmin:
		return r, true
	default:
		return "", false
	}
}

// CanManageClasses reports whether the role may schedule classes.
func (r StaffRole) CanManageClasses() bool {
	switch r {
	case StaffRoleTrainer, StaffRoleAdmin:
		return true
	case StaffRoleITAdmin:
		return false
	default:
		return false
	}
}

// CanManageUsers reports whether the role may list and approve clients.
func (r StaffRole) CanManageUsers() bool {
	switch r {
	case StaffRoleAdmin, StaffRoleITAdmin:
		return true
	case StaffRoleTrainer:
		return false
	default:
		return false
	}
}

// CanManageInvoices reports whether the role may bill clients and record payments.
func (r StaffRole) CanManageInvoices() bool {
	switch r {
	case StaffRoleAdmin:
		return true
	case StaffRoleTrainer, StaffRoleITAdmin:
		return false
	default:
		return false
	}
}

// CanManageContent reports whether the role may edit the homepage carousel.
func (r StaffRole) CanManageContent() bool {
	switch r {
	case StaffRoleAdmin, StaffRoleITAdmin:
		return true
	case StaffRoleTrainer:
		return false
	default:
		return false
	}
}

// Trainer is a staff account. Admins and IT admins are stored here too.
type Trainer struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           StaffRole `json:"role"`
	Specialization string    `json:"specialization,omitempty"`
	Experience     int       `json:"experience"`
	Bio            string    `json:"bio,omitempty"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateStaffRequest is the payload user managers send to open a staff account.
type CreateStaffRequest struct {
	Name           string    `json:"name" binding:"required,min=2,max=100"`
	Email          string    `json:"email" binding:"required,email,max=255"`
	Password       string    `json:"password" binding:"required,min=6,max=128"`
	Role           StaffRole `json:"role" binding:"required,staff_role"`
	Specialization string    `json:"specialization" binding:"omitempty,max=100"`
	Experience     int       `json:"experience" binding:"min=0,max=80"`
	Bio            string    `json:"bio" binding:"omitempty,max=1000"`
	PhoneNumber    string    `json:"phone_number" binding:"omitempty,max=30"`
}

// UpdateStaffRequest changes only the fields that are present. An empty
// password keeps the current one.
type UpdateStaffRequest struct {
	Name           *string    `json:"name" binding:"omitempty,min=2,max=100"`
	Email          *string    `json:"email" binding:"omitempty,email,max=255"`
	Password       *string    `json:"password" binding:"omitempty,min=6,max=128"`
	Role           *StaffRole `json:"role" binding:"omitempty,staff_role"`
	Specialization *string    `json:"specialization" binding:"omitempty,max=100"`
	Experience     *int       `json:"experience" binding:"omitempty,min=0,max=80"`
	Bio            *string    `json:"bio" binding:"omitempty,max=1000"`
	PhoneNumber    *string    `json:"phone_number" binding:"omitempty,max=30"`
	IsActive       *bool      `json:"is_active"`
}
