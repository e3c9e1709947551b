package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaffRolePermissions(t *testing.T) {
	tests := []struct {
		role           StaffRole
		manageClasses  bool
		manageUsers    bool
		manageInvoices bool
		manageContent  bool
	}{
		{StaffRoleTrainer, true, false, false, false},
		{StaffRoleAdmin, true, true, true, true},
		{StaffRoleITAdmin, false, true, false, true},
		{StaffRole("owner"), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.manageClasses, tt.role.CanManageClasses())
			assert.Equal(t, tt.manageUsers, tt.role.CanManageUsers())
			assert.Equal(t, tt.manageInvoices, tt.role.CanManageInvoices())
			assert.Equal(t, tt.manageContent, tt.role.CanManageContent())
		})
	}
}

func TestParseStaffRole(t *testing.T) {
	for _, raw := range []string{"trainer", "admin", "it_admin"} {
		role, ok := ParseStaffRole(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, StaffRole(raw), role)
	}

	for _, raw := range []string{"", "Admin", "super_admin"} {
		_, ok := ParseStaffRole(raw)
		assert.False(t, ok, raw)
	}
}

func TestUserStatus(t *testing.T) {
	assert.True(t, UserStatusPending.Valid())
	assert.True(t, UserStatusActive.Valid())
	assert.False(t, UserStatus("banned").Valid())

	tests := []struct {
		name   string
		user   User
		expect bool
	}{
		{"approved", User{Status: UserStatusActive, IsActive: true}, true},
		{"pending", User{Status: UserStatusPending, IsActive: true}, false},
		{"approved but disabled", User{Status: UserStatusActive, IsActive: false}, false},
		{"pending and disabled", User{Status: UserStatusPending}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.user.CanBook())
		})
	}
}

func TestClassCounters(t *testing.T) {
	c := &Class{Capacity: 12, AvailableSlots: 3}
	assert.False(t, c.IsFull())
	assert.Equal(t, 9, c.BookedCount())

	c.AvailableSlots = 0
	assert.True(t, c.IsFull())
	assert.Equal(t, 12, c.BookedCount())
}
