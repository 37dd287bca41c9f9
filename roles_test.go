package auth_test

import (
	"testing"

	auth "github.com/goliatone/go-credential"
	"github.com/stretchr/testify/assert"
)

func TestUserRole_IsValid(t *testing.T) {
	tests := []struct {
		name string
		role auth.UserRole
		want bool
	}{
		{"regular is valid", auth.RoleRegular, true},
		{"admin is valid", auth.RoleAdmin, true},
		{"empty string is invalid", auth.UserRole(""), false},
		{"unknown role is invalid", auth.UserRole("superuser"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.IsValid())
		})
	}
}

func TestUserRole_IsAtLeast(t *testing.T) {
	tests := []struct {
		name    string
		role    auth.UserRole
		minRole auth.UserRole
		want    bool
	}{
		{"admin is at least regular", auth.RoleAdmin, auth.RoleRegular, true},
		{"admin is at least admin", auth.RoleAdmin, auth.RoleAdmin, true},
		{"regular is at least regular", auth.RoleRegular, auth.RoleRegular, true},
		{"regular is not at least admin", auth.RoleRegular, auth.RoleAdmin, false},
		{"unknown role is never at least", auth.UserRole("ghost"), auth.RoleRegular, false},
		{"unknown minimum is never satisfied", auth.RoleAdmin, auth.UserRole("ghost"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.IsAtLeast(tt.minRole))
		})
	}
}

func TestParseRole(t *testing.T) {
	role, ok := auth.ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, auth.RoleAdmin, role)

	role, ok = auth.ParseRole("regular")
	assert.True(t, ok)
	assert.Equal(t, auth.RoleRegular, role)

	_, ok = auth.ParseRole("root")
	assert.False(t, ok)
}

func TestGetAllRoles(t *testing.T) {
	roles := auth.GetAllRoles()
	assert.Equal(t, []auth.UserRole{auth.RoleRegular, auth.RoleAdmin}, roles)
}
