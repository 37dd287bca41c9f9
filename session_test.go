package auth_test

import (
	"testing"
	"time"

	auth "github.com/goliatone/go-credential"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionObject_Getters(t *testing.T) {
	userID := uuid.NewString()
	issuedAt := time.Now()

	session := &auth.SessionObject{
		UserID:   userID,
		Audience: []string{"test-audience"},
		Issuer:   "test-issuer",
		IssuedAt: &issuedAt,
		Data:     map[string]any{"role": "admin"},
	}

	assert.Equal(t, userID, session.GetUserID())
	assert.Equal(t, []string{"test-audience"}, session.GetAudience())
	assert.Equal(t, "test-issuer", session.GetIssuer())
	assert.Equal(t, &issuedAt, session.GetIssuedAt())
	assert.Equal(t, map[string]any{"role": "admin"}, session.GetData())

	parsed, err := session.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed.String())
}

func TestSessionObject_GetUserUUID_Invalid(t *testing.T) {
	session := &auth.SessionObject{UserID: "not-a-uuid"}
	_, err := session.GetUserUUID()
	assert.Error(t, err)
}

func TestSessionObject_Roles(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		hasAdmin   bool
		hasRegular bool
		atLeastReg bool
		atLeastAdm bool
	}{
		{
			name:       "admin role from data",
			data:       map[string]any{"role": "admin"},
			hasAdmin:   true,
			atLeastReg: true,
			atLeastAdm: true,
		},
		{
			name:       "regular role from data",
			data:       map[string]any{"role": "regular"},
			hasRegular: true,
			atLeastReg: true,
		},
		{
			name:       "missing role falls back to regular",
			data:       map[string]any{},
			hasRegular: true,
			atLeastReg: true,
		},
		{
			name:       "nil data falls back to regular",
			data:       nil,
			hasRegular: true,
			atLeastReg: true,
		},
		{
			name:       "invalid role falls back to regular",
			data:       map[string]any{"role": "superuser"},
			hasRegular: true,
			atLeastReg: true,
		},
		{
			name:       "non-string role falls back to regular",
			data:       map[string]any{"role": 42},
			hasRegular: true,
			atLeastReg: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &auth.SessionObject{UserID: "user-123", Data: tt.data}
			assert.Equal(t, tt.hasAdmin, session.HasRole("admin"))
			assert.Equal(t, tt.hasRegular, session.HasRole("regular"))
			assert.Equal(t, tt.atLeastReg, session.IsAtLeast(auth.RoleRegular))
			assert.Equal(t, tt.atLeastAdm, session.IsAtLeast(auth.RoleAdmin))
		})
	}
}

func TestSessionObject_String(t *testing.T) {
	issuedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	session := auth.SessionObject{
		UserID:   "user-123",
		Issuer:   "test-issuer",
		IssuedAt: &issuedAt,
	}

	out := session.String()
	assert.Contains(t, out, "user=user-123")
	assert.Contains(t, out, "iss=test-issuer")

	empty := auth.SessionObject{}
	assert.Contains(t, empty.String(), "iat=<nil>")
}
