package auth

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserEnsureRoleDefaultsToRegular(t *testing.T) {
	u := &User{}

	u.EnsureRole()

	if u.Role != RoleRegular {
		t.Fatalf("expected default role %q, got %q", RoleRegular, u.Role)
	}
}

func TestUserEnsureRoleKeepsExistingRole(t *testing.T) {
	u := &User{Role: RoleAdmin}

	u.EnsureRole()

	if u.Role != RoleAdmin {
		t.Fatalf("expected role %q to be preserved, got %q", RoleAdmin, u.Role)
	}
}

func TestUserPasswordHashNeverSerializes(t *testing.T) {
	u := &User{
		Email:        "user@example.com",
		PasswordHash: "$2a$14$notarealhash",
	}

	out, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}

	if strings.Contains(string(out), "notarealhash") {
		t.Fatalf("password hash leaked into JSON: %s", out)
	}
}
