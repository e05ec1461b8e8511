package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"user", RoleUser},
		{"USER", RoleUser},
		{"role_user", RoleUser},
		{"mod", RoleModerator},
		{"Moderator", RoleModerator},
		{"ROLE_MODERATOR", RoleModerator},
		{"admin", RoleAdmin},
		{" Admin ", RoleAdmin},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseRole_Unknown(t *testing.T) {
	for _, in := range []string{"", "superuser", "admins", "role_root"} {
		if _, err := ParseRole(in); !errors.Is(err, ErrUnknownRole) {
			t.Fatalf("ParseRole(%q): expected ErrUnknownRole, got %v", in, err)
		}
	}
}

func TestParseRoles_DefaultsToUser(t *testing.T) {
	roles, err := ParseRoles(nil)
	if err != nil {
		t.Fatalf("ParseRoles(nil) returned error: %v", err)
	}
	if len(roles) != 1 || roles[0] != RoleUser {
		t.Fatalf("expected default [ROLE_USER], got %v", roles)
	}
}

func TestParseRoles_Deduplicates(t *testing.T) {
	roles, err := ParseRoles([]string{"admin", "ADMIN", "mod"})
	if err != nil {
		t.Fatalf("ParseRoles returned error: %v", err)
	}
	if len(roles) != 2 || roles[0] != RoleAdmin || roles[1] != RoleModerator {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestParseRoles_RejectsUnknownOutright(t *testing.T) {
	if _, err := ParseRoles([]string{"user", "superuser"}); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}
