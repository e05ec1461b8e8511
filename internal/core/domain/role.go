package domain

import "strings"

// Role is the closed set of authorities a user can hold.
type Role string

const (
	RoleUser      Role = "ROLE_USER"
	RoleModerator Role = "ROLE_MODERATOR"
	RoleAdmin     Role = "ROLE_ADMIN"
)

// AllRoles returns every role in the enumeration, in seeding order.
func AllRoles() []Role {
	return []Role{RoleUser, RoleModerator, RoleAdmin}
}

// RoleEntry is a seeded role row. The name is the identity of the row;
// entries are created once at startup and never mutated.
type RoleEntry struct {
	ID   string `json:"id"`
	Name Role   `json:"name"`
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// ParseRole resolves a client-submitted role name, case-insensitively.
// Both the short aliases used by sign-up payloads ("user", "mod", "admin")
// and the full ROLE_* names are accepted. Unknown names are rejected with
// ErrUnknownRole rather than silently falling back to ROLE_USER.
func ParseRole(name string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "user", "role_user":
		return RoleUser, nil
	case "mod", "moderator", "role_moderator":
		return RoleModerator, nil
	case "admin", "role_admin":
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

// ParseRoles resolves a set of requested role names. An empty input yields
// the default {ROLE_USER}. Duplicate names collapse to a single role.
func ParseRoles(names []string) ([]Role, error) {
	if len(names) == 0 {
		return []Role{RoleUser}, nil
	}
	seen := make(map[Role]struct{}, len(names))
	roles := make([]Role, 0, len(names))
	for _, name := range names {
		role, err := ParseRole(name)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}
	return roles, nil
}
