package domain

import "time"

// TokenClaims is the verified payload of a bearer token. It is a snapshot of
// the user taken at issuance time: role changes made after issuance are not
// reflected until the token expires and a new one is minted.
type TokenClaims struct {
	Subject   string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the claims carry the given role.
func (c *TokenClaims) HasRole(role Role) bool {
	for _, r := range c.Roles {
		if r == string(role) {
			return true
		}
	}
	return false
}
