package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/userhub/identity-service/internal/core/domain"
	"github.com/userhub/identity-service/internal/core/ports"
)

// AccessService evaluates authorization over verified token claims. Claims
// are always passed in explicitly; there is no process-wide "current caller"
// state. The only storage-facing dependency is the OwnerResolver used to map
// a token subject to a user id.
type AccessService struct {
	resolver ports.OwnerResolver
	logger   zerolog.Logger
}

func NewAccessService(resolver ports.OwnerResolver, logger zerolog.Logger) *AccessService {
	return &AccessService{resolver: resolver, logger: logger}
}

// HasAnyRole reports whether the claims carry at least one of the required
// roles. Nil claims and an empty requirement both evaluate to false.
func (s *AccessService) HasAnyRole(claims *domain.TokenClaims, required ...domain.Role) bool {
	if claims == nil {
		return false
	}
	for _, role := range required {
		if claims.HasRole(role) {
			return true
		}
	}
	return false
}

// IsOwner reports whether the claims' subject resolves to targetID. It fails
// closed: a subject that no longer resolves (deleted after issuance) or a
// resolver failure both yield false.
func (s *AccessService) IsOwner(ctx context.Context, claims *domain.TokenClaims, targetID string) bool {
	if claims == nil || claims.Subject == "" || targetID == "" {
		return false
	}

	ownerID, err := s.resolver.ResolveOwnerID(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Err(err).Str("subject", claims.Subject).Msg("owner resolution failed")
		}
		return false
	}
	return ownerID == targetID
}

// CanAccessUser enforces the admin-or-owner rule for owner-scoped
// operations: admins pass unconditionally, owners pass on their own record,
// everyone else is denied.
func (s *AccessService) CanAccessUser(ctx context.Context, claims *domain.TokenClaims, targetID string) error {
	if claims == nil {
		return domain.ErrUnauthenticated
	}
	if s.HasAnyRole(claims, domain.RoleAdmin) {
		return nil
	}
	if s.IsOwner(ctx, claims, targetID) {
		return nil
	}
	return domain.ErrForbidden
}
