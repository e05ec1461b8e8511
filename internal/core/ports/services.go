package ports

import (
	"context"

	"github.com/userhub/identity-service/internal/core/domain"
)

// TokenProvider issues and verifies self-contained bearer tokens. Both
// operations are pure CPU work: no storage round trips, safe for concurrent
// use from any number of request handlers.
type TokenProvider interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*domain.TokenClaims, error)
}

// SignUpInput carries a registration request. Roles holds client-submitted
// role names; an empty slice means the default ROLE_USER.
type SignUpInput struct {
	Username string
	Email    string
	Password string
	Roles    []string
}

// SignInResult is the response surface of a successful sign-in.
type SignInResult struct {
	Token     string
	TokenType string
	User      *domain.User
}

type AuthService interface {
	SignIn(ctx context.Context, username, password string) (*SignInResult, error)
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
}

type UserService interface {
	GetAll(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateEmail(ctx context.Context, id, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, current, newPassword, confirm string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type RoleService interface {
	// Seed creates any missing role rows. Called once at startup; safe to
	// call again.
	Seed(ctx context.Context) error
	GetAll(ctx context.Context) ([]*domain.RoleEntry, error)
}

// OwnerResolver maps a token subject to the owning user id. It is the single
// storage-facing capability the access evaluator depends on, so the rest of
// the evaluator stays side-effect-free.
type OwnerResolver interface {
	ResolveOwnerID(ctx context.Context, username string) (string, error)
}

// OwnerCache is an OwnerResolver with explicit invalidation, used when the
// resolution is cached outside the primary store.
type OwnerCache interface {
	OwnerResolver
	Invalidate(ctx context.Context, username string) error
}

// AccessEvaluator decides authorization over verified claims. HasAnyRole and
// IsOwner fail closed: nil claims, unresolvable subjects, and resolver errors
// all evaluate to a denial.
type AccessEvaluator interface {
	HasAnyRole(claims *domain.TokenClaims, required ...domain.Role) bool
	IsOwner(ctx context.Context, claims *domain.TokenClaims, targetID string) bool

	// CanAccessUser enforces the admin-or-owner rule used by owner-scoped
	// operations: nil on allow, ErrUnauthenticated when claims are absent,
	// ErrForbidden otherwise.
	CanAccessUser(ctx context.Context, claims *domain.TokenClaims, targetID string) error
}
