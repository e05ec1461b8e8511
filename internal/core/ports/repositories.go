package ports

import (
	"context"

	"github.com/userhub/identity-service/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Duplicate username
// and email detection relies on unique indexes at the storage layer; the
// service-level pre-checks are an optimization, not the sole guard.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateEmail(ctx context.Context, id, email string) (*domain.User, error)

	// ReplacePasswordHash swaps the stored hash only if it still equals
	// oldHash, guarding against a concurrent change between the caller's
	// current-password verification and the write.
	ReplacePasswordHash(ctx context.Context, id, oldHash, newHash string) error

	Delete(ctx context.Context, id string) error
}

// RoleRepository defines persistence for the seeded role rows.
type RoleRepository interface {
	// Ensure creates the role row if absent. Idempotent.
	Ensure(ctx context.Context, role domain.Role) error
	FindAll(ctx context.Context) ([]*domain.RoleEntry, error)
	FindByName(ctx context.Context, name domain.Role) (*domain.RoleEntry, error)
	ExistsByName(ctx context.Context, name domain.Role) (bool, error)
}
