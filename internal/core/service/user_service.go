package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/userhub/identity-service/internal/core/domain"
	"github.com/userhub/identity-service/internal/core/ports"
)

// UserService implements account reads, profile updates, password changes,
// and deletion. The owner cache is invalidated whenever a username stops
// resolving, so ownership checks fail closed promptly after a delete.
type UserService struct {
	users  ports.UserRepository
	hasher *PasswordHasher
	cache  ports.OwnerCache
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, hasher *PasswordHasher, cache ports.OwnerCache, logger zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, cache: cache, logger: logger}
}

func (s *UserService) GetAll(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// UpdateEmail changes the user's email address. An empty email leaves the
// stored value untouched and returns the current record.
func (s *UserService) UpdateEmail(ctx context.Context, id, email string) (*domain.User, error) {
	if email == "" {
		return s.users.FindByID(ctx, id)
	}

	updated, err := s.users.UpdateEmail(ctx, id, email)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("email updated")
	return updated, nil
}

// UpdatePassword changes the user's password. The new/confirm comparison
// happens before any storage access; the current password is then verified
// against the stored hash, and the write only lands if that hash is still
// current, so two racing changes cannot silently overwrite each other.
func (s *UserService) UpdatePassword(ctx context.Context, id, current, newPassword, confirm string) (*domain.User, error) {
	if newPassword != confirm {
		return nil, domain.ErrPasswordMismatch
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(current, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, err
	}

	if err := s.users.ReplacePasswordHash(ctx, id, user.PasswordHash, hash); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("password updated")
	return s.users.FindByID(ctx, id)
}

// Delete removes the user and drops any cached ownership resolution for the
// username.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, user.Username); err != nil {
			s.logger.Warn().Err(err).Str("username", user.Username).Msg("owner cache invalidation failed")
		}
	}

	s.logger.Info().Str("user_id", id).Str("username", user.Username).Msg("user deleted")
	return nil
}
