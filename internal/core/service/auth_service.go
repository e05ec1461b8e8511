package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/identity-service/internal/core/domain"
	"github.com/userhub/identity-service/internal/core/ports"
)

// AuthService implements sign-in and sign-up.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenProvider
	hasher *PasswordHasher
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenProvider, hasher *PasswordHasher, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher, logger: logger}
}

// SignIn validates the credentials and mints a bearer token. An unknown
// username and a wrong password both come back as ErrInvalidCredentials, so
// callers cannot probe which usernames exist.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*ports.SignInResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Info().Str("username", username).Msg("sign-in rejected")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("sign-in succeeded")
	return &ports.SignInResult{Token: token, TokenType: "Bearer", User: user}, nil
}

// SignUp registers a new user. Duplicate checks run before any write; the
// unique indexes on username and email remain the backstop for concurrent
// registrations racing past the pre-checks. An empty role list defaults to
// ROLE_USER; an unrecognized role name is rejected outright.
func (s *AuthService) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.User, error) {
	roles, err := domain.ParseRoles(input.Roles)
	if err != nil {
		return nil, err
	}

	if taken, err := s.users.ExistsByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrDuplicateUsername
	}
	if taken, err := s.users.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("username", created.Username).
		Strs("roles", created.RoleNames()).
		Msg("user registered")
	return created, nil
}
