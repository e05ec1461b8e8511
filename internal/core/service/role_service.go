package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/userhub/identity-service/internal/core/domain"
	"github.com/userhub/identity-service/internal/core/ports"
)

// RoleService seeds and lists the closed role enumeration. Role rows are
// created once and never mutated afterwards.
type RoleService struct {
	roles  ports.RoleRepository
	logger zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, logger zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, logger: logger}
}

// Seed creates any missing role rows. Re-running against an already seeded
// store is a no-op.
func (s *RoleService) Seed(ctx context.Context) error {
	for _, role := range domain.AllRoles() {
		if err := s.roles.Ensure(ctx, role); err != nil {
			return err
		}
	}
	s.logger.Debug().Msg("roles seeded")
	return nil
}

func (s *RoleService) GetAll(ctx context.Context) ([]*domain.RoleEntry, error) {
	return s.roles.FindAll(ctx)
}
