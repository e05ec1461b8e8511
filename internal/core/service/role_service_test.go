package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/userhub/identity-service/internal/core/domain"
)

type stubRoleRepo struct {
	entries map[domain.Role]*domain.RoleEntry
	nextID  int
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{entries: make(map[domain.Role]*domain.RoleEntry), nextID: 1}
}

func (r *stubRoleRepo) Ensure(_ context.Context, role domain.Role) error {
	if _, ok := r.entries[role]; ok {
		return nil
	}
	r.entries[role] = &domain.RoleEntry{ID: fmt.Sprintf("%d", r.nextID), Name: role}
	r.nextID++
	return nil
}

func (r *stubRoleRepo) FindAll(_ context.Context) ([]*domain.RoleEntry, error) {
	var entries []*domain.RoleEntry
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name domain.Role) (*domain.RoleEntry, error) {
	if e, ok := r.entries[name]; ok {
		return e, nil
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) ExistsByName(_ context.Context, name domain.Role) (bool, error) {
	_, ok := r.entries[name]
	return ok, nil
}

func TestRoleService_Seed_Idempotent(t *testing.T) {
	repo := newStubRoleRepo()
	svc := NewRoleService(repo, zerolog.Nop())
	ctx := context.Background()

	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	if len(repo.entries) != len(domain.AllRoles()) {
		t.Fatalf("expected %d seeded roles, got %d", len(domain.AllRoles()), len(repo.entries))
	}

	firstIDs := make(map[domain.Role]string)
	for name, e := range repo.entries {
		firstIDs[name] = e.ID
	}

	// Re-seeding must not recreate or renumber anything.
	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("second Seed returned error: %v", err)
	}
	for name, e := range repo.entries {
		if firstIDs[name] != e.ID {
			t.Fatalf("role %s was recreated on re-seed", name)
		}
	}
}
