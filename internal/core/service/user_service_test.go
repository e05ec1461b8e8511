package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/userhub/identity-service/internal/core/domain"
)

func newTestUserService(repo *stubUserRepo, cache *stubOwnerCache) *UserService {
	return NewUserService(repo, NewPasswordHasher(bcrypt.MinCost), cache, zerolog.Nop())
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password string) *domain.User {
	t.Helper()
	hash, err := NewPasswordHasher(bcrypt.MinCost).Hash(password)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: hash,
		Roles:        []domain.Role{domain.RoleUser},
	})
	if err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	return user
}

func TestUserService_UpdatePassword_MismatchBeforeStorage(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, nil)

	_, err := svc.UpdatePassword(context.Background(), "1", "current", "new-one", "new-two")
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if repo.findByIDCalls != 0 {
		t.Fatalf("mismatch check touched storage: %d reads", repo.findByIDCalls)
	}
}

func TestUserService_UpdatePassword_WrongCurrent(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, nil)
	user := seedUser(t, repo, "alice", "Secret1!")

	_, err := svc.UpdatePassword(context.Background(), user.ID, "wrong", "Secret2!", "Secret2!")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_UpdatePassword_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, nil)
	user := seedUser(t, repo, "alice", "Secret1!")

	updated, err := svc.UpdatePassword(context.Background(), user.ID, "Secret1!", "Secret2!", "Secret2!")
	if err != nil {
		t.Fatalf("UpdatePassword returned error: %v", err)
	}
	if updated.ID != user.ID {
		t.Fatalf("unexpected user returned: %+v", updated)
	}

	// The old password no longer signs in; the new one does.
	auth := newTestAuthService(repo)
	if _, err := auth.SignIn(context.Background(), "alice", "Secret1!"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted after change: %v", err)
	}
	if _, err := auth.SignIn(context.Background(), "alice", "Secret2!"); err != nil {
		t.Fatalf("new password rejected after change: %v", err)
	}
}

func TestUserService_UpdatePassword_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, nil)

	_, err := svc.UpdatePassword(context.Background(), "99", "a", "b", "b")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdatePassword_ConcurrentChangeRefused(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, nil)
	user := seedUser(t, repo, "alice", "Secret1!")

	// Another request lands between this caller's verification and write.
	otherHash, _ := NewPasswordHasher(bcrypt.MinCost).Hash("Raced9!")
	if err := repo.ReplacePasswordHash(context.Background(), user.ID, user.PasswordHash, otherHash); err != nil {
		t.Fatalf("racing update failed: %v", err)
	}

	_, err := svc.UpdatePassword(context.Background(), user.ID, "Secret1!", "Secret2!", "Secret2!")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials after racing change, got %v", err)
	}
}

func TestUserService_UpdateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, nil)
	user := seedUser(t, repo, "alice", "Secret1!")

	updated, err := svc.UpdateEmail(context.Background(), user.ID, "new@x.com")
	if err != nil {
		t.Fatalf("UpdateEmail returned error: %v", err)
	}
	if updated.Email != "new@x.com" {
		t.Fatalf("email not updated: %q", updated.Email)
	}

	// Empty email leaves the record untouched.
	same, err := svc.UpdateEmail(context.Background(), user.ID, "")
	if err != nil {
		t.Fatalf("UpdateEmail with empty email returned error: %v", err)
	}
	if same.Email != "new@x.com" {
		t.Fatalf("empty email overwrote the stored value: %q", same.Email)
	}
}

func TestUserService_Delete_InvalidatesOwnerCache(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubOwnerCache()
	svc := newTestUserService(repo, cache)
	user := seedUser(t, repo, "alice", "Secret1!")
	cache.ids["alice"] = user.ID

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "alice" {
		t.Fatalf("owner cache not invalidated: %v", cache.invalidated)
	}
	if _, err := repo.FindByID(context.Background(), user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user still present after delete")
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, nil)

	if err := svc.Delete(context.Background(), "99"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
