package service

import (
	"errors"
	"testing"
	"time"

	"github.com/userhub/identity-service/internal/core/domain"
)

func testUser(roles ...domain.Role) *domain.User {
	return &domain.User{
		ID:       "5",
		Username: "alice",
		Email:    "a@x.com",
		Roles:    roles,
	}
}

func TestTokenService_IssueVerify_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(testUser(domain.RoleUser, domain.RoleModerator))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "ROLE_USER" || claims.Roles[1] != "ROLE_MODERATOR" {
		t.Fatalf("role snapshot lost: %v", claims.Roles)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Fatalf("expiry %v not after issuance %v", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Minute)

	issued := time.Now().UTC()
	svc.now = func() time.Time { return issued }

	token, err := svc.Issue(testUser(domain.RoleUser))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Any clock at or past issuance + TTL must reject the token.
	for _, offset := range []time.Duration{time.Minute + time.Second, time.Hour, 24 * time.Hour} {
		svc.now = func() time.Time { return issued.Add(offset) }
		if _, err := svc.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
			t.Fatalf("offset %v: expected ErrTokenExpired, got %v", offset, err)
		}
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret", time.Hour)
	verifier := NewTokenService("other-secret", time.Hour)

	token, err := issuer.Issue(testUser(domain.RoleUser))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrTokenInvalidSignature) {
		t.Fatalf("expected ErrTokenInvalidSignature, got %v", err)
	}
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := svc.Verify(token); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("token %q: expected ErrTokenMalformed, got %v", token, err)
		}
	}
}

func TestTokenService_Verify_TamperedPayload(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(testUser(domain.RoleUser))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	tampered := token[:len(token)-4] + "AAAA"
	if _, err := svc.Verify(tampered); err == nil {
		t.Fatalf("tampered token verified successfully")
	}
}
