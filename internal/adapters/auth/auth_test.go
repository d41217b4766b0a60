package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobtasks/dashboard/internal/domain/entities"
	"github.com/jobtasks/dashboard/internal/infrastructure/config"
)

func newTestTokenService() *TokenService {
	return NewTokenService(config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: time.Hour,
		Issuer:    "jobtasks-test",
	})
}

func TestIssueAndValidate(t *testing.T) {
	s := newTestTokenService()

	token, err := s.Issue("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	claims, err := s.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "a@example.com" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestValidateRejectsForeignAndExpiredTokens(t *testing.T) {
	s := newTestTokenService()

	other := NewTokenService(config.JWTConfig{Secret: "other", ExpiresIn: time.Hour, Issuer: "jobtasks-test"})
	foreign, err := other.Issue("user-1", "")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if _, err := s.Validate(foreign); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}

	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := s.Issue("user-1", "")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	s.now = time.Now
	if _, err := s.Validate(expired); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestIssueRequiresSecret(t *testing.T) {
	s := NewTokenService(config.JWTConfig{})
	if _, err := s.Issue("user-1", ""); !errors.Is(err, config.ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestIdentities(t *testing.T) {
	ctx := context.Background()

	if _, err := StaticIdentity("").CurrentUserID(ctx); !errors.Is(err, entities.ErrUnauthenticated) {
		t.Errorf("empty static identity error = %v", err)
	}
	if id, _ := StaticIdentity("u1").CurrentUserID(ctx); id != "u1" {
		t.Errorf("static identity = %q", id)
	}
}
