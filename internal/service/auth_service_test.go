package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/sla-service/internal/auth"
	"github.com/spec-kit/sla-service/internal/config"
	"github.com/spec-kit/sla-service/internal/domain"
	apperrors "github.com/spec-kit/sla-service/pkg/util"
)

func newAuthFixture(t *testing.T) (*AuthService, *mockUserRepository) {
	t.Helper()
	userRepo := newMockUserRepository()
	svc := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 15,
	}, userRepo)

	hash, err := auth.HashPassword("pass123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := userRepo.Create(context.Background(), &domain.User{
		Username:     "finance1",
		PasswordHash: hash,
		Department:   "Finance",
		Role:         domain.RoleDeptHead,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return svc, userRepo
}

func TestAuthLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, token, exp, err := svc.Login(context.Background(), "finance1", "pass123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "finance1" || user.Department != "Finance" {
		t.Errorf("user = %+v", user)
	}
	if token == "" {
		t.Error("empty token")
	}
	if exp.IsZero() {
		t.Error("zero expiry")
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Department != "Finance" || claims.Role != domain.RoleDeptHead {
		t.Errorf("claims = %+v", claims)
	}
}

func TestAuthLoginRejects(t *testing.T) {
	svc, _ := newAuthFixture(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "nobody", "pass123"},
		{"wrong password", "finance1", "wrong"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := svc.Login(context.Background(), tc.username, tc.password)
			var domainErr *apperrors.DomainError
			if !errors.As(err, &domainErr) || domainErr.Code != "INVALID_CREDENTIALS" {
				t.Fatalf("err = %v, want INVALID_CREDENTIALS", err)
			}
		})
	}
}
