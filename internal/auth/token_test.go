package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/sla-service/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("secret", 30)
	user := &domain.User{ID: "user-1", Department: "Finance", Role: domain.RoleDeptHead}

	token, exp, err := tm.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if remaining := time.Until(exp); remaining < 29*time.Minute || remaining > 31*time.Minute {
		t.Errorf("expiry %v not ~30m out", exp)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.Department != "Finance" || claims.Role != domain.RoleDeptHead {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 30).GenerateToken(&domain.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := NewTokenManager("secret-b", 30).ParseToken(token); err == nil {
		t.Fatal("token signed with another secret should not parse")
	}
}

func TestTokenManagerDefaultTTL(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	_, exp, err := tm.GenerateToken(&domain.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if remaining := time.Until(exp); remaining < 59*time.Minute {
		t.Errorf("default TTL should be an hour, expiry %v", exp)
	}
}
