package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	env := newTestEnv()
	ctx := context.Background()
	jane := mustCreateUser(t, env, "Jane", "jane@example.com")
	auth := NewAuthService(env.users.store)

	token, err := auth.Login(ctx, " JANE@example.com ", "correct-horse-battery")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (any, error) {
		return jwtSecret(), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != jane.ID || claims.Email != "jane@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	env := newTestEnv()
	ctx := context.Background()
	mustCreateUser(t, env, "Jane", "jane@example.com")
	auth := NewAuthService(env.users.store)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "jane@example.com", "wrong-password"},
		{"unknown email", "nobody@example.com", "correct-horse-battery"},
		{"blank email", "", "correct-horse-battery"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := auth.Login(ctx, tt.email, tt.password); err == nil {
				t.Errorf("expected login failure")
			}
		})
	}
}

func TestRefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	env := newTestEnv()
	ctx := context.Background()
	jane := mustCreateUser(t, env, "Jane", "jane@example.com")
	auth := NewAuthService(env.users.store)

	token, err := auth.Login(ctx, "jane@example.com", "correct-horse-battery")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	refreshed, err := auth.RefreshToken(ctx, token)
	if err != nil {
		t.Fatalf("RefreshToken returned error: %v", err)
	}
	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(refreshed, claims, func(token *jwt.Token) (any, error) {
		return jwtSecret(), nil
	}); err != nil {
		t.Fatalf("refreshed token does not parse: %v", err)
	}
	if claims.UserID != jane.ID {
		t.Errorf("refreshed token carries wrong principal: %s", claims.UserID)
	}

	if _, err := auth.RefreshToken(ctx, "not-a-token"); err == nil {
		t.Errorf("expected error refreshing a garbage token")
	}
}
