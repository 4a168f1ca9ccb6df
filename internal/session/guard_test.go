package session

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestAdminTokenAllowed(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"empty", "", false},
		{"blank", "   ", false},
		{"opaque token", "abc123", true},
		{"jwt without role", signedToken(t, jwt.MapClaims{"sub": "1"}), true},
		{"jwt admin role", signedToken(t, jwt.MapClaims{"role": "admin"}), true},
		{"jwt admin role uppercase", signedToken(t, jwt.MapClaims{"role": "ADMIN"}), true},
		{"jwt candidate role", signedToken(t, jwt.MapClaims{"role": "candidate"}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdminTokenAllowed(tt.token); got != tt.want {
				t.Errorf("AdminTokenAllowed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdminGuardReadsStore(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryStorage())
	g := NewAdminGuard(store)
	if g.Allow(ctx) {
		t.Error("expected reject without admin token")
	}
	store.WriteAdminToken(ctx, "adm") //nolint:errcheck
	if !g.Allow(ctx) {
		t.Error("expected allow with admin token")
	}
}
