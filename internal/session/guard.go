package session

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AdminRole is the role claim accepted by AdminGuard.
const AdminRole = "admin"

// AdminGuard decides whether the admin console may be shown. It only looks
// at the stored token; the backend does the real authorization.
type AdminGuard struct {
	store *Store
}

// NewAdminGuard returns a guard backed by store.
func NewAdminGuard(store *Store) *AdminGuard {
	return &AdminGuard{store: store}
}

// Allow reports whether an admin token is present and, when it is a JWT,
// carries an empty or admin role claim.
func (g *AdminGuard) Allow(ctx context.Context) bool {
	return AdminTokenAllowed(g.store.ReadAdminToken(ctx))
}

// AdminTokenAllowed applies the guard rule to a raw token.
func AdminTokenAllowed(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Opaque tokens are accepted as-is.
		return true
	}
	role, _ := claims["role"].(string)
	return role == "" || strings.EqualFold(role, AdminRole)
}
