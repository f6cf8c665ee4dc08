// Package auth provides bearer-token verification and the typed identity
// passed to every handler. Claims are parsed exactly once at the
// authentication boundary.
package auth

import (
	"context"

	appErrors "forum-backend/pkg/errors"
)

// Role is a coarse permission group carried in the token.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleUser       Role = "USER"
)

// Claims is the verified identity of the caller.
type Claims struct {
	Subject string
	Roles   []Role
}

// HasAnyRole reports whether the caller holds at least one of the given roles.
func (c *Claims) HasAnyRole(roles ...Role) bool {
	for _, want := range roles {
		for _, have := range c.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

type contextKey string

const claimsContextKey contextKey = "auth.claims"

// WithClaims returns a context carrying the caller's claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext extracts the caller's claims set by the auth middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, appErrors.NewForbiddenError("no identity in request context")
	}
	return claims, nil
}
