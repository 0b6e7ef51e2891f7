package auth

import (
	"context"

	"github.com/checkfit/checkfit/internal/model"
)

// Identity is the authenticated caller injected into the request context
// by the auth middleware.
type Identity struct {
	UserID string
	Role   model.Role
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// identityKey is the context key for storing Identity.
	identityKey contextKey = "identity"
)

// ContextWithIdentity adds the caller's Identity to the context.
func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext retrieves the Identity from the context.
// Returns nil if not present.
func IdentityFromContext(ctx context.Context) *Identity {
	identity, ok := ctx.Value(identityKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// MustIdentityFromContext retrieves the Identity from the context.
// Panics if not present (use only when auth middleware has run).
func MustIdentityFromContext(ctx context.Context) *Identity {
	identity := IdentityFromContext(ctx)
	if identity == nil {
		panic("identity not found - ensure auth middleware is applied")
	}
	return identity
}
