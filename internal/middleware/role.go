package middleware

import (
	"net/http"

	"github.com/checkfit/checkfit/internal/auth"
	"github.com/checkfit/checkfit/internal/model"
)

// RequireRole returns middleware that restricts a route to callers
// holding one of the given roles. Must be applied after Auth.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := auth.IdentityFromContext(r.Context())
			if identity == nil {
				writeAuthError(w)
				return
			}

			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeAuthError(w)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only routes.
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin)
}
