package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// AdminEmailContextKey carries the verified admin's email through the
// request context.
const AdminEmailContextKey = contextKey("adminEmail")

// AdminOnly verifies the Bearer token and requires the identity to hold
// the admin role. The verified email is added to the request context for
// downstream handlers.
func AdminOnly(verifier Verifier, checker RoleChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Bearer token is required", http.StatusUnauthorized)
				return
			}

			token, err := verifier.Verify(r.Context(), tokenString)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			var email string
			if err := token.Get("email", &email); err != nil || email == "" {
				http.Error(w, "no claim `email`", http.StatusUnauthorized)
				return
			}

			if checker.Check(r.Context(), email) != StatusGranted {
				http.Error(w, "admin role required", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), AdminEmailContextKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextAdminEmail retrieves the verified admin email from the context.
func ContextAdminEmail(ctx context.Context) string {
	if value := ctx.Value(AdminEmailContextKey); value != nil {
		return value.(string)
	}
	return ""
}
