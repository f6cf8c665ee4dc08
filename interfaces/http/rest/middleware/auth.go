package middleware

import (
	"net/http"
	"strings"

	"forum-backend/pkg/auth"
	"forum-backend/pkg/common"
)

// Authenticate validates the bearer token and places the caller's
// claims into the request context. Requests without a valid token never
// reach a handler.
func Authenticate(validator *auth.JWTValidator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				common.RespondError(w, http.StatusUnauthorized, "Missing authorization header")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				common.RespondError(w, http.StatusUnauthorized, "Invalid authorization header")
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				common.RespondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
