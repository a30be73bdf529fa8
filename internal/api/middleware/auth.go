package middleware

import (
	"errors"
	"net/http"
	"strings"

	"todo_expert/internal/common"
	"todo_expert/internal/common/reqctx"
	"todo_expert/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

// Authenticator requires a token verified by jwtauth.Verifier and stores the
// caller's attributes in the request context.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			if errors.Is(err, jwtauth.ErrNoTokenFound) || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}

		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		caller, err := security.AuthUserFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		ctx := reqctx.WithAttributes(r.Context(), reqctx.Attributes{
			UserID: caller.ID,
			Email:  caller.Email,
			Role:   caller.Role,
			URI:    r.URL.Path,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly rejects callers without the ADMIN role.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := reqctx.AuthUserFromContext(r.Context())
		if !ok || !caller.IsAdmin() {
			common.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminPathGuard applies AdminOnly to every path under prefix.
func AdminPathGuard(prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		guarded := AdminOnly(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, prefix) {
				guarded.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
