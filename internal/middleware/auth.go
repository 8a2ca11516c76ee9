package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hongminglow/ubu-lite/internal/auth"
	"github.com/hongminglow/ubu-lite/internal/http/respond"
	"github.com/hongminglow/ubu-lite/internal/models"
)

type userKey struct{}

// UserLookup resolves a token's user id to the current account.
type UserLookup func(id int64) (models.User, error)

// RequireAuth rejects requests without a valid bearer access token and puts
// the authenticated user in the context.
func RequireAuth(tokens *auth.TokenManager, lookup UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Detail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
				return
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				respond.Detail(w, http.StatusUnauthorized, "Authorization header must contain two space-delimited values")
				return
			}
			claims, err := tokens.Verify(strings.TrimSpace(raw), auth.TypeAccess)
			if err != nil {
				respond.Detail(w, http.StatusUnauthorized, "Given token not valid for any token type")
				return
			}
			user, err := lookup(claims.UserID)
			if err != nil {
				respond.Detail(w, http.StatusUnauthorized, "User not found")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
		})
	}
}

// CurrentUser returns the user stored by RequireAuth.
func CurrentUser(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey{}).(models.User)
	return u, ok
}
