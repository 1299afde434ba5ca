package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ganot/checkvault/internal/domain/activity"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

// OwnerResolver resolves the owner label of a bearer token.
type OwnerResolver interface {
	ResolveOwner(ctx context.Context, token string) (string, error)
}

// AuthMiddleware enforces bearer token authentication. The token's owner is
// stored as the activity actor.
func AuthMiddleware(resolver OwnerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			owner, err := resolver.ResolveOwner(r.Context(), token)
			if err != nil || owner == "" {
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(activity.WithActor(r.Context(), owner)))
		})
	}
}
