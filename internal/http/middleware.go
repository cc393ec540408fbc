package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/store"
)

type contextKey int

const userIDKey contextKey = iota

// AuthMiddleware resolves the bearer token to a user ID and stores it in
// the request context. Requests without a valid session get a 401.
type AuthMiddleware struct {
	sessions *store.SessionStore
	logger   *zap.Logger
}

func NewAuthMiddleware(sessions *store.SessionStore, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, logger: logger}
}

func (m *AuthMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, Fail("Unauthorized"))
			return
		}

		userID, err := m.sessions.Lookup(r.Context(), token)
		if err != nil {
			if err != store.ErrMiss {
				m.logger.Error("Session lookup failed", zap.Error(err))
			}
			writeJSON(w, http.StatusUnauthorized, Fail("Unauthorized"))
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	}
}

// userIDFrom returns the authenticated user ID placed by the middleware.
func userIDFrom(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
