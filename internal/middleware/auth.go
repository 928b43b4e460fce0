package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mwarren/todoapp/internal/auth"
	"github.com/mwarren/todoapp/internal/logger"
	"github.com/mwarren/todoapp/internal/storage"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// AuthMiddleware verifies the bearer token on every protected request
// and resolves the referenced user before any handler runs.
type AuthMiddleware struct {
	jwt   *auth.JWTManager
	users storage.UserStore
	log   *logger.Logger
}

func NewAuthMiddleware(jwt *auth.JWTManager, users storage.UserStore, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, users: users, log: log}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "No authentication token provided")
			return
		}

		token := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = authHeader[7:]
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			m.log.Error("Failed to resolve user %s: %v", claims.UserID, err)
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}
		// A valid signature over a deleted account is still a dead token.
		if user == nil {
			writeError(w, http.StatusUnauthorized, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID returns the authenticated user id set by RequireAuth, or ""
// when the request never went through it.
func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}
