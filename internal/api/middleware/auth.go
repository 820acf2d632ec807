package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/snoody/tft-tierlist/internal/service"
	"go.uber.org/zap"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
	UserKey   contextKey = "user"
)

// Authorizer resolves a bearer token to an admin user.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*domain.User, error)
}

// Admin requires a bearer token whose subject is on the admin list.
func Admin(auth Authorizer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, http.StatusUnauthorized, "Invalid authorization header")
				return
			}

			user, err := auth.Authorize(r.Context(), parts[1])
			if err != nil {
				if errors.Is(err, service.ErrNotAdmin) {
					unauthorized(w, http.StatusForbidden, "Admin access required")
					return
				}
				logger.Debug("token rejected", zap.Error(err))
				unauthorized(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok
}
