package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nathanndk/BitHealth-parking-app/internal/db"
	httperrors "github.com/nathanndk/BitHealth-parking-app/internal/errors"
	"github.com/nathanndk/BitHealth-parking-app/internal/repository"
)

type contextKey string

const userContextKey contextKey = "authenticated-user"

// UserFrom returns the authenticated user stashed by Middleware.Authenticate.
func UserFrom(ctx context.Context) (*db.User, bool) {
	user, ok := ctx.Value(userContextKey).(*db.User)
	return user, ok
}

// Middleware resolves the bearer token on each request to a user row and
// makes it available on the request context.
type Middleware struct {
	secret string
	users  repository.UserRepository
}

func NewMiddleware(secret string, users repository.UserRepository) *Middleware {
	return &Middleware{secret: secret, users: users}
}

func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeAuthError(w, "Authorization header missing or malformed")
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		userID, err := ParseToken(m.secret, tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("token verification failed")
			writeAuthError(w, "Invalid or expired token")
			return
		}

		user, err := m.users.GetByID(userID)
		if err != nil {
			writeAuthError(w, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOfficer gates a route to the OFFICER role. Must run after
// Authenticate.
func RequireOfficer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFrom(r.Context())
		if !ok {
			writeAuthError(w, "Authentication required")
			return
		}
		switch user.Role {
		case db.RoleOfficer:
			next.ServeHTTP(w, r)
		case db.RoleUser:
			writeAuthError(w, "You are not authorized to access this resource")
		default:
			writeAuthError(w, "You are not authorized to access this resource")
		}
	})
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"errorCode": httperrors.CodeUnauthorized,
		"message":   message,
	})
}
