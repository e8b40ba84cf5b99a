package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/ccboard/internal/models"
	"github.com/iudanet/ccboard/internal/server/apikey"
	"github.com/iudanet/ccboard/internal/server/handlers"
	"github.com/iudanet/ccboard/internal/server/session"
	"github.com/iudanet/ccboard/internal/server/storage"
)

// Resolver resolves a request's caller identity from its credentials
type Resolver struct {
	logger   *slog.Logger
	keys     *apikey.Service
	sessions *session.Service
	users    storage.UserStorage
}

// NewResolver creates a new identity resolver
func NewResolver(logger *slog.Logger, keys *apikey.Service, sessions *session.Service, users storage.UserStorage) *Resolver {
	return &Resolver{
		logger:   logger,
		keys:     keys,
		sessions: sessions,
		users:    users,
	}
}

// fromBearer разрешает identity из заголовка Authorization: Bearer <api key>.
// Возвращает nil если заголовка нет или credential невалиден.
func (rs *Resolver) fromBearer(r *http.Request) *models.User {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil
	}

	user, err := rs.keys.Verify(r.Context(), parts[1])
	if err != nil {
		rs.logger.WarnContext(r.Context(), "invalid api key", slog.Any("error", err))
		return nil
	}

	return user
}

// fromSession разрешает identity из session cookie.
// Возвращает nil если cookie нет, подпись невалидна или пользователь исчез.
func (rs *Resolver) fromSession(r *http.Request) *models.User {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		return nil
	}

	userID, err := rs.sessions.Parse(cookie.Value)
	if err != nil {
		rs.logger.WarnContext(r.Context(), "invalid session token", slog.Any("error", err))
		return nil
	}

	user, err := rs.users.GetUserByID(r.Context(), userID)
	if err != nil {
		rs.logger.WarnContext(r.Context(), "session user not found", slog.String("user_id", userID))
		return nil
	}

	return user
}

// RequireAPIKey создает middleware, пропускающий только запросы с валидным bearer API ключом
func (rs *Resolver) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := rs.fromBearer(r)
		if user == nil {
			unauthorized(w, "API key required")
			return
		}

		next.ServeHTTP(w, r.WithContext(handlers.WithUser(r.Context(), user)))
	})
}

// RequireSession создает middleware, пропускающий только запросы с валидной web сессией
func (rs *Resolver) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := rs.fromSession(r)
		if user == nil {
			unauthorized(w, "Authentication required")
			return
		}

		next.ServeHTTP(w, r.WithContext(handlers.WithUser(r.Context(), user)))
	})
}

// RequireAuth создает middleware, принимающий либо bearer API ключ (CLI),
// либо session cookie (web). Bearer проверяется первым.
func (rs *Resolver) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := rs.fromBearer(r)
		if user == nil {
			user = rs.fromSession(r)
		}
		if user == nil {
			unauthorized(w, "Authentication required")
			return
		}

		next.ServeHTTP(w, r.WithContext(handlers.WithUser(r.Context(), user)))
	})
}

// unauthorized отправляет 401 в формате ErrorResponse
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"statusCode":401,"message":"` + message + `"}`))
}
