package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/ccboard/internal/models"
	"github.com/iudanet/ccboard/internal/server/apikey"
	"github.com/iudanet/ccboard/internal/server/oauth"
	"github.com/iudanet/ccboard/internal/server/session"
	"github.com/iudanet/ccboard/internal/server/storage"
)

const (
	stateCookieName  = "ccboard_oauth_state"
	sourceCookieName = "ccboard_oauth_source"
	stateCookieTTL   = 10 * time.Minute
)

// GithubOAuth описывает OAuth провайдер, используемый handler'ом
type GithubOAuth interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth.GithubUser, error)
}

// OAuthHandler обрабатывает GitHub OAuth flow
type OAuthHandler struct {
	logger   *slog.Logger
	provider GithubOAuth
	users    storage.UserStorage
	keys     *apikey.Service
	sessions *session.Service
}

// NewOAuthHandler создает новый OAuth handler
func NewOAuthHandler(logger *slog.Logger, provider GithubOAuth, users storage.UserStorage, keys *apikey.Service, sessions *session.Service) *OAuthHandler {
	return &OAuthHandler{
		logger:   logger,
		provider: provider,
		users:    users,
		keys:     keys,
		sessions: sessions,
	}
}

// Authorize обрабатывает GET /api/auth/github
// Один endpoint на обе фазы: без code начинает flow, с code завершает его.
func (h *OAuthHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("code") == "" {
		// GitHub сообщает отказ пользователя через error параметр
		if query.Get("error") != "" {
			h.logger.WarnContext(r.Context(), "oauth denied by provider",
				slog.String("error", query.Get("error")))
			h.redirectFailure(w, r)
			return
		}
		h.Login(w, r)
		return
	}
	h.Callback(w, r)
}

// Login начинает OAuth flow: ставит anti-CSRF state cookie и редиректит на GitHub.
// Параметр source=cli запоминается, чтобы после входа показать ключ.
func (h *OAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if r.URL.Query().Get("source") == "cli" {
		http.SetCookie(w, &http.Cookie{
			Name:     sourceCookieName,
			Value:    "cli",
			Path:     "/",
			MaxAge:   int(stateCookieTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusFound)
}

// Callback завершает OAuth flow по возврату с GitHub.
// Любая ошибка на этом пути ведет на /?error=auth_failed, кроме
// domain gate, который возвращает 403.
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		h.logger.WarnContext(ctx, "oauth state mismatch")
		h.redirectFailure(w, r)
		return
	}
	clearCookie(w, stateCookieName)

	ghUser, err := h.provider.Exchange(ctx, r.URL.Query().Get("code"))
	if err != nil {
		if errors.Is(err, oauth.ErrEmailDomainNotAllowed) || errors.Is(err, oauth.ErrNoVerifiedEmail) {
			h.logger.WarnContext(ctx, "oauth email rejected", slog.Any("error", err))
			sendError(h.logger, w, err.Error(), http.StatusForbidden)
			return
		}
		h.logger.ErrorContext(ctx, "oauth exchange failed", slog.Any("error", err))
		h.redirectFailure(w, r)
		return
	}

	user, err := h.resolveUser(ctx, ghUser)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve oauth user", slog.Any("error", err))
		h.redirectFailure(w, r)
		return
	}

	sessionToken, err := h.sessions.Issue(user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue session", slog.Any("error", err))
		h.redirectFailure(w, r)
		return
	}
	h.sessions.SetCookie(w, sessionToken)

	h.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("github_id", user.GithubID))

	// CLI login показывает страницу с API ключом, web уходит на рейтинг
	target := "/"
	if cookie, err := r.Cookie(sourceCookieName); err == nil && cookie.Value == "cli" {
		clearCookie(w, sourceCookieName)
		target = "/settings?from=cli"
	}

	http.Redirect(w, r, target, http.StatusFound)
}

// resolveUser находит пользователя по github id или создает нового с выпущенным API ключом
func (h *OAuthHandler) resolveUser(ctx context.Context, ghUser *oauth.GithubUser) (*models.User, error) {
	githubID := strconv.FormatInt(ghUser.ID, 10)

	user, err := h.users.GetUserByGithubID(ctx, githubID)
	if err == nil {
		if err := h.users.UpdateLastSeen(ctx, user.ID, time.Now()); err != nil {
			h.logger.WarnContext(ctx, "failed to update last seen", slog.Any("error", err))
		}
		return user, nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, err
	}

	userID := uuid.New().String()
	key, err := h.keys.Issue(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user = &models.User{
		ID:         userID,
		GithubID:   githubID,
		Email:      ghUser.Email,
		Name:       ghUser.Name,
		Avatar:     ghUser.Avatar,
		APIKey:     key,
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := h.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// redirectFailure уводит браузер на главную с флагом ошибки
func (h *OAuthHandler) redirectFailure(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/?error=auth_failed", http.StatusFound)
}

// clearCookie сбрасывает cookie с указанным именем
func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
