package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/ccboard/pkg/api"
)

// MeHandler возвращает профиль текущего пользователя
type MeHandler struct {
	logger *slog.Logger
}

// NewMeHandler создает новый handler профиля
func NewMeHandler(logger *slog.Logger) *MeHandler {
	return &MeHandler{logger: logger}
}

// Me обрабатывает GET /api/me
// Доступен и по API ключу (CLI проверяет валидность ключа через этот
// endpoint), и по web сессии.
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		sendError(h.logger, w, "Authentication required", http.StatusUnauthorized)
		return
	}

	sendJSON(h.logger, w, api.MeResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Avatar:    user.Avatar,
		APIKey:    user.APIKey,
		CreatedAt: user.CreatedAt.Unix(),
	}, http.StatusOK)
}
