package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/ccboard/internal/server/apikey"
	"github.com/iudanet/ccboard/internal/server/storage"
	"github.com/iudanet/ccboard/pkg/api"
)

// KeyHandler обрабатывает перевыпуск API ключа
type KeyHandler struct {
	logger *slog.Logger
	keys   *apikey.Service
	users  storage.UserStorage
}

// NewKeyHandler создает новый handler перевыпуска ключа
func NewKeyHandler(logger *slog.Logger, keys *apikey.Service, users storage.UserStorage) *KeyHandler {
	return &KeyHandler{
		logger: logger,
		keys:   keys,
		users:  users,
	}
}

// Regenerate обрабатывает POST /api/regenerate-key
// Старый ключ перестает работать сразу: проверка ключа сверяет его
// с сохраненным значением, а не только подпись.
func (h *KeyHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "Authentication required", http.StatusUnauthorized)
		return
	}

	newKey, err := h.keys.Issue(user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue api key", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.users.UpdateAPIKey(ctx, user.ID, newKey); err != nil {
		h.logger.ErrorContext(ctx, "failed to store api key",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "api key regenerated", slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.RegenerateKeyResponse{APIKey: newKey}, http.StatusOK)
}
