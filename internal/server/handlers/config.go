package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/ccboard/pkg/api"
)

// ConfigHandler отдает публичную конфигурацию сервера
type ConfigHandler struct {
	logger    *slog.Logger
	publicURL string
}

// NewConfigHandler создает новый handler публичной конфигурации
func NewConfigHandler(logger *slog.Logger, publicURL string) *ConfigHandler {
	return &ConfigHandler{
		logger:    logger,
		publicURL: publicURL,
	}
}

// Config обрабатывает GET /api/config
// Без аутентификации: CLI использует endpoint для автодетекта адреса API
func (h *ConfigHandler) Config(w http.ResponseWriter, r *http.Request) {
	sendJSON(h.logger, w, api.ConfigResponse{APIURL: h.publicURL}, http.StatusOK)
}
