package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/ccboard/pkg/api"
)

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет структурированный JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	sendJSON(logger, w, api.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}, statusCode)
}

// sendValidationError отправляет 400 с перечнем нарушенных полей
func sendValidationError(logger *slog.Logger, w http.ResponseWriter, message string, fields []string) {
	sendJSON(logger, w, api.ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Fields:     fields,
	}, http.StatusBadRequest)
}
