package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/ccboard/internal/models"
	"github.com/iudanet/ccboard/internal/server/storage"
	"github.com/iudanet/ccboard/internal/validation"
	"github.com/iudanet/ccboard/pkg/api"
)

// SubmitHandler обрабатывает отправку usage данных
type SubmitHandler struct {
	logger      *slog.Logger
	submissions storage.SubmissionStorage
	rateLimits  storage.RateLimitStorage
	rateLimit   int
	rateWindow  time.Duration
}

// NewSubmitHandler создает новый handler для отправки usage данных
func NewSubmitHandler(logger *slog.Logger, submissions storage.SubmissionStorage, rateLimits storage.RateLimitStorage, rateLimit int, rateWindow time.Duration) *SubmitHandler {
	return &SubmitHandler{
		logger:      logger,
		submissions: submissions,
		rateLimits:  rateLimits,
		rateLimit:   rateLimit,
		rateWindow:  rateWindow,
	}
}

// Submit обрабатывает POST /api/submit
// Идемпотентный per-day upsert: повторная отправка за ту же дату
// перезаписывает метрики и возвращает updated=true
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "Authentication required", http.StatusUnauthorized)
		return
	}

	// Фиксированный контракт запроса: неизвестные поля отклоняются
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req api.SubmitRequest
	if err := decoder.Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode submit request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация до каких-либо side effects, со всеми нарушенными полями сразу
	if err := validation.ValidateSubmission(req.Date, req.DailyCost, req.ModelBreakdown, req.InputTokens, req.OutputTokens); err != nil {
		var vErr *validation.ValidationError
		if errors.As(err, &vErr) {
			h.logger.WarnContext(ctx, "invalid submission data",
				slog.String("user_id", user.ID),
				slog.Any("fields", vErr.Fields))
			sendValidationError(h.logger, w, "Invalid submission data", vErr.Fields)
			return
		}
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	// Rate limit проверяется до записи: отклоненный вызов ничего не пишет
	err := h.rateLimits.CheckRateLimit(ctx, "user:"+user.ID, "submit", h.rateLimit, h.rateWindow, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrRateLimited) {
			h.logger.WarnContext(ctx, "submit rate limit exceeded", slog.String("user_id", user.ID))
			sendError(h.logger, w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}
		h.logger.ErrorContext(ctx, "failed to check rate limit", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	updated, err := h.submissions.UpsertSubmission(ctx, &models.Submission{
		ID:             uuid.New().String(),
		UserID:         user.ID,
		Date:           req.Date,
		DailyCost:      req.DailyCost,
		ModelBreakdown: req.ModelBreakdown,
		InputTokens:    req.InputTokens,
		OutputTokens:   req.OutputTokens,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to upsert submission", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "submission stored",
		slog.String("user_id", user.ID),
		slog.String("date", req.Date),
		slog.Bool("updated", updated))

	sendJSON(h.logger, w, api.SubmitResponse{Success: true, Updated: updated}, http.StatusOK)
}
