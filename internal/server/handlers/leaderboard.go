package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/ccboard/internal/server/storage"
	"github.com/iudanet/ccboard/internal/validation"
	"github.com/iudanet/ccboard/pkg/api"
)

// LeaderboardHandler обрабатывает запросы рейтинга
type LeaderboardHandler struct {
	logger      *slog.Logger
	submissions storage.SubmissionStorage
}

// NewLeaderboardHandler создает новый handler рейтинга
func NewLeaderboardHandler(logger *slog.Logger, submissions storage.SubmissionStorage) *LeaderboardHandler {
	return &LeaderboardHandler{
		logger:      logger,
		submissions: submissions,
	}
}

// Leaderboard обрабатывает GET /api/leaderboard/{period}
// Период валидируется до запроса к хранилищу. Пользователи без
// submissions в периоде попадают в ответ с нулевыми агрегатами.
func (h *LeaderboardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	period := r.PathValue("period")
	if err := validation.ValidatePeriod(period); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := h.submissions.GetLeaderboard(ctx, period, time.Now())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load leaderboard",
			slog.String("period", period),
			slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Пустой список сериализуется как [], не null
	entries := make([]api.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		daily := make([]api.DailyCostPoint, 0, len(row.DailyData))
		for _, p := range row.DailyData {
			daily = append(daily, api.DailyCostPoint{Date: p.Date, Cost: p.Cost})
		}

		entries = append(entries, api.LeaderboardEntry{
			Rank:               i + 1,
			UserID:             row.UserID,
			Name:               row.Name,
			Avatar:             row.Avatar,
			TotalCost:          row.TotalCost,
			TotalInputTokens:   row.TotalInputTokens,
			TotalOutputTokens:  row.TotalOutputTokens,
			SubmissionCount:    row.SubmissionCount,
			LastSubmissionDate: row.LastSubmissionDate,
			DailyData:          daily,
		})
	}

	sendJSON(h.logger, w, api.LeaderboardResponse{
		Period:      period,
		Leaderboard: entries,
	}, http.StatusOK)
}
