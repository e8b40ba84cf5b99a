package storage

import (
	"context"
	"time"

	"github.com/iudanet/ccboard/internal/models"
)

// DailyCost представляет одну точку дневного графика расходов пользователя
type DailyCost struct {
	Date string
	Cost float64
}

// LeaderboardRow представляет агрегированную строку рейтинга для одного пользователя
type LeaderboardRow struct {
	UserID             string
	Name               string
	Avatar             string
	LastSubmissionDate string
	DailyData          []DailyCost
	TotalCost          float64
	TotalInputTokens   int64
	TotalOutputTokens  int64
	SubmissionCount    int64
}

// SubmissionStorage defines interface for submission persistence and aggregation
type SubmissionStorage interface {
	// UpsertSubmission stores the user's usage for one calendar date.
	// At most one row per (user, date): a resubmission overwrites the metrics
	// in place and returns updated=true, a first submission inserts and
	// returns updated=false. The operation is atomic.
	UpsertSubmission(ctx context.Context, sub *models.Submission) (updated bool, err error)

	// GetSubmission retrieves the submission for (userID, date)
	// Returns nil, nil when no submission exists for that date
	GetSubmission(ctx context.Context, userID, date string) (*models.Submission, error)

	// GetLeaderboard computes ranked per-user totals for the period.
	// Membership: every user with at least one submission ever appears,
	// with zero totals when they have no submissions inside the period.
	// Rows are ordered by total cost descending.
	GetLeaderboard(ctx context.Context, period string, now time.Time) ([]*LeaderboardRow, error)
}

// RateLimitStorage defines interface for the fixed-window rate limiter state
type RateLimitStorage interface {
	// CheckRateLimit applies one call against the (identifier, endpoint) window.
	// Missing window: created with count=1. Expired window: reset to count=1.
	// Active window below limit: incremented. At limit: ErrRateLimited is
	// returned and the counter is left untouched. The check is atomic.
	CheckRateLimit(ctx context.Context, identifier, endpoint string, limit int, window time.Duration, now time.Time) error
}
