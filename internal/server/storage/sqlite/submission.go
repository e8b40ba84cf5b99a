package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/ccboard/internal/models"
)

// UpsertSubmission stores the user's usage for one calendar date.
// Insert-if-absent, update-in-place otherwise, внутри одной транзакции:
// две конкурентные отправки за одну дату не могут создать вторую строку.
// Returns updated=true when an existing row was overwritten.
func (s *Storage) UpsertSubmission(ctx context.Context, sub *models.Submission) (bool, error) {
	breakdown, err := json.Marshal(sub.ModelBreakdown)
	if err != nil {
		return false, fmt.Errorf("failed to marshal model breakdown: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Проверяем существующую запись за эту дату
	var existingID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM submissions WHERE user_id = ? AND date = ?`,
		sub.UserID, sub.Date,
	).Scan(&existingID)

	switch {
	case err == nil:
		// Перезаписываем метрики на месте, created_at не трогаем
		_, err = tx.ExecContext(ctx, `
			UPDATE submissions
			SET daily_cost = ?, model_breakdown = ?, input_tokens = ?, output_tokens = ?
			WHERE id = ?
		`, sub.DailyCost, string(breakdown), sub.InputTokens, sub.OutputTokens, existingID)
		if err != nil {
			return false, fmt.Errorf("failed to update submission: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("failed to commit transaction: %w", err)
		}

		return true, nil

	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
			INSERT INTO submissions (id, user_id, date, daily_cost, model_breakdown, input_tokens, output_tokens, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, sub.ID, sub.UserID, sub.Date, sub.DailyCost, string(breakdown), sub.InputTokens, sub.OutputTokens, sub.CreatedAt.Unix())
		if err != nil {
			return false, fmt.Errorf("failed to insert submission: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("failed to commit transaction: %w", err)
		}

		return false, nil

	default:
		return false, fmt.Errorf("failed to check existing submission: %w", err)
	}
}

// GetSubmission retrieves the submission for (userID, date)
// Returns nil, nil when no submission exists for that date
func (s *Storage) GetSubmission(ctx context.Context, userID, date string) (*models.Submission, error) {
	query := `
		SELECT id, user_id, date, daily_cost, model_breakdown, input_tokens, output_tokens, created_at
		FROM submissions
		WHERE user_id = ? AND date = ?
	`

	sub := &models.Submission{}
	var breakdown string
	var createdAt int64

	err := s.db.QueryRowContext(ctx, query, userID, date).Scan(
		&sub.ID,
		&sub.UserID,
		&sub.Date,
		&sub.DailyCost,
		&breakdown,
		&sub.InputTokens,
		&sub.OutputTokens,
		&createdAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	if err := json.Unmarshal([]byte(breakdown), &sub.ModelBreakdown); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model breakdown: %w", err)
	}

	sub.CreatedAt = time.Unix(createdAt, 0)

	return sub, nil
}
