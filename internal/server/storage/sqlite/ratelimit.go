package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/ccboard/internal/server/storage"
)

// CheckRateLimit applies one call against the fixed window for (identifier, endpoint).
// Вся последовательность read-then-write выполняется в одной транзакции,
// поэтому конкурентные вызовы не могут недосчитать счетчик.
func (s *Storage) CheckRateLimit(ctx context.Context, identifier, endpoint string, limit int, window time.Duration, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var count int
	var windowStart int64
	err = tx.QueryRowContext(ctx,
		`SELECT count, window_start FROM rate_limits WHERE identifier = ? AND endpoint = ?`,
		identifier, endpoint,
	).Scan(&count, &windowStart)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Первый вызов для этой пары: создаем окно со счетчиком 1
		_, err = tx.ExecContext(ctx,
			`INSERT INTO rate_limits (identifier, endpoint, count, window_start) VALUES (?, ?, 1, ?)`,
			identifier, endpoint, now.Unix())
		if err != nil {
			return fmt.Errorf("failed to insert rate limit window: %w", err)
		}

	case err != nil:
		return fmt.Errorf("failed to get rate limit window: %w", err)

	case now.Sub(time.Unix(windowStart, 0)) > window:
		// Окно истекло: полный сброс, прошлое окно не учитывается.
		// Fixed window: на границе окон возможен burst до 2x лимита.
		_, err = tx.ExecContext(ctx,
			`UPDATE rate_limits SET count = 1, window_start = ? WHERE identifier = ? AND endpoint = ?`,
			now.Unix(), identifier, endpoint)
		if err != nil {
			return fmt.Errorf("failed to reset rate limit window: %w", err)
		}

	case count < limit:
		_, err = tx.ExecContext(ctx,
			`UPDATE rate_limits SET count = count + 1 WHERE identifier = ? AND endpoint = ?`,
			identifier, endpoint)
		if err != nil {
			return fmt.Errorf("failed to increment rate limit counter: %w", err)
		}

	default:
		// Лимит исчерпан, счетчик дальше не растет
		return storage.ErrRateLimited
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
