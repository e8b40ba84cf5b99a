package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/ccboard/internal/server/storage"
)

const dateLayout = "2006-01-02"

// periodRange возвращает границы дат для периода рейтинга.
// daily: только сегодня; weekly: последние 7 дней; monthly: последние 30 дней;
// all-time: без границ (пустые строки).
func periodRange(period string, now time.Time) (minDate, maxDate string) {
	switch period {
	case "daily":
		today := now.Format(dateLayout)
		return today, today
	case "weekly":
		return now.AddDate(0, 0, -7).Format(dateLayout), ""
	case "monthly":
		return now.AddDate(0, 0, -30).Format(dateLayout), ""
	default: // all-time
		return "", ""
	}
}

// GetLeaderboard computes ranked per-user totals for the requested period.
//
// Membership определяется всей историей: каждый пользователь хотя бы с одной
// отправкой когда-либо попадает в результат. LEFT JOIN на отфильтрованные по
// периоду отправки дает таким пользователям нулевые суммы вместо выпадения
// из рейтинга (inner join здесь — известная прошлая ошибка).
func (s *Storage) GetLeaderboard(ctx context.Context, period string, now time.Time) ([]*storage.LeaderboardRow, error) {
	minDate, maxDate := periodRange(period, now)

	// Условие фильтра периода входит в ON, а не в WHERE:
	// WHERE превратил бы LEFT JOIN обратно в inner join
	join := `LEFT JOIN submissions s ON s.user_id = u.id`
	args := []any{}
	if minDate != "" {
		join += ` AND s.date >= ?`
		args = append(args, minDate)
	}
	if maxDate != "" {
		join += ` AND s.date <= ?`
		args = append(args, maxDate)
	}

	query := `
		SELECT u.id, u.name, u.avatar,
		       COALESCE(SUM(s.daily_cost), 0) AS total_cost,
		       COALESCE(SUM(s.input_tokens), 0),
		       COALESCE(SUM(s.output_tokens), 0),
		       COUNT(s.id)
		FROM users u
		JOIN (SELECT DISTINCT user_id FROM submissions) m ON m.user_id = u.id
		` + join + `
		GROUP BY u.id, u.name, u.avatar
		ORDER BY total_cost DESC, u.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*storage.LeaderboardRow
	for rows.Next() {
		row := &storage.LeaderboardRow{}
		if err := rows.Scan(
			&row.UserID,
			&row.Name,
			&row.Avatar,
			&row.TotalCost,
			&row.TotalInputTokens,
			&row.TotalOutputTokens,
			&row.SubmissionCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard rows: %w", err)
	}

	// Последняя дата отправки считается по всей истории, независимо от периода
	lastDates, err := s.lastSubmissionDates(ctx)
	if err != nil {
		return nil, err
	}

	// Дневной график за trailing 365 дней, тоже независимо от периода
	dailyData, err := s.dailyCostSeries(ctx, now.AddDate(0, 0, -365).Format(dateLayout))
	if err != nil {
		return nil, err
	}

	for _, row := range result {
		row.LastSubmissionDate = lastDates[row.UserID]
		row.DailyData = dailyData[row.UserID]
	}

	return result, nil
}

// lastSubmissionDates возвращает MAX(date) по каждому пользователю за все время
func (s *Storage) lastSubmissionDates(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, MAX(date) FROM submissions GROUP BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query last submission dates: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(map[string]string)
	for rows.Next() {
		var userID, date string
		if err := rows.Scan(&userID, &date); err != nil {
			return nil, fmt.Errorf("failed to scan last submission date: %w", err)
		}
		result[userID] = date
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate last submission dates: %w", err)
	}

	return result, nil
}

// dailyCostSeries возвращает упорядоченный по дате ряд {date, cost}
// для каждого пользователя, начиная с minDate
func (s *Storage) dailyCostSeries(ctx context.Context, minDate string) (map[string][]storage.DailyCost, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, date, daily_cost FROM submissions WHERE date >= ? ORDER BY date`,
		minDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily cost series: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(map[string][]storage.DailyCost)
	for rows.Next() {
		var userID string
		var point storage.DailyCost
		if err := rows.Scan(&userID, &point.Date, &point.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan daily cost point: %w", err)
		}
		result[userID] = append(result[userID], point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily cost series: %w", err)
	}

	return result, nil
}
