package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/ccboard/internal/models"
	"github.com/iudanet/ccboard/internal/server/storage"
)

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, github_id, email, name, avatar, api_key, created_at, last_seen_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.GithubID,
		user.Email,
		user.Name,
		user.Avatar,
		user.APIKey,
		user.CreatedAt.Unix(),
		user.LastSeenAt.Unix(),
	)

	if err != nil {
		// Проверяем на duplicate github_id / api_key
		if strings.Contains(err.Error(), "users.github_id") {
			return storage.ErrUserAlreadyExists
		}
		if strings.Contains(err.Error(), "users.api_key") {
			return storage.ErrAPIKeyTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.getUser(ctx, "id", userID)
}

// GetUserByGithubID retrieves user by external GitHub account id
func (s *Storage) GetUserByGithubID(ctx context.Context, githubID string) (*models.User, error) {
	return s.getUser(ctx, "github_id", githubID)
}

// GetUserByAPIKey retrieves user by exact API key equality.
// Токен, подпись которого валидна, но который был заменен регенерацией,
// здесь не находится — это и есть мгновенная инвалидация старого ключа.
func (s *Storage) GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	return s.getUser(ctx, "api_key", apiKey)
}

// getUser выполняет выборку пользователя по одной из уникальных колонок
func (s *Storage) getUser(ctx context.Context, column, value string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, github_id, email, name, avatar, api_key, created_at, last_seen_at
		FROM users
		WHERE %s = ?
	`, column)

	user := &models.User{}
	var createdAt, lastSeenAt int64

	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.GithubID,
		&user.Email,
		&user.Name,
		&user.Avatar,
		&user.APIKey,
		&createdAt,
		&lastSeenAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.CreatedAt = time.Unix(createdAt, 0)
	user.LastSeenAt = time.Unix(lastSeenAt, 0)

	return user, nil
}

// UpdateAPIKey replaces the user's API key in place (hard swap)
func (s *Storage) UpdateAPIKey(ctx context.Context, userID, apiKey string) error {
	query := `UPDATE users SET api_key = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, apiKey, userID)
	if err != nil {
		if strings.Contains(err.Error(), "users.api_key") {
			return storage.ErrAPIKeyTaken
		}
		return fmt.Errorf("failed to update api key: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// UpdateLastSeen updates the last login timestamp
func (s *Storage) UpdateLastSeen(ctx context.Context, userID string, lastSeen time.Time) error {
	query := `UPDATE users SET last_seen_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, lastSeen.Unix(), userID)
	if err != nil {
		return fmt.Errorf("failed to update last seen: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}
