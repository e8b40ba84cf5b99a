package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/ccboard/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	storage, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = storage.Close()
	}

	return storage, cleanup
}

// createTestUser inserts a user with sensible defaults and returns it
func createTestUser(t *testing.T, s *Storage, githubID string) *models.User {
	t.Helper()

	user := &models.User{
		ID:         uuid.New().String(),
		GithubID:   githubID,
		Email:      githubID + "@example.com",
		Name:       "user-" + githubID,
		Avatar:     "https://avatars.example.com/" + githubID,
		APIKey:     "key-" + uuid.New().String(),
		CreatedAt:  time.Now(),
		LastSeenAt: time.Now(),
	}

	require.NoError(t, s.CreateUser(context.Background(), user))

	return user
}

// submitDay inserts or updates a submission for the given user and date
func submitDay(t *testing.T, s *Storage, userID, date string, cost float64, inputTokens, outputTokens int64) bool {
	t.Helper()

	updated, err := s.UpsertSubmission(context.Background(), &models.Submission{
		ID:             uuid.New().String(),
		UserID:         userID,
		Date:           date,
		DailyCost:      cost,
		ModelBreakdown: map[string]float64{"model-a": cost},
		InputTokens:    inputTokens,
		OutputTokens:   outputTokens,
		CreatedAt:      time.Now(),
	})
	require.NoError(t, err)

	return updated
}
