package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/ccboard/internal/models"
)

func TestSubmissionStorage_InsertThenUpdate(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, s, "gh-sub-1")

	first := &models.Submission{
		ID:             uuid.New().String(),
		UserID:         user.ID,
		Date:           "2024-06-01",
		DailyCost:      12.5,
		ModelBreakdown: map[string]float64{"model-a": 12.5},
		InputTokens:    1000,
		OutputTokens:   500,
		CreatedAt:      time.Now(),
	}

	updated, err := s.UpsertSubmission(ctx, first)
	require.NoError(t, err)
	assert.False(t, updated)

	// Повторная отправка за ту же дату с другими метриками
	second := &models.Submission{
		ID:             uuid.New().String(),
		UserID:         user.ID,
		Date:           "2024-06-01",
		DailyCost:      15.0,
		ModelBreakdown: map[string]float64{"model-a": 10.0, "model-b": 5.0},
		InputTokens:    2000,
		OutputTokens:   800,
		CreatedAt:      time.Now(),
	}

	updated, err = s.UpsertSubmission(ctx, second)
	require.NoError(t, err)
	assert.True(t, updated)

	// Ровно одна строка, отражающая второй вызов
	var count int
	require.NoError(t, s.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM submissions WHERE user_id = ? AND date = ?`,
		user.ID, "2024-06-01",
	).Scan(&count))
	assert.Equal(t, 1, count)

	stored, err := s.GetSubmission(ctx, user.ID, "2024-06-01")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, first.ID, stored.ID) // строка та же, id первой отправки
	assert.InDelta(t, 15.0, stored.DailyCost, 1e-9)
	assert.Equal(t, map[string]float64{"model-a": 10.0, "model-b": 5.0}, stored.ModelBreakdown)
	assert.Equal(t, int64(2000), stored.InputTokens)
	assert.Equal(t, int64(800), stored.OutputTokens)
}

func TestSubmissionStorage_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, s, "gh-sub-2")

	// Один и тот же день, отправленный несколько раз, сходится к одному состоянию
	for i := 0; i < 3; i++ {
		submitDay(t, s, user.ID, "2024-06-02", 7.0, 100, 50)
	}

	stored, err := s.GetSubmission(ctx, user.ID, "2024-06-02")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.InDelta(t, 7.0, stored.DailyCost, 1e-9)
}

func TestSubmissionStorage_SeparateDatesAndUsers(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, s, "gh-alice")
	bob := createTestUser(t, s, "gh-bob")

	assert.False(t, submitDay(t, s, alice.ID, "2024-06-01", 1.0, 10, 5))
	assert.False(t, submitDay(t, s, alice.ID, "2024-06-02", 2.0, 10, 5))
	// Та же дата у другого пользователя — отдельная строка
	assert.False(t, submitDay(t, s, bob.ID, "2024-06-01", 3.0, 10, 5))

	var count int
	require.NoError(t, s.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&count))
	assert.Equal(t, 3, count)
}

func TestSubmissionStorage_GetMissing(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, s, "gh-sub-3")

	stored, err := s.GetSubmission(ctx, user.ID, "2030-01-01")
	require.NoError(t, err)
	assert.Nil(t, stored)
}
