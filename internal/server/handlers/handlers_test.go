package handlers

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/ccboard/internal/models"
	"github.com/iudanet/ccboard/internal/server/storage/sqlite"
)

// setupTestStorage создает in-memory хранилище для handler тестов
func setupTestStorage(t *testing.T) *sqlite.Storage {
	t.Helper()

	st, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})

	return st
}

// testLogger возвращает logger, молчащий в тестовом выводе
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestUser создает пользователя с уникальным github id
func createTestUser(t *testing.T, st *sqlite.Storage, name string) *models.User {
	t.Helper()

	now := time.Now()
	user := &models.User{
		ID:         uuid.New().String(),
		GithubID:   uuid.New().String(),
		Email:      name + "@example.com",
		Name:       name,
		Avatar:     "https://avatars.example.com/" + name,
		APIKey:     "key-" + uuid.New().String(),
		CreatedAt:  now,
		LastSeenAt: now,
	}
	require.NoError(t, st.CreateUser(context.Background(), user))

	return user
}
