package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/ccboard/internal/server/apikey"
	"github.com/iudanet/ccboard/internal/server/storage"
	"github.com/iudanet/ccboard/pkg/api"
)

func TestKeyHandler_Regenerate(t *testing.T) {
	st := setupTestStorage(t)
	user := createTestUser(t, st, "alice")
	keys := apikey.NewService("test-secret", st)
	h := NewKeyHandler(testLogger(), keys, st)

	oldKey := user.APIKey

	req := httptest.NewRequest(http.MethodPost, "/api/regenerate-key", nil)
	req = req.WithContext(WithUser(req.Context(), user))

	w := httptest.NewRecorder()
	h.Regenerate(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.RegenerateKeyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.APIKey)
	assert.NotEqual(t, oldKey, resp.APIKey)

	// Новый ключ разрешается в пользователя
	resolved, err := keys.Verify(context.Background(), resp.APIKey)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	// Старый ключ больше не находит никого
	_, err = st.GetUserByAPIKey(context.Background(), oldKey)
	assert.True(t, errors.Is(err, storage.ErrUserNotFound))
}

func TestKeyHandler_NoUser(t *testing.T) {
	st := setupTestStorage(t)
	keys := apikey.NewService("test-secret", st)
	h := NewKeyHandler(testLogger(), keys, st)

	req := httptest.NewRequest(http.MethodPost, "/api/regenerate-key", nil)
	w := httptest.NewRecorder()
	h.Regenerate(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
