package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/ccboard/pkg/api"
)

func TestMeHandler(t *testing.T) {
	st := setupTestStorage(t)
	user := createTestUser(t, st, "alice")
	h := NewMeHandler(testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = req.WithContext(WithUser(req.Context(), user))

	w := httptest.NewRecorder()
	h.Me(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, user.Name, resp.Name)
	assert.Equal(t, user.Email, resp.Email)
	assert.Equal(t, user.Avatar, resp.Avatar)
	assert.Equal(t, user.APIKey, resp.APIKey)
	assert.Equal(t, user.CreatedAt.Unix(), resp.CreatedAt)
}

func TestMeHandler_NoUser(t *testing.T) {
	h := NewMeHandler(testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	w := httptest.NewRecorder()
	h.Me(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConfigHandler(t *testing.T) {
	h := NewConfigHandler(testLogger(), "https://board.example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	w := httptest.NewRecorder()
	h.Config(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ConfigResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://board.example.com", resp.APIURL)
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(testLogger(), "1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	h.Health(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
}
