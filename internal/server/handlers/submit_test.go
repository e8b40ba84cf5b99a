package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/ccboard/internal/models"
	"github.com/iudanet/ccboard/pkg/api"
)

func doSubmit(h *SubmitHandler, user *models.User, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(body))
	if user != nil {
		req = req.WithContext(WithUser(req.Context(), user))
	}

	w := httptest.NewRecorder()
	h.Submit(w, req)
	return w
}

func validSubmitBody(date string) string {
	return `{
		"date": "` + date + `",
		"dailyCost": 12.5,
		"modelBreakdown": {"claude-sonnet": 12.5},
		"inputTokens": 1000,
		"outputTokens": 500
	}`
}

func TestSubmitHandler_InsertThenUpdate(t *testing.T) {
	st := setupTestStorage(t)
	user := createTestUser(t, st, "alice")
	h := NewSubmitHandler(testLogger(), st, st, 100, time.Hour)

	// Первая отправка создает запись
	w := doSubmit(h, user, validSubmitBody("2024-06-01"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.SubmitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.Updated)

	// Повторная отправка за ту же дату перезаписывает
	w = doSubmit(h, user, validSubmitBody("2024-06-01"))
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Updated)

	sub, err := st.GetSubmission(context.Background(), user.ID, "2024-06-01")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.InDelta(t, 12.5, sub.DailyCost, 0.0001)
}

func TestSubmitHandler_ValidationFields(t *testing.T) {
	st := setupTestStorage(t)
	user := createTestUser(t, st, "bob")
	h := NewSubmitHandler(testLogger(), st, st, 100, time.Hour)

	// Все нарушенные поля перечисляются разом
	body := `{
		"date": "not-a-date",
		"dailyCost": -1,
		"modelBreakdown": {"claude-sonnet": 1},
		"inputTokens": -5,
		"outputTokens": 500
	}`

	w := doSubmit(h, user, body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.ElementsMatch(t, []string{"date", "dailyCost", "inputTokens"}, resp.Fields)

	// Невалидный запрос не оставляет следов в хранилище
	sub, err := st.GetSubmission(context.Background(), user.ID, "not-a-date")
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestSubmitHandler_UnknownFieldRejected(t *testing.T) {
	st := setupTestStorage(t)
	user := createTestUser(t, st, "carol")
	h := NewSubmitHandler(testLogger(), st, st, 100, time.Hour)

	body := `{
		"date": "2024-06-01",
		"dailyCost": 1,
		"modelBreakdown": {"claude-sonnet": 1},
		"inputTokens": 1,
		"outputTokens": 1,
		"extra": true
	}`

	w := doSubmit(h, user, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitHandler_RateLimited(t *testing.T) {
	st := setupTestStorage(t)
	user := createTestUser(t, st, "dave")
	h := NewSubmitHandler(testLogger(), st, st, 2, time.Hour)

	require.Equal(t, http.StatusOK, doSubmit(h, user, validSubmitBody("2024-06-01")).Code)
	require.Equal(t, http.StatusOK, doSubmit(h, user, validSubmitBody("2024-06-02")).Code)

	// Третий запрос в окне отклоняется и не пишет данные
	w := doSubmit(h, user, validSubmitBody("2024-06-03"))
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	sub, err := st.GetSubmission(context.Background(), user.ID, "2024-06-03")
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestSubmitHandler_NoUser(t *testing.T) {
	st := setupTestStorage(t)
	h := NewSubmitHandler(testLogger(), st, st, 100, time.Hour)

	w := doSubmit(h, nil, validSubmitBody("2024-06-01"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
