package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/ccboard/internal/models"
	"github.com/iudanet/ccboard/pkg/api"
)

// fakeSubmitter записывает вызовы и отвечает по заранее заданному сценарию
type fakeSubmitter struct {
	responses map[string]*api.SubmitResponse
	errs      map[string]error
	calls     []string
}

func (f *fakeSubmitter) Submit(_ context.Context, req api.SubmitRequest) (*api.SubmitResponse, error) {
	f.calls = append(f.calls, req.Date)
	if err, ok := f.errs[req.Date]; ok {
		return nil, err
	}
	if resp, ok := f.responses[req.Date]; ok {
		return resp, nil
	}
	return &api.SubmitResponse{Success: true}, nil
}

func usageDays(dates ...string) []models.UsageDay {
	days := make([]models.UsageDay, 0, len(dates))
	for _, d := range dates {
		days = append(days, models.UsageDay{
			Date:    d,
			CostUSD: 1.5,
			Models: map[string]models.ModelUsage{
				"claude-sonnet": {CostUSD: 1.5, InputTokens: 100, OutputTokens: 50},
			},
		})
	}
	return days
}

func TestSubmitDays_Tally(t *testing.T) {
	client := &fakeSubmitter{
		responses: map[string]*api.SubmitResponse{
			"2024-06-01": {Success: true, Updated: false},
			"2024-06-02": {Success: true, Updated: true},
		},
		errs: map[string]error{
			"2024-06-03": errors.New("server error (429): rate limited"),
		},
	}

	var out bytes.Buffer
	result := submitDays(context.Background(), client, usageDays("2024-06-01", "2024-06-02", "2024-06-03", "2024-06-04"), &out)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Failed)

	// Неудача не останавливает проход по оставшимся дням
	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03", "2024-06-04"}, client.calls)
	assert.Contains(t, out.String(), "2024-06-03: failed")
}

func TestSubmitDays_Empty(t *testing.T) {
	client := &fakeSubmitter{}

	var out bytes.Buffer
	result := submitDays(context.Background(), client, nil, &out)

	assert.Zero(t, result.Total)
	assert.Empty(t, client.calls)
}

func TestSubmitRequestFor(t *testing.T) {
	day := &models.UsageDay{
		Date:    "2024-06-01",
		CostUSD: 12.5,
		Models: map[string]models.ModelUsage{
			"claude-sonnet": {CostUSD: 10.0, InputTokens: 800, OutputTokens: 400},
			"claude-haiku":  {CostUSD: 2.5, InputTokens: 200, OutputTokens: 100},
		},
	}

	req := submitRequestFor(day)
	require.Equal(t, "2024-06-01", req.Date)
	assert.InDelta(t, 12.5, req.DailyCost, 0.0001)
	assert.Equal(t, int64(1000), req.InputTokens)
	assert.Equal(t, int64(500), req.OutputTokens)
	assert.InDelta(t, 10.0, req.ModelBreakdown["claude-sonnet"], 0.0001)
}
