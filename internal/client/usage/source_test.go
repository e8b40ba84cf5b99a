package usage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/ccboard/internal/models"
)

const flatReport = `[
	{
		"date": "2024-06-01",
		"costUSD": 12.5,
		"models": {
			"claude-sonnet": {"costUSD": 10.0, "inputTokens": 800, "outputTokens": 400},
			"claude-haiku": {"costUSD": 2.5, "inputTokens": 200, "outputTokens": 100}
		}
	},
	{
		"date": "2024-06-02",
		"costUSD": 3.0,
		"models": {
			"claude-sonnet": {"costUSD": 3.0, "inputTokens": 300, "outputTokens": 150}
		}
	}
]`

func TestNormalize_FlatArray(t *testing.T) {
	days, err := Normalize([]byte(flatReport))
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, "2024-06-01", days[0].Date)
	assert.InDelta(t, 12.5, days[0].CostUSD, 0.0001)
	assert.Equal(t, int64(1000), days[0].TotalInputTokens())
	assert.Equal(t, int64(500), days[0].TotalOutputTokens())

	breakdown := days[0].ModelBreakdown()
	assert.InDelta(t, 10.0, breakdown["claude-sonnet"], 0.0001)
	assert.InDelta(t, 2.5, breakdown["claude-haiku"], 0.0001)
}

func TestNormalize_WrappedObject(t *testing.T) {
	wrapped := `{"daily": ` + flatReport + `}`

	days, err := Normalize([]byte(wrapped))
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2024-06-02", days[1].Date)
}

func TestNormalize_UnknownFormat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "no usage data"},
		{name: "object without daily", raw: `{"weekly": []}`},
		{name: "number", raw: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestDayFor(t *testing.T) {
	days := []models.UsageDay{
		{Date: "2024-06-01", CostUSD: 1},
		{Date: "2024-06-02", CostUSD: 2},
	}

	found := DayFor(days, "2024-06-02")
	require.NotNil(t, found)
	assert.InDelta(t, 2.0, found.CostUSD, 0.0001)

	assert.Nil(t, DayFor(days, "2024-06-03"))
}
