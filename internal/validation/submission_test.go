package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{
			name:    "valid date",
			date:    "2024-06-01",
			wantErr: false,
		},
		{
			name:    "valid date - end of year",
			date:    "2024-12-31",
			wantErr: false,
		},
		{
			name:    "empty date",
			date:    "",
			wantErr: true,
		},
		{
			name:    "wrong separator",
			date:    "2024/06/01",
			wantErr: true,
		},
		{
			name:    "missing leading zeros",
			date:    "2024-6-1",
			wantErr: true,
		},
		{
			name:    "not a calendar date",
			date:    "2024-13-45",
			wantErr: true,
		},
		{
			name:    "trailing garbage",
			date:    "2024-06-01T00:00:00Z",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDate(tt.date)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSubmission(t *testing.T) {
	validBreakdown := map[string]float64{"model-a": 12.5}

	tests := []struct {
		breakdown    map[string]float64
		name         string
		date         string
		wantFields   []string
		dailyCost    float64
		inputTokens  int64
		outputTokens int64
	}{
		{
			name:         "valid submission",
			date:         "2024-06-01",
			dailyCost:    12.5,
			breakdown:    validBreakdown,
			inputTokens:  1000,
			outputTokens: 500,
			wantFields:   nil,
		},
		{
			name:         "invalid date",
			date:         "not-a-date",
			dailyCost:    12.5,
			breakdown:    validBreakdown,
			inputTokens:  1000,
			outputTokens: 500,
			wantFields:   []string{"date"},
		},
		{
			name:         "zero cost",
			date:         "2024-06-01",
			dailyCost:    0,
			breakdown:    validBreakdown,
			inputTokens:  1000,
			outputTokens: 500,
			wantFields:   []string{"dailyCost"},
		},
		{
			name:         "negative cost",
			date:         "2024-06-01",
			dailyCost:    -1.0,
			breakdown:    validBreakdown,
			inputTokens:  1000,
			outputTokens: 500,
			wantFields:   []string{"dailyCost"},
		},
		{
			name:         "missing breakdown",
			date:         "2024-06-01",
			dailyCost:    12.5,
			breakdown:    nil,
			inputTokens:  1000,
			outputTokens: 500,
			wantFields:   []string{"modelBreakdown"},
		},
		{
			name:         "negative model cost",
			date:         "2024-06-01",
			dailyCost:    12.5,
			breakdown:    map[string]float64{"model-a": -0.5},
			inputTokens:  1000,
			outputTokens: 500,
			wantFields:   []string{"modelBreakdown"},
		},
		{
			name:         "negative tokens",
			date:         "2024-06-01",
			dailyCost:    12.5,
			breakdown:    validBreakdown,
			inputTokens:  -1,
			outputTokens: -1,
			wantFields:   []string{"inputTokens", "outputTokens"},
		},
		{
			name:         "all fields invalid",
			date:         "",
			dailyCost:    -1,
			breakdown:    nil,
			inputTokens:  -1,
			outputTokens: -1,
			wantFields:   []string{"date", "dailyCost", "modelBreakdown", "inputTokens", "outputTokens"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmission(tt.date, tt.dailyCost, tt.breakdown, tt.inputTokens, tt.outputTokens)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantFields, vErr.Fields)
		})
	}
}

func TestValidatePeriod(t *testing.T) {
	for _, period := range ValidPeriods {
		assert.NoError(t, ValidatePeriod(period))
	}

	assert.Error(t, ValidatePeriod("yearly"))
	assert.Error(t, ValidatePeriod(""))
	assert.Error(t, ValidatePeriod("Daily"))
}
