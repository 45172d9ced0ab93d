package contracts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr bool
	}{
		{"integer", `1500000000`, 1500000000, false},
		{"float with zero fraction", `1500000000.0`, 1500000000, false},
		{"float rounds", `1234.56`, 1235, false},
		{"null", `null`, 0, false},
		{"string", `"12"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tt.input), &a)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestComparison_Decode(t *testing.T) {
	body := `{
		"etf_ticker": "069500",
		"etf_name": "KODEX 200",
		"prev_date": "2024-01-15",
		"current_date": "2024-01-16",
		"comparison": [
			{"stock_ticker": "005930", "stock_name": "삼성전자", "prev_weight": 30.1, "current_weight": 31.2,
			 "change": 1.1, "current_amount": 3120000000.0, "status": "비중 증가"},
			{"stock_ticker": "000660", "stock_name": "SK하이닉스", "prev_weight": 0, "current_weight": 5.0,
			 "change": 5.0, "current_amount": 500000000, "status": "신규"}
		],
		"summary": {"total": 2}
	}`

	var c Comparison
	require.NoError(t, json.Unmarshal([]byte(body), &c))

	assert.Equal(t, "069500", c.ETFTicker)
	assert.Equal(t, "KODEX 200", c.DisplayName())
	require.Len(t, c.Holdings, 2)
	assert.Equal(t, Amount(3120000000), c.Holdings[0].CurrentAmount)
	assert.Equal(t, StatusIncrease, c.Holdings[0].Status)
	assert.Equal(t, StatusNew, c.Holdings[1].Status)
}

func TestComparison_DisplayNameFallback(t *testing.T) {
	c := Comparison{ETFTicker: "069500"}
	assert.Equal(t, "069500", c.DisplayName())
}

func TestComparison_StatusCounts(t *testing.T) {
	c := Comparison{Holdings: []HoldingDelta{
		{Status: StatusNew},
		{Status: StatusNew},
		{Status: StatusHold},
		{Status: StatusRemoved},
	}}

	counts := c.StatusCounts()
	assert.Equal(t, 2, counts[StatusNew])
	assert.Equal(t, 1, counts[StatusHold])
	assert.Equal(t, 1, counts[StatusRemoved])
	assert.Zero(t, counts[StatusIncrease])
}

func TestStatsType_Valid(t *testing.T) {
	assert.True(t, StatsDuplicate.Valid())
	assert.True(t, StatsAmount.Valid())
	assert.False(t, StatsType("theme").Valid())
}

func TestSystemHealth_Healthy(t *testing.T) {
	assert.True(t, (&SystemHealth{Status: "healthy"}).Healthy())
	assert.False(t, (&SystemHealth{Status: "unhealthy"}).Healthy())
}
