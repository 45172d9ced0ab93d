package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount contracts.Amount
		want   string
	}{
		{150_000_000, "1.5억원"},
		{50_000_000, "5백만원"},
		{100_000_000, "1.0억원"},
		{99_999_999, "10백만원"},
		{1_500_000_000_000, "15000.0억원"},
		{0, "0백만원"},
		{4_999_999, "0백만원"},
		{5_000_000, "1백만원"},
		{125_000_000, "1.3억원"}, // exact tie rounds up
		{115_000_000, "1.1억원"}, // 1.15 is stored below the tie
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}

func TestToFixed(t *testing.T) {
	tests := []struct {
		v      float64
		digits int
		want   string
	}{
		{1.005, 2, "1.00"},
		{1.25, 1, "1.3"},
		{2.5, 0, "3"},
		{0.5, 0, "1"},
		{-1.25, 1, "-1.3"},
		{-0.001, 2, "-0.00"},
		{12.3456, 2, "12.35"},
		{3, 2, "3.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ToFixed(tt.v, tt.digits))
		})
	}
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+1.10%", FormatChange(1.1))
	assert.Equal(t, "-0.45%", FormatChange(-0.45))
	assert.Equal(t, "0.00%", FormatChange(0))
}

func TestChangeClass(t *testing.T) {
	assert.Equal(t, "positive", ChangeClass(0.01))
	assert.Equal(t, "negative", ChangeClass(-0.01))
	assert.Equal(t, "neutral", ChangeClass(0))
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "status-new", StatusClass(contracts.StatusNew))
	assert.Equal(t, "status-removed", StatusClass(contracts.StatusRemoved))
	assert.Equal(t, "status-increase", StatusClass(contracts.StatusIncrease))
	assert.Equal(t, "status-decrease", StatusClass(contracts.StatusDecrease))
	assert.Equal(t, "status-hold", StatusClass(contracts.StatusHold))
	assert.Empty(t, StatusClass("알수없음"))
}

func TestVisibleHoldings(t *testing.T) {
	rows := make([]contracts.HoldingDelta, 8)

	assert.Len(t, VisibleHoldings(rows, "5"), 5)
	assert.Len(t, VisibleHoldings(rows, "all"), 8)
	assert.Len(t, VisibleHoldings(rows, "20"), 8)
	assert.Len(t, VisibleHoldings(rows, "junk"), 8)
	assert.Empty(t, VisibleHoldings(nil, "5"))
}
