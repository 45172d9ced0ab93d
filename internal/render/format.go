package render

import (
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
)

const (
	eokDivisor     = 100_000_000 // 억
	millionDivisor = 10_000_000  // divisor used under the 백만원 label
)

// ToFixed formats v with exactly digits fraction digits using the same
// rounding as JavaScript's Number.prototype.toFixed: the exact binary value
// is rounded, and a tie picks the larger magnitude.
func ToFixed(v float64, digits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	scaled := new(big.Float).SetPrec(256).SetFloat64(v)
	pow := new(big.Float).SetPrec(256).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil))
	scaled.Mul(scaled, pow)
	scaled.Add(scaled, big.NewFloat(0.5))

	n, _ := scaled.Int(nil)
	return sign + decimal.NewFromBigInt(n, int32(-digits)).StringFixed(int32(digits))
}

// FormatAmount renders a KRW amount. Amounts of at least one 억 are shown
// in 억원 with one decimal; smaller amounts are divided by 1e7 and shown
// with no decimals under the 백만원 label.
func FormatAmount(amount contracts.Amount) string {
	eok := float64(amount) / eokDivisor
	if eok >= 1 {
		return ToFixed(eok, 1) + "억원"
	}
	return ToFixed(float64(amount)/millionDivisor, 0) + "백만원"
}

// AmountInEok converts an amount to 억 for the chart's right axis
func AmountInEok(amount contracts.Amount) float64 {
	return float64(amount) / eokDivisor
}

// FormatWeight renders a weight percentage with two decimals
func FormatWeight(w float64) string {
	return ToFixed(w, 2) + "%"
}

// FormatChange renders a weight change with an explicit plus sign
func FormatChange(c float64) string {
	if c > 0 {
		return "+" + ToFixed(c, 2) + "%"
	}
	return ToFixed(c, 2) + "%"
}

// ChangeClass maps the sign of a weight change to its CSS class
func ChangeClass(c float64) string {
	switch {
	case c > 0:
		return "positive"
	case c < 0:
		return "negative"
	default:
		return "neutral"
	}
}

var statusClasses = map[contracts.Status]string{
	contracts.StatusNew:      "status-new",
	contracts.StatusRemoved:  "status-removed",
	contracts.StatusIncrease: "status-increase",
	contracts.StatusDecrease: "status-decrease",
	contracts.StatusHold:     "status-hold",
}

// StatusClass maps a holding status to its CSS class
func StatusClass(s contracts.Status) string {
	if c, ok := statusClasses[s]; ok {
		return c
	}
	return ""
}

// VisibleHoldings returns the rows shown for a holdings-count selector
// value: "all" keeps every row, a number N keeps the first N in order.
// An unparsable value shows every row.
func VisibleHoldings(rows []contracts.HoldingDelta, count string) []contracts.HoldingDelta {
	if count == "all" {
		return rows
	}
	n, err := strconv.Atoi(count)
	if err != nil || n < 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}
