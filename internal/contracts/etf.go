package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ETFSummary is one entry of the ETF list
type ETFSummary struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// Status is the holding change category computed by the backend
type Status string

const (
	StatusNew      Status = "신규"
	StatusRemoved  Status = "제외"
	StatusIncrease Status = "비중 증가"
	StatusDecrease Status = "비중 감소"
	StatusHold     Status = "유지"
)

// Statuses lists every status in display order
var Statuses = []Status{StatusNew, StatusRemoved, StatusIncrease, StatusDecrease, StatusHold}

// Amount is a KRW amount. The backend serialises it as a JSON number that
// may carry a fractional part ("1500000000.0"); it is rounded to whole won.
type Amount int64

// UnmarshalJSON accepts integers, floats and null
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", data, err)
	}
	*a = Amount(math.Round(f))
	return nil
}

// HoldingDelta is one row of an ETF prev/current holdings comparison.
// Change is trusted from the server (current - prev) and never recomputed.
type HoldingDelta struct {
	StockTicker   string  `json:"stock_ticker"`
	StockName     string  `json:"stock_name"`
	PrevWeight    float64 `json:"prev_weight"`
	CurrentWeight float64 `json:"current_weight"`
	Change        float64 `json:"change"`
	CurrentAmount Amount  `json:"current_amount"`
	Status        Status  `json:"status"`
}

// Comparison is the holdings diff of one ETF between two disclosure dates.
// Array order is the display rank.
type Comparison struct {
	ETFTicker   string                 `json:"etf_ticker"`
	ETFName     string                 `json:"etf_name,omitempty"`
	PrevDate    string                 `json:"prev_date"`
	CurrentDate string                 `json:"current_date"`
	Holdings    []HoldingDelta         `json:"comparison"`
	Summary     map[string]interface{} `json:"summary,omitempty"`
}

// DisplayName returns the ETF name, falling back to the ticker
func (c *Comparison) DisplayName() string {
	if c.ETFName != "" {
		return c.ETFName
	}
	return c.ETFTicker
}

// StatusCounts counts holdings per status
func (c *Comparison) StatusCounts() map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, h := range c.Holdings {
		counts[h.Status]++
	}
	return counts
}

// HistoryPoint is one date of a stock's weight history inside an ETF
type HistoryPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
	Amount Amount  `json:"amount"`
}

// WeightHistory is the response of the stock weight history endpoint
type WeightHistory struct {
	ETFTicker   string         `json:"etf_ticker,omitempty"`
	StockTicker string         `json:"stock_ticker,omitempty"`
	StockName   string         `json:"stock_name,omitempty"`
	History     []HistoryPoint `json:"history"`
}

// MarshalJSON keeps Amount an integer on the way out
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(a))
}
