package dashboard

import "github.com/gmdjlee/etf-monitor/internal/contracts"

// Effect is work requested by Update and carried out by the controller
type Effect interface {
	isEffect()
}

type effect struct{}

func (effect) isEffect() {}

type FetchETFs struct {
	effect
	Token uint64
}

type FetchThemes struct {
	effect
	Token uint64
}

type FetchComparison struct {
	effect
	Token  uint64
	Ticker string
}

type FetchHistory struct {
	effect
	Token       uint64
	ETFTicker   string
	StockTicker string
	StockName   string
}

type FetchStats struct {
	effect
	Token uint64
	Type  contracts.StatsType
	Theme string
}

type Initialize struct{ effect }

type RefreshData struct{ effect }

// Navigate sends the requesting browser to the CSV export of Ticker
type Navigate struct {
	effect
	Ticker     string
	Comparison bool
}

// DisposeChart destroys the live chart, if any
type DisposeChart struct{ effect }

// ReplaceChart disposes the live chart and draws Panel in its place
type ReplaceChart struct {
	effect
	Panel ChartPanel
}

// isNetwork reports whether e performs a backend request
func isNetwork(e Effect) bool {
	switch e.(type) {
	case FetchETFs, FetchThemes, FetchComparison, FetchHistory, FetchStats, Initialize, RefreshData:
		return true
	}
	return false
}
