package dashboard

import "github.com/gmdjlee/etf-monitor/internal/contracts"

// Msg is an input of the update loop. User messages come from the page;
// result messages come back from effects.
type Msg interface {
	isMsg()
}

type userMsg struct{}

func (userMsg) isMsg() {}

type resultMsg struct{}

func (resultMsg) isMsg() {}
func (resultMsg) isResult() {}

// IsResult reports whether m is the outcome of an effect. Result messages
// are never blocked by the loading guard.
func IsResult(m Msg) bool {
	_, ok := m.(interface{ isResult() })
	return ok
}

// User messages

type Init struct{ userMsg }

type SelectETF struct {
	userMsg
	Ticker string
}

type ToggleView struct{ userMsg }

type SetHoldingsCount struct {
	userMsg
	Count string
}

type ClickHolding struct {
	userMsg
	StockTicker string
	StockName   string
}

type Refresh struct{ userMsg }

// ScheduledRefresh is a refresh started by the scheduler. It waits for the
// loading guard like a user message but leaves the banner as it is.
type ScheduledRefresh struct{ userMsg }

type SetStatsType struct {
	userMsg
	Type contracts.StatsType
}

type SetTheme struct {
	userMsg
	Theme string
}

// Export downloads the active ETF's holdings CSV, or its comparison CSV
type Export struct {
	userMsg
	Comparison bool
}

type Search struct {
	userMsg
	Query string
}

type CloseChart struct{ userMsg }

type DismissAlert struct{ userMsg }

// Result messages

type Initialized struct {
	resultMsg
	Message string
	Err     error
}

type ETFsLoaded struct {
	resultMsg
	Token uint64
	ETFs  []contracts.ETFSummary
	Err   error
}

type ThemesLoaded struct {
	resultMsg
	Token  uint64
	Themes []string
	Err    error
}

type ComparisonLoaded struct {
	resultMsg
	Token      uint64
	Comparison *contracts.Comparison
	Err        error
}

type HistoryLoaded struct {
	resultMsg
	Token       uint64
	ETFTicker   string
	StockTicker string
	StockName   string
	History     []contracts.HistoryPoint
	Err         error
}

type StatsLoaded struct {
	resultMsg
	Token uint64
	Table *contracts.StatsTable
	Err   error
}

type Refreshed struct {
	resultMsg
	Message string
	Err     error
}

// Stale reports whether m answers a request that has since been superseded
func Stale(s State, m Msg) (Resource, bool) {
	switch m := m.(type) {
	case ETFsLoaded:
		return ResETFs, m.Token != s.Tokens[ResETFs]
	case ThemesLoaded:
		return ResThemes, m.Token != s.Tokens[ResThemes]
	case ComparisonLoaded:
		return ResDetail, m.Token != s.Tokens[ResDetail]
	case HistoryLoaded:
		return ResHistory, m.Token != s.Tokens[ResHistory]
	case StatsLoaded:
		return ResStats, m.Token != s.Tokens[ResStats]
	}
	return 0, false
}
