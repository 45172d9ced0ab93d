package dashboard

import (
	"strings"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
)

// View is the dashboard view mode
type View string

const (
	ViewETF   View = "etf"
	ViewStats View = "stats"
)

// Resource identifies a logical request stream. Each stream carries its own
// request token so late responses can be recognised and dropped.
type Resource int

const (
	ResETFs Resource = iota
	ResThemes
	ResDetail
	ResHistory
	ResStats
	resourceCount
)

var resourceNames = [resourceCount]string{"etfs", "themes", "detail", "history", "stats"}

func (r Resource) String() string {
	if r < 0 || r >= resourceCount {
		return "unknown"
	}
	return resourceNames[r]
}

// ChartPanel is the open stock-history panel
type ChartPanel struct {
	ETFTicker   string
	StockTicker string
	StockName   string
	History     []contracts.HistoryPoint
}

// Empty reports whether there is nothing to draw
func (p *ChartPanel) Empty() bool {
	return len(p.History) == 0
}

// State is the whole dashboard state.
// ⭐ SSOT: 상태 변경은 Update에서만
type State struct {
	View   View
	ETFs   []contracts.ETFSummary
	Search string
	Themes []string

	// Selected is the highlighted list item. Active is the last loaded
	// comparison; it survives a trip through the stats view so refresh and
	// export keep working, but ShowDetail is cleared and the welcome panel
	// comes back.
	Selected   string
	Active     *contracts.Comparison
	ShowDetail bool

	HoldingsCount string

	StatsType contracts.StatsType
	Theme     string
	Stats     *contracts.StatsTable

	Chart *ChartPanel

	Alert  string
	Notice string
	// AlertSeq counts raised alerts so a repeated message is still seen as new
	AlertSeq uint64

	Tokens [resourceCount]uint64
}

// NewState returns the initial state: etf view, welcome panel, nothing loaded
func NewState(holdingsCount string) State {
	return State{
		View:          ViewETF,
		HoldingsCount: holdingsCount,
		StatsType:     contracts.StatsDuplicate,
	}
}

// ThemeEnabled reports whether the theme filter applies to the stats type
func (s State) ThemeEnabled() bool {
	return s.StatsType == contracts.StatsDuplicate
}

// ActiveTicker returns the ticker of the loaded ETF, or ""
func (s State) ActiveTicker() string {
	if s.Active == nil {
		return ""
	}
	return s.Active.ETFTicker
}

// FilteredETFs applies the search query (case-insensitive substring on
// ticker or name) to the loaded list
func (s State) FilteredETFs() []contracts.ETFSummary {
	q := strings.ToLower(strings.TrimSpace(s.Search))
	if q == "" {
		return s.ETFs
	}

	out := make([]contracts.ETFSummary, 0, len(s.ETFs))
	for _, e := range s.ETFs {
		if strings.Contains(strings.ToLower(e.Ticker), q) || strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
		}
	}
	return out
}

// raise shows alert in the banner
func (s *State) raise(alert string) {
	s.Alert = alert
	s.AlertSeq++
}

// next bumps the token of r and returns it
func (s *State) next(r Resource) uint64 {
	s.Tokens[r]++
	return s.Tokens[r]
}
