package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
)

// PageData is everything the dashboard page shows
type PageData struct {
	Version uint64
	View    string // "etf" or "stats"
	Busy    bool
	Alert   string
	Notice  string
	Search  string
	ETFList template.HTML
	Detail  *DetailView // nil shows the welcome panel
	Chart   *ChartView
	Stats   StatsView
}

// DetailView is the loaded ETF panel
type DetailView struct {
	Ticker      string
	Name        string
	PrevDate    string
	CurrentDate string
	Count       string
	Counts      []string
	Summary     []StatusCount
	Table       template.HTML
}

// StatusCount is one badge of the holdings status summary
type StatusCount struct {
	Status contracts.Status
	Class  string
	Count  int
}

// ChartView is the open stock-history chart panel
type ChartView struct {
	ETFTicker   string
	StockTicker string
	StockName   string
	SVG         template.HTML
	Empty       bool
}

// StatsView is the statistics panel
type StatsView struct {
	Type         contracts.StatsType
	Theme        string
	Themes       []string
	ThemeEnabled bool
	Date         string
	Table        template.HTML
}

// NewDetailView builds the ETF panel for a comparison record
func NewDetailView(cmp *contracts.Comparison, count string, counts []string) (*DetailView, error) {
	table, err := HoldingsTable(cmp.Holdings, count)
	if err != nil {
		return nil, err
	}

	statusCounts := cmp.StatusCounts()
	summary := make([]StatusCount, 0, len(contracts.Statuses))
	for _, s := range contracts.Statuses {
		if n := statusCounts[s]; n > 0 {
			summary = append(summary, StatusCount{Status: s, Class: StatusClass(s), Count: n})
		}
	}

	return &DetailView{
		Ticker:      cmp.ETFTicker,
		Name:        cmp.DisplayName(),
		PrevDate:    cmp.PrevDate,
		CurrentDate: cmp.CurrentDate,
		Count:       count,
		Counts:      counts,
		Summary:     summary,
		Table:       table,
	}, nil
}

// App renders the #app element pushed to connected browsers
func App(data PageData) (template.HTML, error) {
	return execute("app", data)
}

// Page writes the full dashboard document
func Page(w io.Writer, data PageData) error {
	if err := templates.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
