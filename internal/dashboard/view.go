package dashboard

import (
	"fmt"
	"html/template"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
	"github.com/gmdjlee/etf-monitor/internal/render"
)

// PageOptions carries what the page needs beyond State
type PageOptions struct {
	Version uint64
	Busy    bool
	Chart   Chart // zero value when no chart is alive
	Counts  []string
}

// BuildPage turns a state into page data. The detail and chart panels are
// only shown in the etf view; the stats panel only in the stats view.
func BuildPage(s State, opts PageOptions) (render.PageData, error) {
	list, err := render.ETFList(s.FilteredETFs(), s.Selected)
	if err != nil {
		return render.PageData{}, err
	}

	data := render.PageData{
		Version: opts.Version,
		View:    string(s.View),
		Busy:    opts.Busy,
		Alert:   s.Alert,
		Notice:  s.Notice,
		Search:  s.Search,
		ETFList: list,
	}

	switch s.View {
	case ViewStats:
		data.Stats, err = statsView(s)
		if err != nil {
			return render.PageData{}, err
		}

	default:
		if !s.ShowDetail || s.Active == nil {
			break
		}
		data.Detail, err = render.NewDetailView(s.Active, s.HoldingsCount, opts.Counts)
		if err != nil {
			return render.PageData{}, err
		}
		if s.Chart != nil {
			data.Chart = chartView(s.Chart, opts.Chart)
		}
	}

	return data, nil
}

func statsView(s State) (render.StatsView, error) {
	table := s.Stats
	if table == nil {
		table = &contracts.StatsTable{Type: s.StatsType}
	}

	html, err := render.StatsTable(table)
	if err != nil {
		return render.StatsView{}, fmt.Errorf("stats view: %w", err)
	}

	return render.StatsView{
		Type:         s.StatsType,
		Theme:        s.Theme,
		Themes:       s.Themes,
		ThemeEnabled: s.ThemeEnabled(),
		Date:         table.Date,
		Table:        html,
	}, nil
}

func chartView(p *ChartPanel, live Chart) *render.ChartView {
	v := &render.ChartView{
		ETFTicker:   p.ETFTicker,
		StockTicker: p.StockTicker,
		StockName:   p.StockName,
		Empty:       true,
	}
	if !p.Empty() && live.StockTicker == p.StockTicker && live.ETFTicker == p.ETFTicker && len(live.SVG) > 0 {
		v.SVG = template.HTML(live.SVG)
		v.Empty = false
	}
	return v
}
