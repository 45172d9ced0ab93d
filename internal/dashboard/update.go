package dashboard

import (
	"strings"

	"github.com/gmdjlee/etf-monitor/internal/gateway"
	"github.com/gmdjlee/etf-monitor/pkg/config"
)

// AlertNoETF is shown when exporting with no ETF loaded
const AlertNoETF = "선택된 ETF가 없습니다."

// Update is the view state machine: it returns the next state and the
// effects to run. It never performs I/O.
func Update(s State, msg Msg) (State, []Effect) {
	if _, stale := Stale(s, msg); stale {
		return s, nil
	}

	if _, scheduled := msg.(ScheduledRefresh); !scheduled && !IsResult(msg) {
		s.Alert = ""
		s.Notice = ""
	}

	switch m := msg.(type) {
	case Init:
		return s, []Effect{Initialize{}}

	case Initialized:
		if m.Err != nil {
			s.raise(gateway.AlertFor(m.Err))
		} else {
			s.Notice = m.Message
		}
		// 초기화 실패와 무관하게 목록은 불러옴
		effects := []Effect{
			FetchETFs{Token: s.next(ResETFs)},
			FetchThemes{Token: s.next(ResThemes)},
		}
		return s, effects

	case ETFsLoaded:
		if m.Err != nil {
			s.raise(gateway.AlertFor(m.Err))
			return s, nil
		}
		s.ETFs = m.ETFs
		return s, nil

	case ThemesLoaded:
		if m.Err != nil {
			s.raise(gateway.AlertFor(m.Err))
			return s, nil
		}
		s.Themes = m.Themes
		return s, nil

	case Search:
		s.Search = strings.TrimSpace(m.Query)
		return s, nil

	case SelectETF:
		if m.Ticker == "" {
			return s, nil
		}
		s.View = ViewETF
		s.Selected = m.Ticker
		s.Chart = nil
		s.next(ResHistory)
		fetch := FetchComparison{Token: s.next(ResDetail), Ticker: m.Ticker}
		return s, []Effect{DisposeChart{}, fetch}

	case ComparisonLoaded:
		if m.Err != nil {
			s.raise(gateway.AlertFor(m.Err))
			// 목록 강조를 화면에 남아 있는 상세와 맞춤
			s.Selected = s.ActiveTicker()
			return s, nil
		}
		s.Active = m.Comparison
		s.Selected = m.Comparison.ETFTicker
		s.ShowDetail = true
		return s, nil

	case ToggleView:
		if s.View == ViewETF {
			s.View = ViewStats
			s.Chart = nil
			s.next(ResHistory)
			fetch := s.fetchStats()
			return s, []Effect{DisposeChart{}, fetch}
		}
		s.View = ViewETF
		s.ShowDetail = false
		return s, nil

	case SetHoldingsCount:
		if !config.IsHoldingsCount(m.Count) {
			return s, nil
		}
		s.HoldingsCount = m.Count
		return s, nil

	case ClickHolding:
		if s.Active == nil || m.StockTicker == "" {
			return s, nil
		}
		fetch := FetchHistory{
			Token:       s.next(ResHistory),
			ETFTicker:   s.Active.ETFTicker,
			StockTicker: m.StockTicker,
			StockName:   m.StockName,
		}
		return s, []Effect{fetch}

	case HistoryLoaded:
		if m.Err != nil {
			s.raise(gateway.AlertFor(m.Err))
			return s, nil
		}
		panel := ChartPanel{
			ETFTicker:   m.ETFTicker,
			StockTicker: m.StockTicker,
			StockName:   m.StockName,
			History:     m.History,
		}
		if panel.StockName == "" {
			panel.StockName = m.StockTicker
		}
		s.Chart = &panel
		if panel.Empty() {
			return s, []Effect{DisposeChart{}}
		}
		return s, []Effect{ReplaceChart{Panel: panel}}

	case CloseChart:
		s.Chart = nil
		s.next(ResHistory)
		return s, []Effect{DisposeChart{}}

	case Refresh, ScheduledRefresh:
		return s, []Effect{RefreshData{}}

	case Refreshed:
		if m.Err != nil {
			s.raise(gateway.AlertFor(m.Err))
			return s, nil
		}
		s.Notice = m.Message
		var effects []Effect
		switch {
		case s.View == ViewStats:
			effects = append(effects, s.fetchStats())
		case s.Active != nil:
			effects = append(effects, FetchComparison{Token: s.next(ResDetail), Ticker: s.Active.ETFTicker})
		}
		return s, effects

	case SetStatsType:
		if !m.Type.Valid() {
			return s, nil
		}
		s.StatsType = m.Type
		if !s.ThemeEnabled() {
			s.Theme = ""
		}
		effects := s.reloadStats()
		return s, effects

	case SetTheme:
		if !s.ThemeEnabled() {
			return s, nil
		}
		s.Theme = strings.TrimSpace(m.Theme)
		effects := s.reloadStats()
		return s, effects

	case StatsLoaded:
		if m.Err != nil {
			s.raise(gateway.AlertFor(m.Err))
			return s, nil
		}
		s.Stats = m.Table
		return s, nil

	case Export:
		if s.Active == nil {
			s.raise(AlertNoETF)
			return s, nil
		}
		return s, []Effect{Navigate{Ticker: s.Active.ETFTicker, Comparison: m.Comparison}}

	case DismissAlert:
		return s, nil
	}

	return s, nil
}

// reloadStats refetches the table only while the stats view is shown
func (s *State) reloadStats() []Effect {
	if s.View != ViewStats {
		return nil
	}
	return []Effect{s.fetchStats()}
}

func (s *State) fetchStats() FetchStats {
	theme := ""
	if s.ThemeEnabled() {
		theme = s.Theme
	}
	return FetchStats{Token: s.next(ResStats), Type: s.StatsType, Theme: theme}
}
