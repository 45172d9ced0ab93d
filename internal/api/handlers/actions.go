package handlers

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
	"github.com/gmdjlee/etf-monitor/internal/dashboard"
)

// ErrUnknownAction is returned for an action name with no message
var ErrUnknownAction = errors.New("unknown action")

// ParseAction converts a page action (form post or websocket event) into a
// dashboard message
func ParseAction(name string, v url.Values) (dashboard.Msg, error) {
	switch name {
	case "init":
		return dashboard.Init{}, nil
	case "select":
		return dashboard.SelectETF{Ticker: v.Get("ticker")}, nil
	case "toggle":
		return dashboard.ToggleView{}, nil
	case "count":
		return dashboard.SetHoldingsCount{Count: v.Get("count")}, nil
	case "row":
		return dashboard.ClickHolding{StockTicker: v.Get("stock"), StockName: v.Get("name")}, nil
	case "refresh":
		return dashboard.Refresh{}, nil
	case "stats-type":
		return dashboard.SetStatsType{Type: contracts.StatsType(v.Get("type"))}, nil
	case "theme":
		return dashboard.SetTheme{Theme: v.Get("theme")}, nil
	case "export":
		return dashboard.Export{}, nil
	case "export-comparison":
		return dashboard.Export{Comparison: true}, nil
	case "search":
		return dashboard.Search{Query: v.Get("q")}, nil
	case "close-chart":
		return dashboard.CloseChart{}, nil
	case "dismiss":
		return dashboard.DismissAlert{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}
