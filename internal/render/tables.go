package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
)

const (
	noResultsText = "검색 결과가 없습니다"
	noDataText    = "데이터가 없습니다"
)

// HoldingsColumns is the fixed header of the holdings table
var HoldingsColumns = []string{"순위", "종목코드", "종목명", "이전 비중", "현재 비중", "변화", "평가금액", "상태"}

var statsColumns = map[contracts.StatsType][]string{
	contracts.StatsDuplicate: {"순위", "종목명", "종목코드", "ETF 수", "총 평가금액", "평균 비중"},
	contracts.StatsAmount:    {"순위", "종목명", "종목코드", "총 평가금액", "ETF 수", "최대 비중"},
}

// StatsColumns returns the header of a statistics table type
func StatsColumns(t contracts.StatsType) []string {
	if cols, ok := statsColumns[t]; ok {
		return cols
	}
	return statsColumns[contracts.StatsDuplicate]
}

// StatsCells formats the value columns of a stats row, the ones after
// rank, name and ticker, in StatsColumns order
func StatsCells(t contracts.StatsType, r contracts.StatsRow) []string {
	if t == contracts.StatsAmount {
		return []string{FormatAmount(r.TotalAmount), fmt.Sprintf("%d", r.ETFCount), FormatWeight(r.MaxWeight)}
	}
	return []string{fmt.Sprintf("%d", r.ETFCount), FormatAmount(r.TotalAmount), FormatWeight(r.AvgWeight)}
}

type listItem struct {
	Ticker string
	Name   string
	Active bool
}

// ETFList renders the sidebar list items; an empty list renders a single
// "no results" item.
func ETFList(etfs []contracts.ETFSummary, selected string) (template.HTML, error) {
	items := make([]listItem, 0, len(etfs))
	for _, e := range etfs {
		items = append(items, listItem{Ticker: e.Ticker, Name: e.Name, Active: e.Ticker == selected})
	}
	return execute("etf-list", struct {
		Items     []listItem
		NoResults string
	}{items, noResultsText})
}

type holdingRow struct {
	Rank        int
	Ticker      string
	Name        string
	PrevWeight  string
	CurWeight   string
	Change      string
	ChangeClass string
	Amount      string
	Status      contracts.Status
	StatusClass string
}

// HoldingsTable renders the holdings comparison table for a count selector
// value. Rows keep the server order and are ranked from 1.
func HoldingsTable(rows []contracts.HoldingDelta, count string) (template.HTML, error) {
	visible := VisibleHoldings(rows, count)

	out := make([]holdingRow, 0, len(visible))
	for i, h := range visible {
		out = append(out, holdingRow{
			Rank:        i + 1,
			Ticker:      h.StockTicker,
			Name:        h.StockName,
			PrevWeight:  FormatWeight(h.PrevWeight),
			CurWeight:   FormatWeight(h.CurrentWeight),
			Change:      FormatChange(h.Change),
			ChangeClass: ChangeClass(h.Change),
			Amount:      FormatAmount(h.CurrentAmount),
			Status:      h.Status,
			StatusClass: StatusClass(h.Status),
		})
	}

	return execute("holdings-table", struct {
		Columns []string
		Rows    []holdingRow
		NoData  string
	}{HoldingsColumns, out, noDataText})
}

type statsRow struct {
	Rank   int
	Name   string
	Ticker string
	Cells  []string
}

// StatsTable renders a statistics table. The header is always generated
// from the table's own type before any body row.
func StatsTable(table *contracts.StatsTable) (template.HTML, error) {
	statsType := contracts.StatsDuplicate
	var rows []contracts.StatsRow
	if table != nil {
		statsType = table.Type
		rows = table.Rows
	}

	out := make([]statsRow, 0, len(rows))
	for i, r := range rows {
		out = append(out, statsRow{Rank: i + 1, Name: r.Name, Ticker: r.Ticker, Cells: StatsCells(statsType, r)})
	}

	return execute("stats-table", struct {
		Type    contracts.StatsType
		Columns []string
		Rows    []statsRow
		NoData  string
	}{statsType, StatsColumns(statsType), out, noDataText})
}

func execute(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
