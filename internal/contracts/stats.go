package contracts

// StatsType selects the cross-ETF statistics table
type StatsType string

const (
	StatsDuplicate StatsType = "duplicate"
	StatsAmount    StatsType = "amount"
)

// Valid reports whether t is a known statistics type
func (t StatsType) Valid() bool {
	return t == StatsDuplicate || t == StatsAmount
}

// StatsRow is one stock of a statistics table. Duplicate tables fill
// AvgWeight, amount-ranking tables fill MaxWeight.
type StatsRow struct {
	Name        string  `json:"name"`
	Ticker      string  `json:"ticker"`
	ETFCount    int     `json:"etf_count"`
	TotalAmount Amount  `json:"total_amount"`
	AvgWeight   float64 `json:"avg_weight"`
	MaxWeight   float64 `json:"max_weight"`
}

// StatsTable is a loaded statistics result tagged with its type
type StatsTable struct {
	Type  StatsType
	Theme string
	Date  string
	Rows  []StatsRow
}

// DuplicateStocksResponse is returned by /api/stats/duplicate-stocks
type DuplicateStocksResponse struct {
	Date   string     `json:"date"`
	Stocks []StatsRow `json:"stocks"`
}

// ThemeStatsResponse is returned by /api/stats/theme/{theme}
type ThemeStatsResponse struct {
	Date            string     `json:"date"`
	DuplicateStocks []StatsRow `json:"duplicate_stocks"`
}

// AmountRankingResponse is returned by /api/stats/amount-ranking
type AmountRankingResponse struct {
	Date   string     `json:"date"`
	Stocks []StatsRow `json:"stocks"`
}

// ThemesResponse is returned by /api/config/themes
type ThemesResponse struct {
	Themes []string `json:"themes"`
}
