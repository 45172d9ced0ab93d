package gateway

import (
	"context"
	"fmt"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
)

// ListThemes fetches the configured theme labels
// GET /api/config/themes
func (c *Client) ListThemes(ctx context.Context) ([]string, error) {
	var resp contracts.ThemesResponse
	if err := c.getJSON(ctx, OpThemes, c.endpoint("api", "config", "themes"), &resp); err != nil {
		return nil, err
	}
	return resp.Themes, nil
}

// DuplicateStocks fetches stocks held by several ETFs
// GET /api/stats/duplicate-stocks
func (c *Client) DuplicateStocks(ctx context.Context) (*contracts.StatsTable, error) {
	var resp contracts.DuplicateStocksResponse
	if err := c.getJSON(ctx, OpStats, c.endpoint("api", "stats", "duplicate-stocks"), &resp); err != nil {
		return nil, err
	}
	return &contracts.StatsTable{Type: contracts.StatsDuplicate, Date: resp.Date, Rows: resp.Stocks}, nil
}

// ThemeDuplicateStocks fetches duplicate stocks among the ETFs of one theme
// GET /api/stats/theme/{theme}
func (c *Client) ThemeDuplicateStocks(ctx context.Context, theme string) (*contracts.StatsTable, error) {
	var resp contracts.ThemeStatsResponse
	if err := c.getJSON(ctx, OpStats, c.endpoint("api", "stats", "theme", theme), &resp); err != nil {
		return nil, err
	}
	return &contracts.StatsTable{Type: contracts.StatsDuplicate, Theme: theme, Date: resp.Date, Rows: resp.DuplicateStocks}, nil
}

// AmountRanking fetches stocks ranked by total held amount
// GET /api/stats/amount-ranking
func (c *Client) AmountRanking(ctx context.Context) (*contracts.StatsTable, error) {
	var resp contracts.AmountRankingResponse
	if err := c.getJSON(ctx, OpStats, c.endpoint("api", "stats", "amount-ranking"), &resp); err != nil {
		return nil, err
	}
	return &contracts.StatsTable{Type: contracts.StatsAmount, Date: resp.Date, Rows: resp.Stocks}, nil
}

// Stats loads the statistics table for a type; theme only scopes duplicate stats
func (c *Client) Stats(ctx context.Context, statsType contracts.StatsType, theme string) (*contracts.StatsTable, error) {
	switch statsType {
	case contracts.StatsDuplicate:
		if theme != "" {
			return c.ThemeDuplicateStocks(ctx, theme)
		}
		return c.DuplicateStocks(ctx)
	case contracts.StatsAmount:
		return c.AmountRanking(ctx)
	default:
		return nil, c.fail(OpStats, 0, fmt.Errorf("unknown stats type: %q", statsType))
	}
}
