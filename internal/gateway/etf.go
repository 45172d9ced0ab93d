package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
)

// ListETFs fetches the ETF list
// GET /api/etfs
func (c *Client) ListETFs(ctx context.Context) ([]contracts.ETFSummary, error) {
	var etfs []contracts.ETFSummary
	if err := c.getJSON(ctx, OpListETFs, c.endpoint("api", "etfs"), &etfs); err != nil {
		return nil, err
	}
	return etfs, nil
}

// Comparison fetches the prev/current holdings comparison of one ETF
// GET /api/etf/{ticker}/comparison
func (c *Client) Comparison(ctx context.Context, ticker string) (*contracts.Comparison, error) {
	var cmp contracts.Comparison
	if err := c.getJSON(ctx, OpComparison, c.endpoint("api", "etf", ticker, "comparison"), &cmp); err != nil {
		return nil, err
	}
	if cmp.ETFTicker == "" {
		cmp.ETFTicker = ticker
	}
	return &cmp, nil
}

// StockHistory fetches the weight history of one stock inside one ETF
// GET /api/etf/{etfTicker}/stock/{stockTicker}/history
func (c *Client) StockHistory(ctx context.Context, etfTicker, stockTicker string) (*contracts.WeightHistory, error) {
	var h contracts.WeightHistory
	target := c.endpoint("api", "etf", etfTicker, "stock", stockTicker, "history")
	if err := c.getJSON(ctx, OpHistory, target, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// ExportURL returns the CSV download URL of an ETF. The dashboard navigates
// to it instead of fetching it.
// GET /api/etf/{ticker}/export
func (c *Client) ExportURL(ticker string) string {
	return c.endpoint("api", "etf", ticker, "export")
}

// ComparisonExportURL returns the CSV download URL of an ETF's holdings
// comparison between the two latest dates
// GET /api/etf/{ticker}/export-comparison
func (c *Client) ComparisonExportURL(ticker string) string {
	return c.endpoint("api", "etf", ticker, "export-comparison")
}

// DownloadExport streams the CSV export of an ETF into w
func (c *Client) DownloadExport(ctx context.Context, ticker string, w io.Writer) (int64, error) {
	return c.download(ctx, c.ExportURL(ticker), w)
}

// DownloadComparisonExport streams the comparison CSV of an ETF into w
func (c *Client) DownloadComparisonExport(ctx context.Context, ticker string, w io.Writer) (int64, error) {
	return c.download(ctx, c.ComparisonExportURL(ticker), w)
}

func (c *Client) download(ctx context.Context, url string, w io.Writer) (int64, error) {
	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return 0, c.fail(OpExport, 0, fmt.Errorf("HTTP request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, c.fail(OpExport, resp.StatusCode, fmt.Errorf("unexpected status code: %d (%s)", resp.StatusCode, readMessage(resp.Body)))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, c.fail(OpExport, resp.StatusCode, fmt.Errorf("failed to write export: %w", err))
	}
	return n, nil
}
