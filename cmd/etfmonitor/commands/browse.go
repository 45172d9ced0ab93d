package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmdjlee/etf-monitor/internal/dashboard"
	"github.com/gmdjlee/etf-monitor/internal/render"
	"github.com/gmdjlee/etf-monitor/pkg/config"
)

// etfsCmd represents the etfs command
var etfsCmd = &cobra.Command{
	Use:   "etfs",
	Short: "ETF 목록 조회",
	Long: `ETF 목록을 조회합니다. --search 로 종목코드/이름을 필터링합니다.

Example:
  go run ./cmd/etfmonitor etfs
  go run ./cmd/etfmonitor etfs --search 2차전지`,
	Args: cobra.NoArgs,
	RunE: runETFs,
}

// holdingsCmd represents the holdings command
var holdingsCmd = &cobra.Command{
	Use:   "holdings <ticker>",
	Short: "ETF 보유 종목 변화 조회",
	Long: `ETF의 이전/현재 보유 종목 비교를 조회합니다.

Example:
  go run ./cmd/etfmonitor holdings 069500
  go run ./cmd/etfmonitor holdings 069500 --count all`,
	Args: cobra.ExactArgs(1),
	RunE: runHoldings,
}

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history <etf-ticker> <stock-ticker>",
	Short: "종목 비중 추이 조회",
	Long: `ETF 내 특정 종목의 비중/평가금액 추이를 조회합니다.
--svg 로 대시보드와 같은 차트를 파일로 저장합니다.

Example:
  go run ./cmd/etfmonitor history 069500 005930
  go run ./cmd/etfmonitor history 069500 005930 --svg samsung.svg`,
	Args: cobra.ExactArgs(2),
	RunE: runHistory,
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <ticker>",
	Short: "보유 종목 CSV 내보내기",
	Long: `백엔드가 생성한 보유 종목 CSV를 파일로 저장합니다.
--comparison 은 이전/현재 비중 비교 CSV를 저장합니다.

Example:
  go run ./cmd/etfmonitor export 069500
  go run ./cmd/etfmonitor export 069500 -o kodex200.csv
  go run ./cmd/etfmonitor export 069500 --comparison`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	etfsSearch     string
	holdingsCount  string
	historySVG     string
	exportOutput   string
	exportCompare  bool
	holdingsWidths = []int{4, 8, 16, 9, 9, 8, 10, 8}
)

func init() {
	rootCmd.AddCommand(etfsCmd, holdingsCmd, historyCmd, exportCmd)

	// Flags
	etfsCmd.Flags().StringVarP(&etfsSearch, "search", "s", "", "검색어")
	holdingsCmd.Flags().StringVarP(&holdingsCount, "count", "n", "", "표시 개수 (5|10|20|50|all, default is DEFAULT_HOLDINGS_COUNT)")
	historyCmd.Flags().StringVar(&historySVG, "svg", "", "차트 SVG 저장 경로")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "저장 경로 (default is <ticker>.csv, <ticker>_comparison.csv)")
	exportCmd.Flags().BoolVar(&exportCompare, "comparison", false, "비교 CSV 내보내기")
}

func runETFs(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	_, _, client, err := newBackend()
	if err != nil {
		return err
	}

	etfs, err := client.ListETFs(cmd.Context())
	if err != nil {
		PrintError(out, err.Error())
		return err
	}

	// 대시보드와 같은 검색 규칙
	filtered := dashboard.State{ETFs: etfs, Search: etfsSearch}.FilteredETFs()

	PrintHeader(out, "ETF 목록", fmt.Sprintf("Total     : %d", len(filtered)))
	if len(filtered) == 0 {
		PrintInfo(out, "검색 결과가 없습니다")
		return nil
	}

	widths := []int{8, 40}
	PrintTableHeader(out, []string{"종목코드", "종목명"}, widths)
	for _, e := range filtered {
		PrintTableRow(out, []string{e.Ticker, e.Name}, widths)
	}
	return nil
}

func runHoldings(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, _, client, err := newBackend()
	if err != nil {
		return err
	}

	count := holdingsCount
	if count == "" {
		count = cfg.DefaultHoldingsCount
	}
	if !config.IsHoldingsCount(count) {
		return fmt.Errorf("invalid --count %q", count)
	}

	cmp, err := client.Comparison(cmd.Context(), args[0])
	if err != nil {
		PrintError(out, err.Error())
		return err
	}

	PrintHeader(out, fmt.Sprintf("%s (%s)", cmp.DisplayName(), cmp.ETFTicker),
		fmt.Sprintf("Period    : %s → %s", cmp.PrevDate, cmp.CurrentDate),
		fmt.Sprintf("Holdings  : %d", len(cmp.Holdings)),
	)

	rows := render.VisibleHoldings(cmp.Holdings, count)
	if len(rows) == 0 {
		PrintInfo(out, "데이터가 없습니다")
		return nil
	}

	PrintTableHeader(out, render.HoldingsColumns, holdingsWidths)
	for i, h := range rows {
		PrintTableRow(out, []string{
			fmt.Sprintf("%d", i+1),
			h.StockTicker,
			h.StockName,
			render.FormatWeight(h.PrevWeight),
			render.FormatWeight(h.CurrentWeight),
			render.FormatChange(h.Change),
			render.FormatAmount(h.CurrentAmount),
			string(h.Status),
		}, holdingsWidths)
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	_, _, client, err := newBackend()
	if err != nil {
		return err
	}

	h, err := client.StockHistory(cmd.Context(), args[0], args[1])
	if err != nil {
		PrintError(out, err.Error())
		return err
	}

	name := h.StockName
	if name == "" {
		name = args[1]
	}

	PrintHeader(out, fmt.Sprintf("%s 비중 추이", name), fmt.Sprintf("ETF       : %s", args[0]))
	if len(h.History) == 0 {
		PrintInfo(out, "데이터가 없습니다")
		return nil
	}

	widths := []int{10, 9, 12}
	PrintTableHeader(out, []string{"날짜", "비중", "평가금액"}, widths)
	for _, p := range h.History {
		PrintTableRow(out, []string{p.Date, render.FormatWeight(p.Weight), render.FormatAmount(p.Amount)}, widths)
	}

	if historySVG == "" {
		return nil
	}

	// 렌더링이 끝난 뒤에만 파일을 만듦
	var buf bytes.Buffer
	if err := render.RenderChart(&buf, render.NewChartData(name, h.History)); err != nil {
		PrintError(out, err.Error())
		return err
	}
	if err := os.WriteFile(historySVG, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", historySVG, err)
	}
	PrintSuccess(out, fmt.Sprintf("Chart saved to %s", historySVG))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	_, _, client, err := newBackend()
	if err != nil {
		return err
	}

	download, suffix := client.DownloadExport, ".csv"
	if exportCompare {
		download, suffix = client.DownloadComparisonExport, "_comparison.csv"
	}

	path := exportOutput
	if path == "" {
		path = args[0] + suffix
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	n, err := download(cmd.Context(), args[0], f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		PrintError(out, err.Error())
		return err
	}

	PrintSuccess(out, fmt.Sprintf("Saved %s (%d bytes)", path, n))
	return nil
}
