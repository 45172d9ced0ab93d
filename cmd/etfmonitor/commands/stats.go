package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
	"github.com/gmdjlee/etf-monitor/internal/render"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "ETF 간 통계 조회",
	Long: `여러 ETF에 걸친 종목 통계를 조회합니다.

Types:
  duplicate  - 여러 ETF에 중복 편입된 종목 (--theme 로 테마 필터)
  amount     - 평가금액 순위

Example:
  go run ./cmd/etfmonitor stats
  go run ./cmd/etfmonitor stats --theme 반도체
  go run ./cmd/etfmonitor stats --type amount`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

// themesCmd represents the themes command
var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "테마 목록 조회",
	Args:  cobra.NoArgs,
	RunE:  runThemes,
}

var (
	statsType  string
	statsTheme string
)

func init() {
	rootCmd.AddCommand(statsCmd, themesCmd)

	// Flags
	statsCmd.Flags().StringVarP(&statsType, "type", "t", string(contracts.StatsDuplicate), "통계 종류 (duplicate|amount)")
	statsCmd.Flags().StringVar(&statsTheme, "theme", "", "테마 (duplicate 전용)")
}

func runStats(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	t := contracts.StatsType(statsType)
	if !t.Valid() {
		return fmt.Errorf("invalid --type %q", statsType)
	}
	if t != contracts.StatsDuplicate && statsTheme != "" {
		return fmt.Errorf("--theme only applies to --type duplicate")
	}

	_, _, client, err := newBackend()
	if err != nil {
		return err
	}

	table, err := client.Stats(cmd.Context(), t, statsTheme)
	if err != nil {
		PrintError(out, err.Error())
		return err
	}

	details := []string{fmt.Sprintf("Date      : %s", table.Date)}
	if statsTheme != "" {
		details = append(details, fmt.Sprintf("Theme     : %s", statsTheme))
	}
	PrintHeader(out, statsTitle(t), details...)

	if len(table.Rows) == 0 {
		PrintInfo(out, "데이터가 없습니다")
		return nil
	}

	widths := []int{4, 16, 8, 12, 8, 10}
	PrintTableHeader(out, render.StatsColumns(t), widths)
	for i, r := range table.Rows {
		row := append([]string{fmt.Sprintf("%d", i+1), r.Name, r.Ticker}, render.StatsCells(t, r)...)
		PrintTableRow(out, row, widths)
	}
	return nil
}

func runThemes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	_, _, client, err := newBackend()
	if err != nil {
		return err
	}

	themes, err := client.ListThemes(cmd.Context())
	if err != nil {
		PrintError(out, err.Error())
		return err
	}

	PrintHeader(out, "테마 목록", fmt.Sprintf("Total     : %d", len(themes)))
	PrintList(out, themes)
	return nil
}

func statsTitle(t contracts.StatsType) string {
	if t == contracts.StatsAmount {
		return "평가금액 순위"
	}
	return "중복 종목"
}
