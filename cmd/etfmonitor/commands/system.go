package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gmdjlee/etf-monitor/internal/gateway"
	"github.com/gmdjlee/etf-monitor/pkg/httputil"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "백엔드 시스템 초기화",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "ETF 데이터 업데이트",
	Long: `백엔드에 최신 보유 종목 데이터 수집을 요청합니다.

Example:
  go run ./cmd/etfmonitor refresh`,
	Args: cobra.NoArgs,
	RunE: runRefresh,
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "백엔드 상태 확인",
	Long: `백엔드 /api/system/health 를 확인합니다. 일시적인 오류는 재시도합니다.

Example:
  go run ./cmd/etfmonitor status
  go run ./cmd/etfmonitor status --retries 5`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

var statusRetries int

func init() {
	rootCmd.AddCommand(initCmd, refreshCmd, statusCmd)

	// Flags
	statusCmd.Flags().IntVar(&statusRetries, "retries", 2, "재시도 횟수")
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	_, _, client, err := newBackend()
	if err != nil {
		return err
	}

	msg, err := client.Initialize(cmd.Context())
	if err != nil {
		PrintError(out, gateway.AlertFor(err))
		return err
	}

	PrintSuccess(out, msg.Message)
	return nil
}

func runRefresh(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	_, _, client, err := newBackend()
	if err != nil {
		return err
	}

	start := time.Now()
	msg, err := client.Update(cmd.Context())
	if err != nil {
		PrintError(out, gateway.AlertFor(err))
		return err
	}

	PrintSuccess(out, fmt.Sprintf("%s (%.2fs)", msg.Message, time.Since(start).Seconds()))
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, log, _, err := newBackend()
	if err != nil {
		return err
	}

	// 대시보드와 달리 상태 확인은 재시도
	httpClient := httputil.New(cfg, log).WithRetry(statusRetries, 500*time.Millisecond)
	client := gateway.NewClient(httpClient, log, cfg.Backend.BaseURL)

	PrintHeader(out, "Backend Status")
	PrintKeyValue(out, "Backend", cfg.Backend.BaseURL, 8)
	PrintKeyValue(out, "Timeout", cfg.Backend.Timeout.String(), 8)

	health, err := client.Health(cmd.Context())
	if err != nil {
		PrintError(out, gateway.AlertFor(err))
		return err
	}

	PrintKeyValue(out, "Status", health.Status, 8)
	if health.Database != "" {
		PrintKeyValue(out, "Database", health.Database, 8)
	}

	if !health.Healthy() {
		PrintWarning(out, "백엔드가 정상 상태가 아닙니다")
		return fmt.Errorf("backend unhealthy: %s", health.Status)
	}

	PrintSuccess(out, "백엔드 정상")
	return nil
}
