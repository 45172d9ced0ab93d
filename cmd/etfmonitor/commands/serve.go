package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gmdjlee/etf-monitor/internal/api"
	"github.com/gmdjlee/etf-monitor/internal/api/handlers"
	"github.com/gmdjlee/etf-monitor/internal/dashboard"
	"github.com/gmdjlee/etf-monitor/internal/scheduler"
	"github.com/gmdjlee/etf-monitor/internal/scheduler/jobs"
	"github.com/gmdjlee/etf-monitor/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "웹 대시보드 시작",
	Long: `ETF 모니터 웹 대시보드를 시작합니다.

이 명령어는:
- 대시보드 페이지와 WebSocket 제공
- 시작 시 시스템 초기화 후 ETF/테마 목록 로드
- REFRESH_SCHEDULE 설정 시 주기적 데이터 업데이트

Endpoints:
  GET  /                 - 대시보드
  GET  /ws               - 실시간 화면 갱신
  POST /actions/{name}   - 사용자 동작
  GET  /chart.svg        - 현재 차트
  GET  /health           - Health check
  GET  /jobs             - 스케줄 작업 현황 (REFRESH_SCHEDULE 설정 시)
  POST /jobs/{name}/run  - 작업 즉시 실행

Example:
  go run ./cmd/etfmonitor serve
  go run ./cmd/etfmonitor serve --port 8090 --refresh "0 */30 9-16 * * 1-5"`,
	RunE: runServe,
}

var (
	servePort    string
	serveRefresh string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags
	serveCmd.Flags().StringVar(&servePort, "port", "", "대시보드 포트 (default is PORT)")
	serveCmd.Flags().StringVar(&serveRefresh, "refresh", "", "자동 업데이트 cron 표현식 (default is REFRESH_SCHEDULE)")
}

func runServe(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// 1. Load config, logger, backend client
	cfg, log, client, err := newBackend()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	if serveRefresh != "" {
		cfg.RefreshSchedule = serveRefresh
	}

	// 2. Dashboard controller and browser hub
	ctrl := dashboard.NewController(client, log, cfg.DefaultHoldingsCount, config.HoldingsCounts)
	hub := handlers.NewHub(ctrl, log)
	defer hub.Close()

	// 3. Optional scheduled refresh
	var jobsHandler *handlers.JobsHandler
	if cfg.RefreshSchedule != "" {
		if err := scheduler.Validate(cfg.RefreshSchedule); err != nil {
			return err
		}
		sched := scheduler.New(log)
		if err := sched.AddJob(jobs.NewRefreshJob(ctrl, cfg.RefreshSchedule, log)); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		jobsHandler = handlers.NewJobsHandler(sched, log)
		log.WithField("jobs", sched.Jobs()).Info("Scheduler started")
	}

	// 4. Router and server
	router := api.NewRouter(handlers.NewDashboardHandler(ctrl, client, log), hub, jobsHandler, log)
	server := api.New(cfg, log, router)

	// 5. Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// 6. Initial load
	go func() {
		if _, err := ctrl.Dispatch(context.Background(), dashboard.Init{}); err != nil {
			log.WithError(err).Warn("Initial load failed")
		}
	}()

	PrintHeader(out, "ETF Monitor Dashboard",
		fmt.Sprintf("Backend   : %s", cfg.Backend.BaseURL),
		fmt.Sprintf("Schedule  : %s", scheduleLabel(cfg.RefreshSchedule)),
	)
	PrintSuccess(out, fmt.Sprintf("Server running on http://localhost:%s", cfg.Port))
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

func scheduleLabel(expr string) string {
	if expr == "" {
		return "disabled"
	}
	return expr
}
