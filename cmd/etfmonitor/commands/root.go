package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gmdjlee/etf-monitor/internal/gateway"
	"github.com/gmdjlee/etf-monitor/pkg/config"
	"github.com/gmdjlee/etf-monitor/pkg/httputil"
	"github.com/gmdjlee/etf-monitor/pkg/logger"
)

var (
	// Global flags
	backendURL string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "etfmonitor",
	Short: "ETF 보유 종목 모니터",
	Long: `etf-monitor CLI

ETF 보유 종목 변화, 종목 비중 추이, ETF 간 통계를 조회하는 대시보드 클라이언트.
serve 명령으로 웹 대시보드를, 나머지 명령으로 같은 데이터를 터미널에서 조회합니다.

Usage:
  go run ./cmd/etfmonitor [command]

Examples:
  go run ./cmd/etfmonitor serve
  go run ./cmd/etfmonitor etfs --search kodex
  go run ./cmd/etfmonitor holdings 069500 --count 20
  go run ./cmd/etfmonitor stats --type amount`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "백엔드 URL (default is BACKEND_URL)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads the environment and applies global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if backendURL != "" {
		cfg.Backend.BaseURL = strings.TrimRight(backendURL, "/")
	}
	if env != "" {
		cfg.Env = env
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

// newBackend wires config, logger and the gateway client
func newBackend() (*config.Config, *logger.Logger, *gateway.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.New(cfg)
	client := gateway.NewClient(httputil.New(cfg, log), log, cfg.Backend.BaseURL)

	return cfg, log, client, nil
}
