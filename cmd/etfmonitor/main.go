package main

import (
	"os"

	"github.com/gmdjlee/etf-monitor/cmd/etfmonitor/commands"
)

// main is the entry point for the etf-monitor CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/etfmonitor [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
