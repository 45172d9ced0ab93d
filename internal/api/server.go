package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gmdjlee/etf-monitor/pkg/config"
	"github.com/gmdjlee/etf-monitor/pkg/logger"
)

// Server serves the dashboard page, its actions and the websocket
// ⭐ SSOT: 대시보드 서버 설정은 이 파일에서만
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
	config     *config.Config
}

// New creates a new dashboard server
func New(cfg *config.Config, log *logger.Logger, router http.Handler) *Server {
	// 액션은 백엔드 호출이 끝날 때까지 응답하지 않음
	writeTimeout := 15 * time.Second
	if t := cfg.Backend.Timeout * 3; t > writeTimeout {
		writeTimeout = t
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: writeTimeout,
			IdleTimeout:  60 * time.Second,
		},
		logger: log,
		config: cfg,
	}
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.WithFields(map[string]interface{}{
		"port":    s.config.Port,
		"env":     s.config.Env,
		"backend": s.config.Backend.BaseURL,
	}).Info("Starting dashboard server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down dashboard server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
