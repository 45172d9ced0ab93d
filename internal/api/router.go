package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/gmdjlee/etf-monitor/internal/api/handlers"
	"github.com/gmdjlee/etf-monitor/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
// jobsHandler is nil when no job is scheduled.
func NewRouter(dashboardHandler *handlers.DashboardHandler, hub *handlers.Hub, jobsHandler *handlers.JobsHandler, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", dashboardHandler.Health).Methods("GET")

	// Dashboard
	r.HandleFunc("/", dashboardHandler.Page).Methods("GET")
	r.HandleFunc("/chart.svg", dashboardHandler.Chart).Methods("GET")
	r.HandleFunc("/ws", hub.ServeWS).Methods("GET")
	r.HandleFunc("/actions/{name}", dashboardHandler.Action).Methods("POST")

	// Scheduler
	if jobsHandler != nil {
		r.HandleFunc("/jobs", jobsHandler.List).Methods("GET")
		r.HandleFunc("/jobs/{name}/run", jobsHandler.Run).Methods("POST")
	}

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Call next handler
			next.ServeHTTP(w, r)

			// Log request
			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
