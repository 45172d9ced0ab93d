package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
	"github.com/gmdjlee/etf-monitor/internal/dashboard"
	"github.com/gmdjlee/etf-monitor/internal/render"
	"github.com/gmdjlee/etf-monitor/pkg/logger"
)

const busyMessage = "요청을 처리하는 중입니다. 잠시 후 다시 시도해주세요."

// HealthChecker probes the backend
type HealthChecker interface {
	Health(ctx context.Context) (*contracts.SystemHealth, error)
}

// DashboardHandler serves the dashboard page and its form actions
// ⭐ SSOT: 대시보드 HTTP 핸들러는 이 구조체에서만
type DashboardHandler struct {
	ctrl    *dashboard.Controller
	backend HealthChecker
	logger  *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(ctrl *dashboard.Controller, backend HealthChecker, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		ctrl:    ctrl,
		backend: backend,
		logger:  log,
	}
}

// Page renders the full dashboard
// GET /
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	data, err := h.ctrl.Page()
	if err != nil {
		h.logger.WithError(err).Error("Failed to build page")
		respondError(w, http.StatusInternalServerError, "Failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Page(w, data); err != nil {
		h.logger.WithError(err).Error("Failed to render page")
	}
}

// Action dispatches a form action and redirects back to the page
// POST /actions/{name}
func (h *DashboardHandler) Action(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form")
		return
	}

	msg, err := ParseAction(name, r.PostForm)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	// 브라우저가 먼저 끊어도 요청은 끝까지 처리
	out, err := h.ctrl.Dispatch(context.WithoutCancel(r.Context()), msg)
	if errors.Is(err, dashboard.ErrBusy) {
		respondError(w, http.StatusConflict, busyMessage)
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("action", name).Error("Action failed")
		respondError(w, http.StatusInternalServerError, "action failed")
		return
	}

	target := "/"
	if out.Navigate != "" {
		target = out.Navigate
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Chart serves the live chart as SVG
// GET /chart.svg
func (h *DashboardHandler) Chart(w http.ResponseWriter, r *http.Request) {
	chart, ok := h.ctrl.Chart()
	if !ok {
		respondError(w, http.StatusNotFound, "no chart")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(chart.SVG)
}

// Health reports dashboard and backend health
// GET /health
func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":  "ok",
		"service": "etf-monitor",
		"busy":    h.ctrl.Busy(),
	}

	health, err := h.backend.Health(r.Context())
	if err != nil {
		resp["status"] = "degraded"
		resp["backend"] = "unreachable"
		respondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp["backend"] = health.Status
	if !health.Healthy() {
		resp["status"] = "degraded"
		respondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
