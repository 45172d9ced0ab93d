package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/gmdjlee/etf-monitor/internal/dashboard"
	"github.com/gmdjlee/etf-monitor/internal/scheduler"
	"github.com/gmdjlee/etf-monitor/pkg/logger"
)

// Dispatcher feeds messages into the dashboard
type Dispatcher interface {
	Dispatch(ctx context.Context, msg dashboard.Msg) (dashboard.Outcome, error)
}

// RefreshJob refreshes the dashboard data on a schedule without touching
// the banner a user is looking at. It is skipped while the dashboard is busy.
type RefreshJob struct {
	dashboard Dispatcher
	schedule  string
	logger    *logger.Logger
}

// NewRefreshJob creates a new refresh job
func NewRefreshJob(d Dispatcher, schedule string, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		dashboard: d,
		schedule:  schedule,
		logger:    log,
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "dashboard_refresh"
}

// Schedule returns the configured cron expression
func (j *RefreshJob) Schedule() string {
	return j.schedule
}

// Run dispatches a refresh
func (j *RefreshJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled refresh")

	out, err := j.dashboard.Dispatch(ctx, dashboard.ScheduledRefresh{})
	if errors.Is(err, dashboard.ErrBusy) {
		return scheduler.ErrSkipped
	}
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	if out.Alert != "" {
		return fmt.Errorf("refresh: %s", out.Alert)
	}

	return nil
}
