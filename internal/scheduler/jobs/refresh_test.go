package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gmdjlee/etf-monitor/internal/dashboard"
	"github.com/gmdjlee/etf-monitor/internal/scheduler"
	"github.com/gmdjlee/etf-monitor/pkg/logger"
)

type stubDispatcher struct {
	out  dashboard.Outcome
	err  error
	msgs []dashboard.Msg
}

func (d *stubDispatcher) Dispatch(ctx context.Context, msg dashboard.Msg) (dashboard.Outcome, error) {
	d.msgs = append(d.msgs, msg)
	return d.out, d.err
}

func TestRefreshJob(t *testing.T) {
	d := &stubDispatcher{}
	job := NewRefreshJob(d, "*/30 * * * *", logger.Nop())

	assert.Equal(t, "dashboard_refresh", job.Name())
	assert.Equal(t, "*/30 * * * *", job.Schedule())
	assert.NoError(t, job.Run(context.Background()))
	assert.Equal(t, []dashboard.Msg{dashboard.ScheduledRefresh{}}, d.msgs)
}

func TestRefreshJobBusy(t *testing.T) {
	job := NewRefreshJob(&stubDispatcher{err: dashboard.ErrBusy}, "@hourly", logger.Nop())
	assert.ErrorIs(t, job.Run(context.Background()), scheduler.ErrSkipped)
}

func TestRefreshJobAlert(t *testing.T) {
	job := NewRefreshJob(&stubDispatcher{out: dashboard.Outcome{Alert: "데이터 업데이트 중 오류가 발생했습니다."}}, "@hourly", logger.Nop())
	err := job.Run(context.Background())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, scheduler.ErrSkipped))
}
