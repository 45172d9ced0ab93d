package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmdjlee/etf-monitor/pkg/logger"
)

type stubJob struct {
	name     string
	schedule string
	errs     []error
	runs     atomic.Int32
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return j.schedule }

func (j *stubJob) Run(ctx context.Context) error {
	n := int(j.runs.Add(1)) - 1
	if n < len(j.errs) {
		return j.errs[n]
	}
	return nil
}

func TestValidate(t *testing.T) {
	for _, expr := range []string{"*/10 * * * *", "0 30 9 * * 1-5", "@hourly", "@every 5m"} {
		assert.NoError(t, Validate(expr), expr)
	}
	assert.Error(t, Validate("every day"))
	assert.Error(t, Validate("* * *"))
}

func TestAddJob(t *testing.T) {
	s := New(logger.Nop())
	job := &stubJob{name: "refresh", schedule: "@hourly"}

	require.NoError(t, s.AddJob(job))
	assert.Error(t, s.AddJob(job), "duplicate name")
	assert.Error(t, s.AddJob(&stubJob{name: "bad", schedule: "nope"}))
	require.NoError(t, s.AddJob(&stubJob{name: "cleanup", schedule: "@daily"}))

	assert.Equal(t, []string{"cleanup", "refresh"}, s.Jobs())
}

func TestRunJob(t *testing.T) {
	s := New(logger.Nop())
	job := &stubJob{name: "refresh", schedule: "@hourly", errs: []error{errors.New("boom")}}
	require.NoError(t, s.AddJob(job))

	res, err := s.RunJob("refresh")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "boom", res.Error)
	assert.Equal(t, int32(1), job.runs.Load(), "failed runs are not retried")

	res, err = s.RunJob("refresh")
	require.NoError(t, err)
	assert.True(t, res.Success)

	_, err = s.RunJob("missing")
	assert.ErrorIs(t, err, ErrJobNotFound)

	stats := s.JobStats()["refresh"]
	assert.Equal(t, 2, stats.TotalRuns)
	assert.Equal(t, 1, stats.SuccessCount)
	assert.Equal(t, 1, stats.FailureCount)
	assert.NotNil(t, stats.LastRun)
	assert.Nil(t, stats.NextRun, "not started yet")
}

func TestRunJobSkipped(t *testing.T) {
	s := New(logger.Nop())
	job := &stubJob{name: "busy", schedule: "@hourly", errs: []error{ErrSkipped}}
	require.NoError(t, s.AddJob(job))

	res, err := s.RunJob("busy")
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.False(t, res.Success)
	assert.Empty(t, res.Error)

	stats := s.JobStats()["busy"]
	assert.Equal(t, 1, stats.SkippedCount)
	assert.Zero(t, stats.FailureCount)
}

func TestScheduledRun(t *testing.T) {
	s := New(logger.Nop())
	job := &stubJob{name: "tick", schedule: "* * * * * *"}
	require.NoError(t, s.AddJob(job))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return job.runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	stats := s.JobStats()["tick"]
	require.NotNil(t, stats.NextRun)
	assert.True(t, stats.NextRun.After(time.Now().Add(-time.Second)))
}

func TestJobHistoryCap(t *testing.T) {
	var h JobHistory
	for i := 0; i < maxHistory+10; i++ {
		h.AddResult(JobResult{Success: i%2 == 0})
	}
	assert.Len(t, h.Results, maxHistory)
	assert.Len(t, h.Latest(5), 5)
	assert.Empty(t, h.Latest(0))

	success, skipped, failed := h.Counts()
	assert.Equal(t, maxHistory, success+skipped+failed)
}
