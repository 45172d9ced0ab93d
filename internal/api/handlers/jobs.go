package handlers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/gmdjlee/etf-monitor/internal/scheduler"
	"github.com/gmdjlee/etf-monitor/pkg/logger"
)

// JobRunner is the part of the scheduler exposed over HTTP
type JobRunner interface {
	JobStats() map[string]scheduler.JobStats
	RunJob(jobName string) (scheduler.JobResult, error)
}

// JobsHandler reports and triggers scheduled jobs
type JobsHandler struct {
	jobs   JobRunner
	logger *logger.Logger
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(jobs JobRunner, log *logger.Logger) *JobsHandler {
	return &JobsHandler{
		jobs:   jobs,
		logger: log,
	}
}

// List returns statistics and the next run of every job
// GET /jobs
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	stats := h.jobs.JobStats()

	list := make([]scheduler.JobStats, 0, len(stats))
	for _, st := range stats {
		list = append(list, st)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].JobName < list[j].JobName })

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(list),
		"jobs":  list,
	})
}

// Run executes a job now and waits for its result
// POST /jobs/{name}/run
func (h *JobsHandler) Run(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	result, err := h.jobs.RunJob(name)
	if errors.Is(err, scheduler.ErrJobNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("job", name).Error("Job run failed")
		respondError(w, http.StatusInternalServerError, "job run failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
