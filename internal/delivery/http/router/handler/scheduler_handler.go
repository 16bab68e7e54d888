package handler

import (
	"log/slog"
	"net/http"

	"trackwise/internal/delivery/http/response"
	"trackwise/internal/delivery/worker"

	"github.com/labstack/echo/v4"
)

// SchedulerHandler holds dependencies for scheduler administration handlers.
type SchedulerHandler struct {
	scheduler worker.Scheduler
	logger    *slog.Logger
}

// NewSchedulerHandler is the constructor for SchedulerHandler, injected by Fx.
func NewSchedulerHandler(scheduler worker.Scheduler, logger *slog.Logger) *SchedulerHandler {
	return &SchedulerHandler{
		scheduler: scheduler,
		logger:    logger,
	}
}

// ListJobs returns the scheduled background jobs.
func (h *SchedulerHandler) ListJobs(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.scheduler.Jobs(), "")
}

// Status reports whether the scheduler is running and its jobs.
func (h *SchedulerHandler) Status(c echo.Context) error {
	jobs := h.scheduler.Jobs()

	return response.Success(c, http.StatusOK, map[string]any{
		"running":    h.scheduler.Running(),
		"jobs_count": len(jobs),
		"jobs":       jobs,
	}, "")
}

// Pause suspends background job execution.
func (h *SchedulerHandler) Pause(c echo.Context) error {
	h.scheduler.Pause()

	return response.Success(c, http.StatusOK, nil, "Scheduler paused")
}

// Resume lifts a scheduler pause.
func (h *SchedulerHandler) Resume(c echo.Context) error {
	h.scheduler.Resume()

	return response.Success(c, http.StatusOK, nil, "Scheduler resumed")
}
