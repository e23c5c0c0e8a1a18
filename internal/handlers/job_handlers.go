package handlers

import (
	"net/http"

	"resellerdesk/internal/jobs/background"

	"github.com/labstack/echo/v4"
)

// JobHandlers exposes the background scheduler state over HTTP
type JobHandlers struct {
	scheduler *background.JobScheduler
}

func NewJobHandlers(scheduler *background.JobScheduler) *JobHandlers {
	return &JobHandlers{scheduler: scheduler}
}

// GetJobStatus lists the registered background jobs and their next run times
func (h *JobHandlers) GetJobStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduler.GetJobStatus())
}
