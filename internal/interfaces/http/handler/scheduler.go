package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/cargoflow/backend/internal/infrastructure/scheduler"
)

// SchedulerHandler exposes the billing cron scheduler over HTTP
type SchedulerHandler struct {
	BaseHandler
	cronScheduler *scheduler.BillingCronScheduler
}

// NewSchedulerHandler creates a new scheduler handler
func NewSchedulerHandler(cronScheduler *scheduler.BillingCronScheduler) *SchedulerHandler {
	return &SchedulerHandler{cronScheduler: cronScheduler}
}

// TriggerJobRequest selects the job type to run
type TriggerJobRequest struct {
	JobType string `json:"job_type" binding:"required"`
}

// TriggerJob starts a manual run of one scheduled job. The job runs in
// the background; the response only acknowledges the trigger.
func (h *SchedulerHandler) TriggerJob(c *gin.Context) {
	var req TriggerJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	err := h.cronScheduler.TriggerManualRun(c.Request.Context(), scheduler.JobType(req.JobType))
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrInvalidJobType):
			h.BadRequest(c, "Invalid job type")
		case errors.Is(err, scheduler.ErrSchedulerNotRunning):
			h.Conflict(c, "Scheduler is not running")
		default:
			h.HandleError(c, err)
		}
		return
	}

	h.Success(c, gin.H{"triggered": req.JobType})
}

// Status reports the scheduler configuration and the last and next run
// times of each job.
func (h *SchedulerHandler) Status(c *gin.Context) {
	h.Success(c, h.cronScheduler.GetStatus())
}
