package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-document-reader/internal/errors"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	job, err := api.library.GetJob(jobID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrJobNotFound) {
			SendJobNotFoundError(c, jobID)
			return
		}
		SendInternalError(c, "get job", err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobsHandler handles requests to list jobs, optionally for one document and status
func (api *API) ListJobsHandler(c *gin.Context) {
	documentID := c.Query("document_id")
	statusFilter, validation := ValidateJobStatus(c.Query("status"))
	if validation.HasErrors() {
		SendValidationError(c, validation)
		return
	}

	jobs := api.library.ListJobs(documentID, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":        jobs,
		"document_id": documentID,
		"total":       len(jobs),
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	metrics := api.library.JobMetrics()

	c.JSON(http.StatusOK, gin.H{
		"metrics":          metrics,
		"success_rate":     metrics.SuccessRate,
		"current_workload": metrics.CurrentWorkload,
	})
}
