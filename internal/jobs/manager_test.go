package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/go-document-reader/internal/errors"
	"github.com/gcbaptista/go-document-reader/model"
)

func newTestManager(t *testing.T, workers int) *Manager {
	t.Helper()
	manager := NewManager(workers, slog.New(slog.NewTextHandler(io.Discard, nil)))
	manager.Start()
	t.Cleanup(manager.Stop)
	return manager
}

func waitFor(t *testing.T, manager *Manager, jobID string) *model.Job {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	job, err := manager.Wait(ctx, jobID)
	require.NoError(t, err)
	return job
}

func TestJobManager_CreateJob(t *testing.T) {
	manager := newTestManager(t, 2)

	jobID := manager.CreateJob(model.JobTypeIngestDocument, "doc-1", map[string]string{
		"filename": "paramo.pdf",
	})
	require.NotEmpty(t, jobID)

	job, err := manager.GetJob(jobID)
	require.NoError(t, err)
	assert.Equal(t, model.JobTypeIngestDocument, job.Type)
	assert.Equal(t, model.JobStatusPending, job.Status)
	assert.Equal(t, "doc-1", job.DocumentID)
	assert.Equal(t, "paramo.pdf", job.Metadata["filename"])

	_, err = manager.GetJob("missing")
	assert.True(t, errors.Is(err, internalErrors.ErrJobNotFound))
}

func TestJobManager_ExecuteJob(t *testing.T) {
	manager := newTestManager(t, 2)

	jobID := manager.CreateJob(model.JobTypeIngestDocument, "doc-1", nil)
	err := manager.ExecuteJob(jobID, func(ctx context.Context, job model.Job) error {
		assert.Equal(t, "doc-1", job.DocumentID)
		manager.UpdateJobProgress(job.ID, 50, 100, "Halfway done")
		manager.UpdateJobProgress(job.ID, 100, 100, "Completed")
		return nil
	})
	require.NoError(t, err)

	job := waitFor(t, manager, jobID)
	assert.Equal(t, model.JobStatusCompleted, job.Status)
	require.NotNil(t, job.Progress)
	assert.Equal(t, 100, job.Progress.Current)
	assert.Equal(t, 100, job.Progress.Total)
	assert.NotNil(t, job.StartedAt)
	assert.NotNil(t, job.CompletedAt)

	err = manager.ExecuteJob(jobID, func(ctx context.Context, job model.Job) error { return nil })
	assert.Error(t, err, "a finished job cannot run again")

	metrics := manager.GetMetrics()
	assert.Equal(t, int64(1), metrics.JobsCompleted)
	assert.Equal(t, int64(1), metrics.JobsByStatus[model.JobStatusCompleted])
	assert.Equal(t, int64(0), manager.GetCurrentWorkload())
}

func TestJobManager_FailedJob(t *testing.T) {
	manager := newTestManager(t, 1)

	jobID := manager.CreateJob(model.JobTypeDeleteDocument, "doc-1", nil)
	require.NoError(t, manager.ExecuteJob(jobID, func(ctx context.Context, job model.Job) error {
		return errors.New("disk full")
	}))

	job := waitFor(t, manager, jobID)
	assert.Equal(t, model.JobStatusFailed, job.Status)
	assert.Equal(t, "disk full", job.Error)
	assert.Equal(t, 0.0, manager.GetJobSuccessRate())
}

func TestJobManager_StopCancelsRunningJobs(t *testing.T) {
	manager := NewManager(1, slog.New(slog.NewTextHandler(io.Discard, nil)))

	started := make(chan struct{})
	jobID := manager.CreateJob(model.JobTypeIngestDocument, "doc-1", nil)
	require.NoError(t, manager.ExecuteJob(jobID, func(ctx context.Context, job model.Job) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}))

	<-started
	manager.Stop()

	job, err := manager.GetJob(jobID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCancelled, job.Status)
	assert.Equal(t, int64(1), manager.GetMetrics().JobsCancelled)
}

func TestJobManager_ListJobs(t *testing.T) {
	manager := newTestManager(t, 1)

	first := manager.CreateJob(model.JobTypeIngestDocument, "doc-1", nil)
	manager.CreateJob(model.JobTypeIngestDocument, "doc-2", nil)
	manager.CreateJob(model.JobTypeDeleteDocument, "doc-1", nil)

	assert.Len(t, manager.ListJobs("", nil), 3)
	assert.Len(t, manager.ListJobs("doc-1", nil), 2)

	require.NoError(t, manager.ExecuteJob(first, func(ctx context.Context, job model.Job) error { return nil }))
	waitFor(t, manager, first)

	completed := model.JobStatusCompleted
	jobs := manager.ListJobs("doc-1", &completed)
	require.Len(t, jobs, 1)
	assert.Equal(t, first, jobs[0].ID)
}

func TestJobManager_CleanupOldJobs(t *testing.T) {
	manager := newTestManager(t, 1)

	jobID := manager.CreateJob(model.JobTypeIngestDocument, "doc-1", nil)
	require.NoError(t, manager.ExecuteJob(jobID, func(ctx context.Context, job model.Job) error { return nil }))
	waitFor(t, manager, jobID)

	assert.Equal(t, 0, manager.CleanupOldJobs(time.Hour))
	assert.Equal(t, 1, manager.CleanupOldJobs(-time.Second))

	_, err := manager.GetJob(jobID)
	assert.True(t, errors.Is(err, internalErrors.ErrJobNotFound))
}

func TestJobMetrics_AverageByType(t *testing.T) {
	metrics := NewJobMetrics()
	metrics.RecordJobCompleted(model.JobTypeIngestDocument, 10*time.Millisecond)
	metrics.RecordJobCompleted(model.JobTypeIngestDocument, 30*time.Millisecond)

	assert.Equal(t, 20*time.Millisecond, metrics.GetAverageExecutionTimeByType(model.JobTypeIngestDocument))
	assert.Equal(t, time.Duration(0), metrics.GetAverageExecutionTimeByType(model.JobTypeDeleteDocument))
	assert.Equal(t, 20*time.Millisecond, metrics.GetMetrics().AverageExecutionTimeByType[model.JobTypeIngestDocument])
	assert.Equal(t, 1.0, metrics.GetSuccessRate())
}
