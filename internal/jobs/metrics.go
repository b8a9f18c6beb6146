package jobs

import (
	"maps"
	"sync"
	"time"

	"github.com/gcbaptista/go-document-reader/model"
)

// executionSamples is how many recent execution times are kept per job type.
const executionSamples = 100

// JobMetricsData is a point-in-time copy of the job metrics.
type JobMetricsData struct {
	JobsCreated                int64                           `json:"jobs_created"`
	JobsCompleted              int64                           `json:"jobs_completed"`
	JobsFailed                 int64                           `json:"jobs_failed"`
	JobsCancelled              int64                           `json:"jobs_cancelled"`
	TotalExecutionTime         time.Duration                   `json:"total_execution_time_ns"`
	AverageExecutionTime       time.Duration                   `json:"average_execution_time_ns"`
	AverageExecutionTimeByType map[model.JobType]time.Duration `json:"average_execution_time_by_type_ns"`
	JobsByType                 map[model.JobType]int64         `json:"jobs_by_type"`
	JobsByStatus               map[model.JobStatus]int64       `json:"jobs_by_status"`
	SuccessRate                float64                         `json:"success_rate"`
	CurrentWorkload            int64                           `json:"current_workload"` // Pending plus running
	LastUpdated                time.Time                       `json:"last_updated"`
}

// JobMetrics tracks performance metrics for job operations
type JobMetrics struct {
	mu                   sync.RWMutex
	jobsCreated          int64
	jobsCompleted        int64
	jobsFailed           int64
	jobsCancelled        int64
	totalExecutionTime   time.Duration
	jobsByType           map[model.JobType]int64
	jobsByStatus         map[model.JobStatus]int64
	executionTimesByType map[model.JobType][]time.Duration
	lastUpdated          time.Time
}

// NewJobMetrics creates a new metrics collector
func NewJobMetrics() *JobMetrics {
	return &JobMetrics{
		jobsByType:           make(map[model.JobType]int64),
		jobsByStatus:         make(map[model.JobStatus]int64),
		executionTimesByType: make(map[model.JobType][]time.Duration),
		lastUpdated:          time.Now(),
	}
}

// RecordJobCreated increments job creation counter
func (m *JobMetrics) RecordJobCreated(jobType model.JobType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobsCreated++
	m.jobsByType[jobType]++
	m.jobsByStatus[model.JobStatusPending]++
	m.lastUpdated = time.Now()
}

// RecordJobStatusChange moves one job between status counters
func (m *JobMetrics) RecordJobStatusChange(oldStatus, newStatus model.JobStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oldStatus != "" && m.jobsByStatus[oldStatus] > 0 {
		m.jobsByStatus[oldStatus]--
	}
	m.jobsByStatus[newStatus]++
	m.lastUpdated = time.Now()
}

// RecordJobCompleted records successful job completion
func (m *JobMetrics) RecordJobCompleted(jobType model.JobType, executionTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobsCompleted++
	m.totalExecutionTime += executionTime

	samples := append(m.executionTimesByType[jobType], executionTime)
	if len(samples) > executionSamples {
		samples = samples[len(samples)-executionSamples:]
	}
	m.executionTimesByType[jobType] = samples
	m.lastUpdated = time.Now()
}

// RecordJobFailed records job failure
func (m *JobMetrics) RecordJobFailed(jobType model.JobType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobsFailed++
	m.lastUpdated = time.Now()
}

// RecordJobCancelled records a job stopped by shutdown
func (m *JobMetrics) RecordJobCancelled(jobType model.JobType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobsCancelled++
	m.lastUpdated = time.Now()
}

// GetMetrics returns a copy of current metrics
func (m *JobMetrics) GetMetrics() JobMetricsData {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var average time.Duration
	if m.jobsCompleted > 0 {
		average = m.totalExecutionTime / time.Duration(m.jobsCompleted)
	}
	byType := make(map[model.JobType]time.Duration, len(m.executionTimesByType))
	for jobType, samples := range m.executionTimesByType {
		byType[jobType] = averageOf(samples)
	}

	return JobMetricsData{
		JobsCreated:                m.jobsCreated,
		JobsCompleted:              m.jobsCompleted,
		JobsFailed:                 m.jobsFailed,
		JobsCancelled:              m.jobsCancelled,
		TotalExecutionTime:         m.totalExecutionTime,
		AverageExecutionTime:       average,
		AverageExecutionTimeByType: byType,
		JobsByType:                 maps.Clone(m.jobsByType),
		JobsByStatus:               maps.Clone(m.jobsByStatus),
		SuccessRate:                m.successRate(),
		CurrentWorkload:            m.currentWorkload(),
		LastUpdated:                m.lastUpdated,
	}
}

// GetAverageExecutionTimeByType returns the mean of the recent execution times of a job type
func (m *JobMetrics) GetAverageExecutionTimeByType(jobType model.JobType) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return averageOf(m.executionTimesByType[jobType])
}

func averageOf(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, t := range samples {
		total += t
	}
	return total / time.Duration(len(samples))
}

// GetSuccessRate returns the success rate (0.0 to 1.0)
func (m *JobMetrics) GetSuccessRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.successRate()
}

func (m *JobMetrics) successRate() float64 {
	finished := m.jobsCompleted + m.jobsFailed
	if finished == 0 {
		return 1.0 // No jobs yet, assume 100% success
	}
	return float64(m.jobsCompleted) / float64(finished)
}

// GetCurrentWorkload returns the number of pending and running jobs
func (m *JobMetrics) GetCurrentWorkload() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.currentWorkload()
}

func (m *JobMetrics) currentWorkload() int64 {
	return m.jobsByStatus[model.JobStatusPending] + m.jobsByStatus[model.JobStatusRunning]
}
