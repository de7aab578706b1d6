package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/pipeline"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	redispatchJob *RedispatchJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	orchestrator *pipeline.Orchestrator,
	redispatchMaxAge time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		redispatchJob: NewRedispatchJob(orchestrator, redispatchMaxAge, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.redispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start redispatch job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.redispatchJob.Stop()
}
