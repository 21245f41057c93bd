package jobs

import (
	"fmt"
	"log/slog"

	"orderflow/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	queueMonitorJob *QueueMonitorJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query handlers as dependencies to wire up the job execution.
func NewJobManager(
	getReadyOrdersHandler queries.GetReadyOrdersQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		queueMonitorJob: NewQueueMonitorJob(getReadyOrdersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.queueMonitorJob.Start(); err != nil {
		return fmt.Errorf("failed to start queue monitor job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.queueMonitorJob.Stop()
}
