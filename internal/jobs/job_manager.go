package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// JobManager starts and stops the background jobs together.
type JobManager struct {
	autoAssignmentJob       *AutoAssignmentJob
	notificationDispatchJob *NotificationDispatchJob
	logger                  *zap.Logger
}

func NewJobManager(
	autoAssignmentJob *AutoAssignmentJob,
	notificationDispatchJob *NotificationDispatchJob,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		autoAssignmentJob:       autoAssignmentJob,
		notificationDispatchJob: notificationDispatchJob,
		logger:                  logger,
	}
}

// StartAll starts every job. A failed start stops the jobs already running.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification dispatch job: %w", err)
	}

	if err := jm.autoAssignmentJob.Start(); err != nil {
		jm.notificationDispatchJob.Stop()
		return fmt.Errorf("failed to start auto assignment job: %w", err)
	}

	return nil
}

// StopAll waits for running jobs to finish. Assignment stops first so the outbox gets its
// last notifications dispatched.
func (jm *JobManager) StopAll() {
	jm.autoAssignmentJob.Stop()
	jm.notificationDispatchJob.Stop()
	jm.logger.Info("all jobs stopped")
}
