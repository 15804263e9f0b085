package jobs

import (
	"context"
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	recurringPlanJob *RecurringPlanJob
}

func NewJobManager(recurringPlanJob *RecurringPlanJob) *JobManager {
	return &JobManager{recurringPlanJob: recurringPlanJob}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll(ctx context.Context) error {
	if err := jm.recurringPlanJob.Start(ctx); err != nil {
		return fmt.Errorf("failed to start recurring plan job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.recurringPlanJob.Stop()
}
