package jobs

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	totalsAuditJob *TotalsAuditJob
	stockAuditJob  *StockAuditJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(db *gorm.DB, logger *zap.Logger) *JobManager {
	return &JobManager{
		totalsAuditJob: NewTotalsAuditJob(db, logger),
		stockAuditJob:  NewStockAuditJob(db, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.totalsAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start totals audit job: %w", err)
	}

	if err := jm.stockAuditJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.totalsAuditJob.Stop()
		return fmt.Errorf("failed to start stock audit job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.totalsAuditJob.Stop()
	jm.stockAuditJob.Stop()
}
