// Package jobs provides scheduled background tasks for the order lifecycle engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to audit the invariants the write paths are supposed to maintain.
//
// # Available Jobs
//
// 1. TotalsAuditJob - Runs hourly to cross-check stored order totals against the sum of live line totals
// 2. StockAuditJob - Runs every 15 minutes to detect negative stock counters
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(db, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Audit hits are logged at Warn level and never mutate data: the jobs exist
// to surface drift, not to repair it. Query failures are logged at Error
// level. Failed job starts stop any already running jobs.
package jobs
