package jobs

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StockAuditJob periodically verifies the stock counter invariant: neither
// stock_ok nor stock_defect may go negative. The domain refuses such writes,
// so a hit here points at out-of-band database changes.
type StockAuditJob struct {
	db     *gorm.DB
	cron   *cron.Cron
	logger *zap.Logger
}

// NewStockAuditJob creates a job that audits product stock counters.
func NewStockAuditJob(db *gorm.DB, logger *zap.Logger) *StockAuditJob {
	return &StockAuditJob{
		db:     db,
		cron:   cron.New(),
		logger: logger.With(zap.String("component", "stock_audit_job")),
	}
}

// Start schedules the audit to run every 15 minutes.
func (j *StockAuditJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("stock audit job started (running every 15 minutes)")
	return nil
}

// Stop stops the stock audit job.
func (j *StockAuditJob) Stop() {
	j.cron.Stop()
	j.logger.Info("stock audit job stopped")
}

func (j *StockAuditJob) run() {
	rows, err := j.db.Raw(`
		SELECT id, name, stock_ok, stock_defect
		FROM products
		WHERE stock_ok < 0 OR stock_defect < 0
	`).Rows()
	if err != nil {
		j.logger.Error("stock audit query failed", zap.Error(err))
		return
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		var stockOK, stockDefect int
		if err = rows.Scan(&id, &name, &stockOK, &stockDefect); err != nil {
			j.logger.Error("stock audit scan failed", zap.Error(err))
			return
		}

		j.logger.Warn("product stock counter is negative",
			zap.String("product_id", id),
			zap.String("name", name),
			zap.Int("stock_ok", stockOK),
			zap.Int("stock_defect", stockDefect))
	}

	if err = rows.Err(); err != nil {
		j.logger.Error("stock audit iteration failed", zap.Error(err))
	}
}
