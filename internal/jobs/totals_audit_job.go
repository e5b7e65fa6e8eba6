package jobs

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TotalsAuditJob periodically cross-checks the stored USD totals against the
// sum of live line totals. Totals are derived data; a mismatch means a write
// path skipped recalculation and needs investigation.
type TotalsAuditJob struct {
	db     *gorm.DB
	cron   *cron.Cron
	logger *zap.Logger
}

// NewTotalsAuditJob creates a job that audits order totals.
func NewTotalsAuditJob(db *gorm.DB, logger *zap.Logger) *TotalsAuditJob {
	return &TotalsAuditJob{
		db:     db,
		cron:   cron.New(),
		logger: logger.With(zap.String("component", "totals_audit_job")),
	}
}

// Start schedules the audit to run at the top of every hour.
func (j *TotalsAuditJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("totals audit job started (running hourly)")
	return nil
}

// Stop stops the totals audit job.
func (j *TotalsAuditJob) Stop() {
	j.cron.Stop()
	j.logger.Info("totals audit job stopped")
}

func (j *TotalsAuditJob) run() {
	rows, err := j.db.Raw(`
		SELECT
			o.id,
			o.display_number,
			o.total_usd_cents,
			COALESCE(SUM(i.qty * i.price_usd_cents), 0) AS derived_usd_cents
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id AND i.status != 'cancelled'
		GROUP BY o.id, o.display_number, o.total_usd_cents
		HAVING o.total_usd_cents != COALESCE(SUM(i.qty * i.price_usd_cents), 0)
	`).Rows()
	if err != nil {
		j.logger.Error("totals audit query failed", zap.Error(err))
		return
	}
	defer rows.Close()

	drifted := 0
	for rows.Next() {
		var id, displayNumber string
		var stored, derived int64
		if err = rows.Scan(&id, &displayNumber, &stored, &derived); err != nil {
			j.logger.Error("totals audit scan failed", zap.Error(err))
			return
		}

		drifted++
		j.logger.Warn("order total drifted from line sum",
			zap.String("order_id", id),
			zap.String("display_number", displayNumber),
			zap.Int64("stored_usd_cents", stored),
			zap.Int64("derived_usd_cents", derived))
	}

	if err = rows.Err(); err != nil {
		j.logger.Error("totals audit iteration failed", zap.Error(err))
		return
	}

	if drifted == 0 {
		j.logger.Debug("totals audit passed")
	}
}
