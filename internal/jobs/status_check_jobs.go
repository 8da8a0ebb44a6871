package jobs

import (
	"context"

	"market-stand-admin/internal/domain"
	"market-stand-admin/internal/logger"
)

// RecordHeartbeat stores a status check on behalf of this service.
func (jr *JobRunner) RecordHeartbeat() {
	jr.runWithRecovery("RecordHeartbeat", func(ctx context.Context) {
		if jr.statusChecks == nil {
			logger.Debug("Status checks disabled, skipping heartbeat")
			return
		}
		check, err := jr.statusChecks.Create(ctx, domain.StatusCheckCreate{
			ClientName: jr.config.Scheduler.ClientName,
		})
		if err != nil {
			logger.Error("Failed to record heartbeat", "error", err)
			return
		}
		logger.Info("Heartbeat recorded", "id", check.ID, "clientName", check.ClientName)
	})
}

// PruneStatusChecks deletes status checks older than the configured retention.
func (jr *JobRunner) PruneStatusChecks() {
	jr.runWithRecovery("PruneStatusChecks", func(ctx context.Context) {
		if jr.statusChecks == nil {
			logger.Debug("Status checks disabled, skipping prune")
			return
		}
		retention := jr.config.Scheduler.StatusCheckRetention
		n, err := jr.statusChecks.Prune(ctx, retention)
		if err != nil {
			logger.Error("Failed to prune status checks", "retention", retention, "error", err)
			return
		}
		logger.Info("Pruned status checks", "deleted", n, "retention", retention)
	})
}
