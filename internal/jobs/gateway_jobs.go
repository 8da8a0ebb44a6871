package jobs

import (
	"context"

	"market-stand-admin/internal/logger"
)

// ProbeGateway reads dashboard stats through the gateway and publishes
// whether the read succeeded on the gateway_up gauge.
func (jr *JobRunner) ProbeGateway() {
	jr.runWithRecovery("ProbeGateway", func(ctx context.Context) {
		stats, err := jr.gateway.DashboardStats(ctx)
		if err != nil {
			logger.Warn("Gateway probe failed", "error", err)
			jr.metrics.SetGatewayUp(false)
			return
		}
		jr.metrics.SetGatewayUp(true)
		logger.Debug("Gateway probe succeeded",
			"totalStands", stats.TotalStands,
			"activeStands", stats.ActiveStands,
			"totalTransactions", stats.TotalTransactions,
		)
	})
}
