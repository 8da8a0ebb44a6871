package jobs

import (
	"context"
	"time"

	"market-stand-admin/internal/config"
	"market-stand-admin/internal/domain"
	"market-stand-admin/internal/logger"
	"market-stand-admin/internal/metrics"
	"market-stand-admin/internal/service"
)

const jobTimeout = 30 * time.Second

// StatsSource is the gateway read the probe job exercises.
type StatsSource interface {
	DashboardStats(ctx context.Context) (domain.DashboardStats, error)
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	gateway      StatsSource
	statusChecks service.StatusCheckService
	metrics      *metrics.Metrics
	config       *config.Config
}

// NewJobRunner creates a new job runner. statusChecks may be nil when no
// database is configured; the status check jobs then skip.
func NewJobRunner(gateway StatsSource, statusChecks service.StatusCheckService, m *metrics.Metrics, cfg *config.Config) *JobRunner {
	return &JobRunner{
		gateway:      gateway,
		statusChecks: statusChecks,
		metrics:      m,
		config:       cfg,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context)) {
	log := logger.WithJob(jobName)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	log.Info("Starting job")
	jobFunc(ctx)
	log.Info("Job completed", "duration", time.Since(start))
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.ProbeGateway()
	jr.RecordHeartbeat()
	jr.PruneStatusChecks()
}
