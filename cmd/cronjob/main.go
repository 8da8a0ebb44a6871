package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"market-stand-admin/internal/config"
	"market-stand-admin/internal/gateway"
	"market-stand-admin/internal/jobs"
	"market-stand-admin/internal/logger"
	"market-stand-admin/internal/metrics"
	"market-stand-admin/internal/repository/sqlstore"
	"market-stand-admin/internal/scheduler"
	"market-stand-admin/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	envFile := flag.String("env-file", ".env", "Optional .env file loaded before configuration")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'probe-gateway', 'all')")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Ignoring env file %s: %v", *envFile, err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Market Stand Admin Cronjob Runner...", "log_level", cfg.Log.Level)

	ctx := context.Background()
	m := metrics.NewMetrics()
	client := gateway.NewClient(cfg.APIBaseURL(), cfg.Gateway.Timeout, m)

	var statusSvc service.StatusCheckService
	if cfg.Database.Enabled {
		logger.Info("Connecting to database...", "driver", cfg.Database.Driver, "host", cfg.Database.Host, "port", cfg.Database.Port)
		db, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.GetDatabaseDSN())
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		logger.Info("Database connection established")

		store := sqlstore.NewStore(db, cfg.Database.Driver)
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Error("Failed to ensure status_checks table", "error", err)
		}
		statusSvc = service.NewStatusCheckService(store.StatusCheckRepository)
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(client, statusSvc, m, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if !runJobOnce(jobRunner, *runOnce) {
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once. It reports false for an unknown job name.
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) bool {
	switch jobName {
	case "probe-gateway":
		jobRunner.ProbeGateway()
	case "record-heartbeat":
		jobRunner.RecordHeartbeat()
	case "prune-status-checks":
		jobRunner.PruneStatusChecks()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - probe-gateway\n")
		fmt.Printf("  - record-heartbeat\n")
		fmt.Printf("  - prune-status-checks\n")
		fmt.Printf("  - all\n")
		return false
	}
	return true
}
