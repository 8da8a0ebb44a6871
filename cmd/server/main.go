package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	httpapi "market-stand-admin/internal/api/http"
	"market-stand-admin/internal/config"
	"market-stand-admin/internal/gateway"
	"market-stand-admin/internal/jobs"
	"market-stand-admin/internal/logger"
	"market-stand-admin/internal/metrics"
	"market-stand-admin/internal/repository/sqlstore"
	"market-stand-admin/internal/scheduler"
	"market-stand-admin/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	envFile := flag.String("env-file", ".env", "Optional .env file loaded before configuration")
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
	logger.Info("Starting Market Stand Admin...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Gateway configuration", "api_base_url", cfg.APIBaseURL(), "timeout", cfg.Gateway.Timeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.NewMetrics()
	client := gateway.NewClient(cfg.APIBaseURL(), cfg.Gateway.Timeout, m)

	// Status checks need a database; without one the /api/status endpoints are off.
	var statusSvc service.StatusCheckService
	if cfg.Database.Enabled {
		logger.Info("Database configuration", "driver", cfg.Database.Driver, "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
		db, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.GetDatabaseDSN())
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		logger.Info("Database connection established")

		statusSvc = newStatusCheckService(ctx, db, cfg.Database.Driver)
	}

	// Initialize HTTP handlers
	pages, err := httpapi.NewPageHandler(client, client, m)
	if err != nil {
		log.Fatalf("Failed to load page templates: %v", err)
	}
	routes := httpapi.Routes{
		Pages:       pages,
		Metrics:     m,
		CORSOrigins: cfg.CORS.AllowedOrigins,
	}
	if statusSvc != nil {
		routes.StatusChecks = httpapi.NewStatusCheckHandler(statusSvc)
	}

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(routes),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.Scheduler.Enabled {
		cronScheduler, err := scheduler.NewScheduler(jobs.NewJobRunner(client, statusSvc, m, cfg))
		if err != nil {
			log.Fatalf("Failed to initialize scheduler: %v", err)
		}
		cronScheduler.Start()
		g.Go(func() error {
			<-gctx.Done()
			cronScheduler.Stop()
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", "error", err)
		log.Fatalf("Server error: %v", err)
	}
	logger.Info("Market Stand Admin stopped. Goodbye!")
}

func newStatusCheckService(ctx context.Context, db *sql.DB, driver string) service.StatusCheckService {
	store := sqlstore.NewStore(db, driver)
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Error("Failed to ensure status_checks table", "error", err)
	}
	return service.NewStatusCheckService(store.StatusCheckRepository)
}
