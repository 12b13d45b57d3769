// cmd/shelf-export-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	v1 "github.com/MGTheTrain/shelf-export/internal/api/rest/v1"
	"github.com/MGTheTrain/shelf-export/internal/bootstrap"
	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// interruptedReason is recorded on jobs whose in-memory task was lost by a restart
const interruptedReason = "export interrupted by a service restart, please start a new export"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/app.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	if err := cfg.Auth.Validate(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}
	log = log.With("component", "rest-api")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize application dependencies
	deps, err := bootstrap.Initialize(ctx, cfg, registry, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Error("Failed to release resources", "error", err)
		}
	}()

	// An in-memory queue only reaches workers of this process
	var workers sync.WaitGroup
	if cfg.Queue.Type == config.MemoryQueueType {
		// tasks buffered by a previous process are gone
		if _, err := deps.ExportJobService.FailUnfinished(ctx, interruptedReason); err != nil {
			return fmt.Errorf("failed to recover export jobs: %w", err)
		}

		workers.Add(1)
		go func() {
			defer workers.Done()
			if err := deps.Queue.Consume(ctx, deps.TaskProcessor.ProcessTask); err != nil {
				log.Error("Task queue stopped", "error", err)
			}
		}()
		if cfg.Export.RetentionDays > 0 {
			go deps.Pruner.Run(ctx, time.Hour)
		}
	}

	// Setup and start server with graceful shutdown
	err = startServerWithGracefulShutdown(ctx, cfg, deps, registry, log)
	stop()
	workers.Wait()
	return err
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(ctx context.Context, cfg *config.AppConfig, deps *bootstrap.Dependencies, registry *prometheus.Registry, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "X-Checksum-Sha256"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	jwtManager := v1.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	v1.SetupRoutes(r, jwtManager, deps.ExportJobService, deps.ExportDownloadService, log)
	v1.SetupOperationalRoutes(r, registry)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		log.Info("Received shutdown signal, initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
