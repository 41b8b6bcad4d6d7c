package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/cinevault/cinevault/internal/api"
	"github.com/cinevault/cinevault/internal/cache"
	"github.com/cinevault/cinevault/internal/config"
	"github.com/cinevault/cinevault/internal/controllers"
	"github.com/cinevault/cinevault/internal/models"
	"github.com/cinevault/cinevault/internal/scheduler"
	"github.com/cinevault/cinevault/internal/services/tmdb"
	"github.com/cinevault/cinevault/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting CineVault")
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Info("Configuration loaded")

	// 3. Initialize database
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.Info("Database initialized")

	// 4. Initialize response cache
	respCache := cache.NewTTLCache(cfg.CacheTTL)
	logger.WithField("ttl", cfg.CacheTTL).Info("Response cache initialized")

	// 5. Initialize upstream client
	tmdbClient, err := tmdb.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog client: %w", err)
	}
	logger.Info("Catalog client initialized")

	// 6. Initialize controllers
	catalogCtrl := controllers.NewCatalogController(db, tmdbClient, respCache, cfg, logger)
	reviewCtrl := controllers.NewReviewController(db, respCache, logger)
	watchlistCtrl := controllers.NewWatchlistController(db, logger)
	searchCtrl := controllers.NewSearchController(tmdbClient, logger)
	seedCtrl := controllers.NewSeedController(db, tmdbClient, cfg, logger)
	logger.Info("Controllers initialized")

	// 7. Initialize scheduler
	sched := scheduler.NewScheduler(seedCtrl, cfg.ReseedCron, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 8. Initialize HTTP server
	server := api.NewServer(cfg, api.Controllers{
		Catalog:   catalogCtrl,
		Review:    reviewCtrl,
		Watchlist: watchlistCtrl,
		Search:    searchCtrl,
	}, logger)

	// Start server in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 9. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("CineVault is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("CineVault stopped")
	return nil
}
