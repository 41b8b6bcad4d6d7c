// Command seed rebuilds the local title catalog from the upstream
// popular/discover lists. All existing title records (including their
// reviews) are dropped.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cinevault/cinevault/internal/config"
	"github.com/cinevault/cinevault/internal/controllers"
	"github.com/cinevault/cinevault/internal/models"
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
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting catalog reseed")

	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	tmdbClient, err := tmdb.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog client: %w", err)
	}

	seedCtrl := controllers.NewSeedController(db, tmdbClient, cfg, logger)
	if err := seedCtrl.Reseed(context.Background()); err != nil {
		return fmt.Errorf("reseed failed: %w", err)
	}

	logger.Info("Reseed completed")
	return nil
}
