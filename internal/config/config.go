package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Upstream catalog API
	TMDBAPIKey      string
	TMDBBaseURL     string
	ImageBaseURL    string        // expanded into w500/original variants per image
	UpstreamTimeout time.Duration // explicit, not inherited from client defaults

	// Response cache
	CacheTTL time.Duration

	// Reseed
	SeedPages  int    // pages fetched per category during bulk reseed
	ReseedCron string // cron spec for scheduled reseed, empty disables it

	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $CONFIG_DIR/cinevault.db

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("IMAGE_BASE_URL", "https://image.tmdb.org/t/p")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 30)
	viper.SetDefault("CACHE_TTL_MINUTES", 60)
	viper.SetDefault("SEED_PAGES", 10)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "cinevault")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		// Upstream
		TMDBAPIKey:      viper.GetString("TMDB_API_KEY"),
		TMDBBaseURL:     viper.GetString("TMDB_BASE_URL"),
		ImageBaseURL:    viper.GetString("IMAGE_BASE_URL"),
		UpstreamTimeout: time.Duration(viper.GetInt("UPSTREAM_TIMEOUT_SECONDS")) * time.Second,

		// Cache
		CacheTTL: time.Duration(viper.GetInt("CACHE_TTL_MINUTES")) * time.Minute,

		// Reseed
		SeedPages:  viper.GetInt("SEED_PAGES"),
		ReseedCron: viper.GetString("RESEED_CRON"),

		// Server
		ServerPort: viper.GetString("SERVER_PORT"),

		// Paths
		DatabaseFile: filepath.Join(configDir, "cinevault.db"),

		// Logging
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if config.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}

	return config, nil
}
