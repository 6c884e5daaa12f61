package main

import (
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/config"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	command    = flag.String("command", "up", "Migration command: up, down or version")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadMigrateConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "migrate",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	databaseURL := cfg.Database.URL()

	switch *command {
	case "up":
		if err := store.RunMigrations(databaseURL, cfg.MigrationsPath); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		logger.Info("Migrations applied", zap.String("path", cfg.MigrationsPath))
	case "down":
		if err := store.RollbackMigration(databaseURL, cfg.MigrationsPath); err != nil {
			logger.Fatal("Failed to rollback migration", zap.Error(err))
		}
		logger.Info("Rolled back last migration")
	case "version":
		version, dirty, err := store.MigrationVersion(databaseURL, cfg.MigrationsPath)
		if err != nil {
			logger.Fatal("Failed to read migration version", zap.Error(err))
		}
		logger.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	default:
		logger.Fatal("Unknown migration command", zap.String("command", *command))
	}
}
