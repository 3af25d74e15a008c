package main

import (
	"fmt"
	"log"

	"github.com/hrutik5321/rowdeck/internal/app"
	"github.com/hrutik5321/rowdeck/internal/config"
	"github.com/hrutik5321/rowdeck/internal/db"
	"github.com/hrutik5321/rowdeck/internal/db/postgres"
	"github.com/hrutik5321/rowdeck/internal/db/sqlite"
	"github.com/hrutik5321/rowdeck/internal/items"
	"github.com/hrutik5321/rowdeck/internal/logger"
	"github.com/hrutik5321/rowdeck/internal/viewstate"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logr, logFile, err := logger.New(cfg.Log, cfg.Env)
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer logFile.Close()

	store, err := openStorage(cfg.Storage, logr)
	if err != nil {
		logr.Error().Err(err).Msg("open storage")
		log.Fatalf("open storage: %v", err)
	}

	repo := items.NewRepository(store, logr)
	ctrl := viewstate.New(repo, logr)

	// Load already validated the sort settings.
	field, dir, _ := cfg.InitialSort()
	ctrl.SetSort(field, dir)

	if _, err := app.NewProgram(ctrl, repo).Run(); err != nil {
		logr.Error().Err(err).Msg("program failed")
		log.Printf("program failed: %v", err)
	}

	// Make sure DB is closed.
	if err := store.Close(); err != nil {
		logr.Error().Err(err).Msg("close storage")
	}
}

func openStorage(cfg config.StorageConfig, logr zerolog.Logger) (db.Service, error) {
	switch cfg.Driver {
	case config.DriverSQLite, config.DriverSQLite3:
		return sqlite.Open(cfg.Driver, cfg.SQLite.Path, logr)
	case config.DriverPostgres:
		// connects lazily on Initialize
		return postgres.New(db.ConnConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
			SSLMode:  cfg.Postgres.SSLMode,
		}, logr), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
