package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/templui/rincon/internal/config"
	"github.com/templui/rincon/internal/db"
	"github.com/templui/rincon/internal/logger"
)

// loadEnv loads the app config and sets up a quiet logger for CLI use.
func loadEnv() *config.Config {
	cfg := config.Load()
	level := cfg.LogLevel
	if level == "" {
		level = "warn"
	}
	logger.Init(logger.Options{Development: true, Level: level, AppName: cfg.AppName})
	return cfg
}

func openDB(cfg *config.Config) (*sqlx.DB, error) {
	conn, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return conn, nil
}
