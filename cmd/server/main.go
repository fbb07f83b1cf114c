package main

import (
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"brewshare/internal/config"
	"brewshare/internal/database/sqlite"
	"brewshare/internal/handlers"
	"brewshare/internal/routing"

	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, resolved, exists, err := config.Load(*configPath)
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	logger := newLogger(cfg.Logging)
	if !exists {
		logger.Info().Str("path", resolved).Msg("no config file found, using defaults")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Fatal().Err(err).Msg("failed to create database directory")
	}
	store, err := sqlite.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer store.Close()

	h := handlers.NewHandler(store, logger)
	router := routing.SetupRouter(routing.Config{
		Handlers: h,
		Logger:   logger,
	})

	logger.Info().Str("addr", cfg.Server.Bind).Msg("starting brewshare server")
	if err := http.ListenAndServe(cfg.Server.Bind, router); err != nil {
		logger.Fatal().Err(err).Msg("server failed to start")
	}
}

func newLogger(cfg config.Logging) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = os.Stderr
	logger := zerolog.New(out)
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
	}
	return logger.Level(level).With().Timestamp().Logger()
}
