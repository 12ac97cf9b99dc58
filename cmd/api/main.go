package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hostelhub/roster-import/internal/bootstrap"
	"github.com/hostelhub/roster-import/internal/config"
	"github.com/hostelhub/roster-import/internal/infrastructure/db"
	"github.com/hostelhub/roster-import/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Configure(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})

	if err := cfg.RequireDatabase(); err != nil {
		logger.Fatal().Err(err).Msg("database is not configured")
	}

	pool, err := db.NewPool(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	gormDB, err := db.OpenGorm(cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open gorm")
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(gormDB); err != nil {
			logger.Fatal().Err(err).Msg("schema migration failed")
		}
		logger.Info().Msg("schema migrated")
	}

	server := bootstrap.NewHTTPServer(cfg, pool, gormDB)

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
