package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"umbrella-rogue/internal/config"
	"umbrella-rogue/internal/infrastructure/storage"
	"umbrella-rogue/internal/server"
	"umbrella-rogue/internal/version"
	"umbrella-rogue/pkg/dungeon"
	"umbrella-rogue/pkg/logger"

	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	var configPath string
	var seed int64
	flag.StringVar(&configPath, "config", "", "Path to TOML config (env UMBRELLA_* overrides it)")
	// 0 - сид из конфига, а если и там 0, то от времени
	flag.Int64Var(&seed, "seed", 0, "Master seed for new games")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	logger.Configure(cfg.Logging.Level, cfg.Logging.Format)

	logger.Log.Info("Starting Umbrella Rogue...")
	logger.Log.Info(version.String())

	tables, err := dungeon.LoadTables(cfg.Population.Templates)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load spawn tables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to open save storage")
	}
	logger.Log.WithFields(logrus.Fields{
		"driver": cfg.Storage.Driver,
		"path":   cfg.Storage.Path,
		"seed":   cfg.Seed,
	}).Info("Storage ready")

	runErr := server.New(cfg, store, tables).Run(ctx)
	if err := store.Close(); err != nil {
		logger.Log.WithError(err).Error("Failed to close storage")
	}
	if runErr != nil {
		logger.Log.WithError(runErr).Fatal("Server stopped with error")
	}
	logger.Log.Info("Done.")
}
