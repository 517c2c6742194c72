package main

import (
	"github.com/chasta/skyguard/internal/config"
	"github.com/chasta/skyguard/internal/store"
	"github.com/chasta/skyguard/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "skyguard-api",
	Short: "SkyGuard lightning protection estimator api",
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(seedCmd)
}

// setup reads the configuration, installs the global logger and opens the database.
// The returned func restores the previous logger.
func setup() (*config.Config, *gorm.DB, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, nil, err
	}

	logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
	undo := zap.ReplaceGlobals(logger)
	cleanup := func() {
		_ = logger.Sync()
		undo()
	}

	zap.S().Infof("Using config: %s", cfg)

	zap.S().Info("Initializing data store")
	db, err := store.InitDB(cfg)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	return cfg, db, cleanup, nil
}
