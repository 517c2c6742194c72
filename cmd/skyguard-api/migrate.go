package main

import (
	"context"

	"github.com/chasta/skyguard/internal/store"
	"github.com/chasta/skyguard/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var autoMigrate bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()
		defer zap.S().Info("Db migrated")

		s := store.NewStore(db)
		defer s.Close()

		if autoMigrate {
			if err := s.InitialMigration(context.Background()); err != nil {
				zap.S().Fatalw("running initial migration", "error", err)
			}
			return nil
		}

		if err := migrations.MigrateStore(db, cfg.Service.MigrationFolder); err != nil {
			zap.S().Fatalw("running migrations", "error", err)
		}

		version, err := migrations.Version(db)
		if err != nil {
			return err
		}
		zap.S().Infof("schema version %d", version)

		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&autoMigrate, "auto", false, "Create the schema from the gorm models instead of the sql migrations (development only)")
}
