package main

import (
	"fmt"

	"github.com/kubev2v/patchcord-planner/internal/store"
	"github.com/kubev2v/patchcord-planner/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the rack store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, undo, err := setup()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		defer undo()

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			return fmt.Errorf("initializing data store: %w", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := migrations.MigrateStore(db, cfg.Database.Type); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		zap.S().Info("Db migrated")

		return nil
	},
}
