package main

import (
	"errors"
	"fmt"

	"github.com/kubev2v/patchcord-planner/internal/rackplan"
	"github.com/kubev2v/patchcord-planner/internal/service"
	"github.com/kubev2v/patchcord-planner/internal/store"
	"github.com/kubev2v/patchcord-planner/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var planFile string

var importRacksCmd = &cobra.Command{
	Use:   "import-racks -f FILE",
	Short: "Replace the racks of the store with those of a rack plan spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		if planFile == "" {
			return errors.New("a rack plan file is required")
		}

		cfg, undo, err := setup()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		defer undo()

		plan, err := rackplan.LoadExcel(planFile, rackplan.Range{Start: cfg.Rack.RangeStart, End: cfg.Rack.RangeEnd})
		if err != nil {
			return err
		}

		db, err := store.InitDB(cfg)
		if err != nil {
			return fmt.Errorf("initializing data store: %w", err)
		}
		s := store.NewStore(db)
		defer s.Close()

		if err := migrations.MigrateStore(db, cfg.Database.Type); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		n, err := service.NewRackService(s).Import(cmd.Context(), plan)
		if err != nil {
			return err
		}
		zap.S().Infof("Imported %d racks from %s", n, planFile)

		return nil
	},
}

func init() {
	importRacksCmd.Flags().StringVarP(&planFile, "file", "f", "", "Rack plan spreadsheet (.xlsx)")
}
