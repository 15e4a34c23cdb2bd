package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	apiserver "github.com/kubev2v/patchcord-planner/internal/api_server"
	"github.com/kubev2v/patchcord-planner/internal/config"
	"github.com/kubev2v/patchcord-planner/internal/rackplan"
	"github.com/kubev2v/patchcord-planner/internal/store"
	"github.com/kubev2v/patchcord-planner/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the planner api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, undo, err := setup()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		defer undo()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		directory, closeFn, err := newDirectory(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		addresses := []string{cfg.Service.Address, cfg.Service.MetricsAddress}
		if cfg.Service.WebRoot != "" {
			addresses = append(addresses, cfg.Service.WebAddress)
		}
		listeners, err := newListeners(addresses...)
		if err != nil {
			return err
		}
		listener, metricsListener := listeners[0], listeners[1]

		var web *apiserver.WebServer
		if cfg.Service.WebRoot != "" {
			if web, err = apiserver.NewWebServer(cfg.Service.WebRoot, cfg.Service.LogLevel, listeners[2]); err != nil {
				closeListeners(listeners...)
				return err
			}
			zap.S().Infof("Web UI served from %s on %s", cfg.Service.WebRoot, listeners[2].Addr())
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return apiserver.New(cfg, directory, listener).Run(ctx)
		})
		g.Go(func() error {
			return apiserver.NewMetricServer(cfg.Service.MetricsAddress, metricsListener, directory).Run(ctx)
		})
		if web != nil {
			g.Go(func() error {
				return web.Run(ctx)
			})
		}

		return g.Wait()
	},
}

// newListeners opens one listener per address. On failure the listeners
// already opened are closed.
func newListeners(addresses ...string) ([]net.Listener, error) {
	listeners := make([]net.Listener, 0, len(addresses))
	for _, address := range addresses {
		l, err := newListener(address)
		if err != nil {
			closeListeners(listeners...)
			return nil, fmt.Errorf("creating listener on %s: %w", address, err)
		}
		listeners = append(listeners, l)
	}
	return listeners, nil
}

func closeListeners(listeners ...net.Listener) {
	for _, l := range listeners {
		_ = l.Close()
	}
}

// newDirectory picks the rack directory of the configured source. The
// returned func releases it.
func newDirectory(ctx context.Context, cfg *config.Config) (rackplan.Directory, func(), error) {
	rackRange := rackplan.Range{Start: cfg.Rack.RangeStart, End: cfg.Rack.RangeEnd}
	if err := rackRange.Validate(); err != nil {
		return nil, nil, err
	}

	if cfg.Rack.Source != config.RackSourceDB {
		if cfg.Rack.PlanFile == "" {
			zap.S().Infof("No rack plan configured, using the whole range %s", rackRange)
			return rackplan.DefaultPlan(rackRange), func() {}, nil
		}
		return rackplan.LoadOrDefault(cfg.Rack.PlanFile, rackRange), func() {}, nil
	}

	zap.S().Info("Initializing data store")
	db, err := store.InitDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing data store: %w", err)
	}
	if err := migrations.MigrateStore(db, cfg.Database.Type); err != nil {
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	s := store.NewStore(db)
	count, err := s.Rack().Count(ctx)
	if err != nil {
		_ = s.Close()
		return nil, nil, err
	}
	if count == 0 {
		zap.S().Warn("The rack store is empty, every lookup will fail until racks are imported")
	}
	return store.NewRackDirectory(s), func() { _ = s.Close() }, nil
}
