package main

import (
	"net"

	"github.com/kubev2v/patchcord-planner/internal/config"
	"github.com/kubev2v/patchcord-planner/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "planner-api",
	Short: "Patch-cord planner API service",
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(importRacksCmd)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".env", "Path to a .env file applied before the environment")
}

// setup loads the configuration and installs the global logger. The returned
// func flushes the logger.
func setup() (*config.Config, func(), error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	undo := log.Setup(cfg.Service.LogLevel)
	zap.S().Infof("Using config: %s", cfg)
	return cfg, undo, nil
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
