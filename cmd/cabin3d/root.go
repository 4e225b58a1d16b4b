package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagConfig  string
	flagBackend string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:          "cabin3d",
	Short:        "First-person cabin demo for the movement and collision core",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "cabin3d.yaml", "tuning config file (missing file uses defaults)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "light", "movement backend: light or physics")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

func newLogger() (*zap.Logger, error) {
	if flagVerbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}
