package main

import (
	"cabin3d/internal/config"
	"cabin3d/internal/game"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the playable demo",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg, err := config.LoadFile(flagConfig)
		if err != nil {
			return err
		}

		g, err := game.NewGame(cfg, flagBackend, log)
		if err != nil {
			return err
		}
		return g.Run()
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.RunE = playCmd.RunE
}
