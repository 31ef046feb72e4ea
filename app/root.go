// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/CryptoYield/CryptoYield/internal/config"
	"github.com/CryptoYield/CryptoYield/internal/logger"
)

var (
	configPath string // Path to the configuration directory
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "cryptoyield",
		Short: "CryptoYield is the administration service of the CryptoYield platform",
		Long: `CryptoYield is the administration service of the CryptoYield platform.
It runs the first time setup, guards the platform until it is initialized
and performs admin only resets with a backup of every emptied table.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			if cfg, err = config.ReadConfig(configPath); err != nil {
				return err
			}

			return logger.Init(cfg.Log)
		},
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "directory holding main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
