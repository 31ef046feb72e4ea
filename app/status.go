package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CryptoYield/CryptoYield/internal/daemon"
	"github.com/CryptoYield/CryptoYield/internal/db/controller/system"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print whether the system is initialized",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := daemon.OpenDB(&cfg)
		if err != nil {
			return err
		}

		state, err := system.ReadState(db)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), state)

		return err
	},
}
