package app

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/CryptoYield/CryptoYield/internal/daemon"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(backupsCmd)
}

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List the backups written by system resets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		services, err := daemon.Open(&cfg)
		if err != nil {
			return err
		}

		list, err := services.Reset.ListBackups(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "KEY\tCREATED\tTABLES")

		for _, b := range list {
			tables := make([]string, 0, len(b.Tables))
			for _, t := range b.Tables {
				tables = append(tables, fmt.Sprintf("%s=%d", t.Name, t.Rows))
			}

			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", b.Key, b.CreatedAt.UTC().Format(time.RFC3339), strings.Join(tables, ","))
		}

		return w.Flush()
	},
}
