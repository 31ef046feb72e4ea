package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CryptoYield/CryptoYield/internal/daemon"
	"github.com/CryptoYield/CryptoYield/internal/db/controller/system"
	"github.com/CryptoYield/CryptoYield/internal/setup"
)

func init() { //nolint: gochecknoinits
	f := setupCmd.Flags()

	f.StringVar(&wizard.Admin.Email, "admin-email", "", "administrator email")
	f.StringVar(&wizard.Admin.Password, "admin-password", "", "administrator password")
	f.StringVar(&wizard.Admin.ConfirmPassword, "confirm-password", "", "administrator password confirmation")

	f.StringVar(&wizard.Site.Name, "site-name", wizard.Site.Name, "site name")
	f.StringVar(&wizard.Site.Description, "site-description", wizard.Site.Description, "site description")

	f.StringVar(&wizard.Email.SMTPHost, "smtp-host", "", "SMTP host")
	f.StringVar(&wizard.Email.SMTPPort, "smtp-port", "", "SMTP port")
	f.StringVar(&wizard.Email.SMTPUser, "smtp-user", "", "SMTP user")
	f.StringVar(&wizard.Email.SMTPPassword, "smtp-password", "", "SMTP password")
	f.StringVar(&wizard.Email.FromEmail, "from-email", "", "sender address of outgoing mail")
	f.StringVar(&wizard.Email.FromName, "from-name", "", "sender name of outgoing mail")

	for _, code := range system.DefaultCurrencies {
		gw := new(system.Gateway)
		paymentFlags[code] = gw

		f.BoolVar(&gw.Enabled, code+"-enabled", wizard.Payment[code].Enabled, "accept "+code+" payments")
		f.StringVar(&gw.Address, code+"-address", "", code+" receiving address")
	}

	_ = setupCmd.MarkFlagRequired("admin-email")
	_ = setupCmd.MarkFlagRequired("admin-password")

	rootCmd.AddCommand(setupCmd)
}

var (
	wizard = setup.NewWizard()

	// paymentFlags holds the gateway flags per default currency.
	paymentFlags = map[string]*system.Gateway{}

	setupCmd = &cobra.Command{
		Use:   "setup",
		Short: "Run the first time setup",
		Long: `Run the first time setup: create the administrator, store the site,
email and payment settings, seed the default catalog and mark the system initialized.
Without --confirm-password the password is taken as confirmed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("confirm-password") {
				wizard.Admin.ConfirmPassword = wizard.Admin.Password
			}

			for code, gw := range paymentFlags {
				wizard.Payment[code] = *gw
			}

			for !wizard.IsFinal() {
				if err := wizard.Next(); err != nil {
					return err
				}
			}

			services, err := daemon.Open(&cfg)
			if err != nil {
				return err
			}

			result, err := wizard.Submit(cmd.Context(), services.Setup)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\nadministrator: %s (%s)\n",
				"System setup completed successfully", result.AdminUser.Email, result.AdminUser.ID)

			return err
		},
	}
)
