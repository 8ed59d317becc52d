package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uhppoted/uhppoted-lib/log"
	"github.com/uhppoted/uhppoted-sheets/gsheets"
)

func newAuthoriseCmd(o *options) *cobra.Command {
	drive := false

	cmd := &cobra.Command{
		Use:   "authorise",
		Short: "Authorises uhppoted-sheets to access Google Sheets",
		Long: `Authorises uhppoted-sheets to access Google Sheets spreadsheets.

Prints a Google authorisation URL and waits for the authorisation code, then stores
the OAuth2 tokens in <workdir>/.google for use by the other commands.

Example:
  uhppoted-sheets authorise --credentials "credentials.json"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.resolve()
			if err != nil {
				return err
			}

			scopes := []string{gsheets.SHEETS}
			if drive {
				scopes = append(scopes, gsheets.DRIVE)
			}

			for _, scope := range scopes {
				if err := gsheets.Authorise(cfg.Credentials, scope, cfg.TokensDir(), cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("authorisation error (%w)", err)
				}

				log.Infof("Authorised %v", scope)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&drive, "drive", drive, "Also authorises read-only access to the spreadsheet revision history")

	return cmd
}
