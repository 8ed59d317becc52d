package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uhppoted/uhppoted-lib/log"
	"github.com/uhppoted/uhppoted-sheets/gsheets"
)

func newRevisionCmd(o *options) *cobra.Command {
	check := false

	cmd := &cobra.Command{
		Use:   "revision",
		Short: "Displays the latest revision of a spreadsheet",
		Long: `Displays the latest revision of a spreadsheet from the Google Drive revision history.

With --check the revision is compared with the revision recorded in the working directory by the
previous run and the command fails if the spreadsheet is unchanged. Requires 'authorise --drive'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.resolve()
			if err != nil {
				return err
			}

			id, err := spreadsheetID(o.url)
			if err != nil {
				return err
			}

			client, err := gsheets.Authorize(cfg.Credentials, gsheets.DRIVE, cfg.TokensDir())
			if err != nil {
				return fmt.Errorf("authentication/authorization error (%w)", err)
			}

			revision, err := gsheets.LatestRevision(cmd.Context(), client, id)
			if err != nil {
				return describe(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%v  %v\n", revision.ID, revision.Modified.Format("2006-01-02 15:04:05 MST"))

			if check {
				file := filepath.Join(cfg.Workdir, fmt.Sprintf("%s.revision", id))

				if previous, err := os.ReadFile(file); err == nil && strings.TrimSpace(string(previous)) == revision.ID {
					return fmt.Errorf("spreadsheet unchanged since revision %v", revision.ID)
				}

				if err := os.MkdirAll(cfg.Workdir, 0770); err != nil {
					return err
				}

				if err := os.WriteFile(file, []byte(revision.ID), 0660); err != nil {
					return err
				}

				log.Infof("Updated revision file %v", file)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", check, "Fails if the spreadsheet has not changed since the last check")

	return cmd
}
