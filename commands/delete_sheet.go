package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uhppoted/uhppoted-lib/log"
)

func newDeleteSheetCmd(o *options) *cobra.Command {
	title := ""

	cmd := &cobra.Command{
		Use:   "delete-sheet",
		Short: "Deletes a worksheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("--sheet is a required option")
			}

			s, _, err := o.open(cmd.Context())
			if err != nil {
				return err
			}

			id, ok := s.SheetIDByName(title)
			if !ok {
				return fmt.Errorf("unable to identify worksheet '%s' in spreadsheet '%s'", title, s.Title())
			}

			if _, err := s.DeleteSheet(cmd.Context(), id); err != nil {
				return describe(err)
			}

			log.Infof("Deleted worksheet '%v' (ID:%v) from '%v'", title, id, s.Title())

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "sheet", title, "Worksheet to delete")

	return cmd
}
