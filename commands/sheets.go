package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSheetsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "Lists the worksheets in a spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := o.open(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)

			fmt.Fprintf(w, "%v\n", s.Title())
			for _, sheet := range s.Sheets() {
				hidden := ""
				if sheet.Hidden() {
					hidden = "hidden"
				}

				fmt.Fprintf(w, "  %v\t%v\t%vx%v\t%v\n", sheet.ID(), sheet.Title(), sheet.Rows(), sheet.Columns(), hidden)
			}

			return w.Flush()
		},
	}
}
