package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFindCmd(o *options) *cobra.Command {
	title := ""
	area := ""

	cmd := &cobra.Command{
		Use:   "find <value>",
		Short: "Finds the first cell in a worksheet range with the given value",
		Long: `Finds the first cell in a worksheet range with exactly the given (formatted) value,
scanning row by row.

Example:
  uhppoted-sheets find --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \
                       --sheet ACL --range "A2:A" 10058400`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := o.open(cmd.Context())
			if err != nil {
				return err
			}

			sheet, err := worksheet(s, title)
			if err != nil {
				return err
			}

			cell, ok, err := sheet.FindCell(cmd.Context(), args[0], area)
			if err != nil {
				return describe(err)
			} else if !ok {
				return fmt.Errorf("'%v' not found in %v", args[0], sheet.ResolveRange(area))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%v!%v\n", sheet.Title(), a1(area, cell))

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "sheet", title, "Worksheet name")
	cmd.Flags().StringVar(&area, "range", area, "Range to search e.g. 'A2:E'. Defaults to the whole worksheet")

	return cmd
}
