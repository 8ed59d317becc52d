package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uhppoted/uhppoted-lib/log"
	"github.com/uhppoted/uhppoted-sheets/schema"
)

func newAddNamedRangeCmd(o *options) *cobra.Command {
	title := ""
	name := ""
	startRow := int64(0)
	endRow := int64(0)
	startColumn := int64(0)
	endColumn := int64(0)

	cmd := &cobra.Command{
		Use:   "add-named-range",
		Short: "Names a block of cells in a worksheet",
		Long: `Names a block of cells in a worksheet. Row and column indices are zero based and the
end indices are exclusive. Omitted bounds leave the range unbounded on that side.

Example:
  uhppoted-sheets add-named-range --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \
                                  --sheet ACL --name Cards --start-row 1 --end-column 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is a required option")
			}

			s, _, err := o.open(cmd.Context())
			if err != nil {
				return err
			}

			sheet, err := worksheet(s, title)
			if err != nil {
				return err
			}

			fields := []schema.Field{
				schema.F("sheetId", sheet.ID()),
			}

			bounds := []struct {
				flag  string
				field string
				value int64
			}{
				{"start-row", "startRowIndex", startRow},
				{"end-row", "endRowIndex", endRow},
				{"start-column", "startColumnIndex", startColumn},
				{"end-column", "endColumnIndex", endColumn},
			}

			for _, b := range bounds {
				if cmd.Flags().Changed(b.flag) {
					fields = append(fields, schema.F(b.field, b.value))
				}
			}

			gridRange, err := schema.NewGridRange(fields...)
			if err != nil {
				return err
			}

			named, err := s.AddNamedRange(cmd.Context(), name, gridRange)
			if err != nil && named == nil {
				return describe(err)
			}

			log.Infof("Added named range '%v' (ID:%v) to '%v'", named.Name, named.NamedRangeId, sheet.Title())

			return describe(err)
		},
	}

	cmd.Flags().StringVar(&title, "sheet", title, "Worksheet name")
	cmd.Flags().StringVar(&name, "name", name, "Name for the range")
	cmd.Flags().Int64Var(&startRow, "start-row", startRow, "First row (zero based)")
	cmd.Flags().Int64Var(&endRow, "end-row", endRow, "Row after the last row")
	cmd.Flags().Int64Var(&startColumn, "start-column", startColumn, "First column (zero based)")
	cmd.Flags().Int64Var(&endColumn, "end-column", endColumn, "Column after the last column")

	return cmd
}
