package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uhppoted/uhppoted-lib/log"
	"github.com/uhppoted/uhppoted-sheets/schema"
)

func newAddSheetCmd(o *options) *cobra.Command {
	title := ""
	index := int64(0)
	rows := int64(0)
	columns := int64(0)
	hidden := false

	cmd := &cobra.Command{
		Use:   "add-sheet",
		Short: "Adds a worksheet to a spreadsheet",
		Long: `Adds a worksheet to a spreadsheet.

Example:
  uhppoted-sheets add-sheet --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \
                            --title Audit --rows 1000 --columns 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("--title is a required option")
			}

			fields := []schema.Field{
				schema.F("title", title),
			}

			if cmd.Flags().Changed("index") {
				fields = append(fields, schema.F("index", index))
			}

			if hidden {
				fields = append(fields, schema.F("hidden", true))
			}

			if rows > 0 || columns > 0 {
				grid := []schema.Field{}
				if rows > 0 {
					grid = append(grid, schema.F("rowCount", rows))
				}

				if columns > 0 {
					grid = append(grid, schema.F("columnCount", columns))
				}

				properties, err := schema.NewGridProperties(grid...)
				if err != nil {
					return err
				}

				fields = append(fields, schema.F("gridProperties", properties))
			}

			s, _, err := o.open(cmd.Context())
			if err != nil {
				return err
			}

			sheet, err := s.CreateSheet(cmd.Context(), fields...)
			if err != nil && sheet == nil {
				return describe(err)
			}

			log.Infof("Added worksheet '%v' (ID:%v) to '%v'", sheet.Title(), sheet.ID(), s.Title())

			return describe(err)
		},
	}

	cmd.Flags().StringVar(&title, "title", title, "Worksheet title")
	cmd.Flags().Int64Var(&index, "index", index, "Worksheet position (0 is the first tab)")
	cmd.Flags().Int64Var(&rows, "rows", rows, "Number of rows")
	cmd.Flags().Int64Var(&columns, "columns", columns, "Number of columns")
	cmd.Flags().BoolVar(&hidden, "hidden", hidden, "Creates the worksheet hidden")

	return cmd
}
