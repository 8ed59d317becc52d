package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uhppoted/uhppoted-lib/log"
	"github.com/uhppoted/uhppoted-sheets/schema"
	"github.com/uhppoted/uhppoted-sheets/spreadsheet"
	"github.com/uhppoted/uhppoted-sheets/tsv"
)

func newPutCmd(o *options) *cobra.Command {
	title := ""
	area := "A1"
	file := ""
	clearFirst := false
	appendRows := false

	cmd := &cobra.Command{
		Use:   "put",
		Short: "Uploads a TSV file to a Google Sheets worksheet",
		Long: `Uploads a TSV file to a Google Sheets worksheet.

The TSV rows (header included) are written starting at the top left cell of the range,
or appended after the last row of the table in the range with --append.

Example:
  uhppoted-sheets put --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \
                      --sheet AsIs --range "A1" --file "example.tsv" --clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(file) == "" {
				return fmt.Errorf("--file is a required option")
			}

			if clearFirst && appendRows {
				return fmt.Errorf("--clear and --append are mutually exclusive")
			}

			f, err := os.Open(file)
			if err != nil {
				return err
			}

			defer f.Close()

			rows, err := tsv.Parse(f)
			if err != nil {
				return fmt.Errorf("invalid TSV file (%w)", err)
			}

			s, cfg, err := o.open(cmd.Context())
			if err != nil {
				return err
			}

			sheet, err := worksheet(s, title)
			if err != nil {
				return err
			}

			body, err := schema.NewValueRange(schema.F("values", rows))
			if err != nil {
				return err
			}

			options := spreadsheet.ValueOptions{
				ValueInputOption: cfg.ValueInputOption,
			}

			if clearFirst {
				if _, err := sheet.ClearCells(cmd.Context(), ""); err != nil {
					return describe(err)
				}
			}

			if appendRows {
				options.InsertDataOption = "INSERT_ROWS"
				if _, err := sheet.AppendCells(cmd.Context(), area, options, body); err != nil {
					return describe(err)
				}
			} else if _, err := sheet.WriteCells(cmd.Context(), area, options, body); err != nil {
				return describe(err)
			}

			log.Infof("Uploaded TSV file %v to %v", file, sheet.ResolveRange(area))

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "sheet", title, "Worksheet name e.g. 'AsIs'")
	cmd.Flags().StringVar(&area, "range", area, "Range within the worksheet e.g. 'A2:E'")
	cmd.Flags().StringVar(&file, "file", file, "TSV file")
	cmd.Flags().BoolVar(&clearFirst, "clear", clearFirst, "Clears the worksheet before writing the TSV rows")
	cmd.Flags().BoolVar(&appendRows, "append", appendRows, "Appends the TSV rows to the table in the range")

	return cmd
}
