package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/uhppoted/uhppoted-lib/log"
	lib "github.com/uhppoted/uhppoted-lib/os"
	"github.com/uhppoted/uhppoted-sheets/spreadsheet"
	"github.com/uhppoted/uhppoted-sheets/tsv"
)

func newGetCmd(o *options) *cobra.Command {
	title := ""
	area := ""
	file := time.Now().Format("2006-01-02T150405.tsv")

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Downloads a Google Sheets worksheet range to a TSV file",
		Long: `Downloads a Google Sheets worksheet range to a TSV file.

Example:
  uhppoted-sheets --debug get --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \
                              --sheet ACL --range "A2:E" --file "example.tsv"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := o.open(cmd.Context())
			if err != nil {
				return err
			}

			sheet, err := worksheet(s, title)
			if err != nil {
				return err
			}

			response, err := sheet.ReadCells(cmd.Context(), area, spreadsheet.ValueOptions{})
			if err != nil {
				return describe(fmt.Errorf("unable to retrieve data from sheet (%w)", err))
			}

			if len(response.Values) == 0 {
				return fmt.Errorf("no data in spreadsheet/range")
			}

			dir := filepath.Dir(file)
			if err := os.MkdirAll(dir, 0770); err != nil {
				return err
			}

			tmp, err := os.CreateTemp(dir, ".sheets-*.tsv")
			if err != nil {
				return err
			}

			defer func() {
				tmp.Close()
				os.Remove(tmp.Name())
			}()

			if err := tsv.MakeTSV(tmp, response); err != nil {
				return fmt.Errorf("error creating TSV file (%w)", err)
			}

			tmp.Close()

			if err := lib.Rename(tmp.Name(), file); err != nil {
				return err
			}

			log.Infof("Retrieved %v to file %s", sheet.ResolveRange(area), file)

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "sheet", title, "Worksheet name e.g. 'ACL'")
	cmd.Flags().StringVar(&area, "range", area, "Range within the worksheet e.g. 'A2:E'. Defaults to the whole worksheet")
	cmd.Flags().StringVar(&file, "file", file, "TSV file name. Defaults to '<yyyy-mm-ddTHHmmss>.tsv'")

	return cmd
}
