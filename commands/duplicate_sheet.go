package commands

import (
	"github.com/spf13/cobra"

	"github.com/uhppoted/uhppoted-lib/log"
	"github.com/uhppoted/uhppoted-sheets/schema"
)

func newDuplicateSheetCmd(o *options) *cobra.Command {
	source := ""
	title := ""
	index := int64(0)

	cmd := &cobra.Command{
		Use:   "duplicate-sheet",
		Short: "Makes a copy of a worksheet",
		Long: `Makes a copy of a worksheet in the same spreadsheet.

Example:
  uhppoted-sheets duplicate-sheet --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \
                                  --sheet ACL --title "ACL (backup)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := o.open(cmd.Context())
			if err != nil {
				return err
			}

			original, err := worksheet(s, source)
			if err != nil {
				return err
			}

			fields := []schema.Field{}
			if title != "" {
				fields = append(fields, schema.F("newSheetName", title))
			}

			if cmd.Flags().Changed("index") {
				fields = append(fields, schema.F("insertSheetIndex", index))
			}

			sheet, err := s.DuplicateSheet(cmd.Context(), original.ID(), fields...)
			if err != nil && sheet == nil {
				return describe(err)
			}

			log.Infof("Copied worksheet '%v' to '%v' (ID:%v)", original.Title(), sheet.Title(), sheet.ID())

			return describe(err)
		},
	}

	cmd.Flags().StringVar(&source, "sheet", source, "Worksheet to copy")
	cmd.Flags().StringVar(&title, "title", title, "Title for the copy. Defaults to 'Copy of <sheet>'")
	cmd.Flags().Int64Var(&index, "index", index, "Position for the copy (0 is the first tab)")

	return cmd
}
