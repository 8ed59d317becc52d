// Package tsv converts between Sheets value ranges and tab separated files.
package tsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/sheets/v4"
)

// MakeTSV writes the value range as a TSV file. The first row is the header and determines
// the number of columns. Short rows are padded, blank rows are skipped and any cells beyond the
// header width are dropped.
func MakeTSV(f io.Writer, data *sheets.ValueRange) error {
	if data == nil || len(data.Values) == 0 {
		return fmt.Errorf("empty sheet")
	}

	// ... header
	header := make([]string, len(data.Values[0]))
	for i, v := range data.Values[0] {
		header[i] = clean(v)
	}

	if len(header) == 0 {
		return fmt.Errorf("missing/invalid header row")
	}

	// ... records
	records := [][]string{}
	for _, row := range data.Values[1:] {
		record := make([]string, len(header))
		blank := true

		for i := range header {
			if i < len(row) {
				record[i] = clean(row[i])
			}

			if record[i] != "" {
				blank = false
			}
		}

		if !blank {
			records = append(records, record)
		}
	}

	// ... write to file
	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(header); err != nil {
		return err
	}

	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

// Parse reads a TSV file into rows of cell values, header included.
func Parse(f io.Reader) ([][]any, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("TSV file is empty")
	}

	rows := make([][]any, 0, len(records))
	for _, record := range records {
		row := make([]any, len(record))
		for i, v := range record {
			row[i] = v
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func clean(v any) string {
	if v == nil {
		return ""
	}

	return strings.TrimSpace(fmt.Sprintf("%v", v))
}
