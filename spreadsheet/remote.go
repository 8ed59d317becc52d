package spreadsheet

import (
	"context"

	"google.golang.org/api/sheets/v4"
)

// RemoteCollection is the capability for issuing calls against the remote spreadsheets service.
// Implementations own transport, authentication and any retry policy. Errors are returned to
// the caller of the spreadsheet model unchanged.
type RemoteCollection interface {
	Get(ctx context.Context, spreadsheetID string, options GetOptions) (*sheets.Spreadsheet, error)
	BatchApply(ctx context.Context, spreadsheetID string, requests []*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error)
	RangeGet(ctx context.Context, spreadsheetID string, rng string, options ValueOptions) (*sheets.ValueRange, error)
	RangeUpdate(ctx context.Context, spreadsheetID string, rng string, options ValueOptions, body *sheets.ValueRange) (*sheets.UpdateValuesResponse, error)
	RangeAppend(ctx context.Context, spreadsheetID string, rng string, options ValueOptions, body *sheets.ValueRange) (*sheets.AppendValuesResponse, error)
	RangeClear(ctx context.Context, spreadsheetID string, rng string) (*sheets.ClearValuesResponse, error)
}

// GetOptions are the optional parameters for fetching a spreadsheet.
type GetOptions struct {
	Ranges          []string
	IncludeGridData bool
	Fields          string
}

// ValueOptions are the optional parameters for range-level reads and writes. Empty strings
// leave the service default in place.
type ValueOptions struct {
	MajorDimension          string // ROWS, COLUMNS
	ValueRenderOption       string // FORMATTED_VALUE, UNFORMATTED_VALUE, FORMULA
	DateTimeRenderOption    string // SERIAL_NUMBER, FORMATTED_STRING
	ValueInputOption        string // RAW, USER_ENTERED
	InsertDataOption        string // OVERWRITE, INSERT_ROWS
	IncludeValuesInResponse bool
}

const DefaultValueInputOption = "RAW"
