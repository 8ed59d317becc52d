package spreadsheet

import (
	"context"
	"fmt"
	"strings"
)

// Session is the entry point to the spreadsheet model, bound to a single RemoteCollection.
type Session struct {
	remote RemoteCollection
}

func NewSession(remote RemoteCollection) *Session {
	return &Session{
		remote: remote,
	}
}

// GetSpreadsheet fetches the spreadsheet and returns its cached state.
func (s *Session) GetSpreadsheet(ctx context.Context, id string, options GetOptions) (*Spreadsheet, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("invalid spreadsheet ID '%v'", id)
	}

	spreadsheet := Spreadsheet{
		remote:  s.remote,
		id:      id,
		options: options,
	}

	if err := spreadsheet.load(ctx); err != nil {
		return nil, err
	}

	return &spreadsheet, nil
}

// GetSpreadsheetByName is not supported by the Sheets API.
func (s *Session) GetSpreadsheetByName(ctx context.Context, name string) (*Spreadsheet, error) {
	return nil, fmt.Errorf("get spreadsheet by name: %w", ErrNotImplemented)
}

func (s *Session) CreateSpreadsheet(ctx context.Context, title string) (*Spreadsheet, error) {
	return nil, fmt.Errorf("create spreadsheet: %w", ErrNotImplemented)
}

func (s *Session) AllSpreadsheets(ctx context.Context) ([]*Spreadsheet, error) {
	return nil, fmt.Errorf("list spreadsheets: %w", ErrNotImplemented)
}
