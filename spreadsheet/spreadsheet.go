package spreadsheet

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/uhppoted-lib/log"
	"github.com/uhppoted/uhppoted-sheets/schema"
)

// Spreadsheet is the cached local state of one remote spreadsheet.
//
// The cached document is only ever replaced wholesale by a fetch from the remote service, never
// patched locally. A Spreadsheet is not safe for concurrent use: callers that share one across
// goroutines must serialise access themselves.
type Spreadsheet struct {
	remote     RemoteCollection
	id         string
	title      string
	options    GetOptions
	document   *sheets.Spreadsheet
	generation uint64
	dirty      bool
}

func (s *Spreadsheet) ID() string {
	return s.id
}

func (s *Spreadsheet) Title() string {
	return s.title
}

// Dirty is true if a mutation was applied to the remote spreadsheet after the cached document
// was last loaded.
func (s *Spreadsheet) Dirty() bool {
	return s.dirty
}

// Document returns the cached document serialized as JSON.
func (s *Spreadsheet) Document() ([]byte, error) {
	return json.Marshal(s.document)
}

// Reload fetches the spreadsheet and replaces the cached document. The cached document is left
// unchanged if the fetch fails.
func (s *Spreadsheet) Reload(ctx context.Context) error {
	return s.load(ctx)
}

func (s *Spreadsheet) load(ctx context.Context) error {
	document, err := s.remote.Get(ctx, s.id, s.options)
	if err != nil {
		return err
	} else if document == nil {
		return fmt.Errorf("spreadsheet %v: invalid response (%v)", s.id, document)
	}

	title := ""
	if document.Properties != nil {
		title = document.Properties.Title
	}

	s.document = document
	s.title = title
	s.generation++
	s.dirty = false

	log.Debugf("spreadsheet %v: loaded '%v' (%v sheets)", s.id, s.title, len(document.Sheets))

	return nil
}

// SheetIDByName returns the ID of the first sheet with the title.
func (s *Spreadsheet) SheetIDByName(name string) (int64, bool) {
	if p := s.find(func(p *sheets.SheetProperties) bool { return p.Title == name }); p != nil {
		return p.SheetId, true
	}

	return 0, false
}

func (s *Spreadsheet) SheetByName(name string) (*Sheet, bool) {
	if p := s.find(func(p *sheets.SheetProperties) bool { return p.Title == name }); p != nil {
		return newSheet(s, p), true
	}

	return nil, false
}

func (s *Spreadsheet) SheetByID(id int64) (*Sheet, bool) {
	if p := s.find(func(p *sheets.SheetProperties) bool { return p.SheetId == id }); p != nil {
		return newSheet(s, p), true
	}

	return nil, false
}

// Sheets returns a handle for each sheet in the cached document, in document order.
func (s *Spreadsheet) Sheets() []*Sheet {
	list := []*Sheet{}

	if s.document != nil {
		for _, sheet := range s.document.Sheets {
			if sheet != nil && sheet.Properties != nil {
				list = append(list, newSheet(s, sheet.Properties))
			}
		}
	}

	return list
}

// CreateSheet adds a sheet with the given sheet properties. The returned handle is built from
// the service's reply so it carries the server assigned sheet ID.
func (s *Spreadsheet) CreateSheet(ctx context.Context, fields ...schema.Field) (*Sheet, error) {
	properties, err := schema.NewSheetProperties(fields...)
	if err != nil {
		return nil, err
	}

	rq, err := schema.New(schema.AddSheetRequest, schema.F("properties", properties))
	if err != nil {
		return nil, err
	}

	response, err := s.BatchUpdate(ctx, map[string]any{"addSheet": rq})
	if response == nil {
		return nil, err
	}

	p := replyProperties(response, func(r *sheets.Response) *sheets.SheetProperties {
		if r.AddSheet != nil {
			return r.AddSheet.Properties
		}
		return nil
	})

	if p == nil {
		return nil, fmt.Errorf("spreadsheet %v: %w 'addSheet'", s.id, ErrMissingReply)
	}

	return newSheet(s, p), err
}

// DuplicateSheet copies the source sheet, optionally with a new name, index or ID.
func (s *Spreadsheet) DuplicateSheet(ctx context.Context, sourceID int64, fields ...schema.Field) (*Sheet, error) {
	rq, err := schema.NewDuplicateSheetRequest(sourceID, fields...)
	if err != nil {
		return nil, err
	}

	response, err := s.BatchUpdate(ctx, map[string]any{"duplicateSheet": rq})
	if response == nil {
		return nil, err
	}

	p := replyProperties(response, func(r *sheets.Response) *sheets.SheetProperties {
		if r.DuplicateSheet != nil {
			return r.DuplicateSheet.Properties
		}
		return nil
	})

	if p == nil {
		return nil, fmt.Errorf("spreadsheet %v: %w 'duplicateSheet'", s.id, ErrMissingReply)
	}

	return newSheet(s, p), err
}

func (s *Spreadsheet) DeleteSheet(ctx context.Context, id int64) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	rq, err := schema.NewDeleteSheetRequest(id)
	if err != nil {
		return nil, err
	}

	return s.BatchUpdate(ctx, map[string]any{"deleteSheet": rq})
}

// AddNamedRange names a grid range. The range must be a GridRange object.
func (s *Spreadsheet) AddNamedRange(ctx context.Context, name string, gridRange *schema.Object) (*sheets.NamedRange, error) {
	if gridRange == nil || gridRange.Variant() != schema.GridRange {
		return nil, fmt.Errorf("%w - expected GridRange, got %v", ErrInvalidRequest, gridRange)
	}

	named, err := schema.NewNamedRange(schema.F("name", name), schema.F("range", gridRange))
	if err != nil {
		return nil, err
	}

	rq, err := schema.New(schema.AddNamedRangeRequest, schema.F("namedRange", named))
	if err != nil {
		return nil, err
	}

	response, err := s.BatchUpdate(ctx, map[string]any{"addNamedRange": rq})
	if response == nil {
		return nil, err
	}

	for _, r := range response.Replies {
		if r != nil && r.AddNamedRange != nil && r.AddNamedRange.NamedRange != nil {
			return r.AddNamedRange.NamedRange, err
		}
	}

	return nil, fmt.Errorf("spreadsheet %v: %w 'addNamedRange'", s.id, ErrMissingReply)
}

// BatchUpdate submits the requests as a single atomic batch. Every structural change goes
// through here.
//
// If the service rejects the batch the error is returned unchanged and the cached document is
// not touched. If the batch succeeds the spreadsheet is reloaded before returning; a failed
// reload is reported as a *ReloadError along with the batch response.
func (s *Spreadsheet) BatchUpdate(ctx context.Context, requests ...map[string]any) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	list, err := toRequests(requests)
	if err != nil {
		return nil, err
	}

	log.Debugf("spreadsheet %v: batch update (%v requests)", s.id, len(list))

	response, err := s.remote.BatchApply(ctx, s.id, list)
	if err != nil {
		return nil, err
	}

	s.dirty = true

	if err := s.load(ctx); err != nil {
		return response, &ReloadError{SpreadsheetID: s.id, Err: err}
	}

	return response, nil
}

func (s *Spreadsheet) find(match func(*sheets.SheetProperties) bool) *sheets.SheetProperties {
	if s.document != nil {
		for _, sheet := range s.document.Sheets {
			if sheet != nil && sheet.Properties != nil && match(sheet.Properties) {
				return sheet.Properties
			}
		}
	}

	return nil
}

func replyProperties(response *sheets.BatchUpdateSpreadsheetResponse, f func(*sheets.Response) *sheets.SheetProperties) *sheets.SheetProperties {
	for _, r := range response.Replies {
		if r != nil {
			if p := f(r); p != nil {
				return p
			}
		}
	}

	return nil
}
