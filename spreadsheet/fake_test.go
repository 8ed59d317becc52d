package spreadsheet

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// fake is an in-memory RemoteCollection that applies sheet level batch requests to a single
// spreadsheet document.
type fake struct {
	document *sheets.Spreadsheet
	values   map[string]*sheets.ValueRange
	nextID   int64

	getErr   error
	batchErr error

	gets     int
	last     *sheets.Spreadsheet
	batches  [][]*sheets.Request
	reads    []string
	options  []ValueOptions
	updates  map[string]*sheets.ValueRange
	appended map[string]*sheets.ValueRange
	cleared  []string
}

func newFake(id, title string, sheetTitles ...string) *fake {
	f := fake{
		document: &sheets.Spreadsheet{
			SpreadsheetId: id,
			Properties:    &sheets.SpreadsheetProperties{Title: title},
		},
		values:   map[string]*sheets.ValueRange{},
		updates:  map[string]*sheets.ValueRange{},
		appended: map[string]*sheets.ValueRange{},
		nextID:   1000,
	}

	for i, t := range sheetTitles {
		f.document.Sheets = append(f.document.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{
				SheetId: int64(i),
				Title:   t,
				Index:   int64(i),
				GridProperties: &sheets.GridProperties{
					RowCount:    1000,
					ColumnCount: 26,
				},
			},
		})
	}

	return &f
}

func (f *fake) Get(ctx context.Context, spreadsheetID string, options GetOptions) (*sheets.Spreadsheet, error) {
	f.gets++

	if f.getErr != nil {
		return nil, f.getErr
	}

	if spreadsheetID != f.document.SpreadsheetId {
		return nil, fmt.Errorf("404 spreadsheet %v not found", spreadsheetID)
	}

	f.last = clone(f.document)

	return f.last, nil
}

func (f *fake) BatchApply(ctx context.Context, spreadsheetID string, requests []*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	f.batches = append(f.batches, requests)

	if f.batchErr != nil {
		return nil, f.batchErr
	}

	document := clone(f.document)
	response := sheets.BatchUpdateSpreadsheetResponse{
		SpreadsheetId: spreadsheetID,
	}

	for _, rq := range requests {
		switch {
		case rq.AddSheet != nil:
			p := clone(rq.AddSheet.Properties)
			if p == nil {
				p = &sheets.SheetProperties{}
			}

			p.SheetId = f.nextID
			p.Index = int64(len(document.Sheets))
			if p.Title == "" {
				p.Title = fmt.Sprintf("Sheet%v", len(document.Sheets)+1)
			}
			f.nextID++

			document.Sheets = append(document.Sheets, &sheets.Sheet{Properties: p})
			response.Replies = append(response.Replies, &sheets.Response{
				AddSheet: &sheets.AddSheetResponse{Properties: clone(p)},
			})

		case rq.DuplicateSheet != nil:
			var source *sheets.SheetProperties
			for _, s := range document.Sheets {
				if s.Properties.SheetId == rq.DuplicateSheet.SourceSheetId {
					source = s.Properties
				}
			}

			if source == nil {
				return nil, fmt.Errorf("400 no sheet with id %v", rq.DuplicateSheet.SourceSheetId)
			}

			p := clone(source)
			p.SheetId = f.nextID
			p.Index = int64(len(document.Sheets))
			p.Title = rq.DuplicateSheet.NewSheetName
			if p.Title == "" {
				p.Title = fmt.Sprintf("Copy of %v", source.Title)
			}
			f.nextID++

			document.Sheets = append(document.Sheets, &sheets.Sheet{Properties: p})
			response.Replies = append(response.Replies, &sheets.Response{
				DuplicateSheet: &sheets.DuplicateSheetResponse{Properties: clone(p)},
			})

		case rq.DeleteSheet != nil:
			list := []*sheets.Sheet{}
			for _, s := range document.Sheets {
				if s.Properties.SheetId != rq.DeleteSheet.SheetId {
					list = append(list, s)
				}
			}

			if len(list) == len(document.Sheets) {
				return nil, fmt.Errorf("400 no sheet with id %v", rq.DeleteSheet.SheetId)
			}

			document.Sheets = list
			response.Replies = append(response.Replies, &sheets.Response{})

		case rq.AddNamedRange != nil:
			named := clone(rq.AddNamedRange.NamedRange)
			named.NamedRangeId = fmt.Sprintf("nr%v", f.nextID)
			f.nextID++

			document.NamedRanges = append(document.NamedRanges, named)
			response.Replies = append(response.Replies, &sheets.Response{
				AddNamedRange: &sheets.AddNamedRangeResponse{NamedRange: clone(named)},
			})

		default:
			return nil, fmt.Errorf("400 unsupported request")
		}
	}

	f.document = document

	return &response, nil
}

func (f *fake) RangeGet(ctx context.Context, spreadsheetID string, rng string, options ValueOptions) (*sheets.ValueRange, error) {
	f.reads = append(f.reads, rng)
	f.options = append(f.options, options)

	if v, ok := f.values[rng]; ok {
		return v, nil
	}

	return &sheets.ValueRange{Range: rng}, nil
}

func (f *fake) RangeUpdate(ctx context.Context, spreadsheetID string, rng string, options ValueOptions, body *sheets.ValueRange) (*sheets.UpdateValuesResponse, error) {
	f.updates[rng] = body
	f.options = append(f.options, options)

	return &sheets.UpdateValuesResponse{
		SpreadsheetId: spreadsheetID,
		UpdatedRange:  rng,
		UpdatedRows:   int64(len(body.Values)),
	}, nil
}

func (f *fake) RangeAppend(ctx context.Context, spreadsheetID string, rng string, options ValueOptions, body *sheets.ValueRange) (*sheets.AppendValuesResponse, error) {
	f.appended[rng] = body
	f.options = append(f.options, options)

	return &sheets.AppendValuesResponse{
		SpreadsheetId: spreadsheetID,
		TableRange:    rng,
	}, nil
}

func (f *fake) RangeClear(ctx context.Context, spreadsheetID string, rng string) (*sheets.ClearValuesResponse, error) {
	f.cleared = append(f.cleared, rng)

	return &sheets.ClearValuesResponse{
		SpreadsheetId: spreadsheetID,
		ClearedRange:  rng,
	}, nil
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	var c T
	if err := json.Unmarshal(b, &c); err != nil {
		panic(err)
	}

	return &c
}
