package spreadsheet

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/uhppoted-sheets/schema"
)

// Sheet is a snapshot of one sheet's properties, taken from the parent Spreadsheet's cached
// document when the handle was created.
//
// Handles are not updated when the parent reloads. Stale reports whether the parent has
// reloaded since and Refresh returns a current handle.
type Sheet struct {
	parent     *Spreadsheet
	generation uint64

	title     string
	id        int64
	index     int64
	hidden    bool
	sheetType string
	rows      int64
	columns   int64
}

// Cell is the zero-based position of a value within a range.
type Cell struct {
	Row    int
	Column int
}

func newSheet(parent *Spreadsheet, p *sheets.SheetProperties) *Sheet {
	sheet := Sheet{
		parent:     parent,
		generation: parent.generation,
		title:      p.Title,
		id:         p.SheetId,
		index:      p.Index,
		hidden:     p.Hidden,
		sheetType:  p.SheetType,
	}

	if p.GridProperties != nil {
		sheet.rows = p.GridProperties.RowCount
		sheet.columns = p.GridProperties.ColumnCount
	}

	return &sheet
}

func (s *Sheet) Title() string {
	return s.title
}

func (s *Sheet) ID() int64 {
	return s.id
}

func (s *Sheet) Index() int64 {
	return s.index
}

func (s *Sheet) Hidden() bool {
	return s.hidden
}

func (s *Sheet) SheetType() string {
	return s.sheetType
}

func (s *Sheet) Rows() int64 {
	return s.rows
}

func (s *Sheet) Columns() int64 {
	return s.columns
}

func (s *Sheet) SpreadsheetID() string {
	return s.parent.id
}

// Stale is true if the parent spreadsheet has been reloaded since the handle was created.
func (s *Sheet) Stale() bool {
	return s.generation != s.parent.generation
}

// Refresh returns a handle built from the parent's current cached document. The sheet may no
// longer exist.
func (s *Sheet) Refresh() (*Sheet, bool) {
	return s.parent.SheetByID(s.id)
}

// ResolveRange qualifies a range with the sheet title. An empty range refers to the whole sheet
// and a qualified range (one with a '!') that already includes the title is returned unchanged.
// The title check is a substring match, so e.g. "Sheet10!A1" passes through unchanged for
// "Sheet1".
func (s *Sheet) ResolveRange(expr string) string {
	switch {
	case expr == "":
		return s.title

	case strings.Contains(expr, "!") && strings.Contains(expr, s.title):
		return expr

	default:
		return fmt.Sprintf("%v!%v", s.title, expr)
	}
}

func (s *Sheet) ReadCells(ctx context.Context, expr string, options ValueOptions) (*sheets.ValueRange, error) {
	return s.parent.remote.RangeGet(ctx, s.parent.id, s.ResolveRange(expr), options)
}

// WriteCells writes a ValueRange to the range. The value input option defaults to RAW.
func (s *Sheet) WriteCells(ctx context.Context, expr string, options ValueOptions, body *schema.Object) (*sheets.UpdateValuesResponse, error) {
	vr, err := valueRange(body)
	if err != nil {
		return nil, err
	}

	if options.ValueInputOption == "" {
		options.ValueInputOption = DefaultValueInputOption
	}

	return s.parent.remote.RangeUpdate(ctx, s.parent.id, s.ResolveRange(expr), options, vr)
}

// AppendCells appends a ValueRange after the last row of the table found in the range.
func (s *Sheet) AppendCells(ctx context.Context, expr string, options ValueOptions, body *schema.Object) (*sheets.AppendValuesResponse, error) {
	vr, err := valueRange(body)
	if err != nil {
		return nil, err
	}

	if options.ValueInputOption == "" {
		options.ValueInputOption = DefaultValueInputOption
	}

	return s.parent.remote.RangeAppend(ctx, s.parent.id, s.ResolveRange(expr), options, vr)
}

func (s *Sheet) ClearCells(ctx context.Context, expr string) (*sheets.ClearValuesResponse, error) {
	return s.parent.remote.RangeClear(ctx, s.parent.id, s.ResolveRange(expr))
}

// FindCell returns the position of the first value in the range that is exactly equal to the
// target, scanning rows in order and then columns within each row. The target must be a
// comparable value (string, number, bool or nil).
func (s *Sheet) FindCell(ctx context.Context, target any, expr string) (Cell, bool, error) {
	if target != nil && !reflect.TypeOf(target).Comparable() {
		return Cell{}, false, fmt.Errorf("%w - cannot search for a %T", ErrInvalidRequest, target)
	}

	response, err := s.ReadCells(ctx, expr, ValueOptions{})
	if err != nil {
		return Cell{}, false, err
	}

	if response != nil {
		for i, row := range response.Values {
			for j, v := range row {
				if v == target {
					return Cell{Row: i, Column: j}, true, nil
				}
			}
		}
	}

	return Cell{}, false, nil
}

func (s *Sheet) String() string {
	return fmt.Sprintf("%v (ID:%v)", s.title, s.id)
}

func valueRange(body *schema.Object) (*sheets.ValueRange, error) {
	if body == nil || body.Variant() != schema.ValueRange {
		return nil, fmt.Errorf("%w - expected ValueRange, got %v", ErrInvalidRequest, body)
	}

	var vr sheets.ValueRange
	if err := decode(body, &vr); err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrInvalidRequest, err)
	}

	return &vr, nil
}
