package spreadsheet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/uhppoted/uhppoted-sheets/schema"
)

const ID = "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"

func load(t *testing.T, f *fake) *Spreadsheet {
	t.Helper()

	s, err := NewSession(f).GetSpreadsheet(context.Background(), ID, GetOptions{})
	if err != nil {
		t.Fatalf("Unexpected error loading spreadsheet (%v)", err)
	}

	return s
}

func titles(list []*Sheet) []string {
	titles := []string{}
	for _, s := range list {
		titles = append(titles, s.Title())
	}

	return titles
}

func TestGetSpreadsheet(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1", "Log", "Report")
	s := load(t, f)

	if s.ID() != ID {
		t.Errorf("Incorrect ID - expected:%v, got:%v", ID, s.ID())
	}

	if s.Title() != "ACL" {
		t.Errorf("Incorrect title - expected:%v, got:%v", "ACL", s.Title())
	}

	if s.Dirty() {
		t.Errorf("Incorrect dirty flag - expected:%v, got:%v", false, s.Dirty())
	}

	expected := []string{"Sheet1", "Log", "Report"}
	if got := titles(s.Sheets()); !reflect.DeepEqual(got, expected) {
		t.Errorf("Incorrect sheets\n   expected: %v\n   got:      %v", expected, got)
	}

	if f.gets != 1 {
		t.Errorf("Incorrect number of fetches - expected:%v, got:%v", 1, f.gets)
	}
}

func TestGetSpreadsheetWithInvalidID(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1")

	if _, err := NewSession(f).GetSpreadsheet(context.Background(), "  ", GetOptions{}); err == nil {
		t.Errorf("Expected error for blank spreadsheet ID, got %v", err)
	}

	if f.gets != 0 {
		t.Errorf("Unexpected remote call for blank spreadsheet ID")
	}
}

func TestGetSpreadsheetWithTransportError(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1")
	f.getErr = errors.New("401 unauthorized")

	if _, err := NewSession(f).GetSpreadsheet(context.Background(), ID, GetOptions{}); err != f.getErr {
		t.Errorf("Incorrect error - expected:%v, got:%v", f.getErr, err)
	}
}

func TestSheetLookup(t *testing.T) {
	s := load(t, newFake(ID, "ACL", "Sheet1", "Log", "Report"))

	if sheet, ok := s.SheetByName("Log"); !ok {
		t.Errorf("Expected sheet 'Log', got %v", sheet)
	} else if sheet.ID() != 1 || sheet.Rows() != 1000 || sheet.Columns() != 26 {
		t.Errorf("Incorrect sheet - expected:%v/%v/%v, got:%v/%v/%v", 1, 1000, 26, sheet.ID(), sheet.Rows(), sheet.Columns())
	}

	if sheet, ok := s.SheetByID(2); !ok || sheet.Title() != "Report" {
		t.Errorf("Incorrect sheet for ID 2 - expected:%v, got:%v", "Report", sheet)
	}

	if id, ok := s.SheetIDByName("Sheet1"); !ok || id != 0 {
		t.Errorf("Incorrect sheet ID for 'Sheet1' - expected:%v, got:%v (%v)", 0, id, ok)
	}

	if sheet, ok := s.SheetByName("log"); ok {
		t.Errorf("Expected 'not found' for 'log', got %v", sheet)
	}

	if sheet, ok := s.SheetByID(17); ok {
		t.Errorf("Expected 'not found' for ID 17, got %v", sheet)
	}

	if _, ok := s.SheetIDByName("Nope"); ok {
		t.Errorf("Expected 'not found' for 'Nope'")
	}
}

func TestCreateSheet(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1")
	s := load(t, f)

	grid, _ := schema.NewGridProperties(schema.F("rowCount", 50), schema.F("columnCount", 5))

	sheet, err := s.CreateSheet(context.Background(), schema.F("title", "NewOne"), schema.F("gridProperties", grid))
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if sheet.Title() != "NewOne" {
		t.Errorf("Incorrect title - expected:%v, got:%v", "NewOne", sheet.Title())
	}

	if sheet.ID() != 1000 {
		t.Errorf("Incorrect sheet ID - expected:%v, got:%v", 1000, sheet.ID())
	}

	if sheet.Rows() != 50 || sheet.Columns() != 5 {
		t.Errorf("Incorrect grid - expected:%vx%v, got:%vx%v", 50, 5, sheet.Rows(), sheet.Columns())
	}

	if found, ok := s.SheetByName("NewOne"); !ok {
		t.Errorf("Expected to find 'NewOne' after create")
	} else if found.ID() != sheet.ID() {
		t.Errorf("Incorrect sheet ID - expected:%v, got:%v", sheet.ID(), found.ID())
	}

	if len(f.batches) != 1 || len(f.batches[0]) != 1 || f.batches[0][0].AddSheet == nil {
		t.Fatalf("Expected single 'addSheet' batch, got %v", f.batches)
	}

	if f.gets != 2 {
		t.Errorf("Expected reload after create - fetches:%v", f.gets)
	}

	if s.Dirty() {
		t.Errorf("Incorrect dirty flag after reload - expected:%v, got:%v", false, s.Dirty())
	}
}

func TestCreateSheetWithUnknownField(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1")
	s := load(t, f)

	_, err := s.CreateSheet(context.Background(), schema.F("title", "NewOne"), schema.F("colour", "red"))
	if !errors.Is(err, schema.ErrUnknownField) {
		t.Errorf("Incorrect error - expected:%v, got:%v", schema.ErrUnknownField, err)
	}

	if len(f.batches) != 0 {
		t.Errorf("Unexpected batch request sent for invalid sheet properties")
	}
}

func TestDuplicateSheet(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1", "Template")
	s := load(t, f)

	id, _ := s.SheetIDByName("Template")

	sheet, err := s.DuplicateSheet(context.Background(), id, schema.F("newSheetName", "Copy"))
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if sheet.Title() != "Copy" || sheet.ID() != 1000 {
		t.Errorf("Incorrect sheet - expected:%v/%v, got:%v/%v", "Copy", 1000, sheet.Title(), sheet.ID())
	}

	expected := []string{"Sheet1", "Template", "Copy"}
	if got := titles(s.Sheets()); !reflect.DeepEqual(got, expected) {
		t.Errorf("Incorrect sheets\n   expected: %v\n   got:      %v", expected, got)
	}
}

func TestDuplicateSheetWithUnknownField(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1")
	s := load(t, f)

	if _, err := s.DuplicateSheet(context.Background(), 0, schema.F("newName", "Copy")); !errors.Is(err, schema.ErrUnknownField) {
		t.Errorf("Incorrect error - expected:%v, got:%v", schema.ErrUnknownField, err)
	}

	if len(f.batches) != 0 {
		t.Errorf("Unexpected batch request sent for invalid duplicate request")
	}
}

func TestDeleteSheet(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1", "Log")
	s := load(t, f)

	if _, err := s.DeleteSheet(context.Background(), 1); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if sheet, ok := s.SheetByID(1); ok {
		t.Errorf("Expected 'not found' for deleted sheet, got %v", sheet)
	}

	if got := titles(s.Sheets()); !reflect.DeepEqual(got, []string{"Sheet1"}) {
		t.Errorf("Incorrect sheets after delete - got:%v", got)
	}
}

func TestDeleteSheetWithZeroID(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1", "Log")
	s := load(t, f)

	if _, err := s.DeleteSheet(context.Background(), 0); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	b, err := json.Marshal(f.batches[0][0])
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if expected := `{"deleteSheet":{"sheetId":0}}`; string(b) != expected {
		t.Errorf("Incorrect request\n   expected: %s\n   got:      %s", expected, string(b))
	}

	if _, ok := s.SheetByID(0); ok {
		t.Errorf("Expected 'not found' for deleted sheet 0")
	}
}

func TestBatchUpdateReplacesDocument(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1")
	s := load(t, f)

	before := s.document

	if _, err := s.BatchUpdate(context.Background(), map[string]any{"addSheet": map[string]any{"properties": map[string]any{"title": "X"}}}); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if s.document == before {
		t.Errorf("Expected cached document to be replaced")
	}

	if s.document != f.last {
		t.Errorf("Expected cached document to be the result of the latest fetch")
	}

	fresh, _ := json.Marshal(f.document)
	cached, _ := s.Document()
	if !bytes.Equal(fresh, cached) {
		t.Errorf("Incorrect cached document\n   expected: %s\n   got:      %s", fresh, cached)
	}
}

func TestBatchUpdateFailureLeavesDocument(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1", "Log")
	s := load(t, f)

	before, _ := s.Document()
	f.batchErr = errors.New("429 quota exceeded")

	_, err := s.DeleteSheet(context.Background(), 1)
	if err != f.batchErr {
		t.Errorf("Incorrect error - expected:%v, got:%v", f.batchErr, err)
	}

	after, _ := s.Document()
	if !bytes.Equal(before, after) {
		t.Errorf("Cached document modified by failed batch\n   before: %s\n   after:  %s", before, after)
	}

	if f.gets != 1 {
		t.Errorf("Unexpected reload after failed batch - fetches:%v", f.gets)
	}

	if s.Dirty() {
		t.Errorf("Incorrect dirty flag after failed batch - expected:%v, got:%v", false, s.Dirty())
	}
}

func TestBatchUpdateWithReloadFailure(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1")
	s := load(t, f)

	before, _ := s.Document()
	cause := errors.New("503 backend error")
	f.getErr = cause

	sheet, err := s.CreateSheet(context.Background(), schema.F("title", "NewOne"))

	var reload *ReloadError
	if !errors.As(err, &reload) {
		t.Fatalf("Expected ReloadError, got %v", err)
	}

	if !errors.Is(err, cause) {
		t.Errorf("Expected ReloadError to wrap %v, got %v", cause, err)
	}

	if sheet == nil || sheet.Title() != "NewOne" {
		t.Errorf("Expected handle for created sheet, got %v", sheet)
	}

	if !s.Dirty() {
		t.Errorf("Incorrect dirty flag - expected:%v, got:%v", true, s.Dirty())
	}

	after, _ := s.Document()
	if !bytes.Equal(before, after) {
		t.Errorf("Cached document modified by failed reload")
	}

	f.getErr = nil
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if s.Dirty() {
		t.Errorf("Incorrect dirty flag after reload - expected:%v, got:%v", false, s.Dirty())
	}

	if _, ok := s.SheetByName("NewOne"); !ok {
		t.Errorf("Expected to find 'NewOne' after reload")
	}
}

func TestBatchUpdateWithInvalidRequests(t *testing.T) {
	tests := []struct {
		name    string
		request map[string]any
	}{
		{"empty", map[string]any{}},
		{"multiple", map[string]any{"deleteSheet": map[string]any{"sheetId": 1}, "addSheet": map[string]any{}}},
		{"unknown kind", map[string]any{"deleteWorksheet": map[string]any{"sheetId": 1}}},
		{"unknown field", map[string]any{"deleteSheet": map[string]any{"sheet": 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFake(ID, "ACL", "Sheet1")
			s := load(t, f)

			if _, err := s.BatchUpdate(context.Background(), tt.request); !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("Incorrect error - expected:%v, got:%v", ErrInvalidRequest, err)
			}

			if len(f.batches) != 0 {
				t.Errorf("Unexpected batch request sent for invalid request")
			}
		})
	}
}

func TestBatchUpdateWithMultipleRequests(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1", "Log")
	s := load(t, f)

	add, _ := schema.New(schema.AddSheetRequest, schema.F("properties", map[string]any{"title": "Report"}))
	del, _ := schema.NewDeleteSheetRequest(1)

	response, err := s.BatchUpdate(context.Background(),
		map[string]any{"addSheet": add},
		map[string]any{"deleteSheet": del})

	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if len(response.Replies) != 2 {
		t.Errorf("Incorrect number of replies - expected:%v, got:%v", 2, len(response.Replies))
	}

	if len(f.batches) != 1 || len(f.batches[0]) != 2 {
		t.Errorf("Expected a single batch with 2 requests, got %v", f.batches)
	}

	if got := titles(s.Sheets()); !reflect.DeepEqual(got, []string{"Sheet1", "Report"}) {
		t.Errorf("Incorrect sheets - got:%v", got)
	}
}

func TestStaleHandle(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1", "Log")
	s := load(t, f)

	sheet, _ := s.SheetByName("Log")
	if sheet.Stale() {
		t.Errorf("Expected fresh handle")
	}

	if _, err := s.CreateSheet(context.Background(), schema.F("title", "Report")); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if !sheet.Stale() {
		t.Errorf("Expected stale handle after reload")
	}

	if refreshed, ok := sheet.Refresh(); !ok {
		t.Errorf("Expected refreshed handle")
	} else if refreshed.Stale() || refreshed.ID() != sheet.ID() {
		t.Errorf("Incorrect refreshed handle - got:%v (stale:%v)", refreshed, refreshed.Stale())
	}

	if _, err := s.DeleteSheet(context.Background(), sheet.ID()); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if refreshed, ok := sheet.Refresh(); ok {
		t.Errorf("Expected no handle for deleted sheet, got %v", refreshed)
	}
}

func TestAddNamedRange(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1")
	s := load(t, f)

	grid, _ := schema.NewGridRange(schema.F("sheetId", 0), schema.F("startRowIndex", 0), schema.F("endRowIndex", 10))

	named, err := s.AddNamedRange(context.Background(), "cards", grid)
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if named.Name != "cards" || named.NamedRangeId == "" {
		t.Errorf("Incorrect named range - got:%+v", named)
	}

	b, _ := json.Marshal(f.batches[0][0])
	if !strings.Contains(string(b), `"sheetId":0`) {
		t.Errorf("Expected explicit sheet ID 0 in request, got %s", b)
	}

	if _, err := s.AddNamedRange(context.Background(), "nope", nil); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Incorrect error - expected:%v, got:%v", ErrInvalidRequest, err)
	}
}

func TestNotImplemented(t *testing.T) {
	f := newFake(ID, "ACL", "Sheet1")
	session := NewSession(f)
	ctx := context.Background()

	if _, err := session.GetSpreadsheetByName(ctx, "ACL"); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Incorrect error - expected:%v, got:%v", ErrNotImplemented, err)
	}

	if _, err := session.CreateSpreadsheet(ctx, "ACL"); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Incorrect error - expected:%v, got:%v", ErrNotImplemented, err)
	}

	if _, err := session.AllSpreadsheets(ctx); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Incorrect error - expected:%v, got:%v", ErrNotImplemented, err)
	}

	if f.gets != 0 || len(f.batches) != 0 {
		t.Errorf("Unexpected remote calls for unimplemented operations")
	}
}

func TestToRequest(t *testing.T) {
	props, _ := schema.NewSheetProperties(schema.F("title", "First"), schema.F("index", 0))
	add, _ := schema.New(schema.AddSheetRequest, schema.F("properties", props))

	rq, err := toRequest(map[string]any{"addSheet": add})
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	b, _ := json.Marshal(rq)

	expected := map[string]any{"addSheet": map[string]any{"properties": map[string]any{"title": "First", "index": 0.0}}}
	got := map[string]any{}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Incorrect request (-expected +got):\n%s", diff)
	}
}
