package spreadsheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/uhppoted-sheets/schema"
)

// toRequests converts request mappings (e.g. {"addSheet": {...}}) to the client library's
// request type. Unknown request kinds and fields are rejected locally.
func toRequests(requests []map[string]any) ([]*sheets.Request, error) {
	list := []*sheets.Request{}

	for i, m := range requests {
		rq, err := toRequest(m)
		if err != nil {
			return nil, fmt.Errorf("request %v: %w", i+1, err)
		}

		list = append(list, rq)
	}

	return list, nil
}

func toRequest(m map[string]any) (*sheets.Request, error) {
	if len(m) != 1 {
		kinds := []string{}
		for k := range m {
			kinds = append(kinds, k)
		}

		sort.Strings(kinds)

		return nil, fmt.Errorf("%w - expected exactly one request type, got %v", ErrInvalidRequest, kinds)
	}

	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrInvalidRequest, err)
	}

	var rq sheets.Request

	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&rq); err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrInvalidRequest, err)
	}

	present := map[string]map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &present); err != nil {
		present = nil
	}

	forceZeroes(&rq, present)

	return &rq, nil
}

// forceZeroes marks zero-valued IDs and indices that were explicitly set in the request so that
// they are not dropped by 'omitempty' when the request is serialized. Sheet ID 0 is the ID of
// the default first sheet.
func forceZeroes(rq *sheets.Request, present map[string]map[string]json.RawMessage) {
	has := func(kind, field string) bool {
		_, ok := present[kind][field]
		return ok
	}

	if r := rq.DeleteSheet; r != nil {
		r.ForceSendFields = append(r.ForceSendFields, "SheetId")
	}

	if r := rq.DuplicateSheet; r != nil {
		r.ForceSendFields = append(r.ForceSendFields, "SourceSheetId")
		if has("duplicateSheet", "insertSheetIndex") {
			r.ForceSendFields = append(r.ForceSendFields, "InsertSheetIndex")
		}
	}

	if r := rq.AddSheet; r != nil && r.Properties != nil {
		if raw, ok := present["addSheet"]["properties"]; ok {
			fields := map[string]json.RawMessage{}
			if json.Unmarshal(raw, &fields) == nil {
				if _, ok := fields["index"]; ok {
					r.Properties.ForceSendFields = append(r.Properties.ForceSendFields, "Index")
				}
				if _, ok := fields["sheetId"]; ok {
					r.Properties.ForceSendFields = append(r.Properties.ForceSendFields, "SheetId")
				}
			}
		}
	}

	if r := rq.AddNamedRange; r != nil && r.NamedRange != nil && r.NamedRange.Range != nil {
		r.NamedRange.Range.ForceSendFields = append(r.NamedRange.Range.ForceSendFields, "SheetId")
	}
}

// decode converts a schema object to the equivalent client library type.
func decode(o *schema.Object, v any) error {
	b, err := json.Marshal(o)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, v)
}
