// Package schema implements objects whose settable fields are restricted to the fields declared
// for the Google Sheets API type they model.
//
// An Object rejects any field that is not in its Variant's allow-list at the point of assignment,
// so drift between the client model and the actual API schema surfaces immediately rather than
// as a rejected request.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownField = errors.New("unknown field")
var ErrMissingField = errors.New("missing field")

// FieldError identifies the variant and field for a schema violation.
type FieldError struct {
	Variant string
	Field   string
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v '%s'", e.Variant, e.Err, e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Variant is the declared field set for one API type.
type Variant struct {
	name   string
	fields map[string]struct{}
	order  []string
}

// Field is a single name/value pair for construction and bulk update. The values are stored
// as-is and passed through to serialization unchanged.
type Field struct {
	Name  string
	Value any
}

// Object holds the fields set on an instance of a Variant.
type Object struct {
	variant *Variant
	values  map[string]any
	order   []string
}

func NewVariant(name string, fields ...string) *Variant {
	v := Variant{
		name:   name,
		fields: map[string]struct{}{},
	}

	for _, f := range fields {
		if _, ok := v.fields[f]; !ok {
			v.fields[f] = struct{}{}
			v.order = append(v.order, f)
		}
	}

	return &v
}

func (v *Variant) Name() string {
	return v.name
}

// Fields returns the allow-list in declaration order.
func (v *Variant) Fields() []string {
	return append([]string{}, v.order...)
}

func (v *Variant) Allows(field string) bool {
	_, ok := v.fields[field]

	return ok
}

// F is shorthand for a Field literal.
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// New creates an Object for the variant. Either every field is accepted or the constructor
// fails with no object.
func New(variant *Variant, fields ...Field) (*Object, error) {
	if variant == nil {
		return nil, fmt.Errorf("invalid schema variant (%v)", variant)
	}

	o := Object{
		variant: variant,
		values:  map[string]any{},
	}

	if err := o.Update(fields...); err != nil {
		return nil, err
	}

	return &o, nil
}

// FromMap creates an Object from a field mapping, applying the keys in sorted order.
func FromMap(variant *Variant, m map[string]any) (*Object, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	fields := make([]Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, Field{Name: k, Value: m[k]})
	}

	return New(variant, fields...)
}

func (o *Object) Variant() *Variant {
	return o.variant
}

// Set assigns a single field. A field that is not in the variant's allow-list is rejected with
// ErrUnknownField and the object is left unchanged.
func (o *Object) Set(name string, value any) error {
	if err := o.check(name); err != nil {
		return err
	}

	o.set(name, value)

	return nil
}

// Update applies the fields in order. All the field names are validated before any field is
// applied, so a rejected update leaves the object unchanged.
func (o *Object) Update(fields ...Field) error {
	for _, f := range fields {
		if err := o.check(f.Name); err != nil {
			return err
		}
	}

	for _, f := range fields {
		o.set(f.Name, f.Value)
	}

	return nil
}

// Get returns the value of a field. Unset fields are an ErrMissingField rejection, not a zero
// value.
func (o *Object) Get(name string) (any, error) {
	if v, ok := o.values[name]; ok {
		return v, nil
	}

	return nil, &FieldError{Variant: o.variant.name, Field: name, Err: ErrMissingField}
}

func (o *Object) Has(name string) bool {
	_, ok := o.values[name]

	return ok
}

// Fields returns the names of the fields that have been set, in the order they were first set.
func (o *Object) Fields() []string {
	return append([]string{}, o.order...)
}

// Map returns a shallow copy of the fields that have been set.
func (o *Object) Map() map[string]any {
	m := make(map[string]any, len(o.values))
	for k, v := range o.values {
		m[k] = v
	}

	return m
}

func (o *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Map())
}

func (o *Object) String() string {
	return fmt.Sprintf("%s%v", o.variant.name, o.values)
}

func (o *Object) check(name string) error {
	if !o.variant.Allows(name) {
		return &FieldError{Variant: o.variant.name, Field: name, Err: ErrUnknownField}
	}

	return nil
}

func (o *Object) set(name string, value any) {
	if _, ok := o.values[name]; !ok {
		o.order = append(o.order, name)
	}

	o.values[name] = value
}
