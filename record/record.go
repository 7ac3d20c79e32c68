// Package record defines the ordered field/value record produced by an import
// and returned by lookups.
//
// A Record keeps its fields in source-column order. The JSON form is an array
// of [name, value] pairs rather than an object, because JSON objects do not
// round-trip field order; the array form reconstructs the exact pairing and
// order on decode.
package record

import "fmt"

// Field is a single named column value. All values are text; no numeric
// coercion happens anywhere in the pipeline.
type Field struct {
	Name  string
	Value string
}

// Record is an ordered sequence of fields. Order is fixed by the source
// file's header row and preserved across the full store/lookup round trip.
type Record []Field

// New builds a record by pairing headers with values positionally.
// len(values) must equal len(headers).
func New(headers, values []string) (Record, error) {
	if len(values) != len(headers) {
		return nil, fmt.Errorf("record: %d values for %d headers", len(values), len(headers))
	}
	r := make(Record, len(headers))
	for i, h := range headers {
		r[i] = Field{Name: h, Value: values[i]}
	}
	return r, nil
}

// Get returns the value of the first field with the given name.
func (r Record) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Names returns the field names in order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// Values returns the field values in order.
func (r Record) Values() []string {
	values := make([]string, len(r))
	for i, f := range r {
		values[i] = f.Value
	}
	return values
}

// Equal reports whether two records have identical fields in identical order.
func (r Record) Equal(other Record) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the record as name=value pairs in order, for logs and the
// CLI's get output.
func (r Record) String() string {
	s := "{"
	for i, f := range r {
		if i > 0 {
			s += ", "
		}
		s += f.Name + "=" + f.Value
	}
	return s + "}"
}
