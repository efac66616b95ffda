// Package record maps raw worksheet grids onto header-keyed records and
// resolves logical fields to whatever the sheet authors named the columns.
package record

import (
	"encoding/json"

	"salesdesk/pkg/cell"
)

// Record is one worksheet row keyed by the header text as written in the
// sheet (trimmed, not normalized).
type Record struct {
	keys   []string
	values map[string]cell.Value
}

// New builds a record from parallel header and value slices. A repeated
// header keeps its last value.
func New(headers []string, values []cell.Value) Record {
	r := Record{values: make(map[string]cell.Value, len(headers))}
	for i, h := range headers {
		var v cell.Value
		if i < len(values) {
			v = values[i]
		}
		if _, seen := r.values[h]; !seen {
			r.keys = append(r.keys, h)
		}
		r.values[h] = v
	}
	return r
}

// FromMap is a convenience for tests and fixtures.
func FromMap(headers []string, m map[string]interface{}) Record {
	values := make([]cell.Value, len(headers))
	for i, h := range headers {
		values[i] = cell.Of(m[h])
	}
	return New(headers, values)
}

// Keys returns the headers in sheet order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r Record) Len() int { return len(r.keys) }

// Get returns the cell under key, or an Empty value when the column is
// absent. An empty key is always absent so unresolved fields read as Empty.
func (r Record) Get(key string) cell.Value {
	if key == "" {
		return cell.Value{}
	}
	return r.values[key]
}

// Text is Get rendered as a string.
func (r Record) Text(key string) string {
	return r.Get(key).String()
}

func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Map flattens the record for presentation.
func (r Record) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(r.keys))
	for _, k := range r.keys {
		out[k] = r.values[k].Interface()
	}
	return out
}

func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]cell.Value, len(r.keys))
	for _, k := range r.keys {
		out[k] = r.values[k]
	}
	return json.Marshal(out)
}
