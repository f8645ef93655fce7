package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Request is an immutable attribute bag whose keys are exactly the schema's
// field names. Numeric fields hold float64 and enumerated fields hold string.
type Request struct {
	keys   []string
	values map[string]any
}

// NewRequest validates values against s and snapshots them in schema order.
// Missing or extra keys are rejected, as is any value failing Field.Validate.
func NewRequest(s Schema, values map[string]any) (Request, error) {
	if s.Len() == 0 {
		return Request{}, fmt.Errorf("schema: request requires a non-empty schema")
	}

	var extra []string
	for key := range values {
		if _, ok := s.Field(key); !ok {
			extra = append(extra, key)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return Request{}, fmt.Errorf("schema: request has unknown fields: %s", strings.Join(extra, ", "))
	}

	req := Request{
		keys:   s.Names(),
		values: make(map[string]any, s.Len()),
	}
	for _, field := range s.fields {
		raw, ok := values[field.Name]
		if !ok {
			return Request{}, fmt.Errorf("schema: request is missing field %q", field.Name)
		}
		normalised, err := field.Validate(raw)
		if err != nil {
			return Request{}, err
		}
		req.values[field.Name] = normalised
	}
	return req, nil
}

// Keys returns the field names in schema order.
func (r Request) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len reports the number of attributes.
func (r Request) Len() int {
	return len(r.keys)
}

// Value returns the attribute stored under name.
func (r Request) Value(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Map returns a copy of the attribute bag.
func (r Request) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the bag as a JSON object in schema order.
func (r Request) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, fmt.Errorf("schema: encode %q: %w", key, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeRequest parses a JSON attribute bag and validates it against s.
// Numbers are decoded with json.Number so integer and float inputs survive.
func DecodeRequest(s Schema, data []byte) (Request, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return Request{}, fmt.Errorf("schema: decode request: %w", err)
	}
	return NewRequest(s, values)
}
