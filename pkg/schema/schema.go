package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Schema is an ordered set of field descriptors addressed by name.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// New validates the descriptors and returns a Schema preserving their order.
func New(name string, fields ...Field) (Schema, error) {
	if len(fields) == 0 {
		return Schema{}, errors.New("schema: at least one field is required")
	}

	s := Schema{
		name:   strings.TrimSpace(name),
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, field := range fields {
		if err := checkField(field); err != nil {
			return Schema{}, err
		}
		if _, exists := s.index[field.Name]; exists {
			return Schema{}, fmt.Errorf("schema: duplicate field %q", field.Name)
		}
		s.index[field.Name] = len(s.fields)
		s.fields = append(s.fields, field)
	}
	return s, nil
}

// MustNew panics when New fails. Intended for statically declared schemas.
func MustNew(name string, fields ...Field) Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func checkField(field Field) error {
	if field.Name == "" {
		return errors.New("schema: field name is required")
	}
	switch field.Kind {
	case KindEnumerated:
		if len(field.Values) == 0 {
			return fmt.Errorf("schema: enumerated field %q declares no values", field.Name)
		}
		seen := make(map[string]struct{}, len(field.Values))
		for _, value := range field.Values {
			if _, dup := seen[value]; dup {
				return fmt.Errorf("schema: enumerated field %q repeats value %q", field.Name, value)
			}
			seen[value] = struct{}{}
		}
	case KindNumeric:
		if field.Min != nil && field.Max != nil && *field.Min > *field.Max {
			return fmt.Errorf("schema: numeric field %q has min greater than max", field.Name)
		}
		if field.Step != nil && *field.Step <= 0 {
			return fmt.Errorf("schema: numeric field %q step must be positive", field.Name)
		}
	default:
		return fmt.Errorf("schema: field %q has unknown kind %q", field.Name, field.Kind)
	}
	if field.Default != nil {
		if _, err := field.Validate(field.Default); err != nil {
			return fmt.Errorf("schema: default of field %q: %w", field.Name, err)
		}
	}
	return nil
}

// Name returns the schema identifier.
func (s Schema) Name() string {
	return s.name
}

// Len reports the number of fields.
func (s Schema) Len() int {
	return len(s.fields)
}

// Fields returns the descriptors in display order.
func (s Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Field looks up a descriptor by name.
func (s Schema) Field(name string) (Field, bool) {
	idx, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[idx], true
}

// Names returns the field names in display order.
func (s Schema) Names() []string {
	out := make([]string, 0, len(s.fields))
	for _, field := range s.fields {
		out = append(out, field.Name)
	}
	return out
}

// Groups returns the distinct group names in order of first appearance.
// Fields without a group are not represented.
func (s Schema) Groups() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, field := range s.fields {
		if field.Group == "" {
			continue
		}
		if _, ok := seen[field.Group]; ok {
			continue
		}
		seen[field.Group] = struct{}{}
		out = append(out, field.Group)
	}
	return out
}
