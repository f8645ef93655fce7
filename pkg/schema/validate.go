package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// FieldError reports why a single value failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks value against the descriptor. A nil value is treated as
// absent. On success it returns the normalised value: float64 for numeric
// fields and string for enumerated fields.
func (f Field) Validate(value any) (any, error) {
	if value == nil {
		return nil, f.fail("is required")
	}
	switch f.Kind {
	case KindEnumerated:
		return f.validateEnumerated(value)
	case KindNumeric:
		return f.validateNumeric(value)
	default:
		return nil, f.fail(fmt.Sprintf("has unknown kind %q", f.Kind))
	}
}

func (f Field) validateEnumerated(value any) (any, error) {
	str, ok := value.(string)
	if !ok {
		return nil, f.fail("must be one of: " + strings.Join(f.Values, ", "))
	}
	if str == "" {
		return nil, f.fail("is required")
	}
	for _, allowed := range f.Values {
		if str == allowed {
			return str, nil
		}
	}
	return nil, f.fail("must be one of: " + strings.Join(f.Values, ", "))
}

func (f Field) validateNumeric(value any) (any, error) {
	if str, ok := value.(string); ok && strings.TrimSpace(str) == "" {
		return nil, f.fail("is required")
	}
	number, ok := Number(value)
	if !ok {
		return nil, f.fail("must be a number")
	}
	if f.Min != nil && number < *f.Min {
		return nil, f.fail("must be at least " + FormatNumber(*f.Min))
	}
	if f.Max != nil && number > *f.Max {
		return nil, f.fail("must be at most " + FormatNumber(*f.Max))
	}
	if len(f.Choices) > 0 {
		for _, choice := range f.Choices {
			if number == choice {
				return number, nil
			}
		}
		return nil, f.fail("must be one of: " + strings.Join(f.OptionValues(), ", "))
	}
	return number, nil
}

func (f Field) fail(message string) error {
	return &FieldError{Field: f.Name, Message: message}
}

// Number converts Go numeric types and json.Number into a finite float64.
// Strings are not numbers: renderers coerce input before storing it.
func Number(value any) (float64, bool) {
	var out float64
	switch v := value.(type) {
	case float64:
		out = v
	case float32:
		out = float64(v)
	case int:
		out = float64(v)
	case int8:
		out = float64(v)
	case int16:
		out = float64(v)
	case int32:
		out = float64(v)
	case int64:
		out = float64(v)
	case uint:
		out = float64(v)
	case uint8:
		out = float64(v)
	case uint16:
		out = float64(v)
	case uint32:
		out = float64(v)
	case uint64:
		out = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		out = parsed
	default:
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}
