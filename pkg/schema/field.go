package schema

import (
	"strconv"
	"strings"
)

// Kind tags a field descriptor.
type Kind string

const (
	KindEnumerated Kind = "enumerated"
	KindNumeric    Kind = "numeric"
)

// Control names the interactive control a field maps to.
type Control string

const (
	ControlNumber Control = "number"
	ControlSelect Control = "select"
)

// Field describes a single attribute. Only the members matching Kind are
// meaningful: Values for enumerated fields, Min/Max/Step/Choices for numeric
// ones.
type Field struct {
	Name    string
	Kind    Kind
	Label   string
	Help    string
	Group   string
	Values  []string
	Min     *float64
	Max     *float64
	Step    *float64
	Choices []float64
	Default any
}

// FieldOption configures a descriptor built with Enumerated or Numeric.
type FieldOption func(*Field)

// Enumerated declares a categorical field restricted to values.
func Enumerated(name string, values []string, options ...FieldOption) Field {
	field := Field{
		Name:   strings.TrimSpace(name),
		Kind:   KindEnumerated,
		Values: append([]string(nil), values...),
	}
	return apply(field, options)
}

// Numeric declares a numeric field. Bounds, step, and choices are optional.
func Numeric(name string, options ...FieldOption) Field {
	field := Field{
		Name: strings.TrimSpace(name),
		Kind: KindNumeric,
	}
	return apply(field, options)
}

func apply(field Field, options []FieldOption) Field {
	for _, opt := range options {
		if opt != nil {
			opt(&field)
		}
	}
	return field
}

// WithLabel sets the display label.
func WithLabel(label string) FieldOption {
	return func(f *Field) { f.Label = label }
}

// WithHelp sets the help text shown next to the control.
func WithHelp(help string) FieldOption {
	return func(f *Field) { f.Help = help }
}

// WithGroup assigns the field to a named section.
func WithGroup(group string) FieldOption {
	return func(f *Field) { f.Group = group }
}

// WithMin sets an inclusive lower bound.
func WithMin(value float64) FieldOption {
	return func(f *Field) { f.Min = &value }
}

// WithMax sets an inclusive upper bound.
func WithMax(value float64) FieldOption {
	return func(f *Field) { f.Max = &value }
}

// WithStep sets the control granularity. It is a rendering hint and is not
// enforced by Validate.
func WithStep(value float64) FieldOption {
	return func(f *Field) { f.Step = &value }
}

// WithChoices restricts a numeric field to a discrete set of values.
func WithChoices(values ...float64) FieldOption {
	return func(f *Field) { f.Choices = append([]float64(nil), values...) }
}

// WithDefault sets the value a fresh form state starts with.
func WithDefault(value any) FieldOption {
	return func(f *Field) { f.Default = value }
}

// Control reports which control renders the field.
func (f Field) Control() Control {
	if f.Kind == KindEnumerated || len(f.Choices) > 0 {
		return ControlSelect
	}
	return ControlNumber
}

// DefaultValue returns the value a native control would start with: the
// declared default, otherwise the first option for selects and 0 for numeric
// inputs.
func (f Field) DefaultValue() any {
	if f.Default != nil {
		return f.Default
	}
	switch {
	case f.Kind == KindEnumerated:
		if len(f.Values) > 0 {
			return f.Values[0]
		}
		return ""
	case len(f.Choices) > 0:
		return f.Choices[0]
	default:
		return float64(0)
	}
}

// OptionValues lists the raw values a select control offers, formatting
// numeric choices without trailing zeros.
func (f Field) OptionValues() []string {
	if f.Kind == KindEnumerated {
		return append([]string(nil), f.Values...)
	}
	if len(f.Choices) == 0 {
		return nil
	}
	out := make([]string, 0, len(f.Choices))
	for _, choice := range f.Choices {
		out = append(out, FormatNumber(choice))
	}
	return out
}

// FormatNumber renders a float using the shortest representation.
func FormatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
