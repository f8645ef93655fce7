package formstate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-obesense/pkg/schema"
)

// Option configures a State.
type Option func(*config)

type config struct {
	defaults bool
	prefill  map[string]any
}

// WithoutDefaults starts the state empty instead of seeding control defaults.
func WithoutDefaults() Option {
	return func(cfg *config) { cfg.defaults = false }
}

// WithValues prefills the state. Prefilled values override defaults; names
// outside the schema are ignored.
func WithValues(values map[string]any) Option {
	return func(cfg *config) { cfg.prefill = values }
}

// State tracks collected values and the errors of the last Submit.
type State struct {
	schema schema.Schema
	values map[string]any
	errors map[string]string
}

// New seeds a state for s. By default every field starts at the value its
// native control would show: the declared default, the first option for
// selects, or 0 for numeric inputs.
func New(s schema.Schema, options ...Option) *State {
	cfg := config{defaults: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	state := &State{
		schema: s,
		values: make(map[string]any, s.Len()),
		errors: make(map[string]string),
	}
	if cfg.defaults {
		for _, field := range s.Fields() {
			state.values[field.Name] = field.DefaultValue()
		}
	}
	for name, value := range cfg.prefill {
		if _, ok := s.Field(name); ok {
			state.values[name] = value
		}
	}
	return state
}

// Schema returns the schema the state validates against.
func (s *State) Schema() schema.Schema {
	return s.schema
}

// Set stores value for the named field verbatim.
func (s *State) Set(name string, value any) error {
	if _, ok := s.schema.Field(name); !ok {
		return fmt.Errorf("formstate: unknown field %q", name)
	}
	s.values[name] = value
	return nil
}

// SetInput coerces raw control input and stores the result.
func (s *State) SetInput(name, raw string) error {
	field, ok := s.schema.Field(name)
	if !ok {
		return fmt.Errorf("formstate: unknown field %q", name)
	}
	s.values[name] = Coerce(field, raw)
	return nil
}

// Get returns the stored value for name.
func (s *State) Get(name string) (any, bool) {
	value, ok := s.values[name]
	return value, ok
}

// Unset removes the stored value for name.
func (s *State) Unset(name string) {
	delete(s.values, name)
}

// Values returns a copy of the stored values.
func (s *State) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the errors recorded by the last Submit.
func (s *State) Errors() map[string]string {
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// ErrorFor returns the message recorded for name, if any.
func (s *State) ErrorFor(name string) string {
	return s.errors[name]
}

// Submit validates every field. On success it clears the errors and returns a
// complete request. On failure it records one message per invalid field and
// returns a *ValidationError; no request is produced.
func (s *State) Submit() (schema.Request, error) {
	errs := make(map[string]string)
	for _, field := range s.schema.Fields() {
		if _, err := field.Validate(s.values[field.Name]); err != nil {
			errs[field.Name] = messageOf(err)
		}
	}
	s.errors = errs
	if len(errs) > 0 {
		return schema.Request{}, &ValidationError{Fields: copyErrors(errs)}
	}

	values := make(map[string]any, s.schema.Len())
	for _, name := range s.schema.Names() {
		values[name] = s.values[name]
	}
	req, err := schema.NewRequest(s.schema, values)
	if err != nil {
		return schema.Request{}, fmt.Errorf("formstate: build request: %w", err)
	}
	return req, nil
}

// Coerce converts raw control input into the value stored for field. Numeric
// input that parses becomes float64; anything else is kept as the raw string
// so validation reports it. Empty input clears the value.
func Coerce(field schema.Field, raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if field.Kind != schema.KindNumeric {
		return raw
	}
	number, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return raw
	}
	if _, ok := schema.Number(number); !ok {
		return raw
	}
	return number
}

func messageOf(err error) string {
	if fieldErr, ok := err.(*schema.FieldError); ok {
		return fieldErr.Message
	}
	return err.Error()
}

func copyErrors(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// ValidationError lists the fields that blocked a submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return "formstate: invalid submission: " + strings.Join(parts, "; ")
}
