package model

import (
	"github.com/goliatone/go-obesense/internal/model"
	"github.com/goliatone/go-obesense/pkg/schema"
)

// Builder converts attribute schemas into form models.
type Builder interface {
	Build(s schema.Schema) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler       func(string) string
	optionLabeler func(string) string
	endpoint      string
	method        string
}

// WithLabeler overrides the label generated for fields that declare none.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithOptionLabeler overrides how select option labels are derived.
func WithOptionLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.optionLabeler = labeler
	}
}

// WithAction sets the endpoint and method rendered on the form element.
func WithAction(endpoint, method string) BuilderOption {
	return func(opts *builderOptions) {
		opts.endpoint = endpoint
		opts.method = method
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	return model.New(model.Options{
		Labeler:       cfg.labeler,
		OptionLabeler: cfg.optionLabeler,
		Endpoint:      cfg.endpoint,
		Method:        cfg.method,
	})
}

// OptionLabel turns a raw option value into display text.
func OptionLabel(value string) string {
	return model.OptionLabel(value)
}

// DeriveOptions maps raw values to options with derived labels.
func DeriveOptions(values []string) []Option {
	return model.DeriveOptions(values, nil)
}
