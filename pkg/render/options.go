package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-obesense/pkg/result"
)

// RenderOptions carry the per-request state renderers reflect without
// mutating the form model.
type RenderOptions struct {
	// Values holds the current control values keyed by field name. Fields
	// without an entry fall back to the model default.
	Values map[string]any
	// Errors holds one validation message per field name.
	Errors map[string]string
	// Result is the presentation of the latest prediction, success or failure.
	Result *result.Presentation
	// Loading marks a prediction in flight; submit controls are disabled.
	Loading bool
	// Action overrides the form model endpoint.
	Action string
	// Theme carries resolved theme tokens and asset lookups.
	Theme *theme.RendererConfig
}

// HasErrors reports whether any field carries a message.
func (o RenderOptions) HasErrors() bool {
	return len(o.Errors) > 0
}

// ValueFor returns the value to show for field, falling back to fallback.
func (o RenderOptions) ValueFor(field string, fallback any) any {
	if value, ok := o.Values[field]; ok {
		return value
	}
	return fallback
}
