// Package obesense is the convenience entry point for the obesity risk form:
// it wires the built-in attribute schema, copy overlays and renderers into a
// session.
package obesense

import (
	"context"

	"github.com/goliatone/go-obesense/pkg/formstate"
	"github.com/goliatone/go-obesense/pkg/model"
	"github.com/goliatone/go-obesense/pkg/predict"
	"github.com/goliatone/go-obesense/pkg/render"
	"github.com/goliatone/go-obesense/pkg/result"
	"github.com/goliatone/go-obesense/pkg/schema"
	"github.com/goliatone/go-obesense/pkg/session"
	"github.com/goliatone/go-obesense/pkg/uischema"
)

// RenderOptions describes the per-request state renderers reflect.
type RenderOptions = render.RenderOptions

// Presentation is the user-facing outcome of a prediction.
type Presentation = result.Presentation

// Category is a predicted obesity class.
type Category = predict.Category

// NewSession builds a session over the built-in obesity schema with the
// bundled copy overlays applied before any caller decorators.
func NewSession(options ...session.Option) (*session.Session, error) {
	decorator, err := uischema.Default()
	if err != nil {
		return nil, err
	}
	options = append([]session.Option{session.WithDecorators(decorator)}, options...)
	return session.New(schema.ObesitySchema(), options...)
}

// NewClient constructs an HTTP prediction client for baseURL.
func NewClient(baseURL string, options ...predict.Option) (*predict.Client, error) {
	return predict.NewClient(baseURL, options...)
}

// Predict validates values, calls the service at baseURL and returns the
// presentation. Prediction failures come back as the generic failure
// presentation together with the error.
func Predict(ctx context.Context, baseURL string, values map[string]any, options ...predict.Option) (Presentation, error) {
	client, err := predict.NewClient(baseURL, options...)
	if err != nil {
		return Presentation{}, err
	}
	sess, err := NewSession(
		session.WithPredictor(client),
		session.WithStateOptions(formstate.WithValues(values)),
	)
	if err != nil {
		return Presentation{}, err
	}
	return sess.Submit(ctx)
}

// RenderHTML renders the default form with values prefilled.
func RenderHTML(ctx context.Context, values map[string]any, options ...session.Option) ([]byte, error) {
	if len(values) > 0 {
		options = append(options, session.WithStateOptions(formstate.WithValues(values)))
	}
	sess, err := NewSession(options...)
	if err != nil {
		return nil, err
	}
	out, _, err := sess.Render(ctx, "")
	return out, err
}

// Decorators exposes the bundled copy overlay for callers composing their own
// session.
func Decorators() ([]model.Decorator, error) {
	decorator, err := uischema.Default()
	if err != nil {
		return nil, err
	}
	return []model.Decorator{decorator}, nil
}
