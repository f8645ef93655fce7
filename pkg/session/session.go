package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-obesense/pkg/formstate"
	"github.com/goliatone/go-obesense/pkg/model"
	"github.com/goliatone/go-obesense/pkg/predict"
	"github.com/goliatone/go-obesense/pkg/render"
	"github.com/goliatone/go-obesense/pkg/renderers/vanilla"
	"github.com/goliatone/go-obesense/pkg/result"
	"github.com/goliatone/go-obesense/pkg/schema"
	"github.com/goliatone/go-obesense/pkg/theming"
)

const defaultRendererName = vanilla.Name

// ErrNoPredictor is returned by Submit when the session has no predictor.
var ErrNoPredictor = errors.New("session: predictor is required")

// Session holds the state of one form between submissions. Methods are safe
// for concurrent use; the network call in Submit runs without holding the
// session lock so Loading and Render stay responsive.
type Session struct {
	mu sync.Mutex

	schema          schema.Schema
	state           *formstate.State
	stateOptions    []formstate.Option
	predictor       predict.Predictor
	guard           *predict.Guard
	builder         model.Builder
	registry        *render.Registry
	defaultRenderer string
	decorators      []model.Decorator
	logger          *zap.Logger
	themeSelector   theme.ThemeSelector
	themeName       string
	themeVariant    string
	action          string
	contract        PredictionChecker

	form      *model.FormModel
	result    *result.Presentation
	lastError error
}

// New constructs a Session for s. Missing collaborators are filled with the
// built-in implementations: the default model builder and a registry holding
// the vanilla renderer.
func New(s schema.Schema, options ...Option) (*Session, error) {
	if s.Len() == 0 {
		return nil, errors.New("session: schema has no fields")
	}
	sess := &Session{
		schema:          s,
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(sess)
	}

	if sess.builder == nil {
		sess.builder = model.NewBuilder()
	}
	if sess.registry == nil {
		sess.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("session: default renderer: %w", err)
		}
		if err := sess.registry.Register(renderer); err != nil {
			return nil, fmt.Errorf("session: register default renderer: %w", err)
		}
	}
	if sess.predictor != nil {
		sess.guard = predict.NewGuard(sess.predictor)
	}
	sess.state = formstate.New(s, sess.stateOptions...)
	return sess, nil
}

// Schema returns the attribute schema.
func (s *Session) Schema() schema.Schema {
	return s.schema
}

// Set stores a typed value for a field.
func (s *Session) Set(name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Set(name, value)
}

// SetInput stores raw control input for a field.
func (s *Session) SetInput(name, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SetInput(name, raw)
}

// Values returns a copy of the current field values.
func (s *Session) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Values()
}

// Errors returns a copy of the messages recorded by the last Submit.
func (s *Session) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Errors()
}

// Edit runs fn against the form state under the session lock. Interactive
// front ends use it to fill fields in bulk.
func (s *Session) Edit(fn func(*formstate.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// Loading reports whether a prediction is in flight.
func (s *Session) Loading() bool {
	if s.guard == nil {
		return false
	}
	return s.guard.Loading()
}

// Result returns the latest presentation, or nil before the first completed
// submission.
func (s *Session) Result() *result.Presentation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil
	}
	out := *s.result
	return &out
}

// Err returns the error behind the latest failed prediction, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Submit validates the form and, when every field is valid, asks the
// predictor for a category.
//
// Validation failures return a *formstate.ValidationError and leave the
// previous result untouched; no request is sent. Prediction failures replace
// the result with the generic failure presentation and return the underlying
// error. ErrInFlight is returned while another Submit is running.
func (s *Session) Submit(ctx context.Context) (result.Presentation, error) {
	if ctx == nil {
		return result.Presentation{}, errors.New("session: context is required")
	}
	if s.guard == nil {
		return result.Presentation{}, ErrNoPredictor
	}

	s.mu.Lock()
	req, err := s.state.Submit()
	s.mu.Unlock()
	if err != nil {
		var invalid *formstate.ValidationError
		if errors.As(err, &invalid) {
			s.logger.Debug("submission blocked by validation", zap.Int("fields", len(invalid.Fields)))
		}
		return result.Presentation{}, err
	}

	category, err := s.guard.Predict(ctx, req)
	if errors.Is(err, predict.ErrInFlight) {
		return result.Presentation{}, err
	}
	if err != nil {
		s.logFailure(err)
		failure := result.Failure()
		s.mu.Lock()
		s.result = &failure
		s.lastError = err
		s.mu.Unlock()
		return failure, err
	}

	presentation := result.Present(category)
	s.checkLabel(category, presentation)
	s.mu.Lock()
	s.result = &presentation
	s.lastError = nil
	s.mu.Unlock()
	return presentation, nil
}

func (s *Session) checkLabel(category predict.Category, presentation result.Presentation) {
	if s.contract != nil {
		if err := s.contract.ValidatePrediction(category.String()); err != nil {
			s.logger.Warn("prediction outside contract",
				zap.String("label", category.String()),
				zap.Error(err),
			)
		}
		return
	}
	if !presentation.Known {
		s.logger.Warn("prediction outside known categories", zap.String("label", presentation.Label))
	}
}

func (s *Session) logFailure(err error) {
	var shape *predict.ResponseShapeError
	if errors.As(err, &shape) {
		s.logger.Warn("prediction response rejected",
			zap.String("reason", shape.Reason),
			zap.String("body", shape.Body),
		)
		return
	}
	var network *predict.NetworkError
	if errors.As(err, &network) {
		s.logger.Error("prediction request failed",
			zap.Int("status", network.Status),
			zap.Error(network.Err),
		)
		return
	}
	s.logger.Error("prediction failed", zap.Error(err))
}

// Form returns the form model for the schema. It is built on first use and
// reused afterwards.
func (s *Session) Form() (model.FormModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formLocked()
}

func (s *Session) formLocked() (model.FormModel, error) {
	if s.form != nil {
		return *s.form, nil
	}
	form, err := s.builder.Build(s.schema)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("session: build form model: %w", err)
	}
	for _, decorator := range s.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&form); err != nil {
			return model.FormModel{}, fmt.Errorf("session: decorate form: %w", err)
		}
	}
	s.form = &form
	return form, nil
}

// RenderOptions snapshots the state handed to renderers.
func (s *Session) RenderOptions() (render.RenderOptions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderOptionsLocked()
}

func (s *Session) renderOptionsLocked() (render.RenderOptions, error) {
	options := render.RenderOptions{
		Values:  s.state.Values(),
		Errors:  s.state.Errors(),
		Loading: s.Loading(),
		Action:  s.action,
	}
	if s.result != nil {
		presentation := *s.result
		options.Result = &presentation
	}
	if s.themeSelector != nil {
		cfg, err := theming.Resolve(s.themeSelector, s.themeName, s.themeVariant)
		if err != nil {
			return render.RenderOptions{}, fmt.Errorf("session: resolve theme: %w", err)
		}
		options.Theme = cfg
	}
	return options, nil
}

// Render renders the form with the current values, errors and result. An
// empty name selects the default renderer; when that is not registered the
// first registered renderer is used.
func (s *Session) Render(ctx context.Context, name string) ([]byte, string, error) {
	if ctx == nil {
		return nil, "", errors.New("session: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	renderer, err := s.rendererFor(name)
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	form, err := s.formLocked()
	if err != nil {
		s.mu.Unlock()
		return nil, "", err
	}
	options, err := s.renderOptionsLocked()
	s.mu.Unlock()
	if err != nil {
		return nil, "", err
	}

	output, err := renderer.Render(ctx, form, options)
	if err != nil {
		return nil, "", fmt.Errorf("session: render output: %w", err)
	}
	return output, renderer.ContentType(), nil
}

func (s *Session) rendererFor(name string) (render.Renderer, error) {
	target := name
	if target == "" {
		target = s.defaultRenderer
	}

	if target != "" {
		renderer, err := s.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("session: renderer %q: %w", name, err)
		}
	}

	names := s.registry.List()
	if len(names) == 0 {
		return nil, errors.New("session: no renderers registered")
	}
	renderer, err := s.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("session: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}
