package session

import (
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-obesense/pkg/formstate"
	"github.com/goliatone/go-obesense/pkg/model"
	"github.com/goliatone/go-obesense/pkg/predict"
	"github.com/goliatone/go-obesense/pkg/render"
)

// Option customises a Session.
type Option func(*Session)

// WithPredictor sets the service used by Submit. The session wraps it in a
// predict.Guard.
func WithPredictor(predictor predict.Predictor) Option {
	return func(s *Session) {
		s.predictor = predictor
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(s *Session) {
		s.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(s *Session) {
		s.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when Render receives an
// empty name.
func WithDefaultRenderer(name string) Option {
	return func(s *Session) {
		s.defaultRenderer = name
	}
}

// WithDecorators registers decorators applied to the form model once it is
// built.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(s *Session) {
		s.decorators = append(s.decorators, decorators...)
	}
}

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithThemeSelector resolves renderer theme configuration through selector.
// Empty name or variant defer to the selector defaults.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(s *Session) {
		s.themeSelector = selector
		s.themeName = name
		s.themeVariant = variant
	}
}

// WithStateOptions forwards options to the underlying formstate.State.
func WithStateOptions(options ...formstate.Option) Option {
	return func(s *Session) {
		s.stateOptions = append(s.stateOptions, options...)
	}
}

// PredictionChecker validates labels returned by the predictor.
// *contract.Contract satisfies it.
type PredictionChecker interface {
	ValidatePrediction(label string) error
}

// WithContract checks every returned label against checker. Labels it
// rejects are still presented but logged as contract drift.
func WithContract(checker PredictionChecker) Option {
	return func(s *Session) {
		s.contract = checker
	}
}

// WithAction overrides the form action rendered for HTML output.
func WithAction(action string) Option {
	return func(s *Session) {
		s.action = action
	}
}
