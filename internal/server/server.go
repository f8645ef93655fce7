// Package server exposes the prediction form over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-obesense/pkg/contract"
	"github.com/goliatone/go-obesense/pkg/model"
	"github.com/goliatone/go-obesense/pkg/predict"
	"github.com/goliatone/go-obesense/pkg/render"
	"github.com/goliatone/go-obesense/pkg/renderers/vanilla"
	"github.com/goliatone/go-obesense/pkg/schema"
	"github.com/goliatone/go-obesense/pkg/session"
)

const (
	// FormPath serves the HTML form and accepts its submissions.
	FormPath = "/"
	// APIPredictPath accepts JSON attribute payloads.
	APIPredictPath = "/api/predict"
	// AssetsPath serves the embedded stylesheet.
	AssetsPath = "/assets"
	// ContractPath serves the OpenAPI document.
	ContractPath = "/openapi.yaml"

	maxFormBytes = 64 << 10
)

// Config wires the server collaborators.
type Config struct {
	Schema schema.Schema
	// Predictor answers submissions. Concurrent identical submissions share
	// one upstream call.
	Predictor predict.Predictor
	// CallTimeout bounds a shared upstream call. Zero uses
	// predict.DefaultCallTimeout.
	CallTimeout   time.Duration
	Contract      *contract.Contract
	Registry      *render.Registry
	Builder       model.Builder
	Decorators    []model.Decorator
	ThemeSelector theme.ThemeSelector
	ThemeName     string
	ThemeVariant  string
	Logger        *zap.Logger
}

// Server routes form and API requests to per-request sessions.
type Server struct {
	router     *chi.Mux
	schema     schema.Schema
	predictor  predict.Predictor
	contract   *contract.Contract
	registry   *render.Registry
	builder    model.Builder
	decorators []model.Decorator
	selector   theme.ThemeSelector
	themeName  string
	variant    string
	logger     *zap.Logger
}

// New validates cfg and builds the router.
func New(cfg Config) (*Server, error) {
	if cfg.Schema.Len() == 0 {
		return nil, errors.New("server: schema is required")
	}
	if cfg.Predictor == nil {
		return nil, errors.New("server: predictor is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = render.NewRegistry()
		var options []vanilla.Option
		if cfg.ThemeSelector == nil {
			options = append(options, vanilla.WithStylesheet(AssetsPath+"/"+vanilla.StylesheetName))
		}
		renderer, err := vanilla.New(options...)
		if err != nil {
			return nil, fmt.Errorf("server: default renderer: %w", err)
		}
		if err := registry.Register(renderer); err != nil {
			return nil, fmt.Errorf("server: register renderer: %w", err)
		}
	}
	builder := cfg.Builder
	if builder == nil {
		builder = model.NewBuilder(model.WithAction(FormPath, http.MethodPost))
	}

	s := &Server{
		router:     chi.NewRouter(),
		schema:     cfg.Schema,
		predictor:  predict.NewCoalescer(cfg.Predictor, predict.WithCallTimeout(cfg.CallTimeout)),
		contract:   cfg.Contract,
		registry:   registry,
		builder:    builder,
		decorators: cfg.Decorators,
		selector:   cfg.ThemeSelector,
		themeName:  cfg.ThemeName,
		variant:    cfg.ThemeVariant,
		logger:     logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get(FormPath, s.handleForm)
	s.router.Post(FormPath, s.handleSubmit)
	s.router.Post(APIPredictPath, s.handleAPIPredict)
	s.router.Get(ContractPath, s.handleContract)
	s.router.Get("/healthz", s.handleHealth)

	assets := http.FileServer(http.FS(vanilla.AssetsFS()))
	s.router.Handle(AssetsPath+"/*", http.StripPrefix(AssetsPath+"/", assets))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down within
// shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, listener, shutdownTimeout)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener, shutdownTimeout time.Duration) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", listener.Addr().String()))
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (s *Server) newSession(extra ...session.Option) (*session.Session, error) {
	options := []session.Option{
		session.WithPredictor(s.predictor),
		session.WithRegistry(s.registry),
		session.WithModelBuilder(s.builder),
		session.WithLogger(s.logger),
		session.WithDecorators(s.decorators...),
	}
	if s.selector != nil {
		options = append(options, session.WithThemeSelector(s.selector, s.themeName, s.variant))
	}
	if s.contract != nil {
		options = append(options, session.WithContract(s.contract))
	}
	options = append(options, extra...)
	return session.New(s.schema, options...)
}
