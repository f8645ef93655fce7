package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-obesense/internal/source/loader"
	"github.com/goliatone/go-obesense/pkg/config"
	"github.com/goliatone/go-obesense/pkg/contract"
	"github.com/goliatone/go-obesense/pkg/model"
	"github.com/goliatone/go-obesense/pkg/predict"
	"github.com/goliatone/go-obesense/pkg/renderers/tui"
	"github.com/goliatone/go-obesense/pkg/schema"
	"github.com/goliatone/go-obesense/pkg/source"
	"github.com/goliatone/go-obesense/pkg/theming"
	"github.com/goliatone/go-obesense/pkg/uischema"
)

// app carries state shared by subcommands once the root pre-run resolved it.
type app struct {
	configFile string
	envFiles   []string
	uiSchema   string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger

	// prompts replaces the terminal driver; tests set it.
	prompts tui.PromptDriver
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "obesense",
		Short: "Obesity risk estimate form and prediction client",
		Long: `obesense collects sixteen lifestyle and body attributes, validates them
locally and asks a remote prediction service for an obesity category.

The service base URL comes from OBESENSE_API_URL, a .env file or the config
file's api.url.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "YAML config file")
	flags.StringSliceVar(&a.envFiles, "env-file", []string{".env"}, "dotenv files read before the process environment")
	flags.StringVar(&a.uiSchema, "ui-schema", "", `Directory of form copy overlays ("none" disables the built-in copy)`)
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newAskCmd(a))
	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newContractCmd(a))
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(config.LoadOptions{File: a.configFile, EnvFiles: a.envFiles})
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger != nil {
		return nil
	}
	logger, err := newLogger(cfg, a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func newLogger(cfg config.Config, verbose bool) (*zap.Logger, error) {
	level, err := cfg.ZapLevel()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if cfg.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zc.Build()
}

// schema returns the attribute schema from the configured file, or the
// built-in obesity schema.
func (a *app) schema(ctx context.Context) (schema.Schema, error) {
	if strings.TrimSpace(a.cfg.Schema.File) == "" {
		return schema.ObesitySchema(), nil
	}
	src, err := source.Parse(a.cfg.Schema.File)
	if err != nil {
		return schema.Schema{}, err
	}
	l := loader.New(source.NewLoaderOptions(source.WithHTTPFallback(a.cfg.API.Timeout)))
	s, err := schema.Load(ctx, l, src)
	if err != nil {
		return schema.Schema{}, err
	}
	a.logger.Debug("schema loaded", zap.String("source", src.Location()), zap.Int("fields", s.Len()))
	return s, nil
}

// contract loads the prediction contract from location, or the embedded
// document when location is empty.
func (a *app) contract(ctx context.Context, location string) (*contract.Contract, error) {
	if strings.TrimSpace(location) == "" {
		return contract.Default(ctx)
	}
	src, err := source.Parse(location)
	if err != nil {
		return nil, err
	}
	l := loader.New(source.NewLoaderOptions(source.WithHTTPFallback(a.cfg.API.Timeout)))
	return contract.Load(ctx, l, src)
}

func (a *app) predictor() (*predict.Client, error) {
	if err := a.cfg.RequireAPI(); err != nil {
		return nil, err
	}
	options := []predict.Option{
		predict.WithPath(a.cfg.API.Path),
		predict.WithTimeout(a.cfg.API.Timeout),
		predict.WithLogger(a.logger.Named("predict")),
	}
	if a.cfg.API.BareLabels {
		options = append(options, predict.WithBareLabelResponses())
	}
	return predict.NewClient(a.cfg.API.URL, options...)
}

func (a *app) themeSelector() (*theming.Selector, error) {
	selector, err := theming.NewSelector(theming.DefaultManifest())
	if err != nil {
		return nil, err
	}
	return selector.WithDefaults(a.cfg.Theme.Name, a.cfg.Theme.Variant), nil
}

// decorators returns the copy overlays selected by --ui-schema.
func (a *app) decorators() ([]model.Decorator, error) {
	switch strings.TrimSpace(a.uiSchema) {
	case "":
		decorator, err := uischema.Default()
		if err != nil {
			return nil, err
		}
		return []model.Decorator{decorator}, nil
	case "none":
		return nil, nil
	default:
		store, err := uischema.LoadFS(os.DirFS(a.uiSchema))
		if err != nil {
			return nil, err
		}
		return []model.Decorator{uischema.NewDecorator(store)}, nil
	}
}
