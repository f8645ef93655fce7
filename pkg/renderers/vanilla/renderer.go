package vanilla

import (
	"context"
	"fmt"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-obesense/pkg/model"
	"github.com/goliatone/go-obesense/pkg/render"
	rendertemplate "github.com/goliatone/go-obesense/pkg/render/template"
	gotemplate "github.com/goliatone/go-obesense/pkg/render/template/gotemplate"
)

const (
	// Name identifies the renderer in a render.Registry.
	Name = "vanilla"

	formTemplate = "templates/form.tmpl"
)

type Option func(*config)

type config struct {
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	postHooks        []gotemplatepkg.PostHook
	inlineStyles     bool
	stylesheets      []string
	title            string
}

// WithTemplatesDir overrides templates from a directory on disk. The
// directory mirrors the bundle layout (templates/form.tmpl,
// templates/partials/*.tmpl); files it lacks come from the bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithPostHooks post-processes the rendered page. Ignored when a custom
// template renderer is injected.
func WithPostHooks(hooks ...gotemplatepkg.PostHook) Option {
	return func(cfg *config) {
		cfg.postHooks = append(cfg.postHooks, hooks...)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithDefaultStyles inlines the embedded stylesheet into the page head.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithStylesheet links an additional stylesheet.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithTitle sets the page title and heading.
func WithTitle(title string) Option {
	return func(cfg *config) {
		cfg.title = strings.TrimSpace(title)
	}
}

// Renderer produces a complete HTML page: the form, per-field errors, the
// submit control, and the result panel.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
// Renderer-wide values (site title, stylesheets, inline styles) are template
// globals under "site"; per-request values are passed on each render.
func New(options ...Option) (*Renderer, error) {
	cfg := config{title: "Obesity risk estimate"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	site := map[string]any{
		"title":       cfg.title,
		"stylesheets": append([]string{}, cfg.stylesheets...),
		"styles":      "",
	}
	if cfg.inlineStyles {
		site["styles"] = defaultStylesheet()
	}
	globals := map[string]any{"site": site}

	templates := cfg.templateRenderer
	if templates == nil {
		engineOptions := []gotemplate.Option{
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithGlobalData(globals),
			gotemplate.WithPostHooks(cfg.postHooks...),
		}
		if cfg.templatesDir != "" {
			engineOptions = append(engineOptions, gotemplate.WithBaseDir(cfg.templatesDir))
		}
		engine, err := gotemplate.New(engineOptions...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	} else if err := templates.GlobalContext(globals); err != nil {
		return nil, fmt.Errorf("vanilla renderer: template globals: %w", err)
	}

	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	action := form.Endpoint
	if opts.Action != "" {
		action = opts.Action
	}

	out, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"title":       form.Summary,
		"lead":        form.Description,
		"form_id":     form.ID,
		"action":      action,
		"method":      strings.ToLower(form.Method),
		"sections":    buildSections(form, opts),
		"has_errors":  opts.HasErrors(),
		"loading":     opts.Loading,
		"result":      buildResult(opts.Result),
		"theme":       buildTheme(opts.Theme),
		"error_count": len(opts.Errors),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(out), nil
}
