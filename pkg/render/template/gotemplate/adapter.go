package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-obesense/pkg/render/template"
)

const setName = "obesense"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	templateFn map[string]any
	globalData map[string]any
	hooks      *gotemplatepkg.HookChain
}

// WithBaseDir loads templates from a directory on disk. Disk templates take
// precedence over WithFS templates with the same name; names missing on disk
// fall back to the WithFS bundle. Includes resolve relative to the including
// template in both sources.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the template extension appended to bare names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithTemplateFunc registers pongo2 filters or callable globals.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		if cfg.templateFn == nil {
			cfg.templateFn = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFn[strings.TrimSpace(name)] = fn
		}
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// WithPreHooks runs go-template pre hooks before a named template executes.
// A hook may replace the data or the template name.
func WithPreHooks(hooks ...gotemplatepkg.PreHook) Option {
	return func(cfg *config) {
		for _, hook := range hooks {
			if hook != nil {
				cfg.chain().AddPreHook(hook)
			}
		}
	}
}

// WithPostHooks runs go-template post hooks on the output of a named template.
// Each hook receives the previous hook's output.
func WithPostHooks(hooks ...gotemplatepkg.PostHook) Option {
	return func(cfg *config) {
		for _, hook := range hooks {
			if hook != nil {
				cfg.chain().AddPostHook(hook)
			}
		}
	}
}

func (cfg *config) chain() *gotemplatepkg.HookChain {
	if cfg.hooks == nil {
		cfg.hooks = gotemplatepkg.NewHookChain()
	}
	return cfg.hooks
}

// Engine is a pongo2 template set behind the TemplateRenderer contract.
// Parsed templates are cached by path.
type Engine struct {
	mu sync.RWMutex

	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	ext       string
	hooks     *gotemplatepkg.HookChain
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tmpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		info, err := os.Stat(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: template dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("gotemplate: template dir %s is not a directory", cfg.baseDir)
		}
		loaders = append(loaders, pongo2.NewFSLoader(os.DirFS(cfg.baseDir)))
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	engine := &Engine{
		set:       pongo2.NewSet(setName, loaders...),
		templates: make(map[string]*pongo2.Template),
		ext:       cfg.extension,
		hooks:     cfg.hooks,
	}
	registerDomainFilters()

	if err := engine.GlobalContext(cfg.globalData); err != nil {
		return nil, fmt.Errorf("gotemplate: apply global data: %w", err)
	}
	for name, fn := range cfg.templateFn {
		if err := engine.registerTemplateFunc(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: register template func %q: %w", name, err)
		}
	}
	return engine, nil
}

// Render executes inline template content or a named template.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate executes the named template, appending the configured
// extension when missing. Pre hooks run before lookup and post hooks run on
// the rendered output before it is written to out.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}

	meta := map[string]any{"ext": e.ext}
	if e.hooks != nil {
		pre := &gotemplatepkg.HookContext{TemplateName: name, Data: data, Metadata: meta, IsPreHook: true}
		if err := e.hooks.ExecutePreHooks(pre); err != nil {
			return "", fmt.Errorf("gotemplate: pre hook: %w", err)
		}
		name, data = pre.TemplateName, pre.Data
	}

	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}
	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	rendered, err := e.execute(tmpl, "template "+fmt.Sprintf("%q", path), data)
	if err != nil {
		return "", err
	}

	if e.hooks != nil {
		post := &gotemplatepkg.HookContext{TemplateName: name, Data: data, Metadata: meta, Output: rendered}
		rendered, err = e.hooks.ExecutePostHooks(post)
		if err != nil {
			return "", fmt.Errorf("gotemplate: post hook: %w", err)
		}
	}
	return rendered, writeAll(out, rendered)
}

// RenderString parses and executes templateContent. Hooks do not apply.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.set.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	rendered, err := e.execute(tmpl, "template string", data)
	if err != nil {
		return "", err
	}
	return rendered, writeAll(out, rendered)
}

func (e *Engine) execute(tmpl *pongo2.Template, label string, data any) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}
	return buf.String(), nil
}

func writeAll(out []io.Writer, rendered string) error {
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return err
		}
	}
	return nil
}

// RegisterFilter registers a filter. pongo2 filters are process-wide, so a
// name can only be registered once.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the set's global context.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}
	ctx, err := toContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context)
	}
	e.set.Globals.Update(ctx)
	return nil
}

func (e *Engine) registerTemplateFunc(name string, fn any) error {
	if name == "" || fn == nil {
		return nil
	}
	if filter, ok := fn.(pongo2.FilterFunction); ok {
		if pongo2.FilterExists(name) {
			return nil
		}
		return pongo2.RegisterFilter(name, filter)
	}
	if reflect.ValueOf(fn).Kind() != reflect.Func {
		return fmt.Errorf("gotemplate: %T is neither a filter nor a function", fn)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context)
	}
	e.set.Globals[name] = fn
	return nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}
