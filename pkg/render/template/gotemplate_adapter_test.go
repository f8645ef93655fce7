package template_test

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-obesense/pkg/render/template/gotemplate"
)

//go:embed testdata/templates
var embeddedTemplates embed.FS

func TestEngineRenderTemplateWritesOutput(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada!\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if buf.String() != got {
		t.Fatalf("writer mismatch: %q vs %q", buf.String(), got)
	}
}

func TestEngineOptionLabelFilter(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("option", map[string]any{
		"options": []any{
			map[string]any{"value": "Public_Transportation"},
			map[string]any{"value": "no"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<option value="Public_Transportation">Public Transportation</option><option value="no">No</option>`
	if strings.TrimSpace(got) != want {
		t.Fatalf("unexpected output\nwant: %s\n got: %s", want, got)
	}
}

func TestEngineNumberFilters(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderString(`{{ step|number }}|{{ height|form_value }}|{{ missing|form_value }}`, map[string]any{
		"step":   0.01,
		"height": 145.0,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "0.01|145|" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineGlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	got, err := engine.Render("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(got) != "staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(got) != "ADA!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineBaseDirOverridesBundle(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "partials"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "partials", "name.tmpl"), []byte("{{ name|upper }}"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(testTemplates(t)), gotemplate.WithBaseDir(dir))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("page", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	if strings.TrimSpace(got) != "<p>ADA</p>" {
		t.Fatalf("expected disk partial inside bundled page, got %q", got)
	}

	got, err = engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if got != "Hello Ada!\n" {
		t.Fatalf("expected bundled template, got %q", got)
	}
}

func TestEngineBaseDirMustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	if _, err := gotemplate.New(gotemplate.WithFS(testTemplates(t)), gotemplate.WithBaseDir(missing)); err == nil {
		t.Fatalf("expected error for missing template dir")
	}
}

func TestEngineGlobalData(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(testTemplates(t)),
		gotemplate.WithGlobalData(map[string]any{"settings": map[string]any{"env": "production"}}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.Render("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(got) != "production" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineHooks(t *testing.T) {
	var seen []string
	var buf bytes.Buffer
	engine, err := gotemplate.New(
		gotemplate.WithFS(testTemplates(t)),
		gotemplate.WithPreHooks(func(ctx *gotemplatepkg.HookContext) error {
			seen = append(seen, "pre:"+ctx.TemplateName)
			ctx.Data = map[string]any{"name": "Grace"}
			return nil
		}),
		gotemplate.WithPostHooks(func(ctx *gotemplatepkg.HookContext) (string, error) {
			seen = append(seen, "post:"+ctx.TemplateName)
			return strings.ToUpper(ctx.Output), nil
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "HELLO GRACE!\n" || buf.String() != got {
		t.Fatalf("unexpected output %q (writer %q)", got, buf.String())
	}
	if strings.Join(seen, ",") != "pre:hello,post:hello" {
		t.Fatalf("unexpected hook order %v", seen)
	}

	if _, err := engine.RenderString("{{ name }}", map[string]any{"name": "x"}); err != nil {
		t.Fatalf("render string: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("hooks should not run for inline templates, got %v", seen)
	}
}

func TestEngineHookErrors(t *testing.T) {
	boom := errors.New("boom")
	engine, err := gotemplate.New(
		gotemplate.WithFS(testTemplates(t)),
		gotemplate.WithPostHooks(func(*gotemplatepkg.HookContext) (string, error) { return "", boom }),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.RenderTemplate("hello", nil); !errors.Is(err, boom) {
		t.Fatalf("expected post hook error, got %v", err)
	}
}

func TestNewRequiresTemplateSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func testTemplates(t *testing.T) fs.FS {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	return templatesFS
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(testTemplates(t)))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
