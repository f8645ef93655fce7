package theming_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-obesense/pkg/theming"
)

func TestResolveMergesVariantTokens(t *testing.T) {
	selector, err := theming.NewSelector(theming.DefaultManifest())
	if err != nil {
		t.Fatalf("selector: %v", err)
	}

	cfg, err := theming.Resolve(selector, "", "dark")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Theme != theming.DefaultTheme || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.CSSVars["--obs-accent"] != "#8ab4f8" {
		t.Fatalf("variant token should win, got %q", cfg.CSSVars["--obs-accent"])
	}
	if cfg.CSSVars["--obs-danger"] != "#b3261e" {
		t.Fatalf("base token should remain, got %q", cfg.CSSVars["--obs-danger"])
	}
	if got := cfg.AssetURL("vanilla.stylesheet"); got != "/assets/obesense.css" {
		t.Fatalf("unexpected asset url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("unknown asset should resolve empty, got %q", got)
	}
}

func TestSelectorDefaultsAndErrors(t *testing.T) {
	selector, err := theming.NewSelector(theming.DefaultManifest())
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	selector.WithDefaults("", "light")

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if diff := cmp.Diff([]string{theming.DefaultTheme, "light"}, []string{selection.Theme, selection.Variant}); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}

	if _, err := selector.Select("unknown", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}
	if _, err := selector.Select("", "sepia"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if err := selector.Register(theming.DefaultManifest()); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
