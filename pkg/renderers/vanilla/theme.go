package vanilla

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

type themeView struct {
	Name         string `json:"name,omitempty"`
	Variant      string `json:"variant,omitempty"`
	CSSVarsStyle string `json:"css_vars_style,omitempty"`
	Stylesheet   string `json:"stylesheet,omitempty"`
}

const themeAssetStylesheet = "vanilla.stylesheet"

func buildTheme(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	view := themeView{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		view.Stylesheet = strings.TrimSpace(cfg.AssetURL(themeAssetStylesheet))
	}
	return view
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
