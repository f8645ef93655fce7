// Package theming resolves go-theme manifests into renderer configuration.
package theming

import (
	"fmt"
	"path"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// DefaultTheme names the built-in manifest.
const DefaultTheme = "obesense"

// DefaultManifest returns the built-in theme with light and dark variants.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			"accent":  "#2f6f4f",
			"danger":  "#b3261e",
			"surface": "#ffffff",
			"text":    "#1d1d1f",
			"muted":   "#5f6368",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"vanilla.stylesheet": "obesense.css",
			},
		},
		Variants: map[string]theme.Variant{
			"light": {},
			"dark": {
				Tokens: map[string]string{
					"accent":  "#8ab4f8",
					"surface": "#202124",
					"text":    "#e8eaed",
					"muted":   "#9aa0a6",
				},
			},
		},
	}
}

// Selector is an in-memory theme.ThemeSelector over registered manifests.
type Selector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests; the first one becomes the default theme.
func NewSelector(manifests ...*theme.Manifest) (*Selector, error) {
	s := &Selector{manifests: make(map[string]*theme.Manifest)}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds manifest. Names must be unique.
func (s *Selector) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return fmt.Errorf("theming: manifest name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[manifest.Name]; exists {
		return fmt.Errorf("theming: theme %q already registered", manifest.Name)
	}
	s.manifests[manifest.Name] = manifest
	if s.defaultTheme == "" {
		s.defaultTheme = manifest.Name
	}
	return nil
}

// WithDefaults sets the theme and variant used when Select receives blanks.
func (s *Selector) WithDefaults(name, variant string) *Selector {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name != "" {
		s.defaultTheme = name
	}
	s.defaultVariant = variant
	return s
}

// Select resolves name and variant, falling back to the defaults for blanks.
// Unknown variants are an error; an empty variant selects the base tokens.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name == "" {
		name = s.defaultTheme
	}
	if variant == "" {
		variant = s.defaultVariant
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("theming: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("theming: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig merges the selected variant over the base manifest. Tokens
// become "--obs-<token>" CSS custom properties.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant := manifest.Variants[selection.Variant]

	tokens := merge(manifest.Tokens, variant.Tokens)
	partials := merge(manifest.Templates, variant.Templates)
	files := merge(manifest.Assets.Files, variant.Assets.Files)
	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--obs-"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
				return file
			}
			return path.Join(prefix, file)
		},
	}
}

// Resolve selects name and variant from selector and builds the config.
func Resolve(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return RendererConfig(selection), nil
}

func merge(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
