package tui

// Theme captures optional message prefixes the renderer applies when printing
// notices.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithWidth sets the width of the result card.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}
