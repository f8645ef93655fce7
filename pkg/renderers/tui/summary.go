package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-obesense/pkg/model"
	"github.com/goliatone/go-obesense/pkg/render"
	"github.com/goliatone/go-obesense/pkg/result"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func cardStyle(failed bool) lipgloss.Style {
	border := lipgloss.Color("35")
	if failed {
		border = lipgloss.Color("9")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

// Render prints the answers, any validation errors, and the result card.
func (r *Renderer) Render(_ context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	var b strings.Builder

	for _, section := range sectionsOf(form) {
		if section.Title != "" {
			b.WriteString(headingStyle.Render(section.Title))
			b.WriteByte('\n')
		}
		for _, name := range section.Fields {
			field, ok := form.Field(name)
			if !ok {
				continue
			}
			b.WriteString("  ")
			b.WriteString(field.Label)
			b.WriteString(": ")
			b.WriteString(displayValue(field, opts.ValueFor(field.Name, field.Default)))
			b.WriteByte('\n')
			if msg := opts.Errors[field.Name]; msg != "" {
				b.WriteString("    ")
				b.WriteString(errorStyle.Render(r.theme.ErrorPrefix + " " + field.Label + " " + msg))
				b.WriteByte('\n')
			}
		}
	}

	if opts.Loading {
		b.WriteString(mutedStyle.Render(r.theme.InfoPrefix + " Predicting…"))
		b.WriteByte('\n')
	}
	if opts.Result != nil {
		b.WriteString(r.Card(*opts.Result))
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

// Card renders a presentation as a bordered block.
func (r *Renderer) Card(presentation result.Presentation) string {
	style := cardStyle(presentation.Failed).Width(r.width)

	var body strings.Builder
	if presentation.Label != "" {
		body.WriteString(headingStyle.Render(presentation.Label))
	}
	if presentation.Explanation != "" {
		if body.Len() > 0 {
			body.WriteString("\n\n")
		}
		body.WriteString(presentation.Explanation)
	}
	return style.Render(body.String())
}

func sectionsOf(form model.FormModel) []model.Section {
	if len(form.Sections) > 0 {
		return form.Sections
	}
	names := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}
	return []model.Section{{Fields: names}}
}

// displayValue shows select answers by their label.
func displayValue(field model.Field, value any) string {
	raw := inputDefault(value)
	if raw == "" {
		return mutedStyle.Render("(empty)")
	}
	for _, option := range field.Options {
		if option.Value == raw {
			return option.Label
		}
	}
	return raw
}
