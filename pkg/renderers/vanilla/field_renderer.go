package vanilla

import (
	"strings"

	"github.com/goliatone/go-obesense/pkg/model"
	"github.com/goliatone/go-obesense/pkg/render"
	"github.com/goliatone/go-obesense/pkg/schema"
)

type fieldView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Description string       `json:"description,omitempty"`
	Control     string       `json:"control"`
	Value       any          `json:"value"`
	Min         string       `json:"min,omitempty"`
	Max         string       `json:"max,omitempty"`
	Step        string       `json:"step,omitempty"`
	Options     []optionView `json:"options,omitempty"`
	Error       string       `json:"error,omitempty"`
	Required    bool         `json:"required"`
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type sectionView struct {
	Title  string      `json:"title"`
	Fields []fieldView `json:"fields"`
}

func controlID(name string) string {
	return "obs-" + strings.TrimSpace(name)
}

// buildField projects one model field and its current state onto the values
// the partial templates print.
func buildField(field model.Field, opts render.RenderOptions) fieldView {
	view := fieldView{
		ID:          controlID(field.Name),
		Name:        field.Name,
		Label:       field.Label,
		Description: field.Description,
		Control:     string(field.Control),
		Value:       opts.ValueFor(field.Name, field.Default),
		Error:       opts.Errors[field.Name],
		Required:    field.Required,
	}
	if rule, ok := field.Rule(model.ValidationRuleMin); ok {
		view.Min = rule.Params["value"]
	}
	if rule, ok := field.Rule(model.ValidationRuleMax); ok {
		view.Max = rule.Params["value"]
	}
	if rule, ok := field.Rule(model.ValidationRuleStep); ok {
		view.Step = rule.Params["value"]
	}

	if field.Control == model.ControlSelect {
		current := optionKey(view.Value)
		view.Options = make([]optionView, 0, len(field.Options))
		for _, option := range field.Options {
			view.Options = append(view.Options, optionView{
				Value:    option.Value,
				Label:    option.Label,
				Selected: current != "" && option.Value == current,
			})
		}
	}
	return view
}

// optionKey formats a stored value the way option values are written, so
// 2.0 matches the "2" option.
func optionKey(value any) string {
	if value == nil {
		return ""
	}
	if number, ok := schema.Number(value); ok {
		return schema.FormatNumber(number)
	}
	if str, ok := value.(string); ok {
		return str
	}
	return ""
}

func buildSections(form model.FormModel, opts render.RenderOptions) []sectionView {
	if len(form.Sections) == 0 {
		fields := make([]fieldView, 0, len(form.Fields))
		for _, field := range form.Fields {
			fields = append(fields, buildField(field, opts))
		}
		return []sectionView{{Fields: fields}}
	}

	sections := make([]sectionView, 0, len(form.Sections))
	for _, section := range form.Sections {
		view := sectionView{Title: section.Title}
		for _, name := range section.Fields {
			field, ok := form.Field(name)
			if !ok {
				continue
			}
			view.Fields = append(view.Fields, buildField(field, opts))
		}
		sections = append(sections, view)
	}
	return sections
}
