package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-obesense/pkg/formstate"
	"github.com/goliatone/go-obesense/pkg/model"
	"github.com/goliatone/go-obesense/pkg/render"
	"github.com/goliatone/go-obesense/pkg/schema"
)

// Name identifies the renderer in a render.Registry.
const Name = "tui"

// Renderer drives terminal sessions. Fill prompts for field values; Render
// prints a text summary of the state and the latest result.
type Renderer struct {
	driver PromptDriver
	theme  Theme
	width  int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer backed by survey prompts.
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver: newSurveyDriver(),
		theme:  Theme{InfoPrefix: "·", ErrorPrefix: "✗"},
		width:  60,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Fill prompts for each field of form, or only for names when given, and
// writes the answers into state. Numeric answers go through
// formstate.Coerce; nothing is validated here, so bad input surfaces as a
// validation error on Submit.
func (r *Renderer) Fill(ctx context.Context, form model.FormModel, state *formstate.State, names ...string) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if r.driver == nil {
		return errors.New("tui: prompt driver is nil")
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	for _, field := range form.Fields {
		if len(wanted) > 0 && !wanted[field.Name] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if msg := state.ErrorFor(field.Name); msg != "" {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s %s %s", r.theme.ErrorPrefix, field.Label, msg))
		}

		raw, err := r.prompt(ctx, field, state)
		if err != nil {
			return err
		}
		if err := state.SetInput(field.Name, raw); err != nil {
			return fmt.Errorf("tui: store %s: %w", field.Name, err)
		}
	}
	return nil
}

func (r *Renderer) prompt(ctx context.Context, field model.Field, state *formstate.State) (string, error) {
	current, _ := state.Get(field.Name)

	if field.Control != model.ControlSelect {
		return r.driver.Input(ctx, InputConfig{
			Message: field.Label,
			Default: inputDefault(current),
			Help:    inputHelp(field),
		})
	}

	if len(field.Options) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoOptions, field.Name)
	}
	labels := make([]string, 0, len(field.Options))
	defaultIdx := -1
	currentKey := inputDefault(current)
	for i, option := range field.Options {
		labels = append(labels, option.Label)
		if option.Value == currentKey {
			defaultIdx = i
		}
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         field.Description,
		})
		if err != nil {
			return "", err
		}
		if idx >= 0 && idx < len(field.Options) {
			return field.Options[idx].Value, nil
		}
		_ = r.driver.Info(ctx, fmt.Sprintf("%s invalid selection for %s", r.theme.ErrorPrefix, field.Label))
	}
}

func inputDefault(value any) string {
	if value == nil {
		return ""
	}
	if number, ok := schema.Number(value); ok {
		return schema.FormatNumber(number)
	}
	return fmt.Sprint(value)
}

func inputHelp(field model.Field) string {
	help := field.Description
	minRule, hasMin := field.Rule(model.ValidationRuleMin)
	maxRule, hasMax := field.Rule(model.ValidationRuleMax)
	var bounds string
	switch {
	case hasMin && hasMax:
		bounds = fmt.Sprintf("between %s and %s", minRule.Params["value"], maxRule.Params["value"])
	case hasMin:
		bounds = "at least " + minRule.Params["value"]
	case hasMax:
		bounds = "at most " + maxRule.Params["value"]
	}
	if bounds == "" {
		return help
	}
	if help == "" {
		return "Enter a number " + bounds
	}
	return help + " (" + bounds + ")"
}
