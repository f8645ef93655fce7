package model

import (
	"strings"

	"github.com/goliatone/go-obesense/pkg/schema"
)

// Builder converts attribute schemas into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.OptionLabeler != nil {
		opts.OptionLabeler = options.OptionLabeler
	}
	if options.Endpoint != "" {
		opts.Endpoint = options.Endpoint
	}
	if options.Method != "" {
		opts.Method = options.Method
	}
	return &Builder{opts: opts}
}

// Build produces one Field per schema descriptor, in schema order, and groups
// them into sections.
func (b *Builder) Build(s schema.Schema) (FormModel, error) {
	if err := validateSchema(s); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		ID:       s.Name(),
		Endpoint: b.opts.Endpoint,
		Method:   strings.ToUpper(b.opts.Method),
		Fields:   make([]Field, 0, s.Len()),
	}

	for _, descriptor := range s.Fields() {
		form.Fields = append(form.Fields, b.buildField(descriptor))
	}
	form.Sections = buildSections(s)
	return form, nil
}

func (b *Builder) buildField(descriptor schema.Field) Field {
	field := Field{
		Name:        descriptor.Name,
		Required:    true,
		Label:       descriptor.Label,
		Description: descriptor.Help,
		Group:       descriptor.Group,
		Default:     descriptor.DefaultValue(),
	}
	if field.Label == "" {
		field.Label = b.opts.Labeler(descriptor.Name)
	}

	if descriptor.Kind == schema.KindEnumerated {
		field.Type = FieldTypeString
	} else {
		field.Type = FieldTypeNumber
	}

	switch descriptor.Control() {
	case schema.ControlSelect:
		field.Control = ControlSelect
		labeler := b.opts.OptionLabeler
		if descriptor.Kind == schema.KindNumeric {
			// numeric choices are shown as-is
			labeler = func(value string) string { return value }
		}
		field.Options = DeriveOptions(descriptor.OptionValues(), labeler)
		if field.Default != nil {
			field.Default = defaultOptionValue(field.Default)
		}
	default:
		field.Control = ControlNumber
	}

	field.Validations = numericRules(descriptor)
	return field
}

func numericRules(descriptor schema.Field) []ValidationRule {
	if descriptor.Kind != schema.KindNumeric {
		return nil
	}
	var rules []ValidationRule
	if descriptor.Min != nil {
		rules = append(rules, numberRule(ValidationRuleMin, *descriptor.Min))
	}
	if descriptor.Max != nil {
		rules = append(rules, numberRule(ValidationRuleMax, *descriptor.Max))
	}
	if descriptor.Step != nil {
		rules = append(rules, numberRule(ValidationRuleStep, *descriptor.Step))
	}
	return rules
}

func numberRule(kind string, value float64) ValidationRule {
	return ValidationRule{
		Kind:   kind,
		Params: map[string]string{"value": schema.FormatNumber(value)},
	}
}

func defaultOptionValue(value any) string {
	if number, ok := schema.Number(value); ok {
		return schema.FormatNumber(number)
	}
	if str, ok := value.(string); ok {
		return str
	}
	return ""
}

func buildSections(s schema.Schema) []Section {
	var (
		sections []Section
		index    = make(map[string]int)
	)
	for _, descriptor := range s.Fields() {
		title := descriptor.Group
		idx, ok := index[title]
		if !ok {
			idx = len(sections)
			index[title] = idx
			sections = append(sections, Section{Title: title})
		}
		sections[idx].Fields = append(sections[idx].Fields, descriptor.Name)
	}
	return sections
}
