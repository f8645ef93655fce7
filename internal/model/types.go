package model

// FieldType is the JSON type a control writes into the form state.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeNumber FieldType = "number"
)

// ControlType names the interactive control a field renders as.
type ControlType string

const (
	ControlNumber ControlType = "number"
	ControlSelect ControlType = "select"
)

const (
	ValidationRuleMin  = "min"
	ValidationRuleMax  = "max"
	ValidationRuleStep = "step"
)

// ValidationRule mirrors a schema constraint so renderers can map it onto
// control attributes. Thresholds are encoded in Params["value"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Option is one entry of a select control. Value is written into the form
// state; Label is display-only.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field models an individual control inside a generated form.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Control     ControlType       `json:"control"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Description string            `json:"description,omitempty"`
	Group       string            `json:"group,omitempty"`
	Default     any               `json:"default,omitempty"`
	Options     []Option          `json:"options,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Section groups fields under a heading, in display order.
type Section struct {
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	ID          string            `json:"id"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Sections    []Section         `json:"sections,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field returns the field named name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Rule returns the validation rule of the given kind, if declared.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}
