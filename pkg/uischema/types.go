package uischema

// Store keeps the parsed form overlays. It is safe for concurrent readers when
// treated as immutable after construction.
type Store struct {
	forms map[string]Form
}

// Form describes the overrides for one form model, matched by FormModel.ID.
type Form struct {
	ID          string
	Source      string
	Title       string
	Description string
	Sections    []SectionConfig
	Fields      map[string]FieldConfig
}

// SectionConfig retitles and orders a section. ID matches the section title
// produced by the model builder, which is the schema group.
type SectionConfig struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Order *int   `json:"order,omitempty" yaml:"order,omitempty"`
}

// FieldConfig customises the copy and placement of a single field.
type FieldConfig struct {
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Section     string            `json:"section,omitempty" yaml:"section,omitempty"`
	Order       *int              `json:"order,omitempty" yaml:"order,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
