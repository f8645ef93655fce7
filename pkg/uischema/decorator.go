package uischema

import (
	"sort"

	"github.com/goliatone/go-obesense/pkg/model"
)

// Decorator applies overlay copy to a form model.
type Decorator struct {
	store *Store
}

var _ model.Decorator = (*Decorator)(nil)

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate rewrites titles, labels and help text, then moves and orders
// fields and sections. Forms without an overlay are left untouched.
func (d *Decorator) Decorate(form *model.FormModel) error {
	if d == nil || d.store.Empty() || form == nil {
		return nil
	}
	overlay, ok := d.store.Form(form.ID)
	if !ok {
		return nil
	}

	if title := sanitizeText(overlay.Title); title != "" {
		form.Summary = title
	}
	if description := sanitizeText(overlay.Description); description != "" {
		form.Description = description
	}
	for i := range form.Fields {
		applyField(&form.Fields[i], overlay.Fields[form.Fields[i].Name])
	}
	form.Sections = arrangeSections(form, overlay)
	return nil
}

func applyField(field *model.Field, cfg FieldConfig) {
	if label := sanitizeText(cfg.Label); label != "" {
		field.Label = label
	}
	if description := sanitizeText(cfg.Description); description != "" {
		field.Description = description
	}
	if cfg.Section != "" {
		field.Group = cfg.Section
	}
	if len(cfg.Metadata) > 0 {
		if field.Metadata == nil {
			field.Metadata = make(map[string]string, len(cfg.Metadata))
		}
		for k, v := range cfg.Metadata {
			field.Metadata[k] = v
		}
	}
}

type sectionSlot struct {
	section model.Section
	order   int
	index   int
}

// arrangeSections rebuilds sections from the (possibly reassigned) field
// groups. Sections keep their first-seen position unless the overlay gives an
// order; fields inside a section sort by overlay order, then model order.
func arrangeSections(form *model.FormModel, overlay Form) []model.Section {
	configs := make(map[string]SectionConfig, len(overlay.Sections))
	for _, cfg := range overlay.Sections {
		configs[cfg.ID] = cfg
	}

	position := make(map[string]int, len(form.Fields))
	for i, field := range form.Fields {
		position[field.Name] = i
	}

	var groups []string
	members := make(map[string][]string)
	for _, section := range form.Sections {
		if _, ok := members[section.Title]; !ok {
			groups = append(groups, section.Title)
			members[section.Title] = nil
		}
	}
	for _, field := range form.Fields {
		if _, ok := members[field.Group]; !ok {
			groups = append(groups, field.Group)
		}
		members[field.Group] = append(members[field.Group], field.Name)
	}

	slots := make([]sectionSlot, 0, len(groups))
	for i, group := range groups {
		names := members[group]
		if len(names) == 0 {
			continue
		}
		sort.SliceStable(names, func(a, b int) bool {
			return fieldOrder(overlay, names[a], position) < fieldOrder(overlay, names[b], position)
		})

		title := group
		order := len(form.Fields) + i
		if cfg, ok := configs[group]; ok {
			if cfg.Title != "" {
				title = sanitizeText(cfg.Title)
			}
			if cfg.Order != nil {
				order = *cfg.Order
			}
		}
		slots = append(slots, sectionSlot{
			section: model.Section{Title: title, Fields: names},
			order:   order,
			index:   i,
		})
	}

	sort.SliceStable(slots, func(a, b int) bool {
		if slots[a].order != slots[b].order {
			return slots[a].order < slots[b].order
		}
		return slots[a].index < slots[b].index
	})

	out := make([]model.Section, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slot.section)
	}
	return out
}

func fieldOrder(overlay Form, name string, position map[string]int) int {
	if cfg, ok := overlay.Fields[name]; ok && cfg.Order != nil {
		return *cfg.Order
	}
	return len(position) + position[name]
}
