package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML overlay files.
// When fsys is nil or no overlay files are present, the returned store is
// empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for formID, raw := range doc.Forms {
			id := strings.TrimSpace(formID)
			if id == "" {
				return fmt.Errorf("uischema: file %s defines an empty form id", path)
			}
			if _, exists := store.forms[id]; exists {
				return fmt.Errorf("uischema: duplicate form %q (file %s)", id, path)
			}
			form, err := normaliseForm(raw, id, path)
			if err != nil {
				return err
			}
			store.forms[id] = form
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Form returns the overlay for the supplied form id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// Empty reports whether the store holds any overlays.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Title       string                 `json:"title" yaml:"title"`
	Description string                 `json:"description" yaml:"description"`
	Sections    []SectionConfig        `json:"sections" yaml:"sections"`
	Fields      map[string]FieldConfig `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML", source)
}

func normaliseForm(raw formFile, id, source string) (Form, error) {
	form := Form{
		ID:          id,
		Source:      source,
		Title:       raw.Title,
		Description: raw.Description,
		Fields:      make(map[string]FieldConfig, len(raw.Fields)),
	}

	seen := make(map[string]bool, len(raw.Sections))
	for _, section := range raw.Sections {
		sectionID := strings.TrimSpace(section.ID)
		if sectionID == "" {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) has a section without id", id, source)
		}
		if seen[sectionID] {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) defines duplicate section %q", id, source, sectionID)
		}
		seen[sectionID] = true
		section.ID = sectionID
		form.Sections = append(form.Sections, section)
	}

	for key, cfg := range raw.Fields {
		name := strings.TrimSpace(key)
		if name == "" {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) has an empty field key", id, source)
		}
		form.Fields[name] = cloneFieldConfig(cfg)
	}
	return form, nil
}

func cloneFieldConfig(cfg FieldConfig) FieldConfig {
	out := cfg
	if len(cfg.Metadata) > 0 {
		out.Metadata = make(map[string]string, len(cfg.Metadata))
		for k, v := range cfg.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
