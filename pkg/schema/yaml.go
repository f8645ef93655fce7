package schema

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-obesense/pkg/source"
)

type document struct {
	Name   string          `yaml:"name"`
	Fields []fieldDocument `yaml:"fields"`
}

type fieldDocument struct {
	Name    string    `yaml:"name"`
	Kind    Kind      `yaml:"kind"`
	Label   string    `yaml:"label"`
	Help    string    `yaml:"help"`
	Group   string    `yaml:"group"`
	Values  []string  `yaml:"values"`
	Min     *float64  `yaml:"min"`
	Max     *float64  `yaml:"max"`
	Step    *float64  `yaml:"step"`
	Choices []float64 `yaml:"choices"`
	Default yaml.Node `yaml:"default"`
}

// Parse decodes a YAML (or JSON) schema document.
//
//	name: obesity
//	fields:
//	  - name: gender
//	    kind: enumerated
//	    values: [Male, Female]
//	  - name: height
//	    kind: numeric
//	    min: 145
//	    max: 198
func Parse(data []byte) (Schema, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Schema{}, fmt.Errorf("schema: parse document: %w", err)
	}

	fields := make([]Field, 0, len(doc.Fields))
	for idx, raw := range doc.Fields {
		field := Field{
			Name:    strings.TrimSpace(raw.Name),
			Kind:    Kind(strings.ToLower(strings.TrimSpace(string(raw.Kind)))),
			Label:   raw.Label,
			Help:    raw.Help,
			Group:   raw.Group,
			Values:  raw.Values,
			Min:     raw.Min,
			Max:     raw.Max,
			Step:    raw.Step,
			Choices: raw.Choices,
		}
		def, err := decodeDefault(field.Kind, raw.Default)
		if err != nil {
			return Schema{}, fmt.Errorf("schema: field %d (%s): %w", idx, field.Name, err)
		}
		field.Default = def
		fields = append(fields, field)
	}
	return New(doc.Name, fields...)
}

func decodeDefault(kind Kind, node yaml.Node) (any, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if kind == KindNumeric {
		var number float64
		if err := node.Decode(&number); err != nil {
			return nil, fmt.Errorf("numeric default: %w", err)
		}
		return number, nil
	}
	var value string
	if err := node.Decode(&value); err != nil {
		return nil, fmt.Errorf("default: %w", err)
	}
	return value, nil
}

// Load fetches a schema document through loader and parses it.
func Load(ctx context.Context, loader source.Loader, src source.Source) (Schema, error) {
	if loader == nil {
		return Schema{}, fmt.Errorf("schema: loader is required")
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return Schema{}, fmt.Errorf("schema: load %s: %w", locationOf(src), err)
	}
	return Parse(doc.Raw())
}

func locationOf(src source.Source) string {
	if src == nil {
		return "<nil>"
	}
	return src.Location()
}
