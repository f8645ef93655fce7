package gotemplate

import (
	"encoding/json"
	"reflect"

	"github.com/flosch/pongo2/v6"
)

// toContext flattens data into plain maps, slices, and scalars. Structs pass
// through a JSON round trip so templates see their json field names.
func toContext(data any) (pongo2.Context, error) {
	var root map[string]any
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		root = v
	case map[string]any:
		root = v
	default:
		decoded, err := viaJSON(v)
		if err != nil {
			return nil, err
		}
		m, ok := decoded.(map[string]any)
		if !ok {
			return pongo2.Context{}, nil
		}
		root = m
	}

	out := make(pongo2.Context, len(root))
	for key, value := range root {
		if key == "" {
			continue
		}
		converted, err := plain(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func plain(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, float64, int:
		return v, nil
	case pongo2.Context:
		return plainMap(v)
	case map[string]any:
		return plainMap(v)
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			converted, err := plain(item)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	}
	if reflect.ValueOf(value).Kind() == reflect.Func {
		return value, nil
	}
	decoded, err := viaJSON(value)
	if err != nil {
		return nil, err
	}
	return plain(decoded)
}

func plainMap(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		converted, err := plain(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func viaJSON(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
