// Package fileio loads schema and payload documents for the CLI. JSON is the
// default; .yaml/.yml files go through the YAML decoder.
package fileio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadValue reads path and decodes it into a generic value tree
// (map[string]any / []any / scalars).
func LoadValue(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return DecodeJSON(data)
	}
}

// DecodeJSON decodes JSON bytes into a generic value tree.
func DecodeJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

// DecodeYAML decodes YAML bytes into a generic value tree with string map
// keys, matching the shape the JSON decoder produces.
func DecodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return stringifyKeys(v), nil
}

// stringifyKeys rewrites any map[any]any nodes the YAML decoder may emit for
// non-scalar keys into map[string]any.
func stringifyKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = stringifyKeys(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringifyKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = stringifyKeys(e)
		}
		return out
	default:
		return v
	}
}
