package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// configJSON returns the config file's contents as JSON. Files named
// *.yaml or *.yml are decoded and re-encoded so the single strict JSON
// decoder in Parse covers both formats; anything else is passed through
// as JSON.
func configJSON(path string, data []byte) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return data, nil
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	j, err := json.Marshal(stringifyKeys(v))
	if err != nil {
		return nil, fmt.Errorf("yaml re-encode: %w", err)
	}
	return j, nil
}

// stringifyKeys rewrites non-string mapping keys the yaml decoder may
// produce so the tree survives encoding/json.
func stringifyKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = stringifyKeys(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = stringifyKeys(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = stringifyKeys(e)
		}
		return t
	default:
		return v
	}
}
