package form

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lookup resolves a dotted key against a value tree. A flat entry stored
// under the full dotted key takes precedence over nested maps, so both
// {"company.companyName": "x"} and {"company": {"companyName": "x"}} work.
func Lookup(values map[string]any, key string) (any, bool) {
	if values == nil || key == "" {
		return nil, false
	}
	if value, ok := values[key]; ok {
		return value, true
	}

	var current any = values
	for _, segment := range strings.Split(key, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// Assign writes value under a dotted key, creating intermediate maps as
// needed. Numeric segments are treated as map keys; forms address repeated
// blocks by name, not index.
func Assign(values map[string]any, key string, value any) error {
	if values == nil {
		return fmt.Errorf("form: values map is nil")
	}
	segments := strings.Split(key, ".")
	node := values
	for i, segment := range segments {
		if segment == "" {
			return fmt.Errorf("form: empty segment in key %q", key)
		}
		if i == len(segments)-1 {
			node[segment] = value
			return nil
		}
		child, ok := node[segment].(map[string]any)
		if !ok {
			if existing, present := node[segment]; present && existing != nil {
				return fmt.Errorf("form: %q is not an object", strings.Join(segments[:i+1], "."))
			}
			child = make(map[string]any)
			node[segment] = child
		}
		node = child
	}
	return nil
}

// CloneValues deep-copies a value tree.
func CloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return CloneValues(typed)
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}

// DecodeValues parses a YAML (or JSON) value tree. An empty document yields
// an empty map.
func DecodeValues(data []byte) (map[string]any, error) {
	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("form: decode values: %w", err)
	}
	if values == nil {
		values = make(map[string]any)
	}
	return values, nil
}

// LoadValues reads and decodes a value tree from path.
func LoadValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("form: read values %s: %w", path, err)
	}
	return DecodeValues(data)
}
