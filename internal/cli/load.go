package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfocus/pkg/aggregate"
	"github.com/goliatone/go-formfocus/pkg/form"
	"github.com/goliatone/go-formfocus/pkg/model"
	"github.com/goliatone/go-formfocus/pkg/outcome"
)

func (a *app) compileForm(path string) (*form.Form, error) {
	def, err := model.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return form.Compile(def, form.WithLogger(a.logger))
}

// loadServerErrors reads server outcomes from path. Two shapes are accepted:
// a list of {key, value} field errors, or an error payload mapping raw paths
// to one or more messages. Form-level messages from either shape are returned
// separately.
func loadServerErrors(path string, keys []string) (*outcome.Results, []string, error) {
	if path == "" {
		return nil, nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("server errors: read %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("server errors: decode %s: %w", path, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return outcome.NewResults(), nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var items []aggregate.ServerError
		if err := root.Decode(&items); err != nil {
			return nil, nil, fmt.Errorf("server errors: decode %s: %w", path, err)
		}
		results, formErrors := aggregate.SplitServerErrors(items)
		return results, formErrors, nil

	case yaml.MappingNode:
		var raw map[string]any
		if err := root.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("server errors: decode %s: %w", path, err)
		}
		payload := make(map[string][]string, len(raw))
		for key, value := range raw {
			payload[key] = messages(value)
		}
		results, formErrors := aggregate.FromErrorPayload(keys, payload)
		return results, formErrors, nil

	default:
		return nil, nil, fmt.Errorf("server errors: %s must hold a list or a mapping", path)
	}
}

func messages(value any) []string {
	switch typed := value.(type) {
	case nil:
		return nil
	case string:
		return []string{typed}
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(typed)}
	}
}
