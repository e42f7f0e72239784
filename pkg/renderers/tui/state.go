package tui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-formfocus/pkg/form"
	"github.com/goliatone/go-formfocus/pkg/outcome"
)

// State tracks collected values and the server outcomes still in force, both
// keyed by dotted paths. Higher-level orchestration lives in the renderer.
type State struct {
	values map[string]any
	server *outcome.Results
}

// NewState seeds the state with prefilled values and server outcomes. Both
// are copied.
func NewState(prefill map[string]any, server *outcome.Results) *State {
	return &State{
		values: form.CloneValues(prefill),
		server: server.Clone(),
	}
}

// Values returns the current value map (mutable).
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// Server returns the server outcomes not yet superseded by a new answer.
func (s *State) Server() *outcome.Results {
	if s == nil {
		return nil
	}
	return s.server
}

// GetValue resolves a dotted path into the values map.
func (s *State) GetValue(path string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return form.Lookup(s.values, path)
}

// SetValue records an answer. When the answer changes the value, a server
// outcome for the same path no longer describes it and is dropped. Numbers
// compare by value, so a prefilled 2 answered again as 2.0 is unchanged.
func (s *State) SetValue(path string, value any) error {
	if s == nil {
		return fmt.Errorf("tui: state is nil")
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	previous, existed := form.Lookup(s.values, path)
	if err := form.Assign(s.values, path, value); err != nil {
		return err
	}
	if strings.Contains(path, ".") {
		// a flat dotted prefill entry would shadow the nested answer
		delete(s.values, path)
	}
	if !existed || !sameValue(previous, value) {
		s.server.Delete(path)
	}
	return nil
}

func sameValue(a, b any) bool {
	if x, ok := numeric(a); ok {
		y, ok := numeric(b)
		return ok && x == y
	}
	return reflect.DeepEqual(a, b)
}

func numeric(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}

// DropServer removes server outcomes for keys the session cannot prompt for.
func (s *State) DropServer(keep func(key string) bool) {
	if s == nil || s.server == nil {
		return
	}
	for _, key := range s.server.Keys() {
		if !keep(key) {
			s.server.Delete(key)
		}
	}
}
