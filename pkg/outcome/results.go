package outcome

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Results is an ordered mapping from field key to outcome. A nil outcome
// records that the field was validated but has no opinion yet. Insertion order
// is the declaration order of the validation pass; overwriting a key keeps its
// original position.
type Results struct {
	keys  []string
	items map[string]*Outcome
}

// NewResults returns an empty mapping.
func NewResults() *Results {
	return &Results{items: make(map[string]*Outcome)}
}

// Set stores value under key. Passing nil records an absent outcome.
func (r *Results) Set(key string, value *Outcome) {
	if r.items == nil {
		r.items = make(map[string]*Outcome)
	}
	if _, exists := r.items[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.items[key] = value
}

// Get returns the outcome for key. The boolean reports whether the key is
// present at all; a present key may still map to nil.
func (r *Results) Get(key string) (*Outcome, bool) {
	if r == nil || r.items == nil {
		return nil, false
	}
	value, ok := r.items[key]
	return value, ok
}

// Delete removes key, preserving the order of the remaining entries.
func (r *Results) Delete(key string) {
	if r == nil || r.items == nil {
		return
	}
	if _, ok := r.items[key]; !ok {
		return
	}
	delete(r.items, key)
	for i, existing := range r.keys {
		if existing == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns a copy of the keys in declaration order.
func (r *Results) Keys() []string {
	if r == nil || len(r.keys) == 0 {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// Len reports the number of keys, absent entries included.
func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Each visits every entry in declaration order. Returning false stops the
// walk.
func (r *Results) Each(fn func(key string, value *Outcome) bool) {
	if r == nil {
		return
	}
	for _, key := range r.keys {
		if !fn(key, r.items[key]) {
			return
		}
	}
}

// Clone returns a copy whose entries can be replaced without affecting r.
// Outcomes themselves are immutable and shared.
func (r *Results) Clone() *Results {
	out := NewResults()
	r.Each(func(key string, value *Outcome) bool {
		out.Set(key, value)
		return true
	})
	return out
}

// Map flattens the mapping for callers that do not care about order.
func (r *Results) Map() map[string]*Outcome {
	if r == nil || len(r.keys) == 0 {
		return nil
	}
	out := make(map[string]*Outcome, len(r.keys))
	for key, value := range r.items {
		out[key] = value
	}
	return out
}

// MarshalJSON encodes the mapping as a JSON object whose members follow the
// declaration order. Absent entries encode as null.
func (r *Results) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')

		value := r.items[key]
		if value == nil {
			buf.WriteString("null")
			continue
		}
		encoded, err := value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
