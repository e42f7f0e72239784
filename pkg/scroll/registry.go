package scroll

import (
	"sort"
	"sync"
)

// Registry maps field keys to element handles. Forms own one registry and
// fields register themselves on mount; the returned release func removes the
// handle again unless a newer handle replaced it in the meantime.
type Registry struct {
	mu       sync.RWMutex
	next     uint64
	elements map[string]registered
}

type registered struct {
	id      uint64
	element Element
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{elements: make(map[string]registered)}
}

// Register stores element under key, replacing any previous handle.
func (r *Registry) Register(key string, element Element) func() {
	r.mu.Lock()
	r.next++
	id := r.next
	r.elements[key] = registered{id: id, element: element}
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if current, ok := r.elements[key]; ok && current.id == id {
			delete(r.elements, key)
		}
	}
}

// Lookup returns the handle for key.
func (r *Registry) Lookup(key string) (Element, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.elements[key]
	if !ok {
		return nil, false
	}
	return entry.element, true
}

// Keys lists registered keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.elements))
	for key := range r.elements {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
