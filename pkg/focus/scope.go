package focus

import (
	"context"
	"sync"
)

// ScrollFunc reveals the field registered under key and reports whether a
// scroll was issued.
type ScrollFunc func(ctx context.Context, key string) bool

// Scope publishes the scroll function of the nearest enclosing scroll
// container. Containers call Provide when they mount (a page body, a tab, a
// modal with its own scroll view) and the returned release when they are torn
// down; the most recent live binding wins. Fields never hold the function
// itself, only a Capability that refuses to run once its binding is released.
type Scope struct {
	mu       sync.Mutex
	next     uint64
	bindings []*binding
}

type binding struct {
	id       uint64
	fn       ScrollFunc
	released bool
}

// NewScope returns a scope with no binding.
func NewScope() *Scope {
	return &Scope{}
}

// Provide publishes fn as the current scroll function. The release func
// withdraws it; releasing twice is harmless.
func (s *Scope) Provide(fn ScrollFunc) (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	b := &binding{id: s.next, fn: fn}
	s.bindings = append(s.bindings, b)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if b.released {
			return
		}
		b.released = true
		for i, candidate := range s.bindings {
			if candidate == b {
				s.bindings = append(s.bindings[:i], s.bindings[i+1:]...)
				break
			}
		}
	}
}

// Consume returns the current binding as a capability. With no binding the
// capability is empty and never scrolls.
func (s *Scope) Consume() Capability {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.bindings) == 0 {
		return Capability{}
	}
	return Capability{scope: s, binding: s.bindings[len(s.bindings)-1]}
}

// Generation identifies the current binding; it changes whenever a container
// provides or releases a scroll function. Zero means no binding.
func (s *Scope) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.bindings) == 0 {
		return 0
	}
	return s.bindings[len(s.bindings)-1].id
}

// Capability is a snapshot of a scroll binding.
type Capability struct {
	scope   *Scope
	binding *binding
}

// ID identifies the binding behind the capability. Zero for an empty one.
func (c Capability) ID() uint64 {
	if c.binding == nil {
		return 0
	}
	return c.binding.id
}

// Live reports whether the binding is still published.
func (c Capability) Live() bool {
	if c.scope == nil || c.binding == nil {
		return false
	}
	c.scope.mu.Lock()
	defer c.scope.mu.Unlock()
	return !c.binding.released
}

// Scroll invokes the bound function for key. A released or empty capability
// does nothing and returns false.
func (c Capability) Scroll(ctx context.Context, key string) bool {
	if !c.Live() || c.binding.fn == nil {
		return false
	}
	return c.binding.fn(ctx, key)
}
