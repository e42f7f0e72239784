package focus

import (
	"context"
	"sync"

	"github.com/goliatone/go-formfocus/pkg/outcome"
)

// Watcher follows one field's outcome and asks the current scroll binding to
// reveal the field when it becomes the first invalid one. It fires once per
// transition into first-invalid, and once more if the field is still first
// invalid after the binding changed (a new tab or modal took over).
type Watcher struct {
	key   string
	scope *Scope

	mu          sync.Mutex
	wasFirst    bool
	lastBinding uint64
}

// NewWatcher returns a watcher for the field key.
func NewWatcher(scope *Scope, key string) *Watcher {
	return &Watcher{key: key, scope: scope}
}

// Key returns the watched field key.
func (w *Watcher) Key() string {
	return w.key
}

// Observe records the field's latest outcome and reports whether it triggered
// a scroll.
func (w *Watcher) Observe(ctx context.Context, o *outcome.Outcome) bool {
	w.mu.Lock()
	first := o != nil && o.FirstInvalid()
	if !first {
		w.wasFirst = false
		w.mu.Unlock()
		return false
	}

	capability := w.scope.Consume()
	trigger := !w.wasFirst || capability.ID() != w.lastBinding
	w.wasFirst = true
	if !trigger {
		w.mu.Unlock()
		return false
	}
	w.lastBinding = capability.ID()
	w.mu.Unlock()

	return capability.Scroll(ctx, w.key)
}

// Watchers keeps one Watcher per field of a form.
type Watchers struct {
	scope *Scope

	mu       sync.Mutex
	watchers map[string]*Watcher
}

// NewWatchers returns an empty set bound to scope.
func NewWatchers(scope *Scope) *Watchers {
	return &Watchers{scope: scope, watchers: make(map[string]*Watcher)}
}

// For returns the watcher for key, creating it on first use.
func (ws *Watchers) For(key string) *Watcher {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	w, ok := ws.watchers[key]
	if !ok {
		w = NewWatcher(ws.scope, key)
		ws.watchers[key] = w
	}
	return w
}

// Observe feeds every entry of results to its watcher, in declaration order,
// and returns the key that triggered a scroll, if any.
func (ws *Watchers) Observe(ctx context.Context, results *outcome.Results) (string, bool) {
	scrolled := ""
	results.Each(func(key string, o *outcome.Outcome) bool {
		if ws.For(key).Observe(ctx, o) && scrolled == "" {
			scrolled = key
		}
		return true
	})
	return scrolled, scrolled != ""
}
