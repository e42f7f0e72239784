package scroll

import (
	"context"
	"reflect"

	"github.com/rs/zerolog"
)

// View is a handle on a mounted scroll container.
type View interface {
	// Mounted reports whether the container is still on screen.
	Mounted() bool
	// Metrics returns the viewport size and, once laid out, the content height.
	Metrics() ViewMetrics
	// ScrollTo issues the platform scroll command.
	ScrollTo(ctx context.Context, req Request) error
}

// Element is a handle on a laid-out field inside a View.
type Element interface {
	Mounted() bool
	// MeasureInContent returns the field's rect relative to the scrollable
	// content.
	MeasureInContent(ctx context.Context) (Rect, error)
	// MeasureInWindow returns the field's origin relative to the visible
	// viewport. It is only called after MeasureInContent completed.
	MeasureInWindow(ctx context.Context) (Point, error)
}

// Options selects the mode for a single reveal.
type Options struct {
	Axis  Axis
	Modal bool
}

// Engine reveals fields by measuring them and issuing at most one scroll per
// call. It holds no per-request state.
type Engine struct {
	geometry Config
	logger   zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithGeometry overrides the layout constants. Axis and Modal are taken from
// the per-call Options instead.
func WithGeometry(cfg Config) Option {
	return func(e *Engine) {
		e.geometry = cfg
	}
}

// WithLogger routes engine diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine returns an engine with the default geometry and a no-op logger.
func NewEngine(options ...Option) *Engine {
	e := &Engine{
		geometry: DefaultConfig(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Geometry returns the configured layout constants.
func (e *Engine) Geometry() Config {
	return e.geometry
}

// Reveal measures element inside view and scrolls it into view when needed.
// The two measurements run strictly in sequence and the handles are checked
// for liveness before each step, so a field that unmounts mid-way never
// triggers a scroll. Missing handles, measurement errors and cancelled
// contexts are silent no-ops. A nil handle, including a nil pointer stored in
// the interface, counts as missing; a nil ctx is treated as
// context.Background(). The returned request is the one issued, if any.
func (e *Engine) Reveal(ctx context.Context, view View, element Element, opts Options) (Request, bool) {
	if ctx == nil {
		ctx = context.Background()
	}
	if missing(view) || missing(element) {
		e.logger.Debug().Msg("scroll: missing view or element")
		return Request{}, false
	}
	if !alive(ctx, view, element) {
		e.logger.Debug().Msg("scroll: target not mounted")
		return Request{}, false
	}

	content, err := element.MeasureInContent(ctx)
	if err != nil {
		e.logger.Debug().Err(err).Msg("scroll: content measurement failed")
		return Request{}, false
	}
	if !alive(ctx, view, element) {
		e.logger.Debug().Msg("scroll: target unmounted after content measurement")
		return Request{}, false
	}

	window, err := element.MeasureInWindow(ctx)
	if err != nil {
		e.logger.Debug().Err(err).Msg("scroll: window measurement failed")
		return Request{}, false
	}
	if !alive(ctx, view, element) {
		e.logger.Debug().Msg("scroll: target unmounted after window measurement")
		return Request{}, false
	}

	cfg := e.geometry
	cfg.Axis = opts.Axis
	cfg.Modal = opts.Modal

	req, ok := Compute(view.Metrics(), ElementMetrics{Content: content, Window: window}, cfg)
	if !ok {
		return Request{}, false
	}
	if err := view.ScrollTo(ctx, req); err != nil {
		e.logger.Debug().Err(err).Msg("scroll: scroll command failed")
		return Request{}, false
	}

	e.logger.Debug().
		Str("axis", req.Axis.String()).
		Str("direction", req.Direction.String()).
		Float64("offset", req.Offset).
		Msg("scroll: revealed field")
	return req, true
}

// Func binds the engine to a view and a handle registry. The returned function
// reveals the field registered under key and reports whether a scroll was
// issued; it has the shape of focus.ScrollFunc.
func (e *Engine) Func(view View, registry *Registry, opts Options) func(ctx context.Context, key string) bool {
	return func(ctx context.Context, key string) bool {
		element, ok := registry.Lookup(key)
		if !ok {
			e.logger.Debug().Str("field", key).Msg("scroll: no element registered")
			return false
		}
		_, issued := e.Reveal(ctx, view, element, opts)
		return issued
	}
}

func alive(ctx context.Context, view View, element Element) bool {
	if ctx.Err() != nil {
		return false
	}
	return view.Mounted() && element.Mounted()
}

func missing(handle any) bool {
	if handle == nil {
		return true
	}
	v := reflect.ValueOf(handle)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
