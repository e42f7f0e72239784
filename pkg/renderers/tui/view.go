package tui

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-formfocus/pkg/scroll"
)

// rowHeight converts terminal lines into the geometry's layout units, so the
// default fixed top offset keeps two lines of context above a revealed field.
const rowHeight = 20.0

var errFieldUnmounted = errors.New("tui: field unmounted")

// terminalView is a virtual scroll container over the session's fields. Each
// field occupies a fixed number of lines and the content ends with a footer
// one viewport tall, so every field can be brought to the top.
type terminalView struct {
	mu        sync.Mutex
	rows      int
	fieldRows int
	fields    int
	offset    int
	mounted   bool
}

func newTerminalView(fields int, viewport Viewport) *terminalView {
	return &terminalView{
		rows:      viewport.Rows,
		fieldRows: viewport.FieldRows,
		fields:    fields,
		mounted:   true,
	}
}

func (v *terminalView) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted
}

func (v *terminalView) Metrics() scroll.ViewMetrics {
	v.mu.Lock()
	defer v.mu.Unlock()
	return scroll.ViewMetrics{
		Viewport:           scroll.Size{Width: 80 * rowHeight, Height: float64(v.rows) * rowHeight},
		ContentHeight:      float64(v.contentRows()) * rowHeight,
		ContentHeightKnown: true,
	}
}

// ScrollTo moves the window. Offsets are rounded to whole lines and clamped to
// the content.
func (v *terminalView) ScrollTo(ctx context.Context, req scroll.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if req.Axis != scroll.Vertical {
		return nil
	}
	line := int(req.Offset/rowHeight + 0.5)
	if req.Offset < 0 {
		line = 0
	}
	if limit := v.contentRows() - v.rows; line > limit {
		line = limit
	}
	v.offset = line
	return nil
}

func (v *terminalView) contentRows() int {
	return v.fields*v.fieldRows + v.rows
}

// window returns the first visible line and the number of visible lines.
func (v *terminalView) window() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset, v.rows
}

func (v *terminalView) unmount() {
	v.mu.Lock()
	v.mounted = false
	v.mu.Unlock()
}

func (v *terminalView) field(index int) *terminalField {
	return &terminalField{view: v, index: index}
}

// terminalField is the element handle of one field.
type terminalField struct {
	view  *terminalView
	index int
}

func (f *terminalField) Mounted() bool {
	return f.view.Mounted()
}

func (f *terminalField) MeasureInContent(ctx context.Context) (scroll.Rect, error) {
	if err := ctx.Err(); err != nil {
		return scroll.Rect{}, err
	}
	if !f.Mounted() {
		return scroll.Rect{}, errFieldUnmounted
	}
	f.view.mu.Lock()
	defer f.view.mu.Unlock()
	return scroll.Rect{
		X:      0,
		Y:      float64(f.index*f.view.fieldRows) * rowHeight,
		Width:  80 * rowHeight,
		Height: float64(f.view.fieldRows) * rowHeight,
	}, nil
}

func (f *terminalField) MeasureInWindow(ctx context.Context) (scroll.Point, error) {
	if err := ctx.Err(); err != nil {
		return scroll.Point{}, err
	}
	if !f.Mounted() {
		return scroll.Point{}, errFieldUnmounted
	}
	f.view.mu.Lock()
	defer f.view.mu.Unlock()
	return scroll.Point{
		X: 0,
		Y: float64(f.index*f.view.fieldRows-f.view.offset) * rowHeight,
	}, nil
}
