package scroll_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfocus/pkg/scroll"
)

func vertical() scroll.Config {
	return scroll.DefaultConfig()
}

func horizontal() scroll.Config {
	cfg := scroll.DefaultConfig()
	cfg.Axis = scroll.Horizontal
	return cfg
}

func TestCompute_Vertical(t *testing.T) {
	viewport := scroll.Size{Width: 360, Height: 600}
	top := float64(scroll.DefaultFixedTopOffset)

	cases := []struct {
		name    string
		view    scroll.ViewMetrics
		element scroll.ElementMetrics
		cfg     scroll.Config
		want    scroll.Request
		wantOK  bool
	}{
		{
			name:    "above viewport scrolls up",
			view:    scroll.ViewMetrics{Viewport: viewport, ContentHeight: 2000, ContentHeightKnown: true},
			element: scroll.ElementMetrics{Content: scroll.Rect{Y: 300, Height: 48}, Window: scroll.Point{Y: -50}},
			cfg:     vertical(),
			want:    scroll.Request{Axis: scroll.Vertical, Direction: scroll.Up, Offset: 300 - top, Animated: true},
			wantOK:  true,
		},
		{
			name:    "hugging the top with unknown height scrolls up",
			view:    scroll.ViewMetrics{Viewport: viewport},
			element: scroll.ElementMetrics{Content: scroll.Rect{Y: 500, Height: 48}, Window: scroll.Point{Y: 30}},
			cfg:     vertical(),
			want:    scroll.Request{Axis: scroll.Vertical, Direction: scroll.Up, Offset: 500 - top, Animated: true},
			wantOK:  true,
		},
		{
			name:    "below with room left scrolls down",
			view:    scroll.ViewMetrics{Viewport: viewport, ContentHeight: 2400, ContentHeightKnown: true},
			element: scroll.ElementMetrics{Content: scroll.Rect{Y: 1200, Height: 48}, Window: scroll.Point{Y: 900}},
			cfg:     vertical(),
			want:    scroll.Request{Axis: scroll.Vertical, Direction: scroll.Down, Offset: 1200 - top, Animated: true},
			wantOK:  true,
		},
		{
			name:    "visible with no room below does nothing",
			view:    scroll.ViewMetrics{Viewport: viewport, ContentHeight: 800, ContentHeightKnown: true},
			element: scroll.ElementMetrics{Content: scroll.Rect{Y: 400, Height: 48}, Window: scroll.Point{Y: 200}},
			cfg:     vertical(),
		},
		{
			name:    "visible with unknown height and clear of the top does nothing",
			view:    scroll.ViewMetrics{Viewport: viewport},
			element: scroll.ElementMetrics{Content: scroll.Rect{Y: 400, Height: 48}, Window: scroll.Point{Y: 200}},
			cfg:     vertical(),
		},
		{
			name:    "hugging the top with known height is not forced up",
			view:    scroll.ViewMetrics{Viewport: viewport, ContentHeight: 600, ContentHeightKnown: true},
			element: scroll.ElementMetrics{Content: scroll.Rect{Y: 30, Height: 48}, Window: scroll.Point{Y: 30}},
			cfg:     vertical(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := scroll.Compute(tc.view, tc.element, tc.cfg)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v (request %+v)", ok, tc.wantOK, got)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("request mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompute_ModalAddsChrome(t *testing.T) {
	cfg := vertical()
	cfg.Modal = true

	got, ok := scroll.Compute(
		scroll.ViewMetrics{Viewport: scroll.Size{Height: 500}},
		scroll.ElementMetrics{Content: scroll.Rect{Y: 700, Height: 40}, Window: scroll.Point{Y: -10}},
		cfg,
	)
	if !ok {
		t.Fatalf("expected a request")
	}
	want := 700.0 - scroll.DefaultFixedTopOffset - scroll.DefaultModalChromeHeight
	if got.Offset != want {
		t.Fatalf("offset = %v, want %v", got.Offset, want)
	}
}

func TestCompute_ModalWidensTopBand(t *testing.T) {
	element := scroll.ElementMetrics{Content: scroll.Rect{Y: 600, Height: 40}, Window: scroll.Point{Y: 100}}
	view := scroll.ViewMetrics{Viewport: scroll.Size{Height: 500}}

	if _, ok := scroll.Compute(view, element, vertical()); ok {
		t.Fatalf("100 is outside the page band (40+40)")
	}
	cfg := vertical()
	cfg.Modal = true
	if _, ok := scroll.Compute(view, element, cfg); !ok {
		t.Fatalf("100 is inside the modal band (40+40+64)")
	}
}

func TestCompute_Horizontal(t *testing.T) {
	view := scroll.ViewMetrics{Viewport: scroll.Size{Width: 320, Height: 48}}

	left, ok := scroll.Compute(view, scroll.ElementMetrics{
		Content: scroll.Rect{X: 80, Width: 100},
		Window:  scroll.Point{X: -40},
	}, horizontal())
	if !ok {
		t.Fatalf("expected scroll left")
	}
	if diff := cmp.Diff(scroll.Request{Axis: scroll.Horizontal, Direction: scroll.Left, Offset: 80, Animated: true}, left); diff != "" {
		t.Fatalf("left mismatch (-want +got):\n%s", diff)
	}

	right, ok := scroll.Compute(view, scroll.ElementMetrics{
		Content: scroll.Rect{X: 600, Width: 100},
		Window:  scroll.Point{X: 250},
	}, horizontal())
	if !ok {
		t.Fatalf("expected scroll right")
	}
	wantOffset := 600.0 - 320 + 100 + scroll.DefaultRightOffset
	if diff := cmp.Diff(scroll.Request{Axis: scroll.Horizontal, Direction: scroll.Right, Offset: wantOffset, Animated: true}, right); diff != "" {
		t.Fatalf("right mismatch (-want +got):\n%s", diff)
	}

	if _, ok := scroll.Compute(view, scroll.ElementMetrics{
		Content: scroll.Rect{X: 100, Width: 100},
		Window:  scroll.Point{X: 100},
	}, horizontal()); ok {
		t.Fatalf("fully visible tab should not scroll")
	}
}
