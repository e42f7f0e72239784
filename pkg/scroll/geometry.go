package scroll

// Axis selects which scroll direction a container supports.
type Axis int

const (
	// Vertical containers are page bodies.
	Vertical Axis = iota
	// Horizontal containers are tab strips.
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// MarshalText encodes the axis by name.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Direction is the way a Request moves the content.
type Direction int

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Request is a single scroll command for the platform's scroll API.
type Request struct {
	Axis      Axis      `json:"axis"`
	Direction Direction `json:"direction"`
	Offset    float64   `json:"offset"`
	Animated  bool      `json:"animated"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Point is a position in some coordinate space.
type Point struct {
	X float64
	Y float64
}

// Rect is a position plus size.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ViewMetrics describes the scroll container. ContentHeight is only trusted
// when ContentHeightKnown is set; before the first content layout the height
// is unknown.
type ViewMetrics struct {
	Viewport           Size
	ContentHeight      float64
	ContentHeightKnown bool
}

// ElementMetrics holds the two measurements taken for the target field:
// Content is relative to the scrollable content (independent of the current
// scroll position), Window is relative to the visible viewport.
type ElementMetrics struct {
	Content Rect
	Window  Point
}

// Config carries the mode flags and the layout constants.
type Config struct {
	Axis  Axis
	Modal bool
	// FixedTopOffset keeps revealed fields clear of fixed page chrome.
	FixedTopOffset float64
	// ModalChromeHeight is added to FixedTopOffset inside modals.
	ModalChromeHeight float64
	// RightOffset compensates trailing padding in horizontal strips. Negative.
	RightOffset float64
}

// Default layout constants, in density-independent pixels.
const (
	DefaultFixedTopOffset    = 40
	DefaultModalChromeHeight = 64
	DefaultRightOffset       = -20
)

// DefaultConfig returns a vertical, non-modal configuration with the default
// constants.
func DefaultConfig() Config {
	return Config{
		Axis:              Vertical,
		FixedTopOffset:    DefaultFixedTopOffset,
		ModalChromeHeight: DefaultModalChromeHeight,
		RightOffset:       DefaultRightOffset,
	}
}

// TopOffset is the effective fixed top offset, including modal chrome.
func (c Config) TopOffset() float64 {
	if c.Modal {
		return c.FixedTopOffset + c.ModalChromeHeight
	}
	return c.FixedTopOffset
}

// Compute decides whether element needs to be scrolled into view and, if so,
// returns the request that does it. It is pure and produces at most one
// request.
func Compute(view ViewMetrics, element ElementMetrics, cfg Config) (Request, bool) {
	if cfg.Axis == Horizontal {
		return computeHorizontal(view, element, cfg)
	}
	return computeVertical(view, element, cfg)
}

func computeVertical(view ViewMetrics, element ElementMetrics, cfg Config) (Request, bool) {
	top := cfg.TopOffset()
	windowTop := element.Window.Y
	target := element.Content.Y - top

	above := windowTop < 0
	// Before the content height is known, bias towards scrolling up when the
	// field hugs the top edge.
	hugsTop := windowTop > 0 && windowTop < element.Content.Height+top && !view.ContentHeightKnown
	if above || hugsTop {
		return Request{Axis: Vertical, Direction: Up, Offset: target, Animated: true}, true
	}

	if view.ContentHeightKnown && view.ContentHeight-element.Content.Y-view.Viewport.Height > 0 {
		return Request{Axis: Vertical, Direction: Down, Offset: target, Animated: true}, true
	}
	return Request{}, false
}

func computeHorizontal(view ViewMetrics, element ElementMetrics, cfg Config) (Request, bool) {
	left := element.Window.X
	width := element.Content.Width

	if left < 0 {
		return Request{Axis: Horizontal, Direction: Left, Offset: element.Content.X, Animated: true}, true
	}
	if left > view.Viewport.Width-width {
		offset := element.Content.X - view.Viewport.Width + width + cfg.RightOffset
		return Request{Axis: Horizontal, Direction: Right, Offset: offset, Animated: true}, true
	}
	return Request{}, false
}
