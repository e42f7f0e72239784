package tui

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formfocus/pkg/scroll"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes for the viewport window. Keep minimal to
// avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	// FocusMarker flags the first invalid field.
	FocusMarker string
	// ErrorPrefix precedes an invalid field's outcome.
	ErrorPrefix string
	// SubmitLabel is shown below the last field.
	SubmitLabel string
}

func defaultTheme() Theme {
	return Theme{
		FocusMarker: ">",
		ErrorPrefix: "!",
		SubmitLabel: "[ submit ]",
	}
}

// Viewport sizes the terminal window, in lines.
type Viewport struct {
	Rows      int
	FieldRows int
}

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme overrides the window markers. Empty fields keep their defaults.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		if theme.FocusMarker != "" {
			r.theme.FocusMarker = theme.FocusMarker
		}
		if theme.ErrorPrefix != "" {
			r.theme.ErrorPrefix = theme.ErrorPrefix
		}
		if theme.SubmitLabel != "" {
			r.theme.SubmitLabel = theme.SubmitLabel
		}
	}
}

// WithViewport sets the window height and the lines each field occupies.
// Non-positive values are ignored.
func WithViewport(viewport Viewport) Option {
	return func(r *Renderer) {
		if viewport.Rows > 0 {
			r.viewport.Rows = viewport.Rows
		}
		if viewport.FieldRows > 0 {
			r.viewport.FieldRows = viewport.FieldRows
		}
	}
}

// WithScrollEngine replaces the engine that reveals the first invalid field.
func WithScrollEngine(engine *scroll.Engine) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithMaxRounds bounds the number of correction rounds. Zero means unbounded.
func WithMaxRounds(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxRounds = n
		}
	}
}

// WithLogger routes session diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}
