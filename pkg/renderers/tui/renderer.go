package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formfocus/pkg/aggregate"
	"github.com/goliatone/go-formfocus/pkg/focus"
	"github.com/goliatone/go-formfocus/pkg/form"
	"github.com/goliatone/go-formfocus/pkg/model"
	"github.com/goliatone/go-formfocus/pkg/outcome"
	"github.com/goliatone/go-formfocus/pkg/rules"
	"github.com/goliatone/go-formfocus/pkg/scroll"
)

// Renderer runs a form as a terminal session: it prompts every field,
// validates the whole form, reveals the first invalid field in a virtual
// viewport and re-prompts from there until the form can be submitted.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	viewport          Viewport
	engine            *scroll.Engine
	maxRounds         int
	logger            zerolog.Logger
}

// RenderOptions carries per-session input.
type RenderOptions struct {
	// Values prefill the prompts.
	Values map[string]any
	// Server holds outcomes returned by a previous submission. Each one is
	// dropped once its field is answered again.
	Server *outcome.Results
	// Modal reveals fields below modal chrome.
	Modal bool
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		theme:        defaultTheme(),
		viewport:     Viewport{Rows: 12, FieldRows: 2},
		logger:       zerolog.Nop(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.engine == nil {
		r.engine = scroll.NewEngine(scroll.WithLogger(r.logger))
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render runs the session and returns the serialized values once the form is
// submittable.
func (r *Renderer) Render(ctx context.Context, f *form.Form, opts RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("tui: form is required")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	leaves := f.Leaves()
	state := NewState(opts.Values, opts.Server)

	view := newTerminalView(len(leaves), r.viewport)
	defer view.unmount()

	registry := scroll.NewRegistry()
	for i, leaf := range leaves {
		release := registry.Register(leaf.Key, view.field(i))
		defer release()
	}

	scope := focus.NewScope()
	release := scope.Provide(r.engine.Func(view, registry, scroll.Options{Axis: scroll.Vertical, Modal: opts.Modal}))
	defer release()
	watchers := focus.NewWatchers(scope)

	isLeaf := func(key string) bool { return indexOfKey(leaves, key) >= 0 }
	logger := r.logger.With().Str("form", f.ID()).Logger()

	start := 0
	for round := 1; ; round++ {
		for i := start; i < len(leaves); i++ {
			if err := r.promptLeaf(ctx, leaves[i], state); err != nil {
				return nil, err
			}
		}

		decision := f.Check(state.Values(), state.Server())
		if decision.Submittable {
			logger.Debug().Int("rounds", round).Msg("tui: form submittable")
			break
		}

		if key, ok := watchers.Observe(ctx, decision.Results); ok {
			logger.Debug().Str("field", key).Msg("tui: revealed first invalid field")
		}
		if err := r.showWindow(ctx, view, leaves, state, decision); err != nil {
			return nil, err
		}
		// outcomes for keys outside the form are reported once, they cannot be
		// corrected here
		state.DropServer(isLeaf)

		if r.maxRounds > 0 && round >= r.maxRounds {
			return nil, fmt.Errorf("%w: %d invalid after %d rounds", ErrNotSubmittable, decision.InvalidCount, round)
		}

		start = indexOfKey(leaves, decision.FirstInvalid)
		if start < 0 {
			start = len(leaves)
		}
	}

	values := state.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(f.Keys(), values)
}

func (r *Renderer) promptLeaf(ctx context.Context, leaf model.Leaf, state *State) error {
	label := model.DisplayLabel(leaf)
	if leaf.Field.Optional {
		label += " (optional)"
	}
	help := leaf.Field.Description
	current, _ := state.GetValue(leaf.Key)

	switch leaf.Field.Rule {
	case rules.NameRequiredAgree:
		def, _ := current.(bool)
		resp, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: def,
			Help:    help,
		})
		if err != nil {
			return err
		}
		return state.SetValue(leaf.Key, resp)

	case rules.NamePassword, rules.NameConfirmPassword:
		resp, err := r.driver.Password(ctx, InputConfig{
			Message: label,
			Help:    help,
		})
		if err != nil {
			return err
		}
		return state.SetValue(leaf.Key, resp)

	case rules.NameRequiredNumber, rules.NameMinNumber:
		resp, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: displayValue(current),
			Help:    help,
		})
		if err != nil {
			return err
		}
		return state.SetValue(leaf.Key, numberAnswer(resp))

	default:
		resp, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: displayValue(current),
			Help:    help,
		})
		if err != nil {
			return err
		}
		return state.SetValue(leaf.Key, resp)
	}
}

// showWindow prints the lines currently inside the viewport, followed by any
// server outcome that has no field of its own.
func (r *Renderer) showWindow(ctx context.Context, view *terminalView, leaves []model.Leaf, state *State, decision aggregate.Decision) error {
	lines := r.layout(leaves, state, decision.Results)
	offset, rows := view.window()
	if offset > len(lines) {
		offset = len(lines)
	}
	end := offset + rows
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d field(s) need attention", decision.InvalidCount)
	for _, line := range lines[offset:end] {
		b.WriteString("\n")
		b.WriteString(line)
	}
	decision.Results.Each(func(key string, o *outcome.Outcome) bool {
		if indexOfKey(leaves, key) < 0 && aggregate.IsInvalid(o) {
			fmt.Fprintf(&b, "\n%s %s: %s", r.theme.ErrorPrefix, key, o)
		}
		return true
	})
	return r.driver.Info(ctx, b.String())
}

// layout renders the full virtual content: FieldRows lines per field, then a
// footer one viewport tall holding the submit label.
func (r *Renderer) layout(leaves []model.Leaf, state *State, results *outcome.Results) []string {
	fieldRows := r.viewport.FieldRows
	lines := make([]string, 0, len(leaves)*fieldRows+r.viewport.Rows)
	blank := strings.Repeat(" ", utf8.RuneCountInString(r.theme.FocusMarker))

	for _, leaf := range leaves {
		o, _ := results.Get(leaf.Key)
		marker := blank
		if o.FirstInvalid() {
			marker = r.theme.FocusMarker
		}
		value, _ := state.GetValue(leaf.Key)
		shown := displayValue(value)
		if leaf.Field.Rule == rules.NamePassword || leaf.Field.Rule == rules.NameConfirmPassword {
			shown = strings.Repeat("*", utf8.RuneCountInString(shown))
		}

		block := make([]string, fieldRows)
		block[0] = fmt.Sprintf("%s %s: %s", marker, model.DisplayLabel(leaf), shown)
		if aggregate.IsInvalid(o) {
			detail := fmt.Sprintf("%s %s", r.theme.ErrorPrefix, o)
			if fieldRows > 1 {
				block[1] = blank + "   " + detail
			} else {
				block[0] += "  " + detail
			}
		}
		lines = append(lines, block...)
	}

	footer := make([]string, r.viewport.Rows)
	footer[0] = blank + " " + r.theme.SubmitLabel
	return append(lines, footer...)
}

func (r *Renderer) serialize(keys []string, values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(keys, values)), nil
	default:
		return jsonBytes(values)
	}
}

func indexOfKey(leaves []model.Leaf, key string) int {
	for i, leaf := range leaves {
		if leaf.Key == key {
			return i
		}
	}
	return -1
}

// numberAnswer keeps unparsable text so the rule can report it; empty input
// means no value.
func numberAnswer(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if val, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return val
	}
	return raw
}

func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "yes"
		}
		return "no"
	default:
		return fmt.Sprint(v)
	}
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, val, out)
		}
	case []any:
		for _, val := range v {
			out.Add(prefix+"[]", fmt.Sprint(val))
		}
	case nil:
		out.Set(prefix, "")
	case float64:
		out.Set(prefix, strconv.FormatFloat(v, 'f', -1, 64))
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

// prettyPrint lists the form's keys first, in declaration order, then any
// extra values sorted by key.
func prettyPrint(keys []string, values map[string]any) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		seen[key] = struct{}{}
		value, _ := form.Lookup(values, key)
		fmt.Fprintf(&b, "%s=%s\n", key, displayValue(value))
	}

	var extra []string
	collectPaths("", values, &extra)
	sort.Strings(extra)
	for _, key := range extra {
		if _, ok := seen[key]; ok {
			continue
		}
		value, _ := form.Lookup(values, key)
		fmt.Fprintf(&b, "%s=%s\n", key, displayValue(value))
	}
	return b.String()
}

func collectPaths(prefix string, value any, out *[]string) {
	nested, ok := value.(map[string]any)
	if !ok {
		if prefix != "" {
			*out = append(*out, prefix)
		}
		return
	}
	for key, val := range nested {
		next := key
		if prefix != "" {
			next = prefix + "." + key
		}
		collectPaths(next, val, out)
	}
}

func jsonBytes(values map[string]any) ([]byte, error) {
	return json.Marshal(values)
}
