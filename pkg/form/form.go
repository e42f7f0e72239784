package form

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formfocus/pkg/aggregate"
	"github.com/goliatone/go-formfocus/pkg/model"
	"github.com/goliatone/go-formfocus/pkg/outcome"
	"github.com/goliatone/go-formfocus/pkg/rules"
)

// Form is a compiled form definition. It is immutable and safe to share.
type Form struct {
	def    model.FormModel
	leaves []model.Leaf
	keys   []string
	rules  []rules.Rule
	logger zerolog.Logger
}

type options struct {
	registry *rules.Registry
	logger   zerolog.Logger
}

// Option configures Compile.
type Option func(*options)

// WithRegistry resolves rule names against registry instead of the built-in
// catalogue.
func WithRegistry(registry *rules.Registry) Option {
	return func(o *options) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// WithLogger routes validation pass diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Compile checks def and resolves every rule name. Definition problems are
// returned wrapped around the model.Err* sentinels.
func Compile(def model.FormModel, opts ...Option) (*Form, error) {
	cfg := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = rules.NewRegistry()
	}

	known := func(name string) bool {
		_, ok := cfg.registry.Lookup(name)
		return ok
	}
	if err := model.Validate(def, known); err != nil {
		return nil, fmt.Errorf("form %q: %w", def.ID, err)
	}

	leaves := def.Leaves()
	f := &Form{
		def:    def,
		leaves: leaves,
		keys:   make([]string, 0, len(leaves)),
		rules:  make([]rules.Rule, 0, len(leaves)),
		logger: cfg.logger.With().Str("form", def.ID).Logger(),
	}
	for _, leaf := range leaves {
		rule, _ := cfg.registry.Lookup(leaf.Field.Rule)
		f.keys = append(f.keys, leaf.Key)
		f.rules = append(f.rules, rule)
	}
	return f, nil
}

// ID returns the form identifier.
func (f *Form) ID() string {
	return f.def.ID
}

// Definition returns the source definition.
func (f *Form) Definition() model.FormModel {
	return f.def
}

// Keys returns the field keys in declaration order. This is the order used to
// pick the first invalid field.
func (f *Form) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Leaves returns the flattened fields in declaration order.
func (f *Form) Leaves() []model.Leaf {
	return append([]model.Leaf(nil), f.leaves...)
}

// Validate runs every field's rule against values and returns a fresh result
// mapping in declaration order. Optional empty fields map to nil.
func (f *Form) Validate(values map[string]any) *outcome.Results {
	results := outcome.NewResults()
	for i, leaf := range f.leaves {
		results.Set(leaf.Key, f.validateLeaf(i, values))
	}
	return results
}

// ValidateField runs a single field's rule. The boolean is false for unknown
// keys.
func (f *Form) ValidateField(key string, values map[string]any) (*outcome.Outcome, bool) {
	for i, leaf := range f.leaves {
		if leaf.Key == key {
			return f.validateLeaf(i, values), true
		}
	}
	return nil, false
}

func (f *Form) validateLeaf(i int, values map[string]any) *outcome.Outcome {
	leaf := f.leaves[i]
	value, _ := Lookup(values, leaf.Key)

	match := leaf.Field.Match
	if leaf.Field.MatchField != "" {
		match, _ = Lookup(values, leaf.Field.MatchField)
	}
	return f.rules[i](value, leaf.Field.Optional, match)
}

// Check validates values, splices in server outcomes (which may be nil) and
// returns the form-level decision with the first invalid field marked.
func (f *Form) Check(values map[string]any, server *outcome.Results) aggregate.Decision {
	results := f.Validate(values)
	if server != nil && server.Len() > 0 {
		results = aggregate.Merge(results, server)
	}

	order := f.Keys()
	// server keys unknown to the definition still count, after the form's own
	server.Each(func(key string, _ *outcome.Outcome) bool {
		if !f.hasKey(key) {
			order = append(order, key)
		}
		return true
	})

	decision := aggregate.Decide(results, order)
	f.logger.Debug().
		Bool("submittable", decision.Submittable).
		Int("invalid", decision.InvalidCount).
		Str("first_invalid", decision.FirstInvalid).
		Msg("form validated")
	return decision
}

func (f *Form) hasKey(key string) bool {
	for _, candidate := range f.keys {
		if candidate == key {
			return true
		}
	}
	return false
}
