package rules

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Canonical rule names used by form definitions.
const (
	NameRequired        = "required"
	NameRequiredNumber  = "requiredNumber"
	NameRequiredAgree   = "requiredAgree"
	NameShortText       = "shortText"
	NameEmail           = "email"
	NameNumber          = "number"
	NamePassword        = "password"
	NameConfirmPassword = "confirmPassword"
	NameMinNumber       = "minNumber"
)

// Registry resolves rule names to rule functions. The zero value is not
// usable; call NewRegistry.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewRegistry returns a registry seeded with the built-in catalogue.
func NewRegistry() *Registry {
	reg := &Registry{rules: make(map[string]Rule)}
	reg.rules[NameRequired] = Required
	reg.rules[NameRequiredNumber] = RequiredNumber
	reg.rules[NameRequiredAgree] = RequiredAgree
	reg.rules[NameShortText] = ShortText
	reg.rules[NameEmail] = Email
	reg.rules[NameNumber] = Number
	reg.rules[NamePassword] = Password
	reg.rules[NameConfirmPassword] = ConfirmPassword
	reg.rules[NameMinNumber] = MinNumber
	return reg
}

// Register adds or replaces a rule. Empty names and nil rules are rejected.
func (r *Registry) Register(name string, rule Rule) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("rules: name is required")
	}
	if rule == nil {
		return fmt.Errorf("rules: rule %q is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[name] = rule
	return nil
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[strings.TrimSpace(name)]
	return rule, ok
}

// Names lists registered rule names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MatchesField reports whether the rule compares against another field's
// value rather than a literal.
func MatchesField(name string) bool {
	return name == NameConfirmPassword
}
