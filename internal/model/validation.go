package model

import (
	"errors"
	"fmt"
)

var (
	ErrFormIDMissing     = errors.New("form model: form id is required")
	ErrNoFields          = errors.New("form model: form has no fields")
	ErrDuplicateField    = errors.New("form model: duplicate field key")
	ErrMissingRule       = errors.New("form model: field has no rule")
	ErrUnknownRule       = errors.New("form model: unknown rule")
	ErrMissingMatchField = errors.New("form model: match field not found")
)

// Validate checks a definition before it is compiled. known reports whether a
// rule name is registered.
func Validate(form FormModel, known func(string) bool) error {
	if form.ID == "" {
		return ErrFormIDMissing
	}
	leaves := form.Leaves()
	if len(leaves) == 0 {
		return ErrNoFields
	}

	seen := make(map[string]struct{}, len(leaves))
	for _, leaf := range leaves {
		if _, dup := seen[leaf.Key]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateField, leaf.Key)
		}
		seen[leaf.Key] = struct{}{}
	}

	for _, leaf := range leaves {
		if err := validateLeaf(leaf, seen, known); err != nil {
			return err
		}
	}
	return nil
}

func validateLeaf(leaf Leaf, keys map[string]struct{}, known func(string) bool) error {
	if leaf.Field.Rule == "" {
		return fmt.Errorf("%w: %s", ErrMissingRule, leaf.Key)
	}
	if known != nil && !known(leaf.Field.Rule) {
		return fmt.Errorf("%w: %s uses %q", ErrUnknownRule, leaf.Key, leaf.Field.Rule)
	}
	if leaf.Field.MatchField != "" {
		if _, ok := keys[leaf.Field.MatchField]; !ok {
			return fmt.Errorf("%w: %s matches %q", ErrMissingMatchField, leaf.Key, leaf.Field.MatchField)
		}
	}
	return nil
}
