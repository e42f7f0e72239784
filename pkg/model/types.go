package model

import internalmodel "github.com/goliatone/go-formfocus/internal/model"

type Field = internalmodel.Field
type FormModel = internalmodel.FormModel
type Leaf = internalmodel.Leaf

var (
	ErrFormIDMissing     = internalmodel.ErrFormIDMissing
	ErrNoFields          = internalmodel.ErrNoFields
	ErrDuplicateField    = internalmodel.ErrDuplicateField
	ErrMissingRule       = internalmodel.ErrMissingRule
	ErrUnknownRule       = internalmodel.ErrUnknownRule
	ErrMissingMatchField = internalmodel.ErrMissingMatchField
)

// DisplayLabel returns the label shown for a leaf field.
func DisplayLabel(leaf Leaf) string {
	return internalmodel.DisplayLabel(leaf)
}

// Validate checks a definition; known reports whether a rule name exists.
func Validate(form FormModel, known func(string) bool) error {
	return internalmodel.Validate(form, known)
}
