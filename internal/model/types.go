package model

// Field describes one input of a booking form. Leaf fields name the rule that
// validates them; fields with Nested children form a sub-form (a company
// block, a passenger card) whose leaves are addressed with dotted keys such as
// "company.companyName".
type Field struct {
	Name     string `json:"name" yaml:"name"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Rule     string `json:"rule,omitempty" yaml:"rule,omitempty"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	// Match is a literal companion value for the rule, e.g. the floor of a
	// minNumber rule.
	Match any `json:"match,omitempty" yaml:"match,omitempty"`
	// MatchField names another field (by dotted key) whose value is passed to
	// the rule, e.g. the password a confirmation must equal.
	MatchField  string            `json:"matchField,omitempty" yaml:"matchField,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Nested      []Field           `json:"nested,omitempty" yaml:"nested,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// FormModel is the declarative definition of a form. Field order is the
// declaration order used to pick the first invalid field.
type FormModel struct {
	ID          string            `json:"id" yaml:"id"`
	Summary     string            `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Leaf is a validated field together with its flattened key.
type Leaf struct {
	Key   string
	Field Field
}

// Leaves flattens the form into its leaf fields in declaration order.
func (f FormModel) Leaves() []Leaf {
	var out []Leaf
	collectLeaves(f.Fields, "", &out)
	return out
}

// Keys returns the dotted keys of every leaf in declaration order.
func (f FormModel) Keys() []string {
	leaves := f.Leaves()
	if len(leaves) == 0 {
		return nil
	}
	keys := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		keys = append(keys, leaf.Key)
	}
	return keys
}
