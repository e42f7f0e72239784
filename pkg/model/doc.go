// Package model defines the declarative form definitions consumed by the form
// package. A FormModel lists fields in declaration order; each leaf names the
// rule that validates it, whether it is optional, and an optional companion
// value (a literal Match or another field's MatchField). Fields with Nested
// children are flattened into dotted keys such as "company.companyName"; the
// aggregation layer treats those keys as flat. Definitions load from YAML or
// JSON via Decode and LoadFile.
package model
