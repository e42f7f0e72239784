// Package rules implements the field rule catalogue. Every rule shares the
// same contract: an empty value in an optional field yields no outcome, an
// empty value in a mandatory field yields required, and otherwise the rule's
// checks run in order with the first failure winning. Thresholds are fixed
// and exported so renderers can quote them.
package rules
