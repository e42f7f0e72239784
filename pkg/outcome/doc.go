// Package outcome defines the closed set of field validation outcomes and the
// ordered Results mapping that forms rebuild on every blur or submit.
//
// Outcomes are immutable. Rules construct them, the aggregate package marks
// at most one of them as FirstInvalid, and renderers switch on Kind to pick a
// message. A nil *Outcome is the "absent" state: the field was considered but
// has no opinion yet, which is distinct from both valid and invalid.
package outcome
