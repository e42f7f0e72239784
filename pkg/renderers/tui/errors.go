package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNotSubmittable is returned when the form is still invalid after the
	// configured number of correction rounds.
	ErrNotSubmittable = errors.New("tui: form not submittable")
)
