package aggregate

import (
	"strings"

	"github.com/goliatone/go-formfocus/pkg/outcome"
)

// IsValid reports whether o is present and valid.
func IsValid(o *outcome.Outcome) bool {
	return o != nil && o.Kind() == outcome.KindValid
}

// IsInvalid reports whether o is present and not valid. Absent outcomes are
// not invalid.
func IsInvalid(o *outcome.Outcome) bool {
	return o != nil && o.Kind() != outcome.KindValid
}

// IsFilled reports whether o is present and not required, i.e. the user has
// typed something regardless of whether it passed.
func IsFilled(o *outcome.Outcome) bool {
	return o != nil && o.Kind() != outcome.KindRequired
}

// IsFormValid reports whether no entry in results is invalid. A field whose
// rule was never run cannot block submission, so callers must validate every
// field with the correct optional flag.
func IsFormValid(results *outcome.Results) bool {
	valid := true
	results.Each(func(_ string, o *outcome.Outcome) bool {
		if IsInvalid(o) {
			valid = false
			return false
		}
		return true
	})
	return valid
}

// CountInvalid returns the number of invalid entries.
func CountInvalid(results *outcome.Results) int {
	count := 0
	results.Each(func(_ string, o *outcome.Outcome) bool {
		if IsInvalid(o) {
			count++
		}
		return true
	})
	return count
}

// CountInvalidUnder counts invalid entries whose dotted key sits below prefix,
// e.g. all "company.*" keys for a sub-form tab badge.
func CountInvalidUnder(results *outcome.Results, prefix string) int {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		return CountInvalid(results)
	}
	count := 0
	results.Each(func(key string, o *outcome.Outcome) bool {
		if (key == prefix || strings.HasPrefix(key, prefix+".")) && IsInvalid(o) {
			count++
		}
		return true
	})
	return count
}

// Cleanse returns a copy of results without absent entries.
func Cleanse(results *outcome.Results) *outcome.Results {
	out := outcome.NewResults()
	results.Each(func(key string, o *outcome.Outcome) bool {
		if o != nil {
			out.Set(key, o)
		}
		return true
	})
	return out
}

// Merge splices server into local. Keys already present keep their position
// and take the server outcome; new keys are appended. Absent server entries
// are ignored. local is not modified.
func Merge(local, server *outcome.Results) *outcome.Results {
	out := local.Clone()
	server.Each(func(key string, o *outcome.Outcome) bool {
		if o != nil {
			out.Set(key, o)
		}
		return true
	})
	return out
}

// MarkFirstInvalid returns a copy of results in which exactly one invalid
// outcome, the first one met when walking order, carries FirstInvalid. All
// other outcomes have the flag cleared. A nil order walks the results in
// insertion order. Keys missing from results are skipped and keys not named
// in order are never marked.
func MarkFirstInvalid(results *outcome.Results, order []string) *outcome.Results {
	first, found := FirstInvalid(results, order)

	out := outcome.NewResults()
	results.Each(func(key string, o *outcome.Outcome) bool {
		if o == nil {
			out.Set(key, nil)
			return true
		}
		out.Set(key, o.WithFirstInvalid(found && key == first))
		return true
	})
	return out
}

// FirstInvalid returns the key of the first invalid entry when walking order.
func FirstInvalid(results *outcome.Results, order []string) (string, bool) {
	if order == nil {
		order = results.Keys()
	}
	for _, key := range order {
		o, ok := results.Get(key)
		if ok && IsInvalid(o) {
			return key, true
		}
	}
	return "", false
}

// Decision is the form-level summary of a validation pass.
type Decision struct {
	Results      *outcome.Results `json:"results"`
	Submittable  bool             `json:"submittable"`
	FirstInvalid string           `json:"firstInvalid,omitempty"`
	InvalidCount int              `json:"invalidCount"`
}

// Decide marks the first invalid field and summarises whether the form may
// be submitted.
func Decide(results *outcome.Results, order []string) Decision {
	marked := MarkFirstInvalid(results, order)
	first, _ := FirstInvalid(marked, order)
	return Decision{
		Results:      marked,
		Submittable:  IsFormValid(marked),
		FirstInvalid: first,
		InvalidCount: CountInvalid(marked),
	}
}
