package rules

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formfocus/pkg/outcome"
)

// Rule classifies a raw field value. A nil return means absent: the field is
// optional and empty, so no outcome is shown. match carries the companion
// value for rules that compare against something (the password to confirm,
// the numeric floor).
type Rule func(value any, optional bool, match any) *outcome.Outcome

const (
	ShortTextMinLength       = 3
	ShortTextMaxLength       = 140
	PasswordMinLength        = 5
	PasswordMaxLength        = 1024
	ConfirmPasswordMinLength = 6
	ConfirmPasswordMaxLength = 1024
)

var digitsPattern = regexp.MustCompile(`^\d+$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Required accepts any non-empty string.
func Required(value any, optional bool, _ any) *outcome.Outcome {
	if _, empty := stringValue(value); empty {
		return emptyOutcome(optional)
	}
	return outcome.Valid()
}

// RequiredNumber accepts any defined value, zero included.
func RequiredNumber(value any, optional bool, _ any) *outcome.Outcome {
	if value == nil {
		return emptyOutcome(optional)
	}
	return outcome.Valid()
}

// RequiredAgree accepts only a ticked agreement. In optional mode it never
// reports anything, ticked or not.
func RequiredAgree(value any, optional bool, _ any) *outcome.Outcome {
	if optional {
		return nil
	}
	if agreed, ok := value.(bool); ok && agreed {
		return outcome.Valid()
	}
	return outcome.RequiredAgree()
}

// ShortText accepts between 3 and 140 characters.
func ShortText(value any, optional bool, _ any) *outcome.Outcome {
	text, empty := stringValue(value)
	if empty {
		return emptyOutcome(optional)
	}
	return lengthBetween(text, ShortTextMinLength, ShortTextMaxLength)
}

// Email accepts a syntactically valid address.
func Email(value any, optional bool, _ any) *outcome.Outcome {
	text, empty := stringValue(value)
	if empty {
		return emptyOutcome(optional)
	}
	if err := getValidator().Var(text, "email"); err != nil {
		return outcome.Email()
	}
	return outcome.Valid()
}

// Number accepts unsigned digit strings only.
func Number(value any, optional bool, _ any) *outcome.Outcome {
	text, empty := stringValue(value)
	if empty {
		return emptyOutcome(optional)
	}
	if !digitsPattern.MatchString(text) {
		return outcome.Number()
	}
	return outcome.Valid()
}

// Password accepts between 5 and 1024 characters.
func Password(value any, optional bool, _ any) *outcome.Outcome {
	text, empty := stringValue(value)
	if empty {
		return emptyOutcome(optional)
	}
	return lengthBetween(text, PasswordMinLength, PasswordMaxLength)
}

// ConfirmPassword accepts between 6 and 1024 characters equal to match.
func ConfirmPassword(value any, optional bool, match any) *outcome.Outcome {
	text, empty := stringValue(value)
	if empty {
		return emptyOutcome(optional)
	}
	if failed := lengthBetween(text, ConfirmPasswordMinLength, ConfirmPasswordMaxLength); failed.Kind() != outcome.KindValid {
		return failed
	}
	other, _ := stringValue(match)
	if text != other {
		return outcome.DifferentPassword()
	}
	return outcome.Valid()
}

// MinNumber accepts numbers strictly greater than the floor passed as match.
// A missing floor is treated as zero.
func MinNumber(value any, optional bool, match any) *outcome.Outcome {
	text, empty := stringValue(value)
	if empty {
		return emptyOutcome(optional)
	}
	number, ok := parseNumber(value, text)
	if !ok {
		return outcome.Number()
	}
	floor, _ := Floor(match)
	if !(number > floor) {
		return outcome.MinNumber(floor)
	}
	return outcome.Valid()
}

// Floor coerces a match value into a numeric threshold.
func Floor(match any) (float64, bool) {
	if match == nil {
		return 0, false
	}
	text, _ := stringValue(match)
	return parseNumber(match, text)
}

func emptyOutcome(optional bool) *outcome.Outcome {
	if optional {
		return nil
	}
	return outcome.Required()
}

func lengthBetween(text string, min, max int) *outcome.Outcome {
	length := utf8.RuneCountInString(text)
	if length < min {
		return outcome.MinLength(min)
	}
	if length > max {
		return outcome.MaxLength(max)
	}
	return outcome.Valid()
}

// stringValue renders value as text and reports whether it counts as empty.
// Only nil and "" are empty; whitespace is content.
func stringValue(value any) (string, bool) {
	switch typed := value.(type) {
	case nil:
		return "", true
	case string:
		return typed, typed == ""
	case *string:
		if typed == nil {
			return "", true
		}
		return *typed, *typed == ""
	case fmt.Stringer:
		text := typed.String()
		return text, text == ""
	default:
		return fmt.Sprint(typed), false
	}
}

func parseNumber(value any, text string) (float64, bool) {
	var number float64
	switch typed := value.(type) {
	case int:
		number = float64(typed)
	case int32:
		number = float64(typed)
	case int64:
		number = float64(typed)
	case uint:
		number = float64(typed)
	case uint64:
		number = float64(typed)
	case float32:
		number = float64(typed)
	case float64:
		number = typed
	default:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return 0, false
		}
		number = parsed
	}
	if math.IsNaN(number) {
		return 0, false
	}
	return number, true
}
