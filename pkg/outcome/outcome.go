package outcome

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// Kind identifies one case of the closed Outcome union. The string values
// double as the wire tag emitted under the "type" key.
type Kind string

const (
	KindValid             Kind = "valid"
	KindRequired          Kind = "required"
	KindRequiredAgree     Kind = "requiredAgree"
	KindEmail             Kind = "email"
	KindNumber            Kind = "number"
	KindMinLength         Kind = "minLength"
	KindMaxLength         Kind = "maxLength"
	KindMinNumber         Kind = "minNumber"
	KindDifferentPassword Kind = "differentPassword"
	KindAlreadyExists     Kind = "alreadyExists"
	KindWrongPassword     Kind = "wrongPassword"
	KindServerError       Kind = "serverError"
)

// Kinds lists every case of the union in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindValid,
		KindRequired,
		KindRequiredAgree,
		KindEmail,
		KindNumber,
		KindMinLength,
		KindMaxLength,
		KindMinNumber,
		KindDifferentPassword,
		KindAlreadyExists,
		KindWrongPassword,
		KindServerError,
	}
}

// Known reports whether k is one of the closed set of kinds.
func (k Kind) Known() bool {
	for _, candidate := range Kinds() {
		if candidate == k {
			return true
		}
	}
	return false
}

// Outcome is the classification of a single field value. Payload fields are
// only meaningful for the kinds that carry them and are reachable through the
// typed accessors. The zero value is not a valid outcome; use the
// constructors.
//
// A nil *Outcome means "absent": the field currently has no opinion. The
// accessors are safe to call on it.
type Outcome struct {
	kind         Kind
	length       int
	floor        float64
	message      string
	firstInvalid bool
}

func newOutcome(kind Kind) *Outcome {
	return &Outcome{kind: kind}
}

// Valid returns the success outcome.
func Valid() *Outcome { return newOutcome(KindValid) }

// Required reports an empty value in a mandatory field.
func Required() *Outcome { return newOutcome(KindRequired) }

// RequiredAgree reports an agreement checkbox left unticked.
func RequiredAgree() *Outcome { return newOutcome(KindRequiredAgree) }

// Email reports a malformed email address.
func Email() *Outcome { return newOutcome(KindEmail) }

// Number reports a value that is not numeric.
func Number() *Outcome { return newOutcome(KindNumber) }

// DifferentPassword reports a confirmation that does not match.
func DifferentPassword() *Outcome { return newOutcome(KindDifferentPassword) }

// AlreadyExists reports a value the backend already knows about.
func AlreadyExists() *Outcome { return newOutcome(KindAlreadyExists) }

// WrongPassword reports a rejected credential.
func WrongPassword() *Outcome { return newOutcome(KindWrongPassword) }

// MinLength reports a value shorter than min characters.
func MinLength(min int) *Outcome {
	o := newOutcome(KindMinLength)
	o.length = min
	return o
}

// MaxLength reports a value longer than max characters.
func MaxLength(max int) *Outcome {
	o := newOutcome(KindMaxLength)
	o.length = max
	return o
}

// MinNumber reports a number that is not strictly greater than floor.
func MinNumber(floor float64) *Outcome {
	o := newOutcome(KindMinNumber)
	o.floor = floor
	return o
}

// ServerError wraps a backend message, displayed verbatim.
func ServerError(message string) *Outcome {
	o := newOutcome(KindServerError)
	o.message = message
	return o
}

// Kind returns the union tag. An absent outcome has the empty kind.
func (o *Outcome) Kind() Kind {
	if o == nil {
		return ""
	}
	return o.kind
}

// Length returns the threshold carried by minLength and maxLength outcomes.
func (o *Outcome) Length() (int, bool) {
	switch o.Kind() {
	case KindMinLength, KindMaxLength:
		return o.length, true
	default:
		return 0, false
	}
}

// Floor returns the threshold carried by minNumber outcomes.
func (o *Outcome) Floor() (float64, bool) {
	if o.Kind() != KindMinNumber {
		return 0, false
	}
	return o.floor, true
}

// Message returns the text carried by serverError outcomes.
func (o *Outcome) Message() (string, bool) {
	if o.Kind() != KindServerError {
		return "", false
	}
	return o.message, true
}

// FirstInvalid reports whether aggregation picked this outcome as the field
// that should receive focus. Absent outcomes never are.
func (o *Outcome) FirstInvalid() bool {
	return o != nil && o.firstInvalid
}

// WithFirstInvalid returns a copy with the first-invalid flag set to flag.
// Absent stays absent.
func (o *Outcome) WithFirstInvalid(flag bool) *Outcome {
	if o == nil {
		return nil
	}
	marked := *o
	marked.firstInvalid = flag
	return &marked
}

// Equal compares kind, payload and flag. It lets go-cmp compare outcomes
// without reaching into unexported fields.
func (o Outcome) Equal(other Outcome) bool {
	return o == other
}

// String renders a short, language-neutral description used in logs and the
// terminal session.
func (o *Outcome) String() string {
	if o == nil {
		return "absent"
	}
	switch o.kind {
	case KindMinLength:
		return "minLength(" + strconv.Itoa(o.length) + ")"
	case KindMaxLength:
		return "maxLength(" + strconv.Itoa(o.length) + ")"
	case KindMinNumber:
		return "minNumber(" + strconv.FormatFloat(o.floor, 'f', -1, 64) + ")"
	case KindServerError:
		return "serverError(" + strconv.Quote(o.message) + ")"
	case "":
		return "<invalid outcome>"
	default:
		return string(o.kind)
	}
}

type wireOutcome struct {
	Type           Kind     `json:"type"`
	MinLength      *int     `json:"minLength,omitempty"`
	MaxLength      *int     `json:"maxLength,omitempty"`
	MinNumber      *float64 `json:"minNumber,omitempty"`
	Message        *string  `json:"message,omitempty"`
	IsFirstInvalid bool     `json:"isFirstInvalid,omitempty"`
}

// MarshalJSON emits the tagged form, e.g. {"type":"minLength","minLength":3}.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if !o.kind.Known() {
		return nil, fmt.Errorf("outcome: cannot encode kind %q", o.kind)
	}
	wire := wireOutcome{Type: o.kind, IsFirstInvalid: o.firstInvalid}
	switch o.kind {
	case KindMinLength:
		wire.MinLength = &o.length
	case KindMaxLength:
		wire.MaxLength = &o.length
	case KindMinNumber:
		wire.MinNumber = &o.floor
	case KindServerError:
		wire.Message = &o.message
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the tagged form and rejects unknown kinds.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var wire wireOutcome
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("outcome: decode: %w", err)
	}
	if !wire.Type.Known() {
		return fmt.Errorf("outcome: unknown type %q", wire.Type)
	}

	decoded := Outcome{kind: wire.Type, firstInvalid: wire.IsFirstInvalid}
	switch wire.Type {
	case KindMinLength:
		if wire.MinLength == nil {
			return fmt.Errorf("outcome: %s requires minLength", wire.Type)
		}
		decoded.length = *wire.MinLength
	case KindMaxLength:
		if wire.MaxLength == nil {
			return fmt.Errorf("outcome: %s requires maxLength", wire.Type)
		}
		decoded.length = *wire.MaxLength
	case KindMinNumber:
		if wire.MinNumber == nil {
			return fmt.Errorf("outcome: %s requires minNumber", wire.Type)
		}
		decoded.floor = *wire.MinNumber
	case KindServerError:
		if wire.Message != nil {
			decoded.message = *wire.Message
		}
	}
	*o = decoded
	return nil
}
