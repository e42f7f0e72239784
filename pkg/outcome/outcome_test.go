package outcome_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfocus/pkg/outcome"
)

func TestOutcome_PayloadAccessors(t *testing.T) {
	if n, ok := outcome.MinLength(3).Length(); !ok || n != 3 {
		t.Fatalf("minLength payload = %d, %v", n, ok)
	}
	if n, ok := outcome.MaxLength(140).Length(); !ok || n != 140 {
		t.Fatalf("maxLength payload = %d, %v", n, ok)
	}
	if floor, ok := outcome.MinNumber(5).Floor(); !ok || floor != 5 {
		t.Fatalf("minNumber payload = %v, %v", floor, ok)
	}
	if msg, ok := outcome.ServerError("taken").Message(); !ok || msg != "taken" {
		t.Fatalf("serverError payload = %q, %v", msg, ok)
	}

	if _, ok := outcome.Required().Length(); ok {
		t.Fatalf("required must not expose a length")
	}
	if _, ok := outcome.Email().Floor(); ok {
		t.Fatalf("email must not expose a floor")
	}
	if _, ok := outcome.Valid().Message(); ok {
		t.Fatalf("valid must not expose a message")
	}
}

func TestOutcome_WithFirstInvalidCopies(t *testing.T) {
	original := outcome.Required()
	marked := original.WithFirstInvalid(true)

	if original.FirstInvalid() {
		t.Fatalf("original outcome was mutated")
	}
	if !marked.FirstInvalid() || marked.Kind() != outcome.KindRequired {
		t.Fatalf("marked copy = %v first=%v", marked, marked.FirstInvalid())
	}
}

func TestOutcome_AbsentAccessors(t *testing.T) {
	var absent *outcome.Outcome

	if absent.FirstInvalid() {
		t.Fatalf("absent outcome cannot be first invalid")
	}
	if absent.Kind() != "" {
		t.Fatalf("absent kind = %q", absent.Kind())
	}
	if _, ok := absent.Length(); ok {
		t.Fatalf("absent outcome must not expose a length")
	}
	if _, ok := absent.Floor(); ok {
		t.Fatalf("absent outcome must not expose a floor")
	}
	if _, ok := absent.Message(); ok {
		t.Fatalf("absent outcome must not expose a message")
	}
	if absent.WithFirstInvalid(true) != nil {
		t.Fatalf("marking an absent outcome should keep it absent")
	}
	if got := absent.String(); got != "absent" {
		t.Fatalf("String = %q", got)
	}
}

func TestOutcome_JSONShape(t *testing.T) {
	data, err := json.Marshal(outcome.MinLength(3).WithFirstInvalid(true))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]any{
		"type":           "minLength",
		"minLength":      float64(3),
		"isFirstInvalid": true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json shape mismatch (-want +got):\n%s", diff)
	}

	var decoded outcome.Outcome
	if err := json.Unmarshal([]byte(`{"type":"serverError","message":"taken"}`), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(*outcome.ServerError("taken"), decoded); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}
}

func TestOutcome_UnmarshalRejectsUnknownKind(t *testing.T) {
	var decoded outcome.Outcome
	if err := json.Unmarshal([]byte(`{"type":"banana"}`), &decoded); err == nil {
		t.Fatalf("expected unknown type to be rejected")
	}
	if err := json.Unmarshal([]byte(`{"type":"minLength"}`), &decoded); err == nil {
		t.Fatalf("expected missing threshold to be rejected")
	}
}

func TestResults_PreservesDeclarationOrder(t *testing.T) {
	results := outcome.NewResults()
	results.Set("zeta", outcome.Valid())
	results.Set("alpha", nil)
	results.Set("mid", outcome.Email())
	results.Set("zeta", outcome.Required())

	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, results.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	got, ok := results.Get("zeta")
	if !ok || got.Kind() != outcome.KindRequired {
		t.Fatalf("overwritten key = %v, %v", got, ok)
	}
	if value, ok := results.Get("alpha"); !ok || value != nil {
		t.Fatalf("absent key should be present with nil outcome")
	}

	results.Delete("alpha")
	if diff := cmp.Diff([]string{"zeta", "mid"}, results.Keys()); diff != "" {
		t.Fatalf("keys after delete mismatch (-want +got):\n%s", diff)
	}

	data, err := json.Marshal(results)
	if err != nil {
		t.Fatalf("marshal results: %v", err)
	}
	want := `{"zeta":{"type":"required"},"mid":{"type":"email"}}`
	if string(data) != want {
		t.Fatalf("results json = %s, want %s", data, want)
	}
}
