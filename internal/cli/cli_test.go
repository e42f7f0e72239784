package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfocus/pkg/renderers/tui"
	"github.com/goliatone/go-formfocus/pkg/testsupport"
)

// executeCommand runs a fresh command tree with args and returns captured
// stdout and stderr.
func executeCommand(t *testing.T, a *app, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("FORMFOCUS_LOG_LEVEL", "disabled")

	root := newRootCommand(a)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

type decisionJSON struct {
	Form         string                     `json:"form"`
	Submittable  bool                       `json:"submittable"`
	FirstInvalid string                     `json:"firstInvalid"`
	InvalidCount int                        `json:"invalidCount"`
	Results      map[string]json.RawMessage `json:"results"`
	FormErrors   []string                   `json:"formErrors"`
}

func decodeDecision(t *testing.T, out string) decisionJSON {
	t.Helper()
	var got decisionJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return got
}

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()
	if root.Use != "formfocus" {
		t.Fatalf("root.Use = %q", root.Use)
	}
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"validate", "prompt", "rules"} {
		found := false
		for _, name := range names {
			found = found || name == want
		}
		if !found {
			t.Fatalf("subcommand %q not registered (have %v)", want, names)
		}
	}
}

func TestValidate_Submittable(t *testing.T) {
	out, _, err := executeCommand(t, &app{}, "validate",
		"--form", fixture("signup.yaml"),
		"--values", fixture("values_valid.yaml"),
	)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	got := decodeDecision(t, out)
	if !got.Submittable || got.InvalidCount != 0 || got.FirstInvalid != "" || got.Form != "signup" {
		t.Fatalf("decision = %+v", got)
	}

	// results keep declaration order on the wire
	order := []string{`"fullName"`, `"email"`, `"password"`, `"passwordConfirm"`, `"company.companyName"`, `"company.vatNumber"`, `"guests"`, `"terms"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(out, key)
		if idx <= last {
			t.Fatalf("key %s out of order in:\n%s", key, out)
		}
		last = idx
	}
	if string(got.Results["company.vatNumber"]) != "null" {
		t.Fatalf("absent optional field should encode as null, got %s", got.Results["company.vatNumber"])
	}
}

func TestValidate_NotSubmittable(t *testing.T) {
	out, _, err := executeCommand(t, &app{}, "validate",
		"--form", fixture("signup.yaml"),
		"--values", fixture("values_invalid.yaml"),
		"--compact",
	)
	if !errors.Is(err, ErrNotSubmittable) {
		t.Fatalf("err = %v, want ErrNotSubmittable", err)
	}
	if strings.Count(strings.TrimSpace(out), "\n") != 0 {
		t.Fatalf("--compact should print one line, got:\n%s", out)
	}

	got := decodeDecision(t, out)
	if got.Submittable || got.FirstInvalid != "email" || got.InvalidCount != 3 {
		t.Fatalf("decision = %+v", got)
	}

	wantEmail := `{"type":"email","isFirstInvalid":true}`
	if diff := cmp.Diff(wantEmail, string(got.Results["email"])); diff != "" {
		t.Fatalf("email outcome mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_ServerErrorList(t *testing.T) {
	out, _, err := executeCommand(t, &app{}, "validate",
		"--form", fixture("signup.yaml"),
		"--values", fixture("values_valid.yaml"),
		"--server-errors", fixture("server_errors.yaml"),
	)
	if !errors.Is(err, ErrNotSubmittable) {
		t.Fatalf("err = %v, want ErrNotSubmittable", err)
	}
	got := decodeDecision(t, out)
	if got.FirstInvalid != "email" || got.InvalidCount != 2 {
		t.Fatalf("decision = %+v", got)
	}
	if strings.Index(out, `"coupon"`) < strings.Index(out, `"terms"`) {
		t.Fatalf("unknown server key should follow the form's keys:\n%s", out)
	}
}

func TestValidate_ServerErrorListFormLevel(t *testing.T) {
	out, _, err := executeCommand(t, &app{}, "validate",
		"--form", fixture("signup.yaml"),
		"--values", fixture("values_valid.yaml"),
		"--server-errors", fixture("server_errors_form.yaml"),
	)
	if !errors.Is(err, ErrNotSubmittable) {
		t.Fatalf("err = %v, want ErrNotSubmittable", err)
	}
	got := decodeDecision(t, out)
	if got.FirstInvalid != "email" || got.InvalidCount != 1 {
		t.Fatalf("decision = %+v", got)
	}
	want := []string{"Bookings are closed for today", "Try again tomorrow"}
	if diff := cmp.Diff(want, got.FormErrors); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_ServerErrorPayload(t *testing.T) {
	out, _, err := executeCommand(t, &app{}, "validate",
		"--form", fixture("signup.yaml"),
		"--values", fixture("values_valid.yaml"),
		"--server-errors", fixture("server_payload.yaml"),
	)
	if !errors.Is(err, ErrNotSubmittable) {
		t.Fatalf("err = %v, want ErrNotSubmittable", err)
	}
	got := decodeDecision(t, out)
	if got.FirstInvalid != "company.companyName" || got.InvalidCount != 1 {
		t.Fatalf("decision = %+v", got)
	}
	if diff := cmp.Diff([]string{"Bookings are closed for today"}, got.FormErrors); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_InputErrors(t *testing.T) {
	if _, _, err := executeCommand(t, &app{}, "validate", "--form", fixture("signup.yaml")); err == nil {
		t.Fatalf("missing --values should fail")
	}
	_, _, err := executeCommand(t, &app{}, "validate",
		"--form", fixture("missing.yaml"),
		"--values", fixture("values_valid.yaml"),
	)
	if err == nil || errors.Is(err, ErrNotSubmittable) {
		t.Fatalf("unreadable form should fail with a read error, got %v", err)
	}
}

type scriptedDriver struct {
	inputs    []string
	passwords []string
	confirms  []bool
	infos     []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *scriptedDriver) Password(context.Context, tui.InputConfig) (string, error) {
	if len(d.passwords) == 0 {
		return "", errors.New("no password scripted")
	}
	next := d.passwords[0]
	d.passwords = d.passwords[1:]
	return next, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, errors.New("no confirm scripted")
	}
	next := d.confirms[0]
	d.confirms = d.confirms[1:]
	return next, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestPrompt_PrettyOutput(t *testing.T) {
	driver := &scriptedDriver{
		// fullName, email, companyName, vatNumber, guests
		inputs:    []string{"Ada Lovelace", "ada@example.com", "", "", "2"},
		passwords: []string{"hunter22", "hunter22"},
		confirms:  []bool{true},
	}
	out, _, err := executeCommand(t, &app{driver: driver}, "prompt",
		"--form", fixture("signup.yaml"),
		"--format", "pretty",
	)
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}

	want := strings.Join([]string{
		"fullName=Ada Lovelace",
		"email=ada@example.com",
		"password=hunter22",
		"passwordConfirm=hunter22",
		"company.companyName=",
		"company.vatNumber=",
		"guests=2",
		"terms=yes",
		"",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infos) != 0 {
		t.Fatalf("valid answers should not open a correction window: %v", driver.infos)
	}
}

func TestPrompt_CorrectsFirstInvalidAnswer(t *testing.T) {
	driver := &scriptedDriver{
		inputs: []string{
			// fullName, email, companyName, vatNumber, guests
			"Ada Lovelace", "nope", "", "", "2",
			// second round starts at email
			"ada@example.com", "", "", "2",
		},
		passwords: []string{"hunter22", "hunter22", "hunter22", "hunter22"},
		confirms:  []bool{true, true},
	}
	out, _, err := executeCommand(t, &app{driver: driver}, "prompt",
		"--form", fixture("signup.yaml"),
		"--format", "pretty",
	)
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if !strings.Contains(out, "email=ada@example.com\n") {
		t.Fatalf("corrected email missing from output:\n%s", out)
	}

	if len(driver.infos) != 1 {
		t.Fatalf("infos = %v", driver.infos)
	}
	window := driver.infos[0]
	for _, want := range []string{"1 field(s) need attention", "> Email: nope", "! email", "  Company Name: "} {
		if !strings.Contains(window, want) {
			t.Fatalf("window missing %q:\n%s", want, window)
		}
	}
	if len(driver.inputs) != 0 || len(driver.passwords) != 0 || len(driver.confirms) != 0 {
		t.Fatalf("unused answers: %+v", driver)
	}
}

func TestPrompt_UnknownFormat(t *testing.T) {
	_, _, err := executeCommand(t, &app{driver: &scriptedDriver{}}, "prompt",
		"--form", fixture("signup.yaml"),
		"--format", "xml",
	)
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Fatalf("err = %v", err)
	}
}

func TestRules_Golden(t *testing.T) {
	out, _, err := executeCommand(t, &app{}, "rules")
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	goldenPath := fixture("rules.golden")
	if testsupport.WriteMaybeGolden(t, goldenPath, []byte(out)) {
		return
	}
	want := testsupport.MustReadGolden(t, goldenPath)
	if diff := cmp.Diff(string(want), out); diff != "" {
		t.Fatalf("rules output mismatch (-want +got):\n%s", diff)
	}
}
