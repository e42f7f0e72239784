package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfocus/pkg/form"
	"github.com/goliatone/go-formfocus/pkg/outcome"
)

// validateOutput is the JSON document printed by validate.
type validateOutput struct {
	Form         string           `json:"form"`
	Submittable  bool             `json:"submittable"`
	FirstInvalid string           `json:"firstInvalid,omitempty"`
	InvalidCount int              `json:"invalidCount"`
	Results      *outcome.Results `json:"results"`
	FormErrors   []string         `json:"formErrors,omitempty"`
}

type validateFlags struct {
	form         string
	values       string
	serverErrors string
	compact      bool
}

func newValidateCommand(a *app) *cobra.Command {
	flags := &validateFlags{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a value file against a form definition",
		Long: `Validate a value file against a form definition and print the decision as
JSON: every field's outcome in declaration order, whether the form can be
submitted, the first invalid field and the number of invalid fields.

Server-side errors from a previous submission can be merged with
--server-errors, either as a list of {key, value} entries or as an error
payload mapping field paths to messages.

The exit code indicates the result:
  0 - the form can be submitted
  1 - at least one field is invalid, or the input could not be read

Examples:
  formfocus validate --form signup.yaml --values values.yaml
  formfocus validate --form signup.yaml --values values.yaml --server-errors errors.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runValidate(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.form, "form", "", "form definition (YAML or JSON)")
	cmd.Flags().StringVar(&flags.values, "values", "", "values to validate (YAML or JSON)")
	cmd.Flags().StringVar(&flags.serverErrors, "server-errors", "", "server errors to merge (YAML or JSON)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "print JSON on a single line")
	_ = cmd.MarkFlagRequired("form")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func (a *app) runValidate(cmd *cobra.Command, flags *validateFlags) error {
	f, err := a.compileForm(flags.form)
	if err != nil {
		return err
	}
	values, err := form.LoadValues(flags.values)
	if err != nil {
		return err
	}
	server, formErrors, err := loadServerErrors(flags.serverErrors, f.Keys())
	if err != nil {
		return err
	}

	decision := f.Check(values, server)
	out := validateOutput{
		Form:         f.ID(),
		Submittable:  decision.Submittable && len(formErrors) == 0,
		FirstInvalid: decision.FirstInvalid,
		InvalidCount: decision.InvalidCount,
		Results:      decision.Results,
		FormErrors:   formErrors,
	}

	var data []byte
	if flags.compact {
		data, err = json.Marshal(out)
	} else {
		data, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("validate: encode decision: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(data)); err != nil {
		return err
	}

	a.logger.Info().
		Str("form", f.ID()).
		Bool("submittable", out.Submittable).
		Int("invalid", out.InvalidCount).
		Msg("validation finished")

	if !out.Submittable {
		return ErrNotSubmittable
	}
	return nil
}
