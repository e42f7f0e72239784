package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfocus/pkg/form"
	"github.com/goliatone/go-formfocus/pkg/renderers/tui"
	"github.com/goliatone/go-formfocus/pkg/scroll"
)

type promptFlags struct {
	form         string
	values       string
	serverErrors string
	format       string
	modal        bool
	maxRounds    int
}

func newPromptCommand(a *app) *cobra.Command {
	flags := &promptFlags{}
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in a form interactively",
		Long: `Prompt for every field of a form, validate the answers as a whole and, while
the form cannot be submitted, show the viewport around the first invalid
field and prompt again from there. The collected values are printed once the
form is valid.

Examples:
  formfocus prompt --form signup.yaml
  formfocus prompt --form signup.yaml --values draft.yaml --format pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPrompt(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.form, "form", "", "form definition (YAML or JSON)")
	cmd.Flags().StringVar(&flags.values, "values", "", "values to prefill (YAML or JSON)")
	cmd.Flags().StringVar(&flags.serverErrors, "server-errors", "", "server errors from a previous submission")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: json, form or pretty (default from config)")
	cmd.Flags().BoolVar(&flags.modal, "modal", false, "reveal fields below modal chrome")
	cmd.Flags().IntVar(&flags.maxRounds, "max-rounds", 0, "give up after this many correction rounds (0 means never)")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

func (a *app) runPrompt(cmd *cobra.Command, flags *promptFlags) error {
	f, err := a.compileForm(flags.form)
	if err != nil {
		return err
	}

	var values map[string]any
	if flags.values != "" {
		if values, err = form.LoadValues(flags.values); err != nil {
			return err
		}
	}
	server, formErrors, err := loadServerErrors(flags.serverErrors, f.Keys())
	if err != nil {
		return err
	}
	for _, msg := range formErrors {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", f.ID(), msg)
	}

	format := flags.format
	if format == "" {
		format = a.cfg.Terminal.OutputFormat
	}
	switch tui.OutputFormat(format) {
	case tui.OutputFormatJSON, tui.OutputFormatFormURLEncoded, tui.OutputFormatPrettyText:
	default:
		return fmt.Errorf("prompt: unknown format %q", format)
	}

	engine := scroll.NewEngine(
		scroll.WithGeometry(a.cfg.ScrollGeometry()),
		scroll.WithLogger(a.logger),
	)
	renderer := tui.New(
		tui.WithPromptDriver(a.driver),
		tui.WithOutputFormat(tui.OutputFormat(format)),
		tui.WithViewport(tui.Viewport{
			Rows:      a.cfg.Terminal.ViewportRows,
			FieldRows: a.cfg.Terminal.FieldRows,
		}),
		tui.WithScrollEngine(engine),
		tui.WithMaxRounds(flags.maxRounds),
		tui.WithLogger(a.logger),
	)

	out, err := renderer.Render(cmd.Context(), f, tui.RenderOptions{
		Values: values,
		Server: server,
		Modal:  flags.modal,
	})
	if err != nil {
		return fmt.Errorf("prompt: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
