// Package cli wires the formfocus commands: validate checks a value file
// against a form definition, prompt runs the terminal correction session and
// rules lists the rule catalogue.
package cli

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfocus/internal/config"
	"github.com/goliatone/go-formfocus/internal/logging"
	"github.com/goliatone/go-formfocus/pkg/renderers/tui"
)

// ErrNotSubmittable is returned by validate when the values leave at least
// one field invalid. The decision has already been printed; callers only
// need to set the exit status.
var ErrNotSubmittable = errors.New("form is not submittable")

// app carries the state shared by every command once the root pre-run has
// loaded the configuration.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger zerolog.Logger

	// driver overrides the survey prompts; nil uses the terminal.
	driver tui.PromptDriver
}

// Execute builds the command tree and runs it with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand returns the formfocus command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "formfocus",
		Short: "Validate booking forms and walk users to the first invalid field",
		Long: `formfocus validates form values against a YAML form definition, merges
server-side field errors, and reports whether the form can be submitted along
with the first invalid field in declaration order.

Configuration is read from formfocus.yaml (or --config) and FORMFOCUS_*
environment variables, e.g. FORMFOCUS_LOG_LEVEL=debug.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default is ./formfocus.yaml when present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		newValidateCommand(a),
		newPromptCommand(a),
		newRulesCommand(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg

	logCfg := cfg.Logging()
	logCfg.Output = cmd.ErrOrStderr()
	a.logger = logging.New(logCfg).With().Str("command", cmd.Name()).Logger()
	a.logger.Debug().Str("config", a.configPath).Msg("configuration loaded")
	return nil
}
