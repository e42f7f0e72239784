package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfocus/pkg/rules"
)

var ruleSummaries = map[string]string{
	rules.NameRequired:        "any non-empty text",
	rules.NameRequiredNumber:  "any defined value, zero included",
	rules.NameRequiredAgree:   "a ticked agreement",
	rules.NameShortText:       fmt.Sprintf("%d to %d characters", rules.ShortTextMinLength, rules.ShortTextMaxLength),
	rules.NameEmail:           "a syntactically valid address",
	rules.NameNumber:          "digits only",
	rules.NamePassword:        fmt.Sprintf("%d to %d characters", rules.PasswordMinLength, rules.PasswordMaxLength),
	rules.NameConfirmPassword: fmt.Sprintf("%d to %d characters equal to matchField", rules.ConfirmPasswordMinLength, rules.ConfirmPasswordMaxLength),
	rules.NameMinNumber:       "a number strictly greater than match",
}

func newRulesCommand(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rule names a form definition may use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, name := range rules.NewRegistry().Names() {
				fmt.Fprintf(w, "%s\t%s\n", name, ruleSummaries[name])
			}
			return w.Flush()
		},
	}
}
