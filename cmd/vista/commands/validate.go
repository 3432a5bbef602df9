package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoobzio/vista"
)

type namedRule struct {
	name string
	rule vista.PasswordRule
}

// validate: report each password rule and the overall verdict.
func validateCmd() *cobra.Command {
	var minLength int
	cmd := &cobra.Command{
		Use:   "validate <password>",
		Short: "Check a password against the validity rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := args[0]
			checks := []namedRule{
				{"not-blank", vista.RuleNotBlank},
				{"has-upper", vista.RuleHasUpper},
				{"has-lower", vista.RuleHasLower},
				{fmt.Sprintf("min-length(%d)", minLength), vista.RuleMinLength(minLength)},
			}

			out := cmd.OutOrStdout()
			rules := make([]vista.PasswordRule, 0, len(checks))
			for _, c := range checks {
				fmt.Fprintf(out, "%-15s %s\n", c.name, verdict(c.rule(password)))
				rules = append(rules, c.rule)
			}
			fmt.Fprintf(out, "%-15s %t\n", "valid", vista.AllRules(rules...)(password))
			return nil
		},
	}
	cmd.Flags().IntVar(&minLength, "min-length", vista.DefaultMinPasswordLength, "minimum number of characters")
	return cmd
}

func verdict(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}
