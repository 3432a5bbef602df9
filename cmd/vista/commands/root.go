package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	logFormat string
	logLevel  string
	logger    = zerolog.Nop()
)

// Execute runs the vista CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "vista",
		Short:        "Debounced view-state pipelines from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := newLogger(cmd.ErrOrStderr(), logFormat, logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console|json)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "minimum log level (debug|info|warn|error|disabled)")

	root.AddCommand(runCmd(), validateCmd())
	return root
}
