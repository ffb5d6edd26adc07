package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	mallctl "github.com/jiffoo/mallctl/pkg"
)

var app = mallctl.NewApplication("mallctl")

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mallctl",
		Short:         "Automation for the Jiffoo mall development workflow",
		Long:          "mallctl bundles the dev-environment bring-up, README transport encoding, GitHub payload assembly and commit-and-push sequences into one fail-fast step runner.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return app.UpdateLoggingConfiguration()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&app.Output, "output", "o", "text", "Output format. One of: json|text|bunyan|message")
	rootCmd.PersistentFlags().BoolVarP(&app.Colorize, "color", "C", true, "Colorize output")
	rootCmd.PersistentFlags().StringVarP(&app.ConfigFile, "config-file", "c", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&app.LogToStderr, "logtostderr", true, "write log messages to stderr")

	rootCmd.AddCommand(
		newUpCmd(),
		newDownCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
		newPayloadCmd(),
		newPushCmd(),
		newRunCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the CLI; any failure exits non-zero after being reported.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		logrus.Errorf("%v", err)
		os.Exit(1)
	}
}

func newRunner(config *mallctl.Config) *mallctl.Runner {
	runner := mallctl.NewRunner(app.Log)
	runner.Dir = config.Root
	return runner
}

func readiness(config *mallctl.Config) mallctl.Readiness {
	return mallctl.Readiness{
		Attempts: config.Readiness.Attempts,
		Interval: config.Readiness.Interval,
		Log:      app.Log,
	}
}
