package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jiffoo/mallctl/pkg/gitx"
)

func newPushCmd() *cobra.Command {
	var message, messageFile string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Stage, commit and push to every configured remote",
		Long: `Checks the working tree, stages everything, commits with the given
message and pushes the configured branch to each remote in order. A clean
tree is a successful no-op. Already-pushed remotes are not rolled back when
a later one fails; fix the issue and re-run.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			config, err := app.LoadConfig()
			if err != nil {
				return err
			}

			msg, err := commitMessage(message, messageFile)
			if err != nil {
				return err
			}

			service := gitx.NewService(newRunner(config), config.Git)
			return service.Push(msg)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().StringVar(&messageFile, "message-file", "", "file containing the commit message")

	return cmd
}
