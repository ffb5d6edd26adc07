package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jiffoo/mallctl/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mallctl version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(version.Get().Version)
		},
	}
}
