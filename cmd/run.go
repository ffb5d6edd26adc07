package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jiffoo/mallctl/pkg/load"
)

func newRunCmd() *cobra.Command {
	var vars []string

	cmd := &cobra.Command{
		Use:   "run PIPELINE",
		Short: "Run a declared pipeline",
		Long: `Loads a pipeline definition from a local path or a go-getter source,
validates it, renders its step templates and executes the steps in order,
halting on the first failure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			config, err := app.LoadConfig()
			if err != nil {
				return err
			}

			def, err := load.Source(args[0])
			if err != nil {
				return err
			}

			overrides := map[string]interface{}{}
			for _, pair := range vars {
				splits := strings.SplitN(pair, "=", 2)
				if len(splits) != 2 {
					return fmt.Errorf("invalid --var %q, expected key=value", pair)
				}
				overrides[splits[0]] = splits[1]
			}

			seq, err := def.Compile(overrides, readiness(config), app.Log)
			if err != nil {
				return err
			}

			_, err = seq.Run(newRunner(config))
			return err
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "pipeline variable override, key=value (repeatable)")

	return cmd
}
