package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jiffoo/mallctl/pkg/compose"
)

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Start the dev environment tier by tier",
		Long: `Starts the compose services in tiers (infra, backend, frontend), waiting
between tiers until each tier's readiness probes report healthy. Assumes a
single operator; two concurrent invocations against the same daemon are not
coordinated.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			config, err := app.LoadConfig()
			if err != nil {
				return err
			}

			plan, err := compose.UpPlan(config.Compose, readiness(config))
			if err != nil {
				return err
			}

			if _, err := plan.Run(newRunner(config)); err != nil {
				return err
			}

			app.Log.Info("environment is up")
			for _, service := range config.Compose.URLs {
				app.Log.Infof("  %-12s %s", service.Name, service.URL)
			}
			return nil
		},
	}
}

func newDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Stop the dev environment",
		RunE: func(_ *cobra.Command, _ []string) error {
			config, err := app.LoadConfig()
			if err != nil {
				return err
			}

			_, err = compose.DownPlan(config.Compose).Run(newRunner(config))
			return err
		},
	}
}
