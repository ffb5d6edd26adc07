// Package compose turns the tiered dev-environment configuration into the
// docker compose step sequences the up and down commands execute.
package compose

import (
	"fmt"
	"strings"

	"github.com/juju/errors"

	mallctl "github.com/jiffoo/mallctl/pkg"
)

// Argv builds a compose invocation: the configured command, the -f flag
// for the compose file, then the verb and its arguments.
func Argv(cfg mallctl.ComposeConfig, args ...string) []string {
	argv := append([]string{}, cfg.Command...)
	argv = append(argv, "-f", cfg.File)
	return append(argv, args...)
}

// CheckSteps verify the container tooling is present before anything else
// runs, so a missing runtime fails on the first step with a clear message.
func CheckSteps(cfg mallctl.ComposeConfig) []mallctl.Step {
	compose := append(append([]string{}, cfg.Command...), "--version")
	return []mallctl.Step{
		{Description: "check docker version", Argv: []string{"docker", "--version"}},
		{Description: "check compose version", Argv: compose},
	}
}

// Down stops whatever containers a previous run left behind. It tolerates
// failure: there is nothing to stop on a fresh host.
func Down(cfg mallctl.ComposeConfig) mallctl.Step {
	return mallctl.Step{
		Description:  "stop existing containers",
		Argv:         Argv(cfg, "down"),
		AllowFailure: true,
	}
}

// UpTier starts one tier's services detached.
func UpTier(cfg mallctl.ComposeConfig, tier mallctl.Tier) mallctl.Step {
	args := append([]string{"up", "-d"}, tier.Services...)
	return mallctl.Step{
		Description: fmt.Sprintf("start %s services (%s)", tier.Name, strings.Join(tier.Services, ", ")),
		Argv:        Argv(cfg, args...),
	}
}

// PS reports the state of every service for the final summary.
func PS(cfg mallctl.ComposeConfig) mallctl.Step {
	return mallctl.Step{
		Description: "show service status",
		Argv:        Argv(cfg, "ps"),
	}
}

// UpPlan is the full bring-up: tooling checks, cleanup, then each tier in
// declaration order gated on its own readiness probes.
func UpPlan(cfg mallctl.ComposeConfig, readiness mallctl.Readiness) (*mallctl.Sequence, error) {
	seq := mallctl.NewSequence("up")

	for _, step := range CheckSteps(cfg) {
		seq.Add(step)
	}
	seq.Add(Down(cfg))

	for _, tier := range cfg.Tiers {
		var gates []mallctl.Gate
		for _, probeConfig := range tier.Probes {
			probe, err := probeConfig.Probe()
			if err != nil {
				return nil, errors.Annotatef(err, "tier %s", tier.Name)
			}
			gates = append(gates, readiness.Gate(probe))
		}
		seq.Add(UpTier(cfg, tier), gates...)
	}

	seq.Add(PS(cfg))
	return seq, nil
}

// DownPlan tears the environment down.
func DownPlan(cfg mallctl.ComposeConfig) *mallctl.Sequence {
	seq := mallctl.NewSequence("down")
	seq.Add(mallctl.Step{
		Description: "stop containers",
		Argv:        Argv(cfg, "down"),
	})
	return seq
}
