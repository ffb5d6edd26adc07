package mallctl

import (
	"fmt"
	"time"

	multierror "github.com/hashicorp/go-multierror"
)

// Config is the project-level configuration loaded from mallctl.yaml and
// the MALLCTL_* environment. Everything the original scripts hard-coded --
// the machine-specific project root, the compose file, the service tiers,
// the git remotes -- lives here instead.
type Config struct {
	// Root is the project directory every command operates in.
	Root string `mapstructure:"root"`

	Compose   ComposeConfig   `mapstructure:"compose"`
	Git       GitConfig       `mapstructure:"git"`
	Readiness ReadinessConfig `mapstructure:"readiness"`
	Encode    EncodeConfig    `mapstructure:"encode"`
}

type ComposeConfig struct {
	// Command is the compose binary and leading arguments, so either
	// ["docker-compose"] or ["docker", "compose"].
	Command []string `mapstructure:"command"`
	File    string   `mapstructure:"file"`

	// Tiers start in declaration order; each tier's probes must report
	// ready before the next tier starts.
	Tiers []Tier `mapstructure:"tiers"`

	// URLs are printed in the final summary after a successful bring-up.
	URLs []ServiceURL `mapstructure:"urls"`
}

type Tier struct {
	Name     string        `mapstructure:"name"`
	Services []string      `mapstructure:"services"`
	Probes   []ProbeConfig `mapstructure:"probes"`
}

type ProbeConfig struct {
	TCP  string `mapstructure:"tcp" yaml:"tcp"`
	HTTP string `mapstructure:"http" yaml:"http"`
}

// Probe converts the configured address into a readiness probe.
func (c ProbeConfig) Probe() (Probe, error) {
	switch {
	case c.TCP != "" && c.HTTP != "":
		return nil, fmt.Errorf("probe declares both tcp %q and http %q", c.TCP, c.HTTP)
	case c.TCP != "":
		return TCPProbe{Addr: c.TCP}, nil
	case c.HTTP != "":
		return HTTPProbe{URL: c.HTTP}, nil
	default:
		return nil, fmt.Errorf("probe declares neither tcp nor http")
	}
}

type ServiceURL struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

type GitConfig struct {
	// Remotes are pushed to in order.
	Remotes []string `mapstructure:"remotes"`
	Branch  string   `mapstructure:"branch"`

	// Editor replaces whatever EDITOR the operator has so no child git
	// process drops into an interactive prompt.
	Editor string `mapstructure:"editor"`
}

type ReadinessConfig struct {
	Attempts uint          `mapstructure:"attempts"`
	Interval time.Duration `mapstructure:"interval"`
}

type EncodeConfig struct {
	Input         string `mapstructure:"input"`
	Output        string `mapstructure:"output"`
	PayloadOutput string `mapstructure:"payload_output"`
}

func DefaultConfig() *Config {
	return &Config{
		Root: ".",
		Compose: ComposeConfig{
			Command: []string{"docker-compose"},
			File:    "docker-compose.dev.yml",
			Tiers: []Tier{
				{
					Name:     "infra",
					Services: []string{"postgres", "redis"},
					Probes: []ProbeConfig{
						{TCP: "localhost:5433"},
						{TCP: "localhost:6380"},
					},
				},
				{
					Name:     "backend",
					Services: []string{"backend"},
					Probes:   []ProbeConfig{{HTTP: "http://localhost:8001/health"}},
				},
				{
					Name:     "frontend",
					Services: []string{"frontend", "admin"},
				},
			},
			URLs: []ServiceURL{
				{Name: "storefront", URL: "http://localhost:3000"},
				{Name: "admin", URL: "http://localhost:3001"},
				{Name: "api", URL: "http://localhost:8001"},
				{Name: "api docs", URL: "http://localhost:8001/docs"},
			},
		},
		Git: GitConfig{
			Remotes: []string{"origin"},
			Branch:  "main",
			Editor:  "true",
		},
		Readiness: ReadinessConfig{
			Attempts: 30,
			Interval: 2 * time.Second,
		},
		Encode: EncodeConfig{
			Input:         "README.md",
			Output:        "readme-base64.txt",
			PayloadOutput: "github-payload.json",
		},
	}
}

// Validate reports every configuration problem at once rather than the
// first one found.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Root == "" {
		result = multierror.Append(result, fmt.Errorf("root must not be empty"))
	}
	if len(c.Compose.Command) == 0 {
		result = multierror.Append(result, fmt.Errorf("compose.command must not be empty"))
	}
	if c.Compose.File == "" {
		result = multierror.Append(result, fmt.Errorf("compose.file must not be empty"))
	}
	for i, tier := range c.Compose.Tiers {
		if tier.Name == "" {
			result = multierror.Append(result, fmt.Errorf("compose.tiers[%d] has no name", i))
		}
		if len(tier.Services) == 0 {
			result = multierror.Append(result, fmt.Errorf("compose tier %q lists no services", tier.Name))
		}
		for _, probe := range tier.Probes {
			if _, err := probe.Probe(); err != nil {
				result = multierror.Append(result, fmt.Errorf("compose tier %q: %v", tier.Name, err))
			}
		}
	}
	if len(c.Git.Remotes) == 0 {
		result = multierror.Append(result, fmt.Errorf("git.remotes must list at least one remote"))
	}
	if c.Git.Branch == "" {
		result = multierror.Append(result, fmt.Errorf("git.branch must not be empty"))
	}
	if c.Readiness.Attempts == 0 {
		result = multierror.Append(result, fmt.Errorf("readiness.attempts must be positive"))
	}
	if c.Readiness.Interval <= 0 {
		result = multierror.Append(result, fmt.Errorf("readiness.interval must be positive"))
	}

	return result.ErrorOrNil()
}
