package mallctl

import (
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Step is one declared unit of work: an external command plus the
// human-readable description printed while it runs. A step carries either
// an argument vector or a command string. String commands are parsed into
// an argument vector with shellwords unless Shell is set, in which case the
// command is handed to `sh -c` verbatim for pipes and redirection.
type Step struct {
	Description string
	Argv        []string
	Command     string
	Shell       bool

	// Dir and Env override the runner's working directory and add to its
	// environment for this step only.
	Dir string
	Env map[string]string

	// AllowFailure marks cleanup-style steps whose non-zero exit must not
	// halt the sequence.
	AllowFailure bool
}

func (s Step) Validate() error {
	if strings.TrimSpace(s.Description) == "" {
		return fmt.Errorf("step has no description")
	}
	if len(s.Argv) == 0 && strings.TrimSpace(s.Command) == "" {
		return fmt.Errorf("step %q has neither argv nor command", s.Description)
	}
	if len(s.Argv) > 0 && s.Command != "" {
		return fmt.Errorf("step %q declares both argv and command", s.Description)
	}
	if len(s.Argv) > 0 && s.Shell {
		return fmt.Errorf("step %q declares argv with shell interpretation", s.Description)
	}
	return nil
}

func (s Step) argv() ([]string, error) {
	if len(s.Argv) > 0 {
		return s.Argv, nil
	}
	if s.Shell {
		return []string{"sh", "-c", s.Command}, nil
	}
	return shellwords.Parse(s.Command)
}

// CommandLine returns the command as it will be spawned, for logging.
func (s Step) CommandLine() string {
	argv, err := s.argv()
	if err != nil {
		return s.Command
	}
	return strings.Join(argv, " ")
}
