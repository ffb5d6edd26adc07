package mallctl

import (
	"strings"
	"time"
)

// StepResult records the outcome of a single executed step. It is owned by
// the caller that inspects it and holds the fully captured output streams,
// never a live pipe.
type StepResult struct {
	RunID    string
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

func (r *StepResult) Failed() bool {
	return r.ExitCode != 0
}

// TrimmedStdout strips the trailing newline noise most commands emit.
func (r *StepResult) TrimmedStdout() string {
	return strings.Trim(r.Stdout, "\n ")
}

func (r *StepResult) TrimmedStderr() string {
	return strings.Trim(r.Stderr, "\n ")
}
