package mallctl

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// spawnExitCode is reported when the child process could not be started at
// all, mirroring the shell's command-not-found status.
const spawnExitCode = 127

// Execer abstracts process spawning. It enables unit tests to inject a fake.
type Execer interface {
	Exec(argv []string, dir string, env []string) (exitCode int, stdout, stderr string, err error)
}

// Runner executes one step at a time, synchronously, capturing both output
// streams in full. Dir and Env apply to every step unless the step
// overrides them. A Runner never returns an error for a failed command;
// failures of any kind, including spawn errors, are folded into the
// StepResult so the caller makes a single success/failure decision.
type Runner struct {
	Dir string
	Env map[string]string
	Log *log.Logger

	exec Execer
}

func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Runner{Log: logger, exec: defaultExecer{}}
}

// SetExecer allows tests to inject a custom execer.
func (r *Runner) SetExecer(e Execer) { r.exec = e }

func (r *Runner) Run(s Step) *StepResult {
	id := uuid.New().String()
	ctx := r.Log.WithFields(log.Fields{"run": id})

	if err := s.Validate(); err != nil {
		ctx.Errorf("invalid step: %v", err)
		return &StepResult{RunID: id, ExitCode: spawnExitCode, Stderr: err.Error()}
	}

	argv, err := s.argv()
	if err != nil {
		ctx.Errorf("%s failed: %v", s.Description, err)
		return &StepResult{RunID: id, ExitCode: spawnExitCode, Stderr: err.Error()}
	}

	ctx.Infof("running: %s", s.Description)
	ctx.Debugf("shelling out: %v", argv)

	dir := s.Dir
	if dir == "" {
		dir = r.Dir
	}

	start := time.Now()
	code, stdout, stderr, err := r.exec.Exec(argv, dir, mergedEnv(r.Env, s.Env))
	result := &StepResult{
		RunID:    id,
		ExitCode: code,
		Stdout:   stdout,
		Stderr:   stderr,
		Duration: time.Since(start),
	}

	if err != nil {
		// The command could not be located or started. Treated identically
		// to a non-zero exit so orchestration halts the same way.
		result.ExitCode = spawnExitCode
		result.Stderr = err.Error()
	}

	if result.Failed() {
		ctx.Errorf("%s failed: exit status %d", s.Description, result.ExitCode)
		if out := result.TrimmedStderr(); out != "" {
			ctx.Error(out)
		}
	} else {
		ctx.Infof("%s succeeded", s.Description)
		if out := result.TrimmedStdout(); out != "" {
			ctx.Info(out)
		}
	}

	return result
}

type defaultExecer struct{}

func (defaultExecer) Exec(argv []string, dir string, env []string) (int, string, string, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), stdout.String(), stderr.String(), nil
		}
		return spawnExitCode, stdout.String(), stderr.String(), errors.Wrapf(err, "spawning %s", argv[0])
	}
	return 0, stdout.String(), stderr.String(), nil
}

// mergedEnv layers the runner-wide and per-step overrides on top of the
// inherited process environment.
func mergedEnv(layers ...map[string]string) []string {
	merged := map[string]string{}
	for _, pair := range os.Environ() {
		splits := strings.SplitN(pair, "=", 2)
		merged[splits[0]] = splits[1]
	}
	for _, layer := range layers {
		for name, value := range layer {
			merged[name] = value
		}
	}

	env := make([]string, 0, len(merged))
	for name, value := range merged {
		env = append(env, fmt.Sprintf("%s=%s", name, value))
	}
	return env
}
