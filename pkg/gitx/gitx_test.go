package gitx

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mallctl "github.com/jiffoo/mallctl/pkg"
)

type fakeOutcome struct {
	code   int
	stdout string
	stderr string
}

type fakeExecer struct {
	calls    [][]string
	envs     [][]string
	outcomes map[string]fakeOutcome
}

func (f *fakeExecer) Exec(argv []string, dir string, env []string) (int, string, string, error) {
	f.calls = append(f.calls, argv)
	f.envs = append(f.envs, env)
	outcome := f.outcomes[strings.Join(argv, " ")]
	return outcome.code, outcome.stdout, outcome.stderr, nil
}

func newTestService(outcomes map[string]fakeOutcome) (*Service, *fakeExecer) {
	logger, _ := test.NewNullLogger()
	runner := mallctl.NewRunner(logger)
	execer := &fakeExecer{outcomes: outcomes}
	runner.SetExecer(execer)

	service := NewService(runner, mallctl.GitConfig{
		Remotes: []string{"origin", "github"},
		Branch:  "main",
		Editor:  "true",
	})
	return service, execer
}

func TestPushCleanTreeIsNoOp(t *testing.T) {
	service, execer := newTestService(map[string]fakeOutcome{
		"git status --porcelain": {stdout: ""},
	})

	require.NoError(t, service.Push("docs: update"))
	// Only the status check runs.
	assert.Len(t, execer.calls, 1)
	assert.Equal(t, []string{"git", "status", "--porcelain"}, execer.calls[0])
}

func TestPushDirtyTreeRunsFullSequence(t *testing.T) {
	service, execer := newTestService(map[string]fakeOutcome{
		"git status --porcelain": {stdout: " M README.md\n"},
	})

	require.NoError(t, service.Push("docs: update README"))

	assert.Equal(t, [][]string{
		{"git", "status", "--porcelain"},
		{"git", "add", "-A"},
		{"git", "commit", "-m", "docs: update README"},
		{"git", "push", "origin", "main"},
		{"git", "push", "github", "main"},
		{"git", "log", "--oneline", "-5"},
	}, execer.calls)
}

func TestPushForcesNonInteractiveEditor(t *testing.T) {
	service, execer := newTestService(map[string]fakeOutcome{
		"git status --porcelain": {stdout: " M README.md\n"},
	})

	require.NoError(t, service.Push("msg"))

	commitEnv := execer.envs[2]
	assert.Contains(t, commitEnv, "GIT_EDITOR=true")
	assert.Contains(t, commitEnv, "EDITOR=true")
	assert.Contains(t, commitEnv, "VISUAL=true")
}

func TestPushHaltsOnFirstFailedRemote(t *testing.T) {
	service, execer := newTestService(map[string]fakeOutcome{
		"git status --porcelain": {stdout: " M README.md\n"},
		"git push origin main":   {code: 1, stderr: "remote rejected"},
	})

	err := service.Push("msg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `step "push to origin" failed`)

	last := execer.calls[len(execer.calls)-1]
	assert.Equal(t, []string{"git", "push", "origin", "main"}, last)
}

func TestPushStatusFailure(t *testing.T) {
	service, _ := newTestService(map[string]fakeOutcome{
		"git status --porcelain": {code: 128, stderr: "not a git repository"},
	})

	err := service.Push("msg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a git repository")
}
