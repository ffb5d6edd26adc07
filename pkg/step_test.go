package mallctl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepValidate(t *testing.T) {
	cases := []struct {
		name string
		step Step
		ok   bool
	}{
		{"argv", Step{Description: "list", Argv: []string{"ls"}}, true},
		{"command", Step{Description: "list", Command: "ls -la"}, true},
		{"shell command", Step{Description: "count", Command: "ls | wc -l", Shell: true}, true},
		{"no description", Step{Argv: []string{"ls"}}, false},
		{"blank description", Step{Description: "   ", Argv: []string{"ls"}}, false},
		{"nothing to run", Step{Description: "noop"}, false},
		{"both forms", Step{Description: "list", Argv: []string{"ls"}, Command: "ls"}, false},
		{"argv with shell", Step{Description: "list", Argv: []string{"ls"}, Shell: true}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.step.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStepArgv(t *testing.T) {
	argv, err := Step{Description: "greet", Command: `echo "hello world"`}.argv()
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "hello world"}, argv)

	argv, err = Step{Description: "count", Command: "ls | wc -l", Shell: true}.argv()
	require.NoError(t, err)
	assert.Equal(t, []string{"sh", "-c", "ls | wc -l"}, argv)

	argv, err = Step{Description: "direct", Argv: []string{"git", "status", "--porcelain"}}.argv()
	require.NoError(t, err)
	assert.Equal(t, []string{"git", "status", "--porcelain"}, argv)
}
