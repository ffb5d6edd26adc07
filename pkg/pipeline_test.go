package mallctl

import (
	"testing"
	"time"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalPipelineYaml = `
name: release-docs
vars:
  branch: main
steps:
- name: encode readme
  argv: [mallctl, encode]
- name: push
  run: git push origin {{.branch}}
`

func TestReadPipelineDef(t *testing.T) {
	def, err := ReadPipelineDefFromBytes([]byte(minimalPipelineYaml))
	require.NoError(t, err)

	assert.Equal(t, "release-docs", def.Name)
	require.Len(t, def.Steps, 2)
	assert.Equal(t, "encode readme", def.Steps[0].Name)
	assert.Equal(t, []string{"mallctl", "encode"}, def.Steps[0].Argv)
	assert.Equal(t, "git push origin {{.branch}}", def.Steps[1].Run)
}

func TestReadPipelineDefRejectsMissingSteps(t *testing.T) {
	_, err := ReadPipelineDefFromBytes([]byte("name: empty\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pipeline definition")
}

func TestReadPipelineDefRejectsUnknownFields(t *testing.T) {
	doc := `
name: typo
steps:
- name: a
  comand: echo hi
`
	_, err := ReadPipelineDefFromBytes([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pipeline definition")
}

func TestReadPipelineDefRejectsUnnamedStep(t *testing.T) {
	doc := `
name: anonymous
steps:
- run: echo hi
`
	_, err := ReadPipelineDefFromBytes([]byte(doc))
	assert.Error(t, err)
}

func TestCompileRendersVars(t *testing.T) {
	def, err := ReadPipelineDefFromBytes([]byte(minimalPipelineYaml))
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	seq, err := def.Compile(map[string]interface{}{"branch": "develop"}, Readiness{Attempts: 1, Interval: time.Millisecond, Log: logger}, logger)
	require.NoError(t, err, "compiled from %# v", pretty.Formatter(def))

	require.Equal(t, 2, seq.Len())
	assert.Equal(t, "git push origin develop", seq.items[1].step.Command)
}

func TestCompileRejectsUnknownVar(t *testing.T) {
	doc := `
name: broken
steps:
- name: oops
  run: echo {{.who}}
`
	def, err := ReadPipelineDefFromBytes([]byte(doc))
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	_, err = def.Compile(nil, Readiness{Attempts: 1, Interval: time.Millisecond, Log: logger}, logger)
	assert.Error(t, err)
}

func TestCompileRejectsBadWait(t *testing.T) {
	doc := `
name: waits
steps:
- name: pause
  run: echo hi
  wait: quite-a-while
`
	def, err := ReadPipelineDefFromBytes([]byte(doc))
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	_, err = def.Compile(nil, Readiness{Attempts: 1, Interval: time.Millisecond, Log: logger}, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing wait")
}

func TestCompileBuildsGates(t *testing.T) {
	doc := `
name: gated
steps:
- name: start db
  run: docker-compose up -d postgres
  wait_for:
  - tcp: localhost:5433
  wait: 1s
`
	def, err := ReadPipelineDefFromBytes([]byte(doc))
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	seq, err := def.Compile(nil, Readiness{Attempts: 1, Interval: time.Millisecond, Log: logger}, logger)
	require.NoError(t, err)

	require.Equal(t, 1, seq.Len())
	assert.Len(t, seq.items[0].gates, 2)
}
