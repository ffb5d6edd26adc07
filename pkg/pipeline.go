package mallctl

import (
	"fmt"
	"time"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/jiffoo/mallctl/pkg/util/maputil"
)

// PipelineDef is a declared step sequence, decodable from YAML. It is the
// generic form of the fixed sequences the built-in commands construct in
// code: a named, ordered list of described commands with optional readiness
// gates between them.
type PipelineDef struct {
	Name  string                 `yaml:"name"`
	Vars  map[string]interface{} `yaml:"vars"`
	Steps []PipelineStepDef      `yaml:"steps"`
}

type PipelineStepDef struct {
	Name         string            `yaml:"name"`
	Run          string            `yaml:"run"`
	Argv         []string          `yaml:"argv"`
	Shell        bool              `yaml:"shell"`
	Dir          string            `yaml:"dir"`
	Env          map[string]string `yaml:"env"`
	AllowFailure bool              `yaml:"allow_failure"`

	// Wait is a constant pause after the step; WaitFor polls actual
	// readiness signals. Prefer WaitFor.
	Wait    string        `yaml:"wait"`
	WaitFor []ProbeConfig `yaml:"wait_for"`
}

// ReadPipelineDefFromBytes validates the document against the pipeline
// schema before decoding it, so schema violations surface with field-level
// messages instead of half-decoded structs.
func ReadPipelineDefFromBytes(data []byte) (*PipelineDef, error) {
	var raw map[interface{}]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Annotate(err, "yaml.Unmarshal failed")
	}

	doc, err := maputil.CastKeysToStrings(raw)
	if err != nil {
		return nil, errors.Annotate(err, "casting document keys")
	}

	if err := validatePipelineDoc(doc); err != nil {
		return nil, err
	}

	def := &PipelineDef{}
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, errors.Annotate(err, "yaml.Unmarshal failed")
	}

	return def, nil
}

// Compile renders each step's templates against the pipeline vars plus the
// supplied overrides and produces a runnable sequence. Rendering failures
// abort compilation, so nothing executes from a broken definition.
func (def *PipelineDef) Compile(overrides map[string]interface{}, readiness Readiness, logger *log.Logger) (*Sequence, error) {
	vars := map[string]interface{}{}
	for k, v := range def.Vars {
		vars[k] = v
	}
	for k, v := range overrides {
		vars[k] = v
	}

	seq := NewSequence(def.Name)

	for i, stepDef := range def.Steps {
		templateName := fmt.Sprintf("%s.steps[%d]", def.Name, i)

		step := Step{
			Description:  stepDef.Name,
			Shell:        stepDef.Shell,
			AllowFailure: stepDef.AllowFailure,
		}

		var err error
		if step.Command, err = Render(templateName, stepDef.Run, vars); err != nil {
			return nil, errors.Annotatef(err, "compiling step %q", stepDef.Name)
		}
		if step.Dir, err = Render(templateName+".dir", stepDef.Dir, vars); err != nil {
			return nil, errors.Annotatef(err, "compiling step %q", stepDef.Name)
		}
		if len(stepDef.Argv) > 0 {
			step.Argv = make([]string, len(stepDef.Argv))
			for j, arg := range stepDef.Argv {
				if step.Argv[j], err = Render(fmt.Sprintf("%s.argv[%d]", templateName, j), arg, vars); err != nil {
					return nil, errors.Annotatef(err, "compiling step %q", stepDef.Name)
				}
			}
		}
		if len(stepDef.Env) > 0 {
			step.Env = map[string]string{}
			for name, value := range stepDef.Env {
				if step.Env[name], err = Render(fmt.Sprintf("%s.env.%s", templateName, name), value, vars); err != nil {
					return nil, errors.Annotatef(err, "compiling step %q", stepDef.Name)
				}
			}
		}

		if err := step.Validate(); err != nil {
			return nil, errors.Annotatef(err, "compiling step %q", stepDef.Name)
		}

		var gates []Gate
		for _, probeConfig := range stepDef.WaitFor {
			probe, err := probeConfig.Probe()
			if err != nil {
				return nil, errors.Annotatef(err, "compiling step %q", stepDef.Name)
			}
			gates = append(gates, readiness.Gate(probe))
		}
		if stepDef.Wait != "" {
			d, err := time.ParseDuration(stepDef.Wait)
			if err != nil {
				return nil, errors.Annotatef(err, "compiling step %q: parsing wait", stepDef.Name)
			}
			gates = append(gates, SleepGate(d, logger))
		}

		seq.Add(step, gates...)
	}

	return seq, nil
}
