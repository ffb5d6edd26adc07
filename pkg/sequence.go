package mallctl

import (
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
)

// Gate blocks between steps until some external condition holds, or fails
// with a descriptive error. Gates run after the step they are attached to.
type Gate func() error

type sequenced struct {
	step  Step
	gates []Gate
}

// Sequence is an ordered, fail-fast list of steps. Steps execute strictly
// in declaration order; the first failure halts the whole sequence with no
// rollback of already-completed steps. Steps marked AllowFailure are
// reported but do not halt.
type Sequence struct {
	Name string

	items []sequenced
}

func NewSequence(name string) *Sequence {
	return &Sequence{Name: name}
}

func (q *Sequence) Add(step Step, gates ...Gate) *Sequence {
	q.items = append(q.items, sequenced{step: step, gates: gates})
	return q
}

func (q *Sequence) Len() int {
	return len(q.items)
}

// Run executes every step through the runner. It returns the results of
// the steps that ran, paired with a nil error only when all of them
// succeeded.
func (q *Sequence) Run(r *Runner) ([]*StepResult, error) {
	ctx := r.Log.WithFields(log.Fields{"sequence": q.Name})
	ctx.Debugf("sequence %s started with %d steps", q.Name, len(q.items))

	results := make([]*StepResult, 0, len(q.items))
	for _, item := range q.items {
		result := r.Run(item.step)
		results = append(results, result)

		if result.Failed() {
			if !item.step.AllowFailure {
				return results, errors.Errorf("step %q failed with exit status %d", item.step.Description, result.ExitCode)
			}
			ctx.Warnf("continuing past failed step: %s", item.step.Description)
		}

		for _, gate := range item.gates {
			if err := gate(); err != nil {
				return results, errors.Annotatef(err, "gate after step %q failed", item.step.Description)
			}
		}
	}

	ctx.Infof("all %d steps completed", len(q.items))
	return results, nil
}
