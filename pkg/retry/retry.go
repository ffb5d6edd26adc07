// Package retry runs an action repeatedly with a fixed delay until it
// succeeds or the attempt budget is spent.
package retry

import (
	"fmt"
	"time"
)

// Action defines the prototype of the retried function.
type Action func(attempt uint) error

// Model holds the attempt count and the wait duration between attempts.
type Model struct {
	attempts uint
	waitTime time.Duration
}

// Times sets the attempt budget on a fresh model.
func Times(attempts uint) *Model {
	model := Model{}
	return model.Times(attempts)
}

// Times sets the attempt budget.
func (model *Model) Times(attempts uint) *Model {
	model.attempts = attempts
	return model
}

// Wait sets the delay applied between attempts on a fresh model.
func Wait(waitTime time.Duration) *Model {
	model := Model{}
	return model.Wait(waitTime)
}

// Wait sets the delay applied between attempts.
func (model *Model) Wait(waitTime time.Duration) *Model {
	model.waitTime = waitTime
	return model
}

// Budget is the worst-case total time Try can spend sleeping.
func (model Model) Budget() time.Duration {
	if model.attempts == 0 {
		return 0
	}
	return time.Duration(model.attempts-1) * model.waitTime
}

// Try runs the action until it returns nil or the attempts run out. The
// last error is returned; the delay is not applied after the final attempt.
func (model Model) Try(action Action) error {
	if action == nil {
		return fmt.Errorf("no action specified")
	}

	var err error
	for attempt := uint(0); (attempt == 0 || err != nil) && attempt < model.attempts; attempt++ {
		err = action(attempt)
		if err != nil && model.waitTime > 0 && attempt+1 < model.attempts {
			time.Sleep(model.waitTime)
		}
	}

	return err
}
