package design

import (
	"fmt"
)

// StepFailure records an extraction step that failed and was skipped.
type StepFailure struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

func (f StepFailure) Error() string {
	return f.Step + ": " + f.Message
}

// Collector accumulates step failures. The zero value is ready to use.
// A Collector is not safe for concurrent use.
type Collector struct {
	failures []StepFailure
}

// Fail records a failure for step directly.
func (c *Collector) Fail(step string, err error) {
	c.failures = append(c.failures, StepFailure{Step: step, Message: err.Error()})
}

// Merge appends failures produced elsewhere.
func (c *Collector) Merge(failures []StepFailure) {
	c.failures = append(c.failures, failures...)
}

// Failures returns the recorded failures in the order they occurred.
func (c *Collector) Failures() []StepFailure {
	if len(c.failures) == 0 {
		return nil
	}
	out := make([]StepFailure, len(c.failures))
	copy(out, c.failures)
	return out
}

// Collect runs fn as a named step. An error or panic is recorded and the
// zero value returned so the caller can continue with partial data.
func Collect[T any](c *Collector, step string, fn func() (T, error)) (result T) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			c.Fail(step, fmt.Errorf("panic: %v", r))
		}
	}()

	v, err := fn()
	if err != nil {
		c.Fail(step, err)
		var zero T
		return zero
	}
	return v
}
