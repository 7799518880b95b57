package expression

import "github.com/google/uuid"

// RunContext holds the data a single workflow run resolves expressions
// against. It is a plain data holder: no validation happens here, and the
// resolution functions in this package only ever read it. The owner of the
// run mutates Inputs and Steps as the user supplies values and steps finish;
// callers that share a context across goroutines own the synchronization.
type RunContext struct {
	// RunID identifies the run in logs and diagnostics. It has no effect
	// on resolution.
	RunID string

	// Env maps environment variable names to their text values.
	Env map[string]string

	// Inputs maps input names to JSON values, overwritten as the user
	// supplies values during input collection.
	Inputs map[string]any

	// Steps maps step IDs to their output JSON values, appended as steps
	// finish.
	Steps map[string]any
}

// NewRunContext returns an empty context with a fresh run ID.
func NewRunContext() *RunContext {
	return &RunContext{
		RunID:  uuid.NewString(),
		Env:    make(map[string]string),
		Inputs: make(map[string]any),
		Steps:  make(map[string]any),
	}
}

// SetEnv records an environment variable.
func (c *RunContext) SetEnv(name, value string) {
	if c.Env == nil {
		c.Env = make(map[string]string)
	}
	c.Env[name] = value
}

// SetInput records an input value, replacing any previous value.
func (c *RunContext) SetInput(name string, value any) {
	if c.Inputs == nil {
		c.Inputs = make(map[string]any)
	}
	c.Inputs[name] = value
}

// SetStepOutput records the output of a completed step.
func (c *RunContext) SetStepOutput(stepID string, value any) {
	if c.Steps == nil {
		c.Steps = make(map[string]any)
	}
	c.Steps[stepID] = value
}
