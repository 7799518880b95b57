package binding

// SourceKind distinguishes where a binding looked for its value.
type SourceKind string

const (
	// SourceStep means the binding referenced a prior step output.
	SourceStep SourceKind = "step"
	// SourceInput means the binding referenced a collected input.
	SourceInput SourceKind = "input"
	// SourceMultiple means the binding referenced both a step and an
	// input. Invalid, but captured for diagnostics.
	SourceMultiple SourceKind = "multiple"
)

// Source identifies the origin a binding attempted to read from.
type Source struct {
	Kind      SourceKind
	StepID    string
	InputName string
}

// StepSource returns a Source for a step output reference.
func StepSource(stepID string) Source {
	return Source{Kind: SourceStep, StepID: stepID}
}

// InputSource returns a Source for an input reference.
func InputSource(inputName string) Source {
	return Source{Kind: SourceInput, InputName: inputName}
}

// Fixed diagnostic messages carried in MissingReason. Downstream callers
// match on these strings, so they never vary.
const (
	ReasonSourceNotFound  = "binding source was not present in the run context"
	ReasonPathUnavailable = "binding path did not resolve to a value"
)

// MissingReason explains why a binding could not be satisfied automatically.
type MissingReason struct {
	// Message is one of the fixed diagnostic strings above.
	Message string
	// Path is the binding path that failed to resolve, when one was set.
	Path string
}

// Outcome is the result of resolving one provider argument. It is a sealed
// sum type: the only implementations are Resolved, Prompt, Skip, and Failure,
// and call sites are expected to switch over all four.
type Outcome interface {
	outcome()
}

// Resolved carries a concrete, non-null value for the argument.
type Resolved struct {
	Value any
}

// Prompt means the value is missing and policy says ask the user.
type Prompt struct {
	// Argument is the name of the argument being resolved.
	Argument string
	// Source is the origin the resolver attempted to use.
	Source Source
	// Required reports whether the argument was marked required.
	Required bool
	// Reason explains why the binding could not be satisfied.
	Reason MissingReason
}

// Skip means the value is missing and policy says proceed without it.
type Skip struct {
	Argument string
	Source   Source
	Reason   MissingReason
}

// Failure means the binding is malformed or policy says halt the run.
type Failure struct {
	Argument string
	// Source is nil when the binding declared no usable source.
	Source  *Source
	Message string
}

func (Resolved) outcome() {}
func (Prompt) outcome()   {}
func (Skip) outcome()     {}
func (Failure) outcome()  {}
