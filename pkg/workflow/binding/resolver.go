package binding

import (
	"github.com/arenner/weft/pkg/workflow/expression"
)

const (
	msgMultipleSources = "provider argument binding must reference either a step or an input, not both"
	msgMissingSource   = "provider argument binding is missing a source (from_step or from_input)"
)

// Resolver evaluates provider argument bindings against a run context.
type Resolver struct {
	ctx *expression.RunContext
}

// NewResolver returns a resolver reading from ctx.
func NewResolver(ctx *expression.RunContext) *Resolver {
	return &Resolver{ctx: ctx}
}

// ResolveArguments resolves every argument in the map and returns the
// outcomes keyed by argument name.
func (r *Resolver) ResolveArguments(arguments map[string]ArgumentValue) map[string]Outcome {
	outcomes := make(map[string]Outcome, len(arguments))
	for name, value := range arguments {
		outcomes[name] = r.ResolveArgument(name, value)
	}
	return outcomes
}

// ResolveArgument resolves a single argument. Literals interpolate
// immediately and always resolve; bindings go through source lookup, path
// selection, and the missing policy.
func (r *Resolver) ResolveArgument(name string, value ArgumentValue) Outcome {
	if value.Literal != nil {
		return Resolved{Value: expression.InterpolateString(r.ctx, *value.Literal)}
	}
	if value.Binding != nil {
		return r.resolveBinding(name, *value.Binding)
	}
	return Failure{Argument: name, Message: msgMissingSource}
}

func (r *Resolver) resolveBinding(name string, b Binding) Outcome {
	var source Source
	switch {
	case b.FromStep != "" && b.FromInput != "":
		src := Source{Kind: SourceMultiple, StepID: b.FromStep, InputName: b.FromInput}
		return Failure{Argument: name, Source: &src, Message: msgMultipleSources}
	case b.FromStep != "":
		source = StepSource(b.FromStep)
	case b.FromInput != "":
		source = InputSource(b.FromInput)
	default:
		return Failure{Argument: name, Message: msgMissingSource}
	}

	base, present := r.lookup(source)
	if !present {
		return r.missing(name, source, b, ReasonSourceNotFound)
	}

	selected, ok := expression.SelectPath(base, b.Path)
	if !ok || selected == nil {
		// A null result counts as unavailable: bindings deliver concrete
		// values or defer to policy.
		return r.missing(name, source, b, ReasonPathUnavailable)
	}
	return Resolved{Value: selected}
}

func (r *Resolver) lookup(source Source) (any, bool) {
	if r.ctx == nil {
		return nil, false
	}
	switch source.Kind {
	case SourceStep:
		value, ok := r.ctx.Steps[source.StepID]
		return value, ok
	case SourceInput:
		value, ok := r.ctx.Inputs[source.InputName]
		return value, ok
	default:
		return nil, false
	}
}

func (r *Resolver) missing(name string, source Source, b Binding, message string) Outcome {
	policy := b.OnMissing
	if policy == "" {
		if b.Required {
			policy = MissingFail
		} else {
			policy = MissingPrompt
		}
	}

	reason := MissingReason{Message: message, Path: b.Path}
	switch policy {
	case MissingSkip:
		return Skip{Argument: name, Source: source, Reason: reason}
	case MissingFail:
		return Failure{Argument: name, Source: &source, Message: message}
	default:
		return Prompt{Argument: name, Source: source, Required: b.Required, Reason: reason}
	}
}
