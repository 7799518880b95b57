// Package binding resolves workflow provider argument bindings against a run
// context. A binding references a prior step output or a collected input,
// optionally narrowed by a path; resolution never raises, producing instead a
// tagged Outcome that callers match exhaustively to decide whether to use the
// value, prompt the user, skip the argument, or halt the run.
package binding

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MissingPolicy controls what happens when a binding's value is absent.
type MissingPolicy string

const (
	// MissingPrompt asks the user to supply the value.
	MissingPrompt MissingPolicy = "prompt"
	// MissingSkip proceeds without the argument.
	MissingSkip MissingPolicy = "skip"
	// MissingFail halts the run.
	MissingFail MissingPolicy = "fail"
)

// UnmarshalYAML validates the policy against the three known values.
func (p *MissingPolicy) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	switch MissingPolicy(raw) {
	case MissingPrompt, MissingSkip, MissingFail:
		*p = MissingPolicy(raw)
		return nil
	default:
		return fmt.Errorf("unknown on_missing policy %q: must be prompt, skip, or fail", raw)
	}
}

// Binding references a value produced earlier in the run. Exactly one of
// FromStep and FromInput must be set; the resolver reports both-set and
// neither-set as distinct failures rather than defaulting.
type Binding struct {
	// FromStep names the step whose output supplies the value.
	FromStep string `yaml:"from_step,omitempty" json:"from_step,omitempty"`

	// FromInput names the collected input that supplies the value.
	FromInput string `yaml:"from_input,omitempty" json:"from_input,omitempty"`

	// Path narrows the source value, using the same dotted/indexed syntax
	// as template expressions. Empty selects the whole source value.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// Required marks the argument as mandatory. It changes the default
	// missing policy from prompt to fail.
	Required bool `yaml:"required,omitempty" json:"required,omitempty"`

	// OnMissing overrides the default missing policy.
	OnMissing MissingPolicy `yaml:"on_missing,omitempty" json:"on_missing,omitempty"`
}

// ArgumentValue is a provider argument as authored in a manifest: either a
// literal template string, interpolated immediately, or a structured binding.
type ArgumentValue struct {
	Literal *string
	Binding *Binding
}

// UnmarshalYAML accepts a scalar as a literal template and a mapping as a
// structured binding.
func (v *ArgumentValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var literal string
		if err := node.Decode(&literal); err != nil {
			return err
		}
		v.Literal = &literal
		v.Binding = nil
		return nil
	case yaml.MappingNode:
		var binding Binding
		if err := node.Decode(&binding); err != nil {
			return err
		}
		v.Literal = nil
		v.Binding = &binding
		return nil
	default:
		return fmt.Errorf("provider argument must be a string or a binding mapping, got %s", nodeKind(node))
	}
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return fmt.Sprintf("kind %d", node.Kind)
	}
}

// LiteralValue returns an ArgumentValue wrapping a literal template.
func LiteralValue(template string) ArgumentValue {
	return ArgumentValue{Literal: &template}
}

// BindingValue returns an ArgumentValue wrapping a structured binding.
func BindingValue(b Binding) ArgumentValue {
	return ArgumentValue{Binding: &b}
}
