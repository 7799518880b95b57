package expression

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	envPrefix    = "env."
	inputsPrefix = "inputs."
	stepsPrefix  = "steps."
)

// ResolveValue resolves a template expression (env.*, inputs.*, steps.*)
// to a JSON value. Expressions outside the three known roots are absent.
//
// For steps, an "output" segment immediately after the step ID is treated
// as transparent: steps.create.output.name and steps.create.name address
// the same field, and steps.create.output alone yields the whole step
// value.
func ResolveValue(ctx *RunContext, expr string) (any, bool) {
	if ctx == nil {
		return nil, false
	}
	if name, ok := strings.CutPrefix(expr, envPrefix); ok {
		value, present := ctx.Env[name]
		if !present {
			return nil, false
		}
		return value, true
	}
	if rest, ok := strings.CutPrefix(expr, inputsPrefix); ok {
		return resolveFromTable(ctx.Inputs, rest, false)
	}
	if rest, ok := strings.CutPrefix(expr, stepsPrefix); ok {
		return resolveFromTable(ctx.Steps, rest, true)
	}
	return nil, false
}

// ResolveString resolves an expression and formats the result for
// interpolation into a string.
func ResolveString(ctx *RunContext, expr string) (string, bool) {
	value, ok := ResolveValue(ctx, expr)
	if !ok {
		return "", false
	}
	return FormatValue(value), true
}

// resolveFromTable looks up the leading name in a context table and applies
// the remaining path through SelectPath. Bracket indices attached directly
// to the name (inputs.items[0]) are part of the remaining path.
func resolveFromTable(table map[string]any, rest string, elideOutput bool) (any, bool) {
	name, path := splitHead(rest)
	base, present := table[name]
	if !present {
		return nil, false
	}
	if elideOutput {
		path = trimOutputSegment(path)
	}
	return SelectPath(base, path)
}

// splitHead separates the leading table key from the rest of the path.
// "items[0].id" splits into ("items", "[0].id"); "create.output" into
// ("create", "output").
func splitHead(rest string) (string, string) {
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '.':
			return rest[:i], rest[i+1:]
		case '[':
			return rest[:i], rest[i:]
		}
	}
	return rest, ""
}

// trimOutputSegment drops a leading bare "output" segment from a step path.
func trimOutputSegment(path string) string {
	if path == "output" {
		return ""
	}
	if rest, ok := strings.CutPrefix(path, "output."); ok {
		return rest
	}
	return path
}

// resolveValueOrLiteral resolves an operand with the three-tier fallback
// used by conditions: JSON literal first, then context path, then raw text.
// Text that starts with a known root but fails to resolve yields JSON null
// rather than the raw text, so comparisons see "recognized but unresolved"
// instead of a string that happens to spell a path.
func resolveValueOrLiteral(ctx *RunContext, expr string) any {
	trimmed := strings.TrimSpace(expr)
	if looksLikeLiteral(trimmed) {
		var value any
		if err := json.Unmarshal([]byte(trimmed), &value); err == nil {
			return value
		}
	}
	if value, ok := ResolveValue(ctx, trimmed); ok {
		return value
	}
	if hasContextPrefix(trimmed) {
		return nil
	}
	return trimmed
}

// looksLikeLiteral reports whether text plausibly starts a JSON literal.
// The full json parse decides; this only gates the attempt.
func looksLikeLiteral(s string) bool {
	if s == "null" || s == "true" || s == "false" {
		return true
	}
	if s == "" {
		return false
	}
	switch s[0] {
	case '-', '"', '[', '{':
		return true
	}
	return s[0] >= '0' && s[0] <= '9'
}

func hasContextPrefix(s string) bool {
	return strings.HasPrefix(s, envPrefix) ||
		strings.HasPrefix(s, inputsPrefix) ||
		strings.HasPrefix(s, stepsPrefix)
}

// FormatValue renders a JSON value as the text form used in interpolated
// strings and .includes() membership tests: strings as-is, numbers in
// canonical form, booleans as "true"/"false", null as the empty string,
// arrays and objects as compact JSON.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// jsonEqual compares two JSON values structurally. Values of different JSON
// types are never equal; numbers compare by numeric value regardless of the
// Go type they decoded into.
func jsonEqual(a, b any) bool {
	if an, ok := numericValue(a); ok {
		bn, bok := numericValue(b)
		return bok && an == bn
	}
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !jsonEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for key, value := range av {
			other, present := bv[key]
			if !present || !jsonEqual(value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
