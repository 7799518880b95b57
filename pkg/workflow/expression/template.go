package expression

import "strings"

const (
	templateOpen  = "${{"
	templateClose = "}}"
)

// InterpolateValue walks a JSON value and substitutes ${{ expr }} tokens in
// every string it contains. Arrays and objects keep their shape; non-string
// leaves pass through unchanged.
func InterpolateValue(ctx *RunContext, value any) any {
	switch v := value.(type) {
	case string:
		return InterpolateString(ctx, v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = InterpolateValue(ctx, item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = InterpolateValue(ctx, item)
		}
		return out
	default:
		return value
	}
}

// InterpolateString substitutes each ${{ expr }} token in input with the
// formatted resolution of expr, or the empty string when the expression does
// not resolve. A ${{ with no matching }} preserves the remainder of the
// string verbatim and stops scanning. A string without tokens is returned
// unchanged.
func InterpolateString(ctx *RunContext, input string) string {
	if !strings.Contains(input, templateOpen) {
		return input
	}

	var out strings.Builder
	remaining := input
	for {
		start := strings.Index(remaining, templateOpen)
		if start < 0 {
			out.WriteString(remaining)
			break
		}
		out.WriteString(remaining[:start])
		after := remaining[start:]

		end := strings.Index(after, templateClose)
		if end < 0 {
			// Unmatched opener: keep the rest verbatim.
			out.WriteString(after)
			break
		}

		expr := strings.TrimSpace(after[len(templateOpen):end])
		if resolved, ok := ResolveString(ctx, expr); ok {
			out.WriteString(resolved)
		}
		remaining = after[end+len(templateClose):]
	}
	return out.String()
}
