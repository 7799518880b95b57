package expression

import "strings"

// indexTopLevel returns the byte index of the first occurrence of op in expr
// that sits outside single- and double-quoted regions and at parenthesis
// depth zero, or -1. This is the one scanning primitive shared by the
// condition evaluator and the condition validator, so operator text inside a
// string literal or an .includes(...) argument list is never matched.
func indexTopLevel(expr, op string) int {
	inSingle, inDouble := false, false
	depth := 0
	for i := 0; i < len(expr); i++ {
		switch c := expr[i]; {
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			continue
		case c == '"' && !inSingle:
			inDouble = !inDouble
			continue
		case c == '(' && !inSingle && !inDouble:
			depth++
			continue
		case c == ')' && !inSingle && !inDouble:
			if depth > 0 {
				depth--
			}
			continue
		}
		if !inSingle && !inDouble && depth == 0 && strings.HasPrefix(expr[i:], op) {
			return i
		}
	}
	return -1
}

// splitTopLevel splits expr on every top-level occurrence of op, trimming
// the parts and dropping empties. It returns nil unless the split produced
// more than one part, so callers can fall through to the next operator.
func splitTopLevel(expr, op string) []string {
	var parts []string
	rest := expr
	for {
		idx := indexTopLevel(rest, op)
		if idx < 0 {
			if part := strings.TrimSpace(rest); part != "" {
				parts = append(parts, part)
			}
			break
		}
		if part := strings.TrimSpace(rest[:idx]); part != "" {
			parts = append(parts, part)
		}
		rest = rest[idx+len(op):]
	}
	if len(parts) < 2 {
		return nil
	}
	return parts
}

// trimNegations strips leading ! characters one at a time and returns how
// many were consumed along with the remainder. A ! immediately followed by
// = is left alone so != comparisons survive.
func trimNegations(expr string) (int, string) {
	count := 0
	rest := strings.TrimSpace(expr)
	for strings.HasPrefix(rest, "!") && !strings.HasPrefix(rest, "!=") {
		count++
		rest = strings.TrimSpace(rest[1:])
	}
	return count, rest
}
