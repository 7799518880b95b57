package expression

import (
	"encoding/json"
	"strings"
)

const includesMarker = ".includes("

// EvaluateCondition evaluates a boolean step-guard expression against the
// run context. The grammar is deliberately flat rather than a full
// precedence parser: the expression is split on top-level ||, then each part
// on top-level &&, then leading ! negations are applied by parity, and the
// remaining simple condition is tried as an .includes(...) membership test,
// a top-level == / != comparison, and finally bare truthiness.
//
// Unresolvable references never raise: they evaluate as null in comparisons
// and as false under truthiness. An empty expression is false.
func EvaluateCondition(ctx *RunContext, expr string) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return false
	}

	if parts := splitTopLevel(expr, "||"); parts != nil {
		for _, part := range parts {
			if EvaluateCondition(ctx, part) {
				return true
			}
		}
		return false
	}

	if parts := splitTopLevel(expr, "&&"); parts != nil {
		for _, part := range parts {
			if !EvaluateCondition(ctx, part) {
				return false
			}
		}
		return true
	}

	negations, rest := trimNegations(expr)
	result := evaluateSimple(ctx, rest)
	if negations%2 == 1 {
		return !result
	}
	return result
}

func evaluateSimple(ctx *RunContext, expr string) bool {
	if matched, result := evaluateIncludes(ctx, expr); matched {
		return result
	}
	if matched, result := evaluateComparison(ctx, expr); matched {
		return result
	}
	return evaluateTruthiness(ctx, expr)
}

// evaluateIncludes handles LIST.includes(ITEM). The left side must resolve
// to an array, or to a string that parses as a JSON array; anything else is
// an empty list. Membership compares the formatted text of the needle and
// each element, which intentionally blurs type distinctions (1 matches "1").
// The argument ends at the first ) after the marker; nested parentheses are
// not special-cased.
func evaluateIncludes(ctx *RunContext, expr string) (matched, result bool) {
	idx := strings.Index(expr, includesMarker)
	if idx < 0 {
		return false, false
	}

	left := strings.TrimSpace(expr[:idx])
	right := expr[idx+len(includesMarker):]
	if closing := strings.IndexByte(right, ')'); closing >= 0 {
		right = right[:closing]
	}
	right = strings.TrimSpace(right)

	needle := FormatValue(resolveValueOrLiteral(ctx, right))
	for _, element := range resolveList(ctx, left) {
		if FormatValue(element) == needle {
			return true, true
		}
	}
	return true, false
}

func resolveList(ctx *RunContext, expr string) []any {
	switch value := resolveValueOrLiteral(ctx, expr).(type) {
	case []any:
		return value
	case string:
		if strings.HasPrefix(strings.TrimSpace(value), "[") {
			var parsed any
			if err := json.Unmarshal([]byte(value), &parsed); err == nil {
				if array, ok := parsed.([]any); ok {
					return array
				}
			}
		}
		return nil
	default:
		return nil
	}
}

// evaluateComparison handles a top-level == or != comparison. Both sides go
// through the literal/path/raw-text fallback, defaulting to JSON null, and
// compare structurally.
func evaluateComparison(ctx *RunContext, expr string) (matched, result bool) {
	eq := indexTopLevel(expr, "==")
	ne := indexTopLevel(expr, "!=")

	pos, negate := eq, false
	if ne >= 0 && (eq < 0 || ne < eq) {
		pos, negate = ne, true
	}
	if pos < 0 {
		return false, false
	}

	left := resolveValueOrLiteral(ctx, expr[:pos])
	right := resolveValueOrLiteral(ctx, expr[pos+2:])
	equal := jsonEqual(left, right)
	if negate {
		return true, !equal
	}
	return true, equal
}

// evaluateTruthiness resolves the expression and applies the string rule:
// true when the formatted text equals "true" or "1" or is non-empty.
// Booleans count as themselves so that a resolved false is falsy, and
// null or unresolved expressions are false.
func evaluateTruthiness(ctx *RunContext, expr string) bool {
	switch value := resolveValueOrLiteral(ctx, expr).(type) {
	case nil:
		return false
	case bool:
		return value
	default:
		formatted := FormatValue(value)
		return formatted == "true" || formatted == "1" || formatted != ""
	}
}
