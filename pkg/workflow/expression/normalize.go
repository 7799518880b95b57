package expression

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	pkgerrors "github.com/arenner/weft/pkg/errors"
)

// NormalizeCondition trims a condition string and strips a single outer
// ${{ ... }} wrapper when present, so manifests can write either
// `if: inputs.flag` or `if: ${{ inputs.flag }}` interchangeably.
func NormalizeCondition(raw string) string {
	trimmed := strings.TrimSpace(raw)
	inner, ok := strings.CutPrefix(trimmed, templateOpen)
	if !ok {
		return trimmed
	}
	inner = strings.TrimSpace(inner)
	inner = strings.TrimSuffix(inner, templateClose)
	return strings.TrimSpace(inner)
}

// ValidateCondition checks a normalized condition against the supported
// syntax and returns a *pkgerrors.ValidationError describing the first
// problem found. Validation is purely syntactic: it accepts expressions
// whose references may later fail to resolve.
func ValidateCondition(expr string) error {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return conditionError("expression cannot be empty")
	}

	if indexTopLevel(trimmed, "===") >= 0 || indexTopLevel(trimmed, "!==") >= 0 {
		return conditionError("strict equality operators are unsupported; use '==' or '!='")
	}
	if indexTopLevel(trimmed, ">=") >= 0 || indexTopLevel(trimmed, "<=") >= 0 ||
		indexTopLevel(trimmed, ">") >= 0 || indexTopLevel(trimmed, "<") >= 0 {
		return conditionError("unsupported comparison operator; only '==', '!=', '&&', '||', '!' and '.includes(...)' are supported")
	}

	return validateNode(trimmed)
}

func validateNode(expr string) error {
	if parts := splitTopLevel(expr, "||"); parts != nil {
		for _, part := range parts {
			if err := validateNode(part); err != nil {
				return err
			}
		}
		return nil
	}
	if parts := splitTopLevel(expr, "&&"); parts != nil {
		for _, part := range parts {
			if err := validateNode(part); err != nil {
				return err
			}
		}
		return nil
	}

	_, inner := trimNegations(expr)
	if inner == "" {
		return conditionError("expression cannot end with negation operator")
	}

	if idx := indexTopLevel(inner, includesMarker); idx >= 0 {
		left := strings.TrimSpace(inner[:idx])
		right := strings.TrimSpace(inner[idx+len(includesMarker):])
		right = strings.TrimSpace(strings.TrimSuffix(right, ")"))
		if right == "" {
			return conditionError("includes expression is missing an argument")
		}
		if err := validateOperand(left); err != nil {
			return err
		}
		return validateOperand(right)
	}

	for _, op := range []string{"!=", "=="} {
		idx := indexTopLevel(inner, op)
		if idx < 0 {
			continue
		}
		left := strings.TrimSpace(inner[:idx])
		right := strings.TrimSpace(inner[idx+len(op):])
		if left == "" || right == "" {
			return conditionError("comparison expression must include both left and right operands")
		}
		if err := validateOperand(left); err != nil {
			return err
		}
		return validateOperand(right)
	}

	return validateOperand(inner)
}

func validateOperand(expr string) error {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return conditionError("operand cannot be empty")
	}
	if trimmed == "output" || strings.HasPrefix(trimmed, "output.") {
		return conditionError("unsupported root 'output'; use 'steps.<step_id>' (optionally '.output')")
	}

	if looksLikeLiteral(trimmed) && json.Valid([]byte(trimmed)) {
		return nil
	}

	if !isSupportedPath(trimmed) {
		return conditionError(fmt.Sprintf("unsupported expression '%s'; supported roots are env.*, inputs.*, and steps.*", trimmed))
	}
	return nil
}

func isSupportedPath(expr string) bool {
	if strings.ContainsFunc(expr, unicode.IsSpace) {
		return false
	}

	if name, ok := strings.CutPrefix(expr, envPrefix); ok {
		if name == "" {
			return false
		}
		for i := 0; i < len(name); i++ {
			if !isIdentifierChar(name[i]) {
				return false
			}
		}
		return true
	}

	if rest, ok := strings.CutPrefix(expr, inputsPrefix); ok {
		return validSegments(rest)
	}
	if rest, ok := strings.CutPrefix(expr, stepsPrefix); ok {
		return rest != "" && validSegments(rest)
	}
	return false
}

func validSegments(path string) bool {
	for _, segment := range strings.Split(path, ".") {
		if !validSegment(segment) {
			return false
		}
	}
	return true
}

// validSegment accepts an identifier optionally followed by one or more
// [N] index suffixes with at least one digit each.
func validSegment(segment string) bool {
	i := 0
	for i < len(segment) && segment[i] != '[' {
		if !isIdentifierChar(segment[i]) {
			return false
		}
		i++
	}
	if i == 0 {
		return false
	}

	for i < len(segment) {
		if segment[i] != '[' {
			return false
		}
		i++
		digits := 0
		for i < len(segment) && segment[i] != ']' {
			if segment[i] < '0' || segment[i] > '9' {
				return false
			}
			digits++
			i++
		}
		if i == len(segment) || digits == 0 {
			return false
		}
		i++
	}
	return true
}

func isIdentifierChar(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func conditionError(message string) error {
	return &pkgerrors.ValidationError{
		Field:   "condition",
		Message: message,
	}
}
