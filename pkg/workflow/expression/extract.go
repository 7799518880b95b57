package expression

import (
	"sort"
	"strings"
)

var referencePrefixes = []string{envPrefix, inputsPrefix, stepsPrefix}

// FindUnresolvedReferences scans raw expression text for env.*, inputs.*,
// and steps.* references and returns the ones that do not resolve against
// the context, sorted and deduplicated. Quoted regions are skipped, and a
// token followed by a call opener drops its trailing .includes so that
// inputs.tags.includes(...) reports inputs.tags.
//
// This is pre-flight tooling only: evaluation itself never treats an
// unresolved reference as an error.
func FindUnresolvedReferences(ctx *RunContext, expr string) []string {
	var unresolved []string
	seen := make(map[string]struct{})

	inSingle, inDouble := false, false
	for i := 0; i < len(expr); {
		switch c := expr[i]; {
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			i++
			continue
		case c == '"' && !inSingle:
			inDouble = !inDouble
			i++
			continue
		}
		if inSingle || inDouble {
			i++
			continue
		}

		prefix := matchReferencePrefix(expr[i:])
		if prefix == "" {
			i++
			continue
		}

		end := i + len(prefix)
		for end < len(expr) && isReferenceChar(expr[end]) {
			end++
		}
		token := expr[i:end]
		if end < len(expr) && expr[end] == '(' {
			token = strings.TrimSuffix(token, includesMarker[:len(includesMarker)-1])
		}

		if _, ok := ResolveValue(ctx, token); !ok {
			if _, dup := seen[token]; !dup {
				seen[token] = struct{}{}
				unresolved = append(unresolved, token)
			}
		}
		i = end
	}

	sort.Strings(unresolved)
	return unresolved
}

func matchReferencePrefix(s string) string {
	for _, prefix := range referencePrefixes {
		if strings.HasPrefix(s, prefix) {
			return prefix
		}
	}
	return ""
}

func isReferenceChar(c byte) bool {
	return c == '_' || c == '-' || c == '.' || c == '[' || c == ']' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
