package expression

import (
	"strconv"
	"strings"
)

// SelectPath navigates a JSON value by a minimal dot path with optional
// numeric indices. Segments look like "key", "key[0][1]", or a bare numeric
// index when the current value is an array. An empty or whitespace-only path
// selects root unchanged. Absence is always reported as ok=false: missing
// keys, out-of-range indices, and lookups against the wrong value type never
// panic and never partially succeed.
//
// This is the single navigation primitive shared by the expression resolver
// and the binding resolver.
func SelectPath(root any, path string) (any, bool) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return root, true
	}

	current := root
	for _, segment := range strings.Split(trimmed, ".") {
		if segment == "" {
			continue
		}
		key, indices := splitSegment(segment)
		if key != "" {
			next, ok := stepInto(current, key)
			if !ok {
				return nil, false
			}
			current = next
		}
		for _, index := range indices {
			array, ok := current.([]any)
			if !ok || index >= len(array) {
				return nil, false
			}
			current = array[index]
		}
	}
	return current, true
}

// stepInto applies a key segment to the current value: object key lookup for
// maps, numeric indexing for arrays, failure for anything else.
func stepInto(current any, key string) (any, bool) {
	switch container := current.(type) {
	case map[string]any:
		value, ok := container[key]
		return value, ok
	case []any:
		index, err := strconv.Atoi(key)
		if err != nil || index < 0 || index >= len(container) {
			return nil, false
		}
		return container[index], true
	default:
		return nil, false
	}
}

// splitSegment separates a segment's leading key text from its trailing
// [N] index suffixes. Malformed suffixes (unterminated or non-numeric
// brackets) terminate suffix parsing and are ignored.
func splitSegment(segment string) (string, []int) {
	keyEnd := strings.IndexByte(segment, '[')
	if keyEnd < 0 {
		return segment, nil
	}

	key := segment[:keyEnd]
	var indices []int
	for i := keyEnd; i < len(segment) && segment[i] == '['; {
		closing := strings.IndexByte(segment[i:], ']')
		if closing < 0 {
			break
		}
		index, err := strconv.Atoi(segment[i+1 : i+closing])
		if err != nil || index < 0 {
			break
		}
		indices = append(indices, index)
		i += closing + 1
	}
	return key, indices
}
