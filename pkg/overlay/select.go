package overlay

import (
	"fmt"
	"sort"
)

// NoOptionsError reports an empty option mapping, which leaves nothing
// to select or fall back to.
type NoOptionsError struct {
	Kind string
}

func (e *NoOptionsError) Error() string {
	return fmt.Sprintf("no %s options configured", e.Kind)
}

// Select is the deterministic option-selection policy: return the value
// at the requested key, or fall back to the first option in natural key
// order when the key is absent. fellBack reports whether the fallback
// fired, so callers can surface the actual choice. The policy is a pure
// function; the pipeline never hardcodes a preferred option.
func Select[T any](options map[string]T, requestedKey, kind string) (string, T, bool, error) {
	var zero T
	if len(options) == 0 {
		return "", zero, false, &NoOptionsError{Kind: kind}
	}

	if v, ok := options[requestedKey]; ok {
		return requestedKey, v, false, nil
	}

	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	first := keys[0]
	return first, options[first], true, nil
}
