// internal/filter/resolve.go
package filter

import (
	"strings"

	"github.com/condense-db/condense/internal/types"
)

/*
 * Dotted-path resolution over the data bag.
 *
 * Resolves references ("user.profile.status") against nested map structures.
 * Missing keys, null intermediates, and non-map intermediates all resolve to
 * not-found - never an error. Absence drives the compiler's omission
 * semantics, so "not found" is an ordinary outcome here, not a failure.
 *
 * Single-segment paths take a direct-lookup fast path without a split; the
 * overwhelmingly common case is a flat bag key.
 */

// Resolve traverses the data bag following a dotted path. The second return
// is false when any segment is absent or an intermediate value is null or
// not an object. A present-but-null leaf also reports false: a reference
// resolving to null and a missing reference are indistinguishable on
// purpose (both omit the owning condition).
func Resolve(data types.DataBag, path string) (any, bool) {
	if data == nil || path == "" {
		return nil, false
	}

	// Fast path: flat key, no split
	if !strings.Contains(path, ".") {
		v, ok := data[path]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	}

	var current any = map[string]any(data)
	for _, seg := range strings.Split(path, ".") {
		obj, ok := asObject(current)
		if !ok {
			return nil, false
		}
		current, ok = obj[seg]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

// asObject normalizes the map shapes a data bag can carry. JSON unmarshaling
// produces map[string]any; callers constructing bags by hand may nest
// types.DataBag or types.Document values.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case types.DataBag:
		return m, true
	case types.Document:
		return m, true
	default:
		return nil, false
	}
}
