// Package path implements dotted-path reads and writes over map/slice trees.
// A numeric segment addresses a slice index, any other segment a map key;
// Set creates missing intermediate containers accordingly.
package path

import (
	"strconv"
	"strings"
)

// Split breaks a dotted path into segments. The empty path has no segments.
func Split(p string) []string {
	if p == "" {
		return nil
	}
	return strings.Split(p, ".")
}

// Get resolves p against root. The second result reports whether every
// segment resolved; a nil stored value still counts as found.
func Get(root any, p string) (any, bool) {
	cur := root
	for _, seg := range Split(p) {
		switch c := cur.(type) {
		case map[string]any:
			v, ok := c[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, ok := index(seg)
			if !ok || i >= len(c) {
				return nil, false
			}
			cur = c[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Set assigns v at p under root, creating intermediate containers as needed:
// a numeric segment materializes a slice (grown with nils up to the index),
// any other segment a map. Existing containers of the wrong shape are
// replaced.
func Set(root map[string]any, p string, v any) {
	segs := Split(p)
	if len(segs) == 0 {
		return
	}
	if len(segs) == 1 {
		root[segs[0]] = v
		return
	}
	root[segs[0]] = set(root[segs[0]], segs[1:], v)
}

// set places v under parent at segs and returns the (possibly newly created)
// container holding it.
func set(parent any, segs []string, v any) any {
	seg := segs[0]
	if i, ok := index(seg); ok {
		arr, _ := parent.([]any)
		for len(arr) <= i {
			arr = append(arr, nil)
		}
		if len(segs) == 1 {
			arr[i] = v
		} else {
			arr[i] = set(arr[i], segs[1:], v)
		}
		return arr
	}
	m, _ := parent.(map[string]any)
	if m == nil {
		m = map[string]any{}
	}
	if len(segs) == 1 {
		m[seg] = v
	} else {
		m[seg] = set(m[seg], segs[1:], v)
	}
	return m
}

func index(seg string) (int, bool) {
	if seg == "" {
		return 0, false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false
	}
	return i, true
}
