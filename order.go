package reshape

import (
	"bytes"
	"sort"

	json "github.com/goccy/go-json"
)

// orderKeys sorts keys lexicographically and moves "id" to the front, the
// deterministic diff-friendly order the engine processes fields in.
func orderKeys(keys []string) []string {
	sort.Strings(keys)
	for i, k := range keys {
		if k == "id" {
			copy(keys[1:i+1], keys[:i])
			keys[0] = "id"
			break
		}
	}
	return keys
}

// OrderedKeys returns m's keys in output order: "id" first, the rest in
// lexicographic order. Callers rendering parse results deterministically
// (CLIs, golden tests) should enumerate with it.
func OrderedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return orderKeys(keys)
}

// MarshalOrdered encodes v as JSON with map keys in OrderedKeys order. It is
// a rendering convenience, not part of the transformation engine.
func MarshalOrdered(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeOrdered(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeOrdered(buf *bytes.Buffer, v any) error {
	switch x := v.(type) {
	case map[string]any:
		buf.WriteByte('{')
		for i, k := range OrderedKeys(x) {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := encodeOrdered(buf, x[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, it := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeOrdered(buf, it); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
}
