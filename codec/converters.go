// Package codec provides optional named converters for a reshape Registry,
// beyond the engine's built-ins. Like the built-ins, they pass falsy input
// through unchanged and prefer sentinel values over errors for bad data.
package codec

import (
	"time"

	"github.com/google/uuid"

	reshape "github.com/mlens/reshape"
)

// Register defines all converters of this package on r under their canonical
// names: "rfc3339" and "uuid".
func Register(r *reshape.Registry) {
	r.Define("rfc3339", RFC3339())
	r.Define("uuid", UUID())
}

// RFC3339 returns a converter that coerces RFC3339 strings into time.Time.
// An already-time value passes through; an unparsable string yields the zero
// time sentinel.
func RFC3339() reshape.Converter {
	return func(v any, _ reshape.Options) (any, error) {
		if t, ok := v.(time.Time); ok {
			return t, nil
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return v, nil
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
				return t2, nil
			}
			return time.Time{}, nil
		}
		return t, nil
	}
}

// UUID returns a converter that coerces strings into uuid.UUID. An
// already-UUID value passes through; an unparsable string yields uuid.Nil.
func UUID() reshape.Converter {
	return func(v any, _ reshape.Options) (any, error) {
		if id, ok := v.(uuid.UUID); ok {
			return id, nil
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return v, nil
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, nil
		}
		return id, nil
	}
}

// Identity returns a converter that performs no transformation. Useful as a
// placeholder when retracting a converter would break existing definitions.
func Identity() reshape.Converter {
	return func(v any, _ reshape.Options) (any, error) { return v, nil }
}
