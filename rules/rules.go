// Package rules provides generic callback factories for reshape field rules:
// pure functions of shape (fieldPath) -> func(input, options) that plug into
// Apply and If hooks. They contain no mapping logic of their own.
package rules

import (
	"reflect"
	"time"

	reshape "github.com/mlens/reshape"
	"github.com/mlens/reshape/internal/path"
)

// At returns a callback that reads the dotted path from the input record.
// A missing path yields nil.
func At(p string) reshape.Func {
	return func(input any, _ reshape.Options) (any, error) {
		v, _ := path.Get(input, p)
		return v, nil
	}
}

// FromOption returns a callback that reads key from the Parse options instead
// of the input record.
func FromOption(key string) reshape.Func {
	return func(_ any, opt reshape.Options) (any, error) {
		return opt[key], nil
	}
}

// Populated returns a predicate that is true when the path resolves to a
// value with content: non-nil, non-empty string/slice/map, non-false.
func Populated(p string) reshape.Pred {
	return func(input any, _ reshape.Options) bool {
		v, ok := path.Get(input, p)
		if !ok || v == nil {
			return false
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
			return rv.Len() > 0
		case reflect.Bool:
			return rv.Bool()
		}
		return true
	}
}

// Equals returns a predicate comparing the value at path against want using
// reflect.DeepEqual.
func Equals(p string, want any) reshape.Pred {
	return func(input any, _ reshape.Options) bool {
		v, _ := path.Get(input, p)
		return reflect.DeepEqual(v, want)
	}
}

// FormatTime returns a callback that reads a time at path and renders it with
// the given layout. RFC3339 strings are accepted; anything else passes
// through unchanged.
func FormatTime(p, layout string) reshape.Func {
	return func(input any, _ reshape.Options) (any, error) {
		v, ok := path.Get(input, p)
		if !ok {
			return nil, nil
		}
		switch x := v.(type) {
		case time.Time:
			return x.Format(layout), nil
		case string:
			if t, err := time.Parse(time.RFC3339, x); err == nil {
				return t.Format(layout), nil
			}
		}
		return v, nil
	}
}
