package reshape

import "strings"

// Options carries caller-supplied context through a Parse call. It is handed
// unchanged to Func callbacks, If predicates, and converters; the engine never
// inspects it.
type Options map[string]any

// Func derives a field's raw value from the working object. An error (or a
// panic) is contained by the engine: the field falls back to nil and a warning
// is logged, the overall Parse still completes.
type Func func(input any, opt Options) (any, error)

// Pred gates a field. When it returns false the field is skipped entirely and
// no key is written, defaults included.
type Pred func(input any, opt Options) bool

// Converter coerces a raw value into a named type. Built-ins pass falsy values
// through unchanged rather than failing; custom converters may return an error,
// which the engine contains per field.
type Converter func(v any, opt Options) (any, error)

// PlainObjecter is the domain-object unwrap protocol. Persistence-layer
// records implementing it are unwrapped into their plain map form before any
// field rule applies.
type PlainObjecter interface {
	PlainObject() map[string]any
}

// TypeRef names a converter, optionally in array form. The array form coerces
// element-wise and always yields an array result.
type TypeRef struct {
	Name  string
	Array bool
}

// String renders the reference back into its declaration form.
func (t TypeRef) String() string {
	if t.Array {
		return "[]" + t.Name
	}
	return t.Name
}

// ParseType parses a type declaration such as "number" or "[]number".
// Names are lower-cased; the empty string means "any".
func ParseType(s string) TypeRef {
	s = strings.TrimSpace(s)
	var arr bool
	if strings.HasPrefix(s, "[]") {
		arr = true
		s = s[2:]
	}
	if s == "" {
		s = "any"
	}
	return TypeRef{Name: strings.ToLower(s), Array: arr}
}
