package reshape

import "fmt"

// FieldOption configures one field rule at Expose time.
type FieldOption func(*fieldConfig)

type fieldConfig struct {
	as       string
	hasAs    bool
	get      string
	hasGet   bool
	val      any
	hasValue bool
	omit     []string
	hasOmit  bool
	fn       Func

	typ    string
	def    any
	hasDef bool
	cond   Pred
	using  *Entity
}

// As renames the field: the exposed name is the read path, the option value
// becomes the output key.
func As(key string) FieldOption {
	return func(c *fieldConfig) { c.as = key; c.hasAs = true }
}

// Get reads the value from a different dotted path without keeping the
// original name available.
func Get(path string) FieldOption {
	return func(c *fieldConfig) { c.get = path; c.hasGet = true }
}

// ValueOf fixes the field to a constant. An explicit nil constant is allowed.
func ValueOf(v any) FieldOption {
	return func(c *fieldConfig) { c.val = v; c.hasValue = true }
}

// OmitKeys reads the field matching the output name and strips the listed
// sub-keys from it.
func OmitKeys(keys ...string) FieldOption {
	return func(c *fieldConfig) { c.omit = keys; c.hasOmit = true }
}

// Apply derives the field by invoking fn with (input, options).
func Apply(fn Func) FieldOption {
	return func(c *fieldConfig) { c.fn = fn }
}

// Type declares the coercion type, e.g. "number" or the array form "[]number".
// Array-typed fields always coerce to an array result.
func Type(t string) FieldOption {
	return func(c *fieldConfig) { c.typ = t }
}

// Default substitutes v when the resolved raw value is nil or missing. An
// explicit Default(nil) is distinct from no default at all: it writes null.
func Default(v any) FieldOption {
	return func(c *fieldConfig) { c.def = v; c.hasDef = true }
}

// If gates the field on a predicate; when it returns false the field is
// skipped entirely.
func If(p Pred) FieldOption {
	return func(c *fieldConfig) { c.cond = p }
}

// Using parses the resolved value through another Entity before coercion.
func Using(e *Entity) FieldOption {
	return func(c *fieldConfig) { c.using = e }
}

// buildRule validates the option combination for one output name and returns
// the resulting rule. Exactly one act may be configured; none means a
// same-name alias.
func buildRule(name string, c *fieldConfig) (*rule, error) {
	if !fieldNamePattern.MatchString(name) {
		return nil, singleIssue(CodeInvalidName, name, fmt.Sprintf("invalid field name %q", name))
	}
	acts := 0
	if c.fn != nil {
		acts++
	}
	if c.hasAs {
		acts++
	}
	if c.hasGet {
		acts++
	}
	if c.hasValue {
		acts++
	}
	if c.hasOmit {
		acts++
	}
	if acts > 1 {
		return nil, singleIssue(CodeOptionConflict, name, "more than one of Apply/As/Get/ValueOf/OmitKeys given")
	}

	r := &rule{
		key:        name,
		typ:        ParseType(c.typ),
		def:        c.def,
		hasDefault: c.hasDef,
		cond:       c.cond,
		nested:     c.using,
	}
	switch {
	case c.fn != nil:
		r.act = ActFunc
		r.fn = c.fn
	case c.hasAs:
		if !fieldNamePattern.MatchString(c.as) {
			return nil, singleIssue(CodeInvalidName, name, fmt.Sprintf("invalid rename target %q", c.as))
		}
		// the exposed name is the read path, As supplies the output key
		r.act = ActGet
		r.key = c.as
		r.path = name
	case c.hasGet:
		r.act = ActGet
		r.path = c.get
	case c.hasValue:
		r.act = ActValue
		r.val = c.val
	case c.hasOmit:
		r.act = ActOmit
		r.omit = append([]string(nil), c.omit...)
	default:
		r.act = ActAlias
		r.path = name
	}
	return r, nil
}
