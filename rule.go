package reshape

import "regexp"

// Act tags a field rule's value-derivation strategy. Each act carries only the
// rule fields it needs; conflicting act options are rejected when the rule is
// built, not at parse time.
type Act int

//go:generate go tool stringer -type=Act -trimprefix=Act

const (
	// ActAlias reads the input at the dotted path equal to the output name.
	ActAlias Act = iota
	// ActFunc invokes a user-supplied Func with (input, options).
	ActFunc
	// ActGet reads the input at a dotted path different from the output name.
	ActGet
	// ActValue emits a fixed constant.
	ActValue
	// ActOmit reads the field matching the output name and strips sub-keys.
	ActOmit
)

// fieldNamePattern constrains output field names (dotted paths allowed).
var fieldNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// rule is one entry of an Entity's table: how to derive, default, nest, and
// coerce a single output field.
type rule struct {
	act  Act
	key  string // final output name, possibly dotted
	path string // read path for ActAlias/ActGet
	fn   Func   // ActFunc callback
	val  any    // ActValue constant
	omit []string

	typ        TypeRef
	def        any
	hasDefault bool
	cond       Pred
	nested     *Entity
}

// clone returns an independent copy. Nested entities are shared by reference;
// they are definitions, not per-rule state.
func (r *rule) clone() *rule {
	c := *r
	if r.omit != nil {
		c.omit = append([]string(nil), r.omit...)
	}
	return &c
}
