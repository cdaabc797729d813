package reshape

import "sort"

// Field is the declarative form of one field rule. The zero Field exposes the
// input value as-is. At most one of As, Get, Value, Omit, and Apply may be
// set; contradictory combinations fail at Define time.
//
// A nil Value or Default means "not set" in this form; use the Expose options
// ValueOf(nil)/Default(nil) when an explicit null is required.
type Field struct {
	As      string
	Get     string
	Value   any
	Omit    []string
	Apply   Func
	Type    string
	Default any
	If      Pred
	Using   *Entity
}

// Spec is a declarative specification: output field name to Field.
type Spec map[string]Field

// Define builds field rules for every entry of the specification. Entries are
// applied in lexicographic name order so that duplicate dotted names resolve
// deterministically; a malformed entry aborts the whole call.
func (e *Entity) Define(spec Spec) error {
	for _, name := range sortedSpecKeys(spec) {
		f := spec[name]
		opts := f.options()
		if err := e.Expose(name, opts...); err != nil {
			return err
		}
	}
	return nil
}

func (f Field) options() []FieldOption {
	var opts []FieldOption
	if f.Apply != nil {
		opts = append(opts, Apply(f.Apply))
	}
	if f.As != "" {
		opts = append(opts, As(f.As))
	}
	if f.Get != "" {
		opts = append(opts, Get(f.Get))
	}
	if f.Value != nil {
		opts = append(opts, ValueOf(f.Value))
	}
	if f.Omit != nil {
		opts = append(opts, OmitKeys(f.Omit...))
	}
	if f.Type != "" {
		opts = append(opts, Type(f.Type))
	}
	if f.Default != nil {
		opts = append(opts, Default(f.Default))
	}
	if f.If != nil {
		opts = append(opts, If(f.If))
	}
	if f.Using != nil {
		opts = append(opts, Using(f.Using))
	}
	return opts
}

func sortedSpecKeys(spec Spec) []string {
	keys := make([]string, 0, len(spec))
	for k := range spec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
