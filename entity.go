package reshape

import (
	"fmt"
	"strings"
)

// versionMarker is always part of the discard set; persistence layers tend to
// leak it into plain records.
const versionMarker = "__v"

// Entity is a named mapping definition: a table of field rules describing how
// an input record becomes an output object. Build it once (typically at
// startup), then call Parse per record. An Entity is not safe for concurrent
// mutation; freeze it before sharing.
type Entity struct {
	name    string
	rules   map[string]*rule
	discard map[string]struct{} // nil while discard mode is off
	frozen  bool
}

// New returns an empty mutable Entity. The name is used for diagnostics only.
func New(name string) *Entity {
	return &Entity{name: name, rules: map[string]*rule{}}
}

// FromSpec builds an Entity from a declarative specification in one step.
func FromSpec(name string, spec Spec) (*Entity, error) {
	e := New(name)
	if err := e.Define(spec); err != nil {
		return nil, err
	}
	return e, nil
}

// IsEntity reports whether v is an Entity. The check is identity-based, not
// structural.
func IsEntity(v any) bool {
	_, ok := v.(*Entity)
	return ok
}

// Name returns the diagnostic name.
func (e *Entity) Name() string { return e.name }

// Frozen reports whether the Entity is immutable.
func (e *Entity) Frozen() bool { return e.frozen }

// Expose registers field rules for one or more whitespace-separated names.
// With multiple names, renaming (As) and Apply are rejected since the output
// key would be ambiguous. The last rule written for a given output name wins.
func (e *Entity) Expose(names string, opts ...FieldOption) error {
	if e.frozen {
		return singleIssue(CodeFrozen, "", fmt.Sprintf("entity %q is frozen", e.name))
	}
	fields := strings.Fields(names)
	if len(fields) == 0 {
		return singleIssue(CodeBadSpec, "", "expose requires at least one field name")
	}
	var cfg fieldConfig
	for _, o := range opts {
		o(&cfg)
	}
	if len(fields) > 1 && (cfg.hasAs || cfg.fn != nil) {
		return singleIssue(CodeOptionConflict, names, "As/Apply cannot target multiple names")
	}
	for _, name := range fields {
		r, err := buildRule(name, &cfg)
		if err != nil {
			return err
		}
		e.rules[r.key] = r
	}
	return nil
}

// Discard switches the Entity into discard mode: all input fields are exposed
// except the given names. Repeated calls union their sets; the version marker
// is always excluded.
func (e *Entity) Discard(names ...string) error {
	if e.frozen {
		return singleIssue(CodeFrozen, "", fmt.Sprintf("entity %q is frozen", e.name))
	}
	if e.discard == nil {
		e.discard = map[string]struct{}{versionMarker: {}}
	}
	for _, n := range names {
		e.discard[n] = struct{}{}
	}
	return nil
}

// Freeze marks the Entity immutable and returns it. Further Expose, Define,
// and Discard calls fail; the only way to vary a frozen Entity is Extend.
func (e *Entity) Freeze() *Entity {
	e.frozen = true
	return e
}

// Extend clones a frozen Entity into a new mutable one under the given name.
// The rule table is deep-cloned; mutations on the clone never reach the
// receiver. Extending a non-frozen Entity fails.
func (e *Entity) Extend(name string) (*Entity, error) {
	if !e.frozen {
		return nil, singleIssue(CodeNotFrozen, "", fmt.Sprintf("entity %q must be frozen before extend", e.name))
	}
	c := New(name)
	for k, r := range e.rules {
		c.rules[k] = r.clone()
	}
	if e.discard != nil {
		c.discard = make(map[string]struct{}, len(e.discard))
		for k := range e.discard {
			c.discard[k] = struct{}{}
		}
	}
	return c, nil
}
