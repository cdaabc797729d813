package reshape

import (
	"fmt"
	"reflect"

	"github.com/mlens/reshape/internal/path"
)

// Parse transforms an input record through the Entity's rule table. Sequences
// are parsed element-wise; values implementing PlainObjecter are unwrapped
// first. The returned error is non-nil only when a rule names a type with no
// registered converter; every per-field failure is contained and logged.
func (e *Entity) Parse(input any, opts ...ParseOption) (any, error) {
	return e.parse(input, newParseConfig(opts))
}

func (e *Entity) parse(input any, cfg *parseConfig) (any, error) {
	if input == nil {
		return input, nil
	}
	work := input
	if po, ok := input.(PlainObjecter); ok {
		work = po.PlainObject()
	}
	if isEmpty(work) {
		return input, nil
	}
	if isSequence(work) {
		rv := reflect.ValueOf(work)
		out := make([]any, rv.Len())
		for i := range out {
			v, err := e.parse(rv.Index(i).Interface(), cfg)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
	obj, ok := work.(map[string]any)
	if !ok {
		// scalar or unsupported container: nothing to map over
		return work, nil
	}
	if len(e.rules) == 0 && e.discard == nil {
		cfg.logger.Debug("entity has no rules, passing record through", "entity", e.name)
		return obj, nil
	}

	out := map[string]any{}
	for _, key := range e.activeKeys(obj) {
		r := e.rules[key]
		if r == nil {
			// discard-mode pass-through field
			r = &rule{act: ActAlias, key: key, path: key, typ: TypeRef{Name: "any"}}
		}
		if r.cond != nil && !r.cond(obj, cfg.opts) {
			continue
		}
		if err := e.parseField(obj, r, cfg, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// parseField resolves one rule against the working object and writes the
// result into out. The defined flag stands in for the undefined/null
// distinction: undefined final values are omitted, nil ones are written.
func (e *Entity) parseField(obj map[string]any, r *rule, cfg *parseConfig, out map[string]any) error {
	v, defined := e.resolve(obj, r, cfg)

	defaulted := false
	if (!defined || v == nil) && r.hasDefault {
		v, defined, defaulted = r.def, true, true
	}
	if defined && cfg.converter != nil {
		if cv, err := safeConvert(cfg.converter, v); err != nil {
			cfg.logger.Warn("converter callback failed, keeping value",
				"entity", e.name, "field", r.key, "err", err)
		} else {
			v = cv
		}
	}
	if defined && !defaulted && r.nested != nil {
		nv, err := r.nested.parse(v, cfg)
		if err != nil {
			return err
		}
		v = nv
	}
	if defined || r.typ.Array {
		cv, err := cfg.registry.Convert(v, r.typ, cfg.opts)
		switch {
		case err == nil:
			v = cv
			defined = true
		case IsUnknownType(err):
			return AppendIssues(nil, Issue{Path: r.key, Code: CodeUnknownType,
				Message: fmt.Sprintf("no converter for type %q", r.typ.Name), Cause: err})
		default:
			cfg.logger.Warn("conversion failed, keeping unconverted value",
				"entity", e.name, "field", r.key, "type", r.typ.String(), "err", err)
		}
	}
	if defined {
		path.Set(out, r.key, v)
	}
	return nil
}

// resolve computes the raw value per the rule's act. The bool result is false
// when the value is undefined (as opposed to an explicit nil).
func (e *Entity) resolve(obj map[string]any, r *rule, cfg *parseConfig) (any, bool) {
	switch r.act {
	case ActFunc:
		v, err := safeApply(r.fn, obj, cfg.opts)
		if err != nil {
			cfg.logger.Warn("field function failed, using null",
				"entity", e.name, "field", r.key, "err", err)
			return nil, true
		}
		return v, true
	case ActGet:
		v, ok := path.Get(obj, r.path)
		if !ok {
			cfg.logger.Debug("get path not found",
				"entity", e.name, "field", r.key, "path", r.path)
		}
		return v, ok
	case ActValue:
		return r.val, true
	case ActOmit:
		v, ok := path.Get(obj, r.key)
		if !ok {
			return nil, false
		}
		m, isMap := v.(map[string]any)
		if !isMap {
			return v, true
		}
		cp := make(map[string]any, len(m))
		for k, mv := range m {
			cp[k] = mv
		}
		for _, k := range r.omit {
			delete(cp, k)
		}
		return cp, true
	default: // ActAlias
		return path.Get(obj, r.path)
	}
}

// activeKeys collects the output names to process: the rule table's keys,
// unioned with the record's own keys minus the discard set when discard mode
// is on. Keys come back sorted with "id" moved to the front.
func (e *Entity) activeKeys(obj map[string]any) []string {
	set := make(map[string]struct{}, len(e.rules))
	for k := range e.rules {
		set[k] = struct{}{}
	}
	if e.discard != nil {
		for k := range obj {
			set[k] = struct{}{}
		}
		for k := range e.discard {
			delete(set, k)
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	return orderKeys(keys)
}

// safeApply invokes a Func rule callback, turning panics into errors so a
// misbehaving callback cannot abort the whole parse.
func safeApply(fn Func, input any, opt Options) (v any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("callback panic: %v", rec)
		}
	}()
	return fn(input, opt)
}

// safeConvert runs the caller-supplied converter function with the same
// panic containment as safeApply.
func safeConvert(fn func(any) any, v any) (out any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("callback panic: %v", rec)
		}
	}()
	return fn(v), nil
}

// isEmpty reports whether v is an enumerable container with no content.
// Scalars fall through to the non-map branch of parse instead.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() == 0
	}
	return false
}
