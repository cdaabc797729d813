package reshape

import (
	"fmt"
	"reflect"
	"sync"
)

// Registry maps type names to converter functions. Registration is guarded by
// a lock so converters can be defined and retracted at runtime; an injectable
// Registry (rather than hidden process state) keeps tests isolated.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Converter
}

// NewRegistry returns a Registry seeded with the built-in converters
// number, date, string, boolean, and any.
func NewRegistry() *Registry {
	return &Registry{byName: builtins()}
}

// Define registers or overwrites a converter. Last registration wins.
func (r *Registry) Define(name string, fn Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[name] = fn
}

// Undefine removes a converter; subsequent Convert calls for name fail.
func (r *Registry) Undefine(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byName, name)
}

// CanConvert reports whether a converter is registered for name.
func (r *Registry) CanConvert(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok
}

// Converter returns the converter registered for name, if any.
func (r *Registry) Converter(name string) (Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.byName[name]
	return fn, ok
}

// Convert coerces v into the referenced type.
//
// Array references coerce element-wise and always return a slice: a nil or
// empty-string v becomes the empty slice, any other scalar is wrapped first.
// A slice v under a scalar reference is also mapped element-wise, preserving
// the input shape. Unknown type names fail with a CodeUnknownType error.
func (r *Registry) Convert(v any, t TypeRef, opt Options) (any, error) {
	if t.Array {
		return r.convertSlice(elems(v), t.Name, opt)
	}
	if isSequence(v) {
		return r.convertSlice(elems(v), t.Name, opt)
	}
	fn, ok := r.Converter(t.Name)
	if !ok {
		return nil, singleIssue(CodeUnknownType, "", fmt.Sprintf("no converter for type %q", t.Name))
	}
	return invoke(fn, v, opt)
}

// invoke runs a converter, turning panics into errors so one misbehaving
// converter cannot abort a whole parse.
func invoke(fn Converter, v any, opt Options) (out any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("converter panic: %v", rec)
		}
	}()
	return fn(v, opt)
}

func (r *Registry) convertSlice(items []any, name string, opt Options) (any, error) {
	out := make([]any, 0, len(items))
	for _, it := range items {
		cv, err := r.Convert(it, TypeRef{Name: name}, opt)
		if err != nil {
			return nil, err
		}
		out = append(out, cv)
	}
	return out, nil
}

// elems flattens v into conversion elements: nil and the empty string become
// no elements, sequences contribute each element, anything else is a single
// element.
func elems(v any) []any {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok && s == "" {
		return nil
	}
	if !isSequence(v) {
		return []any{v}
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func isSequence(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// ---- process-wide default registry ----

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide Registry used by Parse when no
// WithRegistry option is given.
func DefaultRegistry() *Registry { return defaultRegistry }

// DefineConverter registers fn on the default registry.
func DefineConverter(name string, fn Converter) { defaultRegistry.Define(name, fn) }

// UndefineConverter removes a converter from the default registry.
func UndefineConverter(name string) { defaultRegistry.Undefine(name) }

// CanConvert reports whether the default registry holds a converter for name.
func CanConvert(name string) bool { return defaultRegistry.CanConvert(name) }

// GetConverter returns the converter registered for name on the default
// registry, if any.
func GetConverter(name string) (Converter, bool) { return defaultRegistry.Converter(name) }

// Convert coerces v on the default registry. The type string accepts the
// array form, e.g. Convert(nil, "[]number") yields an empty slice.
func Convert(v any, typ string, opt ...Options) (any, error) {
	var o Options
	if len(opt) > 0 {
		o = opt[len(opt)-1]
	}
	return defaultRegistry.Convert(v, ParseType(typ), o)
}
