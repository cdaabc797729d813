package reshape

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// dateLayouts are tried in order when coercing strings into dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func builtins() map[string]Converter {
	return map[string]Converter{
		"number":  convertNumber,
		"date":    convertDate,
		"string":  convertString,
		"boolean": convertBoolean,
		"any":     convertAny,
	}
}

// convertNumber passes numeric zero and every other falsy value through
// unchanged; anything else is numeric-parsed. Unparsable input yields NaN
// rather than an error.
func convertNumber(v any, _ Options) (any, error) {
	if isFalsy(v) {
		return v, nil
	}
	switch x := v.(type) {
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return math.NaN(), nil
		}
		return f, nil
	case bool:
		// only true reaches here, false is falsy
		return float64(1), nil
	case time.Time:
		return float64(x.UnixMilli()), nil
	}
	if isNumeric(v) {
		return v, nil
	}
	return math.NaN(), nil
}

// convertDate passes dates and falsy values through; strings are parsed
// against dateLayouts and numbers are read as milliseconds since the epoch.
// Invalid input yields the zero time sentinel, not an error.
func convertDate(v any, _ Options) (any, error) {
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	if isFalsy(v) {
		return v, nil
	}
	switch x := v.(type) {
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, x); err == nil {
				return t, nil
			}
		}
		return time.Time{}, nil
	}
	if isNumeric(v) {
		rv := reflect.ValueOf(v)
		var ms int64
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			ms = int64(rv.Float())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			ms = int64(rv.Uint())
		default:
			ms = rv.Int()
		}
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Time{}, nil
}

// convertString passes strings and falsy values through; anything else is
// stringified.
func convertString(v any, _ Options) (any, error) {
	if _, ok := v.(string); ok {
		return v, nil
	}
	if isFalsy(v) {
		return v, nil
	}
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return fmt.Sprint(v), nil
}

// convertBoolean always yields a bool. For strings, the literals "false",
// "undefined", "null", "0", and "" are false and every other string is true;
// numbers follow zero/non-zero; anything else follows generic truthiness.
func convertBoolean(v any, _ Options) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		switch x {
		case "false", "undefined", "null", "0", "":
			return false, nil
		}
		return true, nil
	}
	return !isFalsy(v), nil
}

// convertAny is the identity converter.
func convertAny(v any, _ Options) (any, error) { return v, nil }

// isFalsy mirrors dynamic-language truthiness: nil, false, empty string,
// numeric zero, and NaN are falsy.
func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	}
	return false
}

func isNumeric(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
