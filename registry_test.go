package reshape_test

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reshape "github.com/mlens/reshape"
)

func TestConvert_NumberPassthrough(t *testing.T) {
	r := reshape.NewRegistry()

	got, err := r.Convert(0, reshape.ParseType("number"), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = r.Convert(nil, reshape.ParseType("number"), nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = r.Convert("", reshape.ParseType("number"), nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = r.Convert(false, reshape.ParseType("number"), nil)
	require.NoError(t, err)
	assert.Equal(t, false, got)

	got, err = r.Convert("42", reshape.ParseType("number"), nil)
	require.NoError(t, err)
	assert.Equal(t, float64(42), got)

	got, err = r.Convert("not a number", reshape.ParseType("number"), nil)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.(float64)))
}

func TestConvert_BooleanTruthTable(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{"false", false},
		{"undefined", false},
		{"null", false},
		{"0", false},
		{"", false},
		{"yes", true},
		{"anything", true},
		{0, false},
		{1, true},
		{-3, true},
		{nil, false},
		{true, true},
		{false, false},
	}
	for _, tc := range cases {
		got, err := reshape.Convert(tc.in, "boolean")
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "input %#v", tc.in)
	}
}

func TestConvert_ArrayTypeLaws(t *testing.T) {
	got, err := reshape.Convert(nil, "[]number")
	require.NoError(t, err)
	assert.Equal(t, []any{}, got)

	got, err = reshape.Convert("", "[]number")
	require.NoError(t, err)
	assert.Equal(t, []any{}, got)

	got, err = reshape.Convert(5, "[]number")
	require.NoError(t, err)
	assert.Equal(t, []any{5}, got)

	got, err = reshape.Convert([]any{"1", "2"}, "[]number")
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2)}, got)
}

func TestConvert_ScalarTypeBroadcastsOverArrays(t *testing.T) {
	// a scalar type maps element-wise when the raw value happens to be a slice
	got, err := reshape.Convert([]any{"1", "2"}, "number")
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2)}, got)
}

func TestConvert_Date(t *testing.T) {
	r := reshape.NewRegistry()

	now := time.Now()
	got, err := r.Convert(now, reshape.ParseType("date"), nil)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	got, err = r.Convert("2024-06-01T12:00:00Z", reshape.ParseType("date"), nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), got)

	// invalid input yields the zero-time sentinel, not an error
	got, err = r.Convert("not a date", reshape.ParseType("date"), nil)
	require.NoError(t, err)
	assert.True(t, got.(time.Time).IsZero())

	got, err = r.Convert(nil, reshape.ParseType("date"), nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConvert_String(t *testing.T) {
	got, err := reshape.Convert("keep", "string")
	require.NoError(t, err)
	assert.Equal(t, "keep", got)

	got, err = reshape.Convert(float64(5), "string")
	require.NoError(t, err)
	assert.Equal(t, "5", got)

	got, err = reshape.Convert(nil, "string")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConvert_AnyIsIdentity(t *testing.T) {
	v := map[string]any{"k": 1}
	got, err := reshape.Convert(v, "any")
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestRegistry_DefineUndefine(t *testing.T) {
	r := reshape.NewRegistry()
	require.False(t, r.CanConvert("upper"))

	r.Define("upper", func(v any, _ reshape.Options) (any, error) {
		s, _ := v.(string)
		return s + "!", nil
	})
	require.True(t, r.CanConvert("upper"))

	got, err := r.Convert("hey", reshape.ParseType("upper"), nil)
	require.NoError(t, err)
	assert.Equal(t, "hey!", got)

	r.Undefine("upper")
	require.False(t, r.CanConvert("upper"))
	_, err = r.Convert("hey", reshape.ParseType("upper"), nil)
	require.Error(t, err)
	assert.True(t, reshape.IsUnknownType(err))
}

func TestRegistry_ConverterPanicReturnsError(t *testing.T) {
	r := reshape.NewRegistry()
	r.Define("explosive", func(any, reshape.Options) (any, error) {
		panic("kaboom")
	})

	_, err := r.Convert("v", reshape.ParseType("explosive"), nil)
	require.Error(t, err)
	assert.False(t, reshape.IsUnknownType(err))
	assert.Contains(t, err.Error(), "kaboom")
}

func TestRegistry_InstancesAreIsolated(t *testing.T) {
	a := reshape.NewRegistry()
	b := reshape.NewRegistry()
	a.Define("only-a", func(v any, _ reshape.Options) (any, error) { return v, nil })
	assert.True(t, a.CanConvert("only-a"))
	assert.False(t, b.CanConvert("only-a"))
}

func TestRegistry_ConcurrentDefineAndConvert(t *testing.T) {
	r := reshape.NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Define("x", func(v any, _ reshape.Options) (any, error) { return v, nil })
		}()
		go func() {
			defer wg.Done()
			_, _ = r.Convert("1", reshape.ParseType("number"), nil)
		}()
	}
	wg.Wait()
	assert.True(t, r.CanConvert("x"))
}

func TestGetConverter(t *testing.T) {
	fn, ok := reshape.GetConverter("number")
	require.True(t, ok)
	require.NotNil(t, fn)

	_, ok = reshape.GetConverter("no-such-type")
	assert.False(t, ok)
}
