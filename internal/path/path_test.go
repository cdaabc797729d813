package path_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlens/reshape/internal/path"
)

func TestGet(t *testing.T) {
	root := map[string]any{
		"a": map[string]any{
			"b": []any{
				map[string]any{"c": 1},
				nil,
			},
		},
		"nilval": nil,
	}

	cases := []struct {
		p     string
		want  any
		found bool
	}{
		{"a", root["a"], true},
		{"a.b", root["a"].(map[string]any)["b"], true},
		{"a.b.0.c", 1, true},
		{"a.b.1", nil, true},
		{"nilval", nil, true},
		{"a.b.2", nil, false},
		{"a.b.0.missing", nil, false},
		{"a.x", nil, false},
		{"missing", nil, false},
		{"a.b.notanindex", nil, false},
	}
	for _, tc := range cases {
		got, found := path.Get(root, tc.p)
		assert.Equal(t, tc.found, found, "path %q", tc.p)
		assert.Equal(t, tc.want, got, "path %q", tc.p)
	}
}

func TestGet_NonContainerRoot(t *testing.T) {
	_, found := path.Get(42, "a")
	assert.False(t, found)

	v, found := path.Get(42, "")
	assert.True(t, found)
	assert.Equal(t, 42, v)
}

func TestSet_CreatesMaps(t *testing.T) {
	out := map[string]any{}
	path.Set(out, "a.b.c", 1)
	assert.Equal(t, map[string]any{
		"a": map[string]any{"b": map[string]any{"c": 1}},
	}, out)
}

func TestSet_NumericSegmentCreatesSlice(t *testing.T) {
	out := map[string]any{}
	path.Set(out, "items.1.name", "x")
	assert.Equal(t, map[string]any{
		"items": []any{nil, map[string]any{"name": "x"}},
	}, out)
}

func TestSet_MergesIntoExistingContainers(t *testing.T) {
	out := map[string]any{}
	path.Set(out, "a.b", 1)
	path.Set(out, "a.c", 2)
	path.Set(out, "top", 3)
	assert.Equal(t, map[string]any{
		"a":   map[string]any{"b": 1, "c": 2},
		"top": 3,
	}, out)
}

func TestSet_GrowsSlices(t *testing.T) {
	out := map[string]any{}
	path.Set(out, "xs.0", "a")
	path.Set(out, "xs.2", "c")
	assert.Equal(t, map[string]any{"xs": []any{"a", nil, "c"}}, out)
}

func TestSplit(t *testing.T) {
	require.Nil(t, path.Split(""))
	assert.Equal(t, []string{"a"}, path.Split("a"))
	assert.Equal(t, []string{"a", "b", "c"}, path.Split("a.b.c"))
}
