package reshape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reshape "github.com/mlens/reshape"
)

func TestExpose_NameValidation(t *testing.T) {
	e := reshape.New("user")
	require.NoError(t, e.Expose("name"))
	require.NoError(t, e.Expose("contact.email"))
	require.NoError(t, e.Expose("field_1"))

	for _, bad := range []string{"spaced name!", "dash-ed", "curly{}", "slash/ed"} {
		err := e.Expose(bad)
		require.Error(t, err, "name %q", bad)
		iss, ok := reshape.AsIssues(err)
		require.True(t, ok)
		assert.Equal(t, reshape.CodeInvalidName, iss[0].Code)
	}
}

func TestExpose_MultipleNames(t *testing.T) {
	e := reshape.New("user")
	require.NoError(t, e.Expose("id name email"))

	out, err := e.Parse(map[string]any{"id": 1, "name": "a", "email": "a@x", "extra": true})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 1, "name": "a", "email": "a@x"}, out)
}

func TestExpose_MultipleNamesRejectRenameAndApply(t *testing.T) {
	e := reshape.New("user")

	err := e.Expose("a b", reshape.As("x"))
	require.Error(t, err)
	iss, _ := reshape.AsIssues(err)
	assert.Equal(t, reshape.CodeOptionConflict, iss[0].Code)

	err = e.Expose("a b", reshape.Apply(func(any, reshape.Options) (any, error) { return nil, nil }))
	require.Error(t, err)
}

func TestExpose_ConflictingActs(t *testing.T) {
	cases := [][]reshape.FieldOption{
		{reshape.As("x"), reshape.ValueOf(1)},
		{reshape.As("x"), reshape.Apply(func(any, reshape.Options) (any, error) { return nil, nil })},
		{reshape.Get("a.b"), reshape.ValueOf(1)},
		{reshape.OmitKeys("k"), reshape.Get("a")},
	}
	for i, opts := range cases {
		e := reshape.New("user")
		err := e.Expose("f", opts...)
		require.Error(t, err, "case %d", i)
		iss, ok := reshape.AsIssues(err)
		require.True(t, ok)
		assert.Equal(t, reshape.CodeOptionConflict, iss[0].Code)
	}
}

func TestExpose_LastRuleWins(t *testing.T) {
	e := reshape.New("user")
	require.NoError(t, e.Expose("status", reshape.ValueOf("first")))
	require.NoError(t, e.Expose("status", reshape.ValueOf("second")))

	out, err := e.Parse(map[string]any{"anything": true})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "second"}, out)
}

func TestDefine_Spec(t *testing.T) {
	contact, err := reshape.FromSpec("contact", reshape.Spec{
		"email": {},
		"phone": {Type: "string"},
	})
	require.NoError(t, err)

	user, err := reshape.FromSpec("user", reshape.Spec{
		"id":       {Type: "number"},
		"name":     {},
		"lastName": {Get: "surname", Type: "string"},
		"status":   {Value: "active"},
		"contact":  {Using: contact},
		"age":      {Type: "number", Default: 18},
	})
	require.NoError(t, err)

	out, err := user.Parse(map[string]any{
		"id":      "9",
		"name":    "Ada",
		"surname": "Lovelace",
		"contact": map[string]any{"email": "ada@x.io", "phone": "", "raw": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"id":       float64(9),
		"name":     "Ada",
		"lastName": "Lovelace",
		"status":   "active",
		"contact":  map[string]any{"email": "ada@x.io", "phone": ""},
		"age":      18,
	}, out)
}

func TestDefine_BadSpecFailsFast(t *testing.T) {
	_, err := reshape.FromSpec("user", reshape.Spec{
		"f": {As: "x", Value: 1},
	})
	require.Error(t, err)
	iss, ok := reshape.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, reshape.CodeOptionConflict, iss[0].Code)
}

func TestDiscard_UnionsSets(t *testing.T) {
	e := reshape.New("user")
	require.NoError(t, e.Discard("secret"))
	require.NoError(t, e.Discard("internal"))

	out, err := e.Parse(map[string]any{
		"id": 1, "name": "a", "secret": "s", "internal": "i", "__v": 3,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 1, "name": "a"}, out)
}

func TestFreeze_MutationFails(t *testing.T) {
	e := reshape.New("user")
	require.NoError(t, e.Expose("id"))
	f := e.Freeze()
	require.True(t, f.Frozen())

	err := f.Expose("name")
	require.Error(t, err)
	iss, _ := reshape.AsIssues(err)
	assert.Equal(t, reshape.CodeFrozen, iss[0].Code)

	require.Error(t, f.Discard("x"))
	require.Error(t, f.Define(reshape.Spec{"y": {}}))
}

func TestExtend_RequiresFrozen(t *testing.T) {
	e := reshape.New("user")
	_, err := e.Extend("user2")
	require.Error(t, err)
	iss, _ := reshape.AsIssues(err)
	assert.Equal(t, reshape.CodeNotFrozen, iss[0].Code)
}

func TestExtend_CloneIsIndependent(t *testing.T) {
	base := reshape.New("user")
	require.NoError(t, base.Expose("id name"))
	base.Freeze()

	clone, err := base.Extend("user2")
	require.NoError(t, err)
	assert.Equal(t, "user2", clone.Name())
	assert.False(t, clone.Frozen())

	require.NoError(t, clone.Expose("email"))
	require.NoError(t, clone.Expose("name", reshape.ValueOf("overridden")))

	in := map[string]any{"id": 1, "name": "a", "email": "a@x"}

	out, err := base.Parse(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 1, "name": "a"}, out)

	out, err = clone.Parse(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 1, "name": "overridden", "email": "a@x"}, out)
}

func TestIsEntity(t *testing.T) {
	assert.True(t, reshape.IsEntity(reshape.New("x")))
	assert.False(t, reshape.IsEntity(struct{ Name string }{"x"}))
	assert.False(t, reshape.IsEntity(nil))
	assert.False(t, reshape.IsEntity(map[string]any{}))
}
