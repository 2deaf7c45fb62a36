package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echo(_ context.Context, args map[string]any) (any, error) {
	return args, nil
}

func TestNew(t *testing.T) {
	r := New()
	require.NotNil(t, r)
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Aliases())
}

func TestRegisterAndLookup(t *testing.T) {
	r := New()

	registered, err := r.Register("Echo", Func(echo))
	require.NoError(t, err)
	require.NotNil(t, registered)

	entity, err := r.Lookup("Echo")
	require.NoError(t, err)

	// The registered entity comes back untouched.
	got, err := entity.Construct(context.Background(), map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, got)

	assert.True(t, r.Contains("Echo"))
	assert.Equal(t, 1, r.Len())
}

func TestRegisterRejectsEmptyAliasAndNilEntity(t *testing.T) {
	r := New()

	_, err := r.Register("", Func(echo))
	assert.ErrorContains(t, err, "alias must not be empty")

	_, err = r.Register("Echo", nil)
	assert.ErrorContains(t, err, "must not be nil")

	assert.Zero(t, r.Len())
}

func TestRegisterDuplicateAlias(t *testing.T) {
	r := New()

	original := Func(echo)
	_, err := r.Register("Echo", original)
	require.NoError(t, err)

	replacement := Func(func(context.Context, map[string]any) (any, error) {
		return "other", nil
	})
	_, err = r.Register("Echo", replacement)

	var dupErr *DuplicateAliasError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "Echo", dupErr.Alias)

	// The existing entry is untouched.
	entity, err := r.Lookup("Echo")
	require.NoError(t, err)
	got, err := entity.Construct(context.Background(), map[string]any{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"k": "v"}, got)
}

func TestLookupUnknownAlias(t *testing.T) {
	r := New()

	_, err := r.Lookup("Nope")

	var unknownErr *UnknownPluginError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "Nope", unknownErr.Alias)
	assert.ErrorContains(t, err, "Nope")
}

func TestMustRegisterPanicsOnCollision(t *testing.T) {
	r := New()
	r.MustRegister("Echo", Func(echo))

	assert.Panics(t, func() {
		r.MustRegister("Echo", Func(echo))
	})
}

func TestAliasesSorted(t *testing.T) {
	r := New()
	r.MustRegister("b", Func(echo))
	r.MustRegister("a", Func(echo))
	r.MustRegister("c", Func(echo))

	assert.Equal(t, []string{"a", "b", "c"}, r.Aliases())
}

type testModule struct {
	alias string
}

func (m *testModule) Register(r *Registry) {
	r.MustRegister(m.alias, Func(echo))
}

func TestBootstrap(t *testing.T) {
	r := New()
	r.Bootstrap(context.Background(), &testModule{alias: "one"}, &testModule{alias: "two"})

	assert.Equal(t, []string{"one", "two"}, r.Aliases())
}
