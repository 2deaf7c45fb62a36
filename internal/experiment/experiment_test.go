package experiment_test

import (
	"context"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/expconf/internal/builder"
	"github.com/vk/expconf/internal/experiment"
	"github.com/vk/expconf/internal/registry"
	"github.com/vk/expconf/internal/testutil"
)

func newExperiment(t *testing.T, document map[string]any, vars map[string]any) *experiment.Experiment {
	t.Helper()
	exp, err := experiment.New(context.Background(), testutil.NewRegistry(), document, vars)
	require.NoError(t, err)
	return exp
}

func TestBuildIsLazyAndMemoized(t *testing.T) {
	ctx := context.Background()

	calls := 0
	reg := registry.New()
	reg.MustRegister("Counter", registry.Func(func(context.Context, map[string]any) (any, error) {
		calls++
		return calls, nil
	}))

	exp, err := experiment.New(ctx, reg, map[string]any{
		"counted": map[string]any{"_name": "Counter"},
		"other":   "plain",
	}, nil)
	require.NoError(t, err)

	// Nothing built at construction.
	assert.Zero(t, exp.Len())
	assert.Zero(t, calls)

	first, err := exp.Build(ctx, "counted")
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	// Second read is a cache hit, not a rebuild.
	second, err := exp.Build(ctx, "counted")
	require.NoError(t, err)
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, calls)
}

func TestBuildUnknownKey(t *testing.T) {
	exp := newExperiment(t, map[string]any{"a": 1}, nil)

	_, err := exp.Build(context.Background(), "missing")

	var unknownErr *experiment.UnknownKeyError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "missing", unknownErr.Key)
}

func TestSelfReferenceIsACycle(t *testing.T) {
	// "x" resolves $x against the experiment store while "x" itself is in
	// progress: that must fail fast, not recurse.
	exp := newExperiment(t, map[string]any{"x": "$x"}, nil)

	_, err := exp.Build(context.Background(), "x")

	var cycleErr *experiment.CyclicBuildError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, "x", cycleErr.Key)
	assert.Equal(t, []string{"x", "x"}, cycleErr.Chain)
}

func TestMutualReferenceIsACycle(t *testing.T) {
	exp := newExperiment(t, map[string]any{"a": "$b", "b": "$a"}, nil)

	_, err := exp.Build(context.Background(), "a")

	var cycleErr *experiment.CyclicBuildError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, "a", cycleErr.Key)
	assert.Equal(t, []string{"a", "b", "a"}, cycleErr.Chain)
}

func TestReferencePriority(t *testing.T) {
	// VAR exists in all three namespaces; the substitution variable wins.
	reg := testutil.NewRegistry()
	reg.MustRegister("VAR", registry.Func(func(context.Context, map[string]any) (any, error) {
		return "from-registry", nil
	}))

	exp, err := experiment.New(context.Background(), reg, map[string]any{
		"VAR":    "from-document",
		"result": "$VAR",
	}, map[string]any{"VAR": 5})
	require.NoError(t, err)

	got, err := exp.Build(context.Background(), "result")
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestSiblingReferenceBuildsOnDemand(t *testing.T) {
	exp := newExperiment(t, map[string]any{
		"second": []any{"$VAR", "$test"},
		"test":   "coucou",
	}, map[string]any{"VAR": 5})
	ctx := context.Background()

	got, err := exp.Build(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, []any{5, "coucou"}, got)

	// Building "second" transitively built "test".
	value, ok := exp.Get("test")
	assert.True(t, ok)
	assert.Equal(t, "coucou", value)
}

func TestBuildAllSkipsTransitivelyBuiltKeys(t *testing.T) {
	exp := newExperiment(t, map[string]any{
		"second": []any{"$VAR", "$test"},
		"test":   "coucou",
		"third":  "$second",
	}, map[string]any{"VAR": 5})
	ctx := context.Background()

	require.NoError(t, exp.BuildAll(ctx))

	assert.Equal(t, 3, exp.Len())
	third, ok := exp.Get("third")
	require.True(t, ok)
	assert.Equal(t, []any{5, "coucou"}, third)

	// "test" completed before "second", which completed before "third".
	assert.Equal(t, []string{"test", "second", "third"}, exp.Keys())
}

func TestFailedBuildReleasesInProgressMark(t *testing.T) {
	exp := newExperiment(t, map[string]any{
		"bad": map[string]any{"_name": "Boom"},
	}, nil)
	ctx := context.Background()

	_, err := exp.Build(ctx, "bad")
	var instErr *builder.InstantiationError
	require.ErrorAs(t, err, &instErr)

	// A retry reports the same failure, not a false cycle.
	_, err = exp.Build(ctx, "bad")
	require.Error(t, err)
	var cycleErr *experiment.CyclicBuildError
	assert.NotErrorAs(t, err, &cycleErr)
	require.ErrorAs(t, err, &instErr)

	// The failed key was never marked built.
	_, ok := exp.Get("bad")
	assert.False(t, ok)
	assert.Zero(t, exp.Len())
}

func TestGetNeverBuilds(t *testing.T) {
	exp := newExperiment(t, map[string]any{"a": "plain"}, nil)

	_, ok := exp.Get("a")
	assert.False(t, ok)
	assert.Zero(t, exp.Len())
}

func TestStoreIsReadOnly(t *testing.T) {
	ctx := context.Background()
	exp := newExperiment(t, map[string]any{"a": "plain"}, nil)
	_, err := exp.Build(ctx, "a")
	require.NoError(t, err)

	err = exp.Set("a", "overwritten")
	require.ErrorIs(t, err, experiment.ErrReadOnly)

	value, ok := exp.Get("a")
	require.True(t, ok)
	assert.Equal(t, "plain", value)
}

func TestIterationReflectsBuiltOnly(t *testing.T) {
	ctx := context.Background()
	exp := newExperiment(t, map[string]any{"a": 1, "b": 2, "c": 3}, nil)

	_, err := exp.Build(ctx, "b")
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, exp.Keys())
	assert.Equal(t, []any{2}, exp.Values())
	assert.Equal(t, 1, exp.Len())
	assert.Equal(t, []string{"a", "b", "c"}, exp.DocumentKeys())

	collected := maps.Collect(exp.All())
	assert.Equal(t, map[string]any{"b": 2}, collected)
}

func TestDocumentCopyIsIndependent(t *testing.T) {
	document := map[string]any{"a": "plain"}
	exp := newExperiment(t, document, nil)

	document["a"] = "mutated"

	got, err := exp.Build(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "plain", got)
}
