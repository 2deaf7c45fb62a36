package identifier

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/expconf/internal/registry"
)

func TestNewID(t *testing.T) {
	t.Run("bare", func(t *testing.T) {
		id, err := NewID(context.Background(), &Input{})
		require.NoError(t, err)
		_, parseErr := uuid.Parse(id)
		assert.NoError(t, parseErr)
	})

	t.Run("prefixed", func(t *testing.T) {
		id, err := NewID(context.Background(), &Input{Prefix: "run"})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(id, "run-"))
		_, parseErr := uuid.Parse(strings.TrimPrefix(id, "run-"))
		assert.NoError(t, parseErr)
	})

	t.Run("unique per call", func(t *testing.T) {
		first, err := NewID(context.Background(), &Input{})
		require.NoError(t, err)
		second, err := NewID(context.Background(), &Input{})
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestRegisterAndConstruct(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	entity, err := r.Lookup("NewID")
	require.NoError(t, err)

	value, err := entity.Construct(context.Background(), map[string]any{"prefix": "exp"})
	require.NoError(t, err)

	id, ok := value.(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(id, "exp-"))
}
