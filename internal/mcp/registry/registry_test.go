package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cssmodules/internal/mcp/contracts"
)

func TestRegistry(t *testing.T) {
	r := New()
	h := func(context.Context, contracts.PositionInput) (any, error) { return "ok", nil }

	require.NoError(t, r.Register(contracts.ToolNameDefinition, h))
	require.NoError(t, r.Register(contracts.ToolNameCompletion, h))
	assert.Error(t, r.Register(contracts.ToolNameCompletion, h))
	assert.Error(t, r.Register("", h))
	assert.Error(t, r.Register("x", nil))

	assert.Equal(t, []string{contracts.ToolNameDefinition, contracts.ToolNameCompletion}, r.Tools())

	got, ok := r.HandlerFor(contracts.ToolNameCompletion)
	require.True(t, ok)
	out, err := got(context.Background(), contracts.PositionInput{})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	_, ok = r.HandlerFor("missing")
	assert.False(t, ok)
}
