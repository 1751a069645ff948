package runtime

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cssmodules/internal/core/app"
	"cssmodules/internal/core/config"
	"cssmodules/internal/mcp/contracts"
	"cssmodules/internal/mcp/transport"
)

type idleTransport struct{}

func (idleTransport) Start(ctx context.Context, _ transport.Handler) error { return nil }
func (idleTransport) Stop() error                                        { return nil }

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.less"), []byte(".btn-primary {color:red}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "App.jsx"), []byte("import styles from './a.less';\nstyles.\n"), 0o644))

	settings, err := app.NewSettings(config.DefaultConfig(), root)
	require.NoError(t, err)
	srv, err := New(Dependencies{Service: app.NewService(settings), BaseDir: root}, idleTransport{})
	require.NoError(t, err)
	return srv, root
}

func TestHandleToolCall_Completion(t *testing.T) {
	srv, _ := newTestServer(t)

	out, err := srv.HandleToolCall(context.Background(), contracts.ToolNameCompletion, map[string]any{
		"path": "App.jsx", "line": float64(1), "character": float64(7),
	})
	require.NoError(t, err)
	items := out.(contracts.CompletionOutput).Items
	require.Len(t, items, 1)
	assert.Equal(t, "btnPrimary", items[0].Label)
	assert.Equal(t, "btn-primary", items[0].Detail)
}

func TestHandleToolCall_DefinitionWithUnsavedText(t *testing.T) {
	srv, root := newTestServer(t)

	out, err := srv.HandleToolCall(context.Background(), contracts.ToolNameDefinition, map[string]any{
		"path": filepath.Join(root, "App.jsx"), "line": 1, "character": 10,
		"text": "import styles from './a.less';\nstyles.btnPrimary\n",
	})
	require.NoError(t, err)
	loc := out.(contracts.DefinitionOutput).Location
	require.NotNil(t, loc)
	assert.Equal(t, filepath.Join(root, "a.less"), loc.Path)
	assert.Equal(t, 0, loc.Range.Start.Line)
}

func TestHandleToolCall_EmptyResults(t *testing.T) {
	srv, _ := newTestServer(t)

	out, err := srv.HandleToolCall(context.Background(), contracts.ToolNameCompletion, map[string]any{
		"path": "App.jsx", "line": 0, "character": 0,
	})
	require.NoError(t, err)
	assert.Empty(t, out.(contracts.CompletionOutput).Items)
	assert.NotNil(t, out.(contracts.CompletionOutput).Items)

	out, err = srv.HandleToolCall(context.Background(), contracts.ToolNameDefinition, map[string]any{
		"path": "App.jsx", "line": 0, "character": 0,
	})
	require.NoError(t, err)
	assert.Nil(t, out.(contracts.DefinitionOutput).Location)
}

func TestHandleToolCall_Errors(t *testing.T) {
	srv, _ := newTestServer(t)

	_, err := srv.HandleToolCall(context.Background(), "unknown", map[string]any{"path": "App.jsx"})
	var toolErr contracts.ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, contracts.ErrorInvalidArgument, toolErr.Code)

	_, err = srv.HandleToolCall(context.Background(), contracts.ToolNameCompletion, map[string]any{"path": "missing.jsx"})
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, contracts.ErrorNotFound, toolErr.Code)
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Dependencies{}, idleTransport{})
	assert.Error(t, err)

	settings, err := app.NewSettings(nil, t.TempDir())
	require.NoError(t, err)
	_, err = New(Dependencies{Service: app.NewService(settings)}, nil)
	assert.Error(t, err)
}

func TestServer_StartDelegatesToTransport(t *testing.T) {
	srv, _ := newTestServer(t)
	require.NoError(t, srv.Start(context.Background()))
	require.NoError(t, srv.Stop())
}
