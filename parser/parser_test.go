package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamkit-dev/streamjson/schema"
)

func TestPushDrivesNodeAcrossChunks(t *testing.T) {
	descriptor := schema.Object(
		schema.F("name", schema.String()),
		schema.F("age", schema.Number()),
	)
	root := descriptor.Create()
	var completedValue any
	root.OnComplete(func(v any) { completedValue = v })

	p := New(root)
	chunks := []string{`{"nam`, `e":"Ann`, `a","age":3`, `0}`}
	for _, c := range chunks {
		require.NoError(t, p.Push(c))
	}
	require.NoError(t, p.Complete())

	assert.Equal(t, map[string]any{"name": "Anna", "age": 30.0}, completedValue)
}

func TestCompleteIsIdempotent(t *testing.T) {
	root := schema.String().Create()
	p := New(root)
	require.NoError(t, p.Push(`"hi"`))
	require.NoError(t, p.Complete())
	require.NoError(t, p.Complete())
}

func TestCompleteForcesTrailingBareNumber(t *testing.T) {
	root := schema.Number().Create()
	var got any
	root.OnComplete(func(v any) { got = v })

	p := New(root)
	require.NoError(t, p.Push(`42`))
	require.NoError(t, p.Complete())
	assert.Equal(t, 42.0, got)
}

func TestPushPropagatesContinuityError(t *testing.T) {
	root := schema.String().Create()
	p := New(root)
	require.NoError(t, p.Push(`"abc`))
	err := p.Push(`xyz"`)
	assert.Error(t, err)
}

func TestScopedCompletesOnPanic(t *testing.T) {
	root := schema.String().Create()
	p := New(root)
	require.NoError(t, p.Push(`"a"`))

	assert.Panics(t, func() {
		_ = p.Scoped(func(*Parser) error {
			panic("boom")
		})
	})
	assert.True(t, root.Completed(), "Complete must still run before the panic propagates")
}

func TestWithDebugDumpWritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debug.yaml")

	root := schema.String().Create()
	p := New(root, WithDebugDump(path))
	require.NoError(t, p.Push(`"done"`))
	require.NoError(t, p.Complete())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "1_completed")
}
