package ctxfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLocator(t *testing.T) {
	t.Run("finds context file in the start directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ContextFileName), "project facts")

		locator := NewLocator(filepath.Join(dir, "no-global.md"), nil)
		path, found := locator.Locate(dir)

		require.True(t, found)
		assert.Equal(t, filepath.Join(dir, ContextFileName), path)
	})

	t.Run("nearest ancestor wins over farther ones", func(t *testing.T) {
		root := t.TempDir()
		mid := filepath.Join(root, "mid")
		leaf := filepath.Join(mid, "leaf")
		require.NoError(t, os.MkdirAll(leaf, 0755))
		writeFile(t, filepath.Join(root, ContextFileName), "root")
		writeFile(t, filepath.Join(mid, ContextFileName), "mid")

		locator := NewLocator(filepath.Join(root, "no-global.md"), nil)
		path, found := locator.Locate(leaf)

		require.True(t, found)
		assert.Equal(t, filepath.Join(mid, ContextFileName), path)
	})

	t.Run("project file beats global fallback", func(t *testing.T) {
		dir := t.TempDir()
		globalPath := filepath.Join(t.TempDir(), "global.md")
		writeFile(t, globalPath, "global facts")
		writeFile(t, filepath.Join(dir, ContextFileName), "project facts")

		locator := NewLocator(globalPath, nil)
		path, found := locator.Locate(dir)

		require.True(t, found)
		assert.Equal(t, filepath.Join(dir, ContextFileName), path)
	})

	t.Run("falls back to global when no ancestor has a context file", func(t *testing.T) {
		dir := t.TempDir()
		globalPath := filepath.Join(t.TempDir(), "global.md")
		writeFile(t, globalPath, "global facts")

		locator := NewLocator(globalPath, nil)
		path, found := locator.Locate(dir)

		require.True(t, found)
		assert.Equal(t, globalPath, path)
	})

	t.Run("returns nothing when neither exists", func(t *testing.T) {
		dir := t.TempDir()

		locator := NewLocator(filepath.Join(dir, "missing-global.md"), nil)
		path, found := locator.Locate(dir)

		assert.False(t, found)
		assert.Empty(t, path)
	})

	t.Run("ignores directories named like the context file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ContextFileName), 0755))

		locator := NewLocator(filepath.Join(dir, "missing-global.md"), nil)
		_, found := locator.Locate(dir)

		assert.False(t, found)
	})
}
