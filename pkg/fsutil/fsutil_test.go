package fsutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lua")
	require.NoError(t, os.WriteFile(path, []byte("return 1\n"), 0o644))

	content, err := ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "return 1\n", string(content))
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadFileDirectory(t *testing.T) {
	_, err := ReadFile(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrIsDirectory)
}

func TestReadFileCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadFile(ctx, "anything.lua")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dist", "out.lua")

	require.NoError(t, WriteAtomic(context.Background(), path, []byte("bundle"), 0))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bundle", string(content))

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteAtomicOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.lua")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, WriteAtomic(context.Background(), path, []byte("new"), 0))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestWriteAtomicIfChanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.lua")
	ctx := context.Background()

	wrote, err := WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.True(t, wrote, "first write creates the file")

	wrote, err = WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.False(t, wrote, "identical content is skipped")

	wrote, err = WriteAtomicIfChanged(ctx, path, []byte("b"), 0)
	require.NoError(t, err)
	assert.True(t, wrote, "changed content is written")
}
