package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	// 1. Put a blob in a nested directory
	name := "reports/0xe9f5/run-001.json"
	data := []byte(`{"seedcrc":"0xe9f5"}`)
	require.NoError(t, store.Put(ctx, name, data))

	_, err := os.Stat(filepath.Join(tmpDir, "reports", "0xe9f5", "run-001.json"))
	require.NoError(t, err)

	// 2. Get
	got, err := store.Get(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// 3. Overwrite
	require.NoError(t, store.Put(ctx, name, []byte("{}")))
	got, err = store.Get(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))

	// 4. List
	require.NoError(t, store.Put(ctx, "reports/0x18f2/run-002.json", []byte("{}")))
	require.NoError(t, store.Put(ctx, "other.txt", []byte("x")))

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"other.txt", "reports/0x18f2/run-002.json", "reports/0xe9f5/run-001.json"}, all)

	reports, err := store.List(ctx, "reports/0xe9f5/")
	require.NoError(t, err)
	assert.Equal(t, []string{"reports/0xe9f5/run-001.json"}, reports)

	// 5. Delete
	require.NoError(t, store.Delete(ctx, name))
	_, err = store.Get(ctx, name)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, store.Delete(ctx, name))
}

func TestLocalStore_EmptyBlob(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "empty", nil))
	got, err := store.Get(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocalStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_CanceledContext(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, "a", []byte("a")), context.Canceled)
	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}
