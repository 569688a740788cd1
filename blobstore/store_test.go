package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStoreContract exercises the BlobStore behaviors the snapshot
// manager relies on.
func testStoreContract(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	// Missing blob
	_, err := store.Open(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	// Put + Open + ReadAt
	data := []byte("symmetric edges only")
	require.NoError(t, store.Put(ctx, "a/current", data))

	b, err := store.Open(ctx, "a/current")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), b.Size())

	buf := make([]byte, 9)
	n, err := b.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, []byte("symmetric"), buf)
	require.NoError(t, b.Close())

	// Streaming create
	w, err := store.Create(ctx, "a/snapshot-1")
	require.NoError(t, err)
	_, err = w.Write([]byte("part1-"))
	require.NoError(t, err)
	_, err = w.Write([]byte("part2"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := ReadAll(ctx, store, "a/snapshot-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("part1-part2"), got)

	// List with prefix, sorted
	require.NoError(t, store.Put(ctx, "a/snapshot-2", []byte("x")))
	names, err := store.List(ctx, "a/snapshot-")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/snapshot-1", "a/snapshot-2"}, names)

	// Delete
	require.NoError(t, store.Delete(ctx, "a/snapshot-1"))
	_, err = store.Open(ctx, "a/snapshot-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	testStoreContract(t, store)
}

func TestLocalStoreReadRangeBounds(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "blob", []byte("0123456789")))

	b, err := store.Open(ctx, "blob")
	require.NoError(t, err)
	defer b.Close()

	r, err := b.ReadRange(ctx, 4, 100)
	require.NoError(t, err)
	defer r.Close()

	buf := make([]byte, 16)
	n, _ := r.Read(buf)
	assert.Equal(t, "456789", string(buf[:n]))
}
