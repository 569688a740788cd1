package minio

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecgraph/vecgraph/blobstore"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("connection refused")))
	assert.False(t, isNotFound(nil))
}

func TestClampRange(t *testing.T) {
	tests := []struct {
		name               string
		off, length, size  int64
		wantStart, wantEnd int64
	}{
		{"inside", 10, 5, 100, 10, 14},
		{"tail overrun", 95, 10, 100, 95, 99},
		{"whole object", 0, 100, 100, 0, 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := clampRange(tt.off, tt.length, tt.size)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

// TestStoreIntegration requires a reachable MinIO instance; configure it
// with MINIO_ENDPOINT / MINIO_ACCESS_KEY / MINIO_SECRET_KEY / MINIO_BUCKET.
// Skipped otherwise.
func TestStoreIntegration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("MINIO_ENDPOINT not set")
	}
	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "vecgraph-test"
	}

	client, err := NewClient(endpoint, func(o *ClientOptions) {
		o.AccessKey = os.Getenv("MINIO_ACCESS_KEY")
		o.SecretKey = os.Getenv("MINIO_SECRET_KEY")
	})
	require.NoError(t, err)

	ctx := context.Background()
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not reachable: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "it/")

	data := []byte("symmetric adjacency snapshot bytes")
	require.NoError(t, store.Put(ctx, "layer0.vgr", data))

	blob, err := store.Open(ctx, "layer0.vgr")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, data, buf)
	require.NoError(t, blob.Close())

	// Ranged read in the middle of the object.
	blob, err = store.Open(ctx, "layer0.vgr")
	require.NoError(t, err)
	rc, err := blob.ReadRange(ctx, 10, 9)
	require.NoError(t, err)
	part := make([]byte, 9)
	_, err = rc.Read(part)
	require.NoError(t, err)
	assert.Equal(t, "adjacency", string(part))
	require.NoError(t, rc.Close())
	require.NoError(t, blob.Close())

	// Streaming upload through Create.
	w, err := store.Create(ctx, "layer1.vgr")
	require.NoError(t, err)
	_, err = w.Write([]byte("streamed"))
	require.NoError(t, err)
	require.NoError(t, w.Sync())
	require.NoError(t, w.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "layer0.vgr")
	assert.Contains(t, names, "layer1.vgr")

	require.NoError(t, store.Delete(ctx, "layer0.vgr"))
	require.NoError(t, store.Delete(ctx, "layer1.vgr"))
	require.NoError(t, store.Delete(ctx, "layer0.vgr")) // already gone

	_, err = store.Open(ctx, "layer0.vgr")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}
