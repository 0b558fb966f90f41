package minio

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/corebench/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelName(t *testing.T) {
	assert.Equal(t, "reports/a.json", relName("corebench/reports/a.json", "corebench/"))
	assert.Equal(t, "reports/a.json", relName("corebench/reports/a.json", "corebench"))
	assert.Equal(t, "a.json", relName("a.json", ""))
}

func TestMapError(t *testing.T) {
	notFound := minio.ErrorResponse{Code: "NoSuchKey"}
	assert.ErrorIs(t, mapError(notFound), blobstore.ErrNotFound)

	other := errors.New("boom")
	assert.Equal(t, other, mapError(other))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", contentType("r.json"))
	assert.Equal(t, "application/zstd", contentType("r.json.zst"))
	assert.Equal(t, "application/octet-stream", contentType("r.json.lz4"))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-corebench"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte(`{"seedcrc":"0xe9f5"}`)
	require.NoError(t, store.Put(ctx, "reports/run.json", data))

	got, err := store.Get(ctx, "reports/run.json")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "reports/")
	require.NoError(t, err)
	assert.Contains(t, names, "reports/run.json")

	require.NoError(t, store.Delete(ctx, "reports/run.json"))
	_, err = store.Get(ctx, "reports/run.json")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
