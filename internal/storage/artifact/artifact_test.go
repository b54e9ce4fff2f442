package artifact

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	completed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	in := &Artifact{
		JobID:       "job_01J0000000000000000000000",
		HTML:        "<!DOCTYPE html>\n<html><head></head><body>" + strings.Repeat("x", 5000) + "</body></html>",
		ProviderID:  "claude",
		URL:         "https://example.com",
		CompletedAt: completed,
	}
	require.NoError(t, store.Put(ctx, in))

	out, err := store.Get(ctx, in.JobID)
	require.NoError(t, err)
	assert.Equal(t, in.HTML, out.HTML)
	assert.Equal(t, in.ProviderID, out.ProviderID)
	assert.Equal(t, in.URL, out.URL)
	assert.True(t, completed.Equal(out.CompletedAt))
}

func TestFileStoreWritesOnce(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	a := &Artifact{JobID: "job_a", HTML: "first"}
	require.NoError(t, store.Put(ctx, a))

	err = store.Put(ctx, &Artifact{JobID: "job_a", HTML: "second"})
	assert.ErrorIs(t, err, ErrExists)

	out, err := store.Get(ctx, "job_a")
	require.NoError(t, err)
	assert.Equal(t, "first", out.HTML)
}

func TestFileStoreNotFound(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "job_missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreRejectsBadIDs(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Put(context.Background(), &Artifact{JobID: ""}))
	assert.Error(t, store.Put(context.Background(), &Artifact{JobID: "a/b"}))
	assert.Error(t, store.Put(context.Background(), nil))
}

func TestNewS3StoreValidatesConfig(t *testing.T) {
	_, err := NewS3Store(S3Config{})
	assert.ErrorContains(t, err, "endpoint")

	_, err = NewS3Store(S3Config{Endpoint: "localhost:9000"})
	assert.ErrorContains(t, err, "access key")

	_, err = NewS3Store(S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	assert.ErrorContains(t, err, "bucket")

	s, err := NewS3Store(S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b", Bucket: "clones"})
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", s.region)
	assert.Equal(t, "jobs/job_1.json", objectKey("job_1"))
}
