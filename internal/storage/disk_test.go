package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clientdesk/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *storage.DiskStore {
	t.Helper()
	store, err := storage.NewDiskStore(t.TempDir(), "/files")
	require.NoError(t, err)
	return store
}

func TestEnsureBucket_CreatesOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	exists, err := store.BucketExists(ctx, "documents")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, storage.EnsureBucket(ctx, store, "documents"))
	require.NoError(t, storage.EnsureBucket(ctx, store, "documents"))

	exists, err = store.BucketExists(ctx, "documents")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUpload_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateBucket(ctx, "documents"))

	err := store.Upload(ctx, "documents", "7/1700000000_abc.pdf",
		strings.NewReader("content"), storage.UploadOptions{ContentType: "application/pdf"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(store.Root(), "documents", "7", "1700000000_abc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	assert.Equal(t, "/files/documents/7/1700000000_abc.pdf",
		store.PublicURL("documents", "7/1700000000_abc.pdf"))
}

func TestUpload_OverwriteProtection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateBucket(ctx, "documents"))

	require.NoError(t, store.Upload(ctx, "documents", "a.txt", strings.NewReader("one"), storage.UploadOptions{}))

	err := store.Upload(ctx, "documents", "a.txt", strings.NewReader("two"), storage.UploadOptions{})
	assert.ErrorIs(t, err, storage.ErrObjectExists)

	// Upsert replaces the object.
	require.NoError(t, store.Upload(ctx, "documents", "a.txt", strings.NewReader("two"), storage.UploadOptions{Upsert: true}))
	data, err := os.ReadFile(filepath.Join(store.Root(), "documents", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestUpload_MissingBucket(t *testing.T) {
	store := newTestStore(t)
	err := store.Upload(context.Background(), "nope", "a.txt", strings.NewReader("x"), storage.UploadOptions{})
	assert.ErrorIs(t, err, storage.ErrBucketNotFound)
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateBucket(ctx, "documents"))
	require.NoError(t, store.Upload(ctx, "documents", "a.txt", strings.NewReader("x"), storage.UploadOptions{}))

	require.NoError(t, store.Remove(ctx, "documents", "a.txt"))
	assert.ErrorIs(t, store.Remove(ctx, "documents", "a.txt"), storage.ErrObjectNotFound)
}

func TestKeyTraversalRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateBucket(ctx, "documents"))

	err := store.Upload(ctx, "documents", "../escape.txt", strings.NewReader("x"), storage.UploadOptions{})
	assert.ErrorIs(t, err, storage.ErrInvalidKey)

	err = store.Remove(ctx, "documents", "..")
	assert.ErrorIs(t, err, storage.ErrInvalidKey)
}
