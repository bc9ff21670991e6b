// Package storage provides bucket-oriented object storage for uploaded
// files. The console talks to the ObjectStore interface; the disk
// implementation keeps each bucket as a directory under a root.
package storage

import (
	"context"
	"errors"
	"io"
)

// Errors returned by ObjectStore implementations.
var (
	ErrBucketNotFound = errors.New("bucket not found")
	ErrObjectExists   = errors.New("object already exists")
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidKey     = errors.New("invalid object key")
)

// UploadOptions mirror the options the console sets on every upload.
type UploadOptions struct {
	ContentType  string
	CacheControl string // e.g. "max-age=3600"
	// Upsert allows overwriting an existing object. The console always
	// uploads with Upsert false so a key collision fails loudly.
	Upsert bool
}

// ObjectStore is the object storage surface used by the document flows.
type ObjectStore interface {
	// BucketExists reports whether the bucket has been created.
	BucketExists(ctx context.Context, bucket string) (bool, error)
	// CreateBucket creates the bucket; creating an existing bucket is a no-op.
	CreateBucket(ctx context.Context, bucket string) error
	// Upload stores the object under bucket/key. Without Upsert, an
	// existing object makes it fail with ErrObjectExists.
	Upload(ctx context.Context, bucket, key string, r io.Reader, opts UploadOptions) error
	// Remove deletes the object; missing objects return ErrObjectNotFound.
	Remove(ctx context.Context, bucket, key string) error
	// PublicURL returns the address the object is retrievable from.
	PublicURL(bucket, key string) string
}

// EnsureBucket creates the bucket when it does not exist yet.
func EnsureBucket(ctx context.Context, store ObjectStore, bucket string) error {
	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return store.CreateBucket(ctx, bucket)
}
