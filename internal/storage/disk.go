package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskStore is an ObjectStore over a local directory tree. Buckets are
// first-level directories; object keys may contain slashes.
type DiskStore struct {
	root       string
	publicBase string
}

// NewDiskStore creates a store rooted at root. publicBase is the URL
// prefix objects are served from (e.g. "/files").
func NewDiskStore(root, publicBase string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{root: root, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

// Root returns the directory buckets live under, for the file server.
func (s *DiskStore) Root() string { return s.root }

// cleanKey rejects keys that would escape the bucket directory.
func cleanKey(key string) (string, error) {
	if key == "" || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", ErrInvalidKey
		}
	}
	cleaned := path.Clean("/" + key)
	if cleaned == "/" {
		return "", ErrInvalidKey
	}
	return strings.TrimPrefix(cleaned, "/"), nil
}

func (s *DiskStore) bucketDir(bucket string) (string, error) {
	if bucket == "" || strings.ContainsAny(bucket, "/\\") {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.root, bucket), nil
}

func (s *DiskStore) BucketExists(_ context.Context, bucket string) (bool, error) {
	dir, err := s.bucketDir(bucket)
	if err != nil {
		return false, err
	}
	fi, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return fi.IsDir(), nil
}

func (s *DiskStore) CreateBucket(_ context.Context, bucket string) error {
	dir, err := s.bucketDir(bucket)
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *DiskStore) Upload(_ context.Context, bucket, key string, r io.Reader, opts UploadOptions) error {
	dir, err := s.bucketDir(bucket)
	if err != nil {
		return err
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return ErrBucketNotFound
	}
	rel, err := cleanKey(key)
	if err != nil {
		return err
	}
	dest := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !opts.Upsert {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(dest, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrObjectExists
		}
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dest)
		return err
	}
	return f.Close()
}

func (s *DiskStore) Remove(_ context.Context, bucket, key string) error {
	dir, err := s.bucketDir(bucket)
	if err != nil {
		return err
	}
	rel, err := cleanKey(key)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(dir, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return ErrObjectNotFound
	}
	return err
}

func (s *DiskStore) PublicURL(bucket, key string) string {
	return s.publicBase + "/" + bucket + "/" + strings.TrimPrefix(key, "/")
}
