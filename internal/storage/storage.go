package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains the blob storage abstraction used for uploaded images.
// Implementations stream from the reader and never touch local disk.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size               int64
	ContentType        string
	ContentDisposition string
	Metadata           map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	URL          string
}

// Storage is a public-read blob store.
type Storage interface {
	// Put uploads an object under the given key and returns its info, including the public URL.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// PublicURL returns the absolute URL under which key is readable without credentials.
	PublicURL(key string) string
	// Ping checks that the bucket is reachable.
	Ping(ctx context.Context) error
}
