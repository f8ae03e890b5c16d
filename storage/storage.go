// Package storage provides the remote object-store clients the benchmark writes through.
package storage

import (
	"context"
	"io"
)

// OriginalLengthKey is the user-metadata key carrying the source file size
const OriginalLengthKey = "originalLength"

// ObjectStore issues a single synchronous put per object.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body io.Reader, size int64, metadata map[string]string) error
}

// Uploader hands a local file to a managed transfer facility and blocks
// until the transfer has completed.
type Uploader interface {
	Upload(ctx context.Context, key, localPath string) error
}

// Store is a remote backend offering both write strategies
type Store interface {
	ObjectStore
	Uploader
}

type nopCloser struct {
	io.Reader
}

func (nopCloser) Close() error { return nil }
