// Package storage provides path based object storage for accumulator logs
package storage

import (
	"context"
)

// ObjectStore is the narrow interface the log committer needs from a path
// based store. Writes are guarded with optimistic concurrency: the etag
// returned by Get and Put identifies the content, and WithETagMatch /
// WithCreateOnly make a write conditional on it.
type ObjectStore interface {
	Get(ctx context.Context, storagePath string) ([]byte, string, error)
	Put(ctx context.Context, storagePath string, data []byte, opts ...WriteOption) (string, error)

	// List returns the paths of the objects directly under prefix, sorted
	// lexically
	List(ctx context.Context, prefix string) ([]string, error)
}

type WriteOptions struct {
	etagMatch  string
	createOnly bool
}

type WriteOption func(*WriteOptions)

// WithETagMatch requires that the object exists and that its current content
// matches etag.
func WithETagMatch(etag string) WriteOption {
	return func(o *WriteOptions) {
		o.etagMatch = etag
	}
}

// WithCreateOnly requires that the object does not exist
func WithCreateOnly() WriteOption {
	return func(o *WriteOptions) {
		o.createOnly = true
	}
}

func NewWriteOptions(opts ...WriteOption) WriteOptions {
	var o WriteOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
