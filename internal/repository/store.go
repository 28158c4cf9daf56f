package repository

import (
	"context"
	"errors"
)

var ErrConflict = errors.New("document modified concurrently, retries exhausted")

// UpdateFunc receives the current body of every requested key (nil when the
// key is absent) and returns the bodies to write. Keys left out of the result
// are not written. It may run more than once when a concurrent write wins.
type UpdateFunc func(docs map[string][]byte) (map[string][]byte, error)

// DocumentStore is a key/value store of whole JSON documents.
type DocumentStore interface {
	// Get returns nil, nil when key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, body []byte) error
	// Update applies fn to keys as one atomic read-modify-write.
	Update(ctx context.Context, keys []string, fn UpdateFunc) error
	Ping(ctx context.Context) error
	Close() error
}
