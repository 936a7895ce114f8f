// Package metadata is the client's durable key-value store. The session
// manager uses it as a single named slot for the bearer token; values are
// written atomically with last-writer-wins semantics.
package metadata

import "context"

type Repository interface {
	// Get returns the value stored under key, or nil when the slot is empty.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
