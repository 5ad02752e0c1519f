package interfaces

import (
	"context"
	"time"
)

// KeyedStore is a TTL-bounded key-value store with per-user index sets.
// Implementations must return an error wrapping types.ErrStoreUnavailable
// when the backend cannot be reached, and store.ErrNotFound when a key is
// absent or expired.
type KeyedStore interface {
	// Key-value operations
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) (bool, error)

	// Set operations, used for per-user indexes
	AddSetMember(ctx context.Context, setKey, member string) error
	RemoveSetMember(ctx context.Context, setKey, member string) error
	SetMembers(ctx context.Context, setKey string) ([]string, error)
	ExpireSet(ctx context.Context, setKey string, ttl time.Duration) error

	// Keys returns all keys matching a glob pattern (e.g. "user:*:repositories")
	Keys(ctx context.Context, pattern string) ([]string, error)

	Close() error
}
