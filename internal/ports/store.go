package ports

import "context"

// KeyValueStore is the shared store holding serialized room records.
// Only GET and SET are available: there is no TTL, versioning or locking.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// found is false when the key does not exist; err is set only when the store failed.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}
