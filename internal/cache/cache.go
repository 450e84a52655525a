package cache

import (
	"context"
	"time"
)

// Cache defines the key/value operations the redirect path relies on.
// A miss is reported as ("", nil), never as an error.
type Cache interface {
	// Set stores a value with expiration
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Get retrieves a value by key
	Get(ctx context.Context, key string) (string, error)

	// Delete removes a key
	Delete(ctx context.Context, key string) error

	// Ping checks the connection, used by the readiness probe
	Ping(ctx context.Context) error

	// Close closes the cache connection
	Close() error
}
