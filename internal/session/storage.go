package session

import "context"

// Storage is the durable key-value store the session blob is persisted to.
// Implementations must treat a missing key as (_, false, nil).
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
