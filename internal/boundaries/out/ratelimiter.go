package out

import "context"

// DeletionLimiter paces destructive registry calls.
// Implementations may use different backends (memory, shared quota).
type DeletionLimiter interface {
	// Wait blocks until a delete identified by key may proceed or ctx is done.
	// Key is typically the repository name.
	Wait(ctx context.Context, key string) error
}
