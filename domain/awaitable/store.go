package awaitable

import "context"

// Store persists pending awaitables keyed by id and by suspended process.
// Implementations live in infrastructure.
type Store interface {
	// Save persists a pending awaitable.
	Save(ctx context.Context, aw *Awaitable) error

	// Get retrieves a pending awaitable by id.
	Get(ctx context.Context, id string) (*Awaitable, error)

	// GetForProcess retrieves the pending awaitable for a process, if any.
	GetForProcess(ctx context.Context, processID string) (*Awaitable, error)

	// Resolve removes the awaitable, enforcing single-shot resolution:
	// resolving an unknown or already-resolved id fails with
	// ErrUnknownAwaitable.
	Resolve(ctx context.Context, id string) (*Awaitable, error)

	// DeleteForProcess discards any pending awaitable for a process, e.g.
	// when the process is killed while waiting.
	DeleteForProcess(ctx context.Context, processID string) error
}
