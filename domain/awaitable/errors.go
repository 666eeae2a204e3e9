package awaitable

import "errors"

// Domain errors for awaitable handling.
var (
	// ErrUnknownAwaitable indicates a response references an id with no
	// matching suspended process or awaitable. Rejected immediately; the
	// process state is unchanged.
	ErrUnknownAwaitable = errors.New("no such awaitable")

	// ErrAlreadyResolved indicates the awaitable has already received its
	// single response.
	ErrAlreadyResolved = errors.New("awaitable already resolved")

	// ErrUnsupportedKind indicates an awaitable variant outside the closed
	// kind set.
	ErrUnsupportedKind = errors.New("unsupported awaitable kind")

	// ErrInvalidResponse indicates a response that does not match the shape
	// the awaitable's kind requires.
	ErrInvalidResponse = errors.New("invalid awaitable response")
)
