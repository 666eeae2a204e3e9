package action

import (
	"time"

	"github.com/felixgeelhaar/goap-go/domain/awaitable"
)

// Result is the blackboard delta an action produces. On success the loop
// appends Output, records Bindings, and re-plans. A non-nil Awaitable means
// the action cannot complete without external input: nothing is merged and
// the process suspends until a matching response arrives.
type Result struct {
	// Output holds objects to append to the blackboard.
	Output []any

	// Bindings holds name-to-object bindings to record (binding implies
	// appending).
	Bindings map[string]any

	// Awaitable, when set, suspends the process instead of completing the
	// action.
	Awaitable *awaitable.Awaitable

	// Duration is filled in by the executor.
	Duration time.Duration
}

// Suspends reports whether the result requests a suspension.
func (r Result) Suspends() bool {
	return r.Awaitable != nil
}
