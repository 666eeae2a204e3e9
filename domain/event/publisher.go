package event

import "context"

// Publisher publishes process lifecycle events.
type Publisher interface {
	// Publish sends events to subscribers.
	Publish(ctx context.Context, events ...Event) error

	// Close releases any resources held by the publisher.
	Close() error
}

// Subscriber receives events from a publisher.
type Subscriber interface {
	// Subscribe returns a channel that receives events for a process.
	// An empty processID subscribes to all processes.
	Subscribe(ctx context.Context, processID string) (<-chan Event, error)
}
