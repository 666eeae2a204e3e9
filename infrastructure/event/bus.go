// Package event provides an in-memory event bus for process lifecycle
// events.
package event

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/goap-go/domain/event"
)

const defaultSubscriberBuffer = 64

// Bus is an in-memory publish/subscribe bus. Delivery is best effort: a
// subscriber whose channel buffer is full misses events rather than blocking
// the publishing process loop.
type Bus struct {
	mu      sync.RWMutex
	subs    map[int]*subscription
	nextID  int
	bufSize int
	closed  bool
}

type subscription struct {
	processID string // empty means all processes
	ch        chan event.Event
}

// Option configures the bus.
type Option func(*Bus)

// WithSubscriberBuffer sets the per-subscriber channel buffer size.
func WithSubscriberBuffer(size int) Option {
	return func(b *Bus) {
		if size > 0 {
			b.bufSize = size
		}
	}
}

// NewBus creates a new in-memory event bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		subs:    make(map[int]*subscription),
		bufSize: defaultSubscriberBuffer,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish delivers events to all matching subscribers.
func (b *Bus) Publish(ctx context.Context, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}

	for _, ev := range events {
		for _, sub := range b.subs {
			if sub.processID != "" && sub.processID != ev.ProcessID {
				continue
			}
			select {
			case sub.ch <- ev:
			default:
				// Subscriber is not keeping up; drop rather than block.
			}
		}
	}
	return nil
}

// Subscribe returns a channel that receives events for the given process. An
// empty processID subscribes to all processes. The channel is closed when
// the context is cancelled or the bus closes.
func (b *Bus) Subscribe(ctx context.Context, processID string) (<-chan event.Event, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		ch := make(chan event.Event)
		close(ch)
		return ch, nil
	}

	id := b.nextID
	b.nextID++
	sub := &subscription{
		processID: processID,
		ch:        make(chan event.Event, b.bufSize),
	}
	b.subs[id] = sub
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.unsubscribe(id)
	}()

	return sub.ch, nil
}

func (b *Bus) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subs[id]
	if !ok {
		return
	}
	delete(b.subs, id)
	close(sub.ch)
}

// Close closes all subscriber channels and stops delivery.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.ch)
	}
	return nil
}

// Ensure Bus implements the domain interfaces.
var (
	_ event.Publisher  = (*Bus)(nil)
	_ event.Subscriber = (*Bus)(nil)
)
