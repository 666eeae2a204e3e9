// Package api exports. This file provides the storage and eventing
// backends a deployment picks from.
package api

import (
	"github.com/felixgeelhaar/goap-go/domain/awaitable"
	"github.com/felixgeelhaar/goap-go/domain/event"
	"github.com/felixgeelhaar/goap-go/domain/process"
	infraevent "github.com/felixgeelhaar/goap-go/infrastructure/event"
	"github.com/felixgeelhaar/goap-go/infrastructure/storage/memory"
	redisstore "github.com/felixgeelhaar/goap-go/infrastructure/storage/redis"
)

// Re-export store interfaces.
type (
	// ProcessStore persists process snapshots.
	ProcessStore = process.Store
	// AwaitableStore persists pending awaitables.
	AwaitableStore = awaitable.Store
	// EventPublisher emits lifecycle events.
	EventPublisher = event.Publisher
	// EventSubscriber receives lifecycle events.
	EventSubscriber = event.Subscriber
)

// NewMemoryProcessStore creates an in-memory process store.
func NewMemoryProcessStore() *memory.ProcessStore {
	return memory.NewProcessStore()
}

// NewMemoryAwaitableStore creates an in-memory awaitable store.
func NewMemoryAwaitableStore() *memory.AwaitableStore {
	return memory.NewAwaitableStore()
}

// NewMemoryAgentRegistry creates an in-memory agent registry.
func NewMemoryAgentRegistry() *memory.AgentRegistry {
	return memory.NewAgentRegistry()
}

// NewMemoryActionRegistry creates an in-memory action registry for callers
// that manage a shared action catalog outside of agents.
func NewMemoryActionRegistry() *memory.ActionRegistry {
	return memory.NewActionRegistry()
}

// RedisStoreConfig configures the Redis process store.
type RedisStoreConfig = redisstore.Config

// NewRedisProcessStore creates a Redis-backed process store and verifies
// connectivity.
func NewRedisProcessStore(cfg RedisStoreConfig) (*redisstore.ProcessStore, error) {
	return redisstore.NewProcessStore(cfg)
}

// NewEventBus creates the in-process pub/sub event bus.
func NewEventBus(opts ...infraevent.Option) *infraevent.Bus {
	return infraevent.NewBus(opts...)
}
