package application

import (
	"github.com/felixgeelhaar/goap-go/domain/agent"
	"github.com/felixgeelhaar/goap-go/domain/awaitable"
	"github.com/felixgeelhaar/goap-go/domain/event"
	"github.com/felixgeelhaar/goap-go/domain/process"
	"github.com/felixgeelhaar/goap-go/infrastructure/planner"
	"github.com/felixgeelhaar/goap-go/infrastructure/resilience"
	"github.com/felixgeelhaar/goap-go/infrastructure/telemetry"
)

// Option configures the platform.
type Option func(*Config)

// WithRegistry sets the agent registry.
func WithRegistry(r agent.Registry) Option {
	return func(c *Config) {
		c.Registry = r
	}
}

// WithProcessStore sets the process snapshot store.
func WithProcessStore(s process.Store) Option {
	return func(c *Config) {
		c.Store = s
	}
}

// WithAwaitableStore sets the awaitable store.
func WithAwaitableStore(s awaitable.Store) Option {
	return func(c *Config) {
		c.Awaitables = s
	}
}

// WithPlanner sets the planner.
func WithPlanner(p *planner.OptimizingPlanner) Option {
	return func(c *Config) {
		c.Planner = p
	}
}

// WithExecutor sets the resilient action executor.
func WithExecutor(e *resilience.Executor) Option {
	return func(c *Config) {
		c.Executor = e
	}
}

// WithPublisher sets the lifecycle event publisher.
func WithPublisher(pub event.Publisher) Option {
	return func(c *Config) {
		c.Publisher = pub
	}
}

// WithMetrics sets the metric recorder.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

// WithMaxActions sets the per-process action budget.
func WithMaxActions(n int) Option {
	return func(c *Config) {
		c.MaxActions = n
	}
}

// NewPlatformWithOptions creates a platform with functional options.
func NewPlatformWithOptions(opts ...Option) *Platform {
	config := Config{}
	for _, opt := range opts {
		opt(&config)
	}
	return NewPlatform(config)
}
