// Package resilience provides resilient action execution patterns using
// fortify.
package resilience

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"

	"github.com/felixgeelhaar/goap-go/domain/action"
)

// Executor runs action bodies with bulkhead, circuit breaker, and retry
// patterns. Action bodies are opaque blocking calls (LLM invocations, tool
// calls); the executor only provides the timeout and cancellation hooks
// around them, never retries non-idempotent actions, and leaves per-action
// retry policy to the action implementation.
type Executor struct {
	bulkhead bulkhead.Bulkhead[action.Result]
	breaker  circuitbreaker.CircuitBreaker[action.Result]
	retry    retry.Retry[action.Result]
	timeout  time.Duration
}

// Config configures the resilient executor.
type Config struct {
	// MaxConcurrent limits concurrent action executions across processes.
	MaxConcurrent int

	// CircuitBreakerThreshold is the number of consecutive failures before
	// opening.
	CircuitBreakerThreshold int

	// CircuitBreakerTimeout is how long the circuit stays open.
	CircuitBreakerTimeout time.Duration

	// RetryMaxAttempts is the maximum number of attempts for idempotent
	// actions.
	RetryMaxAttempts int

	// RetryInitialDelay is the initial delay between retries.
	RetryInitialDelay time.Duration

	// RetryBackoffMultiplier is the exponential backoff multiplier.
	RetryBackoffMultiplier float64

	// DefaultTimeout is the per-invocation execution timeout.
	DefaultTimeout time.Duration
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxConcurrent:           16,
		CircuitBreakerThreshold: 5,
		CircuitBreakerTimeout:   30 * time.Second,
		RetryMaxAttempts:        3,
		RetryInitialDelay:       100 * time.Millisecond,
		RetryBackoffMultiplier:  2.0,
		DefaultTimeout:          60 * time.Second,
	}
}

// NewExecutor creates a new resilient executor.
func NewExecutor(config Config) *Executor {
	maxConcurrent := config.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 16
	}
	threshold := config.CircuitBreakerThreshold
	if threshold <= 0 {
		threshold = 5
	}

	return &Executor{
		bulkhead: bulkhead.New[action.Result](bulkhead.Config{
			MaxConcurrent: maxConcurrent,
		}),
		breaker: circuitbreaker.New[action.Result](circuitbreaker.Config{
			MaxRequests: uint32(maxConcurrent), // #nosec G115 -- bounds checked above
			Interval:    config.CircuitBreakerTimeout,
			Timeout:     config.CircuitBreakerTimeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(threshold) // #nosec G115 -- bounds checked above
			},
		}),
		retry: retry.New[action.Result](retry.Config{
			MaxAttempts:   config.RetryMaxAttempts,
			InitialDelay:  config.RetryInitialDelay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    config.RetryBackoffMultiplier,
		}),
		timeout: config.DefaultTimeout,
	}
}

// NewDefaultExecutor creates an executor with default configuration.
func NewDefaultExecutor() *Executor {
	return NewExecutor(DefaultConfig())
}

// Execute runs an action with resilience patterns applied.
// Composition order: Bulkhead → Timeout → Circuit Breaker → Retry (idempotent only)
func (e *Executor) Execute(ctx context.Context, a action.Action, inv *action.Invocation) (action.Result, error) {
	start := time.Now()

	result, err := e.bulkhead.Execute(ctx, func(ctx context.Context) (action.Result, error) {
		ctx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		return e.breaker.Execute(ctx, func(ctx context.Context) (action.Result, error) {
			if a.Idempotent() {
				return e.retry.Do(ctx, func(ctx context.Context) (action.Result, error) {
					return a.Execute(ctx, inv)
				})
			}
			return a.Execute(ctx, inv)
		})
	})

	if err == nil {
		result.Duration = time.Since(start)
	}
	return result, err
}

// CircuitBreakerState returns the current state of the circuit breaker.
func (e *Executor) CircuitBreakerState() circuitbreaker.State {
	return e.breaker.State()
}
