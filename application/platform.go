// Package application provides the platform: the orchestration layer that
// runs agent processes through the plan-act loop and exposes the control
// surface (start, status, kill, resume, fork, wait).
package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/felixgeelhaar/goap-go/domain/agent"
	"github.com/felixgeelhaar/goap-go/domain/awaitable"
	"github.com/felixgeelhaar/goap-go/domain/event"
	"github.com/felixgeelhaar/goap-go/domain/process"
	infraevent "github.com/felixgeelhaar/goap-go/infrastructure/event"
	"github.com/felixgeelhaar/goap-go/infrastructure/logging"
	"github.com/felixgeelhaar/goap-go/infrastructure/planner"
	"github.com/felixgeelhaar/goap-go/infrastructure/resilience"
	"github.com/felixgeelhaar/goap-go/infrastructure/statemachine"
	"github.com/felixgeelhaar/goap-go/infrastructure/storage/memory"
	"github.com/felixgeelhaar/goap-go/infrastructure/telemetry"
)

// Platform runs agent processes. Each process executes in its own goroutine
// as the single writer of its state; everything other goroutines observe
// goes through the process store's snapshots.
type Platform struct {
	registry   agent.Registry
	store      process.Store
	awaitables awaitable.Store
	planner    *planner.OptimizingPlanner
	executor   *resilience.Executor
	publisher  event.Publisher
	metrics    *telemetry.Metrics
	maxActions int

	mu      sync.Mutex
	handles map[string]*Handle
}

// Config contains configuration for the platform.
type Config struct {
	Registry   agent.Registry
	Store      process.Store
	Awaitables awaitable.Store
	Planner    *planner.OptimizingPlanner
	Executor   *resilience.Executor
	Publisher  event.Publisher
	Metrics    *telemetry.Metrics
	MaxActions int
}

// NewPlatform creates a platform with the given configuration. Unset
// components fall back to in-memory defaults.
func NewPlatform(config Config) *Platform {
	p := &Platform{
		registry:   config.Registry,
		store:      config.Store,
		awaitables: config.Awaitables,
		planner:    config.Planner,
		executor:   config.Executor,
		publisher:  config.Publisher,
		metrics:    config.Metrics,
		maxActions: config.MaxActions,
		handles:    make(map[string]*Handle),
	}

	if p.registry == nil {
		p.registry = memory.NewAgentRegistry()
	}
	if p.store == nil {
		p.store = memory.NewProcessStore()
	}
	if p.awaitables == nil {
		p.awaitables = memory.NewAwaitableStore()
	}
	if p.planner == nil {
		p.planner = planner.New()
	}
	if p.executor == nil {
		p.executor = resilience.NewDefaultExecutor()
	}
	if p.publisher == nil {
		p.publisher = infraevent.NewBus()
	}
	if p.maxActions <= 0 {
		p.maxActions = process.DefaultMaxActions
	}

	return p
}

// Handle identifies a started process and signals its completion. Done is
// closed when the process loop exits, i.e. when the process is Completed,
// Failed, Stuck, or Killed; a Waiting process keeps its loop parked and its
// handle open.
type Handle struct {
	ProcessID string

	proc   *process.Process
	interp *statemachine.Interpreter
	cancel context.CancelFunc
	done   chan struct{}
	resume chan resumeDelivery

	// bbMu guards the blackboard against Fork copying while the loop
	// merges action results. The loop remains the only writer.
	bbMu sync.Mutex
}

// Done returns a channel closed when the process loop exits.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

type resumeDelivery struct {
	aw       *awaitable.Awaitable
	response awaitable.Response
}

// RegisterAgent adds an agent to the platform's registry.
func (p *Platform) RegisterAgent(a *agent.Agent) error {
	return p.registry.Register(a)
}

// Start creates a process for the named agent, seeds its blackboard with
// the given bindings, and launches the execution loop.
func (p *Platform) Start(ctx context.Context, agentName string, bindings map[string]any) (*Handle, error) {
	ag, ok := p.registry.Get(agentName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", agent.ErrAgentNotFound, agentName)
	}

	proc := process.New(agentName, p.maxActions)
	for name, obj := range bindings {
		proc.Blackboard.Bind(name, obj)
	}

	return p.launch(ctx, proc, ag)
}

// Fork creates a child process seeded with a snapshot copy of the parent's
// blackboard and launches it. An empty agentName reuses the parent's agent.
// The child records its ParentID; killing the parent does not cascade.
func (p *Platform) Fork(ctx context.Context, parentID, agentName string) (*Handle, error) {
	p.mu.Lock()
	parent := p.handles[parentID]
	p.mu.Unlock()
	if parent == nil {
		return nil, fmt.Errorf("%w: %q", process.ErrProcessNotFound, parentID)
	}

	if agentName == "" {
		agentName = parent.proc.AgentName
	}
	ag, ok := p.registry.Get(agentName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", agent.ErrAgentNotFound, agentName)
	}

	parent.bbMu.Lock()
	child := parent.proc.Fork(agentName, p.maxActions)
	parent.bbMu.Unlock()

	return p.launch(ctx, child, ag)
}

// launch persists the new process and starts its loop goroutine.
func (p *Platform) launch(ctx context.Context, proc *process.Process, ag *agent.Agent) (*Handle, error) {
	if err := p.store.Save(ctx, proc.Snapshot()); err != nil {
		return nil, err
	}

	machine, err := statemachine.NewProcessMachine()
	if err != nil {
		return nil, fmt.Errorf("create state machine: %w", err)
	}
	interp := statemachine.NewInterpreter(machine, &statemachine.Context{Process: proc})
	interp.Start()

	loopCtx, cancel := context.WithCancel(context.Background())
	h := &Handle{
		ProcessID: proc.ID,
		proc:      proc,
		interp:    interp,
		cancel:    cancel,
		done:      make(chan struct{}),
		resume:    make(chan resumeDelivery, 1),
	}

	p.mu.Lock()
	p.handles[proc.ID] = h
	p.mu.Unlock()

	go p.runLoop(loopCtx, h, ag)
	return h, nil
}

// Status returns the current snapshot of a process.
func (p *Platform) Status(ctx context.Context, processID string) (process.Snapshot, error) {
	return p.store.Get(ctx, processID)
}

// ListProcesses returns process snapshots matching the filter.
func (p *Platform) ListProcesses(ctx context.Context, filter process.ListFilter) ([]process.Snapshot, error) {
	return p.store.List(ctx, filter)
}

// Kill cancels a process cooperatively. Killing an already-killed process
// is a no-op; killing a completed or failed process fails with
// ErrProcessTerminated.
func (p *Platform) Kill(ctx context.Context, processID string) error {
	snap, err := p.store.Get(ctx, processID)
	if err != nil {
		return err
	}
	switch snap.Status {
	case process.StatusKilled:
		return nil
	case process.StatusCompleted, process.StatusFailed:
		return fmt.Errorf("%w: %s", process.ErrProcessTerminated, snap.Status)
	}

	p.mu.Lock()
	h := p.handles[processID]
	p.mu.Unlock()

	if h != nil && !loopExited(h) {
		h.cancel()
		return nil
	}

	// No live loop (e.g. a stuck process): record the kill directly.
	snap.Status = process.StatusKilled
	if err := p.store.Update(ctx, snap); err != nil {
		return err
	}
	p.publish(processID, event.TypeProcessKilled, nil)
	return nil
}

// Resume delivers an awaitable response to a suspended process. Unknown or
// already-resolved awaitables are rejected with ErrUnknownAwaitable and the
// process state is unchanged; the same applies when the process was killed
// while waiting.
func (p *Platform) Resume(ctx context.Context, response awaitable.Response) error {
	aw, err := p.awaitables.Get(ctx, response.AwaitableID)
	if err != nil {
		return err
	}
	if err := response.ValidateAgainst(aw); err != nil {
		return err
	}

	p.mu.Lock()
	h := p.handles[aw.ProcessID]
	p.mu.Unlock()
	if h == nil || loopExited(h) {
		return fmt.Errorf("%w: process %q is gone", awaitable.ErrUnknownAwaitable, aw.ProcessID)
	}

	// Single-shot: the first resolve wins, concurrent duplicates fail here.
	if _, err := p.awaitables.Resolve(ctx, response.AwaitableID); err != nil {
		return err
	}

	select {
	case h.resume <- resumeDelivery{aw: aw, response: response}:
	default:
		// The buffer holds one delivery and resolve is single-shot, so this
		// cannot happen; guard anyway rather than block the caller.
		return awaitable.ErrAlreadyResolved
	}
	return nil
}

// Pending returns the awaitable a suspended process is parked on, so a
// caller can render it and answer with Resume.
func (p *Platform) Pending(ctx context.Context, processID string) (*awaitable.Awaitable, error) {
	return p.awaitables.GetForProcess(ctx, processID)
}

// Wait blocks until the process loop exits and returns the final snapshot.
// A Waiting process keeps Wait blocked until it is resumed and finishes, or
// killed.
func (p *Platform) Wait(ctx context.Context, processID string) (process.Snapshot, error) {
	p.mu.Lock()
	h := p.handles[processID]
	p.mu.Unlock()

	if h == nil {
		return p.store.Get(ctx, processID)
	}

	select {
	case <-h.done:
		return p.store.Get(ctx, processID)
	case <-ctx.Done():
		return process.Snapshot{}, ctx.Err()
	}
}

// Shutdown cancels all live processes and waits for their loops to exit.
func (p *Platform) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	handles := make([]*Handle, 0, len(p.handles))
	for _, h := range p.handles {
		handles = append(handles, h)
	}
	p.mu.Unlock()

	for _, h := range handles {
		h.cancel()
	}
	for _, h := range handles {
		select {
		case <-h.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.publisher.Close()
}

// loopExited reports whether the handle's loop goroutine has finished.
func loopExited(h *Handle) bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// publish emits a lifecycle event, logging (not propagating) failures: a
// slow subscriber must never stall or fail a process.
func (p *Platform) publish(processID string, eventType event.Type, payload any) {
	ev, err := event.New(processID, eventType, payload)
	if err != nil {
		logging.Warn().
			Add(logging.ProcessID(processID)).
			Add(logging.ErrorField(err)).
			Msg("failed to encode event")
		return
	}
	if err := p.publisher.Publish(context.Background(), ev); err != nil && !errors.Is(err, context.Canceled) {
		logging.Warn().
			Add(logging.ProcessID(processID)).
			Add(logging.ErrorField(err)).
			Msg("failed to publish event")
	}
}
