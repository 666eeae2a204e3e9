package application

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/agent"
	"github.com/felixgeelhaar/goap-go/domain/goap"
	"github.com/felixgeelhaar/goap-go/domain/process"
	infraevent "github.com/felixgeelhaar/goap-go/infrastructure/event"
	"github.com/felixgeelhaar/goap-go/infrastructure/planner"
	"github.com/felixgeelhaar/goap-go/infrastructure/resilience"
	"github.com/felixgeelhaar/goap-go/infrastructure/storage/memory"
	"github.com/felixgeelhaar/goap-go/infrastructure/telemetry"
)

func TestNewPlatformWithOptions(t *testing.T) {
	registry := memory.NewAgentRegistry()
	store := memory.NewProcessStore()
	awaitables := memory.NewAwaitableStore()

	// spin asserts done but never binds it, so the loop replans until the
	// injected budget stops it.
	spin := action.NewBuilder("spin").
		Asserts("done", goap.True).
		WithHandler(func(ctx context.Context, inv *action.Invocation) (action.Result, error) {
			return action.Result{}, nil
		}).
		MustBuild()

	bus := infraevent.NewBus()
	metrics, err := telemetry.NewMetrics()
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	p := NewPlatformWithOptions(
		WithRegistry(registry),
		WithProcessStore(store),
		WithAwaitableStore(awaitables),
		WithPlanner(planner.New(planner.WithMaxNodes(100))),
		WithExecutor(resilience.NewDefaultExecutor()),
		WithPublisher(bus),
		WithMetrics(metrics),
		WithMaxActions(2),
	)
	defer func() { _ = p.Shutdown(context.Background()) }()

	ag := agent.NewBuilder("spinner").
		WithAction(spin).
		WithGoal(mustGoal(t, "finished", "done")).
		MustBuild()
	if err := p.RegisterAgent(ag); err != nil {
		t.Fatalf("RegisterAgent: %v", err)
	}
	if !registry.Has("spinner") {
		t.Fatal("injected registry does not hold the registered agent")
	}

	h, err := p.Start(context.Background(), "spinner", nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	snap, err := p.Wait(context.Background(), h.ProcessID)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}

	if snap.Status != process.StatusStuck {
		t.Fatalf("Status = %s, want %s", snap.Status, process.StatusStuck)
	}
	if snap.FailureReason != ReasonBudgetExceeded {
		t.Errorf("FailureReason = %q, want %q", snap.FailureReason, ReasonBudgetExceeded)
	}
	if snap.ActionsExecuted != 2 {
		t.Errorf("ActionsExecuted = %d, want the injected budget of 2", snap.ActionsExecuted)
	}

	// The snapshot must have gone through the injected store.
	direct, err := store.Get(context.Background(), h.ProcessID)
	if err != nil {
		t.Fatalf("store.Get: %v", err)
	}
	if direct.Status != process.StatusStuck {
		t.Errorf("injected store status = %s, want %s", direct.Status, process.StatusStuck)
	}
}

func TestNewPlatformWithOptions_Defaults(t *testing.T) {
	p := NewPlatformWithOptions()
	defer func() { _ = p.Shutdown(context.Background()) }()

	if _, err := p.Start(context.Background(), "nobody", nil); !errors.Is(err, agent.ErrAgentNotFound) {
		t.Fatalf("Start(unknown) error = %v, want ErrAgentNotFound", err)
	}
}
