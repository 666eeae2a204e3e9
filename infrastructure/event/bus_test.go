package event

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/goap-go/domain/event"
)

func receiveOne(t *testing.T, ch <-chan event.Event) event.Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatal("channel closed before event arrived")
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return event.Event{}
}

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, "proc-1")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	ev, err := event.New("proc-1", event.TypeProcessStarted, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := bus.Publish(ctx, ev); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	got := receiveOne(t, ch)
	if got.Type != event.TypeProcessStarted {
		t.Errorf("event type = %s, want %s", got.Type, event.TypeProcessStarted)
	}
	if got.ProcessID != "proc-1" {
		t.Errorf("process id = %s, want proc-1", got.ProcessID)
	}
}

func TestBus_SubscribeFiltersByProcess(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, "proc-1")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	other, _ := event.New("proc-2", event.TypeProcessCompleted, nil)
	mine, _ := event.New("proc-1", event.TypeProcessCompleted, nil)
	if err := bus.Publish(ctx, other, mine); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	got := receiveOne(t, ch)
	if got.ProcessID != "proc-1" {
		t.Errorf("process id = %s, want proc-1 (events for other processes must be filtered)", got.ProcessID)
	}
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, "")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	a, _ := event.New("proc-1", event.TypeProcessStarted, nil)
	b, _ := event.New("proc-2", event.TypeProcessStarted, nil)
	if err := bus.Publish(ctx, a, b); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	first := receiveOne(t, ch)
	second := receiveOne(t, ch)
	if first.ProcessID == second.ProcessID {
		t.Errorf("expected events from both processes, got %s twice", first.ProcessID)
	}
}

func TestBus_PublishNoEvents(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	if err := bus.Publish(context.Background()); err != nil {
		t.Errorf("Publish() with no events error = %v, want nil", err)
	}
}

func TestBus_ContextCancelUnsubscribes(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := bus.Subscribe(ctx, "proc-1")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected channel to close without delivering events")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after context cancellation")
	}
}

func TestBus_Close(t *testing.T) {
	bus := NewBus()

	ctx := context.Background()
	ch, err := bus.Subscribe(ctx, "")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}

	if _, ok := <-ch; ok {
		t.Error("subscriber channel should be closed after Close()")
	}

	ev, _ := event.New("proc-1", event.TypeProcessStarted, nil)
	if err := bus.Publish(ctx, ev); err != nil {
		t.Errorf("Publish() after Close() error = %v, want nil", err)
	}
}

func TestBus_DropsWhenSubscriberFull(t *testing.T) {
	bus := NewBus(WithSubscriberBuffer(1))
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, "proc-1")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	first, _ := event.New("proc-1", event.TypeProcessStarted, nil)
	second, _ := event.New("proc-1", event.TypeProcessCompleted, nil)

	// Buffer holds one event; the second is dropped instead of blocking.
	if err := bus.Publish(ctx, first, second); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	got := receiveOne(t, ch)
	if got.Type != event.TypeProcessStarted {
		t.Errorf("event type = %s, want %s", got.Type, event.TypeProcessStarted)
	}
	select {
	case ev := <-ch:
		t.Errorf("unexpected extra event %s, want drop", ev.Type)
	default:
	}
}
