package statemachine

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/goap-go/domain/process"
)

func newInterp(t *testing.T) (*Interpreter, *process.Process) {
	t.Helper()
	machine, err := NewProcessMachine()
	if err != nil {
		t.Fatalf("NewProcessMachine() error: %v", err)
	}
	p := process.New("journalist", 5)
	interp := NewInterpreter(machine, &Context{Process: p})
	interp.Start()
	return interp, p
}

func TestInterpreter_HappyPath(t *testing.T) {
	interp, p := newInterp(t)

	if got := interp.Status(); got != process.StatusNotStarted {
		t.Fatalf("initial Status() = %q, want %q", got, process.StatusNotStarted)
	}

	if err := interp.Transition(process.StatusRunning, TransitionPayload{}); err != nil {
		t.Fatalf("Transition(running) error: %v", err)
	}
	if p.Status != process.StatusRunning {
		t.Errorf("process status = %q, want %q", p.Status, process.StatusRunning)
	}

	if err := interp.Transition(process.StatusCompleted, TransitionPayload{Goal: "storyPublished"}); err != nil {
		t.Fatalf("Transition(completed) error: %v", err)
	}
	if !interp.IsTerminal() {
		t.Error("IsTerminal() = false after completion")
	}
	if p.CompletedGoal != "storyPublished" {
		t.Errorf("CompletedGoal = %q, want storyPublished", p.CompletedGoal)
	}
}

func TestInterpreter_SuspendAndResume(t *testing.T) {
	interp, p := newInterp(t)
	_ = interp.Transition(process.StatusRunning, TransitionPayload{})

	if err := interp.Transition(process.StatusWaiting, TransitionPayload{Reason: "awaiting confirmation"}); err != nil {
		t.Fatalf("Transition(waiting) error: %v", err)
	}
	if p.Status != process.StatusWaiting {
		t.Errorf("process status = %q, want %q", p.Status, process.StatusWaiting)
	}

	if err := interp.Transition(process.StatusRunning, TransitionPayload{}); err != nil {
		t.Fatalf("Transition(running) after waiting error: %v", err)
	}
	if p.Status != process.StatusRunning {
		t.Errorf("process status = %q, want %q", p.Status, process.StatusRunning)
	}
}

func TestInterpreter_InvalidTransition(t *testing.T) {
	interp, _ := newInterp(t)

	err := interp.Transition(process.StatusCompleted, TransitionPayload{})
	if !errors.Is(err, process.ErrInvalidTransition) {
		t.Errorf("Transition(not_started -> completed) err = %v, want %v", err, process.ErrInvalidTransition)
	}
}

func TestInterpreter_KillFromAnyNonTerminal(t *testing.T) {
	for _, from := range []process.Status{process.StatusNotStarted, process.StatusRunning, process.StatusWaiting, process.StatusStuck} {
		t.Run(string(from), func(t *testing.T) {
			interp, p := newInterp(t)
			if from != process.StatusNotStarted {
				if err := interp.ResumeFrom(from); err != nil {
					t.Fatalf("ResumeFrom(%q) error: %v", from, err)
				}
				p.Status = from
			}

			if err := interp.Transition(process.StatusKilled, TransitionPayload{Reason: "cancelled"}); err != nil {
				t.Fatalf("Transition(killed) from %q error: %v", from, err)
			}
			if p.Status != process.StatusKilled {
				t.Errorf("process status = %q, want %q", p.Status, process.StatusKilled)
			}
		})
	}
}

func TestInterpreter_ResumeFromWaiting(t *testing.T) {
	interp, p := newInterp(t)
	// Simulate a process restored after suspension.
	p.Status = process.StatusWaiting
	if err := interp.ResumeFrom(process.StatusWaiting); err != nil {
		t.Fatalf("ResumeFrom(waiting) error: %v", err)
	}
	if got := interp.Status(); got != process.StatusWaiting {
		t.Fatalf("Status() after restore = %q, want %q", got, process.StatusWaiting)
	}

	if err := interp.Transition(process.StatusRunning, TransitionPayload{}); err != nil {
		t.Fatalf("Transition(running) error: %v", err)
	}
	if p.Status != process.StatusRunning {
		t.Errorf("process status = %q, want %q", p.Status, process.StatusRunning)
	}
}
