package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/goap"
)

func testAction(t *testing.T, name string) action.Action {
	t.Helper()
	a, err := action.NewBuilder(name).
		Asserts("done", goap.True).
		WithHandler(func(_ context.Context, _ *action.Invocation) (action.Result, error) {
			return action.Result{}, nil
		}).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return a
}

func TestActionRegistry_RegisterAndGet(t *testing.T) {
	reg := NewActionRegistry()

	if err := reg.Register(testAction(t, "draft")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, ok := reg.Get("draft")
	if !ok {
		t.Fatal("Get() did not find registered action")
	}
	if got.Name() != "draft" {
		t.Errorf("Name() = %s, want draft", got.Name())
	}

	if !reg.Has("draft") {
		t.Error("Has() = false, want true")
	}
	if reg.Has("missing") {
		t.Error("Has(missing) = true, want false")
	}
}

func TestActionRegistry_RegisterDuplicate(t *testing.T) {
	reg := NewActionRegistry()

	if err := reg.Register(testAction(t, "draft")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	err := reg.Register(testAction(t, "draft"))
	if !errors.Is(err, action.ErrActionExists) {
		t.Errorf("Register() duplicate error = %v, want ErrActionExists", err)
	}
}

func TestActionRegistry_ListOrder(t *testing.T) {
	reg := NewActionRegistry()

	for _, name := range []string{"gather", "draft", "publish"} {
		if err := reg.Register(testAction(t, name)); err != nil {
			t.Fatalf("Register(%s) error = %v", name, err)
		}
	}

	names := reg.Names()
	want := []string{"gather", "draft", "publish"}
	if len(names) != len(want) {
		t.Fatalf("Names() len = %d, want %d", len(names), len(want))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("Names()[%d] = %s, want %s", i, names[i], name)
		}
	}

	actions := reg.List()
	if len(actions) != 3 {
		t.Fatalf("List() len = %d, want 3", len(actions))
	}
	for i, name := range want {
		if actions[i].Name() != name {
			t.Errorf("List()[%d].Name() = %s, want %s", i, actions[i].Name(), name)
		}
	}
}
