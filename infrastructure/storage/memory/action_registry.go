package memory

import (
	"sync"

	"github.com/felixgeelhaar/goap-go/domain/action"
)

// ActionRegistry is an in-memory implementation of action.Registry.
type ActionRegistry struct {
	actions map[string]action.Action
	order   []string
	mu      sync.RWMutex
}

// NewActionRegistry creates a new in-memory action registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{
		actions: make(map[string]action.Action),
	}
}

// Register adds an action to the registry.
func (r *ActionRegistry) Register(a action.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[a.Name()]; exists {
		return action.ErrActionExists
	}
	r.actions[a.Name()] = a
	r.order = append(r.order, a.Name())
	return nil
}

// Get retrieves an action by name.
func (r *ActionRegistry) Get(name string) (action.Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.actions[name]
	return a, ok
}

// List returns all registered actions in registration order.
func (r *ActionRegistry) List() []action.Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]action.Action, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.actions[name])
	}
	return out
}

// Names returns all registered action names in registration order.
func (r *ActionRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Has checks if an action is registered.
func (r *ActionRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.actions[name]
	return ok
}

// Ensure ActionRegistry implements action.Registry
var _ action.Registry = (*ActionRegistry)(nil)
