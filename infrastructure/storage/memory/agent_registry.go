package memory

import (
	"sync"

	"github.com/felixgeelhaar/goap-go/domain/agent"
)

// AgentRegistry is an in-memory implementation of agent.Registry. Agents are
// immutable once built, so the registry hands out the registered pointers
// directly.
type AgentRegistry struct {
	agents map[string]*agent.Agent
	order  []string
	mu     sync.RWMutex
}

// NewAgentRegistry creates a new in-memory agent registry.
func NewAgentRegistry() *AgentRegistry {
	return &AgentRegistry{
		agents: make(map[string]*agent.Agent),
	}
}

// Register adds an agent to the registry.
func (r *AgentRegistry) Register(a *agent.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.agents[a.Name()]; exists {
		return agent.ErrAgentExists
	}
	r.agents[a.Name()] = a
	r.order = append(r.order, a.Name())
	return nil
}

// Get retrieves an agent by name.
func (r *AgentRegistry) Get(name string) (*agent.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.agents[name]
	return a, ok
}

// List returns all registered agents in registration order.
func (r *AgentRegistry) List() []*agent.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*agent.Agent, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.agents[name])
	}
	return out
}

// Names returns all registered agent names in registration order.
func (r *AgentRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Has checks if an agent is registered.
func (r *AgentRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.agents[name]
	return ok
}

// Ensure AgentRegistry implements agent.Registry
var _ agent.Registry = (*AgentRegistry)(nil)
