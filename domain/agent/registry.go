package agent

import "errors"

// Registry errors.
var (
	// ErrAgentNotFound is returned when no agent is registered with the name.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrAgentExists is returned when registering a duplicate agent name.
	ErrAgentExists = errors.New("agent already registered")

	// ErrNoGoals indicates an agent was built with no goals; such an agent
	// could never complete.
	ErrNoGoals = errors.New("agent has no goals")
)

// Registry defines the interface for agent registration and lookup.
// Implementations are in infrastructure.
type Registry interface {
	// Register adds an agent to the registry.
	Register(a *Agent) error

	// Get retrieves an agent by name.
	Get(name string) (*Agent, bool)

	// List returns all registered agents in registration order.
	List() []*Agent

	// Names returns all registered agent names in registration order.
	Names() []string

	// Has checks if an agent is registered.
	Has(name string) bool
}
