// Package api exports. This file provides the fluent builders.
package api

import (
	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/agent"
)

// ActionBuilder provides a fluent API for constructing actions.
type ActionBuilder = action.Builder

// AgentBuilder assembles an agent from actions, goals, and evaluators.
type AgentBuilder = agent.Builder

// NewActionBuilder creates an action builder with the given name.
func NewActionBuilder(name string) *ActionBuilder {
	return action.NewBuilder(name)
}

// NewAgentBuilder creates an agent builder with the given name.
func NewAgentBuilder(name string) *AgentBuilder {
	return agent.NewBuilder(name)
}
