package config

import (
	"context"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/agent"
	"github.com/felixgeelhaar/goap-go/domain/goap"
)

// BuildAgent converts a declarative agent definition into a runnable agent.
// Action bodies simulate execution: each true effect is bound into the
// blackboard so the binding-derived world state reflects it on the next
// planning pass.
func BuildAgent(spec AgentSpec) (*agent.Agent, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	builder := agent.NewBuilder(spec.Name).WithDescription(spec.Description)

	for _, gs := range spec.Goals {
		goal, err := goap.NewGoal(gs.Name, toEffectSpec(gs.Preconditions), gs.Value)
		if err != nil {
			return nil, err
		}
		builder = builder.WithGoal(goal)
	}

	for _, as := range spec.Actions {
		act, err := buildAction(as)
		if err != nil {
			return nil, err
		}
		builder = builder.WithAction(act)
	}

	return builder.Build()
}

// BuildAgents converts all agents in a platform config.
func BuildAgents(cfg *PlatformConfig) ([]*agent.Agent, error) {
	agents := make([]*agent.Agent, 0, len(cfg.Agents))
	for _, spec := range cfg.Agents {
		a, err := BuildAgent(spec)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}

func buildAction(spec ActionSpec) (action.Action, error) {
	b := action.NewBuilder(spec.Name).
		WithDescription(spec.Description).
		WithCost(spec.Cost).
		WithValue(spec.Value)

	if spec.Idempotent {
		b = b.Idempotent()
	}
	for name, required := range spec.Preconditions {
		b = b.Requires(name, toDetermination(required))
	}
	for name, asserted := range spec.Effects {
		b = b.Asserts(name, toDetermination(asserted))
	}

	effects := spec.Effects
	return b.WithHandler(func(ctx context.Context, inv *action.Invocation) (action.Result, error) {
		bindings := make(map[string]any)
		for name, asserted := range effects {
			if asserted {
				bindings[name] = true
			}
		}
		return action.Result{Bindings: bindings}, nil
	}).Build()
}

func toEffectSpec(m map[string]bool) goap.EffectSpec {
	spec := make(goap.EffectSpec, len(m))
	for name, v := range m {
		spec[name] = toDetermination(v)
	}
	return spec
}

func toDetermination(v bool) goap.ConditionDetermination {
	if v {
		return goap.True
	}
	return goap.False
}
