package action

import (
	"context"

	"github.com/felixgeelhaar/goap-go/domain/goap"
)

// Definition is the concrete Action implementation produced by the Builder.
type Definition struct {
	name          string
	description   string
	preconditions goap.EffectSpec
	effects       goap.EffectSpec
	cost          float64
	value         float64
	idempotent    bool
	handler       Handler
}

// Name returns the action name.
func (d *Definition) Name() string { return d.name }

// Description returns the action description.
func (d *Definition) Description() string { return d.description }

// Preconditions returns the action preconditions.
func (d *Definition) Preconditions() goap.EffectSpec { return d.preconditions }

// Effects returns the action effects.
func (d *Definition) Effects() goap.EffectSpec { return d.effects }

// Cost returns the planning cost.
func (d *Definition) Cost() float64 { return d.cost }

// Value returns the action's utility contribution.
func (d *Definition) Value() float64 { return d.value }

// Idempotent reports whether the action may be retried on failure.
func (d *Definition) Idempotent() bool { return d.idempotent }

// Execute runs the action handler.
func (d *Definition) Execute(ctx context.Context, inv *Invocation) (Result, error) {
	if d.handler == nil {
		return Result{}, ErrNoHandler
	}
	return d.handler(ctx, inv)
}

// Builder provides a fluent API for constructing actions.
type Builder struct {
	def *Definition
	err error
}

// NewBuilder creates a new action builder with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{
		def: &Definition{
			name:          name,
			preconditions: goap.EffectSpec{},
			effects:       goap.EffectSpec{},
			cost:          1,
		},
	}
}

// WithDescription sets the action description.
func (b *Builder) WithDescription(desc string) *Builder {
	if b.err != nil {
		return b
	}
	b.def.description = desc
	return b
}

// Requires adds a precondition.
func (b *Builder) Requires(name string, det goap.ConditionDetermination) *Builder {
	if b.err != nil {
		return b
	}
	if !det.Known() {
		b.err = &goap.UnknownAssertionError{Condition: name}
		return b
	}
	b.def.preconditions[name] = det
	return b
}

// Asserts adds an effect.
func (b *Builder) Asserts(name string, det goap.ConditionDetermination) *Builder {
	if b.err != nil {
		return b
	}
	if !det.Known() {
		b.err = &goap.UnknownAssertionError{Condition: name}
		return b
	}
	b.def.effects[name] = det
	return b
}

// WithCost sets the planning cost.
func (b *Builder) WithCost(cost float64) *Builder {
	if b.err != nil {
		return b
	}
	if cost < 0 {
		b.err = goap.ErrNegativeCost
		return b
	}
	b.def.cost = cost
	return b
}

// WithValue sets the action's utility contribution.
func (b *Builder) WithValue(value float64) *Builder {
	if b.err != nil {
		return b
	}
	b.def.value = value
	return b
}

// Idempotent marks the action as safe to retry.
func (b *Builder) Idempotent() *Builder {
	if b.err != nil {
		return b
	}
	b.def.idempotent = true
	return b
}

// WithHandler sets the action body.
func (b *Builder) WithHandler(handler Handler) *Builder {
	if b.err != nil {
		return b
	}
	b.def.handler = handler
	return b
}

// Build constructs the action definition.
func (b *Builder) Build() (Action, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.def.name == "" {
		return nil, goap.ErrEmptyName
	}
	return b.def, nil
}

// MustBuild constructs the action definition or panics on error.
func (b *Builder) MustBuild() Action {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}
