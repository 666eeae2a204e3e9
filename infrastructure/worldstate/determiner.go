// Package worldstate provides the blackboard-backed world state determiner:
// binding-derived presence conditions plus registered evaluators, with
// forced-evaluation bookkeeping for diagnostics.
package worldstate

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/goap-go/domain/blackboard"
	"github.com/felixgeelhaar/goap-go/domain/condition"
	"github.com/felixgeelhaar/goap-go/domain/goap"
)

// Determiner derives a world state from a process's blackboard. Two sources
// contribute conditions:
//
//   - every blackboard binding name contributes `name -> True` (an object is
//     bound under that name), and each referenced name with no binding
//     contributes False;
//   - registered evaluators contribute their own determination, which may be
//     Unknown for expensive conditions until the planner forces them.
//
// Evaluator results win over binding-derived presence when both exist for
// the same name.
type Determiner struct {
	bb         *blackboard.Blackboard
	evaluators map[string]condition.Evaluator
	referenced map[string]bool

	forcedNames []string
}

// New creates a determiner over the given blackboard.
func New(bb *blackboard.Blackboard, evaluators []condition.Evaluator, referenced []string) *Determiner {
	evals := make(map[string]condition.Evaluator, len(evaluators))
	for _, e := range evaluators {
		evals[e.Name()] = e
	}
	refs := make(map[string]bool, len(referenced))
	for _, name := range referenced {
		refs[name] = true
	}
	return &Determiner{
		bb:         bb,
		evaluators: evals,
		referenced: refs,
	}
}

// DetermineWorldState snapshots the current blackboard-derived conditions.
// Evaluators run in their lazy mode: an Unknown result stays Unknown in the
// snapshot, deferring the expensive evaluation to a forced call.
func (d *Determiner) DetermineWorldState(ctx context.Context) (goap.WorldState, error) {
	conditions := make(map[string]goap.ConditionDetermination, len(d.referenced)+len(d.evaluators))

	for name := range d.referenced {
		if _, ok := d.bb.Get(name); ok {
			conditions[name] = goap.True
		} else {
			conditions[name] = goap.False
		}
	}

	for name, eval := range d.evaluators {
		det, err := eval.Evaluate(ctx, d.bb)
		if err != nil {
			return goap.WorldState{}, fmt.Errorf("evaluate condition %q: %w", name, err)
		}
		conditions[name] = det
	}

	return goap.NewWorldState(conditions), nil
}

// DetermineCondition forces a fresh evaluation of exactly one condition.
// The result is recorded for diagnostics but never cached: the next
// DetermineWorldState re-evaluates from scratch. A forced call must come
// back concrete; an Unknown result is a contract violation by the evaluator.
func (d *Determiner) DetermineCondition(ctx context.Context, name string) (goap.ConditionDetermination, error) {
	eval, ok := d.evaluators[name]
	if !ok {
		return goap.Unknown, fmt.Errorf("%w: %q", condition.ErrConditionNotFound, name)
	}

	d.forcedNames = append(d.forcedNames, name)

	evaluate := eval.Evaluate
	if forcer, ok := eval.(condition.Forcer); ok {
		evaluate = forcer.Force
	}

	det, err := evaluate(ctx, d.bb)
	if err != nil {
		return goap.Unknown, fmt.Errorf("%w: %q: %v", condition.ErrEvaluationFailed, name, err)
	}
	if !det.Known() {
		return goap.Unknown, fmt.Errorf("%w: %q", condition.ErrIndeterminate, name)
	}
	return det, nil
}

// CostHint reports the evaluator's cost hint, implementing the planner's
// CostHinter. Unregistered names hint zero.
func (d *Determiner) CostHint(name string) float64 {
	if eval, ok := d.evaluators[name]; ok {
		return eval.CostHint()
	}
	return 0
}

// ForcedEvaluations returns the names forced so far, in call order.
func (d *Determiner) ForcedEvaluations() []string {
	out := make([]string, len(d.forcedNames))
	copy(out, d.forcedNames)
	return out
}
