package planner

import "github.com/felixgeelhaar/goap-go/domain/goap"

// relevantConditions computes the transitive dependency set of a goal: its
// precondition names, plus the precondition names of every action whose
// effects touch the set, to a fixpoint.
func relevantConditions(actions []goap.Action, goal goap.Goal) map[string]bool {
	relevant := make(map[string]bool, len(goal.Preconditions))
	for name := range goal.Preconditions {
		relevant[name] = true
	}

	for changed := true; changed; {
		changed = false
		for _, a := range actions {
			if !touches(a.Effects, relevant) {
				continue
			}
			for name := range a.Preconditions {
				if !relevant[name] {
					relevant[name] = true
					changed = true
				}
			}
		}
	}
	return relevant
}

// pruneActions filters the action set to those whose effects intersect the
// goal's transitive dependency set, preserving input order. Actions
// unrelated to the goal never appear in a winning plan, so dropping them up
// front shrinks the search space without changing the result.
func pruneActions(actions []goap.Action, relevant map[string]bool) []goap.Action {
	pruned := make([]goap.Action, 0, len(actions))
	for _, a := range actions {
		if touches(a.Effects, relevant) {
			pruned = append(pruned, a)
		}
	}
	return pruned
}

func touches(spec goap.EffectSpec, set map[string]bool) bool {
	for name := range spec {
		if set[name] {
			return true
		}
	}
	return false
}
