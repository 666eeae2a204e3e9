package goap

import (
	"sort"
	"strings"
)

// WorldState is an immutable snapshot mapping condition names to their
// determinations. All derived operations return new states; a WorldState is
// never mutated after construction, so states can be shared freely between
// search nodes.
type WorldState struct {
	conditions map[string]ConditionDetermination
}

// NewWorldState creates a world state from the given conditions.
func NewWorldState(conditions map[string]ConditionDetermination) WorldState {
	m := make(map[string]ConditionDetermination, len(conditions))
	for name, det := range conditions {
		m[name] = det
	}
	return WorldState{conditions: m}
}

// EmptyWorldState returns a state with no conditions.
func EmptyWorldState() WorldState {
	return WorldState{conditions: map[string]ConditionDetermination{}}
}

// Determination returns the recorded determination for a condition.
// Conditions absent from the state are Unknown.
func (w WorldState) Determination(name string) ConditionDetermination {
	if det, ok := w.conditions[name]; ok {
		return det
	}
	return Unknown
}

// Has reports whether the state records the condition at all.
func (w WorldState) Has(name string) bool {
	_, ok := w.conditions[name]
	return ok
}

// Len returns the number of recorded conditions.
func (w WorldState) Len() int {
	return len(w.conditions)
}

// Names returns all recorded condition names in sorted order.
func (w WorldState) Names() []string {
	names := make([]string, 0, len(w.conditions))
	for name := range w.conditions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownConditions returns the names of all conditions currently Unknown,
// in sorted order.
func (w WorldState) UnknownConditions() []string {
	var names []string
	for name, det := range w.conditions {
		if det == Unknown {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// WithVariant returns a new state with the single named condition forced to
// the given determination. Used to explore both branches of an unknown
// condition without mutating the original.
func (w WorldState) WithVariant(name string, det ConditionDetermination) WorldState {
	m := make(map[string]ConditionDetermination, len(w.conditions)+1)
	for k, v := range w.conditions {
		m[k] = v
	}
	m[name] = det
	return WorldState{conditions: m}
}

// Apply returns a new state where the effects overwrite matching conditions.
func (w WorldState) Apply(effects EffectSpec) WorldState {
	m := make(map[string]ConditionDetermination, len(w.conditions)+len(effects))
	for k, v := range w.conditions {
		m[k] = v
	}
	for k, v := range effects {
		m[k] = v
	}
	return WorldState{conditions: m}
}

// Satisfies reports whether every condition in the spec holds the required
// determination in this state.
func (w WorldState) Satisfies(spec EffectSpec) bool {
	for name, det := range spec {
		if w.Determination(name) != det {
			return false
		}
	}
	return true
}

// Equal reports whether two states record identical determinations.
func (w WorldState) Equal(other WorldState) bool {
	if len(w.conditions) != len(other.conditions) {
		return false
	}
	for name, det := range w.conditions {
		if o, ok := other.conditions[name]; !ok || o != det {
			return false
		}
	}
	return true
}

// Key returns a canonical string encoding of the state, used to deduplicate
// search nodes.
func (w WorldState) Key() string {
	names := w.Names()
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(w.conditions[name].String())
	}
	return b.String()
}

// String returns a human-readable rendering of the state.
func (w WorldState) String() string {
	return "{" + w.Key() + "}"
}
