package goap

import "sort"

// EffectSpec maps condition names to required (preconditions) or asserted
// (effects) determinations. Effects may only assert True or False.
type EffectSpec map[string]ConditionDetermination

// Validate checks that the spec only asserts known determinations.
// Preconditions may not require Unknown either: a requirement on an
// unevaluated condition is meaningless.
func (s EffectSpec) Validate() error {
	for name, det := range s {
		if !det.Known() {
			return &UnknownAssertionError{Condition: name}
		}
	}
	return nil
}

// Names returns the condition names in the spec in sorted order.
func (s EffectSpec) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the spec.
func (s EffectSpec) Clone() EffectSpec {
	out := make(EffectSpec, len(s))
	for name, det := range s {
		out[name] = det
	}
	return out
}
