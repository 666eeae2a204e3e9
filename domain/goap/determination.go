// Package goap provides the world model for goal-oriented action planning:
// tri-state conditions, immutable world states, actions, goals, and plans.
package goap

// ConditionDetermination is the tri-state evaluation of a named condition.
type ConditionDetermination int

const (
	// False means the condition is known not to hold.
	False ConditionDetermination = iota

	// True means the condition is known to hold.
	True

	// Unknown means the condition has not been evaluated yet, typically
	// because evaluation is expensive. It never means "contradiction".
	Unknown
)

// String returns the lowercase name of the determination.
func (d ConditionDetermination) String() string {
	switch d {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// Known reports whether the determination is True or False.
func (d ConditionDetermination) Known() bool {
	return d == True || d == False
}
