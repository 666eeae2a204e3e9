package goap

// System bundles the actions and goals available to a single planning
// attempt. It is plain data; registration and discovery live elsewhere.
type System struct {
	Actions []Action
	Goals   []Goal
}

// Goal returns the named goal, if present.
func (s System) Goal(name string) (Goal, bool) {
	for _, g := range s.Goals {
		if g.Name == name {
			return g, true
		}
	}
	return Goal{}, false
}

// Action returns the named action, if present.
func (s System) Action(name string) (Action, bool) {
	for _, a := range s.Actions {
		if a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}
