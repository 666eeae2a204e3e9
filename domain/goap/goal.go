package goap

// Goal is a desired world condition set with the value of achieving it.
// A goal is satisfied when every one of its preconditions holds the
// required determination in the reachable world state.
type Goal struct {
	Name          string
	Preconditions EffectSpec
	Value         float64
}

// NewGoal creates a validated goal.
func NewGoal(name string, preconditions EffectSpec, value float64) (Goal, error) {
	g := Goal{
		Name:          name,
		Preconditions: preconditions.Clone(),
		Value:         value,
	}
	if g.Name == "" {
		return Goal{}, ErrEmptyName
	}
	if err := g.Preconditions.Validate(); err != nil {
		return Goal{}, err
	}
	return g, nil
}

// SatisfiedBy reports whether the state meets all the goal's preconditions.
func (g Goal) SatisfiedBy(state WorldState) bool {
	return state.Satisfies(g.Preconditions)
}
