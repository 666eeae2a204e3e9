package goap

// Action is the planner's view of an executable step: preconditions that
// must hold before it can run, effects it asserts afterwards, a
// non-negative cost, and the utility it contributes if it lands on the
// winning plan (zero for pure actions; goals carry the payoff).
type Action struct {
	Name          string
	Preconditions EffectSpec
	Effects       EffectSpec
	Cost          float64
	Value         float64
}

// NewAction creates a validated action.
func NewAction(name string, preconditions, effects EffectSpec, cost, value float64) (Action, error) {
	a := Action{
		Name:          name,
		Preconditions: preconditions.Clone(),
		Effects:       effects.Clone(),
		Cost:          cost,
		Value:         value,
	}
	if err := a.Validate(); err != nil {
		return Action{}, err
	}
	return a, nil
}

// Validate checks the action's invariants.
func (a Action) Validate() error {
	if a.Name == "" {
		return ErrEmptyName
	}
	if a.Cost < 0 {
		return ErrNegativeCost
	}
	if err := a.Preconditions.Validate(); err != nil {
		return err
	}
	return a.Effects.Validate()
}

// ApplicableTo reports whether the action's preconditions are satisfied by
// the given state.
func (a Action) ApplicableTo(state WorldState) bool {
	return state.Satisfies(a.Preconditions)
}
