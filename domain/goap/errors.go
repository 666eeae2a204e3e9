package goap

import (
	"errors"
	"fmt"
)

// Domain errors for the world model.
var (
	// ErrEmptyName indicates an action or goal was constructed without a name.
	ErrEmptyName = errors.New("empty name")

	// ErrNegativeCost indicates an action was constructed with a negative cost.
	ErrNegativeCost = errors.New("action cost must be non-negative")
)

// UnknownAssertionError indicates an effect spec asserted Unknown for a
// condition, which is never meaningful.
type UnknownAssertionError struct {
	Condition string
}

func (e *UnknownAssertionError) Error() string {
	return fmt.Sprintf("effect spec asserts unknown for condition %q", e.Condition)
}
