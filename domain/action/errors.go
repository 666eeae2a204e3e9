package action

import "errors"

// Domain errors for action execution.
var (
	// ErrActionNotFound is returned when a plan names an unregistered action.
	ErrActionNotFound = errors.New("action not found")

	// ErrNoHandler indicates an action was built without a body.
	ErrNoHandler = errors.New("action has no handler")

	// ErrActionExists is returned when registering a duplicate action name.
	ErrActionExists = errors.New("action already registered")
)
