package process

import "errors"

// Domain errors for process lifecycle and persistence.
var (
	// ErrInvalidTransition indicates a status transition the state machine
	// does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotWaiting indicates a resume was attempted on a process that is
	// not suspended.
	ErrNotWaiting = errors.New("process is not waiting")

	// ErrProcessNotFound is returned when a process does not exist.
	ErrProcessNotFound = errors.New("process not found")

	// ErrProcessExists is returned when saving a duplicate process id.
	ErrProcessExists = errors.New("process already exists")

	// ErrInvalidProcessID is returned for an empty or malformed process id.
	ErrInvalidProcessID = errors.New("invalid process ID")

	// ErrProcessTerminated indicates an operation on a terminal process.
	ErrProcessTerminated = errors.New("process already terminated")
)
