package condition

import "errors"

// Domain errors for condition evaluation.
var (
	// ErrConditionNotFound indicates no evaluator is registered for the name.
	ErrConditionNotFound = errors.New("condition not found")

	// ErrNoEvaluator indicates an evaluator was constructed without a function.
	ErrNoEvaluator = errors.New("condition has no evaluator function")

	// ErrEvaluationFailed indicates a forced evaluation errored. It surfaces
	// as a planning failure for the attempt that triggered it, never as a
	// silent Unknown.
	ErrEvaluationFailed = errors.New("condition evaluation failed")

	// ErrIndeterminate indicates a forced evaluation returned Unknown,
	// which the contract forbids.
	ErrIndeterminate = errors.New("forced evaluation returned unknown")
)
