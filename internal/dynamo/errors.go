package dynamo

import "errors"

// Domain errors for integration.
var (
	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive controller could not meet
	// the tolerance without shrinking the step below its minimum.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")
)
