package dynamo

import "errors"

// Domain errors for engine operations.
var (
	// ErrLinkNotFound indicates a link/couple index outside the chain.
	ErrLinkNotFound = errors.New("dynamo: link not found")

	// ErrInvalidMass indicates a non-positive or non-finite link mass.
	ErrInvalidMass = errors.New("dynamo: mass must be positive and finite")

	// ErrInvalidLength indicates a non-positive or non-finite link length.
	ErrInvalidLength = errors.New("dynamo: length must be positive and finite")

	// ErrInvalidRatio indicates a non-positive or non-finite gear ratio.
	ErrInvalidRatio = errors.New("dynamo: gear ratio must be positive and finite")

	// ErrNonFinite indicates a NaN or Inf control input or state.
	ErrNonFinite = errors.New("dynamo: value is not finite")

	// ErrInvalidTimestep indicates a negative or non-finite timestep.
	ErrInvalidTimestep = errors.New("dynamo: timestep must be finite and non-negative")

	// ErrControlMismatch indicates the number of control inputs does not match the chain.
	ErrControlMismatch = errors.New("dynamo: control inputs do not match couple count")

	// ErrUnstable indicates an integration step produced NaN or Inf.
	ErrUnstable = errors.New("dynamo: integration diverged")

	// ErrUnknownMotor indicates a motor type missing from the catalog.
	ErrUnknownMotor = errors.New("dynamo: unknown motor type")

	// ErrInvalidMotor indicates motor constants that are not strictly positive and finite.
	ErrInvalidMotor = errors.New("dynamo: invalid motor constants")

	// ErrUnknownIntegrator indicates an integrator name with no implementation.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")
)
