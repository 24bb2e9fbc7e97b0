package mechanics

import "errors"

// Domain errors returned by constructors and setters.
var (
	// ErrInvalidMass indicates a non-positive or non-finite mass.
	ErrInvalidMass = errors.New("mechanics: mass must be positive and finite")

	// ErrInvalidLength indicates a non-positive or non-finite length.
	ErrInvalidLength = errors.New("mechanics: length must be positive and finite")

	// ErrParameterBounds indicates a parameter value is outside its valid range.
	ErrParameterBounds = errors.New("mechanics: parameter out of valid bounds")

	// ErrInvalidState indicates a NaN or Inf in a position or velocity.
	ErrInvalidState = errors.New("mechanics: invalid state (NaN or Inf detected)")

	// ErrDegenerateSpring indicates a spring without two distinct endpoints.
	ErrDegenerateSpring = errors.New("mechanics: spring needs two distinct bodies")
)
