package physics

import "errors"

var (
	// ErrInvalidArgument is raised (via panic) for arguments no caller should
	// ever pass, such as a zero divisor.
	ErrInvalidArgument = errors.New("physics: invalid argument")

	// ErrInvalidMass is returned when a body or attractor is created with a
	// mass that is not a positive finite number.
	ErrInvalidMass = errors.New("physics: mass must be positive")

	// ErrInvalidForceLaw is returned for force-law parameters that cannot
	// bound the inverse-square denominator.
	ErrInvalidForceLaw = errors.New("physics: invalid force law")
)
