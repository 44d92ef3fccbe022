package particle

import "errors"

var (
	// ErrTrailTooShort indicates a trail capacity below two points.
	ErrTrailTooShort = errors.New("particle: trail needs at least two points")

	// ErrBadSeed indicates an initial position that is not a finite 3-vector.
	ErrBadSeed = errors.New("particle: initial position must be a finite 3-vector")
)
