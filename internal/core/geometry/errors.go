package geometry

import "errors"

// Structural errors. These surface at projection or axis construction time,
// never as a silently-wrong boolean.
var (
	// ErrInvalidGeometry indicates a shape violating a structural
	// precondition: a polygon with no vertices, or a zero-length direction
	// where a unit axis is required.
	ErrInvalidGeometry = errors.New("invalid geometry")
)
