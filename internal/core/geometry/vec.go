package geometry

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Vec is a 2-D vector with float64 components.
type Vec struct {
	X, Y float64
}

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

func (v Vec) Add(other Vec) Vec {
	v.X += other.X
	v.Y += other.Y
	return v
}

func (v Vec) Sub(other Vec) Vec {
	v.X -= other.X
	v.Y -= other.Y
	return v
}

func (v Vec) Scale(s float64) Vec {
	v.X *= s
	v.Y *= s
	return v
}

// Dot returns the dot product, i.e. the scalar projection of v onto a unit
// direction when other is normalized.
func (v Vec) Dot(other Vec) float64 {
	return v.X*other.X + v.Y*other.Y
}

func (v Vec) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Perp returns v rotated 90 degrees counter-clockwise. For a polygon edge
// this is the outward-or-inward normal; SAT only needs the direction.
func (v Vec) Perp() Vec {
	return Vec{X: -v.Y, Y: v.X}
}

// IsZero reports whether both components are exactly zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalized returns the unit vector pointing in the direction of v. A
// zero-length vector has no direction and yields ErrInvalidGeometry instead
// of NaN components.
func (v Vec) Normalized() (Vec, error) {
	length := v.Length()
	if length == 0 {
		return Vec{}, errors.Wrap(ErrInvalidGeometry, "cannot normalize zero-length vector")
	}
	v.X /= length
	v.Y /= length
	return v, nil
}

func (v Vec) String() string {
	return fmt.Sprintf("vec(%v, %v)", v.X, v.Y)
}
