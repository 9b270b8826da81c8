package geometry

import "github.com/pkg/errors"

// Geometry is any convex shape that can take part in a collision test.
//
// Implementations must be convex; see the package documentation. The
// contract is deliberately small: a shape only needs to project itself onto
// an axis, expose its vertices, and propose candidate separating axes
// relative to another shape.
type Geometry interface {
	// Project returns the interval spanned by the shape along a unit axis.
	Project(axis Vec) (Projection, error)

	// Vertices returns the shape's vertex list. A circle has exactly one
	// vertex: its center.
	Vertices() []Vec

	// Axes returns the candidate separating axes this shape contributes,
	// given the other shape. All returned vectors are normalized.
	Axes(other Geometry) ([]Vec, error)
}

var (
	_ Geometry = Circle{}
	_ Geometry = Polygon{}
)

// Circle is a convex shape defined by a center and a non-negative radius.
type Circle struct {
	center Vec
	radius float64
}

// NewCircle creates a circle.
func NewCircle(center Vec, radius float64) Circle {
	return Circle{center: center, radius: radius}
}

func (c Circle) Center() Vec {
	return c.center
}

func (c Circle) Radius() float64 {
	return c.radius
}

// Project projects the center onto the axis and expands by the radius.
func (c Circle) Project(axis Vec) (Projection, error) {
	d := axis.Dot(c.center)
	return NewProjection(d-c.radius, d+c.radius), nil
}

// Vertices returns the circle's single vertex, its center.
func (c Circle) Vertices() []Vec {
	return []Vec{c.center}
}

// Axes returns the normalized direction from the circle's center to each
// vertex of the other shape. A vertex coinciding with the center has no
// direction and contributes no axis; two circles with coincident centers
// therefore produce an empty axis set rather than a zero-vector normalize.
func (c Circle) Axes(other Geometry) ([]Vec, error) {
	vertices := other.Vertices()
	axes := make([]Vec, 0, len(vertices))

	for _, v := range vertices {
		dir := c.center.Sub(v)
		if dir.IsZero() {
			continue
		}

		axis, err := dir.Normalized()
		if err != nil {
			return nil, err
		}
		axes = append(axes, axis)
	}

	return axes, nil
}

// Polygon is a convex shape defined by an ordered, closed loop of vertices:
// vertex i connects to vertex i+1, and the last connects back to the first.
type Polygon struct {
	vertices []Vec
}

// NewPolygon creates a polygon from an ordered vertex loop. The vertices
// are copied. An empty polygon is constructible but fails with
// ErrInvalidGeometry as soon as projection or axis generation is attempted.
func NewPolygon(vertices ...Vec) Polygon {
	owned := make([]Vec, len(vertices))
	copy(owned, vertices)
	return Polygon{vertices: owned}
}

// Translate returns a copy of the polygon moved by offset.
func (p Polygon) Translate(offset Vec) Polygon {
	moved := make([]Vec, len(p.vertices))
	for i, v := range p.vertices {
		moved[i] = v.Add(offset)
	}
	return Polygon{vertices: moved}
}

// Project folds every vertex projection into a [min, max] interval. With a
// single vertex the interval degenerates to a point, which is valid.
func (p Polygon) Project(axis Vec) (Projection, error) {
	if len(p.vertices) == 0 {
		return Projection{}, errors.Wrap(ErrInvalidGeometry, "polygon has no vertices")
	}

	first := axis.Dot(p.vertices[0])
	proj := NewProjection(first, first)

	for _, v := range p.vertices[1:] {
		d := axis.Dot(v)
		if d < proj.Start() {
			proj.SetStart(d)
		} else if d > proj.End() {
			proj.SetEnd(d)
		}
	}

	return proj, nil
}

func (p Polygon) Vertices() []Vec {
	return p.vertices
}

// Axes returns the normalized normal of every edge. A zero-length edge
// (duplicate adjacent vertices) yields ErrInvalidGeometry rather than a NaN
// axis that would poison every subsequent projection. A single-vertex
// polygon has no edges and contributes no axes.
func (p Polygon) Axes(other Geometry) ([]Vec, error) {
	if len(p.vertices) == 0 {
		return nil, errors.Wrap(ErrInvalidGeometry, "polygon has no vertices")
	}
	if len(p.vertices) == 1 {
		return nil, nil
	}

	axes := make([]Vec, 0, len(p.vertices))

	for i, this := range p.vertices {
		next := p.vertices[(i+1)%len(p.vertices)]

		axis, err := next.Sub(this).Perp().Normalized()
		if err != nil {
			return nil, errors.Wrapf(err, "zero-length edge at vertex %d", i)
		}
		axes = append(axes, axis)
	}

	return axes, nil
}
