package geometry

// Collide reports whether two convex shapes overlap.
//
// The candidate axis set is the union of the axes each shape contributes
// relative to the other; axes are not deduplicated, redundant ones only
// cost extra work. The shapes overlap iff their projections overlap on
// every axis; the first separating axis found proves they do not.
//
// Collide is commutative, and Collide(a, a) is always true. Structural
// errors in either shape abort the call instead of producing a default
// boolean.
func Collide(a, b Geometry) (bool, error) {
	axes, err := candidateAxes(a, b)
	if err != nil {
		return false, err
	}

	for _, axis := range axes {
		pa, err := a.Project(axis)
		if err != nil {
			return false, err
		}
		pb, err := b.Project(axis)
		if err != nil {
			return false, err
		}

		if !pa.Overlaps(pb) {
			return false, nil
		}
	}

	return true, nil
}

// Contain reports whether b lies entirely inside a. It tests the same
// candidate axes as Collide but requires a's projection to enclose b's on
// all of them. Containment boundaries are inclusive, so Contain(a, a) is
// true.
func Contain(a, b Geometry) (bool, error) {
	axes, err := candidateAxes(a, b)
	if err != nil {
		return false, err
	}

	// An empty candidate set means every vertex coincides with the other
	// shape's center (concentric circles, or a point at that center). Such
	// shapes are rotationally symmetric about the shared point, so a single
	// arbitrary direction is enough to compare their radial extents;
	// without it the loop below would never run and containment would hold
	// vacuously.
	if len(axes) == 0 {
		axes = []Vec{V(1, 0)}
	}

	for _, axis := range axes {
		pa, err := a.Project(axis)
		if err != nil {
			return false, err
		}
		pb, err := b.Project(axis)
		if err != nil {
			return false, err
		}

		if !pa.Contains(pb) {
			return false, nil
		}
	}

	return true, nil
}

// candidateAxes collects a.Axes(b) followed by b.Axes(a). The union is
// symmetric in membership even though each side contributes its own subset.
func candidateAxes(a, b Geometry) ([]Vec, error) {
	axesA, err := a.Axes(b)
	if err != nil {
		return nil, err
	}

	axesB, err := b.Axes(a)
	if err != nil {
		return nil, err
	}

	return append(axesA, axesB...), nil
}
