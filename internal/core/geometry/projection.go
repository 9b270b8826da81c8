package geometry

// Projection is the closed interval a shape occupies on a 1-D axis.
//
// The invariant start <= end holds at all times. The constructor orders its
// inputs, and both setters swap the stored endpoints if an update would
// invert them. That swap means SetStart can effectively become a SetEnd
// when the new start exceeds the old end; this self-correcting behavior is
// intentional, not an error.
type Projection struct {
	start, end float64
}

// NewProjection builds a projection from two endpoints in either order.
func NewProjection(a, b float64) Projection {
	if a > b {
		a, b = b, a
	}
	return Projection{start: a, end: b}
}

func (p Projection) Start() float64 {
	return p.start
}

func (p Projection) End() float64 {
	return p.end
}

// SetStart updates the start point, swapping endpoints if the new start
// exceeds the current end.
func (p *Projection) SetStart(start float64) {
	p.start = start
	if p.start > p.end {
		p.start, p.end = p.end, p.start
	}
}

// SetEnd updates the end point, swapping endpoints if the new end precedes
// the current start.
func (p *Projection) SetEnd(end float64) {
	p.end = end
	if p.end < p.start {
		p.start, p.end = p.end, p.start
	}
}

// Overlaps reports whether the two intervals share more than a boundary
// point. Intervals that touch at exactly one endpoint do NOT overlap; at
// exact boundary contact the tie breaks toward "not colliding".
func (p Projection) Overlaps(other Projection) bool {
	return !(p.start >= other.end || p.end <= other.start)
}

// Contains reports whether other lies entirely within p. Boundaries are
// inclusive, so equal intervals contain each other.
func (p Projection) Contains(other Projection) bool {
	return p.start <= other.start && p.end >= other.end
}
