package geometry

import "math"

// Edge is a directed line segment.
type Edge struct {
	Start, Stop Point
}

// Edges returns the cyclic edges of a ring: points[i] -> points[i+1],
// wrapping from the last point back to the first.
func Edges(points []Point) []Edge {
	n := len(points)
	edges := make([]Edge, n)
	for i, p := range points {
		edges[i] = Edge{Start: p, Stop: points[(i+1)%n]}
	}
	return edges
}

// Reverse returns the edge with its direction flipped.
func (e Edge) Reverse() Edge {
	return Edge{Start: e.Stop, Stop: e.Start}
}

// ClosestPoint returns the point of the segment nearest to p.
func (e Edge) ClosestPoint(p Point) Point {
	d := e.Stop.Sub(e.Start)
	l2 := d.NormSquared()
	if l2 == 0 {
		return e.Start
	}
	t := math.Max(0, math.Min(1, p.Sub(e.Start).Dot(d)/l2))
	return e.Start.Add(d.Mul(t))
}

// Distance returns the distance from p to the segment.
func (e Edge) Distance(p Point) float64 {
	return p.Distance(e.ClosestPoint(p))
}

// Intersects reports whether the two segments share at least one point.
func (e Edge) Intersects(f Edge) bool {
	d1 := orientation(f.Start, f.Stop, e.Start)
	d2 := orientation(f.Start, f.Stop, e.Stop)
	d3 := orientation(e.Start, e.Stop, f.Start)
	d4 := orientation(e.Start, e.Stop, f.Stop)

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	switch {
	case d1 == 0 && onSegment(f, e.Start):
		return true
	case d2 == 0 && onSegment(f, e.Stop):
		return true
	case d3 == 0 && onSegment(e, f.Start):
		return true
	case d4 == 0 && onSegment(e, f.Stop):
		return true
	}
	return false
}

// orientation returns the sign of the turn a -> b -> c, with near-zero
// cross products snapped to 0.
func orientation(a, b, c Point) float64 {
	cross := b.Sub(a).Cross(c.Sub(a))
	if math.Abs(cross) <= Epsilon*Epsilon {
		return 0
	}
	return math.Copysign(1, cross)
}

// onSegment assumes p is collinear with e.
func onSegment(e Edge, p Point) bool {
	return p.X >= math.Min(e.Start.X, e.Stop.X)-Epsilon &&
		p.X <= math.Max(e.Start.X, e.Stop.X)+Epsilon &&
		p.Y >= math.Min(e.Start.Y, e.Stop.Y)-Epsilon &&
		p.Y <= math.Max(e.Start.Y, e.Stop.Y)+Epsilon
}
