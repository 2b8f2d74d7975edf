package geometry

import (
	"fmt"

	"github.com/golang/geo/r2"
)

// Quadrant names one of the four children of a square.
type Quadrant int

// Quadrants in child order.
const (
	NE Quadrant = iota
	NW
	SE
	SW
)

// String implements fmt.Stringer.
func (q Quadrant) String() string {
	switch q {
	case NE:
		return "NE"
	case NW:
		return "NW"
	case SE:
		return "SE"
	case SW:
		return "SW"
	}
	return fmt.Sprintf("Quadrant(%d)", int(q))
}

// Direction returns the unit offset of the quadrant from a center,
// e.g. (1, 1) for NE.
func (q Quadrant) Direction() Point {
	switch q {
	case NE:
		return Point{X: 1, Y: 1}
	case NW:
		return Point{X: -1, Y: 1}
	case SE:
		return Point{X: 1, Y: -1}
	default:
		return Point{X: -1, Y: -1}
	}
}

// Opposite returns the diagonally opposite quadrant.
func (q Quadrant) Opposite() Quadrant {
	return 3 - q
}

// Bounds is an axis-aligned square given by its center and half side.
type Bounds struct {
	Center Point
	Radius float64
}

// Rect returns the square as an r2.Rect.
func (b Bounds) Rect() r2.Rect {
	side := 2 * b.Radius
	return r2.RectFromCenterSize(b.Center.R2(), r2.Point{X: side, Y: side})
}

// ContainsPoint reports whether p lies in the closed square.
func (b Bounds) ContainsPoint(p Point) bool {
	return b.Rect().ContainsPoint(p.R2())
}

// Clamp returns the point of the square closest to p.
func (b Bounds) Clamp(p Point) Point {
	return FromR2(b.Rect().ClampPoint(p.R2()))
}

// Distance returns the distance from p to the square, 0 inside it.
func (b Bounds) Distance(p Point) float64 {
	return p.Distance(b.Clamp(p))
}

// Corners returns the four vertices counterclockwise from the lower left.
func (b Bounds) Corners() [4]Point {
	var corners [4]Point
	for i, v := range b.Rect().Vertices() {
		corners[i] = FromR2(v)
	}
	return corners
}

// Quadrant returns the child square in direction q.
func (b Bounds) Quadrant(q Quadrant) Bounds {
	half := b.Radius / 2
	return Bounds{
		Center: b.Center.Add(q.Direction().Mul(half)),
		Radius: half,
	}
}

// Split returns the four children in NE, NW, SE, SW order.
func (b Bounds) Split() [4]Bounds {
	return [4]Bounds{b.Quadrant(NE), b.Quadrant(NW), b.Quadrant(SE), b.Quadrant(SW)}
}

// Grow returns the square with twice the radius about the same center.
func (b Bounds) Grow() Bounds {
	return Bounds{Center: b.Center, Radius: 2 * b.Radius}
}

// String implements fmt.Stringer.
func (b Bounds) String() string {
	return fmt.Sprintf("Bounds{%v, r=%.4f}", b.Center, b.Radius)
}
