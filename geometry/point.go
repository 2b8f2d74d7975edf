package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Origin is the zero point.
var Origin = Point{}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Neg returns the point reflected through the origin.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Norm returns the length of the vector.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// NormSquared returns the squared length of the vector.
func (p Point) NormSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Norm()
}

// Arg returns the polar angle of the vector, normalized into [0, 2π).
func (p Point) Arg() float64 {
	return Rad(math.Atan2(p.Y, p.X))
}

// ApproxEqual reports whether both coordinates agree within Epsilon.
func (p Point) ApproxEqual(q Point) bool {
	return ApproxEqual(p.X, q.X) && ApproxEqual(p.Y, q.Y)
}

// Transform maps the point through t.
func (p Point) Transform(t Transform) Point {
	return t.AsAffine().Apply(p)
}

// R2 converts the point to an r2.Point.
func (p Point) R2() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// FromR2 converts an r2.Point.
func FromR2(p r2.Point) Point {
	return Point{X: p.X, Y: p.Y}
}

// Key returns the bucket of p used for approximate map lookups.
func (p Point) Key() Key {
	return Key{
		X: int64(math.Round(p.X / Epsilon)),
		Y: int64(math.Round(p.Y / Epsilon)),
	}
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y)
}

// Angle returns the counterclockwise sweep at b from the ray b->c to the
// ray b->a, normalized into [0, 2π). For a counterclockwise ring with
// a = previous and c = next this is the interior angle at b.
func Angle(a, b, c Point) float64 {
	return Rad(a.Sub(b).Arg() - c.Sub(b).Arg())
}

// Key is an Epsilon-sized bucket of the plane.
type Key struct {
	X, Y int64
}

// Neighborhood returns k and its eight surrounding buckets, k first.
// Two points within Epsilon of each other always share a bucket in the
// neighborhood of either one.
func (k Key) Neighborhood() [9]Key {
	n := [9]Key{k}
	i := 1
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n[i] = Key{X: k.X + dx, Y: k.Y + dy}
			i++
		}
	}
	return n
}
