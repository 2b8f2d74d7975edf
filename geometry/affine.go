package geometry

import (
	"fmt"

	"golang.org/x/image/math/f64"
)

// Transform is anything that can be materialized as an Affine.
type Transform interface {
	AsAffine() Affine
}

// Affine represents a 2D affine transformation. It is stored as an
// f64.Aff3 in row-major order:
//
//	| a  b  tx |
//	| c  d  ty |
//
// which maps (x, y) to (a*x + b*y + tx, c*x + d*y + ty).
//
// The zero value is the degenerate all-zero map; use Identity.
type Affine struct {
	m f64.Aff3
}

// Identity returns the identity transformation.
func Identity() Affine {
	return Affine{m: f64.Aff3{1, 0, 0, 0, 1, 0}}
}

// NewAffine creates an Affine from its linear part and translation.
func NewAffine(a, b, c, d, tx, ty float64) Affine {
	return Affine{m: f64.Aff3{a, b, tx, c, d, ty}}
}

// FromAff3 wraps a raw row-major matrix.
func FromAff3(m f64.Aff3) Affine {
	return Affine{m: m}
}

// Aff3 returns the underlying row-major matrix.
func (a Affine) Aff3() f64.Aff3 {
	return a.m
}

// AsAffine implements Transform.
func (a Affine) AsAffine() Affine {
	return a
}

// Translation returns the translation part.
func (a Affine) Translation() Point {
	return Point{X: a.m[2], Y: a.m[5]}
}

// Apply maps p through the transformation.
func (a Affine) Apply(p Point) Point {
	return Point{
		X: a.m[0]*p.X + a.m[1]*p.Y + a.m[2],
		Y: a.m[3]*p.X + a.m[4]*p.Y + a.m[5],
	}
}

// ApplyVector maps v through the linear part only.
func (a Affine) ApplyVector(v Point) Point {
	return Point{
		X: a.m[0]*v.X + a.m[1]*v.Y,
		Y: a.m[3]*v.X + a.m[4]*v.Y,
	}
}

// Then returns the transformation that applies a first and next second.
func (a Affine) Then(next Transform) Affine {
	n := next.AsAffine().m
	m := a.m
	return Affine{m: f64.Aff3{
		n[0]*m[0] + n[1]*m[3],
		n[0]*m[1] + n[1]*m[4],
		n[0]*m[2] + n[1]*m[5] + n[2],
		n[3]*m[0] + n[4]*m[3],
		n[3]*m[1] + n[4]*m[4],
		n[3]*m[2] + n[4]*m[5] + n[5],
	}}
}

// Det returns the determinant of the linear part.
func (a Affine) Det() float64 {
	return a.m[0]*a.m[4] - a.m[1]*a.m[3]
}

// IsFlip reports whether the transformation reverses orientation.
func (a Affine) IsFlip() bool {
	return a.Det() < 0
}

// Invert returns the inverse transformation.
// Returns false if the linear part is singular.
func (a Affine) Invert() (Affine, bool) {
	det := a.Det()
	if det == 0 {
		return Affine{}, false
	}
	m := a.m
	ia := m[4] / det
	ib := -m[1] / det
	ic := -m[3] / det
	id := m[0] / det
	return NewAffine(ia, ib, ic, id, -(ia*m[2] + ib*m[5]), -(ic*m[2] + id*m[5])), true
}

// ApproxEqual reports whether every coefficient agrees within Epsilon.
func (a Affine) ApproxEqual(b Affine) bool {
	for i := range a.m {
		if !ApproxEqual(a.m[i], b.m[i]) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (a Affine) String() string {
	return fmt.Sprintf("[[%.4f %.4f] [%.4f %.4f]] + (%.4f, %.4f)",
		a.m[0], a.m[1], a.m[3], a.m[4], a.m[2], a.m[5])
}

// Reduce folds transforms in application order: the first transform in
// the list is applied first.
func Reduce(ts ...Transform) Affine {
	acc := Identity()
	for _, t := range ts {
		acc = acc.Then(t)
	}
	return acc
}
