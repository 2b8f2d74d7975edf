package geometry

import (
	"fmt"
	"math"
)

// EuclidKind tags the variant held by a Euclid.
type EuclidKind uint8

const (
	// KindIdentity is the zero value.
	KindIdentity EuclidKind = iota
	KindTranslate
	KindRotate
	KindFlip
	KindComposite
)

// String implements fmt.Stringer.
func (k EuclidKind) String() string {
	switch k {
	case KindIdentity:
		return "identity"
	case KindTranslate:
		return "translate"
	case KindRotate:
		return "rotate"
	case KindFlip:
		return "flip"
	case KindComposite:
		return "composite"
	}
	return fmt.Sprintf("EuclidKind(%d)", uint8(k))
}

// Euclid is an element of the Euclidean group described by its variant
// rather than by a matrix. The zero value is the identity.
type Euclid struct {
	kind   EuclidKind
	vector Point
	angle  float64
	affine Affine
}

// Translate returns a translation by v.
func Translate(v Point) Euclid {
	return Euclid{kind: KindTranslate, vector: v}
}

// Rotate returns a counterclockwise rotation about the origin.
func Rotate(angle float64) Euclid {
	return Euclid{kind: KindRotate, angle: angle}
}

// Flip returns the reflection through the line through the origin at
// the given angle.
func Flip(angle float64) Euclid {
	return Euclid{kind: KindFlip, angle: angle}
}

// Composite wraps an already-materialized affine.
func Composite(a Affine) Euclid {
	return Euclid{kind: KindComposite, affine: a}
}

// Kind returns the variant tag.
func (e Euclid) Kind() EuclidKind {
	return e.kind
}

// AsAffine implements Transform.
func (e Euclid) AsAffine() Affine {
	switch e.kind {
	case KindTranslate:
		return NewAffine(1, 0, 0, 1, e.vector.X, e.vector.Y)
	case KindRotate:
		sin, cos := math.Sincos(e.angle)
		return NewAffine(cos, -sin, sin, cos, 0, 0)
	case KindFlip:
		sin, cos := math.Sincos(2 * e.angle)
		return NewAffine(cos, sin, sin, -cos, 0, 0)
	case KindComposite:
		return e.affine
	}
	return Identity()
}

// Then returns the composite that applies e first and next second.
func (e Euclid) Then(next Transform) Euclid {
	return Composite(e.AsAffine().Then(next))
}

// String implements fmt.Stringer.
func (e Euclid) String() string {
	switch e.kind {
	case KindTranslate:
		return fmt.Sprintf("translate%v", e.vector)
	case KindRotate, KindFlip:
		return fmt.Sprintf("%v(%.2fπ)", e.kind, e.angle/math.Pi)
	case KindComposite:
		return fmt.Sprintf("composite%v", e.affine)
	}
	return "identity"
}
