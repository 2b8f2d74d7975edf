package tile

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"slices"
	"strings"

	"github.com/gogpu/tiling/geometry"
)

// ProtoTile is a canonical polygon: an ordered ring of points plus a
// parity bit. With parity unset the ring is counterclockwise.
//
// ProtoTile values are immutable; every method that changes the shape or
// its starting point returns a new value.
type ProtoTile struct {
	Points []geometry.Point
	Parity bool
}

// NewProtoTile creates a ProtoTile from a copy of points.
func NewProtoTile(points []geometry.Point) (ProtoTile, error) {
	if len(points) < 3 {
		return ProtoTile{}, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	return ProtoTile{Points: slices.Clone(points)}, nil
}

// Size returns the number of points.
func (t ProtoTile) Size() int {
	return len(t.Points)
}

// Angle returns the interior angle at point i. When parity is set the
// ring runs clockwise, so the measured sweep is complemented.
func (t ProtoTile) Angle(i int) float64 {
	n := len(t.Points)
	prev := t.Points[(i+n-1)%n]
	next := t.Points[(i+1)%n]
	a := geometry.Angle(prev, t.Points[i], next)
	if t.Parity {
		a = geometry.Tau - a
	}
	return geometry.Rad(a)
}

// Angles returns every interior angle in ring order.
func (t ProtoTile) Angles() []float64 {
	angles := make([]float64, len(t.Points))
	for i := range t.Points {
		angles[i] = t.Angle(i)
	}
	return angles
}

// SideLengths returns the length of each edge; side i joins point i to
// point i+1.
func (t ProtoTile) SideLengths() []float64 {
	sides := make([]float64, len(t.Points))
	for i, e := range geometry.Edges(t.Points) {
		sides[i] = e.Start.Distance(e.Stop)
	}
	return sides
}

// SignedArea returns the shoelace area, positive for counterclockwise
// rings.
func (t ProtoTile) SignedArea() float64 {
	return signedArea(t.Points)
}

// Centroid returns the area centroid of the ring.
func (t ProtoTile) Centroid() (geometry.Point, error) {
	return centroid(t.Points)
}

// Reorient returns the same polygon with its ring rotated so that the
// point closest to origin comes first.
func (t ProtoTile) Reorient(origin geometry.Point) ProtoTile {
	argmin := 0
	best := math.Inf(1)
	for i, p := range t.Points {
		if d := p.Distance(origin); d < best {
			argmin, best = i, d
		}
	}
	points := make([]geometry.Point, 0, len(t.Points))
	points = append(points, t.Points[argmin:]...)
	points = append(points, t.Points[:argmin]...)
	return ProtoTile{Points: points, Parity: t.Parity}
}

// Transform maps every point through tr and XORs parity with the
// transform's flip-ness.
func (t ProtoTile) Transform(tr geometry.Transform) ProtoTile {
	a := tr.AsAffine()
	points := make([]geometry.Point, len(t.Points))
	for i, p := range t.Points {
		points[i] = a.Apply(p)
	}
	return ProtoTile{Points: points, Parity: t.Parity != a.IsFlip()}
}

// Contains reports whether p lies inside the ring (even-odd rule).
func (t ProtoTile) Contains(p geometry.Point) bool {
	return contains(t.Points, p)
}

// Distance returns 0 if p is inside, otherwise the distance to the
// nearest edge.
func (t ProtoTile) Distance(p geometry.Point) float64 {
	return distance(t.Points, p)
}

// Equal reports whether t and o have the same shape up to the starting
// point of the ring, compared on interior angles rounded to
// geometry.Precision decimals.
func (t ProtoTile) Equal(o ProtoTile) bool {
	if t.Size() != o.Size() {
		return false
	}
	return slices.Equal(t.canonicalAngles(), o.canonicalAngles())
}

// Hash returns a hash consistent with Equal.
func (t ProtoTile) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, a := range t.canonicalAngles() {
		binary.LittleEndian.PutUint64(buf[:], uint64(a))
		_, _ = h.Write(buf[:]) // fnv.Write never returns an error
	}
	return h.Sum64()
}

// canonicalAngles returns the hashed angle sequence in geometric
// counterclockwise order, rotated to its lexicographically smallest
// starting point.
func (t ProtoTile) canonicalAngles() []int64 {
	n := t.Size()
	seq := make([]int64, n)
	for i := range n {
		j := i
		if t.Parity {
			j = n - 1 - i
		}
		seq[i] = geometry.HashFloat(t.Angle(j), geometry.Precision)
	}
	best := seq
	for shift := 1; shift < n; shift++ {
		candidate := append(slices.Clone(seq[shift:]), seq[:shift]...)
		if slices.Compare(candidate, best) < 0 {
			best = candidate
		}
	}
	return best
}

// String implements fmt.Stringer.
func (t ProtoTile) String() string {
	parts := make([]string, len(t.Points))
	for i, p := range t.Points {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func signedArea(points []geometry.Point) float64 {
	var sum float64
	for _, e := range geometry.Edges(points) {
		sum += e.Start.Cross(e.Stop)
	}
	return sum / 2
}

func centroid(points []geometry.Point) (geometry.Point, error) {
	var area, cx, cy float64
	for _, e := range geometry.Edges(points) {
		cross := e.Start.Cross(e.Stop)
		area += cross
		cx += cross * (e.Start.X + e.Stop.X)
		cy += cross * (e.Start.Y + e.Stop.Y)
	}
	area /= 2
	if math.Abs(area) < geometry.Epsilon {
		return geometry.Point{}, ErrDegenerate
	}
	return geometry.Pt(cx/(6*area), cy/(6*area)), nil
}

func contains(points []geometry.Point, p geometry.Point) bool {
	inside := false
	n := len(points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := points[i], points[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

func distance(points []geometry.Point, p geometry.Point) float64 {
	if contains(points, p) {
		return 0
	}
	best := math.Inf(1)
	for _, e := range geometry.Edges(points) {
		best = math.Min(best, e.Distance(p))
	}
	return best
}
