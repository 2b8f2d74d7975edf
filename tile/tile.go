package tile

import (
	"math"
	"slices"
	"strings"

	"github.com/gogpu/tiling/geometry"
)

// Tile is a placed polygon. Two tiles are the same tile when their
// centroids agree within geometry.Epsilon.
type Tile struct {
	Points   []geometry.Point
	Centroid geometry.Point
	Parity   bool
}

// NewTile places a copy of proto with the given parity.
func NewTile(proto ProtoTile, parity bool) (Tile, error) {
	c, err := proto.Centroid()
	if err != nil {
		return Tile{}, err
	}
	return Tile{
		Points:   slices.Clone(proto.Points),
		Centroid: c,
		Parity:   parity,
	}, nil
}

// Size returns the number of points.
func (t Tile) Size() int {
	return len(t.Points)
}

// Key returns the centroid, the tile's identity.
func (t Tile) Key() geometry.Point {
	return t.Centroid
}

// Equal reports whether both tiles have the same centroid.
func (t Tile) Equal(o Tile) bool {
	return t.Centroid.ApproxEqual(o.Centroid)
}

// Edges returns the ring's edges in point order.
func (t Tile) Edges() []geometry.Edge {
	return geometry.Edges(t.Points)
}

// Contains reports whether p lies inside the tile (even-odd rule).
func (t Tile) Contains(p geometry.Point) bool {
	return contains(t.Points, p)
}

// Distance returns 0 if p is inside, otherwise the distance to the
// nearest edge.
func (t Tile) Distance(p geometry.Point) float64 {
	return distance(t.Points, p)
}

// ClosestEdge returns the edge nearest to p. With parity set the edge is
// reversed, so that walking from Start to Stop keeps the tile on the
// same side regardless of reflection.
func (t Tile) ClosestEdge(p geometry.Point) geometry.Edge {
	edges := t.Edges()
	best := edges[0]
	bestDist := math.Inf(1)
	for _, e := range edges {
		if d := e.Distance(p); d < bestDist {
			bestDist, best = d, e
		}
	}
	if t.Parity {
		return best.Reverse()
	}
	return best
}

// Intersects reports whether the tile and the square b overlap.
func (t Tile) Intersects(b geometry.Bounds) bool {
	for _, p := range t.Points {
		if b.ContainsPoint(p) {
			return true
		}
	}
	if t.Contains(b.Center) {
		return true
	}
	corners := b.Corners()
	sides := geometry.Edges(corners[:])
	for _, e := range t.Edges() {
		for _, s := range sides {
			if e.Intersects(s) {
				return true
			}
		}
	}
	return false
}

// Transform maps the points and centroid through tr and XORs parity with
// the transform's flip-ness.
func (t Tile) Transform(tr geometry.Transform) Tile {
	a := tr.AsAffine()
	points := make([]geometry.Point, len(t.Points))
	for i, p := range t.Points {
		points[i] = a.Apply(p)
	}
	return Tile{
		Points:   points,
		Centroid: a.Apply(t.Centroid),
		Parity:   t.Parity != a.IsFlip(),
	}
}

// String implements fmt.Stringer.
func (t Tile) String() string {
	parts := make([]string, len(t.Points))
	for i, p := range t.Points {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}
