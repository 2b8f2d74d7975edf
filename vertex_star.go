package tiling

import (
	"fmt"
	"slices"
	"sort"

	"github.com/gogpu/tiling/atlas"
	"github.com/gogpu/tiling/geometry"
	"github.com/gogpu/tiling/tile"
)

// VertexStar is a placed vertex of the tiling: a proto vertex star moved
// to Point, optionally mirrored, and rotated so that link 0 points at
// Rotation.
//
// The link points are the far ends of the edges leaving the vertex, in
// proto order. For an unflipped star proto order is counterclockwise;
// for a flipped star it is clockwise.
type VertexStar struct {
	Point      geometry.Point
	ProtoIndex int
	Parity     bool
	Rotation   float64

	link      []geometry.Point
	linkIndex map[geometry.Key][]int
	linkArgs  []float64 // sorted, with wrap-around sentinels at both ends
	linkOrder []int     // linkOrder[i] is the link at linkArgs[i]
}

// ReferenceFrame returns the linear part of a vertex star's placement.
// The frame maps the proto link 0 onto the direction rotation.
func ReferenceFrame(parity bool, rotation float64) geometry.Affine {
	if parity {
		return geometry.Reduce(geometry.Flip(0), geometry.Rotate(rotation))
	}
	return geometry.Rotate(rotation).AsAffine()
}

// NewVertexStar places proto vertex star protoIndex of a at point.
func NewVertexStar(a *atlas.Atlas, point geometry.Point, protoIndex int, parity bool, rotation float64) (*VertexStar, error) {
	pvs, ok := a.VertexStar(protoIndex)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrBadProtoIndex, protoIndex)
	}

	s := &VertexStar{
		Point:      point,
		ProtoIndex: protoIndex,
		Parity:     parity,
		Rotation:   geometry.Rad(rotation),
		link:       make([]geometry.Point, pvs.Size()),
		linkIndex:  make(map[geometry.Key][]int, pvs.Size()),
	}
	frame := s.frame()
	for i, n := range pvs.Neighbors {
		p := frame.Apply(n.Translate)
		s.link[i] = p
		s.linkIndex[p.Key()] = append(s.linkIndex[p.Key()], i)
	}
	s.sortLinks()
	return s, nil
}

// sortLinks fills linkArgs and linkOrder. The ring of link arguments is
// cyclic; sorting cuts it where it wraps past 2π.
func (s *VertexStar) sortLinks() {
	n := len(s.link)
	args := make([]float64, n)
	order := make([]int, n)
	for i, p := range s.link {
		args[i] = p.Sub(s.Point).Arg()
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int {
		switch {
		case args[x] < args[y]:
			return -1
		case args[x] > args[y]:
			return 1
		}
		return 0
	})

	s.linkArgs = make([]float64, 0, n+2)
	s.linkOrder = make([]int, 0, n+2)
	s.linkArgs = append(s.linkArgs, args[order[n-1]]-geometry.Tau)
	s.linkOrder = append(s.linkOrder, order[n-1])
	for _, i := range order {
		s.linkArgs = append(s.linkArgs, args[i])
		s.linkOrder = append(s.linkOrder, i)
	}
	s.linkArgs = append(s.linkArgs, args[order[0]]+geometry.Tau)
	s.linkOrder = append(s.linkOrder, order[0])
}

// frame maps the proto frame into the plane, translation included.
func (s *VertexStar) frame() geometry.Affine {
	return ReferenceFrame(s.Parity, s.Rotation).Then(geometry.Translate(s.Point))
}

// Size returns the number of links.
func (s *VertexStar) Size() int {
	return len(s.link)
}

// Link returns a copy of the link points in proto order.
func (s *VertexStar) Link() []geometry.Point {
	return slices.Clone(s.link)
}

// LinkIndex returns the proto index of link point p.
func (s *VertexStar) LinkIndex(p geometry.Point) (int, bool) {
	for _, k := range p.Key().Neighborhood() {
		for _, i := range s.linkIndex[k] {
			if s.link[i].ApproxEqual(p) {
				return i, true
			}
		}
	}
	return 0, false
}

func (s *VertexStar) mustLinkIndex(p geometry.Point) (int, error) {
	i, ok := s.LinkIndex(p)
	if !ok {
		return 0, fmt.Errorf("%w: %v around %v", ErrNotInLink, p, s.Point)
	}
	return i, nil
}

// ClockwiseAdjacentLinkIndex returns the index of the link immediately
// clockwise of link point p.
func (s *VertexStar) ClockwiseAdjacentLinkIndex(p geometry.Point) (int, error) {
	i, err := s.mustLinkIndex(p)
	if err != nil {
		return 0, err
	}
	n := len(s.link)
	if s.Parity {
		return (i + 1) % n, nil
	}
	return (i + n - 1) % n, nil
}

// MutualParity reports whether the vertex star across link point p has
// the opposite handedness to s.
func (s *VertexStar) MutualParity(a *atlas.Atlas, p geometry.Point) (bool, error) {
	i, err := s.mustLinkIndex(p)
	if err != nil {
		return false, err
	}
	return a.ProtoVertexStars[s.ProtoIndex].Neighbors[i].Parity, nil
}

// NeighborVertexStar builds the vertex star at the far end of link i.
// The result is not registered anywhere.
func (s *VertexStar) NeighborVertexStar(a *atlas.Atlas, i int) (*VertexStar, error) {
	pvs, ok := a.VertexStar(s.ProtoIndex)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrBadProtoIndex, s.ProtoIndex)
	}
	if i < 0 || i >= pvs.Size() {
		return nil, fmt.Errorf("%w: link %d of %d", ErrNotInLink, i, pvs.Size())
	}
	pn := pvs.Neighbors[i]
	npvs, ok := a.VertexStar(pn.VertexType)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrBadProtoIndex, pn.VertexType)
	}

	nps := s.link[i].Sub(s.Point)
	back := nps.Neg().Arg()
	nep := npvs.Neighbors[pn.Slot].Translate

	first := npvs.Neighbors[0].Translate.Transform(geometry.Rotate(back - nep.Arg()))
	parity := s.Parity != pn.Parity
	if parity {
		first = first.Transform(geometry.Flip(back))
	}
	return NewVertexStar(a, s.link[i], pn.VertexType, parity, first.Arg())
}

// NearestNeighbor builds the vertex star across the first link at or
// counterclockwise of the direction from s.Point to p. The tile
// clockwise of that link, Tile(result.Point), covers the direction.
func (s *VertexStar) NearestNeighbor(a *atlas.Atlas, p geometry.Point) (*VertexStar, error) {
	theta := p.Sub(s.Point).Arg()
	pos := sort.SearchFloat64s(s.linkArgs, theta)
	pos = min(max(pos, 1), len(s.linkArgs)-1)
	return s.NeighborVertexStar(a, s.linkOrder[pos])
}

// protoTileIndex returns the index of the tile clockwise of link point p.
func (s *VertexStar) protoTileIndex(p geometry.Point) (int, error) {
	i, err := s.mustLinkIndex(p)
	if err != nil {
		return 0, err
	}
	if !s.Parity {
		n := len(s.link)
		i = (i + n - 1) % n
	}
	return i, nil
}

// Tile returns the tile clockwise of link point p.
func (s *VertexStar) Tile(a *atlas.Atlas, p geometry.Point) (tile.Tile, error) {
	i, err := s.protoTileIndex(p)
	if err != nil {
		return tile.Tile{}, err
	}
	proto := a.ProtoVertexStars[s.ProtoIndex].Tiles[i].Transform(s.frame())
	return tile.NewTile(proto, s.Parity)
}

// TileCentroid returns the centroid of Tile(a, p) without building the
// tile.
func (s *VertexStar) TileCentroid(a *atlas.Atlas, p geometry.Point) (geometry.Point, error) {
	i, err := s.protoTileIndex(p)
	if err != nil {
		return geometry.Point{}, err
	}
	c, err := a.ProtoVertexStars[s.ProtoIndex].Tiles[i].Centroid()
	if err != nil {
		return geometry.Point{}, err
	}
	return s.frame().Apply(c), nil
}

// Key implements quadtree.Spatial.
func (s *VertexStar) Key() geometry.Point {
	return s.Point
}

// Distance implements quadtree.Spatial.
func (s *VertexStar) Distance(p geometry.Point) float64 {
	return s.Point.Distance(p)
}

// Intersects implements quadtree.Spatial.
func (s *VertexStar) Intersects(b geometry.Bounds) bool {
	return b.ContainsPoint(s.Point)
}

// String implements fmt.Stringer.
func (s *VertexStar) String() string {
	return fmt.Sprintf("VertexStar{%v proto=%d parity=%v rot=%.2f°}",
		s.Point, s.ProtoIndex, s.Parity, geometry.ToDeg(s.Rotation))
}
