package atlas

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/tiling/geometry"
	"github.com/gogpu/tiling/internal/logging"
	"github.com/gogpu/tiling/tile"
)

// Atlas is the built form of a Config.
type Atlas struct {
	// ProtoVertexStars holds one entry per vertex type, in Config order.
	ProtoVertexStars []ProtoVertexStar

	// ProtoTiles holds the distinct prototiles in first-seen order.
	ProtoTiles []tile.ProtoTile
}

// ProtoVertexStar is a vertex type in its canonical frame: the vertex at
// the origin and link 0 on the positive x-axis.
type ProtoVertexStar struct {
	Index     int
	Tiles     []tile.ProtoTile
	Neighbors []ProtoNeighbor
}

// ProtoNeighbor describes the vertex at the far end of one link.
type ProtoNeighbor struct {
	VertexType int
	Slot       int
	Parity     bool

	// Translate is the link point in the proto frame.
	Translate geometry.Point
	// Rotate aligns the neighbor's slot link with the reversed edge.
	Rotate float64

	// ForwardTile and ReverseTile are the tiles counterclockwise and
	// clockwise of the link.
	ForwardTile int
	ReverseTile int
}

// Size returns the number of tiles (and links) around the vertex.
func (s *ProtoVertexStar) Size() int {
	return len(s.Tiles)
}

// Cyclic returns i+delta wrapped into [0, Size()).
func (s *ProtoVertexStar) Cyclic(i, delta int) int {
	n := len(s.Tiles)
	return ((i+delta)%n + n) % n
}

// Link returns the proto-frame link point of slot i.
func (s *ProtoVertexStar) Link(i int) geometry.Point {
	return s.Tiles[i].Points[1]
}

// New builds an Atlas from cfg. Nothing is returned on error.
func New(cfg Config) (*Atlas, error) {
	if len(cfg.VertexTypes) == 0 {
		return nil, &ConfigError{Vertex: -1, Slot: -1, Reason: "no vertex types"}
	}

	rings := make([][]tile.ProtoTile, len(cfg.VertexTypes))
	for v, vt := range cfg.VertexTypes {
		ring, err := buildRing(v, vt)
		if err != nil {
			return nil, err
		}
		rings[v] = ring
	}

	a := &Atlas{ProtoVertexStars: make([]ProtoVertexStar, len(rings))}
	for v, vt := range cfg.VertexTypes {
		neighbors, err := buildNeighbors(v, vt.Neighbors, rings)
		if err != nil {
			return nil, err
		}
		a.ProtoVertexStars[v] = ProtoVertexStar{Index: v, Tiles: rings[v], Neighbors: neighbors}
	}
	a.ProtoTiles = distinctProtoTiles(cfg)

	logging.Logger().Debug("atlas: built",
		"vertexTypes", len(a.ProtoVertexStars),
		"protoTiles", len(a.ProtoTiles))
	return a, nil
}

// buildRing places the components of vt around the origin, counterclockwise
// from the positive x-axis.
func buildRing(v int, vt VertexType) ([]tile.ProtoTile, error) {
	if len(vt.Components) == 0 {
		return nil, &ConfigError{Vertex: v, Slot: -1, Reason: "no components"}
	}
	if len(vt.Components) != len(vt.Neighbors) {
		return nil, &ConfigError{Vertex: v, Slot: -1,
			Reason: fmt.Sprintf("%d components but %d neighbors", len(vt.Components), len(vt.Neighbors))}
	}

	ring := make([]tile.ProtoTile, len(vt.Components))
	rotation := 0.0
	for i, c := range vt.Components {
		p := c.ProtoTile
		if p.Size() < 3 {
			return nil, &ConfigError{Vertex: v, Slot: i, Reason: "bad prototile", Err: tile.ErrTooFewPoints}
		}
		if _, err := p.Centroid(); err != nil {
			return nil, &ConfigError{Vertex: v, Slot: i, Reason: "bad prototile", Err: err}
		}
		if c.Corner < 0 || c.Corner >= p.Size() {
			return nil, &ConfigError{Vertex: v, Slot: i,
				Reason: fmt.Sprintf("corner %d out of range for a %d-gon", c.Corner, p.Size())}
		}

		moved := p.Transform(geometry.Translate(p.Points[c.Corner].Neg()))
		next := moved.Points[(c.Corner+1)%moved.Size()]
		angle := moved.Angle(c.Corner)
		moved = moved.Transform(geometry.Rotate(rotation - next.Arg()))
		ring[i] = moved.Reorient(geometry.Origin)
		rotation += angle
	}

	if !geometry.ApproxEqual(rotation, geometry.Tau) {
		return nil, &FillError{Vertex: v, Degrees: geometry.ToDeg(rotation)}
	}
	return ring, nil
}

func buildNeighbors(v int, descs []Neighbor, rings [][]tile.ProtoTile) ([]ProtoNeighbor, error) {
	ring := rings[v]
	n := len(ring)
	neighbors := make([]ProtoNeighbor, n)
	for i, d := range descs {
		if d.VertexType < 0 || d.VertexType >= len(rings) {
			return nil, &ConfigError{Vertex: v, Slot: i,
				Reason: fmt.Sprintf("neighbor vertex type %d out of range", d.VertexType)}
		}
		target := rings[d.VertexType]
		if d.Slot < 0 || d.Slot >= len(target) {
			return nil, &ConfigError{Vertex: v, Slot: i,
				Reason: fmt.Sprintf("neighbor slot %d out of range for vertex %d", d.Slot, d.VertexType)}
		}

		edge := ring[i].Points[1]
		back := target[d.Slot].Points[1]
		if math.Abs(edge.Norm()-back.Norm()) > geometry.Epsilon*math.Max(1, edge.Norm()) {
			return nil, &ConfigError{Vertex: v, Slot: i,
				Reason: fmt.Sprintf("link length %.6f does not match vertex %d slot %d length %.6f",
					edge.Norm(), d.VertexType, d.Slot, back.Norm())}
		}

		neighbors[i] = ProtoNeighbor{
			VertexType:  d.VertexType,
			Slot:        d.Slot,
			Parity:      d.Parity,
			Translate:   edge,
			Rotate:      geometry.Rad(edge.Neg().Arg() - back.Arg()),
			ForwardTile: i,
			ReverseTile: (i + n - 1) % n,
		}
	}
	return neighbors, nil
}

// distinctProtoTiles collects the prototiles of cfg, dropping shapes
// equal up to rigid motion, in first-seen order.
func distinctProtoTiles(cfg Config) []tile.ProtoTile {
	var out []tile.ProtoTile
	byHash := make(map[uint64][]int)
	for _, vt := range cfg.VertexTypes {
		for _, c := range vt.Components {
			h := c.ProtoTile.Hash()
			dup := false
			for _, j := range byHash[h] {
				if out[j].Equal(c.ProtoTile) {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			byHash[h] = append(byHash[h], len(out))
			out = append(out, c.ProtoTile)
		}
	}
	return out
}

// VertexStar returns the proto vertex star with the given index.
func (a *Atlas) VertexStar(i int) (*ProtoVertexStar, bool) {
	if i < 0 || i >= len(a.ProtoVertexStars) {
		return nil, false
	}
	return &a.ProtoVertexStars[i], true
}

// String returns a compact summary such as "Atlas{3 vertex types, 3 prototiles}"
// followed by each vertex type's polygon sizes.
func (a *Atlas) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Atlas{%d vertex types, %d prototiles}", len(a.ProtoVertexStars), len(a.ProtoTiles))
	for _, s := range a.ProtoVertexStars {
		sizes := make([]string, len(s.Tiles))
		for i, t := range s.Tiles {
			sizes[i] = fmt.Sprint(t.Size())
		}
		fmt.Fprintf(&b, " %d:[%s]", s.Index, strings.Join(sizes, "."))
	}
	return b.String()
}
