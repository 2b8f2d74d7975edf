package atlas

import "github.com/gogpu/tiling/tile"

// Config is the input to New: one entry per vertex type.
type Config struct {
	VertexTypes []VertexType
}

// VertexType lists the prototile corners meeting at a vertex in
// counterclockwise order. Neighbors[i] describes the vertex at the far
// end of link i, the edge between Components[i-1] and Components[i].
type VertexType struct {
	Components []Component
	Neighbors  []Neighbor
}

// Component is one prototile touching the vertex at point Corner.
type Component struct {
	ProtoTile tile.ProtoTile
	Corner    int
}

// Neighbor names the vertex type across a link and the slot of that
// vertex's link pointing back. Parity is set when the neighbor is a
// mirror image.
type Neighbor struct {
	VertexType int
	Slot       int
	Parity     bool
}
