package tiling

import (
	"errors"
	"fmt"

	"github.com/gogpu/tiling/atlas"
	"github.com/gogpu/tiling/geometry"
	"github.com/gogpu/tiling/quadtree"
	"github.com/gogpu/tiling/tile"
)

// PatchTile is a tile stored in a patch. Excluded tiles are scaffolding
// laid down while walking toward a point; only included tiles are part
// of the visible patch.
type PatchTile struct {
	tile.Tile
	Included bool
}

// Patch is a growing, consistent piece of a tiling. It starts with a
// single vertex star at the origin and grows on demand toward query
// points.
//
// Patch is not safe for concurrent use.
type Patch struct {
	atlas *atlas.Atlas
	opts  patchOptions
	tiles *quadtree.Tree[PatchTile]
	stars *quadtree.Tree[*VertexStar]
	diffs []TileDiff
}

// NewPatch creates a patch of a with vertex type 0 placed at the origin.
func NewPatch(a *atlas.Atlas, opts ...PatchOption) (*Patch, error) {
	if a == nil || len(a.ProtoVertexStars) == 0 {
		return nil, fmt.Errorf("%w: empty atlas", ErrBadProtoIndex)
	}
	o := defaultPatchOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxSteps <= 0 {
		return nil, fmt.Errorf("tiling: max steps %d, want > 0", o.maxSteps)
	}

	tiles, err := quadtree.New[PatchTile](o.tileTree, quadtree.WithNeighbors())
	if err != nil {
		return nil, fmt.Errorf("tiling: tile tree: %w", err)
	}
	stars, err := quadtree.New[*VertexStar](o.starTree)
	if err != nil {
		return nil, fmt.Errorf("tiling: vertex star tree: %w", err)
	}

	origin, err := NewVertexStar(a, geometry.Origin, 0, false, 0)
	if err != nil {
		return nil, err
	}
	if _, _, err := stars.Insert(origin); err != nil {
		return nil, err
	}

	return &Patch{atlas: a, opts: o, tiles: tiles, stars: stars}, nil
}

// Atlas returns the atlas the patch was built from.
func (pt *Patch) Atlas() *atlas.Atlas {
	return pt.atlas
}

// InsertTileByPoint includes the tile containing p, laying excluded
// tiles along the way from the nearest known vertex star.
func (pt *Patch) InsertTileByPoint(p geometry.Point) error {
	for step := range pt.opts.maxSteps {
		near, err := pt.stars.Nearest(p)
		if err != nil {
			return err
		}
		current := near.Value

		next, err := current.NearestNeighbor(pt.atlas, p)
		if err != nil {
			return err
		}
		t, err := current.Tile(pt.atlas, next.Point)
		if err != nil {
			return err
		}

		if t.Contains(p) {
			return pt.InsertAdjacentTileByEdge(current.Point, next.Point, true)
		}
		if err := pt.InsertAdjacentTileByEdge(current.Point, next.Point, false); err != nil {
			return err
		}
		if _, _, err := pt.stars.Insert(next); err != nil {
			return err
		}
		Logger().Debug("tiling: step toward point",
			"target", p.String(),
			"step", step,
			"at", next.Point.String())
	}

	Logger().Warn("tiling: gave up growing toward point",
		"target", p.String(),
		"steps", pt.opts.maxSteps)
	return fmt.Errorf("%w: %v not reached in %d steps", ErrTooFar, p, pt.opts.maxSteps)
}

// InsertAdjacentTileByEdge inserts the tile clockwise of link point stop
// at the vertex star at start, registering the vertex stars around its
// boundary. An existing excluded tile is promoted when included is set.
func (pt *Patch) InsertAdjacentTileByEdge(start, stop geometry.Point, included bool) error {
	startStar, err := pt.starAt(start)
	if err != nil {
		return err
	}
	t, err := startStar.Tile(pt.atlas, stop)
	if err != nil {
		return err
	}

	if h, ok := pt.tiles.Get(t.Centroid); ok {
		existing, _ := pt.tiles.Value(h)
		if !included || existing.Included {
			return nil
		}
		existing.Included = true
		if err := pt.tiles.Update(h, existing); err != nil {
			return err
		}
		if err := pt.updateAdjacency(h, existing.Tile); err != nil {
			return err
		}
		pt.diffs = append(pt.diffs, TileDiff{Tile: existing.Tile, Kind: Added})
		return nil
	}

	if err := pt.registerBoundary(startStar, stop, t.Size()); err != nil {
		return err
	}
	h, _, err := pt.tiles.Insert(PatchTile{Tile: t, Included: included})
	if err != nil {
		return err
	}
	if included {
		if err := pt.updateAdjacency(h, t); err != nil {
			return err
		}
		pt.diffs = append(pt.diffs, TileDiff{Tile: t, Kind: Added})
	}
	return nil
}

// registerBoundary walks the boundary of the tile clockwise of stop at
// start, creating the vertex stars that are not yet known.
func (pt *Patch) registerBoundary(start *VertexStar, stop geometry.Point, size int) error {
	middle, reverse := start, stop
	for range size - 1 {
		fi, err := middle.ClockwiseAdjacentLinkIndex(reverse)
		if err != nil {
			return err
		}
		forward := middle.link[fi]

		next, err := pt.starAt(forward)
		if errors.Is(err, ErrMissingVertexStar) {
			next, err = middle.NeighborVertexStar(pt.atlas, fi)
			if err != nil {
				return err
			}
			if _, _, err := pt.stars.Insert(next); err != nil {
				return err
			}
			Logger().Debug("tiling: new vertex star",
				"point", next.Point.String(),
				"proto", next.ProtoIndex,
				"parity", next.Parity)
		} else if err != nil {
			return err
		}
		reverse, middle = middle.Point, next
	}
	return nil
}

// updateAdjacency links h with every stored tile sharing an edge with t.
// All centroids are computed before any link is made.
func (pt *Patch) updateAdjacency(h quadtree.Handle, t tile.Tile) error {
	var across []geometry.Point
	for _, e := range t.Edges() {
		c, err := pt.centroidAcross(t, e)
		if err != nil {
			Logger().Warn("tiling: unresolved tile edge",
				"tile", t.Centroid.String(),
				"edge", fmt.Sprintf("%v-%v", e.Start, e.Stop),
				"err", err)
			continue
		}
		across = append(across, c)
	}

	for _, c := range across {
		nh, ok := pt.tiles.Get(c)
		if !ok {
			continue
		}
		if err := pt.tiles.Link(h, nh); err != nil {
			return err
		}
	}
	return nil
}

// centroidAcross returns the centroid of the tile on the other side of
// edge e of t.
func (pt *Patch) centroidAcross(t tile.Tile, e geometry.Edge) (geometry.Point, error) {
	a, err := pt.starAt(e.Start)
	if err != nil {
		return geometry.Point{}, err
	}
	c, err := a.TileCentroid(pt.atlas, e.Stop)
	if err != nil {
		return geometry.Point{}, err
	}
	if !c.ApproxEqual(t.Centroid) {
		return c, nil
	}
	b, err := pt.starAt(e.Stop)
	if err != nil {
		return geometry.Point{}, err
	}
	return b.TileCentroid(pt.atlas, e.Start)
}

// ExcludeTileByPoint excludes the included tile containing p. It reports
// whether a tile changed.
func (pt *Patch) ExcludeTileByPoint(p geometry.Point) (bool, error) {
	h, existing, ok := pt.tileAt(p)
	if !ok || !existing.Included {
		return false, nil
	}
	existing.Included = false
	if err := pt.tiles.Update(h, existing); err != nil {
		return false, err
	}
	pt.diffs = append(pt.diffs, TileDiff{Tile: existing.Tile, Kind: Removed})
	return true, nil
}

// DrainTileDiffs returns the changes since the last call, oldest first,
// and clears the log.
func (pt *Patch) DrainTileDiffs() []TileDiff {
	diffs := pt.diffs
	pt.diffs = nil
	return diffs
}

// TileNeighborCentroids returns the centroids of the included tiles
// sharing an edge with the tile containing p.
func (pt *Patch) TileNeighborCentroids(p geometry.Point) ([]geometry.Point, error) {
	h, _, ok := pt.tileAt(p)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNoTile, p)
	}
	neighbors, err := pt.tiles.Neighbors(h)
	if err != nil {
		return nil, err
	}
	var out []geometry.Point
	for _, nh := range neighbors {
		if n, ok := pt.tiles.Value(nh); ok && n.Included {
			out = append(out, n.Centroid)
		}
	}
	return out, nil
}

// TileAt returns the stored tile containing p.
func (pt *Patch) TileAt(p geometry.Point) (PatchTile, bool) {
	_, t, ok := pt.tileAt(p)
	return t, ok
}

func (pt *Patch) tileAt(p geometry.Point) (quadtree.Handle, PatchTile, bool) {
	near, err := pt.tiles.Nearest(p)
	if err != nil || !near.Value.Contains(p) {
		return quadtree.Handle{}, PatchTile{}, false
	}
	return near.Handle, near.Value, true
}

// Tiles returns every stored tile, included or not, in insertion order
// of their slots.
func (pt *Patch) Tiles() []PatchTile {
	out := make([]PatchTile, 0, pt.tiles.Len())
	for _, t := range pt.tiles.All() {
		out = append(out, t)
	}
	return out
}

// VertexStars returns every registered vertex star.
func (pt *Patch) VertexStars() []*VertexStar {
	out := make([]*VertexStar, 0, pt.stars.Len())
	for _, s := range pt.stars.All() {
		out = append(out, s)
	}
	return out
}

func (pt *Patch) starAt(p geometry.Point) (*VertexStar, error) {
	h, ok := pt.stars.Get(p)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrMissingVertexStar, p)
	}
	s, _ := pt.stars.Value(h)
	return s, nil
}
