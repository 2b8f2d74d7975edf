// Package tiling explores vertex-to-vertex tilings of the plane.
//
// # Overview
//
// A tiling is described by an [atlas.Atlas]: the kinds of vertex that
// occur, which prototiles meet at each, and which vertex lies across
// every edge. From that static description a [Patch] grows a consistent
// piece of the tiling on demand. Asking for the tile under a point walks
// outward from the nearest known vertex, placing vertex stars and
// scaffolding tiles until a tile covering the point is found.
//
// # Quick Start
//
//	a, err := atlas.Lookup("4.6.12")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p, err := tiling.NewPatch(a)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := p.InsertTileByPoint(geometry.Pt(3.2, -1.7)); err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range p.DrainTileDiffs() {
//	    fmt.Println(d.Kind, d.Tile.Centroid)
//	}
//
// # Architecture
//
// The module is organized into:
//   - geometry: points, edges, affine and Euclidean transforms, bounds
//   - tile: prototiles, placed tiles, polygon constructors
//   - atlas: vertex configurations, the JSON reader and the catalog
//   - quadtree: the PMR quadtree indexing tiles and vertex stars
//   - tiling (this package): VertexStar, Patch and WKT export
//
// # Logging
//
// The package is silent by default. See [SetLogger].
package tiling
