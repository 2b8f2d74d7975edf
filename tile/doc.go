// Package tile represents polygons before and after placement.
//
// A [ProtoTile] is a canonical ring of points with a parity bit recording
// whether an odd number of reflections has been applied. A [Tile] is a
// placed copy with its centroid precomputed; the centroid is the tile's
// identity in a patch.
//
// Both types are transform-equivariant: transforming maps every point and
// XORs parity with the transform's flip-ness, which is how reflections
// propagate through the rest of the module.
//
// [RegularPolygon], [StarPolygon] and [CustomPolygon] build prototiles
// from the parameters used by tiling configurations.
package tile
