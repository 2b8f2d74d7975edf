// Package quadtree implements a growable PMR quadtree keyed by point.
//
// Every item has a key point and a spatial extent. An item is stored in
// each leaf its extent intersects; a leaf holding more than
// SplittingThreshold items splits once, on the insertion that overflows
// it, until MaxDepth is reached. Inserting outside the root square grows
// the tree outward about the same center, so the tree covers any region
// the items reach.
//
// Items live in an arena and are addressed by [Handle]. Removing an item
// invalidates its handle; the slot is reused by later insertions under a
// new generation.
//
// Optionally the tree records a symmetric neighbor relation between
// items (see [WithNeighbors]).
package quadtree
