package tiling

import "errors"

// Sentinel errors for the tiling package.
var (
	// ErrTooFar is returned when InsertTileByPoint exhausts its step
	// budget before reaching the point.
	ErrTooFar = errors.New("tiling: point too far from the patch")

	// ErrBadProtoIndex is returned for a vertex type outside the atlas.
	ErrBadProtoIndex = errors.New("tiling: proto vertex star index out of range")

	// ErrNotInLink is returned when a point is not a link point of a
	// vertex star.
	ErrNotInLink = errors.New("tiling: point is not in the vertex star's link")

	// ErrMissingVertexStar is returned when an edge starts at a point with
	// no registered vertex star.
	ErrMissingVertexStar = errors.New("tiling: no vertex star at point")

	// ErrNoTile is returned when no stored tile contains a point.
	ErrNoTile = errors.New("tiling: no tile at point")
)
