package tile

import (
	"errors"
	"fmt"
)

// Sentinel errors for the tile package.
var (
	// ErrTooFewPoints is returned when a ring has fewer than three points.
	ErrTooFewPoints = errors.New("tile: polygon needs at least 3 points")

	// ErrDegenerate is returned when a ring encloses no area.
	ErrDegenerate = errors.New("tile: polygon has zero area")

	// ErrInvalidPolygon is returned for out-of-range generator parameters.
	ErrInvalidPolygon = errors.New("tile: invalid polygon parameters")
)

// ShapeCheckError is returned when a generated polygon fails its own
// angle or side-length check.
type ShapeCheckError struct {
	Kind  string // "angle" or "side"
	Index int
	Got   float64
	Want  float64
}

func (e *ShapeCheckError) Error() string {
	return fmt.Sprintf("tile: %s %d is %.6f, want %.6f", e.Kind, e.Index, e.Got, e.Want)
}
