package quadtree

import (
	"fmt"
	"math"

	"github.com/gogpu/tiling/geometry"
)

// Config sizes a tree.
type Config struct {
	// InitialRadius is the half side of the initial root square.
	InitialRadius float64
	// MaxDepth is the deepest level a leaf may split to.
	MaxDepth int
	// SplittingThreshold is the leaf size above which a leaf splits.
	SplittingThreshold int
}

// Validate checks that every field is positive.
func (c Config) Validate() error {
	switch {
	case !(c.InitialRadius > 0) || math.IsInf(c.InitialRadius, 1):
		return fmt.Errorf("%w: initial radius %v", ErrInvalidConfig, c.InitialRadius)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, c.MaxDepth)
	case c.SplittingThreshold <= 0:
		return fmt.Errorf("%w: splitting threshold %d", ErrInvalidConfig, c.SplittingThreshold)
	}
	return nil
}

// DefaultSearchFactor multiplies the radius of the leaf holding the query
// point to get the first candidate radius of Nearest.
const DefaultSearchFactor = 4 * math.Sqrt2

// Option configures optional tree behavior.
type Option func(*options)

type options struct {
	neighbors    bool
	searchFactor float64
	center       geometry.Point
}

func defaultOptions() options {
	return options{searchFactor: DefaultSearchFactor}
}

// WithNeighbors enables the symmetric neighbor relation (Link, Unlink,
// Neighbors).
func WithNeighbors() Option {
	return func(o *options) {
		o.neighbors = true
	}
}

// WithSearchFactor sets the candidate radius multiplier of Nearest.
// Non-positive values are ignored.
func WithSearchFactor(f float64) Option {
	return func(o *options) {
		if f > 0 {
			o.searchFactor = f
		}
	}
}

// WithCenter sets the center of the initial root square.
func WithCenter(p geometry.Point) Option {
	return func(o *options) {
		o.center = p
	}
}
