package tiling

import "github.com/gogpu/tiling/quadtree"

// PatchOption configures a Patch during creation.
//
// Example:
//
//	p, err := tiling.NewPatch(a, tiling.WithMaxSteps(500))
type PatchOption func(*patchOptions)

type patchOptions struct {
	tileTree quadtree.Config
	starTree quadtree.Config
	maxSteps int
}

// Default sizes of the two spatial indexes and the step budget.
var (
	DefaultTileTree       = quadtree.Config{InitialRadius: 1000, MaxDepth: 50, SplittingThreshold: 25}
	DefaultVertexStarTree = quadtree.Config{InitialRadius: 1000, MaxDepth: 70, SplittingThreshold: 10}
)

// DefaultMaxSteps bounds the walk of InsertTileByPoint.
const DefaultMaxSteps = 100

func defaultPatchOptions() patchOptions {
	return patchOptions{
		tileTree: DefaultTileTree,
		starTree: DefaultVertexStarTree,
		maxSteps: DefaultMaxSteps,
	}
}

// WithTileTree sizes the tile index.
func WithTileTree(cfg quadtree.Config) PatchOption {
	return func(o *patchOptions) {
		o.tileTree = cfg
	}
}

// WithVertexStarTree sizes the vertex star index.
func WithVertexStarTree(cfg quadtree.Config) PatchOption {
	return func(o *patchOptions) {
		o.starTree = cfg
	}
}

// WithMaxSteps sets how many vertex stars InsertTileByPoint may visit
// before giving up with ErrTooFar.
func WithMaxSteps(n int) PatchOption {
	return func(o *patchOptions) {
		o.maxSteps = n
	}
}
