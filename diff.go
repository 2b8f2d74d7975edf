package tiling

import (
	"fmt"

	"github.com/gogpu/tiling/tile"
)

// DiffKind tells whether a tile entered or left the included set.
type DiffKind uint8

const (
	// Added marks a tile that became included.
	Added DiffKind = iota
	// Removed marks a tile that was excluded again.
	Removed
)

// String implements fmt.Stringer.
func (k DiffKind) String() string {
	switch k {
	case Added:
		return "Added"
	case Removed:
		return "Removed"
	default:
		return fmt.Sprintf("DiffKind(%d)", k)
	}
}

// TileDiff is one change to the included set of a patch.
type TileDiff struct {
	Tile tile.Tile
	Kind DiffKind
}
