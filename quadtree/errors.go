package quadtree

import "errors"

// Sentinel errors for the quadtree package.
var (
	// ErrInvalidConfig is returned by Config.Validate and New.
	ErrInvalidConfig = errors.New("quadtree: invalid config")

	// ErrInvalidKey is returned when an item's key is not a finite point.
	ErrInvalidKey = errors.New("quadtree: key is not finite")

	// ErrNoNearbyItems is returned by Nearest on an empty tree.
	ErrNoNearbyItems = errors.New("quadtree: no nearby items")

	// ErrStaleHandle is returned for handles of removed items.
	ErrStaleHandle = errors.New("quadtree: stale handle")

	// ErrKeyChanged is returned when Update would move an item.
	ErrKeyChanged = errors.New("quadtree: update changes the key")

	// ErrNeighborsDisabled is returned by the neighbor methods of a tree
	// built without WithNeighbors.
	ErrNeighborsDisabled = errors.New("quadtree: neighbor bookkeeping disabled")
)
