package quadtree

import "fmt"

// Handle addresses an item in a Tree. The zero Handle is never valid.
type Handle struct {
	index      int32
	generation uint32
}

// Index returns the arena slot of the handle. Slots are reused after
// removal, so Index alone does not identify an item.
func (h Handle) Index() int {
	return int(h.index)
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.generation == 0
}

// String implements fmt.Stringer.
func (h Handle) String() string {
	return fmt.Sprintf("Handle(%d#%d)", h.index, h.generation)
}

type slot[V Spatial] struct {
	value      V
	generation uint32
	live       bool
	neighbors  map[int32]struct{}
}

// arena stores items by slot with a free list of dead slots.
type arena[V Spatial] struct {
	slots []slot[V]
	free  []int32
	live  int
}

func (a *arena[V]) alloc(v V) Handle {
	var idx int32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = int32(len(a.slots))
		a.slots = append(a.slots, slot[V]{})
	}
	s := &a.slots[idx]
	s.value = v
	s.generation++
	s.live = true
	a.live++
	return Handle{index: idx, generation: s.generation}
}

// get returns the live slot of h, or nil.
func (a *arena[V]) get(h Handle) *slot[V] {
	if h.generation == 0 || h.index < 0 || int(h.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.index]
	if !s.live || s.generation != h.generation {
		return nil
	}
	return s
}

// handle returns the current handle of a live slot index.
func (a *arena[V]) handle(idx int32) Handle {
	return Handle{index: idx, generation: a.slots[idx].generation}
}

func (a *arena[V]) release(h Handle) {
	s := &a.slots[h.index]
	var zero V
	s.value = zero
	s.live = false
	s.neighbors = nil
	a.free = append(a.free, h.index)
	a.live--
}
