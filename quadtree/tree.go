package quadtree

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/gogpu/tiling/geometry"
	"github.com/gogpu/tiling/internal/logging"
)

// Spatial is the item constraint of a Tree.
type Spatial interface {
	// Key is the point that identifies the item. Two items whose keys
	// are approximately equal cannot both be stored.
	Key() geometry.Point
	// Distance returns the distance from p to the item, 0 inside it.
	Distance(p geometry.Point) float64
	// Intersects reports whether the item overlaps the closed square b.
	Intersects(b geometry.Bounds) bool
}

// Neighbor is a result of Nearest.
type Neighbor[V Spatial] struct {
	Handle   Handle
	Value    V
	Distance float64
}

type node struct {
	bounds   geometry.Bounds
	level    int
	children *[4]*node // nil for a leaf
	items    []int32
}

func (n *node) isLeaf() bool {
	return n.children == nil
}

// Tree is a PMR quadtree over items of type V.
//
// Tree is not safe for concurrent use.
type Tree[V Spatial] struct {
	cfg  Config
	opts options
	root *node
	keys map[geometry.Key][]Handle
	arena[V]
}

// New creates an empty tree.
func New[V Spatial](cfg Config, opts ...Option) (*Tree[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Tree[V]{
		cfg:  cfg,
		opts: o,
		root: &node{bounds: geometry.Bounds{Center: o.center, Radius: cfg.InitialRadius}},
		keys: make(map[geometry.Key][]Handle),
	}, nil
}

// Len returns the number of items.
func (t *Tree[V]) Len() int {
	return t.live
}

// Bounds returns the current root square.
func (t *Tree[V]) Bounds() geometry.Bounds {
	return t.root.bounds
}

// Insert stores v. If an item with the same key is present its handle is
// returned with false and v is discarded.
func (t *Tree[V]) Insert(v V) (Handle, bool, error) {
	k := v.Key()
	if !finite(k) {
		return Handle{}, false, fmt.Errorf("%w: %v", ErrInvalidKey, k)
	}
	if h, ok := t.Get(k); ok {
		return h, false, nil
	}
	for !v.Intersects(t.root.bounds) {
		t.grow()
	}

	h := t.alloc(v)
	t.keys[k.Key()] = append(t.keys[k.Key()], h)
	t.attach(t.root, h.index, v)
	return h, true, nil
}

// Get returns the handle of the item whose key is approximately p.
func (t *Tree[V]) Get(p geometry.Point) (Handle, bool) {
	for _, k := range p.Key().Neighborhood() {
		for _, h := range t.keys[k] {
			if t.slots[h.index].value.Key().ApproxEqual(p) {
				return h, true
			}
		}
	}
	return Handle{}, false
}

// Has reports whether an item with key approximately p is stored.
func (t *Tree[V]) Has(p geometry.Point) bool {
	_, ok := t.Get(p)
	return ok
}

// Value returns the item of h.
func (t *Tree[V]) Value(h Handle) (V, bool) {
	s := t.get(h)
	if s == nil {
		var zero V
		return zero, false
	}
	return s.value, true
}

// Contains reports whether h addresses a stored item.
func (t *Tree[V]) Contains(h Handle) bool {
	return t.get(h) != nil
}

// Update replaces the item of h with v. The key must not change; the
// extent may, and leaf membership follows it.
func (t *Tree[V]) Update(h Handle, v V) error {
	s := t.get(h)
	if s == nil {
		return fmt.Errorf("%w: %v", ErrStaleHandle, h)
	}
	if !s.value.Key().ApproxEqual(v.Key()) {
		return fmt.Errorf("%w: %v to %v", ErrKeyChanged, s.value.Key(), v.Key())
	}
	t.detach(t.root, h.index, s.value)
	s.value = v
	if !v.Intersects(t.root.bounds) {
		for !v.Intersects(t.root.bounds) {
			t.grow()
		}
		// grow already placed v in the fresh leaves.
		t.detach(t.root, h.index, v)
	}
	t.attach(t.root, h.index, v)
	return nil
}

// Remove deletes the item of h and drops it from every neighbor set.
// It reports whether h was live.
func (t *Tree[V]) Remove(h Handle) bool {
	s := t.get(h)
	if s == nil {
		return false
	}
	t.detach(t.root, h.index, s.value)

	k := s.value.Key().Key()
	bucket := slices.DeleteFunc(t.keys[k], func(o Handle) bool { return o == h })
	if len(bucket) == 0 {
		delete(t.keys, k)
	} else {
		t.keys[k] = bucket
	}

	for n := range s.neighbors {
		delete(t.slots[n].neighbors, h.index)
	}
	t.release(h)
	return true
}

// All iterates over the stored items in slot order.
func (t *Tree[V]) All() iter.Seq2[Handle, V] {
	return func(yield func(Handle, V) bool) {
		for i := range t.slots {
			s := &t.slots[i]
			if !s.live {
				continue
			}
			if !yield(Handle{index: int32(i), generation: s.generation}, s.value) {
				return
			}
		}
	}
}

// Nearest returns the item closest to p. Ties are broken by the lower
// slot index.
func (t *Tree[V]) Nearest(p geometry.Point) (Neighbor[V], error) {
	if t.live == 0 {
		return Neighbor[V]{}, ErrNoNearbyItems
	}

	q := p
	if !t.root.bounds.ContainsPoint(p) {
		q = t.root.bounds.Clamp(p)
	}
	radius := t.opts.searchFactor*t.leafAt(q).bounds.Radius + p.Distance(q)
	limit := t.root.bounds.Distance(p) + 2*math.Sqrt2*t.root.bounds.Radius

	for {
		best, found := t.scan(t.root, p, radius, Neighbor[V]{Distance: math.Inf(1)}, false)
		switch {
		case found && best.Distance <= radius:
			return best, nil
		case found:
			// Something closer may sit in a leaf outside the first radius.
			radius = best.Distance
		case radius >= limit:
			return Neighbor[V]{}, ErrNoNearbyItems
		default:
			radius = min(2*radius, limit)
		}
	}
}

// scan returns the closest item in leaves within radius of p.
func (t *Tree[V]) scan(n *node, p geometry.Point, radius float64, best Neighbor[V], found bool) (Neighbor[V], bool) {
	if n.bounds.Distance(p) > radius {
		return best, found
	}
	if !n.isLeaf() {
		for _, c := range n.children {
			best, found = t.scan(c, p, radius, best, found)
			if found && best.Distance < geometry.Epsilon {
				return best, found
			}
		}
		return best, found
	}
	for _, idx := range n.items {
		v := t.slots[idx].value
		d := v.Distance(p)
		if !found || d < best.Distance || (d == best.Distance && idx < best.Handle.index) {
			best = Neighbor[V]{Handle: t.handle(idx), Value: v, Distance: d}
			found = true
		}
		if d < geometry.Epsilon {
			return best, true
		}
	}
	return best, found
}

// leafAt returns the leaf containing p, which must lie in the root.
func (t *Tree[V]) leafAt(p geometry.Point) *node {
	n := t.root
	for !n.isLeaf() {
		next := n.children[0]
		for _, c := range n.children {
			if c.bounds.ContainsPoint(p) {
				next = c
				break
			}
		}
		n = next
	}
	return n
}

// attach adds idx to every leaf under n that v intersects, splitting a
// leaf that overflows.
func (t *Tree[V]) attach(n *node, idx int32, v V) {
	if !v.Intersects(n.bounds) {
		return
	}
	if !n.isLeaf() {
		for _, c := range n.children {
			t.attach(c, idx, v)
		}
		return
	}
	n.items = append(n.items, idx)
	if len(n.items) > t.cfg.SplittingThreshold && n.level < t.cfg.MaxDepth {
		t.split(n)
	}
}

func (t *Tree[V]) detach(n *node, idx int32, v V) {
	if !v.Intersects(n.bounds) {
		return
	}
	if !n.isLeaf() {
		for _, c := range n.children {
			t.detach(c, idx, v)
		}
		return
	}
	n.items = slices.DeleteFunc(n.items, func(i int32) bool { return i == idx })
}

// split turns leaf n into a node with four leaves, each keeping the
// items that intersect it. The children are not split further.
func (t *Tree[V]) split(n *node) {
	var children [4]*node
	for q, b := range n.bounds.Split() {
		c := &node{bounds: b, level: n.level + 1}
		for _, idx := range n.items {
			if t.slots[idx].value.Intersects(b) {
				c.items = append(c.items, idx)
			}
		}
		children[q] = c
	}
	n.children = &children
	n.items = nil

	logging.Logger().Debug("quadtree: split",
		"center", n.bounds.Center.String(),
		"radius", n.bounds.Radius,
		"level", n.level)
}

// grow doubles the root about its center. Each old quadrant becomes the
// inner child of the matching new quadrant; the other twelve children
// are fresh leaves filled from the stored items.
func (t *Tree[V]) grow() {
	old := t.root
	if old.isLeaf() {
		t.split(old)
	}

	root := &node{bounds: old.bounds.Grow(), level: old.level - 1}
	var quads [4]*node
	var fresh []*node
	for q, qb := range root.bounds.Split() {
		quad := &node{bounds: qb, level: old.level}
		inner := geometry.Quadrant(q).Opposite()
		var children [4]*node
		for cq, cb := range qb.Split() {
			if geometry.Quadrant(cq) == inner {
				children[cq] = old.children[q]
				continue
			}
			leaf := &node{bounds: cb, level: old.level + 1}
			children[cq] = leaf
			fresh = append(fresh, leaf)
		}
		quad.children = &children
		quads[q] = quad
	}
	root.children = &quads
	t.root = root

	for i := range t.slots {
		s := &t.slots[i]
		if !s.live {
			continue
		}
		for _, leaf := range fresh {
			if s.value.Intersects(leaf.bounds) {
				leaf.items = append(leaf.items, int32(i))
			}
		}
	}

	logging.Logger().Debug("quadtree: grew",
		"radius", root.bounds.Radius,
		"level", root.level,
		"items", t.live)
}

// Link records a and b as neighbors of each other. Linking an item to
// itself is a no-op.
func (t *Tree[V]) Link(a, b Handle) error {
	sa, sb, err := t.pair(a, b)
	if err != nil || a == b {
		return err
	}
	if sa.neighbors == nil {
		sa.neighbors = make(map[int32]struct{})
	}
	if sb.neighbors == nil {
		sb.neighbors = make(map[int32]struct{})
	}
	sa.neighbors[b.index] = struct{}{}
	sb.neighbors[a.index] = struct{}{}
	return nil
}

// Unlink removes the neighbor relation between a and b.
func (t *Tree[V]) Unlink(a, b Handle) error {
	sa, sb, err := t.pair(a, b)
	if err != nil {
		return err
	}
	delete(sa.neighbors, b.index)
	delete(sb.neighbors, a.index)
	return nil
}

// Neighbors returns the neighbors of h ordered by slot index.
func (t *Tree[V]) Neighbors(h Handle) ([]Handle, error) {
	if !t.opts.neighbors {
		return nil, ErrNeighborsDisabled
	}
	s := t.get(h)
	if s == nil {
		return nil, fmt.Errorf("%w: %v", ErrStaleHandle, h)
	}
	out := make([]Handle, 0, len(s.neighbors))
	for idx := range s.neighbors {
		out = append(out, t.handle(idx))
	}
	slices.SortFunc(out, func(x, y Handle) int { return int(x.index - y.index) })
	return out, nil
}

func (t *Tree[V]) pair(a, b Handle) (*slot[V], *slot[V], error) {
	if !t.opts.neighbors {
		return nil, nil, ErrNeighborsDisabled
	}
	sa, sb := t.get(a), t.get(b)
	if sa == nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStaleHandle, a)
	}
	if sb == nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStaleHandle, b)
	}
	return sa, sb, nil
}

func finite(p geometry.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
