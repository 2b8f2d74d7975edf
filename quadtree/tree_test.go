package quadtree

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/peterstace/simplefeatures/rtree"

	"github.com/gogpu/tiling/geometry"
)

// point is a zero-size item.
type point struct {
	p   geometry.Point
	tag int
}

func (v point) Key() geometry.Point               { return v.p }
func (v point) Distance(q geometry.Point) float64 { return v.p.Distance(q) }
func (v point) Intersects(b geometry.Bounds) bool { return b.ContainsPoint(v.p) }

// square is an axis-aligned square item.
type square struct {
	b geometry.Bounds
}

func (v square) Key() geometry.Point               { return v.b.Center }
func (v square) Distance(q geometry.Point) float64 { return v.b.Distance(q) }
func (v square) Intersects(b geometry.Bounds) bool {
	d := v.b.Center.Sub(b.Center)
	r := v.b.Radius + b.Radius
	return math.Abs(d.X) <= r && math.Abs(d.Y) <= r
}

func newTree[V Spatial](t *testing.T, cfg Config, opts ...Option) *Tree[V] {
	t.Helper()
	tr, err := New[V](cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tr
}

func mustInsert[V Spatial](t *testing.T, tr *Tree[V], v V) Handle {
	t.Helper()
	h, ok, err := tr.Insert(v)
	if err != nil || !ok {
		t.Fatalf("Insert(%v) = %v, %v, %v", v.Key(), h, ok, err)
	}
	return h
}

// checkInvariants verifies that every live item is in exactly the leaves
// it intersects.
func checkInvariants[V Spatial](t *testing.T, tr *Tree[V]) {
	t.Helper()
	var walk func(n *node)
	walk = func(n *node) {
		if !n.isLeaf() {
			if len(n.items) != 0 {
				t.Errorf("inner node %v holds items", n.bounds)
			}
			for _, c := range n.children {
				if c.level != n.level+1 {
					t.Errorf("child level %d under level %d", c.level, n.level)
				}
				walk(c)
			}
			return
		}
		seen := make(map[int32]bool)
		for _, idx := range n.items {
			if seen[idx] {
				t.Errorf("leaf %v holds slot %d twice", n.bounds, idx)
			}
			seen[idx] = true
			if !tr.slots[idx].live {
				t.Errorf("leaf %v holds dead slot %d", n.bounds, idx)
			}
		}
		for h, v := range tr.All() {
			if v.Intersects(n.bounds) != seen[h.index] {
				t.Errorf("leaf %v membership of %v = %v, want %v", n.bounds, v.Key(), seen[h.index], v.Intersects(n.bounds))
			}
		}
	}
	walk(tr.root)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valid", Config{1000, 50, 25}, true},
		{"zero radius", Config{0, 50, 25}, false},
		{"nan radius", Config{math.NaN(), 50, 25}, false},
		{"zero depth", Config{1000, 0, 25}, false},
		{"negative threshold", Config{1000, 50, -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok != (err == nil) {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestInsertGet(t *testing.T) {
	tr := newTree[point](t, Config{10, 8, 2})

	h := mustInsert(t, tr, point{p: geometry.Pt(1, 1), tag: 1})

	// A key within epsilon is the same key.
	h2, ok, err := tr.Insert(point{p: geometry.Pt(1+1e-8, 1), tag: 2})
	if err != nil || ok || h2 != h {
		t.Fatalf("duplicate Insert = %v, %v, %v, want %v, false, nil", h2, ok, err, h)
	}
	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tr.Len())
	}
	if v, _ := tr.Value(h); v.tag != 1 {
		t.Errorf("duplicate insert replaced the item")
	}

	// Keys straddling a bucket boundary still match.
	edge := geometry.Pt(2.0000005, 3)
	he := mustInsert(t, tr, point{p: edge})
	if got, ok := tr.Get(geometry.Pt(2.0000004, 3)); !ok || got != he {
		t.Errorf("Get near bucket edge = %v, %v, want %v", got, ok, he)
	}
	if tr.Has(geometry.Pt(5, 5)) {
		t.Error("Has(5, 5) on absent key")
	}

	if _, _, err := tr.Insert(point{p: geometry.Pt(math.NaN(), 0)}); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("NaN key err = %v, want ErrInvalidKey", err)
	}
	checkInvariants(t, tr)
}

func TestRemove(t *testing.T) {
	tr := newTree[point](t, Config{10, 8, 2})

	var hs []Handle
	for i := range 10 {
		hs = append(hs, mustInsert(t, tr, point{p: geometry.Pt(float64(i)-5, 0.5*float64(i))}))
	}
	if !tr.Remove(hs[3]) {
		t.Fatal("Remove of live handle reported false")
	}
	if tr.Remove(hs[3]) {
		t.Error("second Remove reported true")
	}
	if _, ok := tr.Value(hs[3]); ok {
		t.Error("Value of removed handle should fail")
	}
	if tr.Has(geometry.Pt(-2, 1.5)) {
		t.Error("removed key still found")
	}

	// The slot is reused under a new generation.
	h := mustInsert(t, tr, point{p: geometry.Pt(7, 7)})
	if h.Index() != hs[3].Index() || h == hs[3] {
		t.Errorf("reinsert handle = %v, old %v", h, hs[3])
	}
	if tr.Contains(hs[3]) {
		t.Error("stale handle resolves after slot reuse")
	}
	if tr.Len() != 10 {
		t.Errorf("Len() = %d, want 10", tr.Len())
	}
	checkInvariants(t, tr)
}

func TestUpdate(t *testing.T) {
	tr := newTree[square](t, Config{4, 6, 2})

	h := mustInsert(t, tr, square{geometry.Bounds{Center: geometry.Pt(1, 1), Radius: 0.25}})
	bigger := square{geometry.Bounds{Center: geometry.Pt(1, 1), Radius: 10}}
	if err := tr.Update(h, bigger); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if v, _ := tr.Value(h); v.b.Radius != 10 {
		t.Errorf("Value after Update = %v", v)
	}
	checkInvariants(t, tr)

	moved := square{geometry.Bounds{Center: geometry.Pt(2, 1), Radius: 0.25}}
	if err := tr.Update(h, moved); !errors.Is(err, ErrKeyChanged) {
		t.Errorf("Update with new key err = %v, want ErrKeyChanged", err)
	}
	tr.Remove(h)
	if err := tr.Update(h, bigger); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Update of removed handle err = %v, want ErrStaleHandle", err)
	}
}

func TestGrow(t *testing.T) {
	tr := newTree[point](t, Config{1, 6, 2})

	inside := []geometry.Point{geometry.Pt(0.1, 0.2), geometry.Pt(-0.5, 0.5), geometry.Pt(0.9, -0.9)}
	for _, p := range inside {
		mustInsert(t, tr, point{p: p})
	}
	mustInsert(t, tr, point{p: geometry.Pt(100, -3)})

	b := tr.Bounds()
	if !b.Center.ApproxEqual(geometry.Origin) {
		t.Errorf("root center moved to %v", b.Center)
	}
	if b.Radius != 128 {
		t.Errorf("root radius = %v, want 128", b.Radius)
	}
	if tr.root.level != -7 {
		t.Errorf("root level = %d, want -7", tr.root.level)
	}
	for _, p := range inside {
		if !tr.Has(p) {
			t.Errorf("lost %v after growth", p)
		}
		n, err := tr.Nearest(p)
		if err != nil || !n.Value.p.ApproxEqual(p) {
			t.Errorf("Nearest(%v) = %v, %v after growth", p, n.Value.p, err)
		}
	}
	checkInvariants(t, tr)
}

func TestGrowExtendedItems(t *testing.T) {
	tr := newTree[square](t, Config{1, 6, 2})

	mustInsert(t, tr, square{geometry.Bounds{Center: geometry.Pt(0.5, 0.5), Radius: 0.9}})
	mustInsert(t, tr, square{geometry.Bounds{Center: geometry.Pt(-0.5, 0.5), Radius: 0.2}})
	mustInsert(t, tr, square{geometry.Bounds{Center: geometry.Pt(0.5, -0.5), Radius: 0.2}})
	mustInsert(t, tr, square{geometry.Bounds{Center: geometry.Pt(-6, -6), Radius: 0.2}})

	// The first square reaches past the old root into fresh leaves.
	checkInvariants(t, tr)
}

func TestNearestEmpty(t *testing.T) {
	tr := newTree[point](t, Config{10, 8, 2})
	if _, err := tr.Nearest(geometry.Origin); !errors.Is(err, ErrNoNearbyItems) {
		t.Errorf("err = %v, want ErrNoNearbyItems", err)
	}
}

// TestNearestMatchesRTree compares Nearest against an R-tree priority
// search over the same points.
func TestNearestMatchesRTree(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	tr := newTree[point](t, Config{4, 10, 3})
	var oracle rtree.RTree
	var points []geometry.Point

	for len(points) < 400 {
		p := geometry.Pt(rng.NormFloat64()*30, rng.NormFloat64()*30)
		if _, ok, err := tr.Insert(point{p: p, tag: len(points)}); err != nil || !ok {
			continue
		}
		oracle.Insert(rtree.Box{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}, len(points))
		points = append(points, p)
	}
	checkInvariants(t, tr)

	for range 300 {
		q := geometry.Pt(rng.Float64()*300-150, rng.Float64()*300-150)
		want := -1
		err := oracle.PrioritySearch(rtree.Box{MinX: q.X, MinY: q.Y, MaxX: q.X, MaxY: q.Y}, func(id int) error {
			want = id
			return rtree.Stop
		})
		if err != nil || want < 0 {
			t.Fatalf("PrioritySearch: %d, %v", want, err)
		}

		got, err := tr.Nearest(q)
		if err != nil {
			t.Fatalf("Nearest(%v): %v", q, err)
		}
		wantDist := points[want].Distance(q)
		if math.Abs(got.Distance-wantDist) > 1e-9 {
			t.Errorf("Nearest(%v) = %v at %v, want %v at %v", q, got.Value.p, got.Distance, points[want], wantDist)
		}
	}
}

// TestInsertOrderInvariance checks that lookups do not depend on the
// order items arrive in.
func TestInsertOrderInvariance(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	var points []geometry.Point
	for range 120 {
		points = append(points, geometry.Pt(rng.Float64()*40-20, rng.Float64()*40-20))
	}

	forward := newTree[point](t, Config{2, 8, 4})
	reverse := newTree[point](t, Config{2, 8, 4})
	for i := range points {
		mustInsert(t, forward, point{p: points[i]})
		mustInsert(t, reverse, point{p: points[len(points)-1-i]})
	}
	checkInvariants(t, forward)
	checkInvariants(t, reverse)

	for range 100 {
		q := geometry.Pt(rng.Float64()*60-30, rng.Float64()*60-30)
		a, errA := forward.Nearest(q)
		b, errB := reverse.Nearest(q)
		if errA != nil || errB != nil {
			t.Fatalf("Nearest(%v): %v, %v", q, errA, errB)
		}
		if a.Distance != b.Distance {
			t.Errorf("Nearest(%v) distance %v vs %v", q, a.Distance, b.Distance)
		}
	}
}

func TestNeighbors(t *testing.T) {
	tr := newTree[point](t, Config{10, 8, 2}, WithNeighbors())

	a := mustInsert(t, tr, point{p: geometry.Pt(0, 0)})
	b := mustInsert(t, tr, point{p: geometry.Pt(1, 0)})
	c := mustInsert(t, tr, point{p: geometry.Pt(2, 0)})

	for _, pair := range [][2]Handle{{a, b}, {c, a}, {a, a}} {
		if err := tr.Link(pair[0], pair[1]); err != nil {
			t.Fatalf("Link(%v, %v): %v", pair[0], pair[1], err)
		}
	}
	got, err := tr.Neighbors(a)
	if err != nil || len(got) != 2 || got[0] != b || got[1] != c {
		t.Errorf("Neighbors(a) = %v, %v, want [b c]", got, err)
	}
	if got, _ := tr.Neighbors(b); len(got) != 1 || got[0] != a {
		t.Errorf("Neighbors(b) = %v, want [a]", got)
	}

	if err := tr.Unlink(b, a); err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	if got, _ := tr.Neighbors(b); len(got) != 0 {
		t.Errorf("Neighbors(b) after Unlink = %v", got)
	}

	tr.Remove(c)
	if got, _ := tr.Neighbors(a); len(got) != 0 {
		t.Errorf("Neighbors(a) after removing c = %v", got)
	}
	if err := tr.Link(a, c); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Link to removed handle err = %v, want ErrStaleHandle", err)
	}
}

func TestNeighborsDisabled(t *testing.T) {
	tr := newTree[point](t, Config{10, 8, 2})
	a := mustInsert(t, tr, point{p: geometry.Pt(0, 0)})
	b := mustInsert(t, tr, point{p: geometry.Pt(1, 0)})

	if err := tr.Link(a, b); !errors.Is(err, ErrNeighborsDisabled) {
		t.Errorf("Link err = %v, want ErrNeighborsDisabled", err)
	}
	if _, err := tr.Neighbors(a); !errors.Is(err, ErrNeighborsDisabled) {
		t.Errorf("Neighbors err = %v, want ErrNeighborsDisabled", err)
	}
}

func TestAll(t *testing.T) {
	tr := newTree[point](t, Config{10, 8, 2})
	for i := range 5 {
		mustInsert(t, tr, point{p: geometry.Pt(float64(i), 0), tag: i})
	}
	h, _ := tr.Get(geometry.Pt(2, 0))
	tr.Remove(h)

	var tags []int
	for _, v := range tr.All() {
		tags = append(tags, v.tag)
	}
	want := []int{0, 1, 3, 4}
	if len(tags) != len(want) {
		t.Fatalf("All() tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("All() tags = %v, want %v", tags, want)
			break
		}
	}
}
