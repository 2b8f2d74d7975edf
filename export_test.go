package tiling

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/gogpu/tiling/geometry"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteWKT(t *testing.T) {
	p := mustPatch(t, mustAtlas(t, "4.4.4.4"))
	for _, q := range []geometry.Point{{X: 0.5, Y: 0.5}, {X: 3.5, Y: 0.5}} {
		if err := p.InsertTileByPoint(q); err != nil {
			t.Fatal(err)
		}
	}
	stored := len(p.Tiles())

	tests := []struct {
		name         string
		includedOnly bool
		wantLines    int
	}{
		{"included only", true, 2},
		{"all tiles", false, stored},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := p.WriteWKT(&buf, tt.includedOnly); err != nil {
				t.Fatalf("WriteWKT: %v", err)
			}
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != tt.wantLines {
				t.Fatalf("lines = %d, want %d", len(lines), tt.wantLines)
			}
			for _, line := range lines {
				g, err := geom.UnmarshalWKT(line)
				if err != nil {
					t.Fatalf("UnmarshalWKT(%q): %v", line, err)
				}
				if g.Type() != geom.TypePolygon {
					t.Fatalf("type = %v, want Polygon", g.Type())
				}
				ring := g.AsPolygon().ExteriorRing().Coordinates()
				if ring.Length() != 5 {
					t.Errorf("ring of %q has %d points, want 5", line, ring.Length())
				}
			}
		})
	}

	if err := p.WriteWKT(failingWriter{}, false); err == nil {
		t.Error("WriteWKT to a failing writer should fail")
	}
}

func TestPolygon(t *testing.T) {
	a := mustAtlas(t, "6.6.6")
	s := mustStar(t, a, geometry.Origin, false, 0)
	tl, err := s.Tile(a, unitX)
	if err != nil {
		t.Fatal(err)
	}
	poly, err := Polygon(tl)
	if err != nil {
		t.Fatalf("Polygon: %v", err)
	}
	ring := poly.ExteriorRing().Coordinates()
	if ring.Length() != 7 {
		t.Fatalf("ring length = %d, want 7", ring.Length())
	}
	first, last := ring.GetXY(0), ring.GetXY(ring.Length()-1)
	if first != last {
		t.Errorf("ring not closed: %v != %v", first, last)
	}
	for i, p := range tl.Points {
		xy := ring.GetXY(i)
		if !geometry.Pt(xy.X, xy.Y).ApproxEqual(p) {
			t.Errorf("vertex %d = %v, want %v", i, xy, p)
		}
	}
}
