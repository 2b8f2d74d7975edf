package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/tiling/atlas"
	"github.com/gogpu/tiling/geometry"
)

func TestParsePoints(t *testing.T) {
	tests := []struct {
		in      string
		want    []geometry.Point
		wantErr bool
	}{
		{"0.5,0.5", []geometry.Point{{X: 0.5, Y: 0.5}}, false},
		{" 1, 2 ; -3.5,4;", []geometry.Point{{X: 1, Y: 2}, {X: -3.5, Y: 4}}, false},
		{"", nil, false},
		{"1;2", nil, true},
		{"a,1", nil, true},
		{"1,b", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePoints(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("point %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadJobs(t *testing.T) {
	jobs, err := loadJobs("6.6.6, square,", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 || jobs[0].name != "6.6.6" || jobs[1].name != "square" {
		t.Errorf("jobs = %v", jobs)
	}
	if _, err := loadJobs("nope", ""); err == nil {
		t.Error("unknown tiling should fail")
	}
	if _, err := loadJobs(" , ", ""); err == nil {
		t.Error("empty tiling list should fail")
	}

	path := filepath.Join(t.TempDir(), "honeycomb.json")
	doc := `{
		"prototiles": {"hex": {"type": "regular", "side_length": 1, "num_sides": 6}},
		"vertices": [[
			{"prototile": "hex", "point": 0},
			{"prototile": "hex", "point": 0},
			{"prototile": "hex", "point": 0}
		]],
		"adjacencies": [{"vertex": 0, "neighbors": [[0, 1], [0, 2], [0, 0]]}]
	}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	jobs, err = loadJobs("ignored", path)
	if err != nil {
		t.Fatalf("loadJobs from JSON: %v", err)
	}
	if len(jobs) != 1 || jobs[0].name != "honeycomb" || jobs[0].atlas.ProtoVertexStars[0].Size() != 3 {
		t.Errorf("jobs = %v", jobs)
	}
	if _, err := loadJobs("", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing JSON file should fail")
	}
}

func TestExplore(t *testing.T) {
	a, err := atlas.Lookup("4.4.4.4")
	if err != nil {
		t.Fatal(err)
	}
	targets := []geometry.Point{{X: 0.5, Y: 0.5}, {X: 2.5, Y: -1.5}}
	p, err := explore(context.Background(), a, targets)
	if err != nil {
		t.Fatal(err)
	}
	for _, q := range targets {
		if got, ok := p.TileAt(q); !ok || !got.Included {
			t.Errorf("no included tile at %v", q)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := explore(ctx, a, targets); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled explore err = %v, want context.Canceled", err)
	}
}

func TestWrite(t *testing.T) {
	a, err := atlas.Lookup("6.6.6")
	if err != nil {
		t.Fatal(err)
	}
	p, err := explore(context.Background(), a, []geometry.Point{{X: 0.5, Y: 0.9}})
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	if err := write(dir, true, "6.6.6", p, true); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "6.6.6.wkt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "POLYGON") {
		t.Errorf("output = %q, want a POLYGON", data)
	}
}
