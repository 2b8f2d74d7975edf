package atlas

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"golang.org/x/text/cases"

	"github.com/gogpu/tiling/geometry"
	"github.com/gogpu/tiling/tile"
)

// Document is the JSON exchange form of a Config.
type Document struct {
	Labels      []string                 `json:"labels,omitempty"`
	ProtoTiles  map[string]ProtoTileSpec `json:"prototiles"`
	Vertices    [][]ComponentSpec        `json:"vertices"`
	Adjacencies []AdjacencySpec          `json:"adjacencies"`
}

// ProtoTileSpec describes one named prototile. Type selects which of the
// other fields apply:
//
//	regular: SideLength, NumSides
//	star:    SideLength, NumBaseSides, InternalAngle (degrees)
//	custom:  Sides, each [length, angle in degrees]
type ProtoTileSpec struct {
	Type          string       `json:"type"`
	SideLength    float64      `json:"side_length,omitempty"`
	NumSides      int          `json:"num_sides,omitempty"`
	NumBaseSides  int          `json:"num_base_sides,omitempty"`
	InternalAngle float64      `json:"internal_angle,omitempty"`
	Sides         [][2]float64 `json:"sides,omitempty"`
}

// ComponentSpec references a prototile corner by name.
type ComponentSpec struct {
	ProtoTile string `json:"prototile"`
	Point     int    `json:"point"`
}

// AdjacencySpec lists the neighbors of one vertex. Each neighbor is
// [vertex, slot] or [vertex, slot, parity] with parity 0 or 1.
type AdjacencySpec struct {
	Vertex    int     `json:"vertex"`
	Neighbors [][]int `json:"neighbors"`
}

// ParseJSON reads a Document from r and resolves it into a Config.
func ParseJSON(r io.Reader) (Config, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Config{}, &ConfigError{Vertex: -1, Slot: -1, Reason: "decode json", Err: err}
	}
	return doc.Config()
}

// Config resolves prototile names and adjacency lists. Names are
// matched case-insensitively.
func (d *Document) Config() (Config, error) {
	fold := cases.Fold()

	names := make([]string, 0, len(d.ProtoTiles))
	for name := range d.ProtoTiles {
		names = append(names, name)
	}
	sort.Strings(names)

	protos := make(map[string]tile.ProtoTile, len(names))
	for _, name := range names {
		key := fold.String(name)
		if _, dup := protos[key]; dup {
			return Config{}, &ConfigError{Vertex: -1, Slot: -1,
				Reason: fmt.Sprintf("prototile %q defined twice", name)}
		}
		p, err := d.ProtoTiles[name].build()
		if err != nil {
			return Config{}, &ConfigError{Vertex: -1, Slot: -1,
				Reason: fmt.Sprintf("prototile %q", name), Err: err}
		}
		protos[key] = p
	}

	cfg := Config{VertexTypes: make([]VertexType, len(d.Vertices))}
	for v, comps := range d.Vertices {
		vt := &cfg.VertexTypes[v]
		for i, c := range comps {
			p, ok := protos[fold.String(c.ProtoTile)]
			if !ok {
				return Config{}, &ConfigError{Vertex: v, Slot: i,
					Reason: fmt.Sprintf("unknown prototile %q", c.ProtoTile)}
			}
			if c.Point < 0 || c.Point >= p.Size() {
				return Config{}, &ConfigError{Vertex: v, Slot: i,
					Reason: fmt.Sprintf("point %d out of range for %q", c.Point, c.ProtoTile)}
			}
			vt.Components = append(vt.Components, Component{ProtoTile: p, Corner: c.Point})
		}
	}

	seen := make(map[int]bool, len(d.Adjacencies))
	for _, adj := range d.Adjacencies {
		v := adj.Vertex
		if v < 0 || v >= len(cfg.VertexTypes) {
			return Config{}, &ConfigError{Vertex: -1, Slot: -1,
				Reason: fmt.Sprintf("adjacency for unknown vertex %d", v)}
		}
		if seen[v] {
			return Config{}, &ConfigError{Vertex: v, Slot: -1, Reason: "adjacency listed twice"}
		}
		seen[v] = true

		for i, raw := range adj.Neighbors {
			n, err := parseNeighbor(raw)
			if err != nil {
				return Config{}, &ConfigError{Vertex: v, Slot: i, Reason: err.Error()}
			}
			cfg.VertexTypes[v].Neighbors = append(cfg.VertexTypes[v].Neighbors, n)
		}
	}
	return cfg, nil
}

func parseNeighbor(raw []int) (Neighbor, error) {
	switch len(raw) {
	case 2:
		return Neighbor{VertexType: raw[0], Slot: raw[1]}, nil
	case 3:
		if raw[2] != 0 && raw[2] != 1 {
			return Neighbor{}, fmt.Errorf("neighbor parity %d, want 0 or 1", raw[2])
		}
		return Neighbor{VertexType: raw[0], Slot: raw[1], Parity: raw[2] == 1}, nil
	default:
		return Neighbor{}, fmt.Errorf("neighbor %v has %d fields, want 2 or 3", raw, len(raw))
	}
}

func (s ProtoTileSpec) build() (tile.ProtoTile, error) {
	switch s.Type {
	case "regular":
		return tile.RegularPolygon(s.SideLength, s.NumSides)
	case "star":
		return tile.StarPolygon(s.SideLength, s.NumBaseSides, geometry.ToRad(s.InternalAngle))
	case "custom":
		sides := make([]tile.Side, len(s.Sides))
		for i, side := range s.Sides {
			sides[i] = tile.Side{Length: side[0], Angle: side[1]}
		}
		return tile.CustomPolygon(sides)
	default:
		return tile.ProtoTile{}, fmt.Errorf("unknown prototile type %q", s.Type)
	}
}
