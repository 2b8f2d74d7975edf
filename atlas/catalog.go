package atlas

import (
	"fmt"
	"math"

	"golang.org/x/text/cases"

	"github.com/gogpu/tiling/internal/cache"
	"github.com/gogpu/tiling/tile"
)

// catalogEntry is a named built-in tiling.
type catalogEntry struct {
	name    string
	aliases []string
	build   func() (Config, error)
}

var catalog = []catalogEntry{
	{"3.3.3.3.3.3", []string{"triangular"}, triangular},
	{"4.4.4.4", []string{"square"}, square},
	{"6.6.6", []string{"hexagonal"}, hexagonal},
	{"3.12.12", []string{"truncated-hexagonal"}, truncatedHexagonal},
	{"4.6.12", []string{"truncated-trihexagonal"}, truncatedTrihexagonal},
	{"4.8.8", []string{"truncated-square"}, truncatedSquare},
	{"4.3.4.6", []string{"rhombitrihexagonal"}, rhombitrihexagonal},
	{"3.3.4.3.4", []string{"snub-square"}, snubSquare},
	{"3.3.3.4.4", []string{"elongated-triangular"}, elongatedTriangular},
	{"3.3.3.3.6", []string{"snub-hexagonal"}, snubHexagonal},
	{"3.3.3.3.3.3;3.3.4.3.4", nil, triangularSnubSquare},
	{"4.6*π/6.6**π/2.6*π/6", []string{"4.6*pi/6.6**pi/2.6*pi/6", "square-star"}, squareStar},
}

var atlases = cache.New[string, *Atlas](len(catalog))

// Names returns the canonical names of the built-in tilings.
func Names() []string {
	names := make([]string, len(catalog))
	for i, e := range catalog {
		names[i] = e.name
	}
	return names
}

// Lookup returns the built-in tiling with the given name or alias,
// matched case-insensitively. Atlases are built once and shared.
func Lookup(name string) (*Atlas, error) {
	e, ok := findEntry(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTiling, name)
	}
	return atlases.GetOrCreate(e.name, func() (*Atlas, error) {
		cfg, err := e.build()
		if err != nil {
			return nil, err
		}
		return New(cfg)
	})
}

// CatalogConfig returns the Config behind a built-in tiling.
func CatalogConfig(name string) (Config, error) {
	e, ok := findEntry(name)
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownTiling, name)
	}
	return e.build()
}

func findEntry(name string) (catalogEntry, bool) {
	fold := cases.Fold()
	key := fold.String(name)
	for _, e := range catalog {
		if fold.String(e.name) == key {
			return e, true
		}
		for _, alias := range e.aliases {
			if fold.String(alias) == key {
				return e, true
			}
		}
	}
	return catalogEntry{}, false
}

// uniform builds a single vertex type from prototiles at corner 0 and
// neighbor slots on vertex type 0.
func uniform(protos []tile.ProtoTile, slots []int, parity []bool) Config {
	vt := VertexType{
		Components: make([]Component, len(protos)),
		Neighbors:  make([]Neighbor, len(slots)),
	}
	for i, p := range protos {
		vt.Components[i] = Component{ProtoTile: p}
	}
	for i, s := range slots {
		vt.Neighbors[i] = Neighbor{Slot: s, Parity: parity != nil && parity[i]}
	}
	return Config{VertexTypes: []VertexType{vt}}
}

// polygons returns unit regular polygons with the given side counts.
func polygons(sides ...int) ([]tile.ProtoTile, error) {
	out := make([]tile.ProtoTile, len(sides))
	for i, n := range sides {
		p, err := tile.RegularPolygon(1, n)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func regular(sides []int, slots []int, parity []bool) (Config, error) {
	protos, err := polygons(sides...)
	if err != nil {
		return Config{}, err
	}
	return uniform(protos, slots, parity), nil
}

func triangular() (Config, error) {
	return regular([]int{3, 3, 3, 3, 3, 3}, []int{3, 4, 5, 0, 1, 2}, nil)
}

// square uses each corner of a single square, which exercises
// non-zero corners.
func square() (Config, error) {
	sq, err := tile.RegularPolygon(1, 4)
	if err != nil {
		return Config{}, err
	}
	cfg := uniform([]tile.ProtoTile{sq, sq, sq, sq}, []int{2, 3, 0, 1}, nil)
	for i := range cfg.VertexTypes[0].Components {
		cfg.VertexTypes[0].Components[i].Corner = i
	}
	return cfg, nil
}

func hexagonal() (Config, error) {
	return regular([]int{6, 6, 6}, []int{1, 2, 0}, nil)
}

func truncatedHexagonal() (Config, error) {
	return regular([]int{3, 12, 12}, []int{1, 0, 2}, nil)
}

func truncatedTrihexagonal() (Config, error) {
	return regular([]int{12, 6, 4}, []int{0, 1, 2}, []bool{true, true, true})
}

func truncatedSquare() (Config, error) {
	return regular([]int{8, 8, 4}, []int{2, 1, 0}, []bool{false, true, false})
}

func rhombitrihexagonal() (Config, error) {
	return regular([]int{4, 3, 4, 6}, []int{3, 2, 1, 0}, nil)
}

func snubSquare() (Config, error) {
	return regular([]int{3, 3, 4, 3, 4}, []int{4, 1, 3, 2, 0}, nil)
}

func elongatedTriangular() (Config, error) {
	return regular([]int{4, 4, 3, 3, 3}, []int{2, 1, 0, 3, 4}, nil)
}

func snubHexagonal() (Config, error) {
	return regular([]int{6, 3, 3, 3, 3}, []int{1, 0, 3, 2, 4}, nil)
}

// triangularSnubSquare is the 2-uniform tiling 3^6; 3^2.4.3.4.
func triangularSnubSquare() (Config, error) {
	tri, err := polygons(3, 3, 3, 3, 3, 3)
	if err != nil {
		return Config{}, err
	}
	mixed, err := polygons(4, 3, 4, 3, 3)
	if err != nil {
		return Config{}, err
	}

	center := VertexType{}
	for _, p := range tri {
		center.Components = append(center.Components, Component{ProtoTile: p})
		center.Neighbors = append(center.Neighbors, Neighbor{VertexType: 1, Slot: 4})
	}
	outer := VertexType{}
	for _, p := range mixed {
		outer.Components = append(outer.Components, Component{ProtoTile: p})
	}
	outer.Neighbors = []Neighbor{
		{VertexType: 1, Slot: 3},
		{VertexType: 1, Slot: 2},
		{VertexType: 1, Slot: 1},
		{VertexType: 1, Slot: 0},
		{VertexType: 0, Slot: 4},
	}
	return Config{VertexTypes: []VertexType{center, outer}}, nil
}

// squareStar is the star polygon tiling 4.6*π/6.6**π/2.6*π/6: squares
// and two kinds of six-pointed star, with tips of π/6 and π/2.
func squareStar() (Config, error) {
	square, err := tile.RegularPolygon(1, 4)
	if err != nil {
		return Config{}, err
	}
	sharp, err := tile.StarPolygon(1, 6, math.Pi/6)
	if err != nil {
		return Config{}, err
	}
	blunt, err := tile.StarPolygon(1, 6, math.Pi/2)
	if err != nil {
		return Config{}, err
	}

	return Config{VertexTypes: []VertexType{
		{
			Components: []Component{{blunt, 0}, {sharp, 1}},
			Neighbors:  []Neighbor{{VertexType: 1, Slot: 0}, {VertexType: 1, Slot: 3}},
		},
		{
			Components: []Component{{sharp, 0}, {square, 0}, {sharp, 0}, {blunt, 1}},
			Neighbors: []Neighbor{
				{VertexType: 0, Slot: 0},
				{VertexType: 2, Slot: 1},
				{VertexType: 2, Slot: 0},
				{VertexType: 0, Slot: 1},
			},
		},
		{
			Components: []Component{{square, 0}, {sharp, 1}},
			Neighbors:  []Neighbor{{VertexType: 1, Slot: 2}, {VertexType: 1, Slot: 1}},
		},
	}}, nil
}
