package tiling

import (
	"bufio"
	"fmt"
	"io"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/gogpu/tiling/tile"
)

// WriteWKT writes one WKT POLYGON per line for every stored tile, or only
// the included ones when includedOnly is set.
func (pt *Patch) WriteWKT(w io.Writer, includedOnly bool) error {
	bw := bufio.NewWriter(w)
	for _, t := range pt.Tiles() {
		if includedOnly && !t.Included {
			continue
		}
		poly, err := Polygon(t.Tile)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(bw, poly.AsText()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Polygon converts t to a simple-features polygon with a closed
// exterior ring.
func Polygon(t tile.Tile) (geom.Polygon, error) {
	coords := make([]float64, 0, 2*(t.Size()+1))
	for _, p := range t.Points {
		coords = append(coords, p.X, p.Y)
	}
	coords = append(coords, t.Points[0].X, t.Points[0].Y)

	ring, err := geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("tiling: tile %v ring: %w", t.Centroid, err)
	}
	poly, err := geom.NewPolygonFromRings([]geom.LineString{ring})
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("tiling: tile %v polygon: %w", t.Centroid, err)
	}
	return poly, nil
}
