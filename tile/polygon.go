package tile

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/tiling/geometry"
)

// RegularPolygon returns the regular n-gon with the given side length,
// first edge from the origin along the positive x-axis, points in
// counterclockwise order.
//
// The points are the orbit of the origin under a rotation about the
// polygon's center. The result is checked against the expected angles
// and side lengths before it is returned.
func RegularPolygon(side float64, n int) (ProtoTile, error) {
	if n < 3 || side <= 0 {
		return ProtoTile{}, fmt.Errorf("%w: regular polygon with side %v and %d sides", ErrInvalidPolygon, side, n)
	}

	inclination := math.Pi * (0.5 - 1/float64(n))
	radius := side / 2 / math.Cos(inclination)
	center := geometry.Pt(radius*math.Cos(inclination), radius*math.Sin(inclination))

	gen := geometry.NewGenerator(geometry.Reduce(
		geometry.Translate(center.Neg()),
		geometry.Rotate(geometry.Tau/float64(n)),
		geometry.Translate(center),
	))

	points := make([]geometry.Point, n)
	for i := range points {
		a, err := gen.Power(i)
		if err != nil {
			return ProtoTile{}, err
		}
		points[i] = geometry.Origin.Transform(a)
	}
	t := ProtoTile{Points: points}

	if err := t.checkAngles(func(int) float64 { return 2 * inclination }); err != nil {
		return ProtoTile{}, err
	}
	if err := t.checkSides(side); err != nil {
		return ProtoTile{}, err
	}
	return t, nil
}

// StarPolygon returns a star with 2*k points. The points of the base
// k-gon keep the given internal angle (radians, in (0, π)); the points
// between them are dented inward so that every side has the given
// length.
func StarPolygon(side float64, k int, internalAngle float64) (ProtoTile, error) {
	if k < 3 || side <= 0 {
		return ProtoTile{}, fmt.Errorf("%w: star polygon with side %v and %d base sides", ErrInvalidPolygon, side, k)
	}
	if internalAngle <= 0 || internalAngle >= math.Pi {
		return ProtoTile{}, fmt.Errorf("%w: star internal angle %.4fπ outside (0, π)", ErrInvalidPolygon, internalAngle/math.Pi)
	}

	diff := (math.Pi - geometry.Tau/float64(k) - internalAngle) / 2
	base, err := RegularPolygon(2*side*math.Cos(diff), k)
	if err != nil {
		return ProtoTile{}, err
	}

	arm := geometry.Pt(side, 0)
	points := make([]geometry.Point, 0, 2*k)
	for i, p := range base.Points {
		next := base.Points[(i+1)%k]
		dent := p.Add(arm.Transform(geometry.Rotate(next.Sub(p).Arg() + diff)))
		points = append(points, p, dent)
	}
	t := ProtoTile{Points: points}

	dentAngle := geometry.Tau - geometry.Tau/float64(k) - internalAngle
	err = t.checkAngles(func(i int) float64 {
		if i%2 == 0 {
			return internalAngle
		}
		return dentAngle
	})
	if err != nil {
		return ProtoTile{}, err
	}
	if err := t.checkSides(side); err != nil {
		return ProtoTile{}, err
	}
	return t, nil
}

// Side is one edge of a custom polygon: its length, and the angle in
// degrees relative to the previous edge.
type Side struct {
	Length float64
	Angle  float64
}

// CustomPolygon traces a polygon from the origin one side at a time.
// Each side turns the heading by 180° minus its relative angle. A final
// point that lands back on the origin is dropped, and a clockwise trace
// is reversed so the result is always counterclockwise.
func CustomPolygon(sides []Side) (ProtoTile, error) {
	point := geometry.Origin
	rotation := 0.0
	points := []geometry.Point{point}
	for i, s := range sides {
		if s.Length <= 0 {
			return ProtoTile{}, fmt.Errorf("%w: side %d has length %v", ErrInvalidPolygon, i, s.Length)
		}
		rotation += geometry.ToRad(180 - s.Angle)
		point = point.Add(geometry.Pt(s.Length, 0).Transform(geometry.Rotate(rotation)))
		points = append(points, point)
	}
	if len(points) > 1 && points[len(points)-1].ApproxEqual(points[0]) {
		points = points[:len(points)-1]
	}

	t, err := NewProtoTile(points)
	if err != nil {
		return ProtoTile{}, err
	}
	if _, err := t.Centroid(); err != nil {
		return ProtoTile{}, err
	}
	if t.SignedArea() < 0 {
		slices.Reverse(t.Points[1:])
	}
	return t, nil
}

func (t ProtoTile) checkAngles(want func(i int) float64) error {
	for i := range t.Points {
		got := t.Angle(i)
		w := geometry.Rad(want(i))
		if !geometry.ApproxEqual(got, w) {
			return &ShapeCheckError{Kind: "angle", Index: i, Got: got, Want: w}
		}
	}
	return nil
}

func (t ProtoTile) checkSides(want float64) error {
	tolerance := geometry.Epsilon * math.Max(1, want)
	for i, got := range t.SideLengths() {
		if math.Abs(got-want) > tolerance {
			return &ShapeCheckError{Kind: "side", Index: i, Got: got, Want: want}
		}
	}
	return nil
}
