/*
Copyright © 2026 the GeomTools authors.
This file is part of GeomTools.

GeomTools is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GeomTools is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GeomTools.  If not, see <http://www.gnu.org/licenses/>.
*/

package geomtools

import (
	"testing"

	"github.com/ctessum/geom"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{90, 90},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-360.5, 359.5},
	}
	for _, test := range tests {
		if have := NormalizeAngle(test.in); different(have, test.want, 1.e-12) {
			t.Errorf("%g: want %g but have %g", test.in, test.want, have)
		}
	}
}

func TestRotatePoint(t *testing.T) {
	const tolerance = 1.e-12

	// Clockwise quarter turn about the origin.
	x, y := RotatePoint(1, 0, 90, 0, 0)
	if different(x, 0, tolerance) || different(y, -1, tolerance) {
		t.Errorf("want (0, -1) but have (%g, %g)", x, y)
	}

	// A full turn is the identity.
	x, y = RotatePoint(3, 4, 360, 1, 1)
	if different(x, 3, tolerance) || different(y, 4, tolerance) {
		t.Errorf("want (3, 4) but have (%g, %g)", x, y)
	}
}

func TestRotateFixedPivot(t *testing.T) {
	const tolerance = 1.e-10

	fc := NewFeatureCollection(nil, "", Field{Name: "tag", Type: StringType})
	fc.Append(square(0, 0, 10), map[string]interface{}{"tag": "s"})

	out, err := fc.Rotate(90, Pivot{Mode: PivotFixed, X: 0, Y: 0})
	if err != nil {
		t.Fatal(err)
	}
	p := out.Feature(0).Geom.(geom.Polygon)
	// Clockwise about the origin maps (x, y) to (y, -x).
	want := []geom.Point{{X: 0, Y: 0}, {X: 0, Y: -10}, {X: 10, Y: -10}, {X: 10, Y: 0}}
	for i, w := range want {
		if pointsDifferent(p[0][i], w, tolerance) {
			t.Errorf("vertex %d: want %v but have %v", i, w, p[0][i])
		}
	}
	if out.Feature(0).Attrs["tag"] != "s" {
		t.Error("attributes not carried to the rotated collection")
	}
}

func TestRotateRoundTrip(t *testing.T) {
	const tolerance = 1.e-9

	poly := geom.Polygon{{
		{X: 1, Y: 2}, {X: 7, Y: 1}, {X: 8, Y: 6}, {X: 2, Y: 5},
	}}

	for _, pivot := range []Pivot{
		{Mode: PivotFixed, X: -3, Y: 11},
		{Mode: PivotCentroid},
		{Mode: PivotTrueCentroid},
	} {
		fc := NewFeatureCollection(nil, "")
		fc.Append(poly, nil)

		forward, err := fc.Rotate(37.5, pivot)
		if err != nil {
			t.Fatal(err)
		}
		back, err := forward.Rotate(-37.5, pivot)
		if err != nil {
			t.Fatal(err)
		}
		have := back.Feature(0).Geom.(geom.Polygon)
		for i, w := range poly[0] {
			if pointsDifferent(have[0][i], w, tolerance) {
				t.Errorf("pivot mode %v, vertex %d: want %v but have %v",
					pivot.Mode, i, w, have[0][i])
			}
		}
	}
}

func TestRotateCentroidPivotSquare(t *testing.T) {
	// A quarter turn of a square about its own centroid keeps its
	// footprint.
	fc := NewFeatureCollection(nil, "")
	fc.Append(square(2, 2, 6), nil)

	out, err := fc.Rotate(90, Pivot{Mode: PivotTrueCentroid})
	if err != nil {
		t.Fatal(err)
	}
	b := out.Feature(0).Geom.Bounds()
	if pointsDifferent(b.Min, geom.Point{X: 2, Y: 2}, 1.e-10) ||
		pointsDifferent(b.Max, geom.Point{X: 8, Y: 8}, 1.e-10) {
		t.Errorf("want bounds (2,2)-(8,8) but have %v", b)
	}
}

func TestRotatePointFeatures(t *testing.T) {
	const tolerance = 1.e-12

	fc := pointCollection(geom.Point{X: 1, Y: 0})

	// Centroid pivots leave points where they are.
	out, err := fc.Rotate(90, Pivot{Mode: PivotCentroid})
	if err != nil {
		t.Fatal(err)
	}
	if p := out.Feature(0).Geom.(geom.Point); pointsDifferent(p, geom.Point{X: 1, Y: 0}, tolerance) {
		t.Errorf("centroid pivot moved a point to %v", p)
	}

	// A fixed pivot moves them.
	out, err = fc.Rotate(90, Pivot{Mode: PivotFixed})
	if err != nil {
		t.Fatal(err)
	}
	if p := out.Feature(0).Geom.(geom.Point); pointsDifferent(p, geom.Point{X: 0, Y: -1}, tolerance) {
		t.Errorf("want (0, -1) but have %v", p)
	}
}

func TestRotateNullGeometry(t *testing.T) {
	fc := NewFeatureCollection(nil, "", Field{Name: "n", Type: IntType})
	fc.Append(nil, map[string]interface{}{"n": 1})
	out, err := fc.Rotate(45, Pivot{Mode: PivotCentroid})
	if err != nil {
		t.Fatal(err)
	}
	if out.Count() != 1 || out.Feature(0).Geom != nil {
		t.Error("null geometry did not pass through")
	}
	if out.Feature(0).Attrs["n"] != 1 {
		t.Error("attributes of null row lost")
	}
}

func TestRotateTreeCurveSegment(t *testing.T) {
	const tolerance = 1.e-12

	seg := CurveSegment{
		Kind:    "arc",
		Control: []Coordinate{{X: 1, Y: 0}, {X: 2, Y: 0}},
		Params:  map[string]float64{"radius": 2.5},
	}
	tree := Path{Coordinate{X: 0, Y: 1}, seg}

	rotated := RotateTree(tree, 90, Coordinate{}).(Path)
	if c := rotated[0].(Coordinate); different(c.X, 1, tolerance) || different(c.Y, 0, tolerance) {
		t.Errorf("want leaf (1, 0) but have %v", c)
	}
	s := rotated[1].(CurveSegment)
	if s.Kind != "arc" || s.Params["radius"] != 2.5 {
		t.Errorf("curve parameters not preserved: %+v", s)
	}
	if c := s.Control[0]; different(c.X, 0, tolerance) || different(c.Y, -1, tolerance) {
		t.Errorf("want control (0, -1) but have %v", c)
	}
}
