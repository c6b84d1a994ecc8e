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
	"math"
	"reflect"
	"testing"

	"github.com/ctessum/geom"
)

func TestExtent(t *testing.T) {
	fc := NewFeatureCollection(nil, "",
		Field{Name: "name", Type: StringType},
		Field{Name: "OBJECTID", Type: IntType})
	fc.Append(geom.LineString{{X: 1, Y: 2}, {X: 5, Y: 3}, {X: 4, Y: 8}},
		map[string]interface{}{"name": "a", "OBJECTID": 7})

	out, err := fc.Extent()
	if err != nil {
		t.Fatal(err)
	}
	want := geom.Polygon{{
		{X: 1, Y: 2}, {X: 5, Y: 2}, {X: 5, Y: 8}, {X: 1, Y: 8}, {X: 1, Y: 2},
	}}
	if !reflect.DeepEqual(out.Feature(0).Geom, want) {
		t.Errorf("want %v but have %v", want, out.Feature(0).Geom)
	}

	// Non-system attributes carry over with a back reference; system
	// identity fields do not.
	attrs := out.Feature(0).Attrs
	if attrs[OrigFIDField] != 1 || attrs["name"] != "a" {
		t.Errorf("want ORIG_FID 1 and name \"a\" but have %v", attrs)
	}
	if _, ok := attrs["OBJECTID"]; ok {
		t.Error("system field OBJECTID copied to output")
	}
}

func TestBoundary(t *testing.T) {
	fc := NewFeatureCollection(nil, "")
	fc.Append(square(0, 0, 10), nil)

	out, err := fc.Boundary()
	if err != nil {
		t.Fatal(err)
	}
	ml, ok := out.Feature(0).Geom.(geom.MultiLineString)
	if !ok {
		t.Fatalf("want MultiLineString but have %#v", out.Feature(0).Geom)
	}
	if len(ml) != 1 {
		t.Fatalf("want 1 ring line but have %d", len(ml))
	}
	l := ml[0]
	if l[0] != l[len(l)-1] {
		t.Error("boundary ring line is not closed")
	}
}

func TestConvexHull(t *testing.T) {
	fc := NewFeatureCollection(nil, "")
	fc.Append(geom.MultiPoint{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
		{X: 2, Y: 2}, // interior
	}, nil)

	out, err := fc.ConvexHull()
	if err != nil {
		t.Fatal(err)
	}
	hull := out.Feature(0).Geom.(geom.Polygon)
	if a := math.Abs(hull.Area()); different(a, 16, 1.e-10) {
		t.Errorf("want hull area 16 but have %g", a)
	}
	for _, p := range hull[0] {
		if p.X == 2 && p.Y == 2 {
			t.Error("interior point appears on the hull")
		}
	}
}

func TestHullRectangle(t *testing.T) {
	// A diamond: its minimum bounding rectangle is rotated 45° and has
	// half the area of the axis-aligned extent.
	fc := NewFeatureCollection(nil, "")
	fc.Append(geom.MultiPoint{
		{X: 2, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 2},
	}, nil)

	out, err := fc.HullRectangle()
	if err != nil {
		t.Fatal(err)
	}
	rect := out.Feature(0).Geom.(geom.Polygon)
	if len(rect[0]) != 5 {
		t.Fatalf("want closed 4-corner ring but have %d points", len(rect[0]))
	}
	if a := math.Abs(rect.Area()); different(a, 8, 1.e-6) {
		t.Errorf("want rectangle area 8 but have %g", a)
	}
}

func TestParseHullRectangle(t *testing.T) {
	// Coordinates may carry a locale decimal comma.
	p, err := parseHullRectangle("0,5 0 2 0 2 1,5 0.5 1.5")
	if err != nil {
		t.Fatal(err)
	}
	want := geom.Polygon{{
		{X: 0.5, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1.5}, {X: 0.5, Y: 1.5}, {X: 0.5, Y: 0},
	}}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("want %v but have %v", want, p)
	}

	if _, err := parseHullRectangle("1 2 3"); err == nil {
		t.Error("want error for wrong coordinate count")
	}
	if _, err := parseHullRectangle("a b c d e f g h"); err == nil {
		t.Error("want error for non-numeric coordinates")
	}
}

func TestPointsAlong(t *testing.T) {
	const tolerance = 1.e-10
	fc := NewFeatureCollection(nil, "")
	fc.Append(geom.LineString{{X: 0, Y: 0}, {X: 10, Y: 0}}, nil)

	out, err := fc.PointsAlong(3)
	if err != nil {
		t.Fatal(err)
	}
	mp := out.Feature(0).Geom.(geom.MultiPoint)
	want := []float64{0, 3, 6, 9}
	if len(mp) != len(want) {
		t.Fatalf("want %d samples but have %d", len(want), len(mp))
	}
	for i, p := range mp {
		if different(p.X, want[i], tolerance) || different(p.Y, 0, tolerance) {
			t.Errorf("sample %d: want (%g, 0) but have %v", i, want[i], p)
		}
	}

	if _, err := fc.PointsAlong(0); err == nil {
		t.Error("want error for non-positive step")
	}
	points := pointCollection(geom.Point{})
	if _, err := points.PointsAlong(1); err == nil {
		t.Error("want error for point input")
	}
}

func TestLineToPolygon(t *testing.T) {
	fc := NewFeatureCollection(nil, "")
	fc.Append(geom.LineString{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}}, nil)

	out, err := fc.LineToPolygon()
	if err != nil {
		t.Fatal(err)
	}
	p := out.Feature(0).Geom.(geom.Polygon)
	if len(p) != 1 || len(p[0]) != 4 {
		t.Fatalf("want one closed 3-vertex ring but have %v", p)
	}
	if p[0][0] != p[0][3] {
		t.Error("ring is not closed")
	}
}

func TestLineToPolygonBadRing(t *testing.T) {
	// A two-vertex path cannot form a ring: the whole run yields an
	// empty collection and the sentinel error.
	fc := NewFeatureCollection(nil, "")
	fc.Append(geom.LineString{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}}, nil)
	fc.Append(geom.LineString{{X: 0, Y: 0}, {X: 1, Y: 1}}, nil)

	out, err := fc.LineToPolygon()
	if err != ErrRingStructure {
		t.Fatalf("want ErrRingStructure but have %v", err)
	}
	if out.Count() != 0 {
		t.Errorf("want empty collection but have %d features", out.Count())
	}
}

func TestCut(t *testing.T) {
	fc := NewFeatureCollection(nil, "")
	fc.Append(square(0, 0, 10), nil)

	cutter := NewFeatureCollection(nil, "")
	cutter.Append(geom.LineString{{X: 4, Y: -1}, {X: 4, Y: 11}}, nil)

	out, err := Cut(fc, cutter)
	if err != nil {
		t.Fatal(err)
	}
	if out.Count() != 2 {
		t.Fatalf("want 2 pieces but have %d", out.Count())
	}
	var total float64
	for _, f := range out.Features() {
		total += math.Abs(f.Geom.(geom.Polygon).Area())
		if f.Attrs[OrigFIDField] != 1 {
			t.Errorf("want ORIG_FID 1 but have %v", f.Attrs[OrigFIDField])
		}
	}
	if different(total, 100, 0.01) {
		t.Errorf("want piece areas summing to 100 but have %g", total)
	}
}

func TestCutMiss(t *testing.T) {
	// A cutter that does not cross leaves the feature whole.
	fc := NewFeatureCollection(nil, "")
	fc.Append(square(0, 0, 10), nil)

	cutter := NewFeatureCollection(nil, "")
	cutter.Append(geom.LineString{{X: 20, Y: -1}, {X: 20, Y: 11}}, nil)

	out, err := Cut(fc, cutter)
	if err != nil {
		t.Fatal(err)
	}
	if out.Count() != 1 {
		t.Fatalf("want 1 piece but have %d", out.Count())
	}
}

func TestCutPreconditions(t *testing.T) {
	lines := NewFeatureCollection(nil, "")
	lines.Append(geom.LineString{{X: 0}, {X: 1}}, nil)

	points := pointCollection(geom.Point{})
	if _, err := Cut(points, lines); err == nil {
		t.Error("want error for point input")
	}
	fc := NewFeatureCollection(nil, "")
	fc.Append(square(0, 0, 1), nil)
	if _, err := Cut(fc, points); err == nil {
		t.Error("want error for non-polyline cutter")
	}
}
