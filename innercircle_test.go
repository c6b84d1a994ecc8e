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
	"testing"

	"github.com/ctessum/geom"
)

func square(x0, y0, side float64) geom.Polygon {
	return geom.Polygon{{
		{X: x0, Y: y0},
		{X: x0 + side, Y: y0},
		{X: x0 + side, Y: y0 + side},
		{X: x0, Y: y0 + side},
	}}
}

func TestInnerCircleSquare(t *testing.T) {
	const tolerance = 0.05

	fc := NewFeatureCollection(nil, "")
	fc.Append(square(0, 0, 10), nil)

	centers, circles, err := fc.InnerCircle(0.01)
	if err != nil {
		t.Fatal(err)
	}
	if centers.Count() != 1 || circles.Count() != 1 {
		t.Fatalf("want 1 inscribed circle but have %d centers, %d circles",
			centers.Count(), circles.Count())
	}

	// The first boundary clearance is already the full inradius, so
	// the first erosion collapses the square and the estimate is exact.
	c := centers.Feature(0).Geom.(geom.Point)
	if pointsDifferent(c, geom.Point{X: 5, Y: 5}, tolerance) {
		t.Errorf("want center (5, 5) but have %v", c)
	}
	r := centers.Feature(0).Attrs[InnerRadiusField].(float64)
	if different(r, 5, tolerance) {
		t.Errorf("want radius 5 but have %g", r)
	}
}

func TestInnerCircleRectangle(t *testing.T) {
	// A 20×10 rectangle: the largest inscribed circle has radius 5,
	// which is also the centroid clearance, so the first erosion
	// collapses the rectangle.
	fc := NewFeatureCollection(nil, "")
	fc.Append(geom.Polygon{{
		{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 10}, {X: 0, Y: 10},
	}}, nil)

	centers, _, err := fc.InnerCircle(0.01)
	if err != nil {
		t.Fatal(err)
	}
	r := centers.Feature(0).Attrs[InnerRadiusField].(float64)
	if different(r, 5, 0.2) {
		t.Errorf("want radius near 5 but have %g", r)
	}
	c := centers.Feature(0).Geom.(geom.Point)
	if different(c.Y, 5, 0.2) {
		t.Errorf("want center on the long axis (y=5) but have %v", c)
	}
}

func TestInnerCircleConvergence(t *testing.T) {
	// A right triangle with legs of 20: the centroid clearance
	// (20/(3√2) ≈ 4.71) is well below the inradius 20−10√2 ≈ 5.86, so
	// the estimate is only reached after several erosions. Each erosion
	// of a triangle is a similar triangle, and the accumulated
	// clearances telescope to the inradius.
	fc := NewFeatureCollection(nil, "")
	fc.Append(geom.Polygon{{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 0, Y: 20}}}, nil)

	centers, _, err := fc.InnerCircle(0.01)
	if err != nil {
		t.Fatal(err)
	}
	want := 20 - 10*math.Sqrt2
	r := centers.Feature(0).Attrs[InnerRadiusField].(float64)
	if different(r, want, 0.05) {
		t.Errorf("want radius %g but have %g", want, r)
	}
	c := centers.Feature(0).Geom.(geom.Point)
	if pointsDifferent(c, geom.Point{X: want, Y: want}, 0.05) {
		t.Errorf("want center at the incenter (%g, %g) but have %v", want, want, c)
	}
}

func TestInnerCircleMultipart(t *testing.T) {
	// Multipart polygons are split and estimated per piece.
	fc := NewFeatureCollection(nil, "")
	fc.Append(geom.MultiPolygon{square(0, 0, 10), square(100, 0, 4)}, nil)

	centers, _, err := fc.InnerCircle(0.01)
	if err != nil {
		t.Fatal(err)
	}
	if centers.Count() != 2 {
		t.Fatalf("want 2 inscribed circles but have %d", centers.Count())
	}
	r0 := centers.Feature(0).Attrs[InnerRadiusField].(float64)
	r1 := centers.Feature(1).Attrs[InnerRadiusField].(float64)
	if different(r0, 5, 0.05) || different(r1, 2, 0.05) {
		t.Errorf("want radii 5 and 2 but have %g and %g", r0, r1)
	}
}

func TestInnerCirclePreconditions(t *testing.T) {
	points := pointCollection(geom.Point{})
	if _, _, err := points.InnerCircle(0.1); err == nil {
		t.Error("want error for point input")
	}

	fc := NewFeatureCollection(nil, "")
	fc.Append(square(0, 0, 10), nil)
	if _, _, err := fc.InnerCircle(0); err == nil {
		t.Error("want error for non-positive accuracy")
	}
	if _, _, err := fc.InnerCircle(-1); err == nil {
		t.Error("want error for negative accuracy")
	}
}
