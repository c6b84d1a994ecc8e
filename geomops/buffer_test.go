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

package geomops

import (
	"math"
	"testing"

	"github.com/ctessum/geom"
)

func TestCircle(t *testing.T) {
	const tolerance = 1.e-10

	c := Circle(geom.Point{X: 3, Y: -2}, 5, 64)
	ring := c[0]
	if ring[0] != ring[len(ring)-1] {
		t.Error("circle ring not closed")
	}
	for _, p := range ring {
		d := math.Hypot(p.X-3, p.Y+2)
		if different(d, 5, tolerance) {
			t.Errorf("vertex %v at radius %g, want 5", p, d)
		}
	}

	// With many segments the area approaches πr².
	a := math.Abs(Circle(geom.Point{}, 1, 720).Area())
	if different(a, math.Pi, 1.e-4) {
		t.Errorf("want area π but have %g", a)
	}
}

func TestBufferGrow(t *testing.T) {
	g, err := Buffer(unitSquare, 2, DefaultBufferSegments)
	if err != nil {
		t.Fatal(err)
	}
	p := g.(geom.Polygon)
	b := p.Bounds()
	if pointsDifferent(b.Min, geom.Point{X: -2, Y: -2}, 1.e-5) ||
		pointsDifferent(b.Max, geom.Point{X: 12, Y: 12}, 1.e-5) {
		t.Errorf("want bounds (-2,-2)-(12,12) but have %v", b)
	}
	// Between the square with rectangular flanks (176) and the full
	// rounded offset (100 + 80 + 4π).
	a := math.Abs(p.Area())
	if a < 176 || a > 100+80+4*math.Pi+1.e-9 {
		t.Errorf("grown area %g out of range", a)
	}
}

func TestBufferErode(t *testing.T) {
	g, err := Buffer(unitSquare, -2, DefaultBufferSegments)
	if err != nil {
		t.Fatal(err)
	}
	p := g.(geom.Polygon)
	if a := math.Abs(p.Area()); different(a, 36, 0.01) {
		t.Errorf("want eroded area 36 but have %g", a)
	}
	b := p.Bounds()
	if pointsDifferent(b.Min, geom.Point{X: 2, Y: 2}, 0.01) ||
		pointsDifferent(b.Max, geom.Point{X: 8, Y: 8}, 0.01) {
		t.Errorf("want bounds (2,2)-(8,8) but have %v", b)
	}
}

func TestCapsuleVertical(t *testing.T) {
	c := capsule(segment{geom.Point{X: 10}, geom.Point{X: 10, Y: 10}}, 2, 16)
	b := c.Bounds()
	if pointsDifferent(b.Min, geom.Point{X: 8, Y: -2}, 1.e-5) ||
		pointsDifferent(b.Max, geom.Point{X: 12, Y: 12}, 1.e-5) {
		t.Errorf("want bounds (8,-2)-(12,12) but have %v", b)
	}
	// Rectangle plus two half discs.
	if a := math.Abs(c.Area()); different(a, 40+4*math.Pi, 0.2) {
		t.Errorf("want area %g but have %g", 40+4*math.Pi, a)
	}
}

func TestMergeCollinear(t *testing.T) {
	// A square ring split mid-edge, with the start vertex in the middle
	// of the bottom edge.
	segs := lineSegments(geom.MultiLineString{{
		{X: 5}, {X: 10}, {X: 10, Y: 10}, {Y: 10}, {}, {X: 5},
	}})
	merged := mergeCollinear(segs)
	if len(merged) != 4 {
		t.Fatalf("want 4 segments but have %d: %v", len(merged), merged)
	}
	if merged[0].a != (geom.Point{}) || merged[0].b != (geom.Point{X: 10}) {
		t.Errorf("bottom edge not rejoined: %v", merged[0])
	}
}

func TestBufferErodeToNothing(t *testing.T) {
	g, err := Buffer(unitSquare, -6, DefaultBufferSegments)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := g.(geom.Polygon)
	if ok && len(p) > 0 && math.Abs(p.Area()) > 1.e-9 {
		t.Errorf("want the square to erode away but have area %g", math.Abs(p.Area()))
	}
}

func TestBufferPoint(t *testing.T) {
	g, err := Buffer(geom.Point{X: 1, Y: 1}, 3, 64)
	if err != nil {
		t.Fatal(err)
	}
	a := math.Abs(g.(geom.Polygon).Area())
	if different(a, 9*math.Pi, 0.05) {
		t.Errorf("want area 9π but have %g", a)
	}
}

func TestBufferNegativeNonPolygon(t *testing.T) {
	if _, err := Buffer(geom.LineString{{X: 0}, {X: 1}}, -1, 16); err == nil {
		t.Error("want error eroding a line")
	}
	if _, err := Buffer(geom.Point{}, -1, 16); err == nil {
		t.Error("want error eroding a point")
	}
}
