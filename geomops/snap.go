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
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// Linework above this segment count is snapped through an r-tree
// instead of a linear scan.
const snapIndexThreshold = 64

// Nearest returns the point on g closest to p. Polygons snap to their
// boundary; points snap to themselves.
func Nearest(g geom.Geom, p geom.Point) (geom.Point, error) {
	switch t := g.(type) {
	case geom.Point:
		return t, nil
	case geom.MultiPoint:
		if len(t) == 0 {
			return geom.Point{}, fmt.Errorf("geomops: cannot snap to an empty multipoint")
		}
		best, bestD := t[0], dist(t[0], p)
		for _, q := range t[1:] {
			if d := dist(q, p); d < bestD {
				best, bestD = q, d
			}
		}
		return best, nil
	case geom.LineString:
		return nearestOnSegments(lineSegments(geom.MultiLineString{t}), p)
	case geom.MultiLineString:
		return nearestOnSegments(lineSegments(t), p)
	case geom.Polygon:
		return nearestOnSegments(lineSegments(ringsToLines(t)), p)
	case geom.MultiPolygon:
		b, err := Boundary(t)
		if err != nil {
			return geom.Point{}, err
		}
		return nearestOnSegments(lineSegments(b.(geom.MultiLineString)), p)
	default:
		return geom.Point{}, UnsupportedGeometryError{g}
	}
}

func nearestOnSegments(segs []segment, p geom.Point) (geom.Point, error) {
	if len(segs) == 0 {
		return geom.Point{}, fmt.Errorf("geomops: cannot snap to empty linework")
	}
	if len(segs) >= snapIndexThreshold {
		segs = candidateSegments(segs, p)
	}
	best := closestOnSegment(p, segs[0].a, segs[0].b)
	bestD := dist(best, p)
	for _, s := range segs[1:] {
		q := closestOnSegment(p, s.a, s.b)
		if d := dist(q, p); d < bestD {
			best, bestD = q, d
		}
	}
	return best, nil
}

// candidateSegments prunes segs to those that could contain the closest
// point to p. The distance to an arbitrary first segment bounds the
// search radius: anything closer must intersect that box.
func candidateSegments(segs []segment, p geom.Point) []segment {
	tree := rtree.NewTree(25, 50)
	for _, s := range segs {
		tree.Insert(geom.LineString{s.a, s.b})
	}
	r := dist(closestOnSegment(p, segs[0].a, segs[0].b), p)
	search := &geom.Bounds{
		Min: geom.Point{X: p.X - r, Y: p.Y - r},
		Max: geom.Point{X: p.X + r, Y: p.Y + r},
	}
	var out []segment
	for _, c := range tree.SearchIntersect(search) {
		l := c.(geom.LineString)
		out = append(out, segment{l[0], l[1]})
	}
	if len(out) == 0 {
		return segs[:1]
	}
	return out
}

// PositionAlongLine returns the point at the given distance along l,
// measured from its first vertex. Distances past the end clamp to the
// final vertex.
func PositionAlongLine(l geom.LineString, d float64) (geom.Point, error) {
	if len(l) == 0 {
		return geom.Point{}, fmt.Errorf("geomops: cannot walk an empty line")
	}
	if d <= 0 {
		return l[0], nil
	}
	walked := 0.
	for i := 0; i < len(l)-1; i++ {
		seg := dist(l[i], l[i+1])
		if walked+seg >= d && seg > 0 {
			t := (d - walked) / seg
			return geom.Point{
				X: l[i].X + t*(l[i+1].X-l[i].X),
				Y: l[i].Y + t*(l[i+1].Y-l[i].Y),
			}, nil
		}
		walked += seg
	}
	return l[len(l)-1], nil
}

// Length returns the total arc length of l.
func Length(l geom.LineString) float64 {
	var total float64
	for i := 0; i < len(l)-1; i++ {
		total += dist(l[i], l[i+1])
	}
	return total
}
