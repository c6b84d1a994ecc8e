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

// Package geomops provides the spatial primitives that the geomtools
// operations are built on: boundaries, centroids, distances, buffers,
// convex hulls, line snapping and sampling, and multipart handling.
// All functions operate on github.com/ctessum/geom geometry types.
package geomops

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
)

// UnsupportedGeometryError is returned for geometry types an operation
// cannot handle.
type UnsupportedGeometryError struct {
	G geom.Geom
}

func (e UnsupportedGeometryError) Error() string {
	return fmt.Sprintf("geomops: unsupported geometry type %T", e.G)
}

// Boundary returns the topological boundary of g: the rings of a
// polygon as lines, the endpoints of a polyline as points, and points
// unchanged.
func Boundary(g geom.Geom) (geom.Geom, error) {
	switch t := g.(type) {
	case geom.Point:
		return t, nil
	case geom.MultiPoint:
		return t, nil
	case geom.LineString:
		if len(t) == 0 {
			return geom.MultiPoint{}, nil
		}
		return geom.MultiPoint{t[0], t[len(t)-1]}, nil
	case geom.MultiLineString:
		var mp geom.MultiPoint
		for _, l := range t {
			if len(l) > 0 {
				mp = append(mp, l[0], l[len(l)-1])
			}
		}
		return mp, nil
	case geom.Polygon:
		return ringsToLines(t), nil
	case geom.MultiPolygon:
		var ml geom.MultiLineString
		for _, p := range t {
			ml = append(ml, ringsToLines(p)...)
		}
		return ml, nil
	default:
		return nil, UnsupportedGeometryError{g}
	}
}

func ringsToLines(p geom.Polygon) geom.MultiLineString {
	ml := make(geom.MultiLineString, 0, len(p))
	for _, r := range p {
		if len(r) == 0 {
			continue
		}
		l := make(geom.LineString, len(r), len(r)+1)
		copy(l, r)
		if l[0] != l[len(l)-1] {
			l = append(l, l[0])
		}
		ml = append(ml, l)
	}
	return ml
}

// VertexCentroid returns the arithmetic mean of the vertices of g.
// Duplicated ring-closing vertices are not counted twice.
func VertexCentroid(g geom.Geom) (geom.Point, error) {
	pts, err := vertices(g)
	if err != nil {
		return geom.Point{}, err
	}
	if len(pts) == 0 {
		return geom.Point{}, fmt.Errorf("geomops: empty geometry has no centroid")
	}
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return geom.Point{X: sx / n, Y: sy / n}, nil
}

// TrueCentroid returns the area-weighted centroid for polygonal
// geometries and the length-weighted centroid for lines. For points it
// is the same as VertexCentroid.
func TrueCentroid(g geom.Geom) (geom.Point, error) {
	switch t := g.(type) {
	case geom.Polygon:
		if t.Area() == 0 {
			return VertexCentroid(g)
		}
		return t.Centroid(), nil
	case geom.MultiPolygon:
		if t.Area() == 0 {
			return VertexCentroid(g)
		}
		return t.Centroid(), nil
	case geom.LineString:
		return lineCentroid(geom.MultiLineString{t})
	case geom.MultiLineString:
		return lineCentroid(t)
	default:
		return VertexCentroid(g)
	}
}

func lineCentroid(ml geom.MultiLineString) (geom.Point, error) {
	var sx, sy, total float64
	for _, l := range ml {
		for i := 0; i < len(l)-1; i++ {
			d := dist(l[i], l[i+1])
			sx += (l[i].X + l[i+1].X) / 2 * d
			sy += (l[i].Y + l[i+1].Y) / 2 * d
			total += d
		}
	}
	if total == 0 {
		return VertexCentroid(ml)
	}
	return geom.Point{X: sx / total, Y: sy / total}, nil
}

// Distance returns the minimum distance between g and the point p.
// Points inside a polygon have distance zero; use Boundary first for
// clearance against the polygon outline.
func Distance(g geom.Geom, p geom.Point) (float64, error) {
	switch t := g.(type) {
	case geom.Point:
		return dist(t, p), nil
	case geom.MultiPoint:
		if len(t) == 0 {
			return 0, fmt.Errorf("geomops: distance to empty multipoint")
		}
		min := math.Inf(1)
		for _, q := range t {
			if d := dist(q, p); d < min {
				min = d
			}
		}
		return min, nil
	case geom.LineString:
		return distToSegments(lineSegments(geom.MultiLineString{t}), p)
	case geom.MultiLineString:
		return distToSegments(lineSegments(t), p)
	case geom.Polygon:
		if p.Within(t) == geom.Inside {
			return 0, nil
		}
		return distToSegments(lineSegments(ringsToLines(t)), p)
	case geom.MultiPolygon:
		if p.Within(t) == geom.Inside {
			return 0, nil
		}
		b, err := Boundary(t)
		if err != nil {
			return 0, err
		}
		return distToSegments(lineSegments(b.(geom.MultiLineString)), p)
	default:
		return 0, UnsupportedGeometryError{g}
	}
}

func distToSegments(segs []segment, p geom.Point) (float64, error) {
	if len(segs) == 0 {
		return 0, fmt.Errorf("geomops: distance to empty linework")
	}
	min := math.Inf(1)
	for _, s := range segs {
		if d := dist(closestOnSegment(p, s.a, s.b), p); d < min {
			min = d
		}
	}
	return min, nil
}

// SplitMultipart returns the singlepart pieces of g in part order.
// Polygon holes stay attached to the outer ring that contains them.
func SplitMultipart(g geom.Geom) []geom.Geom {
	switch t := g.(type) {
	case geom.MultiPoint:
		out := make([]geom.Geom, len(t))
		for i, p := range t {
			out[i] = p
		}
		return out
	case geom.MultiLineString:
		out := make([]geom.Geom, len(t))
		for i, l := range t {
			out[i] = l
		}
		return out
	case geom.MultiPolygon:
		var out []geom.Geom
		for _, p := range t {
			out = append(out, SplitMultipart(p)...)
		}
		return out
	case geom.Polygon:
		return splitPolygon(t)
	default:
		return []geom.Geom{g}
	}
}

// splitPolygon separates a multi-ring polygon into one polygon per
// outer ring, attaching each hole to the first outer ring containing
// its lead vertex.
func splitPolygon(p geom.Polygon) []geom.Geom {
	var dominant float64
	for _, r := range p {
		if a := ringArea(r); math.Abs(a) > math.Abs(dominant) {
			dominant = a
		}
	}
	var outers []geom.Polygon
	var holes [][]geom.Point
	for _, r := range p {
		a := ringArea(r)
		if a != 0 && (a >= 0) == (dominant >= 0) {
			outers = append(outers, geom.Polygon{r})
		} else if len(r) > 0 {
			holes = append(holes, r)
		}
	}
	if len(outers) <= 1 {
		return []geom.Geom{p}
	}
	for _, h := range holes {
		for i := range outers {
			if h[0].Within(outers[i]) != geom.Outside {
				outers[i] = append(outers[i], h)
				break
			}
		}
	}
	out := make([]geom.Geom, len(outers))
	for i, o := range outers {
		out[i] = o
	}
	return out
}

// PointCount returns the number of vertices in g.
func PointCount(g geom.Geom) int {
	pts, err := vertices(g)
	if err != nil {
		return 0
	}
	return len(pts)
}

// vertices collects the vertex set of g, skipping duplicated
// ring-closing points.
func vertices(g geom.Geom) ([]geom.Point, error) {
	switch t := g.(type) {
	case geom.Point:
		return []geom.Point{t}, nil
	case geom.MultiPoint:
		return t, nil
	case geom.LineString:
		return t, nil
	case geom.MultiLineString:
		var pts []geom.Point
		for _, l := range t {
			pts = append(pts, l...)
		}
		return pts, nil
	case geom.Polygon:
		var pts []geom.Point
		for _, r := range t {
			pts = append(pts, openRing(r)...)
		}
		return pts, nil
	case geom.MultiPolygon:
		var pts []geom.Point
		for _, p := range t {
			sub, err := vertices(p)
			if err != nil {
				return nil, err
			}
			pts = append(pts, sub...)
		}
		return pts, nil
	default:
		return nil, UnsupportedGeometryError{g}
	}
}

func openRing(r []geom.Point) []geom.Point {
	if len(r) > 1 && r[0] == r[len(r)-1] {
		return r[:len(r)-1]
	}
	return r
}

func ringArea(r []geom.Point) float64 {
	if len(r) < 3 {
		return 0
	}
	var a float64
	for i := 0; i < len(r); i++ {
		j := (i + 1) % len(r)
		a += r[i].X*r[j].Y - r[j].X*r[i].Y
	}
	return a / 2
}

func dist(a, b geom.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// closestOnSegment returns the point on segment ab closest to p.
func closestOnSegment(p, a, b geom.Point) geom.Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return a
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return geom.Point{X: a.X + t*dx, Y: a.Y + t*dy}
}

type segment struct {
	a, b geom.Point
}

func (s segment) Bounds() *geom.Bounds {
	b := geom.NewBoundsPoint(s.a)
	b.Extend(geom.NewBoundsPoint(s.b))
	return b
}

func lineSegments(ml geom.MultiLineString) []segment {
	var segs []segment
	for _, l := range ml {
		for i := 0; i < len(l)-1; i++ {
			segs = append(segs, segment{l[i], l[i+1]})
		}
	}
	return segs
}
