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
	"math"

	"github.com/ctessum/geom"
)

// DefaultBufferSegments is the number of segments used to approximate a
// quarter circle when buffering.
const DefaultBufferSegments = 16

// Circle returns a closed polygon approximating the circle around
// center with the given radius. segments is the number of vertices per
// quarter circle; values below 1 fall back to DefaultBufferSegments.
func Circle(center geom.Point, radius float64, segments int) geom.Polygon {
	if segments < 1 {
		segments = DefaultBufferSegments
	}
	n := segments * 4
	ring := make([]geom.Point, n+1)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = geom.Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		}
	}
	ring[n] = ring[0]
	return geom.Polygon{ring}
}

// Buffer expands g by the distance d. For polygons d may be negative,
// in which case the polygon is eroded: the result is the polygon minus
// a band of width -d along its boundary, which is how the maximum
// inscribed circle estimator shrinks its working polygon. A polygon
// eroded past its inradius comes back empty.
func Buffer(g geom.Geom, d float64, segments int) (geom.Geom, error) {
	if d == 0 {
		return g, nil
	}
	switch t := g.(type) {
	case geom.Point:
		if d < 0 {
			return nil, fmt.Errorf("geomops: cannot buffer a point by %g", d)
		}
		return Circle(t, d, segments), nil
	case geom.MultiPoint:
		if d < 0 {
			return nil, fmt.Errorf("geomops: cannot buffer points by %g", d)
		}
		var u geom.Polygon
		for _, p := range t {
			u = union(u, Circle(p, d, segments))
		}
		return u, nil
	case geom.LineString:
		if d < 0 {
			return nil, fmt.Errorf("geomops: cannot buffer a line by %g", d)
		}
		return bufferSegments(lineSegments(geom.MultiLineString{t}), d, segments), nil
	case geom.MultiLineString:
		if d < 0 {
			return nil, fmt.Errorf("geomops: cannot buffer a line by %g", d)
		}
		return bufferSegments(lineSegments(t), d, segments), nil
	case geom.Polygon:
		return bufferPolygon(t, d, segments)
	case geom.MultiPolygon:
		var u geom.Polygon
		for _, p := range t {
			b, err := bufferPolygon(p, d, segments)
			if err != nil {
				return nil, err
			}
			u = union(u, b)
		}
		return u, nil
	default:
		return nil, UnsupportedGeometryError{g}
	}
}

func bufferPolygon(p geom.Polygon, d float64, segments int) (geom.Polygon, error) {
	band := bufferSegments(lineSegments(ringsToLines(p)), math.Abs(d), segments)
	if d > 0 {
		return p.Union(band), nil
	}
	return p.Difference(band), nil
}

// bufferSegments unions the capsules around each segment.
func bufferSegments(segs []segment, d float64, segments int) geom.Polygon {
	live := make([]segment, 0, len(segs))
	for _, s := range segs {
		if s.a != s.b {
			live = append(live, s)
		}
	}
	var u geom.Polygon
	for _, s := range mergeCollinear(live) {
		u = union(u, capsule(s, d, segments))
	}
	return u
}

// mergeCollinear joins runs of consecutive segments that continue in
// the same direction. Clipper output places crossing vertices in the
// middle of straight edges, and capsules around the split halves would
// hand the clipper a shared collinear side.
func mergeCollinear(segs []segment) []segment {
	if len(segs) < 2 {
		return segs
	}
	out := make([]segment, 0, len(segs))
	cur := segs[0]
	for _, s := range segs[1:] {
		if s.a == cur.b && collinearSameDir(cur, s) {
			cur.b = s.b
			continue
		}
		out = append(out, cur)
		cur = s
	}
	// A closed chain can wrap a straight edge around its start vertex.
	if len(out) > 0 && cur.b == out[0].a && collinearSameDir(cur, out[0]) {
		out[0].a = cur.a
	} else {
		out = append(out, cur)
	}
	return out
}

func collinearSameDir(s1, s2 segment) bool {
	ux, uy := s1.b.X-s1.a.X, s1.b.Y-s1.a.Y
	vx, vy := s2.b.X-s2.a.X, s2.b.Y-s2.a.Y
	return math.Abs(ux*vy-uy*vx) <= 1.e-12*math.Hypot(ux, uy)*math.Hypot(vx, vy) &&
		ux*vx+uy*vy > 0
}

// capsule is the buffer of a single segment: two offset sides joined by
// semicircular end caps, built as one counterclockwise ring. The ends
// are pushed out slightly so that consecutive capsules overlap instead
// of meeting the clipper with coincident cap circles around a shared
// vertex.
func capsule(s segment, d float64, segments int) geom.Polygon {
	dx, dy := s.b.X-s.a.X, s.b.Y-s.a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return Circle(s.a, d, segments)
	}
	if segments < 1 {
		segments = DefaultBufferSegments
	}
	eps := d * 1.e-7
	ux, uy := dx/l, dy/l
	a := geom.Point{X: s.a.X - ux*eps, Y: s.a.Y - uy*eps}
	b := geom.Point{X: s.b.X + ux*eps, Y: s.b.Y + uy*eps}

	theta := math.Atan2(uy, ux)
	n := 2 * segments
	ring := make([]geom.Point, 0, 2*n+3)
	for i := 0; i <= n; i++ {
		ang := theta - math.Pi/2 + math.Pi*float64(i)/float64(n)
		ring = append(ring, geom.Point{X: b.X + d*math.Cos(ang), Y: b.Y + d*math.Sin(ang)})
	}
	for i := 0; i <= n; i++ {
		ang := theta + math.Pi/2 + math.Pi*float64(i)/float64(n)
		ring = append(ring, geom.Point{X: a.X + d*math.Cos(ang), Y: a.Y + d*math.Sin(ang)})
	}
	ring = append(ring, ring[0])
	return geom.Polygon{ring}
}

func union(a, b geom.Polygon) geom.Polygon {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	return a.Union(b)
}
