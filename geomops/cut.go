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
	"sort"

	"github.com/ctessum/geom"
)

// Cut splits g by the cutting polyline and returns the singlepart
// pieces. Polygons are cut by subtracting an infinitesimally thin band
// around the cutter and splitting the remainder; polylines are split at
// their crossings with the cutter. An error is returned when the cutter
// does not cross g.
func Cut(g geom.Geom, cutter geom.LineString) ([]geom.Geom, error) {
	switch t := g.(type) {
	case geom.Polygon:
		return cutPolygon(t, cutter)
	case geom.MultiPolygon:
		var out []geom.Geom
		for _, p := range t {
			pieces, err := cutPolygon(p, cutter)
			if err != nil {
				return nil, err
			}
			out = append(out, pieces...)
		}
		return out, nil
	case geom.LineString:
		return cutLine(t, cutter)
	case geom.MultiLineString:
		var out []geom.Geom
		for _, l := range t {
			pieces, err := cutLine(l, cutter)
			if err != nil {
				return nil, err
			}
			out = append(out, pieces...)
		}
		return out, nil
	default:
		return nil, UnsupportedGeometryError{g}
	}
}

func cutPolygon(p geom.Polygon, cutter geom.LineString) ([]geom.Geom, error) {
	b := p.Bounds()
	diag := dist(b.Min, b.Max)
	if diag == 0 {
		return nil, fmt.Errorf("geomops: cannot cut a degenerate polygon")
	}
	band, err := Buffer(cutter, diag*1e-9, 1)
	if err != nil {
		return nil, err
	}
	remainder := p.Difference(band.(geom.Polygon))
	pieces := SplitMultipart(remainder)
	if len(pieces) < 2 {
		return nil, fmt.Errorf("geomops: cutter does not cross the polygon")
	}
	return pieces, nil
}

// cutLine splits l at every crossing with a cutter segment.
func cutLine(l geom.LineString, cutter geom.LineString) ([]geom.Geom, error) {
	cutSegs := lineSegments(geom.MultiLineString{cutter})
	var out []geom.Geom
	current := geom.LineString{}
	for i := 0; i < len(l)-1; i++ {
		a, b := l[i], l[i+1]
		current = append(current, a)
		// Crossings along this segment, nearest first.
		var hits []geom.Point
		for _, cs := range cutSegs {
			if x, ok := segmentIntersection(a, b, cs.a, cs.b); ok {
				hits = append(hits, x)
			}
		}
		sort.Slice(hits, func(i, j int) bool {
			return dist(a, hits[i]) < dist(a, hits[j])
		})
		for _, x := range hits {
			if x == a || x == b {
				continue
			}
			current = append(current, x)
			out = append(out, current)
			current = geom.LineString{x}
		}
	}
	current = append(current, l[len(l)-1])
	out = append(out, current)
	if len(out) < 2 {
		return nil, fmt.Errorf("geomops: cutter does not cross the line")
	}
	return out, nil
}

// segmentIntersection returns the crossing point of segments ab and cd,
// if they properly intersect.
func segmentIntersection(a, b, c, d geom.Point) (geom.Point, bool) {
	rX, rY := b.X-a.X, b.Y-a.Y
	sX, sY := d.X-c.X, d.Y-c.Y
	denom := rX*sY - rY*sX
	if math.Abs(denom) < 1e-300 {
		return geom.Point{}, false
	}
	t := ((c.X-a.X)*sY - (c.Y-a.Y)*sX) / denom
	u := ((c.X-a.X)*rY - (c.Y-a.Y)*rX) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return geom.Point{}, false
	}
	return geom.Point{X: a.X + t*rX, Y: a.Y + t*rY}, true
}
