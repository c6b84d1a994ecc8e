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
	"strconv"
	"strings"

	"github.com/ctessum/geom"
)

// ConvexHull returns the convex hull of the vertex set of g as a closed
// polygon ring, using Andrew's monotone chain. Degenerate inputs with
// fewer than three distinct vertices return a degenerate ring.
func ConvexHull(g geom.Geom) (geom.Polygon, error) {
	pts, err := vertices(g)
	if err != nil {
		return nil, err
	}
	hull := monotoneChain(pts)
	if len(hull) == 0 {
		return nil, fmt.Errorf("geomops: empty geometry has no convex hull")
	}
	ring := append(hull, hull[0])
	return geom.Polygon{ring}, nil
}

// monotoneChain returns the counterclockwise hull without the closing
// vertex.
func monotoneChain(pts []geom.Point) []geom.Point {
	p := make([]geom.Point, len(pts))
	copy(p, pts)
	sort.Slice(p, func(i, j int) bool {
		if p[i].X != p[j].X {
			return p[i].X < p[j].X
		}
		return p[i].Y < p[j].Y
	})
	// Drop duplicates.
	uniq := p[:0]
	for i, q := range p {
		if i == 0 || q != p[i-1] {
			uniq = append(uniq, q)
		}
	}
	p = uniq
	if len(p) < 3 {
		return p
	}
	var lower, upper []geom.Point
	for _, q := range p {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], q) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, q)
	}
	for i := len(p) - 1; i >= 0; i-- {
		q := p[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], q) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, q)
	}
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

func cross(o, a, b geom.Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// BoundingRect returns the four corners of the minimum-area rectangle
// enclosing g, found by rotating calipers over the convex hull edges.
// The corners are in ring order but the ring is not closed.
func BoundingRect(g geom.Geom) ([4]geom.Point, error) {
	var corners [4]geom.Point
	pts, err := vertices(g)
	if err != nil {
		return corners, err
	}
	hull := monotoneChain(pts)
	if len(hull) == 0 {
		return corners, fmt.Errorf("geomops: empty geometry has no bounding rectangle")
	}
	if len(hull) == 1 {
		for i := range corners {
			corners[i] = hull[0]
		}
		return corners, nil
	}
	best := math.Inf(1)
	for i := 0; i < len(hull); i++ {
		j := (i + 1) % len(hull)
		theta := math.Atan2(hull[j].Y-hull[i].Y, hull[j].X-hull[i].X)
		sin, cos := math.Sin(-theta), math.Cos(-theta)
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, p := range hull {
			x := p.X*cos - p.Y*sin
			y := p.X*sin + p.Y*cos
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
		area := (maxX - minX) * (maxY - minY)
		if area < best {
			best = area
			// Rotate the axis-aligned corners back.
			rs, rc := math.Sin(theta), math.Cos(theta)
			aligned := [4]geom.Point{
				{X: minX, Y: minY},
				{X: maxX, Y: minY},
				{X: maxX, Y: maxY},
				{X: minX, Y: maxY},
			}
			for k, p := range aligned {
				corners[k] = geom.Point{
					X: p.X*rc - p.Y*rs,
					Y: p.X*rs + p.Y*rc,
				}
			}
		}
	}
	return corners, nil
}

// HullRectangleString reports the corners of the minimum bounding
// rectangle in the host's textual form: eight space-separated numbers,
// x and y of each corner in ring order.
func HullRectangleString(g geom.Geom) (string, error) {
	corners, err := BoundingRect(g)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, 8)
	for _, c := range corners {
		parts = append(parts,
			strconv.FormatFloat(c.X, 'f', -1, 64),
			strconv.FormatFloat(c.Y, 'f', -1, 64))
	}
	return strings.Join(parts, " "), nil
}
