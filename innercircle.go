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
	"fmt"

	"github.com/ctessum/geom"
	log "github.com/sirupsen/logrus"

	"github.com/spatialtools/geomtools/geomops"
)

// InnerRadiusField is the attribute carrying the inscribed-circle
// radius on InnerCircle outputs.
const InnerRadiusField = "radius"

// InnerCircle estimates the maximum inscribed circle of every polygon
// in the collection. Multipart polygons are split first and estimated
// per piece.
//
// Each piece is shrunk toward its Chebyshev center by a fixed-point
// iteration: the clearance between the boundary and the centroid is
// accumulated into the radius, and the polygon is eroded inward by that
// clearance until it drops to the accuracy threshold or the polygon
// degenerates. Failures of the geometric primitives during the
// iteration truncate the estimate at the accumulated value instead of
// failing the whole run.
func (fc *FeatureCollection) InnerCircle(accuracy float64) (centers, circles *FeatureCollection, err error) {
	if st := fc.ShapeType(); st != TypePolygon {
		return nil, nil, fmt.Errorf("geomtools: inner circle only works for polygon collections, not %q", st)
	}
	if accuracy <= 0 {
		return nil, nil, fmt.Errorf("geomtools: inner circle accuracy must be positive, have %g", accuracy)
	}

	centers = NewFeatureCollection(fc.SR, fc.SRDef, Field{Name: InnerRadiusField, Type: FloatType})
	circles = NewFeatureCollection(fc.SR, fc.SRDef, Field{Name: InnerRadiusField, Type: FloatType})

	for _, f := range fc.Features() {
		if f.Geom == nil {
			continue
		}
		for _, piece := range geomops.SplitMultipart(f.Geom) {
			poly, ok := piece.(geom.Polygon)
			if !ok {
				continue
			}
			center, radius := convergeInnerCircle(poly, accuracy, f.ID)
			attrs := map[string]interface{}{InnerRadiusField: radius}
			centers.Append(center, attrs)
			circles.Append(geomops.Circle(center, radius, geomops.DefaultBufferSegments),
				map[string]interface{}{InnerRadiusField: radius})
		}
	}
	return centers, circles, nil
}

// convergeInnerCircle runs the shrink iteration on one singlepart
// polygon. The clearance is strictly decreasing and bounded below by
// zero, so the loop terminates.
func convergeInnerCircle(poly geom.Polygon, accuracy float64, id int) (geom.Point, float64) {
	var total float64
	centroid, cerr := geomops.TrueCentroid(poly)
	if cerr != nil {
		log.WithField("feature", id).Warn("inner circle could not start: ", cerr)
		return geom.Point{}, 0
	}
	for {
		boundary, err := geomops.Boundary(poly)
		if err != nil {
			log.WithField("feature", id).Warn("inner circle truncated: ", err)
			return centroid, total
		}
		d, err := geomops.Distance(boundary, centroid)
		if err != nil {
			log.WithField("feature", id).Warn("inner circle truncated: ", err)
			return centroid, total
		}
		total += d

		// A polygon eroded down to two vertices cannot shrink any
		// further; treat it as converged.
		if d <= accuracy || geomops.PointCount(poly) == 2 {
			return centroid, total
		}

		shrunk, err := geomops.Buffer(poly, -d, geomops.DefaultBufferSegments)
		if err != nil {
			log.WithField("feature", id).Warn("inner circle truncated: ", err)
			return centroid, total
		}
		next, ok := shrunk.(geom.Polygon)
		if !ok || len(next) == 0 || next.Area() == 0 {
			// The erosion collapsed the polygon; the centroid of the
			// last non-degenerate shape is the estimate.
			return centroid, total
		}
		poly = next
		c, err := geomops.TrueCentroid(poly)
		if err != nil {
			log.WithField("feature", id).Warn("inner circle truncated: ", err)
			return centroid, total
		}
		centroid = c
	}
}
