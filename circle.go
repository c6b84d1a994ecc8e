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
	"github.com/ctessum/geom/op"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/spatialtools/geomtools/geomops"
)

// RadiusField is the attribute carrying circle radii on circle and
// inscribed-circle outputs.
const RadiusField = "distance"

// CircleFromThreePoints builds one circle through every three
// consecutive points of the collection. The collection must hold
// singlepart point features, and the feature count must be a multiple
// of three; every non-overlapping triple, in row order, yields the
// unique circle through its points. Collinear triples have no such
// circle: they are reported and skipped without aborting the run.
//
// The returned centers carry the radius in the RadiusField attribute;
// circles are the centers buffered by their radius.
func (fc *FeatureCollection) CircleFromThreePoints() (centers, circles *FeatureCollection, err error) {
	if st := fc.ShapeType(); st != TypePoint {
		return nil, nil, fmt.Errorf("geomtools: circle from three points only works for point collections, not %q", st)
	}
	if fc.IsMultipart() {
		return nil, nil, fmt.Errorf("geomtools: circle from three points does not accept multipart features")
	}
	if fc.Count()%3 != 0 {
		return nil, nil, fmt.Errorf("geomtools: circle from three points needs groups of three points, have %d", fc.Count())
	}

	centers = NewFeatureCollection(fc.SR, fc.SRDef, Field{Name: RadiusField, Type: FloatType})
	circles = NewFeatureCollection(fc.SR, fc.SRDef, Field{Name: RadiusField, Type: FloatType})

	shapes := fc.Geometries()
	for i := 0; i+2 < len(shapes); i += 3 {
		p1 := shapes[i].(geom.Point)
		p2 := shapes[i+1].(geom.Point)
		p3 := shapes[i+2].(geom.Point)

		center, ok := circumcenter(p1, p2, p3)
		if !ok {
			log.WithFields(log.Fields{
				"triple": i / 3,
			}).Warn("no point is equidistant from all three points; skipping collinear triple")
			continue
		}
		radius := op.Distance(p1, center)

		attrs := map[string]interface{}{RadiusField: radius}
		centers.Append(center, attrs)
		circles.Append(geomops.Circle(center, radius, geomops.DefaultBufferSegments),
			map[string]interface{}{RadiusField: radius})
	}
	return centers, circles, nil
}

// circumcenter solves for the point equidistant from the three given
// points with Cramer's rule. ok is false when the points are collinear
// and no unique solution exists.
func circumcenter(p1, p2, p3 geom.Point) (center geom.Point, ok bool) {
	pts := []geom.Point{p1, p2, p3}
	m := mat.NewDense(3, 3, nil)
	for i, p := range pts {
		m.SetRow(i, []float64{p.X, p.Y, 1})
	}
	detA := mat.Det(m)
	if detA == 0 {
		return geom.Point{}, false
	}
	for i, p := range pts {
		m.SetRow(i, []float64{(p.X*p.X + p.Y*p.Y) / 2, p.Y, 1})
	}
	x := mat.Det(m) / detA
	for i, p := range pts {
		m.SetRow(i, []float64{p.X, (p.X*p.X + p.Y*p.Y) / 2, 1})
	}
	y := mat.Det(m) / detA
	return geom.Point{X: x, Y: y}, true
}
