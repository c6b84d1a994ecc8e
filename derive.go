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
	"math"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	log "github.com/sirupsen/logrus"

	"github.com/spatialtools/geomtools/geomops"
)

// OrigFIDField carries the source feature identifier on derived
// outputs.
const OrigFIDField = "ORIG_FID"

// ErrRingStructure marks a failed polyline-to-polygon reinterpretation.
// Callers receive an empty collection alongside it and can branch on
// the marker instead of handling a malformed geometry.
var ErrRingStructure = fmt.Errorf("geomtools: paths are not usable as polygon rings")

// systemFields are identity, geometry and measure fields maintained by
// the store; they are never copied onto derived outputs.
var systemFields = map[string]bool{
	"objectid":     true,
	"fid":          true,
	"oid":          true,
	"shape":        true,
	"shape_length": true,
	"shape_area":   true,
}

// deriveEach applies fn to every non-null feature and collects the
// results into a new collection with the source's non-system attribute
// fields plus an ORIG_FID back reference.
func (fc *FeatureCollection) deriveEach(fn func(geom.Geom) (geom.Geom, error)) (*FeatureCollection, error) {
	fields := []Field{{Name: OrigFIDField, Type: IntType}}
	for _, f := range fc.fields {
		if !systemFields[strings.ToLower(f.Name)] {
			fields = append(fields, f)
		}
	}
	out := NewFeatureCollection(fc.SR, fc.SRDef, fields...)
	for _, f := range fc.Features() {
		if f.Geom == nil {
			continue
		}
		g, err := fn(f.Geom)
		if err != nil {
			return nil, err
		}
		attrs := map[string]interface{}{OrigFIDField: f.ID}
		for _, fd := range fields[1:] {
			attrs[fd.Name] = f.Attrs[fd.Name]
		}
		out.Append(g, attrs)
	}
	return out, nil
}

// Boundary derives the topological boundary of every feature: ring
// lines for polygons, endpoints for polylines, the features themselves
// for points.
func (fc *FeatureCollection) Boundary() (*FeatureCollection, error) {
	return fc.deriveEach(geomops.Boundary)
}

// Extent derives the axis-aligned bounding rectangle of every feature
// as a closed polygon.
func (fc *FeatureCollection) Extent() (*FeatureCollection, error) {
	return fc.deriveEach(func(g geom.Geom) (geom.Geom, error) {
		b := g.Bounds()
		if b == nil || b.Empty() {
			return nil, fmt.Errorf("geomtools: feature has an empty extent")
		}
		return geom.Polygon{{
			b.Min,
			{X: b.Max.X, Y: b.Min.Y},
			b.Max,
			{X: b.Min.X, Y: b.Max.Y},
			b.Min,
		}}, nil
	})
}

// ConvexHull derives the convex hull of every feature's vertex set.
func (fc *FeatureCollection) ConvexHull() (*FeatureCollection, error) {
	return fc.deriveEach(func(g geom.Geom) (geom.Geom, error) {
		return geomops.ConvexHull(g)
	})
}

// HullRectangle derives the minimum bounding rectangle of every
// feature. The corner coordinates are reported by the primitive in
// textual form and may carry either a point or a locale decimal comma;
// they are normalized before parsing and assembled into a closed
// four-corner ring.
func (fc *FeatureCollection) HullRectangle() (*FeatureCollection, error) {
	return fc.deriveEach(func(g geom.Geom) (geom.Geom, error) {
		s, err := geomops.HullRectangleString(g)
		if err != nil {
			return nil, err
		}
		return parseHullRectangle(s)
	})
}

// parseHullRectangle builds the closed rectangle ring from the eight
// space-separated corner coordinates.
func parseHullRectangle(s string) (geom.Polygon, error) {
	tokens := strings.Fields(s)
	if len(tokens) != 8 {
		return nil, fmt.Errorf("geomtools: hull rectangle report has %d coordinates, want 8", len(tokens))
	}
	vals := make([]float64, 8)
	for i, tok := range tokens {
		// Locale decimal separator.
		tok = strings.Replace(tok, ",", ".", 1)
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("geomtools: bad hull rectangle coordinate %q: %v", tokens[i], err)
		}
		vals[i] = v
	}
	ring := make([]geom.Point, 0, 5)
	for i := 0; i < 8; i += 2 {
		ring = append(ring, geom.Point{X: vals[i], Y: vals[i+1]})
	}
	ring = append(ring, ring[0])
	return geom.Polygon{ring}, nil
}

// PointsAlong samples every polyline feature (or polygon boundary) at
// fixed arc-length increments from zero through the total length,
// emitting one multipoint per input feature. A feature of length L
// yields floor(L/step)+1 samples.
func (fc *FeatureCollection) PointsAlong(step float64) (*FeatureCollection, error) {
	if step <= 0 {
		return nil, fmt.Errorf("geomtools: sampling step must be positive, have %g", step)
	}
	switch st := fc.ShapeType(); st {
	case TypePolyline, TypePolygon:
	default:
		return nil, fmt.Errorf("geomtools: points along only works for polyline or polygon collections, not %q", st)
	}
	return fc.deriveEach(func(g geom.Geom) (geom.Geom, error) {
		lines, err := asLines(g)
		if err != nil {
			return nil, err
		}
		var mp geom.MultiPoint
		for _, l := range lines {
			length := geomops.Length(l)
			n := int(math.Floor(length/step)) + 1
			for i := 0; i < n; i++ {
				p, err := geomops.PositionAlongLine(l, float64(i)*step)
				if err != nil {
					return nil, err
				}
				mp = append(mp, p)
			}
		}
		return mp, nil
	})
}

func asLines(g geom.Geom) ([]geom.LineString, error) {
	switch t := g.(type) {
	case geom.LineString:
		return []geom.LineString{t}, nil
	case geom.MultiLineString:
		return t, nil
	case geom.Polygon, geom.MultiPolygon:
		b, err := geomops.Boundary(t)
		if err != nil {
			return nil, err
		}
		return b.(geom.MultiLineString), nil
	default:
		return nil, geomops.UnsupportedGeometryError{G: g}
	}
}

// LineToPolygon reinterprets the path arrays of every polyline feature
// as polygon ring arrays, keeping the spatial reference. This is a
// structural relabeling, not a geometric operation. On a structural
// mismatch the returned collection is empty and ErrRingStructure is
// returned so callers can branch.
func (fc *FeatureCollection) LineToPolygon() (*FeatureCollection, error) {
	if st := fc.ShapeType(); st != TypePolyline {
		return NewFeatureCollection(fc.SR, fc.SRDef), ErrRingStructure
	}
	out, err := fc.deriveEach(func(g geom.Geom) (geom.Geom, error) {
		lines, err := asLines(g)
		if err != nil {
			return nil, err
		}
		var p geom.Polygon
		for _, l := range lines {
			ring, ok := lineAsRing(l)
			if !ok {
				return nil, ErrRingStructure
			}
			p = append(p, ring)
		}
		if len(p) == 0 {
			return nil, ErrRingStructure
		}
		return p, nil
	})
	if err != nil {
		return NewFeatureCollection(fc.SR, fc.SRDef), ErrRingStructure
	}
	return out, nil
}

// lineAsRing checks that a path can serve as a polygon ring: at least
// three distinct vertices, all coordinates finite. The ring is closed
// if the path was open.
func lineAsRing(l geom.LineString) ([]geom.Point, bool) {
	for _, p := range l {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return nil, false
		}
	}
	open := l
	if len(l) > 1 && l[0] == l[len(l)-1] {
		open = l[:len(l)-1]
	}
	if len(open) < 3 {
		return nil, false
	}
	ring := make([]geom.Point, len(open), len(open)+1)
	copy(ring, open)
	return append(ring, ring[0]), true
}

// Cut splits every polygon or polyline feature of the collection by
// each cutting polyline in turn. Pieces that a cutter cannot split stay
// as they are; the failure is reported and the run continues. Results
// are exploded to singlepart.
func Cut(fc, cutter *FeatureCollection) (*FeatureCollection, error) {
	if st := cutter.ShapeType(); st != TypePolyline {
		return nil, fmt.Errorf("geomtools: the cutting collection has shape type %q, want polyline", st)
	}
	if st := fc.ShapeType(); st == TypePoint || st == TypeMultiPoint {
		return nil, fmt.Errorf("geomtools: %q features cannot be cut", st)
	}

	pieces := make([]geom.Geom, 0, fc.Count())
	origin := make([]int, 0, fc.Count())
	for _, f := range fc.Features() {
		if f.Geom == nil {
			continue
		}
		pieces = append(pieces, f.Geom)
		origin = append(origin, f.ID)
	}

	for _, cf := range cutter.Features() {
		for _, cut := range cutterLines(cf.Geom) {
			nextPieces := pieces[:0:0]
			nextOrigin := origin[:0:0]
			for i, piece := range pieces {
				result, err := geomops.Cut(piece, cut)
				if err != nil {
					log.WithFields(log.Fields{
						"feature": origin[i],
						"cutter":  cf.ID,
					}).Warn("piece not cut: ", err)
					nextPieces = append(nextPieces, piece)
					nextOrigin = append(nextOrigin, origin[i])
					continue
				}
				for _, r := range result {
					nextPieces = append(nextPieces, r)
					nextOrigin = append(nextOrigin, origin[i])
				}
			}
			pieces, origin = nextPieces, nextOrigin
		}
	}

	out := NewFeatureCollection(fc.SR, fc.SRDef, Field{Name: OrigFIDField, Type: IntType})
	for i, piece := range pieces {
		for _, single := range geomops.SplitMultipart(piece) {
			out.Append(single, map[string]interface{}{OrigFIDField: origin[i]})
		}
	}
	return out, nil
}

func cutterLines(g geom.Geom) []geom.LineString {
	switch t := g.(type) {
	case geom.LineString:
		return []geom.LineString{t}
	case geom.MultiLineString:
		return t
	default:
		return nil
	}
}
