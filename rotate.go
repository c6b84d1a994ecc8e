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

	"github.com/ctessum/geom"

	"github.com/spatialtools/geomtools/geomops"
)

// PivotMode selects the rotation pivot.
type PivotMode int

// Pivot modes.
const (
	// PivotFixed rotates every feature around one explicit point.
	PivotFixed PivotMode = iota
	// PivotCentroid rotates each singlepart piece around the
	// arithmetic mean of its vertices.
	PivotCentroid
	// PivotTrueCentroid rotates each singlepart piece around its
	// area-weighted centroid.
	PivotTrueCentroid
)

// Pivot is the pivot policy of a rotation. X and Y are only used in
// PivotFixed mode.
type Pivot struct {
	Mode PivotMode
	X, Y float64
}

// NormalizeAngle maps an angle in degrees into [0, 360), keeping any
// fractional sub-degree part.
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// RotatePoint rotates (x, y) clockwise by angle degrees around
// (cx, cy). The clockwise turn is the standard counterclockwise
// rotation matrix applied to the negated angle.
func RotatePoint(x, y, angle, cx, cy float64) (float64, float64) {
	rad := -angle * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	dx, dy := x-cx, y-cy
	return cx + dx*cos - dy*sin, cy + dx*sin + dy*cos
}

// VertexNode is one node of the nested vertex structure a geometry
// decomposes into: a coordinate leaf, a ring or path of nodes, or a
// curve segment carrying auxiliary parameters. Rotation visits every
// Coordinate leaf at any depth.
type VertexNode interface {
	rotateNode(angle, cx, cy float64) VertexNode
}

// Coordinate is a single x/y pair.
type Coordinate struct {
	X, Y float64
}

// Ring is a closed vertex sequence of a polygon.
type Ring []VertexNode

// Path is an open vertex sequence of a polyline or multipoint.
type Path []VertexNode

// CurveSegment is a curved piece of a path or ring: its control
// coordinates rotate with the geometry while scalar parameters (radii,
// sweep flags, interpolation weights) pass through unchanged.
type CurveSegment struct {
	Kind    string
	Control []Coordinate
	Params  map[string]float64
}

func (c Coordinate) rotateNode(angle, cx, cy float64) VertexNode {
	x, y := RotatePoint(c.X, c.Y, angle, cx, cy)
	return Coordinate{X: x, Y: y}
}

func (r Ring) rotateNode(angle, cx, cy float64) VertexNode {
	out := make(Ring, len(r))
	for i, n := range r {
		out[i] = n.rotateNode(angle, cx, cy)
	}
	return out
}

func (p Path) rotateNode(angle, cx, cy float64) VertexNode {
	out := make(Path, len(p))
	for i, n := range p {
		out[i] = n.rotateNode(angle, cx, cy)
	}
	return out
}

func (s CurveSegment) rotateNode(angle, cx, cy float64) VertexNode {
	out := CurveSegment{Kind: s.Kind, Params: s.Params}
	out.Control = make([]Coordinate, len(s.Control))
	for i, c := range s.Control {
		out.Control[i] = c.rotateNode(angle, cx, cy).(Coordinate)
	}
	return out
}

// RotateTree rotates every coordinate leaf of a vertex tree clockwise
// by angle degrees around the pivot.
func RotateTree(n VertexNode, angle float64, pivot Coordinate) VertexNode {
	return n.rotateNode(NormalizeAngle(angle), pivot.X, pivot.Y)
}

// Rotate applies a rigid clockwise rotation to every feature of the
// collection and returns the rotated collection with the same
// attribute rows.
//
// Under the fixed-point policy all geometry rotates around the one
// pivot. Under the two centroid policies each singlepart piece rotates
// around its own centroid, with pivots computed in piece decomposition
// order; point and multipoint features have no meaningful self-relative
// rotation and pass through unchanged, as do rows with null geometry.
func (fc *FeatureCollection) Rotate(angle float64, pivot Pivot) (*FeatureCollection, error) {
	angle = NormalizeAngle(angle)
	out := NewFeatureCollection(fc.SR, fc.SRDef, fc.fields...)
	for _, f := range fc.Features() {
		if f.Geom == nil {
			out.Append(nil, copyAttrs(f.Attrs))
			continue
		}
		g, err := rotateGeom(f.Geom, angle, pivot)
		if err != nil {
			return nil, fmt.Errorf("geomtools: rotating feature %d: %v", f.ID, err)
		}
		out.Append(g, copyAttrs(f.Attrs))
	}
	return out, nil
}

func copyAttrs(attrs map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

func rotateGeom(g geom.Geom, angle float64, pivot Pivot) (geom.Geom, error) {
	if pivot.Mode == PivotFixed {
		return rotateAround(g, angle, Coordinate{X: pivot.X, Y: pivot.Y})
	}

	// Centroid pivots: points and point clouds are no-ops.
	switch g.(type) {
	case geom.Point, geom.MultiPoint:
		return g, nil
	}

	pieces := geomops.SplitMultipart(g)
	rotated := make([]geom.Geom, len(pieces))
	for i, piece := range pieces {
		var c geom.Point
		var err error
		if pivot.Mode == PivotTrueCentroid {
			c, err = geomops.TrueCentroid(piece)
		} else {
			c, err = geomops.VertexCentroid(piece)
		}
		if err != nil {
			return nil, err
		}
		r, err := rotateAround(piece, angle, Coordinate{X: c.X, Y: c.Y})
		if err != nil {
			return nil, err
		}
		rotated[i] = r
	}
	return reassemble(g, rotated)
}

// rotateAround round-trips g through its vertex tree.
func rotateAround(g geom.Geom, angle float64, pivot Coordinate) (geom.Geom, error) {
	tree, err := geomToTree(g)
	if err != nil {
		return nil, err
	}
	return treeToGeom(g, RotateTree(tree, angle, pivot))
}

// geomToTree decomposes a geometry into its nested vertex structure:
// a lone Coordinate for points, a flat Path for multipoints, and
// nested Paths/Rings for linework and polygons.
func geomToTree(g geom.Geom) (VertexNode, error) {
	switch t := g.(type) {
	case geom.Point:
		return Coordinate{X: t.X, Y: t.Y}, nil
	case geom.MultiPoint:
		return pointsToPath(t), nil
	case geom.LineString:
		return pointsToPath(t), nil
	case geom.MultiLineString:
		p := make(Path, len(t))
		for i, l := range t {
			p[i] = pointsToPath(l)
		}
		return p, nil
	case geom.Polygon:
		p := make(Path, len(t))
		for i, r := range t {
			ring := make(Ring, len(r))
			for j, q := range r {
				ring[j] = Coordinate{X: q.X, Y: q.Y}
			}
			p[i] = ring
		}
		return p, nil
	case geom.MultiPolygon:
		p := make(Path, len(t))
		for i, sub := range t {
			n, err := geomToTree(sub)
			if err != nil {
				return nil, err
			}
			p[i] = n
		}
		return p, nil
	default:
		return nil, geomops.UnsupportedGeometryError{G: g}
	}
}

func pointsToPath(pts []geom.Point) Path {
	p := make(Path, len(pts))
	for i, q := range pts {
		p[i] = Coordinate{X: q.X, Y: q.Y}
	}
	return p
}

// treeToGeom rebuilds a geometry of the same type as the archetype from
// a rotated vertex tree.
func treeToGeom(archetype geom.Geom, n VertexNode) (geom.Geom, error) {
	switch archetype.(type) {
	case geom.Point:
		c := n.(Coordinate)
		return geom.Point{X: c.X, Y: c.Y}, nil
	case geom.MultiPoint:
		return geom.MultiPoint(pathToPoints(n.(Path))), nil
	case geom.LineString:
		return geom.LineString(pathToPoints(n.(Path))), nil
	case geom.MultiLineString:
		p := n.(Path)
		ml := make(geom.MultiLineString, len(p))
		for i, sub := range p {
			ml[i] = geom.LineString(pathToPoints(sub.(Path)))
		}
		return ml, nil
	case geom.Polygon:
		p := n.(Path)
		poly := make(geom.Polygon, len(p))
		for i, sub := range p {
			ring := sub.(Ring)
			poly[i] = make([]geom.Point, len(ring))
			for j, c := range ring {
				q := c.(Coordinate)
				poly[i][j] = geom.Point{X: q.X, Y: q.Y}
			}
		}
		return poly, nil
	case geom.MultiPolygon:
		p := n.(Path)
		mp := make(geom.MultiPolygon, len(p))
		for i, sub := range p {
			g, err := treeToGeom(geom.Polygon{}, sub)
			if err != nil {
				return nil, err
			}
			mp[i] = g.(geom.Polygon)
		}
		return mp, nil
	default:
		return nil, geomops.UnsupportedGeometryError{G: archetype}
	}
}

func pathToPoints(p Path) []geom.Point {
	pts := make([]geom.Point, len(p))
	for i, n := range p {
		c := n.(Coordinate)
		pts[i] = geom.Point{X: c.X, Y: c.Y}
	}
	return pts
}

// reassemble restores the multipart shape of the original geometry from
// rotated singlepart pieces.
func reassemble(original geom.Geom, pieces []geom.Geom) (geom.Geom, error) {
	switch original.(type) {
	case geom.LineString:
		return pieces[0], nil
	case geom.MultiLineString:
		ml := make(geom.MultiLineString, len(pieces))
		for i, p := range pieces {
			ml[i] = p.(geom.LineString)
		}
		return ml, nil
	case geom.Polygon:
		var poly geom.Polygon
		for _, p := range pieces {
			poly = append(poly, p.(geom.Polygon)...)
		}
		return poly, nil
	case geom.MultiPolygon:
		mp := make(geom.MultiPolygon, len(pieces))
		for i, p := range pieces {
			mp[i] = p.(geom.Polygon)
		}
		return mp, nil
	default:
		return nil, geomops.UnsupportedGeometryError{G: original}
	}
}
