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

// Package geomtools implements geometric algorithms on collections of
// vector features: circumcircles from point triples, maximum inscribed
// circle estimation, pairwise distance lines with ranked indexing,
// shape derivation (boundary, extent, convex hull, minimum bounding
// rectangle), coordinate numbering, and rigid rotation.
package geomtools

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

// Version gives the version number.
const Version = "1.0.0"

// Shape type names, following the host taxonomy. Multipatch, dimension
// and annotation shapes are never produced by this package but appear in
// precondition error messages for inputs that carry them.
const (
	TypePoint      = "point"
	TypeMultiPoint = "multipoint"
	TypePolyline   = "polyline"
	TypePolygon    = "polygon"
)

// FieldType identifies the value type of an attribute field.
type FieldType int

// Attribute field types.
const (
	StringType FieldType = iota
	IntType
	FloatType
)

// Field describes one attribute column of a FeatureCollection.
type Field struct {
	Name string
	Type FieldType
}

// Feature is one geometry together with its attribute values and a
// stable identifier. A nil Geom marks a null-geometry row.
type Feature struct {
	ID    int
	Geom  geom.Geom
	Attrs map[string]interface{}
}

// FeatureCollection is an ordered sequence of features sharing one
// spatial reference. Row order is significant: it drives output row
// order and index-based pairing in every operation.
//
// The geometry snapshot and the feature count are memoized on first
// access. The collection is not safe for concurrent use; mutating
// methods reset the memos.
type FeatureCollection struct {
	// SR is the shared spatial reference, which may be nil for
	// collections without a defined coordinate system.
	SR *proj.SR
	// SRDef is the raw spatial reference definition (WKT or proj4)
	// that SR was parsed from. It is carried along so output
	// collections can be written with the same definition.
	SRDef string

	fields   []Field
	features []*Feature

	shapes []geom.Geom
	count  int
	nextID int
}

// NewFeatureCollection creates an empty collection with the given
// spatial reference and attribute schema.
func NewFeatureCollection(sr *proj.SR, srDef string, fields ...Field) *FeatureCollection {
	return &FeatureCollection{
		SR:     sr,
		SRDef:  srDef,
		fields: append([]Field{}, fields...),
		count:  -1,
	}
}

// Append adds a feature and returns it. Identifiers are assigned
// sequentially starting at 1, matching the host's object IDs.
func (fc *FeatureCollection) Append(g geom.Geom, attrs map[string]interface{}) *Feature {
	if attrs == nil {
		attrs = make(map[string]interface{})
	}
	fc.nextID++
	f := &Feature{ID: fc.nextID, Geom: g, Attrs: attrs}
	fc.features = append(fc.features, f)
	fc.invalidate()
	return f
}

// Count returns the number of features. The result is memoized.
func (fc *FeatureCollection) Count() int {
	if fc.count < 0 {
		fc.count = len(fc.features)
	}
	return fc.count
}

// Geometries returns the geometries of all features in row order.
// The returned slice is a memoized snapshot; callers must not modify it.
func (fc *FeatureCollection) Geometries() []geom.Geom {
	if fc.shapes == nil {
		fc.shapes = make([]geom.Geom, len(fc.features))
		for i, f := range fc.features {
			fc.shapes[i] = f.Geom
		}
	}
	return fc.shapes
}

// Features returns the features in row order.
func (fc *FeatureCollection) Features() []*Feature { return fc.features }

// Feature returns the i'th feature.
func (fc *FeatureCollection) Feature(i int) *Feature { return fc.features[i] }

// Fields returns the attribute schema in column order.
func (fc *FeatureCollection) Fields() []Field {
	return append([]Field{}, fc.fields...)
}

// HasField reports whether a field with the given name exists.
func (fc *FeatureCollection) HasField(name string) bool {
	for _, f := range fc.fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// AddField appends a new attribute field to the schema. Adding a field
// that already exists is a no-op.
func (fc *FeatureCollection) AddField(f Field) {
	if !fc.HasField(f.Name) {
		fc.fields = append(fc.fields, f)
	}
}

// Attributes returns the values of the named fields for every row, in
// row order matching Geometries.
func (fc *FeatureCollection) Attributes(fieldNames ...string) ([][]interface{}, error) {
	for _, name := range fieldNames {
		if !fc.HasField(name) {
			return nil, fmt.Errorf("geomtools: collection does not contain field `%s`", name)
		}
	}
	rows := make([][]interface{}, len(fc.features))
	for i, f := range fc.features {
		vals := make([]interface{}, len(fieldNames))
		for j, name := range fieldNames {
			vals[j] = f.Attrs[name]
		}
		rows[i] = vals
	}
	return rows, nil
}

// RowAction is the result of a row rewriter.
type RowAction int

// Row rewriter results.
const (
	RowKeep RowAction = iota
	RowUpdate
	RowDelete
)

// UpdateRows applies rewrite to every row in store order. The rewriter
// receives the feature identifier and the values of the named fields,
// which it may modify in place before returning RowUpdate, or it may
// delete the row by returning RowDelete.
func (fc *FeatureCollection) UpdateRows(fieldNames []string, rewrite func(id int, vals []interface{}) (RowAction, error)) error {
	for _, name := range fieldNames {
		if !fc.HasField(name) {
			return fmt.Errorf("geomtools: collection does not contain field `%s`", name)
		}
	}
	kept := fc.features[:0]
	for _, f := range fc.features {
		vals := make([]interface{}, len(fieldNames))
		for j, name := range fieldNames {
			vals[j] = f.Attrs[name]
		}
		action, err := rewrite(f.ID, vals)
		if err != nil {
			return err
		}
		switch action {
		case RowDelete:
			continue
		case RowUpdate:
			for j, name := range fieldNames {
				f.Attrs[name] = vals[j]
			}
		}
		kept = append(kept, f)
	}
	fc.features = kept
	fc.invalidate()
	return nil
}

// ShapeType returns the shape type of the collection, determined from
// the first non-nil geometry. An empty or all-null collection has an
// empty shape type.
func (fc *FeatureCollection) ShapeType() string {
	for _, f := range fc.features {
		if f.Geom != nil {
			return shapeTypeOf(f.Geom)
		}
	}
	return ""
}

// IsMultipart reports whether any feature in the collection has more
// than one part.
func (fc *FeatureCollection) IsMultipart() bool {
	for _, f := range fc.features {
		if isMultipart(f.Geom) {
			return true
		}
	}
	return false
}

func (fc *FeatureCollection) invalidate() {
	fc.shapes = nil
	fc.count = -1
}

func shapeTypeOf(g geom.Geom) string {
	switch g.(type) {
	case geom.Point, *geom.Point:
		return TypePoint
	case geom.MultiPoint:
		return TypeMultiPoint
	case geom.LineString, geom.MultiLineString:
		return TypePolyline
	case geom.Polygon, geom.MultiPolygon:
		return TypePolygon
	default:
		return ""
	}
}

// isMultipart reports whether g has more than one disconnected part.
// Polygon holes do not count as parts: a ring is an additional part
// only if its winding matches the dominant (outer) winding.
func isMultipart(g geom.Geom) bool {
	switch t := g.(type) {
	case geom.MultiPoint:
		return len(t) > 1
	case geom.MultiLineString:
		return len(t) > 1
	case geom.MultiPolygon:
		return len(t) > 1
	case geom.Polygon:
		return outerRingCount(t) > 1
	default:
		return false
	}
}

// outerRingCount counts the rings whose winding matches that of the
// largest ring. Rings wound the other way are holes.
func outerRingCount(p geom.Polygon) int {
	var dominant float64
	for _, r := range p {
		a := ringArea(r)
		if math.Abs(a) > math.Abs(dominant) {
			dominant = a
		}
	}
	n := 0
	for _, r := range p {
		if a := ringArea(r); a != 0 && sameSign(a, dominant) {
			n++
		}
	}
	return n
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

func sameSign(a, b float64) bool {
	return (a >= 0) == (b >= 0)
}
