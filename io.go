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
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/op"
	"github.com/ctessum/geom/proj"
	goshp "github.com/jonas-p/go-shp"
)

// Lengths of the attribute columns in written shapefiles.
const (
	stringFieldLength = 50
	intFieldLength    = 12
	floatFieldLength  = 14
	floatFieldPrec    = 8
)

// ReadShapefile reads a shapefile (plus its sidecar .dbf and .prj
// files) into a feature collection. The geometries are a snapshot
// independent of the file, attribute rows come back in store order, and
// the raw spatial reference definition is kept so outputs can be
// written with the same definition. A missing .prj file leaves the
// collection without a spatial reference.
func ReadShapefile(filename string) (*FeatureCollection, error) {
	d, err := shp.NewDecoder(filename)
	if err != nil {
		return nil, fmt.Errorf("geomtools: opening shapefile: %v", err)
	}
	defer d.Close()

	var sr *proj.SR
	var srDef string
	prjName := strings.TrimSuffix(filename, ".shp") + ".prj"
	if b, err := os.ReadFile(prjName); err == nil {
		srDef = strings.TrimSpace(string(b))
		sr, err = proj.Parse(srDef)
		if err != nil {
			return nil, fmt.Errorf("geomtools: parsing %s: %v", prjName, err)
		}
	}

	var fields []Field
	var names []string
	for _, f := range d.Fields() {
		name := string(bytes.Trim(f.Name[:], "\x00"))
		fields = append(fields, Field{Name: name, Type: dbfFieldType(f)})
		names = append(names, name)
	}

	fc := NewFeatureCollection(sr, srDef, fields...)
	for {
		g, vals, more := d.DecodeRowFields(names...)
		if !more {
			break
		}
		attrs := make(map[string]interface{}, len(names))
		for i, name := range names {
			v, err := parseAttribute(vals[name], fields[i].Type)
			if err != nil {
				return nil, fmt.Errorf("geomtools: reading field %s: %v", name, err)
			}
			attrs[name] = v
		}
		fc.Append(g, attrs)
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("geomtools: reading shapefile: %v", err)
	}
	return fc, nil
}

func dbfFieldType(f goshp.Field) FieldType {
	switch f.Fieldtype {
	case 'F':
		return FloatType
	case 'N':
		if f.Precision > 0 {
			return FloatType
		}
		return IntType
	default:
		return StringType
	}
}

func parseAttribute(s string, t FieldType) (interface{}, error) {
	s = strings.TrimSpace(s)
	switch t {
	case IntType:
		if s == "" {
			return 0, nil
		}
		return strconv.Atoi(s)
	case FloatType:
		if s == "" {
			return 0., nil
		}
		return strconv.ParseFloat(s, 64)
	default:
		return s, nil
	}
}

// WriteShapefile writes the collection to a shapefile, with the fields
// in schema order and the spatial reference definition in a sidecar
// .prj file. Polygon ring orientations are fixed before encoding.
func (fc *FeatureCollection) WriteShapefile(filename string) error {
	shapeType, err := shpShapeType(fc.ShapeType())
	if err != nil {
		return err
	}
	fields := make([]goshp.Field, len(fc.fields))
	for i, f := range fc.fields {
		switch f.Type {
		case IntType:
			fields[i] = goshp.NumberField(f.Name, intFieldLength)
		case FloatType:
			fields[i] = goshp.FloatField(f.Name, floatFieldLength, floatFieldPrec)
		default:
			fields[i] = goshp.StringField(f.Name, stringFieldLength)
		}
	}

	e, err := shp.NewEncoderFromFields(filename, shapeType, fields...)
	if err != nil {
		return fmt.Errorf("geomtools: creating shapefile: %v", err)
	}
	for _, f := range fc.Features() {
		g, err := encodableGeom(f.Geom)
		if err != nil {
			return err
		}
		vals := make([]interface{}, len(fc.fields))
		for i, fd := range fc.fields {
			vals[i] = attributeValue(f.Attrs[fd.Name], fd.Type)
		}
		if err := e.EncodeFields(g, vals...); err != nil {
			return fmt.Errorf("geomtools: writing shapefile: %v", err)
		}
	}
	e.Close()

	if fc.SRDef != "" {
		prjName := strings.TrimSuffix(filename, ".shp") + ".prj"
		if err := os.WriteFile(prjName, []byte(fc.SRDef), 0644); err != nil {
			return fmt.Errorf("geomtools: writing prj file: %v", err)
		}
	}
	return nil
}

func shpShapeType(t string) (goshp.ShapeType, error) {
	switch t {
	case TypePoint:
		return goshp.POINT, nil
	case TypeMultiPoint:
		return goshp.MULTIPOINT, nil
	case TypePolyline:
		return goshp.POLYLINE, nil
	case TypePolygon:
		return goshp.POLYGON, nil
	default:
		return goshp.NULL, fmt.Errorf("geomtools: cannot write shape type %q", t)
	}
}

// encodableGeom maps geometry to the types the shapefile encoder
// understands: lines as multilines, polygons with fixed winding.
func encodableGeom(g geom.Geom) (geom.Geom, error) {
	switch t := g.(type) {
	case nil:
		return nil, nil
	case geom.LineString:
		return geom.MultiLineString{t}, nil
	case geom.Polygon:
		if err := op.FixOrientation(t); err != nil {
			return nil, fmt.Errorf("geomtools: fixing ring orientation: %v", err)
		}
		return t, nil
	case geom.MultiPolygon:
		var p geom.Polygon
		for _, sub := range t {
			p = append(p, sub...)
		}
		if err := op.FixOrientation(p); err != nil {
			return nil, fmt.Errorf("geomtools: fixing ring orientation: %v", err)
		}
		return p, nil
	default:
		return g, nil
	}
}

func attributeValue(v interface{}, t FieldType) interface{} {
	if v == nil {
		switch t {
		case IntType:
			return 0
		case FloatType:
			return 0.
		default:
			return ""
		}
	}
	return v
}
