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
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/op"
	log "github.com/sirupsen/logrus"

	"github.com/spatialtools/geomtools/geomops"
)

// Field names of the distance line output collection.
const (
	FieldOID1      = "OID1"
	FieldOID2      = "OID2"
	FieldOIDComb   = "OID_Comb"
	FieldOID1X     = "OID1_x"
	FieldOID1Y     = "OID1_y"
	FieldOID2X     = "OID2_x"
	FieldOID2Y     = "OID2_y"
	FieldLength    = "length"
	FieldOID1Index = "OID1_index"
	FieldOID2Index = "OID2_index"
)

// pairKey is an ordered identifier pair. Its canonical form, with the
// smaller identifier first, keys the deduplication set; the directional
// form is what the output rows carry.
type pairKey struct {
	a, b int
}

func (k pairKey) canonical() pairKey {
	if k.b < k.a {
		return pairKey{k.b, k.a}
	}
	return k
}

func (k pairKey) String() string { return fmt.Sprintf("(%d, %d)", k.a, k.b) }

// distanceRow is one A×B combination before it is materialized.
type distanceRow struct {
	key      pairKey
	line     geom.LineString
	from, to geom.Point
	length   float64
	rank1    int
	rank2    int
	deleted  bool
}

// DistanceLines connects every feature of the point collection a with
// the nearest location on every feature of b, producing one line per
// ordered pair in row-major order (a outer, b inner). Each output row
// carries the source identifiers, their combination, the endpoint
// coordinates, the line length, and a zero-based per-identifier rank of
// the line lengths on both sides.
//
// When a and b are the same collection, the self pairs and one
// orientation of every symmetric pair are dropped after their lengths
// have been captured, and the ranks are uniformly reduced by one to
// account for the removed self reference.
func DistanceLines(a, b *FeatureCollection) (*FeatureCollection, error) {
	if err := checkDistanceLinePreconditions(a, b); err != nil {
		return nil, err
	}

	rows, err := buildDistanceRows(a, b)
	if err != nil {
		return nil, err
	}
	rankDistanceRows(rows)

	selfJoin := a == b
	if selfJoin {
		markInversePairs(rows)
	}

	out := NewFeatureCollection(a.SR, a.SRDef,
		Field{Name: FieldOID1, Type: StringType},
		Field{Name: FieldOID2, Type: StringType},
		Field{Name: FieldOIDComb, Type: StringType},
		Field{Name: FieldOID1X, Type: FloatType},
		Field{Name: FieldOID1Y, Type: FloatType},
		Field{Name: FieldOID2X, Type: FloatType},
		Field{Name: FieldOID2Y, Type: FloatType},
		Field{Name: FieldLength, Type: FloatType},
		Field{Name: FieldOID1Index, Type: IntType},
		Field{Name: FieldOID2Index, Type: IntType},
	)
	for _, r := range rows {
		if r.deleted {
			continue
		}
		rank1, rank2 := r.rank1, r.rank2
		if selfJoin {
			// The removed self pair always ranked ahead of every
			// surviving line of its group.
			rank1--
			rank2--
		}
		out.Append(r.line, map[string]interface{}{
			FieldOID1:      fmt.Sprintf("%d", r.key.a),
			FieldOID2:      fmt.Sprintf("%d", r.key.b),
			FieldOIDComb:   r.key.String(),
			FieldOID1X:     r.from.X,
			FieldOID1Y:     r.from.Y,
			FieldOID2X:     r.to.X,
			FieldOID2Y:     r.to.Y,
			FieldLength:    r.length,
			FieldOID1Index: rank1,
			FieldOID2Index: rank2,
		})
	}
	return out, nil
}

func checkDistanceLinePreconditions(a, b *FeatureCollection) error {
	if st := a.ShapeType(); st != TypePoint {
		return fmt.Errorf("geomtools: distance lines only accept point features on the from side, not %q", st)
	}
	switch st := b.ShapeType(); st {
	case TypePoint, TypePolyline, TypePolygon:
	default:
		return fmt.Errorf("geomtools: the to side has shape type %q; only point, polyline or polygon are allowed", st)
	}
	if a.IsMultipart() {
		return fmt.Errorf("geomtools: the from side must not contain multipart features")
	}
	if b.IsMultipart() {
		return fmt.Errorf("geomtools: the to side must not contain multipart features")
	}
	if a.SR == nil {
		return fmt.Errorf("geomtools: the from side needs a defined coordinate system")
	}
	if b.SR == nil {
		return fmt.Errorf("geomtools: the to side needs a defined coordinate system")
	}
	if a != b && !a.SR.Equal(b.SR, 10) {
		return fmt.Errorf("geomtools: both sides need the same coordinate system")
	}
	return nil
}

// buildDistanceRows enumerates all pairs in row-major order.
func buildDistanceRows(a, b *FeatureCollection) ([]*distanceRow, error) {
	bType := b.ShapeType()
	rows := make([]*distanceRow, 0, a.Count()*b.Count())
	for _, fa := range a.Features() {
		from, ok := fa.Geom.(geom.Point)
		if !ok {
			return nil, fmt.Errorf("geomtools: feature %d on the from side has no point geometry", fa.ID)
		}
		for _, fb := range b.Features() {
			var to geom.Point
			switch bType {
			case TypePoint:
				p, ok := fb.Geom.(geom.Point)
				if !ok {
					return nil, fmt.Errorf("geomtools: feature %d on the to side has no point geometry", fb.ID)
				}
				to = p
			default:
				// Polygons snap on their boundary, polylines on
				// themselves.
				p, err := geomops.Nearest(fb.Geom, from)
				if err != nil {
					return nil, fmt.Errorf("geomtools: snapping feature %d to feature %d: %v", fa.ID, fb.ID, err)
				}
				to = p
			}
			rows = append(rows, &distanceRow{
				key:    pairKey{fa.ID, fb.ID},
				line:   geom.LineString{from, to},
				from:   from,
				to:     to,
				length: op.Distance(from, to),
			})
		}
	}
	return rows, nil
}

// rankDistanceRows assigns the per-identifier length ranks over the
// full combination set, before any deduplication. Rows of equal length
// keep their row order.
func rankDistanceRows(rows []*distanceRow) {
	bySide := func(key func(*distanceRow) int, assign func(*distanceRow, int)) {
		groups := make(map[int][]*distanceRow)
		var order []int
		for _, r := range rows {
			id := key(r)
			if _, ok := groups[id]; !ok {
				order = append(order, id)
			}
			groups[id] = append(groups[id], r)
		}
		for _, id := range order {
			g := groups[id]
			sort.SliceStable(g, func(i, j int) bool { return g[i].length < g[j].length })
			for rank, r := range g {
				assign(r, rank)
			}
		}
	}
	bySide(func(r *distanceRow) int { return r.key.a }, func(r *distanceRow, rank int) { r.rank1 = rank })
	bySide(func(r *distanceRow) int { return r.key.b }, func(r *distanceRow, rank int) { r.rank2 = rank })
}

// markInversePairs drops self pairs and the later orientation of every
// symmetric pair. Both orientations must agree on length first;
// disagreement would mean the distance computation lost symmetry.
func markInversePairs(rows []*distanceRow) {
	seen := make(map[pairKey]*distanceRow)
	for _, r := range rows {
		if r.key.a == r.key.b {
			r.deleted = true
			continue
		}
		first, ok := seen[r.key.canonical()]
		if !ok {
			seen[r.key.canonical()] = r
			continue
		}
		// Euclidean distance is symmetric; the two orientations must
		// agree on length before one of them is dropped.
		if first.length != r.length {
			log.WithFields(log.Fields{
				"pair": r.key.String(),
			}).Warn("inverse pair lengths differ; keeping the first orientation")
		}
		r.deleted = true
	}
}
