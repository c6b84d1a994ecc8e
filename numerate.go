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
)

// SortPolicy names one of the eight directional orderings used by
// Numerate. The first word is the primary traversal direction, the
// second breaks ties along the other axis.
type SortPolicy string

// The eight sort policies.
const (
	TopLeft     SortPolicy = "top_left"     // top to bottom, ties left to right
	TopRight    SortPolicy = "top_right"    // top to bottom, ties right to left
	BottomLeft  SortPolicy = "bottom_left"  // bottom to top, ties left to right
	BottomRight SortPolicy = "bottom_right" // bottom to top, ties right to left
	RightTop    SortPolicy = "right_top"    // right to left, ties top to bottom
	RightBottom SortPolicy = "right_bottom" // right to left, ties bottom to top
	LeftTop     SortPolicy = "left_top"     // left to right, ties top to bottom
	LeftBottom  SortPolicy = "left_bottom"  // left to right, ties bottom to top
)

// sortSpec is the (primary axis, primary descending, secondary
// descending) triple behind a policy. primaryY true means the primary
// axis is y; the secondary axis is always the other one.
type sortSpec struct {
	primaryY      bool
	primaryDesc   bool
	secondaryDesc bool
}

var sortSpecs = map[SortPolicy]sortSpec{
	TopLeft:     {primaryY: true, primaryDesc: true, secondaryDesc: false},
	TopRight:    {primaryY: true, primaryDesc: true, secondaryDesc: true},
	BottomLeft:  {primaryY: true, primaryDesc: false, secondaryDesc: false},
	BottomRight: {primaryY: true, primaryDesc: false, secondaryDesc: true},
	RightTop:    {primaryY: false, primaryDesc: true, secondaryDesc: true},
	RightBottom: {primaryY: false, primaryDesc: true, secondaryDesc: false},
	LeftTop:     {primaryY: false, primaryDesc: false, secondaryDesc: true},
	LeftBottom:  {primaryY: false, primaryDesc: false, secondaryDesc: false},
}

// ParseSortPolicy validates a policy name.
func ParseSortPolicy(name string) (SortPolicy, error) {
	p := SortPolicy(name)
	if _, ok := sortSpecs[p]; !ok {
		return "", fmt.Errorf("geomtools: unknown sort policy %q", name)
	}
	return p, nil
}

// Numerate assigns the integers 1..N to the point features of the
// collection in the order given by the sort policy and writes them into
// the named integer field, creating the field if it does not exist and
// overwriting it otherwise.
//
// The ordering is a stable two-pass sort: features are first ordered
// along the secondary axis, then stably reordered along the primary
// axis, so features sharing both coordinates keep their relative row
// order.
func (fc *FeatureCollection) Numerate(policy SortPolicy, fieldName string) error {
	spec, ok := sortSpecs[policy]
	if !ok {
		return fmt.Errorf("geomtools: unknown sort policy %q", policy)
	}
	if st := fc.ShapeType(); st != TypePoint {
		return fmt.Errorf("geomtools: numerate only works for point collections, not %q", st)
	}

	type entry struct {
		id   int
		x, y float64
	}
	entries := make([]entry, 0, fc.Count())
	for _, f := range fc.Features() {
		p, ok := f.Geom.(geom.Point)
		if !ok {
			return fmt.Errorf("geomtools: feature %d has no point geometry", f.ID)
		}
		entries = append(entries, entry{id: f.ID, x: p.X, y: p.Y})
	}

	secondary := func(e entry) float64 {
		if spec.primaryY {
			return e.x
		}
		return e.y
	}
	primary := func(e entry) float64 {
		if spec.primaryY {
			return e.y
		}
		return e.x
	}
	less := func(a, b float64, desc bool) bool {
		if desc {
			return a > b
		}
		return a < b
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return less(secondary(entries[i]), secondary(entries[j]), spec.secondaryDesc)
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return less(primary(entries[i]), primary(entries[j]), spec.primaryDesc)
	})

	numbers := make(map[int]int, len(entries))
	for i, e := range entries {
		numbers[e.id] = i + 1
	}

	fc.AddField(Field{Name: fieldName, Type: IntType})
	return fc.UpdateRows([]string{fieldName}, func(id int, vals []interface{}) (RowAction, error) {
		vals[0] = numbers[id]
		return RowUpdate, nil
	})
}
