// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package enrich

import "github.com/aclements/go-gg/table"

// Column names of the table returned by Dataset.Table.
const (
	ColTerm             = "term"
	ColTermID           = "term id"
	ColGroup            = "group"
	ColSource           = "source"
	ColPValue           = "adjusted p-value"
	ColIntersectionSize = "intersection size"
	ColScaledSize       = "scaled size"
)

// Table returns d as a gg table with one row per dot.
func (d *Dataset) Table() *table.Table {
	n := len(d.Rows)
	terms := make([]string, n)
	ids := make([]string, n)
	groups := make([]string, n)
	sources := make([]string, n)
	ps := make([]float64, n)
	sizes := make([]int, n)
	scaled := make([]float64, n)
	for i, r := range d.Rows {
		terms[i] = r.TermName
		ids[i] = r.TermID
		groups[i] = r.Group
		sources[i] = r.Source
		ps[i] = r.PValue
		sizes[i] = r.IntersectionSize
		scaled[i] = r.ScaledSize
	}

	return new(table.Builder).
		Add(ColGroup, groups).
		Add(ColTerm, terms).
		Add(ColTermID, ids).
		Add(ColSource, sources).
		Add(ColPValue, ps).
		Add(ColIntersectionSize, sizes).
		Add(ColScaledSize, scaled).
		Done()
}
