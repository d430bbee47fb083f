// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package enrich

// Filter returns the rows of g whose term size is at most maxTermSize
// and whose p-value is at most maxP. Both bounds are inclusive. Row
// order is preserved and g is not modified.
func Filter(g *Group, maxTermSize int, maxP float64) *Group {
	rows := make([]Row, 0, len(g.Rows))
	for _, r := range g.Rows {
		if r.TermSize <= maxTermSize && r.PValue <= maxP {
			rows = append(rows, r)
		}
	}
	return g.withRows(rows)
}

// FilterAll applies Filter to every group in gs.
func FilterAll(gs []*Group, maxTermSize int, maxP float64) []*Group {
	out := make([]*Group, len(gs))
	for i, g := range gs {
		out[i] = Filter(g, maxTermSize, maxP)
	}
	return out
}

// CountRows returns the total number of rows in gs.
func CountRows(gs []*Group) int {
	n := 0
	for _, g := range gs {
		n += len(g.Rows)
	}
	return n
}
