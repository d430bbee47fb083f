// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package enrich reads gene-ontology enrichment results and reduces
// them to the rows shown in a term-by-group dot plot.
//
// Input is either a workbook with one sheet per group or a single
// "multiquery" CSV whose per-group columns carry a "__<group>" suffix.
// Both are loaded into Groups, which then flow through Filter, Select,
// and Reshape to produce a long-format Dataset with one row per
// (group, term) dot.
package enrich

import "errors"

// Row is a single enrichment result: one term tested against one
// group's query.
type Row struct {
	// TermID is the ontology identifier, such as "GO:0006955".
	TermID string

	// TermName is the human-readable term label. In a Dataset
	// this is the display label and may be truncated.
	TermName string

	// TermSize is the number of genes annotated to the term.
	TermSize int

	// PValue is the adjusted p-value. Lower is more significant.
	PValue float64

	// IntersectionSize is the number of genes shared by the query
	// and the term.
	IntersectionSize int

	// QuerySize is the size of the query gene set, or 0 if the
	// input does not record it.
	QuerySize int

	// Source is the annotation source, such as "GO:BP".
	Source string

	// Group is the label of the sheet or query this row came from.
	Group string

	// ScaledSize is IntersectionSize scaled so that the largest
	// intersection in a Dataset is ReferenceArea. It is only set
	// by Reshape.
	ScaledSize float64
}

// Group is the ordered set of rows loaded from one sheet or one
// column-suffix set.
type Group struct {
	Name string
	Rows []Row
}

// SelectionSet is a set of untruncated term names.
type SelectionSet map[string]bool

// Has reports whether term is in s.
func (s SelectionSet) Has(term string) bool {
	return s[term]
}

// Dataset is the long-format table handed to a renderer.
//
// Every Row.Group is one of Groups. Rows are ordered by group, and
// within a group by the order produced by Select.
type Dataset struct {
	Groups []string
	Rows   []Row
}

// ErrNoRows is returned when filtering and selection leave nothing to
// plot.
var ErrNoRows = errors.New("no rows left after filtering")

// Terms returns the distinct display term names of d in order of
// first appearance.
func (d *Dataset) Terms() []string {
	seen := make(map[string]bool)
	var terms []string
	for _, r := range d.Rows {
		if !seen[r.TermName] {
			seen[r.TermName] = true
			terms = append(terms, r.TermName)
		}
	}
	return terms
}

// PlottedGroups returns the groups of d that have at least one row, in
// the order of Groups.
func (d *Dataset) PlottedGroups() []string {
	has := make(map[string]bool)
	for _, r := range d.Rows {
		has[r.Group] = true
	}
	var gs []string
	for _, g := range d.Groups {
		if has[g] {
			gs = append(gs, g)
		}
	}
	return gs
}

// PValues returns the p-value of every row of d.
func (d *Dataset) PValues() []float64 {
	ps := make([]float64, len(d.Rows))
	for i, r := range d.Rows {
		ps[i] = r.PValue
	}
	return ps
}

// Len returns the number of rows in d.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

func (g *Group) withRows(rows []Row) *Group {
	return &Group{Name: g.Name, Rows: rows}
}
