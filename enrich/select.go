// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package enrich

import "sort"

// Policy controls how Select chooses the rows of each group.
type Policy int

const (
	// Independent keeps each group's top N rows by p-value.
	Independent Policy = iota

	// Union keeps, in every group, each row whose term is among
	// the top N of any group. This gives every group the same
	// term axis, at the cost of including rows that are not in
	// their own group's top N.
	Union
)

func (p Policy) String() string {
	switch p {
	case Independent:
		return "independent"
	case Union:
		return "union"
	}
	return "Policy(?)"
}

// byPValue sorts rows by ascending p-value. It must be used with
// sort.Stable so that ties keep their input order.
type byPValue []Row

func (s byPValue) Len() int           { return len(s) }
func (s byPValue) Less(i, j int) bool { return s[i].PValue < s[j].PValue }
func (s byPValue) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// sortedRows returns a copy of rows stably sorted by p-value.
func sortedRows(rows []Row) []Row {
	out := append([]Row(nil), rows...)
	sort.Stable(byPValue(out))
	return out
}

// top returns the n most significant rows of g, most significant
// first.
func top(g *Group, n int) []Row {
	if n <= 0 {
		return nil
	}
	rows := sortedRows(g.Rows)
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// TopTerms returns the term names of the n most significant rows of
// g, most significant first.
func TopTerms(g *Group, n int) []string {
	rows := top(g, n)
	terms := make([]string, len(rows))
	for i, r := range rows {
		terms[i] = r.TermName
	}
	return terms
}

// Select reduces each group in gs according to policy, keeping at
// most n rows per group under Independent. The returned groups are in
// the same order as gs and their rows are sorted by ascending
// p-value.
//
// Under Union, Select also returns the set of terms that made the top
// n of at least one group. Under Independent the returned set is nil.
func Select(gs []*Group, policy Policy, n int) ([]*Group, SelectionSet) {
	out := make([]*Group, len(gs))
	if policy == Independent {
		for i, g := range gs {
			out[i] = g.withRows(top(g, n))
		}
		return out, nil
	}

	set := make(SelectionSet)
	for _, g := range gs {
		for _, term := range TopTerms(g, n) {
			set[term] = true
		}
	}
	for i, g := range gs {
		var rows []Row
		for _, r := range g.Rows {
			if set.Has(r.TermName) {
				rows = append(rows, r)
			}
		}
		out[i] = g.withRows(sortedRows(rows))
	}
	return out, set
}
