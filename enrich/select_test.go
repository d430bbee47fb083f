// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package enrich

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func group(name string, rows ...Row) *Group {
	for i := range rows {
		rows[i].Group = name
	}
	return &Group{Name: name, Rows: rows}
}

func term(name string, p float64) Row {
	return Row{TermName: name, PValue: p, IntersectionSize: 1}
}

func termNames(rows []Row) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.TermName
	}
	return names
}

func TestSelectUnionExample(t *testing.T) {
	a := group("A", term("T1", 0.001), term("T2", 0.02), term("T3", 0.2))
	b := group("B", term("T1", 0.05), term("T4", 0.001))

	gs, set := Select([]*Group{a, b}, Union, 1)
	require.Len(t, gs, 2)
	assert.Equal(t, SelectionSet{"T1": true, "T4": true}, set)
	assert.Equal(t, []string{"T1"}, termNames(gs[0].Rows))
	assert.Equal(t, []string{"T4", "T1"}, termNames(gs[1].Rows))

	// The inputs are untouched.
	assert.Equal(t, []string{"T1", "T4"}, termNames(b.Rows))
}

func TestSelectIndependent(t *testing.T) {
	a := group("A", term("T3", 0.2), term("T1", 0.001), term("T2", 0.02))
	b := group("B", term("T1", 0.05), term("T4", 0.001))

	gs, set := Select([]*Group{a, b}, Independent, 2)
	assert.Nil(t, set)
	assert.Equal(t, []string{"T1", "T2"}, termNames(gs[0].Rows))
	assert.Equal(t, []string{"T4", "T1"}, termNames(gs[1].Rows))
}

func TestSelectStableTies(t *testing.T) {
	g := group("A", term("x", 0.01), term("y", 0.001), term("z", 0.01), term("w", 0.01))
	for _, policy := range []Policy{Independent, Union} {
		gs, _ := Select([]*Group{g}, policy, 3)
		assert.Equal(t, []string{"y", "x", "z"}, termNames(gs[0].Rows), "policy %v", policy)
	}
}

func TestSelectZero(t *testing.T) {
	g := group("A", term("x", 0.01))
	for _, policy := range []Policy{Independent, Union} {
		gs, _ := Select([]*Group{g}, policy, 0)
		assert.Empty(t, gs[0].Rows, "policy %v", policy)
	}
}

// randomGroups returns n groups drawing terms from a shared pool so
// that groups overlap.
func randomGroups(r *rand.Rand, n int) []*Group {
	gs := make([]*Group, n)
	for i := range gs {
		g := &Group{Name: fmt.Sprintf("g%d", i)}
		for _, j := range r.Perm(20)[:r.Intn(20)] {
			// Coarse p-values so there are ties.
			p := float64(1+r.Intn(50)) / 100
			g.Rows = append(g.Rows, Row{TermName: fmt.Sprintf("T%d", j), PValue: p, Group: g.Name})
		}
		gs[i] = g
	}
	return gs
}

func TestSelectIndependentProperties(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for iter := 0; iter < 200; iter++ {
		gs := randomGroups(r, 1+r.Intn(4))
		n := r.Intn(8)
		sel, _ := Select(gs, Independent, n)
		for i, g := range sel {
			if len(g.Rows) > n {
				t.Fatalf("group %s has %d rows, want at most %d", g.Name, len(g.Rows), n)
			}
			kept := map[string]bool{}
			maxKept := 0.0
			for _, row := range g.Rows {
				kept[row.TermName] = true
				if row.PValue > maxKept {
					maxKept = row.PValue
				}
			}
			for _, row := range gs[i].Rows {
				if !kept[row.TermName] && row.PValue < maxKept {
					t.Fatalf("group %s excluded %s (p=%g) but kept p=%g", g.Name, row.TermName, row.PValue, maxKept)
				}
			}
		}
	}
}

func TestSelectUnionProperties(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for iter := 0; iter < 200; iter++ {
		gs := randomGroups(r, 1+r.Intn(4))
		n := r.Intn(8)
		indep, _ := Select(gs, Independent, n)
		union, set := Select(gs, Union, n)

		want := SelectionSet{}
		got := SelectionSet{}
		for i := range gs {
			final := map[string]bool{}
			for _, row := range union[i].Rows {
				final[row.TermName] = true
				got[row.TermName] = true
				require.True(t, set.Has(row.TermName))
			}
			for _, row := range indep[i].Rows {
				want[row.TermName] = true
				require.True(t, final[row.TermName], "union lost %s from group %s", row.TermName, gs[i].Name)
			}
			assert.True(t, sort.SliceIsSorted(union[i].Rows, func(a, b int) bool {
				return union[i].Rows[a].PValue < union[i].Rows[b].PValue
			}))
		}
		assert.Equal(t, want, got)
		assert.Equal(t, want, set)
	}
}

func TestTopTerms(t *testing.T) {
	g := group("A", term("a", 0.3), term("b", 0.1), term("c", 0.2))
	assert.Equal(t, []string{"b", "c"}, TopTerms(g, 2))
	assert.Equal(t, []string{"b", "c", "a"}, TopTerms(g, 10))
}
