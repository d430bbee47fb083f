// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package enrich

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateLabel(t *testing.T) {
	long := strings.Repeat("abcdefghij", 6)
	for _, test := range []struct {
		in, want string
	}{
		{"immune response", "immune response"},
		{long[:50], long[:50]},
		{long[:51], long[:50] + "..."},
		{long, long[:50] + "..."},
		// Combining sequences are composed before counting.
		{"e\u0301" + long[:49], "\u00e9" + long[:49]},
		{strings.Repeat("\u00e9", 60), strings.Repeat("\u00e9", 50) + "..."},
	} {
		assert.Equal(t, test.want, TruncateLabel(test.in), "TruncateLabel(%q)", test.in)
	}
}

func TestReshape(t *testing.T) {
	long := "positive regulation of transcription by RNA polymerase II in response to stress"
	a := group("A",
		Row{TermName: long, PValue: 0.001, IntersectionSize: 40},
		Row{TermName: "T2", PValue: 0.01, IntersectionSize: 10},
	)
	b := group("B", Row{TermName: "T3", PValue: 0.02, IntersectionSize: 0})

	// Selection runs on the untruncated name.
	sel, set := Select([]*Group{a, b}, Union, 1)
	require.True(t, set.Has(long))

	d := Reshape(sel)
	assert.Equal(t, []string{"A", "B"}, d.Groups)
	require.Equal(t, 2, d.Len())

	first := d.Rows[0]
	assert.Equal(t, "A", first.Group)
	assert.Equal(t, long[:50]+"...", first.TermName)
	assert.Equal(t, 53, utf8.RuneCountInString(first.TermName))
	assert.Equal(t, 200.0, first.ScaledSize)

	assert.Equal(t, "B", d.Rows[1].Group)
	assert.Equal(t, 0.0, d.Rows[1].ScaledSize)

	assert.Equal(t, []string{long[:50] + "...", "T3"}, d.Terms())
	assert.Equal(t, []float64{0.001, 0.02}, d.PValues())

	// Reshape leaves its input alone.
	assert.Equal(t, long, sel[0].Rows[0].TermName)
}

func TestReshapeScaledSize(t *testing.T) {
	g := group("A",
		Row{TermName: "a", IntersectionSize: 5},
		Row{TermName: "b", IntersectionSize: 20},
		Row{TermName: "c", IntersectionSize: 1},
	)
	h := group("B", Row{TermName: "a", IntersectionSize: 10})
	d := Reshape([]*Group{g, h})

	want := []float64{50, 200, 10, 100}
	for i, r := range d.Rows {
		assert.InDelta(t, want[i], r.ScaledSize, 1e-9, "row %d", i)
		assert.True(t, r.ScaledSize >= 0 && r.ScaledSize <= ReferenceArea)
	}
}

func TestReshapeAllZero(t *testing.T) {
	d := Reshape([]*Group{group("A", Row{TermName: "a"})})
	assert.Equal(t, 0.0, d.Rows[0].ScaledSize)
}

func TestDatasetTable(t *testing.T) {
	d := Reshape([]*Group{
		group("A", Row{TermName: "a", TermID: "GO:1", PValue: 0.01, IntersectionSize: 4}),
		group("B", Row{TermName: "b", TermID: "GO:2", PValue: 0.02, IntersectionSize: 2}),
	})
	tab := d.Table()
	assert.Equal(t, 2, tab.Len())
	assert.Equal(t, []string{"A", "B"}, tab.MustColumn(ColGroup))
	assert.Equal(t, []string{"a", "b"}, tab.MustColumn(ColTerm))
	assert.Equal(t, []float64{0.01, 0.02}, tab.MustColumn(ColPValue))
	assert.Equal(t, []int{4, 2}, tab.MustColumn(ColIntersectionSize))
	assert.Equal(t, []float64{200, 100}, tab.MustColumn(ColScaledSize))
}

func TestDatasetPlottedGroups(t *testing.T) {
	d := Reshape([]*Group{
		group("A", Row{TermName: "a", PValue: 0.01, IntersectionSize: 4}),
		group("B"),
		group("C", Row{TermName: "a", PValue: 0.02, IntersectionSize: 2}),
	})
	assert.Equal(t, []string{"A", "B", "C"}, d.Groups)
	assert.Equal(t, []string{"A", "C"}, d.PlottedGroups())
}
