// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package enrich

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ReferenceArea is the marker area, in points squared, given to the
// largest intersection in a Dataset.
const ReferenceArea = 200

// MaxLabelLen is the number of characters of a term name kept for
// display. Longer names are cut and suffixed with Ellipsis.
const MaxLabelLen = 50

// Ellipsis marks a truncated term name.
const Ellipsis = "..."

// TruncateLabel returns term as it should be displayed: NFC-normalized
// and, if longer than MaxLabelLen characters, cut to MaxLabelLen
// characters followed by Ellipsis.
func TruncateLabel(term string) string {
	term = norm.NFC.String(term)
	if utf8.RuneCountInString(term) <= MaxLabelLen {
		return term
	}
	n := 0
	for i := range term {
		if n == MaxLabelLen {
			return term[:i] + Ellipsis
		}
		n++
	}
	return term
}

// Reshape concatenates gs into a single Dataset. Rows keep their
// order within each group and groups keep their order in gs. Each row
// is tagged with its group, its term name is replaced by its display
// label, and its ScaledSize is set relative to the largest
// intersection in the result.
func Reshape(gs []*Group) *Dataset {
	d := &Dataset{Groups: make([]string, len(gs))}
	max := 0
	for i, g := range gs {
		d.Groups[i] = g.Name
		for _, r := range g.Rows {
			r.Group = g.Name
			r.TermName = TruncateLabel(r.TermName)
			if r.IntersectionSize > max {
				max = r.IntersectionSize
			}
			d.Rows = append(d.Rows, r)
		}
	}
	for i := range d.Rows {
		d.Rows[i].ScaledSize = scaleSize(d.Rows[i].IntersectionSize, max)
	}
	return d
}

func scaleSize(size, max int) float64 {
	if max <= 0 {
		return 0
	}
	return float64(size) / float64(max) * ReferenceArea
}
