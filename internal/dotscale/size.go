// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dotscale

import (
	"math"

	"github.com/bioplot/go-enrich/enrich"
)

// A SizeEntry is one dot in the size legend.
type SizeEntry struct {
	// ScaledSize is the dot's area in plot units.
	ScaledSize float64

	// Diameter is the marker size passed to a renderer, the
	// square root of ScaledSize.
	Diameter float64

	// IntersectionSize is the unscaled count the dot stands for.
	IntersectionSize int
}

// NewSizeLegend returns the legend entries for the smallest and the
// largest dot in rows, in that order. Each entry is labeled by the
// first row with that size. If all dots are the same size, there is
// one entry. If rows is empty, there are none.
func NewSizeLegend(rows []enrich.Row) []SizeEntry {
	if len(rows) == 0 {
		return nil
	}
	lo, hi := 0, 0
	for i, r := range rows {
		if r.ScaledSize < rows[lo].ScaledSize {
			lo = i
		}
		if r.ScaledSize > rows[hi].ScaledSize {
			hi = i
		}
	}
	entries := []SizeEntry{sizeEntry(rows[lo])}
	if rows[hi].ScaledSize != rows[lo].ScaledSize {
		entries = append(entries, sizeEntry(rows[hi]))
	}
	return entries
}

func sizeEntry(r enrich.Row) SizeEntry {
	return SizeEntry{r.ScaledSize, Diameter(r.ScaledSize), r.IntersectionSize}
}

// Diameter returns the marker size of a dot with the given scaled
// size.
func Diameter(scaledSize float64) float64 {
	return math.Sqrt(scaledSize)
}

// MaxDiameter is the diameter of the largest dot in any plot.
var MaxDiameter = Diameter(enrich.ReferenceArea)

const (
	// MinCanvas is the minimum canvas side, in inches.
	MinCanvas = 5

	// InchesPerItem is the canvas length given to each group or
	// term.
	InchesPerItem = 0.4
)

// Canvas is the size of a plot in inches.
type Canvas struct {
	Width, Height float64
}

// CanvasFor returns the canvas for a plot with the given number of
// groups along X and terms along Y.
func CanvasFor(groups, terms int) Canvas {
	return Canvas{
		Width:  math.Max(MinCanvas, InchesPerItem*float64(groups)),
		Height: math.Max(MinCanvas, InchesPerItem*float64(terms)),
	}
}

// Pixels returns the size of c in pixels at dpi dots per inch.
func (c Canvas) Pixels(dpi int) (width, height int) {
	return int(math.Round(c.Width * float64(dpi))), int(math.Round(c.Height * float64(dpi)))
}
