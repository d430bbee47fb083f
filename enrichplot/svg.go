// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	svg "github.com/ajstarks/svgo"

	"github.com/bioplot/go-enrich/enrich"
	"github.com/bioplot/go-enrich/internal/dotscale"
)

const (
	// svgPixelsPerInch is the CSS reference resolution.
	svgPixelsPerInch = 96

	// svgLabelPixels approximates the width of one label character.
	svgLabelPixels = 7

	svgLegendWidth = 170
)

// Columns added for the go-gg plot. go-gg sorts the values of an
// ordinal axis, so dots are placed by group and term index and the
// ticks are labeled with the names.
const (
	colGroupPos = "group position"
	colTermPos  = "term position"
	colColor    = "color"
	colDiameter = "diameter"
)

// svgPixels converts a size in points to SVG pixels.
func svgPixels(pt float64) float64 {
	return pt * svgPixelsPerInch / 72
}

// writeSVG plots d as an SVG. The dots are drawn by go-gg, which has
// no legends, so the go-gg document is nested in an outer document
// that adds the size legend and the color bar to its right.
func writeSVG(w io.Writer, d *enrich.Dataset, ro renderOptions) error {
	sc := newPlotScales(d)
	pw, ph := sc.canvas.Pixels(svgPixelsPerInch)
	pw += svgLabelPixels * sc.labelRunes()

	var inner bytes.Buffer
	if err := dotPlot(d, sc, pw, ph, ro.Title).WriteSVG(&inner, pw, ph); err != nil {
		return err
	}
	// Drop the XML declaration so the document can be nested.
	body := inner.Bytes()
	if i := bytes.Index(body, []byte("<svg")); i > 0 {
		body = body[i:]
	}

	height := ph
	if legendHeight := svgLegend(nil, sc, 0); legendHeight > height {
		height = legendHeight
	}
	canvas := svg.New(w)
	canvas.Start(pw+svgLegendWidth, height, `font-family="Roboto,Helvetica,Arial,sans-serif"`)
	if _, err := canvas.Writer.Write(body); err != nil {
		return err
	}
	svgLegend(canvas, sc, pw)
	canvas.End()
	return nil
}

// dotPlot builds the go-gg plot of d for a pw×ph pixel image.
func dotPlot(d *enrich.Dataset, sc *plotScales, pw, ph int, title string) *gg.Plot {
	groupX := make(map[string]int, len(d.Groups))
	for i, g := range d.Groups {
		groupX[g] = i
	}
	termY := sc.termPositions()

	xs := make([]int, d.Len())
	ys := make([]int, d.Len())
	colors := make([]color.Color, d.Len())
	diameters := make([]float64, d.Len())
	for i, r := range d.Rows {
		xs[i], ys[i] = groupX[r.Group], termY[r.TermName]
		colors[i] = sc.colors.Color(r.PValue)
		diameters[i] = dotscale.Diameter(r.ScaledSize)
	}
	tab := table.NewBuilder(d.Table()).
		Add(colGroupPos, xs).
		Add(colTermPos, ys).
		Add(colColor, colors).
		Add(colDiameter, diameters).
		Done()

	plot := gg.NewPlot(tab)

	x := gg.NewOrdinalScale()
	x.SetFormatter(func(i int) string { return d.Groups[i] })
	plot.SetScale("x", x)
	y := gg.NewOrdinalScale()
	y.SetFormatter(sc.termAt)
	plot.SetScale("y", y)

	// go-gg sizes points as a fraction of the smaller subplot
	// side. Pick the fraction that gives the largest dot its
	// diameter in points.
	mindim := 0.8 * math.Min(float64(pw), float64(ph))
	maxRadius := svgPixels(dotscale.MaxDiameter) / 2
	size := gg.NewLinearScaler().SetMin(0).SetMax(dotscale.MaxDiameter)
	size.Ranger(gg.NewFloatRanger(0, maxRadius/mindim))
	plot.SetScale("size", size)

	plot.Add(gg.LayerPoints{
		X:     colGroupPos,
		Y:     colTermPos,
		Color: colColor,
		Size:  colDiameter,
	})
	plot.Add(gg.AxisLabel("x", ""), gg.AxisLabel("y", ""))
	plot.Add(gg.Title(title))
	return plot
}

// svgLegend draws the size legend and the color bar in a column
// starting at x. It returns the height of the column. If canvas is
// nil, it only measures.
func svgLegend(canvas *svg.SVG, sc *plotScales, x int) int {
	y := 30
	text := func(x, y int, s string, style string) {
		if canvas != nil {
			canvas.Text(x, y, s, style)
		}
	}

	text(x+10, y, "Intersection Size", "font-size:13px")
	y += 30
	for _, e := range sc.sizes {
		r := svgPixels(e.Diameter) / 2
		if canvas != nil {
			canvas.Circle(x+30, y, int(math.Max(1, math.Round(r))), "fill:black")
		}
		text(x+55, y+4, fmt.Sprint(e.IntersectionSize), "font-size:12px")
		y += 45
	}

	y += 10
	text(x+10, y, "adjusted_p_value", "font-size:13px")
	y += 10
	const barWidth, barHeight = 130, 12
	if canvas != nil {
		var stops []svg.Offcolor
		for i := 0; i <= 10; i++ {
			f := float64(i) / 10
			c := color.RGBAModel.Convert(dotscale.Ramp.Map(f)).(color.RGBA)
			stops = append(stops, svg.Offcolor{
				Offset:  uint8(i * 10),
				Color:   fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B),
				Opacity: 1,
			})
		}
		canvas.Def()
		canvas.LinearGradient("pvalue-ramp", 0, 0, 100, 0, stops)
		canvas.DefEnd()
		canvas.Rect(x+10, y, barWidth, barHeight, "fill:url(#pvalue-ramp);stroke:black;stroke-width:0.5")
	}
	y += barHeight
	for _, t := range sc.bar.Ticks() {
		tx := x + 10 + int(math.Round(sc.bar.Norm(t.Value)*barWidth))
		if canvas != nil {
			canvas.Line(tx, y, tx, y+4, "stroke:black")
		}
		text(tx, y+16, t.Label, "font-size:11px;text-anchor:middle")
	}
	return y + 30
}
