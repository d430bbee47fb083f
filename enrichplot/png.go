// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/bioplot/go-enrich/enrich"
	"github.com/bioplot/go-enrich/internal/dotscale"
)

const (
	// legendPanelDPI is the resolution the legend panel is drawn
	// at before it is scaled to the chart's DPI.
	legendPanelDPI = 100

	legendPanelWidth  = 150
	legendPanelHeight = 230

	// chartFontPoints is go-chart's default font size.
	chartFontPoints = 10
)

// writePNG plots d as a PNG with go-chart, then draws the legend
// panel into the right margin.
func writePNG(w io.Writer, d *enrich.Dataset, ro renderOptions) error {
	sc := newPlotScales(d)
	dpi := float64(ro.DPI)
	if dpi <= 0 {
		dpi = float64(defaultOptions().DPI)
	}
	k := dpi / legendPanelDPI
	legendW := int(math.Ceil(legendPanelWidth * k))

	width, height := sc.canvas.Pixels(int(dpi))
	labelW := int(float64(sc.labelRunes()) * 0.6 * chartFontPoints * dpi / 72)
	ch := dotChart(d, sc, dpi)
	ch.Title = ro.Title
	ch.Width = width + labelW + legendW
	ch.Height = height
	if min := int(math.Ceil(legendPanelHeight * k)); ch.Height < min {
		ch.Height = min
	}
	ch.Background = chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: legendW + 16, Bottom: 16}}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return err
	}

	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)

	panel := legendPanel(sc, ro.Face)
	dst := image.Rect(b.Max.X-legendW, b.Min.Y+int(20*k), b.Max.X, b.Min.Y+int(20*k)+int(legendPanelHeight*k))
	draw.BiLinear.Scale(out, dst, panel, panel.Bounds(), draw.Over, nil)

	return png.Encode(w, out)
}

// dotChart builds the scatter chart of d. Groups are at X = 0, 1, ...
// and terms run down from the top of the Y axis in first-appearance
// order.
func dotChart(d *enrich.Dataset, sc *plotScales, dpi float64) chart.Chart {
	groupX := make(map[string]float64)
	var xTicks []chart.Tick
	for i, g := range d.Groups {
		groupX[g] = float64(i)
		xTicks = append(xTicks, chart.Tick{Value: float64(i), Label: g})
	}
	termY := sc.termPositions()
	var yTicks []chart.Tick
	for _, t := range sc.terms {
		yTicks = append(yTicks, chart.Tick{Value: float64(termY[t]), Label: t})
	}

	xs := make([]float64, d.Len())
	ys := make([]float64, d.Len())
	for i, r := range d.Rows {
		xs[i], ys[i] = groupX[r.Group], float64(termY[r.TermName])
	}

	series := chart.ContinuousSeries{
		Name:    "terms",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotColorProvider: func(_, _ chart.Range, i int, _, _ float64) drawing.Color {
				return drawingColor(sc.colors.RGBA(d.Rows[i].PValue))
			},
			DotWidthProvider: func(_, _ chart.Range, i int, _, _ float64) float64 {
				return dotscale.Diameter(d.Rows[i].ScaledSize) / 2 * dpi / 72
			},
		},
	}

	return chart.Chart{
		DPI: dpi,
		XAxis: chart.XAxis{
			Range:     &chart.ContinuousRange{Min: -0.5, Max: float64(len(d.Groups)) - 0.5},
			Ticks:     xTicks,
			TickStyle: chart.Style{TextRotationDegrees: 90},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: -1, Max: float64(len(sc.terms))},
			Ticks: yTicks,
		},
		Series: []chart.Series{series},
	}
}

func drawingColor(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// legendPanel draws the size legend and the color bar on a
// transparent legendPanelWidth×legendPanelHeight image, at
// legendPanelDPI.
func legendPanel(sc *plotScales, face font.Face) *image.RGBA {
	panel := image.NewRGBA(image.Rect(0, 0, legendPanelWidth, legendPanelHeight))
	ink := image.NewUniform(color.Black)
	text := func(x, y int, s string) {
		dr := &font.Drawer{Dst: panel, Src: ink, Face: face, Dot: fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}}
		dr.DrawString(s)
	}
	centered := func(x, y int, s string) {
		dr := &font.Drawer{Face: face}
		text(x-dr.MeasureString(s).Ceil()/2, y, s)
	}

	y := 16
	text(6, y, "Intersection Size")
	y += 28
	for _, e := range sc.sizes {
		r := e.Diameter / 2 * legendPanelDPI / 72
		fillDisc(panel, image.Pt(28, y), math.Max(1, r), color.Black)
		text(52, y+5, fmt.Sprint(e.IntersectionSize))
		y += 40
	}

	y += 8
	text(6, y, "adjusted_p_value")
	y += 8
	const barX, barW, barH = 10, 128, 12
	for i := 0; i < barW; i++ {
		c := dotscale.Ramp.Map(float64(i) / (barW - 1))
		draw.Draw(panel, image.Rect(barX+i, y, barX+i+1, y+barH), image.NewUniform(c), image.Point{}, draw.Src)
	}
	y += barH
	for _, t := range sc.bar.Ticks() {
		tx := barX + int(math.Round(sc.bar.Norm(t.Value)*(barW-1)))
		draw.Draw(panel, image.Rect(tx, y, tx+1, y+4), ink, image.Point{}, draw.Src)
		centered(tx, y+16, t.Label)
	}
	return panel
}

// fillDisc fills a disc of radius r centered at c.
func fillDisc(dst draw.Image, c image.Point, r float64, col color.Color) {
	d := disc{c, r}
	draw.DrawMask(dst, d.Bounds(), image.NewUniform(col), image.Point{}, d, d.Bounds().Min, draw.Over)
}

// disc is an alpha mask in the shape of a filled circle.
type disc struct {
	c image.Point
	r float64
}

func (d disc) ColorModel() color.Model { return color.AlphaModel }

func (d disc) Bounds() image.Rectangle {
	r := int(math.Ceil(d.r))
	return image.Rect(d.c.X-r, d.c.Y-r, d.c.X+r+1, d.c.Y+r+1)
}

func (d disc) At(x, y int) color.Color {
	dx, dy := float64(x-d.c.X), float64(y-d.c.Y)
	if dx*dx+dy*dy <= d.r*d.r {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}
