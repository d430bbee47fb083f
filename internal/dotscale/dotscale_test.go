// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dotscale

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioplot/go-enrich/enrich"
)

func TestRampEnds(t *testing.T) {
	// Position 0 is the darkest Oranges shade.
	assert.Equal(t, color.RGBA{0x7f, 0x27, 0x04, 0xff}, color.RGBAModel.Convert(Ramp.Map(0)))

	// The palest shade is never reached.
	pale := oranges[0]
	for _, x := range []float64{0.5, 0.9, 1, 2} {
		c := color.RGBAModel.Convert(Ramp.Map(x)).(color.RGBA)
		assert.NotEqual(t, pale, c, "Ramp.Map(%g)", x)
	}
	assert.Equal(t, Ramp.Map(1), Ramp.Map(7))
	assert.Equal(t, Ramp.Map(0), Ramp.Map(-1))
}

func TestColorScale(t *testing.T) {
	s := NewColorScale([]float64{0.04, 0.001, 0.01, 0.001})
	assert.Equal(t, []float64{0.001, 0.01, 0.04}, s.Values())

	for _, test := range []struct {
		p    float64
		want float64
	}{
		{0.001, 0},
		{0.01, 1.0 / 15},
		{0.04, 2.0 / 15},
	} {
		assert.InDelta(t, test.want, s.Position(test.p), 1e-12, "Position(%g)", test.p)
	}
	assert.Equal(t, s.Color(0.001), Ramp.Map(0))
	assert.NotEqual(t, s.RGBA(0.001), s.RGBA(0.04))
}

func TestColorScaleSaturates(t *testing.T) {
	var ps []float64
	for i := 0; i < 20; i++ {
		ps = append(ps, float64(i+1)/100)
	}
	s := NewColorScale(ps)
	// The 16th and later distinct values share the end color.
	assert.InDelta(t, 14.0/15, s.Position(ps[14]), 1e-12)
	assert.Equal(t, 1.0, s.Position(ps[15]))
	assert.Equal(t, 1.0, s.Position(ps[19]))
	assert.Equal(t, s.RGBA(ps[15]), s.RGBA(ps[19]))
	assert.NotEqual(t, s.RGBA(ps[14]), s.RGBA(ps[15]))
}

func TestColorbar(t *testing.T) {
	c := NewColorbar([]float64{0.01, 1e-6, 0.0001})
	assert.Equal(t, 1e-6, c.Min)
	assert.Equal(t, 0.01, c.Max)
	assert.InDelta(t, 1e-4, c.Mid, 1e-12)

	assert.InDelta(t, 0, c.Norm(1e-6), 1e-9)
	assert.InDelta(t, 0.5, c.Norm(1e-4), 1e-9)
	assert.InDelta(t, 1, c.Norm(0.01), 1e-9)
	assert.Equal(t, 1.0, c.Norm(0.5))

	ticks := c.Ticks()
	require.Len(t, ticks, 3)
	assert.Equal(t, []string{"10^-6", "10^-4", "10^-2"}, []string{ticks[0].Label, ticks[1].Label, ticks[2].Label})
}

func TestColorbarSingleValue(t *testing.T) {
	c := NewColorbar([]float64{0.003, 0.003})
	assert.Equal(t, 0.0, c.Norm(0.003))
	assert.InDelta(t, 0.003, c.Mid, 1e-15)
}

func TestPowerLabel(t *testing.T) {
	for _, test := range []struct {
		v    float64
		want string
	}{
		{1, "10^0"},
		{0.05, "10^-1"},
		{3e-7, "10^-6"},
		{1e-3, "10^-3"},
	} {
		assert.Equal(t, test.want, PowerLabel(test.v), "PowerLabel(%g)", test.v)
	}
}

func TestSizeLegend(t *testing.T) {
	rows := []enrich.Row{
		{TermName: "a", IntersectionSize: 10, ScaledSize: 100},
		{TermName: "b", IntersectionSize: 2, ScaledSize: 20},
		{TermName: "c", IntersectionSize: 20, ScaledSize: 200},
		{TermName: "d", IntersectionSize: 4, ScaledSize: 20},
	}
	got := NewSizeLegend(rows)
	require.Len(t, got, 2)
	assert.Equal(t, SizeEntry{20, math.Sqrt(20), 2}, got[0])
	assert.Equal(t, SizeEntry{200, math.Sqrt(200), 20}, got[1])

	assert.Len(t, NewSizeLegend(rows[1:2]), 1)
	assert.Empty(t, NewSizeLegend(nil))
}

func TestCanvas(t *testing.T) {
	for _, test := range []struct {
		groups, terms int
		want          Canvas
	}{
		{1, 1, Canvas{5, 5}},
		{2, 40, Canvas{5, 16}},
		{30, 12, Canvas{12, 5}},
	} {
		got := CanvasFor(test.groups, test.terms)
		assert.InDelta(t, test.want.Width, got.Width, 1e-9)
		assert.InDelta(t, test.want.Height, got.Height, 1e-9)
	}
	w, h := CanvasFor(2, 40).Pixels(100)
	assert.Equal(t, 500, w)
	assert.Equal(t, 1600, h)
}
