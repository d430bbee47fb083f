// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dotscale derives the presentation scales of an enrichment
// dot plot: dot colors, the p-value color bar, the dot size legend,
// and the canvas size.
package dotscale

import (
	"image/color"
	"math"
	"sort"

	"github.com/aclements/go-gg/palette"
)

// oranges is the 9-class ColorBrewer Oranges ramp, light to dark.
var oranges = []color.RGBA{
	{0xff, 0xf5, 0xeb, 0xff},
	{0xfe, 0xe6, 0xce, 0xff},
	{0xfd, 0xd0, 0xa2, 0xff},
	{0xfd, 0xae, 0x6b, 0xff},
	{0xfd, 0x8d, 0x3c, 0xff},
	{0xf1, 0x69, 0x13, 0xff},
	{0xd9, 0x48, 0x01, 0xff},
	{0xa6, 0x36, 0x03, 0xff},
	{0x7f, 0x27, 0x04, 0xff},
}

func reversed(cs []color.RGBA) []color.RGBA {
	out := make([]color.RGBA, len(cs))
	for i, c := range cs {
		out[len(cs)-1-i] = c
	}
	return out
}

// RampTop is the fraction of the reversed Oranges ramp used by Ramp.
// The palest end is cut off so light dots stay visible on white.
const RampTop = 0.7

// Ramp maps [0, 1] from dark orange (most significant) toward light
// orange.
var Ramp palette.Continuous = Truncate(gradient(reversed(oranges)), 0, RampTop)

// gradient interpolates linearly in sRGB between evenly spaced colors.
//
// palette.RGBGradient without Stops returns its first color for the
// whole first segment, which would merge the most significant shades.
type gradient []color.RGBA

func (g gradient) Map(x float64) color.Color {
	n := clamp01(x) * float64(len(g)-1)
	i := int(n)
	if i >= len(g)-1 {
		return g[len(g)-1]
	}
	a, b, fr := g[i], g[i+1], n-float64(i)
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + fr*(float64(b)-float64(a))))
	}
	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), lerp(a.A, b.A)}
}

// Truncate returns the sub-range [lo, hi] of p, stretched to [0, 1].
func Truncate(p palette.Continuous, lo, hi float64) palette.Continuous {
	return truncated{p, lo, hi}
}

type truncated struct {
	p      palette.Continuous
	lo, hi float64
}

func (t truncated) Map(x float64) color.Color {
	return t.p.Map(t.lo + clamp01(x)*(t.hi-t.lo))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	} else if x > 1 {
		return 1
	}
	return x
}

// ColorSteps is the number of distinct p-values that span Ramp. The
// ColorSteps'th and later distinct values all get the end color.
const ColorSteps = 15

// ColorScale assigns each distinct p-value a color by its rank.
//
// This is a lookup, not a function of the value: two rows with the
// same p-value always share a color, and the color depends only on
// how many smaller p-values there are.
type ColorScale struct {
	values []float64
}

// NewColorScale returns the ColorScale for the p-values ps.
func NewColorScale(ps []float64) *ColorScale {
	vals := append([]float64(nil), ps...)
	sort.Float64s(vals)
	distinct := vals[:0]
	for i, v := range vals {
		if i == 0 || v != vals[i-1] {
			distinct = append(distinct, v)
		}
	}
	return &ColorScale{distinct}
}

// Values returns the distinct p-values of s in ascending order.
func (s *ColorScale) Values() []float64 {
	return s.values
}

// Position returns the position of p on Ramp. A p-value that was not
// given to NewColorScale takes the position of the next larger known
// value.
func (s *ColorScale) Position(p float64) float64 {
	i := sort.SearchFloat64s(s.values, p)
	return clamp01(float64(i) / ColorSteps)
}

// Color returns the color of p-value p.
func (s *ColorScale) Color(p float64) color.Color {
	return Ramp.Map(s.Position(p))
}

// RGBA is like Color, but returns a color.RGBA.
func (s *ColorScale) RGBA(p float64) color.RGBA {
	return color.RGBAModel.Convert(s.Color(p)).(color.RGBA)
}
