// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dotscale

import (
	"fmt"
	"image/color"
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
)

// Colorbar is a logarithmic legend for p-values spanning [Min, Max].
type Colorbar struct {
	Min, Max float64

	// Mid is the geometric mean of Min and Max, the midpoint of
	// the bar on a log scale.
	Mid float64
}

// NewColorbar returns the Colorbar spanning the p-values ps. ps must
// be non-empty and positive.
func NewColorbar(ps []float64) Colorbar {
	min, max := math.Inf(1), math.Inf(-1)
	for _, p := range ps {
		min = math.Min(min, p)
		max = math.Max(max, p)
	}
	return Colorbar{Min: min, Max: max, Mid: stats.GeoMean([]float64{min, max})}
}

// Norm maps p to [0, 1] on a log scale, with Min at 0 and Max at 1.
// Values outside the bar are clamped. If Min == Max, Norm returns 0.
func (c Colorbar) Norm(p float64) float64 {
	if c.Min == c.Max {
		return 0
	}
	s := scale.Linear{Min: math.Log10(c.Min), Max: math.Log10(c.Max)}
	return clamp01(s.Map(math.Log10(p)))
}

// Color returns the bar color at p. The bar is continuous, unlike
// ColorScale.
func (c Colorbar) Color(p float64) color.Color {
	return Ramp.Map(c.Norm(p))
}

// A Tick is a labeled position on a Colorbar.
type Tick struct {
	Value float64
	Label string
}

// Ticks returns the three ticks of c: minimum, midpoint, and maximum.
func (c Colorbar) Ticks() []Tick {
	vals := []float64{c.Min, c.Mid, c.Max}
	ticks := make([]Tick, len(vals))
	for i, v := range vals {
		ticks[i] = Tick{v, PowerLabel(v)}
	}
	return ticks
}

// PowerLabel formats v as a power of ten, 10^k, where k is log10(v)
// truncated toward zero.
func PowerLabel(v float64) string {
	k := math.Log10(v)
	// Exact powers of ten may come back a hair short of k.
	if r := math.Round(k); math.Abs(k-r) < 1e-9 {
		k = r
	}
	return fmt.Sprintf("10^%d", int(k))
}
