// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/bioplot/go-enrich/enrich"
	"github.com/bioplot/go-enrich/internal/dotscale"
)

// renderOptions are the settings shared by every renderer. It is
// passed by value and never modified.
type renderOptions struct {
	Title string
	DPI   int
	Face  font.Face
}

// A renderer writes the plot of a Dataset in one format.
type renderer func(w io.Writer, d *enrich.Dataset, ro renderOptions) error

var renderers = map[string]renderer{
	"svg": writeSVG,
	"png": writePNG,
}

// validFormats returns the formats in fs that have a renderer, in
// order and without duplicates. Unknown formats are logged and
// dropped.
func validFormats(fs []string, logf func(string, ...interface{})) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range fs {
		if renderers[f] == nil {
			logf("unknown output format %q; ignoring", f)
			continue
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// baseName returns the file name of path up to its last dot.
func baseName(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}

// outputPath returns where the plot of input is written in format ext.
func outputPath(o *options, input, ext string) string {
	suffix := "_"
	if o.Filled {
		suffix = "_filled_"
	}
	name := fmt.Sprintf("%s%s%dtermsize.%s", baseName(input), suffix, o.TermSizeCutoff, ext)
	return filepath.Join(o.ResultsDir, name)
}

// processFile runs the whole pipeline on one input file and writes
// one plot per format. It returns the paths written. If any stage
// fails, nothing is written.
func processFile(path string, o *options, m *runMetrics) ([]string, error) {
	groups, err := enrich.Load(path, o.mode())
	if err != nil {
		return nil, err
	}
	m.addRows("loaded", enrich.CountRows(groups))

	groups = enrich.FilterAll(groups, o.TermSizeCutoff, o.PValueThreshold)
	m.addRows("filtered", enrich.CountRows(groups))

	groups, err = selectGroups(groups, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d := enrich.Reshape(groups)
	if d.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", path, enrich.ErrNoRows)
	}
	m.addRows("plotted", d.Len())

	ro := renderOptions{
		Title: baseName(path),
		DPI:   o.DPI,
		Face:  basicfont.Face7x13,
	}
	type output struct {
		path string
		data []byte
	}
	var outs []output
	for _, format := range o.Formats {
		var buf bytes.Buffer
		if err := renderers[format](&buf, d, ro); err != nil {
			return nil, fmt.Errorf("%s: rendering %s: %w", path, format, err)
		}
		outs = append(outs, output{outputPath(o, path, format), buf.Bytes()})
	}

	var written []string
	for _, out := range outs {
		if err := os.WriteFile(out.path, out.data, 0o666); err != nil {
			for _, w := range written {
				os.Remove(w)
			}
			return nil, err
		}
		written = append(written, out.path)
	}
	return written, nil
}

// selectGroups applies o's selection policy to gs. Under the union
// policy every kept row must be one of the selected terms; a row that
// is not means Select is broken, and nothing is plotted.
func selectGroups(gs []*enrich.Group, o *options) ([]*enrich.Group, error) {
	out, set := enrich.Select(gs, o.policy(), o.TopNumber)
	if o.policy() != enrich.Union {
		return out, nil
	}
	for _, g := range out {
		for _, r := range g.Rows {
			if !set.Has(r.TermName) {
				return nil, fmt.Errorf("group %s: term %q is not in the selection", g.Name, r.TermName)
			}
		}
	}
	return out, nil
}

// plotScales are the presentation scales of one Dataset.
type plotScales struct {
	colors *dotscale.ColorScale
	bar    dotscale.Colorbar
	sizes  []dotscale.SizeEntry
	canvas dotscale.Canvas
	terms  []string
}

func newPlotScales(d *enrich.Dataset) *plotScales {
	ps := d.PValues()
	terms := d.Terms()
	return &plotScales{
		colors: dotscale.NewColorScale(ps),
		bar:    dotscale.NewColorbar(ps),
		sizes:  dotscale.NewSizeLegend(d.Rows),
		canvas: dotscale.CanvasFor(len(d.PlottedGroups()), len(terms)),
		terms:  terms,
	}
}

// termPositions returns the Y position of each term, counting up from
// 0 at the bottom, so that terms read top-down in first-appearance
// order.
func (s *plotScales) termPositions() map[string]int {
	pos := make(map[string]int, len(s.terms))
	for i, t := range s.terms {
		pos[t] = len(s.terms) - 1 - i
	}
	return pos
}

// termAt returns the term at Y position y.
func (s *plotScales) termAt(y int) string {
	return s.terms[len(s.terms)-1-y]
}

// labelRunes returns the length of the longest term label.
func (s *plotScales) labelRunes() int {
	n := 0
	for _, t := range s.terms {
		if l := len([]rune(t)); l > n {
			n = l
		}
	}
	return n
}
