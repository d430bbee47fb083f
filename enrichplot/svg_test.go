// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioplot/go-enrich/enrich"
)

var svgText = regexp.MustCompile(`<text x="(-?\d+)" y="(-?\d+)"[^>]*>([^<]*)</text>`)

// textAt returns the position of each text element in an SVG document.
func textAt(doc []byte) map[string][2]int {
	pos := make(map[string][2]int)
	for _, m := range svgText.FindAllSubmatch(doc, -1) {
		x, _ := strconv.Atoi(string(m[1]))
		y, _ := strconv.Atoi(string(m[2]))
		pos[string(m[3])] = [2]int{x, y}
	}
	return pos
}

func TestWriteSVGAxisOrder(t *testing.T) {
	d := enrich.Reshape([]*enrich.Group{
		{Name: "zz", Rows: []enrich.Row{
			{TermName: "zeta", PValue: 0.001, IntersectionSize: 5},
			{TermName: "alpha", PValue: 0.01, IntersectionSize: 3},
		}},
		{Name: "aa", Rows: []enrich.Row{
			{TermName: "alpha", PValue: 0.02, IntersectionSize: 2},
		}},
	})
	require.Equal(t, []string{"zeta", "alpha"}, d.Terms())

	var buf bytes.Buffer
	require.NoError(t, writeSVG(&buf, d, renderOptions{Title: "order"}))
	pos := textAt(buf.Bytes())
	for _, label := range []string{"zeta", "alpha", "zz", "aa"} {
		require.Contains(t, pos, label)
	}

	// Terms read top-down in first-appearance order and groups
	// left to right in input order.
	assert.Less(t, pos["zeta"][1], pos["alpha"][1])
	assert.Less(t, pos["zz"][0], pos["aa"][0])
}
