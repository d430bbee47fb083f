// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package enrich

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// field is a canonical Row column.
type field int

const (
	fieldTermName field = iota
	fieldTermID
	fieldTermSize
	fieldPValue
	fieldIntersectionSize
	fieldGenes
	fieldQuerySize
	fieldSource

	numFields
)

var fieldNames = [numFields]string{
	fieldTermName:         "term_name",
	fieldTermID:           "term_id",
	fieldTermSize:         "term_size",
	fieldPValue:           "adjusted_p_value",
	fieldIntersectionSize: "intersection_size",
	fieldGenes:            "intersections",
	fieldQuerySize:        "query_size",
	fieldSource:           "source",
}

func (f field) String() string {
	return fieldNames[f]
}

// aliases maps normalized header spellings to fields. Besides the
// canonical g:Profiler names, this accepts the older export schema
// ("Term", "p-value", "Genes").
var aliases = map[string]field{
	"term_name":         fieldTermName,
	"term":              fieldTermName,
	"term_id":           fieldTermID,
	"native":            fieldTermID,
	"id":                fieldTermID,
	"term_size":         fieldTermSize,
	"adjusted_p_value":  fieldPValue,
	"p_value":           fieldPValue,
	"padj":              fieldPValue,
	"intersection_size": fieldIntersectionSize,
	"intersections":     fieldGenes,
	"genes":             fieldGenes,
	"query_size":        fieldQuerySize,
	"source":            fieldSource,
}

// Prefixes of the per-group columns in a multiquery table.
const (
	multiPValuePrefix       = "adjusted_p_value__"
	multiIntersectionPrefix = "intersection_size__"
	multiQuerySizePrefix    = "query_size__"
)

// cleanHeader strips surrounding space and a leading byte order mark
// from a column name.
func cleanHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
}

// headerKey normalizes a column name for alias lookup.
func headerKey(h string) string {
	h = strings.ToLower(cleanHeader(h))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

// header records the column index of each field, or -1 if the field
// is absent.
type header [numFields]int

func resolveHeader(cols []string) header {
	var h header
	for i := range h {
		h[i] = -1
	}
	for i, col := range cols {
		key := headerKey(col)
		f, ok := aliases[key]
		if !ok {
			continue
		}
		// The canonical spelling wins over an alias (for example,
		// "adjusted_p_value" over an unadjusted "p_value").
		if h[f] < 0 || key == fieldNames[f] && headerKey(cols[h[f]]) != key {
			h[f] = i
		}
	}
	return h
}

// legacy reports whether h is the older export schema, which counts
// the intersection from a gene list and records no term size.
func (h header) legacy() bool {
	return h[fieldIntersectionSize] < 0 && h[fieldGenes] >= 0
}

// missing returns the required fields absent from h. The intersection
// size may be supplied either directly or as a gene list. The term
// size is required unless h is the legacy schema.
func (h header) missing() []field {
	var out []field
	for _, f := range []field{fieldTermName, fieldPValue} {
		if h[f] < 0 {
			out = append(out, f)
		}
	}
	if h[fieldIntersectionSize] < 0 && h[fieldGenes] < 0 {
		out = append(out, fieldIntersectionSize)
	}
	if h[fieldTermSize] < 0 && !h.legacy() {
		out = append(out, fieldTermSize)
	}
	return out
}

func (h header) cell(rec []string, f field) string {
	i := h[f]
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// parseRow converts record rec to a Row. It returns ok == false for
// rows that carry no result: blank lines and rows without a p-value
// or, outside the legacy schema, without a term size.
func (h header) parseRow(rec []string) (row Row, ok bool, err error) {
	ps := h.cell(rec, fieldPValue)
	if ps == "" || h.cell(rec, fieldTermName) == "" {
		return Row{}, false, nil
	}
	row.TermName = h.cell(rec, fieldTermName)
	row.TermID = h.cell(rec, fieldTermID)
	row.Source = h.cell(rec, fieldSource)

	if row.PValue, err = parsePValue(ps); err != nil {
		return Row{}, false, err
	}
	if h[fieldTermSize] >= 0 {
		s := h.cell(rec, fieldTermSize)
		if s == "" {
			return Row{}, false, nil
		}
		if row.TermSize, err = parseCount(fieldTermSize, s); err != nil {
			return Row{}, false, err
		}
	}
	if h[fieldIntersectionSize] >= 0 {
		if s := h.cell(rec, fieldIntersectionSize); s != "" {
			if row.IntersectionSize, err = parseCount(fieldIntersectionSize, s); err != nil {
				return Row{}, false, err
			}
		}
	} else {
		row.IntersectionSize = countGenes(h.cell(rec, fieldGenes))
	}
	if s := h.cell(rec, fieldQuerySize); s != "" {
		if row.QuerySize, err = parseCount(fieldQuerySize, s); err != nil {
			return Row{}, false, err
		}
	}
	return row, true, nil
}

func parsePValue(s string) (float64, error) {
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", fieldPValue, s)
	}
	if !(p > 0 && p <= 1) {
		return 0, fmt.Errorf("%s %q out of range (0, 1]", fieldPValue, s)
	}
	return p, nil
}

// parseCount parses a non-negative integer count. Spreadsheets often
// store counts as floats, so integral floats such as "12.0" are
// accepted.
func parseCount(f field, s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative %s %q", f, s)
		}
		return n, nil
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil || x != math.Trunc(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("bad %s %q", f, s)
	}
	if x < 0 {
		return 0, fmt.Errorf("negative %s %q", f, s)
	}
	return int(x), nil
}

// countGenes returns the number of entries in a comma-separated gene
// list.
func countGenes(list string) int {
	n := 0
	for _, g := range strings.Split(list, ",") {
		if strings.TrimSpace(g) != "" {
			n++
		}
	}
	return n
}
