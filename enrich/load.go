// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package enrich

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Warning is a logger for conditions that don't prevent loading, such
// as skipped empty sheets.
var Warning = log.New(os.Stderr, "[enrich] ", 0)

// LoadMode selects how groups are laid out in an input file.
type LoadMode int

const (
	// PerSheet reads a workbook with one group per sheet.
	PerSheet LoadMode = iota

	// Multiquery reads a single CSV table whose per-group columns
	// are suffixed with "__<group>".
	Multiquery
)

func (m LoadMode) String() string {
	switch m {
	case PerSheet:
		return "per-sheet"
	case Multiquery:
		return "multiquery"
	}
	return "LoadMode(?)"
}

// Ext returns the file extension of inputs in mode m.
func (m LoadMode) Ext() string {
	if m == Multiquery {
		return ".csv"
	}
	return ".xlsx"
}

// MalformedInputError reports an input file that cannot be read or
// does not have the structure of an enrichment result.
type MalformedInputError struct {
	Path string

	// Sheet is the workbook sheet at fault, if any.
	Sheet string

	// Line is the 1-based line or row number at fault, if any.
	Line int

	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	var b strings.Builder
	b.WriteString(e.Path)
	if e.Sheet != "" {
		fmt.Fprintf(&b, " sheet %q", e.Sheet)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " row %d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// IsMalformed reports whether err is or wraps a *MalformedInputError.
func IsMalformed(err error) bool {
	var me *MalformedInputError
	return errors.As(err, &me)
}

// Load reads the groups stored in the file at path.
func Load(path string, mode LoadMode) ([]*Group, error) {
	if mode == Multiquery {
		return LoadMultiquery(path)
	}
	return LoadWorkbook(path)
}

// LoadWorkbook reads a workbook in which each sheet holds the results
// of one group. Groups are named after their sheets and returned in
// sheet order. Empty sheets are skipped.
func LoadWorkbook(path string) ([]*Group, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &MalformedInputError{Path: path, Reason: "cannot read workbook", Err: err}
	}
	defer f.Close()

	var gs []*Group
	for _, sheet := range f.GetSheetList() {
		recs, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, &MalformedInputError{Path: path, Sheet: sheet, Reason: "cannot read sheet", Err: err}
		}
		if len(recs) == 0 {
			Warning.Printf("%s: skipping empty sheet %q", path, sheet)
			continue
		}
		g, merr := parseTable(sheet, recs)
		if merr != nil {
			merr.Path = path
			merr.Sheet = sheet
			return nil, merr
		}
		gs = append(gs, g)
	}
	if len(gs) == 0 {
		return nil, &MalformedInputError{Path: path, Reason: "workbook has no result sheets"}
	}
	return gs, nil
}

// parseTable parses a sheet whose first record is its header.
func parseTable(name string, recs [][]string) (*Group, *MalformedInputError) {
	h := resolveHeader(recs[0])
	if miss := h.missing(); len(miss) > 0 {
		names := make([]string, len(miss))
		for i, f := range miss {
			names[i] = f.String()
		}
		return nil, &MalformedInputError{Reason: "missing columns " + strings.Join(names, ", ")}
	}
	g := &Group{Name: name}
	for i, rec := range recs[1:] {
		row, ok, err := h.parseRow(rec)
		if err != nil {
			return nil, &MalformedInputError{Line: i + 2, Reason: "bad row", Err: err}
		}
		if ok {
			row.Group = name
			g.Rows = append(g.Rows, row)
		}
	}
	return g, nil
}

// LoadMultiquery reads a multiquery CSV file. See ReadMultiquery.
func LoadMultiquery(path string) ([]*Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &MalformedInputError{Path: path, Reason: "cannot open file", Err: err}
	}
	defer f.Close()
	gs, err := ReadMultiquery(f)
	if me, ok := err.(*MalformedInputError); ok {
		me.Path = path
	}
	return gs, err
}

// ReadMultiquery reads a wide multiquery table from r.
//
// Groups are discovered from "adjusted_p_value__<group>" columns, in
// column order. Each group takes its p-values, intersection sizes, and
// (optionally) query sizes from its suffixed columns, and its term
// name, ID, size, and source from the shared unsuffixed columns. The
// term name and term size columns are required. A
// blank p-value means the term was not tested in that group, and the
// row is omitted from that group.
func ReadMultiquery(r io.Reader) ([]*Group, error) {
	cr := csv.NewReader(r)
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, &MalformedInputError{Reason: "cannot parse CSV", Err: err}
	}
	if len(recs) == 0 {
		return nil, &MalformedInputError{Reason: "empty file"}
	}

	cols := recs[0]
	shared := resolveHeader(cols)
	var gs []*Group
	var headers []header
	for _, col := range cols {
		name := cleanHeader(col)
		if !strings.HasPrefix(name, multiPValuePrefix) {
			continue
		}
		group := strings.TrimPrefix(name, multiPValuePrefix)
		if group == "" {
			continue
		}

		h := shared
		h[fieldPValue] = indexOf(cols, multiPValuePrefix+group)
		h[fieldIntersectionSize] = indexOf(cols, multiIntersectionPrefix+group)
		h[fieldQuerySize] = indexOf(cols, multiQuerySizePrefix+group)
		h[fieldGenes] = -1
		if miss := h.missing(); len(miss) > 0 {
			names := make([]string, len(miss))
			for i, f := range miss {
				names[i] = f.String()
				if f == fieldPValue || f == fieldIntersectionSize {
					names[i] += "__" + group
				}
			}
			return nil, &MalformedInputError{Reason: "missing columns " + strings.Join(names, ", ")}
		}
		gs = append(gs, &Group{Name: group})
		headers = append(headers, h)
	}
	if len(gs) == 0 {
		return nil, &MalformedInputError{Reason: "no " + multiPValuePrefix + "<group> columns; not a multiquery result"}
	}

	for i, rec := range recs[1:] {
		for j, h := range headers {
			row, ok, err := h.parseRow(rec)
			if err != nil {
				return nil, &MalformedInputError{Line: i + 2, Reason: "bad row for group " + gs[j].Name, Err: err}
			}
			if ok {
				row.Group = gs[j].Name
				gs[j].Rows = append(gs[j].Rows, row)
			}
		}
	}
	return gs, nil
}

// indexOf returns the index of the column named name, or -1.
func indexOf(cols []string, name string) int {
	for i, c := range cols {
		if cleanHeader(c) == name {
			return i
		}
	}
	return -1
}
