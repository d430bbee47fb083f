// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command enrichplot draws dot plots of GO term enrichment results.
//
// enrichplot reads enrichment results either as a workbook with one
// sheet per query group, or as a wide multiquery CSV export with
// per-group columns named like "adjusted_p_value__<group>". It keeps
// terms up to a term size and adjusted p-value cutoff, picks the top
// terms of each group, and plots each term in each group as a dot
// colored by adjusted p-value and sized by intersection size.
//
// With no file name, or with -all, every workbook (or, with
// -multiquery, every CSV file) in the directory is plotted. Plots are
// written to the results directory as
//
//	<name>_filled_<cutoff>termsize.<format>
//
// or, without -filled, as <name>_<cutoff>termsize.<format>.
//
// If neither a directory nor a file is given and standard input is a
// terminal, enrichplot prompts for its settings.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-gg/gg"

	"github.com/bioplot/go-enrich/enrich"
)

func main() {
	log.SetPrefix("enrichplot: ")
	log.SetFlags(0)
	gg.Warning.SetOutput(log.Writer())
	enrich.Warning.SetOutput(log.Writer())

	o := defaultOptions()
	var (
		flagConfig = flag.String("config", "", "read settings from YAML `file`")
		flagAll    = flag.Bool("all", false, "plot every input file in the directory")
		flagPrompt = flag.Bool("i", false, "prompt for settings")
	)
	def := defaultOptions()
	set := defaultOptions()
	flag.StringVar(&set.Directory, "dir", "", "read inputs from `dir`")
	flag.StringVar(&set.ResultsDir, "results", def.ResultsDir, "write plots to `dir`")
	flag.StringVar(&set.MetricsFile, "metrics-file", "", "write run metrics in Prometheus text format to `file`")
	flag.Var(intValue{&set.TopNumber, def.TopNumber, "top_number"}, "top", "keep the top `n` terms of each group by adjusted p-value")
	flag.Var(intValue{&set.TermSizeCutoff, def.TermSizeCutoff, "term_size_cutoff"}, "term-size", "drop terms with more than `n` genes")
	flag.Var(floatValue{&set.PValueThreshold, def.PValueThreshold, "p_value_threshold"}, "p", "drop terms with adjusted p-value above `p`")
	flag.Var(boolValue{&set.Filled, def.Filled, "filled_version"}, "filled", "plot the union of every group's top terms in every group")
	flag.Var(boolValue{&set.Multiquery, def.Multiquery, "multiquery"}, "multiquery", "read a multiquery CSV instead of a workbook")
	flag.Var(listValue{&set.Formats}, "formats", "comma-separated output `formats` (svg, png)")
	flag.Var(intValue{&set.DPI, def.DPI, "dpi"}, "dpi", "PNG resolution in dots per inch")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	// Defaults, then the config file, then flags, then prompts.
	if *flagConfig != "" {
		if err := loadConfigFile(*flagConfig, &o); err != nil {
			log.Fatal(err)
		}
	}
	applyFlags(&o, &set)
	if flag.NArg() == 1 {
		o.File = flag.Arg(0)
	}
	if *flagPrompt || (o.Directory == "" && o.File == "" && isInteractive()) {
		newPrompter(os.Stdin, os.Stderr).prompt(&o)
	}

	o.Formats = validFormats(o.Formats, log.Printf)
	if len(o.Formats) == 0 {
		log.Printf("no known output formats; using %v", def.Formats)
		o.Formats = def.Formats
	}
	if err := os.MkdirAll(o.ResultsDir, 0o777); err != nil {
		log.Fatal(err)
	}

	m := newRunMetrics()
	failed := false
	if o.File == "" || *flagAll {
		failed = runBatch(&o, m)
	} else {
		path := filepath.Join(o.Directory, o.File)
		outs, err := processFile(path, &o, m)
		m.fileDone(err)
		if err != nil {
			writeMetrics(&o, m)
			log.Fatal(err)
		}
		for _, out := range outs {
			log.Printf("wrote %s", out)
		}
	}
	writeMetrics(&o, m)
	if failed {
		os.Exit(1)
	}
}

// applyFlags copies the flags that were given on the command line
// from set to o.
func applyFlags(o, set *options) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			o.Directory = set.Directory
		case "results":
			o.ResultsDir = set.ResultsDir
		case "metrics-file":
			o.MetricsFile = set.MetricsFile
		case "top":
			o.TopNumber = set.TopNumber
		case "term-size":
			o.TermSizeCutoff = set.TermSizeCutoff
		case "p":
			o.PValueThreshold = set.PValueThreshold
		case "filled":
			o.Filled = set.Filled
		case "multiquery":
			o.Multiquery = set.Multiquery
		case "formats":
			o.Formats = set.Formats
		case "dpi":
			o.DPI = set.DPI
		}
	})
}

// runBatch plots every input file in o.Directory. Files that fail are
// logged and skipped. It reports whether any file failed.
func runBatch(o *options, m *runMetrics) (failed bool) {
	dir := o.Directory
	if dir == "" {
		dir = "."
	}
	paths, err := inputFiles(dir, o.mode())
	if err != nil {
		log.Fatal(err)
	}
	if len(paths) == 0 {
		log.Printf("no %s files in %s", o.mode().Ext(), dir)
	}
	for _, path := range paths {
		outs, err := processFile(path, o, m)
		m.fileDone(err)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			failed = true
			continue
		}
		for _, out := range outs {
			log.Printf("wrote %s", out)
		}
	}
	return failed
}

// inputFiles returns the files in dir with the extension of mode, in
// directory order. Office lock files ("~$name.xlsx") are skipped.
func inputFiles(dir string, mode enrich.LoadMode) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, ent := range ents {
		name := ent.Name()
		if ent.Type().IsRegular() && filepath.Ext(name) == mode.Ext() && !strings.HasPrefix(name, "~$") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}

func writeMetrics(o *options, m *runMetrics) {
	if o.MetricsFile == "" {
		return
	}
	if err := m.write(o.MetricsFile); err != nil {
		log.Printf("writing metrics: %v", err)
	}
}
