// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"golang.org/x/crypto/ssh/terminal"
	"gopkg.in/yaml.v3"

	"github.com/bioplot/go-enrich/enrich"
)

// options controls one run of enrichplot.
type options struct {
	Directory string
	File      string

	TopNumber       int
	TermSizeCutoff  int
	PValueThreshold float64
	Filled          bool
	Multiquery      bool

	ResultsDir  string
	Formats     []string
	DPI         int
	MetricsFile string
}

func defaultOptions() options {
	return options{
		TopNumber:       15,
		TermSizeCutoff:  500,
		PValueThreshold: 0.05,
		Filled:          true,
		ResultsDir:      "results",
		Formats:         []string{"svg", "png"},
		DPI:             300,
	}
}

// policy returns the selection policy implied by o.Filled.
func (o *options) policy() enrich.Policy {
	if o.Filled {
		return enrich.Union
	}
	return enrich.Independent
}

// mode returns the input layout implied by o.Multiquery.
func (o *options) mode() enrich.LoadMode {
	if o.Multiquery {
		return enrich.Multiquery
	}
	return enrich.PerSheet
}

// A configError is an unparseable configuration value. It is never
// fatal: the setting falls back to its default.
type configError struct {
	Key, Value string
	Err        error
}

func (e *configError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Key, e.Value, e.Err)
}

func (e *configError) Unwrap() error { return e.Err }

var errNotBool = errors.New("want true or false")

func parseInt(key, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &configError{key, s, errors.Unwrap(err)}
	}
	return v, nil
}

func parseFloat(key, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &configError{key, s, errors.Unwrap(err)}
	}
	return v, nil
}

// parseBool accepts only "true" and "false", in any case.
func parseBool(key, s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, &configError{key, s, errNotBool}
}

func parseList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Lenient flag.Values. A bad value logs a warning and resets the
// setting to its default instead of failing the command line.

type intValue struct {
	p   *int
	def int
	key string
}

func (v intValue) String() string {
	if v.p == nil {
		return ""
	}
	return strconv.Itoa(*v.p)
}

func (v intValue) Set(s string) error {
	x, err := parseInt(v.key, s)
	if err != nil {
		log.Printf("%v; using the default value of %d", err, v.def)
		x = v.def
	}
	*v.p = x
	return nil
}

type floatValue struct {
	p   *float64
	def float64
	key string
}

func (v floatValue) String() string {
	if v.p == nil {
		return ""
	}
	return strconv.FormatFloat(*v.p, 'g', -1, 64)
}

func (v floatValue) Set(s string) error {
	x, err := parseFloat(v.key, s)
	if err != nil {
		log.Printf("%v; using the default value of %g", err, v.def)
		x = v.def
	}
	*v.p = x
	return nil
}

type boolValue struct {
	p   *bool
	def bool
	key string
}

func (v boolValue) IsBoolFlag() bool { return true }

func (v boolValue) String() string {
	if v.p == nil {
		return ""
	}
	return strconv.FormatBool(*v.p)
}

func (v boolValue) Set(s string) error {
	x, err := parseBool(v.key, s)
	if err != nil {
		log.Printf("%v; using the default value of %t", err, v.def)
		x = v.def
	}
	*v.p = x
	return nil
}

type listValue struct {
	p *[]string
}

func (v listValue) String() string {
	if v.p == nil {
		return ""
	}
	return strings.Join(*v.p, ",")
}

func (v listValue) Set(s string) error {
	*v.p = parseList(s)
	return nil
}

// fileConfig is the YAML configuration file. Every value is read as
// text so it goes through the same lenient parsing as flags.
type fileConfig struct {
	Directory       string `yaml:"directory"`
	File            string `yaml:"file"`
	TopNumber       string `yaml:"top_number"`
	TermSizeCutoff  string `yaml:"term_size_cutoff"`
	PValueThreshold string `yaml:"p_value_threshold"`
	FilledVersion   string `yaml:"filled_version"`
	Multiquery      string `yaml:"multiquery"`
	ResultsDir      string `yaml:"results_dir"`
	Formats         string `yaml:"formats"`
	DPI             string `yaml:"dpi"`
	MetricsFile     string `yaml:"metrics_file"`
}

// loadConfigFile applies the YAML configuration at path to o.
func loadConfigFile(path string, o *options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	fc.apply(o)
	return nil
}

func (fc *fileConfig) apply(o *options) {
	def := defaultOptions()
	str := func(p *string, s string) {
		if s != "" {
			*p = s
		}
	}
	str(&o.Directory, fc.Directory)
	str(&o.File, fc.File)
	str(&o.ResultsDir, fc.ResultsDir)
	str(&o.MetricsFile, fc.MetricsFile)
	if fc.Formats != "" {
		o.Formats = parseList(fc.Formats)
	}

	set := func(v interface{ Set(string) error }, s string) {
		if s != "" {
			v.Set(s)
		}
	}
	set(intValue{&o.TopNumber, def.TopNumber, "top_number"}, fc.TopNumber)
	set(intValue{&o.TermSizeCutoff, def.TermSizeCutoff, "term_size_cutoff"}, fc.TermSizeCutoff)
	set(floatValue{&o.PValueThreshold, def.PValueThreshold, "p_value_threshold"}, fc.PValueThreshold)
	set(boolValue{&o.Filled, def.Filled, "filled_version"}, fc.FilledVersion)
	set(boolValue{&o.Multiquery, def.Multiquery, "multiquery"}, fc.Multiquery)
	set(intValue{&o.DPI, def.DPI, "dpi"}, fc.DPI)
}

// isInteractive reports whether stdin is a terminal a user can answer
// prompts on.
func isInteractive() bool {
	return os.Getenv("TERM") != "dumb" && terminal.IsTerminal(int(os.Stdin.Fd()))
}

// A prompter asks for settings one line at a time.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{bufio.NewScanner(in), out}
}

// ask prints question and returns the answer with shell quoting
// removed, so drag-and-dropped paths work. An empty answer or end of
// input returns "".
func (p *prompter) ask(question string) string {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return ""
	}
	line := strings.TrimSpace(p.in.Text())
	words, err := shellquote.Split(line)
	if err != nil || len(words) == 0 {
		return line
	}
	return strings.Join(words, " ")
}

// prompt asks for every setting, starting from the values in o. A
// blank answer keeps the current value. An invalid answer falls back
// to the default.
func (p *prompter) prompt(o *options) {
	def := defaultOptions()
	if s := p.ask("Please enter the directory: "); s != "" {
		o.Directory = s
	}
	if s := p.ask("Please enter the name of the GO file: "); s != "" {
		o.File = s
	}
	answer := func(v interface{ Set(string) error }, q string) {
		if s := p.ask(q); s != "" {
			v.Set(s)
		}
	}
	answer(intValue{&o.TopNumber, def.TopNumber, "top_number"},
		fmt.Sprintf("Please enter the number of top rows to keep based on 'adjusted_p_value' (default is %d): ", o.TopNumber))
	answer(intValue{&o.TermSizeCutoff, def.TermSizeCutoff, "term_size_cutoff"},
		fmt.Sprintf("Please enter the term size cutoff (default is %d): ", o.TermSizeCutoff))
	answer(floatValue{&o.PValueThreshold, def.PValueThreshold, "p_value_threshold"},
		fmt.Sprintf("Please enter the adjusted p-value cutoff (default is %g): ", o.PValueThreshold))
	answer(boolValue{&o.Filled, def.Filled, "filled_version"},
		fmt.Sprintf("Please enter 'True' for filled version or 'False' for unfilled version (default is %s): ", title(o.Filled)))
	answer(boolValue{&o.Multiquery, def.Multiquery, "multiquery"},
		fmt.Sprintf("Please enter 'True' if this was a multiquery search or 'False' if every group was independently searched (default is %s): ", title(o.Multiquery)))
}

func title(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
