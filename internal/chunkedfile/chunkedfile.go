// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chunkedfile reads JavaScript test files that hold many small
// programs, each annotated with the diagnostics it should produce.
//
// Programs are separated by "---" lines. A line comment of the form
//
//	// ### "regexp"
//
// expects a diagnostic on its line whose message matches the quoted Go
// regular expression. A line comment of the form
//
//	// option:strict
//
// sets a named option for the whole program; tests map option names
// to parser settings. For example:
//
//	var x = 1 2; // ### "missing ; before statement"
//	---
//	// option:strict
//	with (o) {} // ### "may not contain with statements"
//
// A test parses each Chunk, calls GotError for every diagnostic it
// sees, then Done. Mismatches go to the Reporter, usually a *testing.T.
package chunkedfile // import "go.jsfront.dev/internal/chunkedfile"

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

const (
	separator    = "\n---\n"
	expectMarker = "// ###"
	optionMarker = "// option:"
)

// A Chunk is one program of a chunked file.
type Chunk struct {
	// Source is the program text, preceded by enough newlines that
	// its line numbers are those of the file.
	Source string
	Line   int // line of the file where the program starts

	filename string
	report   Reporter
	options  map[string]bool
	want     map[int]*regexp.Regexp
}

// Reporter is implemented by *testing.T.
type Reporter interface {
	Errorf(format string, args ...interface{})
}

// Read returns the chunks of the named file. Malformed expectations
// are reported and skipped.
//
// Reported messages start with a newline so that the file:line prefix
// is not run together with the one *testing.T adds.
func Read(filename string, report Reporter) []Chunk {
	data, err := os.ReadFile(filename)
	if err != nil {
		report.Errorf("%s", err)
		return nil
	}
	return split(filename, string(data), report)
}

func split(filename, data string, report Reporter) []Chunk {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	var chunks []Chunk
	line := 1
	for _, text := range strings.Split(data, separator) {
		c := Chunk{
			Source:   strings.Repeat("\n", line-1) + text,
			Line:     line,
			filename: filename,
			report:   report,
			options:  make(map[string]bool),
			want:     make(map[int]*regexp.Regexp),
		}
		for _, l := range strings.Split(text, "\n") {
			c.annotate(line, l)
			line++
		}
		line++ // separator
		chunks = append(chunks, c)
	}
	return chunks
}

// annotate records the expectation or options of one source line.
func (c *Chunk) annotate(line int, text string) {
	if i := strings.Index(text, optionMarker); i >= 0 {
		for _, name := range strings.Fields(text[i+len(optionMarker):]) {
			c.options[name] = true
		}
		return
	}
	i := strings.Index(text, expectMarker)
	if i < 0 {
		return
	}
	quoted := strings.TrimSpace(text[i+len(expectMarker):])
	pattern, err := strconv.Unquote(quoted)
	if err != nil {
		c.report.Errorf("\n%s:%d: not a quoted regexp: %s", c.filename, line, quoted)
		return
	}
	rx, err := regexp.Compile(pattern)
	if err != nil {
		c.report.Errorf("\n%s:%d: %v", c.filename, line, err)
		return
	}
	c.want[line] = rx
}

// Option reports whether the chunk sets the named option.
func (c *Chunk) Option(name string) bool { return c.options[name] }

// GotError records a diagnostic at line. It is reported unless an
// unmet expectation on that line matches it.
func (c *Chunk) GotError(line int, msg string) {
	rx, ok := c.want[line]
	if !ok {
		c.report.Errorf("\n%s:%d: unexpected error: %v", c.filename, line, msg)
		return
	}
	delete(c.want, line)
	if !rx.MatchString(msg) {
		c.report.Errorf("\n%s:%d: error %q does not match pattern %q", c.filename, line, msg, rx)
	}
}

// Done reports the expectations no diagnostic met.
func (c *Chunk) Done() {
	for line, rx := range c.want {
		c.report.Errorf("\n%s:%d: expected error matching %q", c.filename, line, rx)
	}
}
