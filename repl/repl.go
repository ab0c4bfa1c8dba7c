// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl provides a read/parse/print loop for JavaScript.
//
// It supports readline-style command editing and history.
//
// Each entry is parsed as a program. If the input so far ends in the
// middle of a construct, such as an open brace or a dangling operator,
// the REPL reads more lines until the input parses or a blank line is
// entered. A lone expression is printed as an expression tree; any
// other entry as the tree of each of its statements.
//
// Lines beginning with a colon are commands:
//
//	:tree :sexpr :json :text   select the output format
//	:bindings                  toggle the binding listing of each entry
//	:help                      list the commands
package repl // import "go.jsfront.dev/repl"

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"google.golang.org/protobuf/types/known/structpb"

	"go.jsfront.dev/atom"
	"go.jsfront.dev/internal/dump"
	"go.jsfront.dev/resolve"
	"go.jsfront.dev/syntax"
)

// Config configures a REPL session.
type Config struct {
	Options       *syntax.Options   // parse options; the atom table is shared by all entries
	Format        dump.Format       // initial output format
	Bindings      bool              // list the binding of each identifier
	IsPredeclared func(string) bool // names the bindings listing reports as predeclared
	HistoryFile   string            // readline history; none if empty
	Logger        *slog.Logger
}

// A LineReader supplies input lines. *readline.Instance is one.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// REPL runs a read, parse, print loop on the terminal until end of
// input.
func REPL(cfg Config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      ">>> ",
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	err = Run(rl, os.Stdout, os.Stderr, cfg)
	fmt.Println()
	return err
}

// Run reads entries from in until end of input, printing results to
// out and errors to errOut. It returns nil at end of input, and
// otherwise the error that stopped the reader.
func Run(in LineReader, out, errOut io.Writer, cfg Config) error {
	s := newSession(in, out, errOut, cfg)
	for {
		if err := s.rep(); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Fprintln(s.errOut, err)
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

type session struct {
	in          LineReader
	out, errOut io.Writer
	opts        syntax.Options
	format      dump.Format
	bindings    bool
	predeclared func(string) bool
	logger      *slog.Logger
	line        int // first line number of the next entry
}

func newSession(in LineReader, out, errOut io.Writer, cfg Config) *session {
	s := &session{
		in:          in,
		out:         out,
		errOut:      errOut,
		format:      cfg.Format,
		bindings:    cfg.Bindings,
		predeclared: cfg.IsPredeclared,
		logger:      cfg.Logger,
		line:        1,
	}
	if cfg.Options != nil {
		s.opts = *cfg.Options
	}
	if s.opts.Atoms == nil {
		s.opts.Atoms = atom.NewTable()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// rep reads, parses, and prints one entry.
//
// It returns an error (possibly readline.ErrInterrupt)
// only if reading failed. Parse errors are printed.
func (s *session) rep() error {
	s.in.SetPrompt(">>> ")
	var src strings.Builder
	for {
		line, err := s.in.Readline()
		if err != nil {
			if err == io.EOF && src.Len() > 0 {
				// Report the incomplete entry before stopping.
				s.parseAndPrint(src.String())
			}
			return err
		}
		s.in.SetPrompt("... ")

		blank := strings.TrimSpace(line) == ""
		if src.Len() == 0 {
			if blank {
				s.line++
				return nil
			}
			if cmd, ok := strings.CutPrefix(strings.TrimSpace(line), ":"); ok {
				s.line++
				s.command(cmd)
				return nil
			}
		}
		src.WriteString(line)
		src.WriteByte('\n')

		if !blank && s.incomplete(src.String()) {
			continue
		}
		s.parseAndPrint(src.String())
		return nil
	}
}

// incomplete reports whether src fails to parse only because it ends
// too soon.
func (s *session) incomplete(src string) bool {
	opts := s.opts
	opts.Logger = nil
	f, err := syntax.Parse("<stdin>", src, s.line, &opts)
	if f != nil {
		f.Release()
	}
	var e syntax.Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Code {
	case syntax.ErrUnterminatedComment, syntax.ErrUnterminatedTemplate:
		return true
	}
	return int(e.Pos.Offset) >= len(strings.TrimRightFunc(src, unicode.IsSpace))
}

func (s *session) parseAndPrint(src string) {
	first := s.line
	s.line += strings.Count(src, "\n")

	f, err := syntax.Parse("<stdin>", src, first, &s.opts)
	if err != nil {
		s.printError(err, src, first)
		return
	}
	defer f.Release()
	s.logger.Debug("entry", "line", first, "stmts", len(f.Stmts), "functions", len(f.Functions))

	for _, d := range f.Diagnostics {
		fmt.Fprintln(s.errOut, d)
	}
	if expr := soleExpr(f); expr != nil {
		s.write(dump.Node(f, expr, nil))
	} else {
		for _, stmt := range f.Stmts {
			s.write(dump.Node(f, stmt, nil))
		}
	}
	if s.bindings {
		s.printBindings(f)
	}
}

func (s *session) write(v *structpb.Value) {
	if err := dump.Write(s.out, v, s.format); err != nil {
		fmt.Fprintln(s.errOut, err)
	}
}

func (s *session) command(cmd string) {
	switch cmd {
	case "bindings":
		s.bindings = !s.bindings
		fmt.Fprintf(s.out, "bindings %s\n", onOff(s.bindings))
	case "help":
		fmt.Fprintln(s.out, ":tree :sexpr :json :text   select the output format")
		fmt.Fprintln(s.out, ":bindings                  toggle the binding listing")
	default:
		format, err := dump.ParseFormat(cmd)
		if err != nil {
			fmt.Fprintf(s.errOut, "unknown command :%s (try :help)\n", cmd)
			return
		}
		s.format = format
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// printBindings lists each identifier of f with the variable it
// denotes.
func (s *session) printBindings(f *syntax.File) {
	m, err := resolve.File(f, s.predeclared)
	if list, ok := err.(resolve.ErrorList); ok {
		for _, e := range list {
			fmt.Fprintln(s.errOut, e)
		}
	} else if err != nil {
		fmt.Fprintln(s.errOut, err)
		return
	}
	for _, id := range f.Idents() {
		b := m.Binding(id)
		fmt.Fprintf(s.out, "%s\t%s %s", id.NamePos, id.Raw, b.Scope)
		switch b.Scope {
		case resolve.Undefined, resolve.Predeclared:
		default:
			fmt.Fprintf(s.out, " %d", b.Index)
		}
		fmt.Fprintln(s.out)
	}
}

// printError prints err, and for a syntax error the offending line
// with a caret under the error column.
func (s *session) printError(err error, src string, first int) {
	fmt.Fprintln(s.errOut, err)
	var e syntax.Error
	if !errors.As(err, &e) || e.Pos.Line < int32(first) {
		return
	}
	lines := strings.Split(src, "\n")
	i := int(e.Pos.Line) - first
	if i >= len(lines) || e.Pos.Col < 1 {
		return
	}
	fmt.Fprintf(s.errOut, "\t%s\n\t%s^\n", lines[i], strings.Repeat(" ", int(e.Pos.Col)-1))
}

func soleExpr(f *syntax.File) syntax.Expr {
	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			return stmt.X
		}
	}
	return nil
}
