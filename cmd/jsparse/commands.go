// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jsfront.dev/internal/dump"
	"go.jsfront.dev/internal/source"
	"go.jsfront.dev/repl"
	"go.jsfront.dev/resolve"
	"go.jsfront.dev/syntax"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file ...]",
		Short: "Print the syntax tree of each file",
		RunE:  a.runParse,
	}
}

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file ...]",
		Short: "Print the tokens of each file",
		RunE:  a.runTokens,
	}
}

func newBindingsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bindings [file ...]",
		Short: "Print the storage of every name and the variables of every function",
		RunE:  a.runBindings,
	}
}

func newREPLCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-parse-print loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd)
		},
	}
}

// eachFile calls fn for each input. Inputs that fail are counted and
// reported together.
func (a *app) eachFile(cmd *cobra.Command, args []string, fn func(*source.File) error) error {
	srcs, err := a.inputs(cmd, args)
	if err != nil {
		return err
	}
	failed := 0
	for _, src := range srcs {
		if err := fn(src); err != nil {
			failed++
		}
	}
	if failed > 0 {
		if len(srcs) == 1 {
			return fmt.Errorf("%s failed", srcs[0].Name)
		}
		return fmt.Errorf("%d of %d files failed", failed, len(srcs))
	}
	return nil
}

func (a *app) runParse(cmd *cobra.Command, args []string) error {
	return a.eachFile(cmd, args, func(src *source.File) error {
		f, err := a.parse(cmd.ErrOrStderr(), src)
		if err != nil {
			return err
		}
		defer f.Release()
		return dump.Write(cmd.OutOrStdout(), dump.File(f, &dump.Options{Positions: a.positions}), a.format)
	})
}

func (a *app) runTokens(cmd *cobra.Command, args []string) error {
	return a.eachFile(cmd, args, func(src *source.File) error {
		toks, err := syntax.Tokens(src.Name, src.Data, a.options())
		if err != nil {
			printError(cmd.ErrOrStderr(), src, err, 1)
			return err
		}
		return dump.Write(cmd.OutOrStdout(), dump.Tokens(toks), a.format)
	})
}

func (a *app) runBindings(cmd *cobra.Command, args []string) error {
	return a.eachFile(cmd, args, func(src *source.File) error {
		f, err := a.parse(cmd.ErrOrStderr(), src)
		if err != nil {
			return err
		}
		defer f.Release()
		m, err := resolve.File(f, a.cfg.IsPredeclared())
		if list, ok := err.(resolve.ErrorList); ok {
			for _, e := range list {
				fmt.Fprintln(cmd.ErrOrStderr(), e)
			}
		}
		printModule(cmd.OutOrStdout(), m)
		return err
	})
}

// printModule lists each identifier with its binding, then the
// storage of each function and of the top level.
func printModule(w io.Writer, m *resolve.Module) {
	for _, id := range m.File.Idents() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", id.NamePos, id.Raw, describe(m.Binding(id)))
	}
	for _, fn := range m.Functions {
		name := fn.Name
		if name == "" {
			name = "<" + fn.Record.Kind.String() + ">"
		}
		fmt.Fprintf(w, "function %s: params %d, locals [%s], cells %v, free [%s]\n",
			name, fn.NumParams, names(fn.Locals), fn.Cells, names(fn.FreeVars))
	}
	fmt.Fprintf(w, "globals [%s]\n", names(m.Globals))
	if len(m.Locals) > 0 {
		fmt.Fprintf(w, "top-level locals [%s]\n", names(m.Locals))
	}
}

func describe(b *resolve.Binding) string {
	switch b.Scope {
	case resolve.Undefined, resolve.Predeclared:
		return b.Scope.String()
	}
	return fmt.Sprintf("%s %d", b.Scope, b.Index)
}

func names(bindings []*resolve.Binding) string {
	ss := make([]string, len(bindings))
	for i, b := range bindings {
		ss[i] = b.Name
	}
	return strings.Join(ss, " ")
}

// runREPL starts an interactive loop if standard input is a terminal,
// and otherwise treats each line of input as REPL input.
func (a *app) runREPL(cmd *cobra.Command) error {
	cfg := repl.Config{
		Options:       a.options(),
		Format:        a.format,
		IsPredeclared: a.cfg.IsPredeclared(),
		Logger:        a.logger,
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.HistoryFile = filepath.Join(home, ".jsparse_history")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Welcome to jsparse (go.jsfront.dev)")
		return repl.REPL(cfg)
	}
	return repl.Run(&lineScanner{bufio.NewScanner(in)}, cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
}

// A lineScanner reads REPL input from a non-interactive stream.
type lineScanner struct{ *bufio.Scanner }

func (s *lineScanner) Readline() (string, error) {
	if s.Scan() {
		return s.Text(), nil
	}
	if err := s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (*lineScanner) SetPrompt(string) {}
