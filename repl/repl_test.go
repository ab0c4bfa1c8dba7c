// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repl_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/require"

	"go.jsfront.dev/internal/dump"
	"go.jsfront.dev/repl"
)

// script is a LineReader that replays fixed input.
type script struct {
	lines   []string
	errs    map[int]error // injected before the line of that index
	prompts []string
}

func (s *script) Readline() (string, error) {
	if err, ok := s.errs[len(s.lines)]; ok {
		delete(s.errs, len(s.lines))
		return "", err
	}
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *script) SetPrompt(prompt string) { s.prompts = append(s.prompts, prompt) }

func run(t *testing.T, cfg repl.Config, lines ...string) (in *script, out, errOut string) {
	t.Helper()
	in = &script{lines: lines}
	var stdout, stderr bytes.Buffer
	require.NoError(t, repl.Run(in, &stdout, &stderr, cfg))
	return in, stdout.String(), stderr.String()
}

func TestExpression(t *testing.T) {
	_, out, errOut := run(t, repl.Config{Format: dump.SExpr}, "1 + 2")
	require.Empty(t, errOut)
	require.Equal(t, `(BinaryExpr Op="+" X=(Literal Raw="1" Token="number literal" Value=1) Y=(Literal Raw="2" Token="number literal" Value=2))`+"\n", out)
}

func TestContinuation(t *testing.T) {
	in, out, errOut := run(t, repl.Config{Format: dump.SExpr}, "function f() {", "  return 1;", "}")
	require.Empty(t, errOut)
	require.True(t, strings.HasPrefix(out, "(FuncDecl Body=((ReturnStmt "), out)
	require.Equal(t, []string{">>> ", "... ", "... ", "... ", ">>> "}, in.prompts)
}

func TestSyntaxError(t *testing.T) {
	_, out, errOut := run(t, repl.Config{}, "x;", "a b")
	require.NotEmpty(t, out)
	require.True(t, strings.HasPrefix(errOut, "<stdin>:2:3: "), errOut)
	require.True(t, strings.HasSuffix(errOut, "\ta b\n\t  ^\n"), errOut)
}

func TestBlankLineEndsEntry(t *testing.T) {
	_, out, errOut := run(t, repl.Config{}, "if (x)", "", "y")
	require.True(t, strings.HasPrefix(errOut, "<stdin>:"), errOut)
	require.Contains(t, out, "Ident")
}

func TestIncompleteAtEOF(t *testing.T) {
	_, out, errOut := run(t, repl.Config{}, "[1,")
	require.Empty(t, out)
	require.True(t, strings.HasPrefix(errOut, "<stdin>:"), errOut)
}

func TestBindings(t *testing.T) {
	_, out, errOut := run(t, repl.Config{}, ":bindings", "var a = b;")
	require.Empty(t, errOut)
	require.True(t, strings.HasPrefix(out, "bindings on\nVarDecl"), out)
	require.True(t, strings.HasSuffix(out, "<stdin>:2:5\ta global 0\n<stdin>:2:9\tb global 1\n"), out)

	isPredeclared := func(name string) bool { return name == "print" }
	_, out, errOut = run(t, repl.Config{Bindings: true, IsPredeclared: isPredeclared}, "print(q);")
	require.Equal(t, "<stdin>:1:7: undefined: q\n", errOut)
	require.True(t, strings.HasSuffix(out, "<stdin>:1:1\tprint predeclared\n<stdin>:1:7\tq undefined\n"), out)
}

func TestCommands(t *testing.T) {
	_, out, errOut := run(t, repl.Config{}, ":sexpr", "x", ":json", ":nonsense")
	require.Equal(t, "unknown command :nonsense (try :help)\n", errOut)
	require.True(t, strings.HasPrefix(out, "(Ident "), out)

	_, out, _ = run(t, repl.Config{}, ":help")
	require.Contains(t, out, ":bindings")
}

func TestWarnings(t *testing.T) {
	_, _, errOut := run(t, repl.Config{}, "function g(a, a) {}")
	require.Equal(t, "<stdin>:1:15: warning: duplicate argument a\n", errOut)
}

func TestInterrupt(t *testing.T) {
	in := &script{lines: []string{"x"}, errs: map[int]error{1: readline.ErrInterrupt}}
	var stdout, stderr bytes.Buffer
	require.NoError(t, repl.Run(in, &stdout, &stderr, repl.Config{Format: dump.SExpr}))
	require.Equal(t, readline.ErrInterrupt.Error()+"\n", stderr.String())
	require.True(t, strings.HasPrefix(stdout.String(), "(Ident "))
}
