// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/spf13/cobra"

	"go.jsfront.dev/atom"
	"go.jsfront.dev/internal/config"
	"go.jsfront.dev/internal/dump"
	"go.jsfront.dev/internal/source"
	"go.jsfront.dev/syntax"
)

// app holds the flags and the state derived from them.
type app struct {
	cfgFile    string
	verbose    bool
	positions  bool
	execprog   string
	cpuprofile string
	memprofile string

	// overlaid on the configuration file
	flags config.Config

	cfg     *config.Config
	format  dump.Format
	logger  *slog.Logger
	atoms   *atom.Table
	stopCPU func() error
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:   "jsparse [file ...]",
		Short: "Parse JavaScript and print syntax trees",
		Long: `jsparse parses JavaScript programs, resolving every name as it goes,
and prints the syntax tree, the tokens, or the binding of each name.

With file arguments it behaves like "jsparse parse". With none, it starts
an interactive read-parse-print loop, or reads entries from standard
input if that is not a terminal.`,
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && a.execprog == "" {
				return a.runREPL(cmd)
			}
			return a.runParse(cmd, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "configuration file (TOML, or YAML by .yaml/.yml extension)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log debug events to stderr")
	pf.BoolVar(&a.flags.StrictMode, "strict", false, "parse as strict mode code")
	pf.BoolVar(&a.flags.AllowLegacy, "legacy", false, "accept legacy syntax extensions")
	pf.BoolVar(&a.flags.StrictWarnings, "strict-warnings", false, "warn about strict mode conditions in sloppy code")
	pf.IntVar(&a.flags.MaxDepth, "max-depth", 0, "nesting limit (default 1000)")
	pf.IntVar(&a.flags.MaxNodes, "max-nodes", 0, "node budget (default unlimited)")
	pf.IntVar(&a.flags.StartLine, "start-line", 0, "line number of the first line of input")
	pf.StringVar(&a.flags.Charset, "charset", "", "source encoding, such as latin1 or shift_jis (default UTF-8)")
	pf.StringVarP(&a.flags.Output, "output", "o", "", "output format: "+strings.Join(config.Outputs, ", ")+" (default tree)")
	pf.StringSliceVar(&a.flags.Predeclared, "predeclared", nil, "names supplied by the environment")
	pf.BoolVar(&a.positions, "positions", false, "include node positions in the output")
	pf.StringVar(&a.cpuprofile, "cpuprofile", "", "gather Go CPU profile in this file")
	pf.StringVar(&a.memprofile, "memprofile", "", "gather Go memory profile in this file")
	root.Flags().StringVarP(&a.execprog, "exec", "c", "", "parse program `prog`")

	root.AddCommand(
		newParseCmd(a),
		newTokensCmd(a),
		newBindingsCmd(a),
		newREPLCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration, overlays the flags that were set,
// and starts profiling.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg := new(config.Config)
	if a.cfgFile != "" {
		var err error
		if cfg, err = config.Load(a.cfgFile); err != nil {
			return err
		}
		a.logger.Debug("loaded configuration", "path", a.cfgFile)
	}
	flags := cmd.Flags()
	overlay := func(name string, set func()) {
		if flags.Changed(name) {
			set()
		}
	}
	overlay("strict", func() { cfg.StrictMode = a.flags.StrictMode })
	overlay("legacy", func() { cfg.AllowLegacy = a.flags.AllowLegacy })
	overlay("strict-warnings", func() { cfg.StrictWarnings = a.flags.StrictWarnings })
	overlay("max-depth", func() { cfg.MaxDepth = a.flags.MaxDepth })
	overlay("max-nodes", func() { cfg.MaxNodes = a.flags.MaxNodes })
	overlay("start-line", func() { cfg.StartLine = a.flags.StartLine })
	overlay("charset", func() { cfg.Charset = a.flags.Charset })
	overlay("output", func() { cfg.Output = a.flags.Output })
	overlay("predeclared", func() { cfg.Predeclared = a.flags.Predeclared })
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.format = dump.Tree
	if cfg.Output != "" {
		var err error
		if a.format, err = dump.ParseFormat(cfg.Output); err != nil {
			return err
		}
	}
	a.atoms = atom.NewTable()

	if a.cpuprofile != "" {
		f, err := os.Create(a.cpuprofile)
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return err
		}
		a.stopCPU = func() error {
			pprof.StopCPUProfile()
			return f.Close()
		}
	}
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) error {
	var errs []error
	if a.stopCPU != nil {
		errs = append(errs, a.stopCPU())
	}
	if a.memprofile != "" {
		f, err := os.Create(a.memprofile)
		if err != nil {
			return err
		}
		runtime.GC()
		errs = append(errs, pprof.Lookup("heap").WriteTo(f, 0), f.Close())
	}
	return errors.Join(errs...)
}

func (a *app) options() *syntax.Options {
	return a.cfg.Options(a.atoms, a.logger)
}

// read loads the named source, or standard input for "-".
func (a *app) read(cmd *cobra.Command, path string) (*source.File, error) {
	if path == source.Stdin {
		return source.ReadFrom("<stdin>", cmd.InOrStdin(), a.cfg.Charset)
	}
	return source.Read(path, a.cfg.Charset)
}

// inputs returns the sources named by args: the -c program, or the
// files, or standard input if there are none.
func (a *app) inputs(cmd *cobra.Command, args []string) ([]*source.File, error) {
	if a.execprog != "" {
		return []*source.File{{Name: "cmdline", Data: []byte(a.execprog), Charset: "utf-8"}}, nil
	}
	if len(args) == 0 {
		args = []string{source.Stdin}
	}
	var files []*source.File
	for _, arg := range args {
		f, err := a.read(cmd, arg)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// parse parses src, printing diagnostics, and the error with the
// offending line if it fails.
func (a *app) parse(w io.Writer, src *source.File) (*syntax.File, error) {
	a.logger.Debug("parsing", "file", src.Name, "bytes", len(src.Data), "charset", src.Charset)
	f, err := syntax.Parse(src.Name, src.Data, a.cfg.StartLine, a.options())
	if err != nil {
		printError(w, src, err, a.cfg.StartLine)
		return nil, err
	}
	for _, d := range f.Diagnostics {
		fmt.Fprintln(w, d)
	}
	return f, nil
}

func printError(w io.Writer, src *source.File, err error, startLine int) {
	fmt.Fprintln(w, err)
	var e syntax.Error
	if !errors.As(err, &e) || e.Pos.Col < 1 {
		return
	}
	if startLine < 1 {
		startLine = 1
	}
	if line := src.Line(int(e.Pos.Line) - startLine + 1); line != "" {
		fmt.Fprintf(w, "\t%s\n\t%s^\n", line, strings.Repeat(" ", int(e.Pos.Col)-1))
	}
}
