// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"log/slog"

	"go.jsfront.dev/atom"
)

// Options configures a parse. The zero value is usable.
type Options struct {
	StrictMode     bool // parse the whole program as strict mode code
	AllowLegacy    bool // accept let blocks, for each, comprehensions, expression closures, catch guards
	FoldConstants  bool // invoke Folder after a successful parse
	StrictWarnings bool // report strict mode conditions as warnings in sloppy code and upgrade redeclarations to errors

	MaxDepth int // nesting limit for recursive productions; DefaultMaxDepth if zero
	MaxNodes int // allocation budget for the node pool; unlimited if zero

	Atoms  *atom.Table  // shared interning table; a private one if nil
	Logger *slog.Logger // debug events and warnings; discarded if nil
	Folder Folder       // optional constant folder
}

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is zero.
const DefaultMaxDepth = 1000

// A Folder rewrites a successfully parsed file, for example by folding
// constant subexpressions. It must preserve the binding annotations.
type Folder interface {
	Fold(f *File) (*File, error)
}

func (opts *Options) maxDepth() int {
	if opts.MaxDepth > 0 {
		return opts.MaxDepth
	}
	return DefaultMaxDepth
}

func (opts *Options) logger() *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return discard
}

var discard = slog.New(slog.DiscardHandler)
