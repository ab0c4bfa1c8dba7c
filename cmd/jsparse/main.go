// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The jsparse command parses JavaScript files and prints their syntax
// trees, tokens or name bindings.
// With no arguments, it starts a read-parse-print loop (REPL).
package main // import "go.jsfront.dev/cmd/jsparse"

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
