// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"fmt"
	"unicode/utf8"
)

// A Position describes the location of a rune of input.
type Position struct {
	file   *string // filename (indirect for compactness)
	Line   int32   // 1-based line number; 0 if line unknown
	Col    int32   // 1-based column (rune) number; 0 if column unknown
	Offset int32   // 0-based byte offset into the source buffer
}

// IsValid reports whether the position is valid.
func (p Position) IsValid() bool { return p.file != nil }

// Filename returns the name of the file containing this position.
func (p Position) Filename() string {
	if p.file != nil {
		return *p.file
	}
	return "<invalid>"
}

// MakePosition returns position with the specified components.
func MakePosition(file *string, line, col int32) Position { return Position{file, line, col, 0} }

// add returns the position at the end of s, assuming it starts at p
// and contains no line terminators.
func (p Position) add(s string) Position {
	p.Col += int32(utf8.RuneCountInString(s))
	p.Offset += int32(len(s))
	return p
}

func (p Position) String() string {
	file := p.Filename()
	if p.Line > 0 {
		if p.Col > 0 {
			return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Col)
		}
		return fmt.Sprintf("%s:%d", file, p.Line)
	}
	return file
}

func (p Position) isBefore(q Position) bool { return p.Offset < q.Offset }
