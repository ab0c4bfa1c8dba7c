// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source reads JavaScript source text into memory as UTF-8.
//
// The parser works on an in-memory UTF-8 buffer. Files in other
// encodings are decoded here, either from an encoding named by the
// caller (any WHATWG label, such as "latin1" or "shift_jis") or from a
// byte order mark.
package source // import "go.jsfront.dev/internal/source"

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Stdin is the path that denotes standard input.
const Stdin = "-"

// A File is a source buffer and where it came from.
type File struct {
	Name    string // display name: the base name, or <stdin>
	Path    string // empty for standard input
	Data    []byte // UTF-8
	Charset string // canonical name of the encoding decoded from

	lines [][]byte
}

// Read reads the file at path, or standard input if path is Stdin.
// An empty charset means UTF-8 unless the data starts with a byte
// order mark.
func Read(path, charset string) (*File, error) {
	if path == Stdin {
		return ReadFrom("<stdin>", os.Stdin, charset)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := decodeFile(filepath.Base(path), data, charset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// ReadFrom reads a source buffer from r, which is called name.
func ReadFrom(name string, r io.Reader, charset string) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return decodeFile(name, data, charset)
}

func decodeFile(name string, data []byte, charset string) (*File, error) {
	text, cs, err := Decode(data, charset)
	if err != nil {
		return nil, err
	}
	return &File{Name: name, Data: text, Charset: cs}, nil
}

var utf8BOM = []byte("\uFEFF")

// Decode converts data to UTF-8 and returns the canonical name of the
// encoding it was in. A leading byte order mark is removed.
func Decode(data []byte, charset string) ([]byte, string, error) {
	if charset == "" {
		cs := "utf-8"
		switch {
		case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
			cs = "utf-16be"
		case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
			cs = "utf-16le"
		}
		// BOMOverride switches to the encoding of a byte order mark
		// and otherwise passes the input through.
		dec := unicode.BOMOverride(encoding.Nop.NewDecoder())
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return nil, "", fmt.Errorf("decoding %s: %w", cs, err)
		}
		return out, cs, nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, "", fmt.Errorf("unknown charset %q", charset)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = charset
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", name, err)
	}
	return bytes.TrimPrefix(out, utf8BOM), name, nil
}

// Line returns line n of the file, counting from 1, without its
// terminator. It returns "" if there is no such line.
func (f *File) Line(n int) string {
	if f.lines == nil {
		f.lines = bytes.Split(f.Data, []byte("\n"))
	}
	if n < 1 || n > len(f.lines) {
		return ""
	}
	return string(bytes.TrimSuffix(f.lines[n-1], []byte("\r")))
}
