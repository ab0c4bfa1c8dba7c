// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package atom provides an identifier interning table.
//
// An Atom is a small integer handle for a string. Two atoms obtained
// from the same Table are equal if and only if their strings are equal,
// so the parser compares names by handle and never by text.
//
// A Table may be shared by any number of concurrent parses.
package atom // import "go.jsfront.dev/atom"

import "sync"

// An Atom is an interned string. The zero Atom denotes the empty string.
type Atom uint32

// A Table maps strings to atoms and back.
// The zero value is ready to use.
type Table struct {
	mu      sync.RWMutex
	index   map[string]Atom
	strings []string // strings[a] is the text of atom a
}

// NewTable returns a table pre-populated with the given names,
// which receive consecutive atoms starting at 1 in argument order.
func NewTable(names ...string) *Table {
	t := new(Table)
	for _, name := range names {
		t.Intern(name)
	}
	return t
}

// Intern returns the atom for s, allocating one if necessary.
func (t *Table) Intern(s string) Atom {
	if s == "" {
		return 0
	}
	t.mu.RLock()
	a, ok := t.index[s]
	t.mu.RUnlock()
	if ok {
		return a
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if a, ok := t.index[s]; ok {
		return a // lost a race with another writer
	}
	if t.index == nil {
		t.index = make(map[string]Atom)
		t.strings = append(t.strings, "")
	}
	a = Atom(len(t.strings))
	t.strings = append(t.strings, s)
	t.index[s] = a
	return a
}

// Lookup returns the atom for s without allocating one.
func (t *Table) Lookup(s string) (Atom, bool) {
	if s == "" {
		return 0, true
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	a, ok := t.index[s]
	return a, ok
}

// String returns the text of atom a.
// It panics if a was not allocated by t.
func (t *Table) String(a Atom) string {
	if a == 0 {
		return ""
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.strings[a]
}

// Len returns the number of distinct non-empty strings interned.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.strings) == 0 {
		return 0
	}
	return len(t.strings) - 1
}
