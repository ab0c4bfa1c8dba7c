// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "reflect"

const chunkSize = 256

// A NodePool owns every node, definition and function record of one
// parse. Nothing is freed individually; ReleaseAll drops everything.
type NodePool struct {
	max    int // allocation budget; unlimited if zero
	count  int
	arenas map[reflect.Type]any // *arena[T] per node type

	names []*Ident      // indexed by NameRef; [0] is unused
	defs  []*Definition // indexed by DefID; [0] is unused
}

// NewNodePool returns a pool that allows at most max allocations,
// or any number if max is zero.
func NewNodePool(max int) *NodePool {
	return &NodePool{
		max:    max,
		arenas: make(map[reflect.Type]any),
		names:  []*Ident{nil},
		defs:   []*Definition{nil},
	}
}

// Len returns the number of objects allocated so far.
func (pool *NodePool) Len() int { return pool.count }

// ReleaseAll drops every object owned by the pool.
// Nodes obtained from the pool must not be used afterwards.
func (pool *NodePool) ReleaseAll() {
	pool.arenas = nil
	pool.names = nil
	pool.defs = nil
	pool.count = 0
}

// reserve charges one allocation against the budget.
func (pool *NodePool) reserve() bool {
	if pool.max > 0 && pool.count >= pool.max {
		return false
	}
	pool.count++
	return true
}

// An arena hands out values of one type from fixed-size chunks,
// so pointers into a chunk stay valid as the arena grows.
type arena[T any] struct {
	cur    []T
	chunks int
}

func (a *arena[T]) alloc() *T {
	if len(a.cur) == cap(a.cur) {
		a.cur = make([]T, 0, chunkSize)
		a.chunks++
	}
	a.cur = a.cur[:len(a.cur)+1]
	return &a.cur[len(a.cur)-1]
}

// alloc returns a zeroed T owned by pool. It does not check the budget.
func alloc[T any](pool *NodePool) *T {
	t := reflect.TypeFor[T]()
	a, _ := pool.arenas[t].(*arena[T])
	if a == nil {
		a = new(arena[T])
		pool.arenas[t] = a
	}
	return a.alloc()
}

// addIdent records id in the name table and sets its Ref.
func (pool *NodePool) addIdent(id *Ident) {
	id.Ref = NameRef(len(pool.names))
	pool.names = append(pool.names, id)
}

func (pool *NodePool) ident(ref NameRef) *Ident { return pool.names[ref] }

// addDef records d in the definition table and sets its ID.
func (pool *NodePool) addDef(d *Definition) {
	d.ID = DefID(len(pool.defs))
	pool.defs = append(pool.defs, d)
}

func (pool *NodePool) def(id DefID) *Definition { return pool.defs[id] }

func (pool *NodePool) nameCount() int { return len(pool.names) - 1 }
