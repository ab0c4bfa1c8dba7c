// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolve computes the storage class of every name in a parsed
// JavaScript file.
//
// The parser has already bound each identifier to a definition and
// recorded, for each function, which outer names it captures. This
// package turns that into the view a code generator needs: for each
// function, an ordered list of local slots and of free variables, and
// for each identifier occurrence, a Binding saying where its value lives.
//
// Scopes:
//
//	local        a slot of the enclosing function, not captured
//	cell         a slot of the enclosing function, captured by a nested one
//	free         a cell of an enclosing function, reached through a closure
//	global       a top-level binding, or a name assigned without declaration
//	predeclared  a name supplied by the environment
//	dynamic      a name that may be found on a with object or created by eval
//	undefined    a name bound nowhere
package resolve // import "go.jsfront.dev/resolve"

import (
	"fmt"
	"sort"
	"strings"

	"go.jsfront.dev/syntax"
)

// A Scope says where the value of a name is stored.
type Scope uint8

const (
	Undefined Scope = iota
	Local
	Cell
	Free
	Global
	Predeclared
	Dynamic
)

var scopeNames = [...]string{
	Undefined:   "undefined",
	Local:       "local",
	Cell:        "cell",
	Free:        "free",
	Global:      "global",
	Predeclared: "predeclared",
	Dynamic:     "dynamic",
}

func (s Scope) String() string { return scopeNames[s] }

// A Binding ties together all occurrences of a name that share storage.
type Binding struct {
	Name  string
	Scope Scope

	// Index records the index into the enclosing
	// - Function.Locals or Module.Locals, if Scope is Local, Cell or Dynamic
	//   and the definition has a slot;
	// - Function.FreeVars, if Scope is Free;
	// - Module.Globals, if Scope is Global.
	// It is zero otherwise.
	Index int

	First *syntax.Ident      // binding site, or first occurrence; nil for some implicit bindings
	Def   *syntax.Definition // nil for free names
	Outer *Binding           // for Free: the binding it refers to in the enclosing function
}

// A Function is the resolved form of a function record.
type Function struct {
	Record    *syntax.FunctionRecord
	Name      string // empty if anonymous
	Locals    []*Binding
	FreeVars  []*Binding
	NumParams int
	Cells     []int // indices of Locals that are cells

	free map[syntax.DefID]*Binding
}

// A Module is the resolved form of a file.
type Module struct {
	File      *syntax.File
	Globals   []*Binding
	Locals    []*Binding // block-scoped bindings of the top level
	Functions []*Function

	defs   map[syntax.DefID]*Binding // by definition, for locals, cells and globals
	names  map[syntax.DefID]*Binding // by placeholder, for free names
	idents []*Binding                // by NameRef-1
	funcs  map[*syntax.FunctionRecord]*Function
}

// Binding returns the binding of an identifier of m's file.
func (m *Module) Binding(id *syntax.Ident) *Binding {
	if id.Ref <= 0 || int(id.Ref) > len(m.idents) {
		return nil
	}
	return m.idents[id.Ref-1]
}

// Function returns the resolved form of a function record.
func (m *Module) Function(rec *syntax.FunctionRecord) *Function { return m.funcs[rec] }

// An Error describes a name that cannot be resolved.
type Error struct {
	Pos syntax.Position
	Msg string
}

func (e Error) Error() string { return e.Pos.String() + ": " + e.Msg }

// An ErrorList is a non-empty list of resolver errors, in source order.
type ErrorList []Error

func (e ErrorList) Len() int           { return len(e) }
func (e ErrorList) Swap(i, j int)      { e[i], e[j] = e[j], e[i] }
func (e ErrorList) Less(i, j int) bool { return e[i].Pos.Offset < e[j].Pos.Offset }

func (e ErrorList) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s (and %d more errors)", e[0], len(e)-1)
	return buf.String()
}

// File resolves the names of a parsed file.
//
// If isPredeclared is nil, every name left unbound by the parser is an
// implicit global. Otherwise names for which it reports true are
// predeclared, names assigned in sloppy mode code become implicit
// globals, and the rest are reported as errors. The Module is returned
// even when there are errors.
func File(f *syntax.File, isPredeclared func(name string) bool) (*Module, error) {
	r := &resolver{
		m: &Module{
			File:   f,
			defs:   make(map[syntax.DefID]*Binding),
			names:  make(map[syntax.DefID]*Binding),
			idents: make([]*Binding, len(f.Idents())),
			funcs:  make(map[*syntax.FunctionRecord]*Function),
		},
		f:             f,
		isPredeclared: isPredeclared,
		owner:         make(map[syntax.NameRef]*syntax.FunctionRecord),
	}
	r.findOwners()
	r.bindGlobals()
	r.functions(f.Functions)
	r.bindLocals()
	for _, fn := range r.m.Functions {
		r.bindFree(fn)
	}
	r.freeNames()
	for _, id := range f.Idents() {
		r.m.idents[id.Ref-1] = r.occurrence(id)
	}
	if len(r.errors) > 0 {
		sort.Stable(r.errors)
		return r.m, r.errors
	}
	return r.m, nil
}

type resolver struct {
	m             *Module
	f             *syntax.File
	isPredeclared func(string) bool
	owner         map[syntax.NameRef]*syntax.FunctionRecord // nil for the top level
	errors        ErrorList
}

func recordOf(n syntax.Node) *syntax.FunctionRecord {
	switch n := n.(type) {
	case *syntax.FuncDecl:
		return n.Record
	case *syntax.FuncExpr:
		return n.Record
	case *syntax.Comprehension:
		return n.Func
	}
	return nil
}

// findOwners records the function each identifier occurs in.
// The name of a function statement belongs to the enclosing function,
// so the innermost open function is adjusted by static level.
func (r *resolver) findOwners() {
	var nodes []syntax.Node
	var stack []*syntax.FunctionRecord
	r.f.Walk(func(n syntax.Node) bool {
		if n == nil {
			if recordOf(nodes[len(nodes)-1]) != nil {
				stack = stack[:len(stack)-1]
			}
			nodes = nodes[:len(nodes)-1]
			return true
		}
		nodes = append(nodes, n)
		if rec := recordOf(n); rec != nil {
			stack = append(stack, rec)
		}
		if id, ok := n.(*syntax.Ident); ok {
			var fn *syntax.FunctionRecord
			if len(stack) > 0 {
				fn = stack[len(stack)-1]
			}
			for fn != nil && fn.Level > id.Level {
				fn = fn.Parent
			}
			r.owner[id.Ref] = fn
		}
		return true
	})
}

func (r *resolver) live(id syntax.DefID) *syntax.Definition {
	if id == 0 {
		return nil
	}
	d := r.f.Definition(id)
	if d.Flags&syntax.DefDead != 0 || d.IsPlaceholder() {
		return nil
	}
	return d
}

func (r *resolver) newBinding(d *syntax.Definition, scope Scope) *Binding {
	b := &Binding{Name: r.f.Name(d.Name), Scope: scope, Def: d, First: d.Ident}
	if b.First == nil && len(d.Uses) > 0 {
		b.First = r.f.Ident(d.Uses[0])
	}
	if d.Flags&syntax.DefDeoptimized != 0 {
		b.Scope = Dynamic
	}
	return b
}

// bindGlobals creates the bindings of the top-level body.
func (r *resolver) bindGlobals() {
	for _, id := range r.f.Vars {
		d := r.live(id)
		if d == nil || r.m.defs[d.ID] != nil {
			continue
		}
		b := r.newBinding(d, Global)
		b.Index = len(r.m.Globals)
		r.m.Globals = append(r.m.Globals, b)
		r.m.defs[d.ID] = b
	}
}

// functions creates the Functions of recs and their descendants, in preorder.
func (r *resolver) functions(recs []*syntax.FunctionRecord) {
	for _, rec := range recs {
		fn := &Function{
			Record: rec,
			Name:   r.f.Name(rec.Name),
			free:   make(map[syntax.DefID]*Binding),
		}
		r.m.Functions = append(r.m.Functions, fn)
		r.m.funcs[rec] = fn
		r.functions(rec.Children)
	}
}

// bindLocals assigns local slots: the parameters of each function in
// order, then its other bindings in order of declaration. Bindings of
// the top level that are not globals become module locals.
func (r *resolver) bindLocals() {
	add := func(fn *Function, d *syntax.Definition) {
		if r.m.defs[d.ID] != nil {
			return
		}
		scope := Local
		if d.Flags&syntax.DefClosed != 0 {
			scope = Cell
		}
		b := r.newBinding(d, scope)
		if fn == nil {
			b.Index = len(r.m.Locals)
			r.m.Locals = append(r.m.Locals, b)
		} else {
			b.Index = len(fn.Locals)
			fn.Locals = append(fn.Locals, b)
			if scope == Cell {
				fn.Cells = append(fn.Cells, b.Index)
			}
		}
		r.m.defs[d.ID] = b
	}
	for _, fn := range r.m.Functions {
		for _, id := range fn.Record.Args {
			if d := r.live(id); d != nil {
				add(fn, d)
			}
		}
		fn.NumParams = len(fn.Locals)
	}
	for _, d := range r.f.Definitions() {
		if r.live(d.ID) == nil {
			continue
		}
		if d.Func == nil {
			add(nil, d)
		} else {
			add(r.m.funcs[d.Func], d)
		}
	}
}

// bindFree creates the free variables of fn from the names it captures.
// Only local bindings of enclosing functions need closures; globals and
// dynamic names are found by name.
func (r *resolver) bindFree(fn *Function) {
	for _, u := range fn.Record.Upvars {
		d := r.f.Def(r.f.Ident(u.Use))
		if d == nil {
			continue
		}
		outer := r.m.defs[d.ID]
		if outer == nil || outer.Scope != Cell || fn.free[d.ID] != nil {
			continue
		}
		if parent := fn.Record.Parent; parent != nil && parent != d.Func {
			if pf := r.m.funcs[parent]; pf != nil && pf.free[d.ID] != nil {
				outer = pf.free[d.ID]
			}
		}
		b := &Binding{
			Name:  outer.Name,
			Scope: Free,
			Index: len(fn.FreeVars),
			First: r.f.Ident(u.Use),
			Def:   d,
			Outer: outer,
		}
		fn.FreeVars = append(fn.FreeVars, b)
		fn.free[d.ID] = b
	}
}

// freeNames classifies the names the parser left unbound.
func (r *resolver) freeNames() {
	for _, id := range r.f.FreeVars {
		d := r.f.Definition(id)
		b := &Binding{Name: r.f.Name(d.Name), Scope: Global}
		if len(d.Uses) > 0 {
			b.First = r.f.Ident(d.Uses[0])
		}
		switch {
		case r.isPredeclared == nil:
		case r.isPredeclared(b.Name):
			b.Scope = Predeclared
		default:
			site, reported := r.sloppyAssignment(d)
			switch {
			case site != nil:
				b.First = site
			case reported:
				b.Scope = Undefined
			default:
				b.Scope = Undefined
				r.errorf(b.First.NamePos, "undefined: %s", b.Name)
			}
		}
		if b.Scope == Global {
			b.Index = len(r.m.Globals)
			r.m.Globals = append(r.m.Globals, b)
		}
		r.m.names[id] = b
	}
}

// sloppyAssignment returns the first use of the free name d that
// assigns it outside strict mode code, creating a global.
// Assignments in strict mode code are reported.
func (r *resolver) sloppyAssignment(d *syntax.Definition) (site *syntax.Ident, reported bool) {
	for _, ref := range d.Uses {
		id := r.f.Ident(ref)
		if id.Flags&syntax.IdentAssigned == 0 {
			continue
		}
		if fn := r.owner[ref]; fn != nil && fn.Flags&syntax.FuncStrict != 0 || fn == nil && r.f.Strict {
			r.errorf(id.NamePos, "assignment to undeclared variable %s in strict mode code", r.f.Name(d.Name))
			reported = true
			continue
		}
		return id, reported
	}
	return nil, reported
}

// occurrence returns the binding of one identifier.
func (r *resolver) occurrence(id *syntax.Ident) *Binding {
	d := r.f.Def(id)
	if d == nil {
		return nil
	}
	if d.IsPlaceholder() {
		b := r.m.names[d.ID]
		if id.Flags&syntax.IdentDeoptimized != 0 && b != nil && b.Scope != Dynamic {
			return &Binding{Name: b.Name, Scope: Dynamic, First: id}
		}
		return b
	}
	b := r.m.defs[d.ID]
	if b == nil || b.Scope == Global || b.Scope == Dynamic {
		return b
	}
	fn := r.owner[id.Ref]
	if fn == nil || fn == d.Func {
		return b
	}
	if free := r.m.funcs[fn].free[d.ID]; free != nil {
		return free
	}
	return b
}

func (r *resolver) errorf(pos syntax.Position, format string, args ...interface{}) {
	r.errors = append(r.errors, Error{pos, fmt.Sprintf(format, args...)})
}
