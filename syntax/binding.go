// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// This file defines resolver data types referenced by the syntax tree.
// We cannot guarantee API stability for these types
// as they are closely tied to the implementation.

import (
	"slices"

	"go.jsfront.dev/atom"
)

// A NameRef is the index of an Ident in its file's name table.
// Identifiers are numbered in source order starting at 1.
type NameRef int32

// A DefID is the index of a Definition in its file's definition table.
// The zero DefID denotes no definition.
type DefID int32

// A DefKind says how a name was bound.
type DefKind uint8

const (
	Placeholder DefKind = iota // used but not (yet) declared
	Argument                   // formal parameter
	Var
	Const
	Let
	FunctionDef // function statement
	Callee      // a named function expression's own name
	Arguments   // implicit arguments object
)

var defKindNames = [...]string{
	Placeholder: "placeholder",
	Argument:    "argument",
	Var:         "var",
	Const:       "const",
	Let:         "let",
	FunctionDef: "function",
	Callee:      "callee",
	Arguments:   "arguments",
}

func (k DefKind) String() string { return defKindNames[k] }

// DefFlags record facts about a Definition accumulated while parsing.
type DefFlags uint16

const (
	DefClosed      DefFlags = 1 << iota // used from a nested function
	DefDeoptimized                      // may be accessed dynamically; no static slot may be assumed
	DefAssigned                         // assigned after initialization
	DefInitialized                      // declared with an initializer
	DefTopLevel                         // declared in the program body
	DefDead                             // superseded; owns no uses
	DefCatchParam                       // a catch clause parameter
)

// IdentFlags describe one occurrence of a name.
type IdentFlags uint8

const (
	IdentUsed        IdentFlags = 1 << iota // a reference to a definition
	IdentDefinition                         // the binding site of a definition
	IdentAssigned                           // the target of an assignment
	IdentDeoptimized                        // occurs within the reach of with or eval
)

// A Definition is one binding of a name: a declaration, or a placeholder
// for a name used before (or without) its declaration.
type Definition struct {
	ID    DefID
	Name  atom.Atom
	Kind  DefKind
	Ident *Ident   // binding site; nil for placeholders and implicit bindings
	Pos   Position // binding site, or first use of a placeholder
	Slot  int      // index in FunctionRecord.Args or .Vars, or in a block's lets; -1 if unbound
	Level int      // static nesting level of the declaring function
	// BlockID is the scope the binding is visible in:
	// the block of a let, or the function body otherwise.
	BlockID int
	Flags   DefFlags
	Uses    []NameRef // in source order

	Func *FunctionRecord // declaring function; nil at top level
}

// IsPlaceholder reports whether d stands for a not yet declared name.
func (d *Definition) IsPlaceholder() bool { return d.Kind == Placeholder }

// A FuncKind says how a function was introduced.
type FuncKind uint8

const (
	FuncStatement FuncKind = iota
	FuncExpression
	FuncGetter
	FuncSetter
	FuncGenexp        // generator expression
	FuncComprehension // array comprehension
)

var funcKindNames = [...]string{
	FuncStatement:     "statement",
	FuncExpression:    "expression",
	FuncGetter:        "getter",
	FuncSetter:        "setter",
	FuncGenexp:        "genexp",
	FuncComprehension: "comprehension",
}

func (k FuncKind) String() string { return funcKindNames[k] }

// FuncFlags record facts about a function, or the program.
type FuncFlags uint32

const (
	FuncGenerator                   FuncFlags = 1 << iota // contains yield
	FuncHeavyweight                                       // needs a runtime scope object
	FuncBindingsAccessedDynamically                       // contains with or direct eval
	FuncMightAliasLocals                                  // declares vars within with
	FuncExtensibleScope                                   // declares functions within blocks
	FuncUsesArguments                                     // refers to arguments
	FuncArgsReassigned                                    // assigns to arguments
	FuncDefinitelyNeedsArgsObj                            // arguments object must be created eagerly
	FuncFunStmtAliasesArg                                 // a function statement rebinds a parameter
	FuncStrict                                            // strict mode code
	FuncHasRest                                           // has a rest parameter
	FuncExprClosure                                       // body is an expression
)

var funcFlagNames = []struct {
	flag FuncFlags
	name string
}{
	{FuncGenerator, "generator"},
	{FuncHeavyweight, "heavyweight"},
	{FuncBindingsAccessedDynamically, "dynamic"},
	{FuncMightAliasLocals, "aliaslocals"},
	{FuncExtensibleScope, "extensible"},
	{FuncUsesArguments, "arguments"},
	{FuncArgsReassigned, "argsreassigned"},
	{FuncDefinitelyNeedsArgsObj, "needsargsobj"},
	{FuncFunStmtAliasesArg, "funstmtaliasesarg"},
	{FuncStrict, "strict"},
	{FuncHasRest, "rest"},
	{FuncExprClosure, "exprclosure"},
}

// Names returns the names of the flags that are set, in a fixed order.
func (f FuncFlags) Names() []string {
	var names []string
	for _, fn := range funcFlagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return names
}

// A FunctionRecord holds the static data of one function.
type FunctionRecord struct {
	Name     atom.Atom // zero if anonymous
	Node     Node      // *FuncDecl, *FuncExpr or *Comprehension
	Kind     FuncKind
	Parent   *FunctionRecord // nil for functions of the top level
	Children []*FunctionRecord
	Level    int // 1 for functions of the top level
	BodyID   int // block id of the body

	Args    []DefID // formal parameters, in order; destructured ones are anonymous
	Vars    []DefID // var, const, function and body-level let bindings
	Callee  DefID   // own name of a named function expression
	ArgsObj DefID   // implicit arguments binding, if used
	Upvars  []Upvar // captured outer bindings
	Flags   FuncFlags
}

// An Upvar is a name that a function takes from an enclosing scope.
// Use is one reference to it inside the function; the Def of that
// identifier is the outer binding, or a free name.
type Upvar struct {
	Name atom.Atom
	Use  NameRef
}

// A bindingTable maps each name to the definitions currently in scope,
// innermost first. Block-scoped lets shadow by prepending; popping the
// block removes them from the front.
type bindingTable map[atom.Atom][]DefID

func (t bindingTable) lookupFirst(name atom.Atom) DefID {
	if l := t[name]; len(l) > 0 {
		return l[0]
	}
	return 0
}

func (t bindingTable) lookupAll(name atom.Atom) []DefID { return t[name] }

func (t bindingTable) addUnique(name atom.Atom, id DefID) {
	if len(t[name]) > 0 {
		panic("syntax: duplicate binding")
	}
	t[name] = []DefID{id}
}

func (t bindingTable) addShadow(name atom.Atom, id DefID) {
	t[name] = append([]DefID{id}, t[name]...)
}

// addHoist adds id behind any shadowing bindings.
func (t bindingTable) addHoist(name atom.Atom, id DefID) {
	t[name] = append(t[name], id)
}

func (t bindingTable) updateFirst(name atom.Atom, id DefID) { t[name][0] = id }

func (t bindingTable) remove(name atom.Atom) {
	if l := t[name][1:]; len(l) > 0 {
		t[name] = l
	} else {
		delete(t, name)
	}
}

// A placeholderMap maps names to placeholder definitions, remembering
// insertion order.
type placeholderMap struct {
	index map[atom.Atom]DefID
	order []atom.Atom
}

func (m *placeholderMap) lookup(name atom.Atom) DefID { return m.index[name] }

func (m *placeholderMap) add(name atom.Atom, id DefID) {
	if m.index == nil {
		m.index = make(map[atom.Atom]DefID)
	}
	m.index[name] = id
	m.order = append(m.order, name)
}

func (m *placeholderMap) remove(name atom.Atom) {
	delete(m.index, name)
	if i := slices.Index(m.order, name); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
}

func (m *placeholderMap) len() int { return len(m.order) }

// names returns a snapshot of the names in insertion order.
func (m *placeholderMap) names() []atom.Atom { return slices.Clone(m.order) }

// mergeUses merges two sorted use lists.
func mergeUses(x, y []NameRef) []NameRef {
	if len(x) == 0 {
		return slices.Clone(y)
	}
	if len(y) == 0 {
		return x
	}
	z := make([]NameRef, 0, len(x)+len(y))
	i, j := 0, 0
	for i < len(x) && j < len(y) {
		if x[i] < y[j] {
			z = append(z, x[i])
			i++
		} else {
			z = append(z, y[j])
			j++
		}
	}
	z = append(z, x[i:]...)
	return append(z, y[j:]...)
}
