// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.jsfront.dev/atom"
	"go.jsfront.dev/syntax"
)

// mustParse parses src and checks the binding invariants of the result.
func mustParse(t *testing.T, src string, opts *syntax.Options) *syntax.File {
	t.Helper()
	f, err := syntax.Parse("bind.js", src, 0, opts)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	if err := f.CheckInvariants(); err != nil {
		t.Fatalf("parse %q: invariants violated:\n%v", src, err)
	}
	return f
}

// named returns the occurrences of name in source order.
func named(f *syntax.File, name string) []*syntax.Ident {
	var ids []*syntax.Ident
	for _, id := range f.Idents() {
		if id.Raw == name {
			ids = append(ids, id)
		}
	}
	return ids
}

func upvarNames(f *syntax.File, fn *syntax.FunctionRecord) []string {
	var names []string
	for _, u := range fn.Upvars {
		names = append(names, f.Name(u.Name))
	}
	return names
}

func freeNames(f *syntax.File) []string {
	var names []string
	for _, id := range f.FreeVars {
		names = append(names, f.Name(f.Definition(id).Name))
	}
	return names
}

func TestCapturedOuterBinding(t *testing.T) {
	f := mustParse(t, `var x = 1; function f(){ return x; }`, nil)
	xs := named(f, "x")
	if len(xs) != 2 {
		t.Fatalf("got %d occurrences of x, want 2", len(xs))
	}
	outer := f.Def(xs[0])
	if outer.Kind != syntax.Var || outer.Ident != xs[0] {
		t.Errorf("x: got %s definition with site %v, want the var", outer.Kind, outer.Ident)
	}
	if f.Def(xs[1]) != outer {
		t.Errorf("use of x in f is bound to %+v, want the outer var", f.Def(xs[1]))
	}
	if outer.Flags&syntax.DefClosed == 0 {
		t.Errorf("outer x is not closed over")
	}
	if xs[1].Flags&syntax.IdentUsed == 0 || xs[1].Flags&syntax.IdentDefinition != 0 {
		t.Errorf("use of x has flags %b", xs[1].Flags)
	}
	if outer.Slot != 0 || xs[1].Level != 1 || outer.Level != 0 {
		t.Errorf("x: slot %d, use level %d, def level %d; want 0, 1, 0", outer.Slot, xs[1].Level, outer.Level)
	}
	if len(f.Functions) != 1 {
		t.Fatalf("got %d top-level functions, want 1", len(f.Functions))
	}
	fn := f.Functions[0]
	if diff := cmp.Diff([]string{"x"}, upvarNames(f, fn)); diff != "" {
		t.Errorf("upvars of f (-want +got):\n%s", diff)
	}
	if fn.Upvars[0].Use != xs[1].Ref {
		t.Errorf("upvar use = %d, want %d", fn.Upvars[0].Use, xs[1].Ref)
	}
	if len(f.FreeVars) != 0 {
		t.Errorf("free vars: %v", freeNames(f))
	}
}

func TestBlockShadowing(t *testing.T) {
	const src = `let x = 1; { let x = 2; use(x); } use(x);`
	for _, opts := range []*syntax.Options{strict, legacy} {
		f := mustParse(t, src, opts)
		xs := named(f, "x")
		if len(xs) != 4 {
			t.Fatalf("got %d occurrences of x, want 4", len(xs))
		}
		outer, inner := f.Def(xs[0]), f.Def(xs[1])
		if outer == inner {
			t.Fatalf("inner let does not shadow the outer one")
		}
		if outer.Kind != syntax.Let || inner.Kind != syntax.Let {
			t.Errorf("got kinds %s and %s, want let", outer.Kind, inner.Kind)
		}
		if got := f.Def(xs[2]); got != inner {
			t.Errorf("inner use bound to %d, want inner definition %d", got.ID, inner.ID)
		}
		if got := f.Def(xs[3]); got != outer {
			t.Errorf("outer use bound to %d, want outer definition %d", got.ID, outer.ID)
		}
		if inner.BlockID <= outer.BlockID {
			t.Errorf("inner block id %d does not exceed outer %d", inner.BlockID, outer.BlockID)
		}
		if diff := cmp.Diff([]string{"use"}, freeNames(f)); diff != "" {
			t.Errorf("free vars (-want +got):\n%s", diff)
		}
	}
}

// TestLetTakesEarlierUses checks that a let declared in a block binds
// the uses of its name that precede it in that block, even when an
// enclosing binding of the name was visible at the time.
func TestLetTakesEarlierUses(t *testing.T) {
	for _, test := range []struct {
		src        string
		outer, use int // occurrence indexes of the enclosing binding and the early use
		inner      int // occurrence index of the block's let
	}{
		{`var x = 1; { x; let x = 2; }`, 0, 1, 2},
		{`let x = 1; { { x; } let x = 2; }`, 0, 1, 2},
		{`var x = 1; { use(x); { x = 3; } let x = 2; } use(x);`, 0, 1, 3},
	} {
		for _, opts := range []*syntax.Options{strict, legacy} {
			f := mustParse(t, test.src, opts)
			xs := named(f, "x")
			outer, inner := f.Def(xs[test.outer]), f.Def(xs[test.inner])
			if outer == inner {
				t.Fatalf("%s: block let does not shadow the enclosing binding", test.src)
			}
			if got := f.Def(xs[test.use]); got != inner {
				t.Errorf("%s: early use bound to %s %d, want the block's let %d", test.src, got.Kind, got.ID, inner.ID)
			}
			for _, ref := range outer.Uses {
				if id := f.Ident(ref); id.BlockID >= inner.BlockID {
					t.Errorf("%s: enclosing binding keeps a use at %v from the let's block", test.src, id.NamePos)
				}
			}
		}
	}
}

// TestLetTakesEarlierUsesFlags checks that the flags an enclosing
// binding got from uses a block's let takes over move with them.
func TestLetTakesEarlierUsesFlags(t *testing.T) {
	const src = `var x; { (function() { x = 1; }); let x; } use(x);`
	for _, opts := range []*syntax.Options{strict, legacy} {
		f := mustParse(t, src, opts)
		xs := named(f, "x")
		if len(xs) != 4 {
			t.Fatalf("got %d occurrences of x, want 4", len(xs))
		}
		outer, inner := f.Def(xs[0]), f.Def(xs[2])
		if f.Def(xs[1]) != inner {
			t.Fatalf("assignment in closure not bound to the block's let")
		}
		if outer.Flags&(syntax.DefClosed|syntax.DefAssigned) != 0 {
			t.Errorf("enclosing var keeps flags %b", outer.Flags)
		}
		if want := syntax.DefClosed | syntax.DefAssigned; inner.Flags&want != want {
			t.Errorf("block let has flags %b, want closed and assigned", inner.Flags)
		}
		if f.Def(xs[3]) != outer {
			t.Errorf("use after the block not bound to the enclosing var")
		}
	}
}

func TestDuplicateParamStrictDirective(t *testing.T) {
	_, err := syntax.Parse("c.js", `function f(a, a) { "use strict"; }`, 0, nil)
	var e syntax.Error
	if !errors.As(err, &e) {
		t.Fatalf("got %v, want a syntax.Error", err)
	}
	if e.Kind != syntax.BindingError || e.Code != syntax.ErrDuplicateParam {
		t.Errorf("got %s (code %d), want BindingError duplicate argument", e.Kind, e.Code)
	}
	if got, want := e.Error(), "c.js:1:15: duplicate argument a"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// Without the directive the duplicate is only a warning.
	f := mustParse(t, `function f(a, a) { }`, nil)
	if len(f.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(f.Diagnostics), f.Diagnostics)
	}
	d := f.Diagnostics[0]
	if d.Severity != syntax.Warning || d.Code != syntax.ErrDuplicateParam || d.Pos.Col != 15 {
		t.Errorf("got %s, want a duplicate argument warning at column 15", d)
	}
	if n := len(f.Functions[0].Args); n != 2 {
		t.Errorf("got %d arguments, want 2", n)
	}

	// Strict mode requested by the caller has the same effect as the directive.
	if _, err := syntax.Parse("c.js", `function f(a, a) { }`, 0, strict); err == nil {
		t.Errorf("strict parse of duplicate parameters succeeded")
	}
}

func TestWithDeoptimizes(t *testing.T) {
	f := mustParse(t, `with (o) { x = 1; }`, nil)
	want := syntax.FuncHeavyweight | syntax.FuncBindingsAccessedDynamically
	if f.Flags&want != want {
		t.Errorf("program flags %v, want heavyweight and dynamic", f.Flags.Names())
	}
	x := named(f, "x")[0]
	if x.Flags&syntax.IdentDeoptimized == 0 || x.Flags&syntax.IdentAssigned == 0 {
		t.Errorf("x has flags %b, want deoptimized assignment", x.Flags)
	}
	if d := f.Def(x); d.Flags&syntax.DefDeoptimized == 0 {
		t.Errorf("definition of x is not deoptimized")
	}

	f = mustParse(t, `function g(o) { var x; with (o) { x = 1; var y; } return x; }`, nil)
	g := f.Functions[0]
	if diff := cmp.Diff([]string{"heavyweight", "dynamic", "aliaslocals"}, g.Flags.Names()); diff != "" {
		t.Errorf("flags of g (-want +got):\n%s", diff)
	}
	xs := named(f, "x")
	if d := f.Def(xs[0]); d.Flags&syntax.DefDeoptimized == 0 {
		t.Errorf("var x visible within with is not deoptimized")
	}
	if xs[2].Flags&syntax.IdentDeoptimized != 0 {
		t.Errorf("use of x after the with statement is deoptimized")
	}
	if d := f.Def(named(f, "y")[0]); d.Flags&syntax.DefDeoptimized == 0 {
		t.Errorf("var y declared within with is not deoptimized")
	}

	// A closure created within with that refers to an outer name.
	f = mustParse(t, `var z; with (o) { (function () { return z; }); }`, nil)
	zs := named(f, "z")
	d := f.Def(zs[1])
	if d != f.Def(zs[0]) {
		t.Fatalf("z in closure is not bound to the outer var")
	}
	if d.Flags&(syntax.DefDeoptimized|syntax.DefClosed) != syntax.DefDeoptimized|syntax.DefClosed {
		t.Errorf("z: got flags %b, want closed and deoptimized", d.Flags)
	}
}

func TestComprehensionScope(t *testing.T) {
	f := mustParse(t, `var y; [y for (y in obj) if (y)]`, legacy)
	ys := named(f, "y")
	if len(ys) != 4 {
		t.Fatalf("got %d occurrences of y, want 4", len(ys))
	}
	outer, loop := f.Def(ys[0]), f.Def(ys[2])
	if outer == loop {
		t.Fatalf("loop variable is bound to the outer var")
	}
	if loop.Kind != syntax.Let || loop.Level != 1 {
		t.Errorf("loop variable: got %s at level %d, want let at level 1", loop.Kind, loop.Level)
	}
	for _, i := range []int{1, 3} {
		if got := f.Def(ys[i]); got != loop {
			t.Errorf("occurrence %d of y is bound to definition %d, want %d", i, got.ID, loop.ID)
		}
	}
	if len(outer.Uses) != 0 {
		t.Errorf("outer y has %d uses, want none", len(outer.Uses))
	}
	// The body was parsed at level 0 and moved into the comprehension.
	if ys[1].Level != 1 {
		t.Errorf("body y at level %d, want 1", ys[1].Level)
	}

	if len(f.Functions) != 1 {
		t.Fatalf("got %d top-level functions, want 1", len(f.Functions))
	}
	rec := f.Functions[0]
	if rec.Kind != syntax.FuncComprehension || rec.Level != 1 {
		t.Errorf("got %s record at level %d, want comprehension at level 1", rec.Kind, rec.Level)
	}
	if diff := cmp.Diff([]string{"obj"}, upvarNames(f, rec)); diff != "" {
		t.Errorf("upvars (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"obj"}, freeNames(f)); diff != "" {
		t.Errorf("free vars (-want +got):\n%s", diff)
	}
}

// TestComprehensionTransplant checks that functions and blocks within
// the body of a comprehension move one level deeper.
func TestComprehensionTransplant(t *testing.T) {
	const src = `function outer(a) {
  return (function () { return a + k; } for (k of a));
}`
	f := mustParse(t, src, legacy)
	outer := f.Functions[0]
	if len(outer.Children) != 1 {
		t.Fatalf("outer has %d children, want 1", len(outer.Children))
	}
	gen := outer.Children[0]
	if gen.Kind != syntax.FuncGenexp || gen.Flags&syntax.FuncGenerator == 0 || gen.Level != 2 {
		t.Errorf("got %s record at level %d with flags %v, want generator genexp at level 2",
			gen.Kind, gen.Level, gen.Flags.Names())
	}
	if len(gen.Children) != 1 {
		t.Fatalf("genexp has %d children, want 1", len(gen.Children))
	}
	inner := gen.Children[0]
	if inner.Parent != gen || inner.Level != 3 {
		t.Errorf("inner function: parent %p level %d, want %p level 3", inner.Parent, inner.Level, gen)
	}
	if inner.BodyID <= gen.BodyID {
		t.Errorf("inner body id %d does not follow genexp body id %d", inner.BodyID, gen.BodyID)
	}
	ks := named(f, "k")
	if d := f.Def(ks[0]); d != f.Def(ks[1]) || d.Kind != syntax.Let || d.Flags&syntax.DefClosed == 0 {
		t.Errorf("k in closure is not bound to the closed loop variable")
	}
	as := named(f, "a")
	if d := f.Def(as[0]); d.Kind != syntax.Argument || len(d.Uses) != 2 || d.Flags&syntax.DefClosed == 0 {
		t.Errorf("a: got %s with %d uses, flags %b; want closed argument with 2 uses", d.Kind, len(d.Uses), d.Flags)
	}
	if diff := cmp.Diff([]string{"a", "k"}, upvarNames(f, inner)); diff != "" {
		t.Errorf("upvars of inner function (-want +got):\n%s", diff)
	}
}

func TestRedeclarations(t *testing.T) {
	warn := &syntax.Options{StrictWarnings: true}
	for _, test := range []struct {
		src     string
		opts    *syntax.Options
		wantErr string // fatal message, or "" for success
		warning string // message of the single expected warning, or ""
	}{
		{`var a; var a;`, nil, "", ""},
		{`var a = 1; const a = 2;`, nil, "redeclaration of var a", ""},
		{`const a = 1; var a;`, nil, "redeclaration of const a", ""},
		{`const a = 1; a = 2;`, nil, "invalid assignment to const a", ""},
		{`a = 2; const a = 1;`, nil, "invalid assignment to const a", ""},
		{`function f(a) { const a = 1; }`, nil, "redeclaration of formal parameter a", ""},
		{`function f(a) { var a; }`, nil, "", ""},
		{`function f(a) { var a; }`, warn, "", "variable a redeclares argument"},
		{`let a; var a;`, strict, "redeclaration of let a", ""},
		{`{ let a; let a; }`, strict, "redeclaration of let a", ""},
		{`{ let a; var a; }`, strict, "redeclaration of let a", ""},
		{`let a; function a() {}`, strict, "redeclaration of let a", ""},
		{`try {} catch (e) { var e; }`, nil, "", ""},
		{`var f; function f() {}`, nil, "", ""},
		{`var f; function f() {}`, warn, "", "redeclaration of var f"},
		{`function f() {} var f;`, nil, "", "redeclaration of function f"},
		{`function f() {} var f;`, warn, "redeclaration of function f", ""},
		{`function f(a) { function a() {} }`, nil, "", ""},
	} {
		f, err := syntax.Parse("r.js", test.src, 0, test.opts)
		if err != nil {
			if got := stripPos(err); got != test.wantErr {
				t.Errorf("%s: got error %q, want %q", test.src, got, test.wantErr)
			}
			continue
		}
		if test.wantErr != "" {
			t.Errorf("%s: got success, want error %q", test.src, test.wantErr)
			continue
		}
		if err := f.CheckInvariants(); err != nil {
			t.Errorf("%s: %v", test.src, err)
		}
		var warnings []string
		for _, d := range f.Diagnostics {
			warnings = append(warnings, d.Msg)
		}
		var want []string
		if test.warning != "" {
			want = []string{test.warning}
		}
		if diff := cmp.Diff(want, warnings); diff != "" {
			t.Errorf("%s: warnings (-want +got):\n%s", test.src, diff)
		}
	}
}

// TestFunctionReplacesVar checks that a function statement takes over
// the binding of an earlier var of the same name.
func TestFunctionReplacesVar(t *testing.T) {
	f := mustParse(t, `var f = 1; use(f); function f() {}`, nil)
	fs := named(f, "f")
	fn := f.Def(fs[2])
	if fn.Kind != syntax.FunctionDef {
		t.Fatalf("got %s, want function", fn.Kind)
	}
	for i, id := range fs[:2] {
		if f.Def(id) != fn {
			t.Errorf("occurrence %d of f not bound to the function", i)
		}
	}
	// The var site is now an assignment to the function's binding.
	if fs[0].Flags&(syntax.IdentDefinition|syntax.IdentAssigned) != syntax.IdentAssigned {
		t.Errorf("former var site has flags %b", fs[0].Flags)
	}
	dead := 0
	for _, d := range f.Definitions() {
		if f.Name(d.Name) == "f" && d.Flags&syntax.DefDead != 0 {
			dead++
		}
	}
	if dead != 1 {
		t.Errorf("got %d dead definitions of f, want 1", dead)
	}
	if len(f.Vars) != 1 || f.Vars[0] != fn.ID || fn.Slot != 0 {
		t.Errorf("top-level vars %v, slot %d; want just the function in slot 0", f.Vars, fn.Slot)
	}

	f = mustParse(t, `function f(a) { function a() {} }`, nil)
	if rec := f.Functions[0]; rec.Flags&syntax.FuncFunStmtAliasesArg == 0 {
		t.Errorf("flags %v, want funstmtaliasesarg", rec.Flags.Names())
	}
}

func TestForwardReference(t *testing.T) {
	// A use within a block that precedes the let is captured;
	// a use before the block is not.
	f := mustParse(t, `g(x); { f(x); let x = 1; }`, strict)
	xs := named(f, "x")
	if d := f.Def(xs[0]); !d.IsPlaceholder() {
		t.Errorf("x before the block bound to a %s", d.Kind)
	}
	if d := f.Def(xs[1]); d != f.Def(xs[2]) {
		t.Errorf("x within the block not bound to the let")
	}
	if diff := cmp.Diff([]string{"g", "x", "f"}, freeNames(f)); diff != "" {
		t.Errorf("free vars (-want +got):\n%s", diff)
	}

	// A var declared after a closure that uses it.
	f = mustParse(t, `function f() { return y; } var y;`, nil)
	ys := named(f, "y")
	d := f.Def(ys[1])
	if f.Def(ys[0]) != d || d.Kind != syntax.Var || d.Flags&syntax.DefClosed == 0 {
		t.Errorf("y in f is not bound to the later var")
	}
	if len(f.FreeVars) != 0 {
		t.Errorf("free vars: %v", freeNames(f))
	}
}

func TestThreeDeepClosure(t *testing.T) {
	const src = `var v;
function a() {
  function b() {
    function c() { return v + w; }
  }
}`
	f := mustParse(t, src, nil)
	a := f.Functions[0]
	b := a.Children[0]
	c := b.Children[0]
	for _, fn := range []*syntax.FunctionRecord{a, b, c} {
		if diff := cmp.Diff([]string{"v", "w"}, upvarNames(f, fn)); diff != "" {
			t.Errorf("upvars of %s (-want +got):\n%s", f.Name(fn.Name), diff)
		}
	}
	if c.Level != 3 || c.Parent != b || b.Parent != a || a.Parent != nil {
		t.Errorf("bad nesting: c at level %d", c.Level)
	}
	vs := named(f, "v")
	d := f.Def(vs[1])
	if d != f.Def(vs[0]) || d.Flags&syntax.DefClosed == 0 {
		t.Errorf("v in c is not bound to the closed top-level var")
	}
	if vs[1].Level != 3 {
		t.Errorf("v used at level %d, want 3", vs[1].Level)
	}
	if diff := cmp.Diff([]string{"w"}, freeNames(f)); diff != "" {
		t.Errorf("free vars (-want +got):\n%s", diff)
	}
}

func TestArgumentsAndCallee(t *testing.T) {
	f := mustParse(t, `var g = function h(x) { return h(arguments); };`, nil)
	rec := f.Functions[0]
	if rec.Kind != syntax.FuncExpression || rec.Callee == 0 || rec.ArgsObj == 0 {
		t.Fatalf("got %s record with callee %d, arguments %d", rec.Kind, rec.Callee, rec.ArgsObj)
	}
	hs := named(f, "h")
	callee := f.Definition(rec.Callee)
	if callee.Kind != syntax.Callee || f.Def(hs[1]) != callee {
		t.Errorf("h in body not bound to the callee")
	}
	if args := f.Definition(rec.ArgsObj); args.Kind != syntax.Arguments || len(args.Uses) != 1 {
		t.Errorf("arguments: got %s with %d uses", args.Kind, len(args.Uses))
	}
	if rec.Flags&syntax.FuncUsesArguments == 0 {
		t.Errorf("flags %v, want arguments", rec.Flags.Names())
	}
	if len(f.FreeVars) != 0 || len(rec.Upvars) != 0 {
		t.Errorf("free vars %v, upvars %v", freeNames(f), upvarNames(f, rec))
	}

	f = mustParse(t, `function f(a) { "use strict"; a = 1; }`, nil)
	if rec := f.Functions[0]; rec.Flags&(syntax.FuncDefinitelyNeedsArgsObj|syntax.FuncStrict) != syntax.FuncDefinitelyNeedsArgsObj|syntax.FuncStrict {
		t.Errorf("flags %v, want strict and needsargsobj", rec.Flags.Names())
	}

	if _, err := syntax.Parse("a.js", `function f(...r) { return arguments; }`, 0, nil); err == nil ||
		!strings.Contains(err.Error(), "rest parameter") {
		t.Errorf("arguments with rest parameter: got %v", err)
	}
}

func TestEmptySource(t *testing.T) {
	for _, src := range []string{"", "\n\n", "// just a comment\n", "/* */"} {
		f := mustParse(t, src, nil)
		if len(f.Stmts) != 0 || len(f.Diagnostics) != 0 || len(f.FreeVars) != 0 || len(f.Functions) != 0 {
			t.Errorf("%q: got %d statements, %d diagnostics", src, len(f.Stmts), len(f.Diagnostics))
		}
	}
}

func TestDepthLimit(t *testing.T) {
	for _, test := range []struct {
		src  string
		opts *syntax.Options
	}{
		{strings.Repeat("(", 10) + "1" + strings.Repeat(")", 10), &syntax.Options{MaxDepth: 10}},
		{strings.Repeat("{", 20) + strings.Repeat("}", 20), &syntax.Options{MaxDepth: 10}},
		{strings.Repeat("[", 100000), nil},
		{strings.Repeat("!", 100000) + "x", nil},
		{strings.Repeat("new ", 100000) + "x", nil},
		{strings.Repeat("new ", 20) + "x", &syntax.Options{MaxDepth: 10}},
		{strings.Repeat("function f() {", 5000), nil},
		{"var " + strings.Repeat("[", 5000) + "a", nil},
	} {
		_, err := syntax.Parse("deep.js", test.src, 0, test.opts)
		var e syntax.Error
		if !errors.As(err, &e) {
			t.Errorf("%.20s...: got %v, want a syntax.Error", test.src, err)
			continue
		}
		if e.Code != syntax.ErrTooDeep || e.Kind != syntax.ResourceError {
			t.Errorf("%.20s...: got %v, want too deeply nested", test.src, err)
		}
	}

	// Just under the limit.
	src := strings.Repeat("{", 5) + strings.Repeat("}", 5)
	mustParse(t, src, &syntax.Options{MaxDepth: 10})
}

func TestNodeBudget(t *testing.T) {
	const src = `a + b + c + d + e + f + g + h`
	_, err := syntax.Parse("big.js", src, 0, &syntax.Options{MaxNodes: 10})
	var e syntax.Error
	if !errors.As(err, &e) || e.Code != syntax.ErrOutOfMemory || e.Kind != syntax.ResourceError {
		t.Errorf("got %v, want out of memory", err)
	}
	mustParse(t, src, &syntax.Options{MaxNodes: 1000})
}

// TestConcurrentParses parses many files at once with a shared
// interning table.
func TestConcurrentParses(t *testing.T) {
	atoms := atom.NewTable()
	opts := &syntax.Options{Atoms: atoms, AllowLegacy: true}
	srcs := make([]string, 16)
	for i := range srcs {
		srcs[i] = fmt.Sprintf(`var shared%d = 1;
function f%d(x) { let y = x + shared%d; return [y for (y in x)]; }
with (o) { common = f%d(%d); }`, i%4, i, i%4, i, i)
	}

	var wg sync.WaitGroup
	files := make([]*syntax.File, len(srcs))
	errs := make([]error, len(srcs))
	for i, src := range srcs {
		wg.Add(1)
		go func(i int, src string) {
			defer wg.Done()
			f, err := syntax.Parse(fmt.Sprintf("f%d.js", i), src, 0, opts)
			if err == nil {
				err = f.CheckInvariants()
			}
			files[i], errs[i] = f, err
		}(i, src)
	}
	wg.Wait()

	common, ok := atoms.Lookup("common")
	if !ok {
		t.Fatal("common was not interned")
	}
	for i, f := range files {
		if errs[i] != nil {
			t.Errorf("file %d: %v", i, errs[i])
			continue
		}
		if f.Atoms() != atoms {
			t.Errorf("file %d does not use the shared table", i)
		}
		if id := named(f, "common")[0]; id.Name != common {
			t.Errorf("file %d: common interned as %d, want %d", i, id.Name, common)
		}
	}
}

// TestInvariants checks the binding annotations of a variety of programs.
func TestInvariants(t *testing.T) {
	for _, test := range []struct {
		src  string
		opts *syntax.Options
	}{
		{`x; var x; function x() { return x; }`, nil},
		{`var a = function a() { a = 1; return function () { return a; }; };`, nil},
		{`for (var i = 0; i < n; i++) { var j = i; (function () { return i + j; })(); }`, nil},
		{`for (let i = 0; i < n; i++) { let j = i; (function () { return i + j; })(); }`, strict},
		{`try { throw e; } catch (e) { var e = 2; (function () { e; })(); } finally { e; }`, nil},
		{`try { f(); } catch (e if e.x) { g(e); } catch (e) { h(e); }`, legacy},
		{`let (a = 1, b = a) { let c = a + b; print(c); }`, legacy},
		{`var v = let (a = 1) a + 1;`, legacy},
		{`for each (var k in o) k;`, legacy},
		{`var sq = function (x) x * x;`, legacy},
		{`var [a, {b, c: [d]}] = o; function f([e, f], {g}) { return a + b + d + e + f + g; }`, nil},
		{`switch (x) { case 1: let y = 1; f(y); break; default: g(y); }`, legacy},
		{`outer: for (;;) { inner: for (;;) { if (a) continue outer; break inner; } }`, nil},
		{`function g() { yield 1; var x = yield; }`, legacy},
		{`var o = { get p() { return this._p; }, set p(v) { this._p = v; }, q: 1 };`, nil},
		{`with (o) { function inner() { return z; } var z; }`, nil},
		{`function f() { eval("x"); return x; } var x;`, nil},
		{`[[x, y] for (x in a) for (y in b) if (x != y)]`, legacy},
		{`(function () { return [function () { return i; } for (i of list)]; })()`, legacy},
		{"`${a}${(function () { return b; })()}`", nil},
	} {
		f, err := syntax.Parse("inv.js", test.src, 0, test.opts)
		if err != nil {
			t.Errorf("%s: %v", test.src, err)
			continue
		}
		if err := f.CheckInvariants(); err != nil {
			t.Errorf("%s:\n%v", test.src, err)
		}
		// Every definition lists its uses in source order, and the
		// ident tables hold exactly the identifiers of the tree.
		walked := 0
		f.Walk(func(n syntax.Node) bool {
			if _, ok := n.(*syntax.Ident); ok {
				walked++
			}
			return true
		})
		if walked > len(f.Idents()) {
			t.Errorf("%s: walk found %d identifiers, table has %d", test.src, walked, len(f.Idents()))
		}
	}
}
