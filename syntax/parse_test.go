// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"go.jsfront.dev/internal/chunkedfile"
	"go.jsfront.dev/syntax"
)

var (
	legacy = &syntax.Options{AllowLegacy: true}
	strict = &syntax.Options{StrictMode: true}
)

func TestExprParseTrees(t *testing.T) {
	for _, test := range []struct {
		input string
		opts  *syntax.Options
		want  string
	}{
		{`f(1)`, nil,
			`(CallExpr Fn=f Args=(1))`},
		{"f(1)\n", nil,
			`(CallExpr Fn=f Args=(1))`},
		{`x + 1`, nil,
			`(BinaryExpr X=x Op=+ Y=1)`},
		{`x+y*z`, nil,
			`(BinaryExpr X=x Op=+ Y=(BinaryExpr X=y Op=* Y=z))`},
		{`x%y-z`, nil,
			`(BinaryExpr X=(BinaryExpr X=x Op=% Y=y) Op=- Y=z)`},
		{`a || b && c`, nil,
			`(BinaryExpr X=a Op=|| Y=(BinaryExpr X=b Op=&& Y=c))`},
		{`a << b + c`, nil,
			`(BinaryExpr X=a Op=<< Y=(BinaryExpr X=b Op=+ Y=c))`},
		{`a in b`, nil,
			`(BinaryExpr X=a Op=in Y=b)`},
		{`x instanceof Y`, nil,
			`(BinaryExpr X=x Op=instanceof Y=Y)`},
		{`x.f(42)[i]`, nil,
			`(IndexExpr X=(CallExpr Fn=(DotExpr X=x Name=f) Args=(42)) Y=i)`},
		{`x.f()`, nil,
			`(CallExpr Fn=(DotExpr X=x Name=f))`},
		{`o.if.class`, nil,
			`(DotExpr X=(DotExpr X=o Name=if) Name=class)`},
		{`new Foo`, nil,
			`(NewExpr Fn=Foo)`},
		{`new a.B(1, 2)`, nil,
			`(NewExpr Fn=(DotExpr X=a Name=B) Args=(1 2))`},
		{`new new X()()`, nil,
			`(NewExpr Fn=(NewExpr Fn=X))`},
		{`new F().g()`, nil,
			`(CallExpr Fn=(DotExpr X=(NewExpr Fn=F) Name=g))`},
		{`a ? b : c`, nil,
			`(CondExpr Cond=a True=b False=c)`},
		{`x = y = 1`, nil,
			`(AssignExpr LHS=x Op== RHS=(AssignExpr LHS=y Op== RHS=1))`},
		{`x += 2`, nil,
			`(AssignExpr LHS=x Op=+= RHS=2)`},
		{`a, b`, nil,
			`(SeqExpr List=(a b))`},
		{`-x`, nil,
			`(UnaryExpr Op=- X=x)`},
		{`typeof x`, nil,
			`(UnaryExpr Op=typeof X=x)`},
		{`!!x`, nil,
			`(UnaryExpr Op=! X=(UnaryExpr Op=! X=x))`},
		{`i++`, nil,
			`(UpdateExpr Op=++ X=i)`},
		{`--i`, nil,
			`(UpdateExpr Op=-- Prefix X=i)`},
		{`(x)`, nil,
			`(ParenExpr X=x)`},
		{`[1, , 2]`, nil,
			`(ArrayExpr List=(1 nil 2))`},
		{`[,]`, nil,
			`(ArrayExpr List=(nil))`},
		{`[1,]`, nil,
			`(ArrayExpr List=(1))`},
		{`{a: 1, "b": 2, 3: c}`, nil,
			`(ObjectExpr List=((Property Key=a Value=1) (Property Key="b" Value=2) (Property Key=3 Value=c)))`},
		{`{x, y}`, nil,
			`(ObjectExpr List=((Property Kind=shorthand Key=x Value=x) (Property Kind=shorthand Key=y Value=y)))`},
		{`{get x() { return 1 }, set x(v) {}}`, nil,
			`(ObjectExpr List=((Property Kind=get Key=x Value=(FuncExpr Body=((ReturnStmt Result=1)))) (Property Kind=set Key=x Value=(FuncExpr Params=(v)))))`},
		{`{get: 1, set: 2}`, nil,
			`(ObjectExpr List=((Property Key=get Value=1) (Property Key=set Value=2)))`},
		{`function (a, b) { return a + b }`, nil,
			`(FuncExpr Params=(a b) Body=((ReturnStmt Result=(BinaryExpr X=a Op=+ Y=b))))`},
		{`function f(x, ...rest) {}`, nil,
			`(FuncExpr Name=f Params=(x) Rest=rest)`},
		{`function ([a, b], {c, d: e}) {}`, nil,
			`(FuncExpr Params=((ArrayExpr List=(a b)) (ObjectExpr List=((Property Kind=shorthand Key=c Value=c) (Property Key=d Value=e)))))`},
		{"`a${x}b`", nil,
			`(TemplateExpr Quasis=("a" "b") Exprs=(x))`},
		{"`${a}${b}`", nil,
			`(TemplateExpr Quasis=("" "" "") Exprs=(a b))`},
		{"`plain`", nil,
			`"plain"`},
		{`/ab+c/i`, nil,
			`/ab+c/i`},
		{`"hello"`, nil,
			`"hello"`},
		{`1.5e3`, nil,
			`1500`},
		{`this`, nil,
			`this`},
		{`[true, false, null]`, nil,
			`(ArrayExpr List=(true false null))`},
		{`[a, b] = [b, a]`, nil,
			`(AssignExpr LHS=(ArrayExpr List=(a b)) Op== RHS=(ArrayExpr List=(b a)))`},
		{`({a: x.y} = o)`, nil,
			`(ParenExpr X=(AssignExpr LHS=(ObjectExpr List=((Property Key=a Value=(DotExpr X=x Name=y)))) Op== RHS=o))`},

		// legacy extensions
		{`[x * 2 for (x in xs)]`, legacy,
			`(Comprehension Body=(BinaryExpr X=x Op=* Y=2) Clauses=((ForClause Target=x X=xs)))`},
		{`(x for (x of xs) if (x))`, legacy,
			`(Comprehension Generator Body=x Clauses=((ForClause Of Target=x X=xs) (IfClause Cond=x)))`},
		{`f(k for each (k in o))`, legacy,
			`(CallExpr Fn=f Args=((Comprehension Generator Body=k Clauses=((ForClause Each Target=k X=o)))))`},
		{`[[a, b] for ([a, b] in o) for (c in d)]`, legacy,
			`(Comprehension Body=(ArrayExpr List=(a b)) Clauses=((ForClause Target=(ArrayExpr List=(a b)) X=o) (ForClause Target=c X=d)))`},
		{`let (x = 1) x + 1`, legacy,
			`(LetExpr Vars=((VarSpec Target=x Init=1)) Body=(BinaryExpr X=x Op=+ Y=1))`},
		{`function (x) x * x`, legacy,
			`(FuncExpr Params=(x) ExprBody=(BinaryExpr X=x Op=* Y=x))`},
	} {
		e, _, err := syntax.ParseExpr("foo.js", test.input, test.opts)
		var got string
		if err != nil {
			got = stripPos(err)
		} else {
			got = treeString(e)
		}
		if test.want != got {
			t.Errorf("parse `%s` = %s, want %s", test.input, got, test.want)
		}
	}
}

func TestStmtParseTrees(t *testing.T) {
	for _, test := range []struct {
		input string
		opts  *syntax.Options
		want  string
	}{
		{`var x = 1, y;`, nil,
			`(VarDecl Token=var List=((VarSpec Target=x Init=1) (VarSpec Target=y)))`},
		{`const c = 1`, nil,
			`(VarDecl Token=const List=((VarSpec Target=c Init=1)))`},
		{`var [a, , b] = c`, nil,
			`(VarDecl Token=var List=((VarSpec Target=(ArrayExpr List=(a nil b)) Init=c)))`},
		{`if (x) y(); else z();`, nil,
			`(IfStmt Cond=x Then=(ExprStmt X=(CallExpr Fn=y)) Else=(ExprStmt X=(CallExpr Fn=z)))`},
		{`while (a) { b++ }`, nil,
			`(WhileStmt Cond=a Body=(BlockStmt Stmts=((ExprStmt X=(UpdateExpr Op=++ X=b)))))`},
		{`do x--; while (x)`, nil,
			`(DoWhileStmt Body=(ExprStmt X=(UpdateExpr Op=-- X=x)) Cond=x)`},
		{`for (var i = 0; i < n; i++) f(i)`, nil,
			`(ForStmt Init=(VarDecl Token=var List=((VarSpec Target=i Init=0))) Cond=(BinaryExpr X=i Op=< Y=n) Post=(UpdateExpr Op=++ X=i) Body=(ExprStmt X=(CallExpr Fn=f Args=(i))))`},
		{`for (;;) break`, nil,
			`(ForStmt Body=(BranchStmt Token=break))`},
		{`for (k in o) ;`, nil,
			`(ForInStmt Target=k X=o Body=(EmptyStmt))`},
		{`for (x.y of list) {}`, nil,
			`(ForInStmt Of Target=(DotExpr X=x Name=y) X=list Body=(BlockStmt))`},
		{`for (let v of list) {}`, strict,
			`(ForInStmt Of Decl=let Target=v X=list Body=(BlockStmt))`},
		{`for (var x = 0 in o) ;`, nil,
			`(SeqStmt List=((VarDecl Token=var List=((VarSpec Target=x Init=0))) (ForInStmt Target=x X=o Body=(EmptyStmt))))`},
		{`switch (x) { case 1: a(); break; default: b() }`, nil,
			`(SwitchStmt Tag=x Cases=((CaseClause Value=1 Body=((ExprStmt X=(CallExpr Fn=a)) (BranchStmt Token=break))) (CaseClause Body=((ExprStmt X=(CallExpr Fn=b))))))`},
		{`try { f() } catch (e) { g(e) } finally { h() }`, nil,
			`(TryStmt Body=(BlockStmt Stmts=((ExprStmt X=(CallExpr Fn=f)))) Catches=((CatchClause Param=e Body=(BlockStmt Stmts=((ExprStmt X=(CallExpr Fn=g Args=(e))))))) Finally=(BlockStmt Stmts=((ExprStmt X=(CallExpr Fn=h)))))`},
		{`L: for (;;) continue L`, nil,
			`(LabeledStmt Name=L Body=(ForStmt Body=(BranchStmt Token=continue Name=L)))`},
		{`throw new Error("x")`, nil,
			`(ThrowStmt X=(NewExpr Fn=Error Args=("x")))`},
		{`function f(a) { return a }`, nil,
			`(FuncDecl Name=f Params=(a) Body=((ReturnStmt Result=a)))`},
		{`with (o) x`, nil,
			`(WithStmt Object=o Body=(ExprStmt X=x))`},
		{`debugger;`, nil,
			`(DebuggerStmt)`},
		{`;`, nil,
			`(EmptyStmt)`},
		{`{ let x = 1; }`, strict,
			`(BlockStmt Stmts=((VarDecl Token=let List=((VarSpec Target=x Init=1)))) Scoped)`},

		// legacy extensions
		{`let (x = 1) { f(x) }`, legacy,
			`(LetStmt Vars=((VarSpec Target=x Init=1)) Body=(BlockStmt Stmts=((ExprStmt X=(CallExpr Fn=f Args=(x))))))`},
		{`let (x = 1) x, y;`, legacy,
			`(ExprStmt X=(SeqExpr List=((LetExpr Vars=((VarSpec Target=x Init=1)) Body=x) y)))`},
		{`for each (v in o) ;`, legacy,
			`(ForInStmt Each Target=v X=o Body=(EmptyStmt))`},
		{`try {} catch (e if e instanceof E) {} catch (e) {}`, legacy,
			`(TryStmt Body=(BlockStmt) Catches=((CatchClause Param=e Guard=(BinaryExpr X=e Op=instanceof Y=E) Body=(BlockStmt)) (CatchClause Param=e Body=(BlockStmt))))`},
		{`function sq(x) x * x;`, legacy,
			`(FuncDecl Name=sq Params=(x) ExprBody=(BinaryExpr X=x Op=* Y=x))`},
	} {
		f, err := syntax.Parse("foo.js", test.input, 0, test.opts)
		if err != nil {
			t.Errorf("parse `%s` failed: %v", test.input, stripPos(err))
			continue
		}
		if len(f.Stmts) != 1 {
			t.Errorf("parse `%s`: got %d statements, want 1", test.input, len(f.Stmts))
			continue
		}
		if got := treeString(f.Stmts[0]); test.want != got {
			t.Errorf("parse `%s` = %s, want %s", test.input, got, test.want)
		}
	}
}

// TestFileParseTrees tests sequences of statements, and in particular
// the insertion of semicolons at line breaks.
func TestFileParseTrees(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{"x\n++y",
			`(ExprStmt X=x)
(ExprStmt X=(UpdateExpr Op=++ Prefix X=y))`},
		{"a = b\n(c)",
			`(ExprStmt X=(AssignExpr LHS=a Op== RHS=(CallExpr Fn=b Args=(c))))`},
		{"function f() { return\n1 }",
			`(FuncDecl Name=f Body=((ReturnStmt) (ExprStmt X=1)))`},
		{"L: while (1) { break\nL }",
			`(LabeledStmt Name=L Body=(WhileStmt Cond=1 Body=(BlockStmt Stmts=((BranchStmt Token=break) (ExprStmt X=L)))))`},
		{"var a = 1\nvar b = a / 2 / 1\n/re/g.test(b)",
			`(VarDecl Token=var List=((VarSpec Target=a Init=1)))
(VarDecl Token=var List=((VarSpec Target=b Init=(BinaryExpr X=(BinaryExpr X=(BinaryExpr X=(BinaryExpr X=a Op=/ Y=2) Op=/ Y=1) Op=/ Y=re) Op=/ Y=(CallExpr Fn=(DotExpr X=g Name=test) Args=(b))))))`},
		{"{}\n;",
			`(BlockStmt)
(EmptyStmt)`},
		{"if (a) {} else {}",
			`(IfStmt Cond=a Then=(BlockStmt) Else=(BlockStmt))`},
		{"do {} while (0) x()",
			`(DoWhileStmt Body=(BlockStmt) Cond=0)
(ExprStmt X=(CallExpr Fn=x))`},
	} {
		f, err := syntax.Parse("foo.js", test.input, 0, nil)
		if err != nil {
			t.Errorf("parse `%s` failed: %v", test.input, stripPos(err))
			continue
		}
		var buf bytes.Buffer
		for i, stmt := range f.Stmts {
			if i > 0 {
				buf.WriteByte('\n')
			}
			writeTree(&buf, reflect.ValueOf(stmt))
		}
		if got := buf.String(); test.want != got {
			t.Errorf("parse `%s` = %s, want %s", test.input, got, test.want)
		}
	}
}

func TestStrictDirective(t *testing.T) {
	for _, test := range []struct {
		input  string
		strict bool
	}{
		{`"use strict"; x`, true},
		{`'use strict'; x`, true},
		{`"a"; "use strict"; x`, true},
		{`x; "use strict"`, false},
		{`"use\x20strict"; x`, false},
		{`function f() { "use strict" }`, false},
	} {
		f, err := syntax.Parse("foo.js", test.input, 0, nil)
		if err != nil {
			t.Errorf("parse `%s` failed: %v", test.input, err)
			continue
		}
		if f.Strict != test.strict {
			t.Errorf("parse `%s`: Strict = %t, want %t", test.input, f.Strict, test.strict)
		}
	}

	// A strict function body makes only that function strict.
	f, err := syntax.Parse("foo.js", `function f() { "use strict"; } function g() {}`, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if fn := f.Functions[0]; fn.Flags&syntax.FuncStrict == 0 {
		t.Errorf("f is not strict")
	}
	if fn := f.Functions[1]; fn.Flags&syntax.FuncStrict != 0 {
		t.Errorf("g is strict")
	}
}

func stripPos(err error) string {
	s := err.Error()
	if i := strings.Index(s, ": "); i >= 0 {
		s = s[i+len(": "):] // strip file:line:col
	}
	return s
}

// treeString prints a syntax node as a parenthesized tree.
// Idents are printed as foo and Literals as "foo", 42 or /re/flags.
// Structs are printed as (type name=value ...).
// Only non-empty fields are shown; positions, block ids and
// function records are omitted.
func treeString(n syntax.Node) string {
	var buf bytes.Buffer
	writeTree(&buf, reflect.ValueOf(n))
	return buf.String()
}

var propKinds = map[syntax.PropKind]string{
	syntax.PropGet:       "get",
	syntax.PropSet:       "set",
	syntax.PropShorthand: "shorthand",
}

func writeTree(out *bytes.Buffer, x reflect.Value) {
	switch x.Kind() {
	case reflect.String, reflect.Int, reflect.Bool:
		fmt.Fprintf(out, "%v", x.Interface())
	case reflect.Ptr, reflect.Interface:
		if elem := x.Elem(); elem.Kind() == 0 {
			out.WriteString("nil")
		} else {
			writeTree(out, elem)
		}
	case reflect.Struct:
		switch v := x.Interface().(type) {
		case syntax.Literal:
			writeLiteral(out, &v)
			return
		case syntax.Ident:
			out.WriteString(v.Raw)
			return
		}
		fmt.Fprintf(out, "(%s", strings.TrimPrefix(x.Type().String(), "syntax."))
		writeFields(out, x)
		out.WriteByte(')')
	default:
		fmt.Fprintf(out, "%T", x.Interface())
	}
}

func writeLiteral(out *bytes.Buffer, lit *syntax.Literal) {
	switch lit.Token {
	case syntax.NUMBER:
		out.WriteString(strconv.FormatFloat(lit.Value.(float64), 'g', -1, 64))
	case syntax.STRING, syntax.TEMPLATE:
		fmt.Fprintf(out, "%q", lit.Value)
	case syntax.REGEXP:
		fmt.Fprintf(out, "/%s/%s", lit.Value, lit.Flags)
	case syntax.NAME:
		fmt.Fprintf(out, "%s", lit.Value)
	default:
		out.WriteString(lit.Token.String())
	}
}

var (
	positionType = reflect.TypeOf(syntax.Position{})
	recordType   = reflect.TypeOf((*syntax.FunctionRecord)(nil))
	tokenType    = reflect.TypeOf(syntax.Token(0))
	propKindType = reflect.TypeOf(syntax.PropKind(0))
)

func writeFields(out *bytes.Buffer, x reflect.Value) {
	for i, n := 0, x.NumField(); i < n; i++ {
		f := x.Field(i)
		field := x.Type().Field(i)
		if field.Anonymous {
			writeFields(out, f) // embedded Function
			continue
		}
		name := field.Name
		switch f.Type() {
		case positionType, recordType:
			continue
		case tokenType:
			if tok := f.Interface().(syntax.Token); tok != syntax.ILLEGAL {
				fmt.Fprintf(out, " %s=%s", name, tok)
			}
			continue
		case propKindType:
			if k := f.Interface().(syntax.PropKind); k != syntax.PropInit {
				fmt.Fprintf(out, " %s=%s", name, propKinds[k])
			}
			continue
		}

		switch f.Kind() {
		case reflect.Slice:
			if n := f.Len(); n > 0 {
				fmt.Fprintf(out, " %s=(", name)
				for i := 0; i < n; i++ {
					if i > 0 {
						out.WriteByte(' ')
					}
					if elem := f.Index(i); elem.Kind() == reflect.String {
						fmt.Fprintf(out, "%q", elem.String())
					} else {
						writeTree(out, elem)
					}
				}
				out.WriteByte(')')
			}
			continue
		case reflect.Ptr, reflect.Interface:
			if f.IsNil() {
				continue
			}
		case reflect.String:
			// Raw text of a label or property name.
			if s := f.String(); s != "" {
				fmt.Fprintf(out, " Name=%s", s)
			}
			continue
		case reflect.Int, reflect.Uint32:
			// block ids and interned names
			continue
		case reflect.Bool:
			if f.Bool() {
				fmt.Fprintf(out, " %s", name)
			}
			continue
		}
		fmt.Fprintf(out, " %s=", name)
		writeTree(out, f)
	}
}

func TestParseErrors(t *testing.T) {
	filename := filepath.Join("testdata", "errors.js")
	for _, chunk := range chunkedfile.Read(filename, t) {
		opts := &syntax.Options{
			StrictMode:     chunk.Option("strict"),
			AllowLegacy:    chunk.Option("legacy"),
			StrictWarnings: chunk.Option("warnings"),
		}
		f, err := syntax.Parse(filename, chunk.Source, 0, opts)
		var serr syntax.Error
		switch {
		case err == nil:
			for _, d := range f.Diagnostics {
				chunk.GotError(int(d.Pos.Line), d.Msg)
			}
		case errors.As(err, &serr):
			chunk.GotError(int(serr.Pos.Line), serr.Msg)
		default:
			t.Error(err)
		}
		chunk.Done()
	}
}

func TestLegacyErrors(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{`function f() { yield 1; return 2; }`,
			`foo.js:1:25: generator function f returns a value`},
		{`function g() { (yield 1 for (x in y)) }`,
			`foo.js:1:16: yield not allowed in generator expression`},
		{`function g() { return (arguments for (x in y)); }`,
			`foo.js:1:24: arguments not allowed in generator expression`},
		{`yield 1`,
			`foo.js:1:1: yield not in function`},
		{`[yield for (x in y)]`,
			`foo.js:1:2: yield not in function`},
		{`for each (x of y) ;`,
			`foo.js:1:1: invalid for each loop`},
		{`[x for each (x of y)]`,
			`foo.js:1:4: invalid for each loop`},
		{`try {} catch (e) {} catch (f) {}`,
			`foo.js:1:21: catch after unconditional catch`},
		{`let (x = 1, x = 2) {}`,
			`foo.js:1:13: redeclaration of let x`},
		{`[x for (x in y) for (x in z)]`,
			`foo.js:1:22: redeclaration of let x`},
	} {
		_, err := syntax.Parse("foo.js", test.input, 0, legacy)
		if err == nil {
			t.Errorf("parse `%s` succeeded, want error %s", test.input, test.want)
			continue
		}
		if got := err.Error(); got != test.want {
			t.Errorf("parse `%s` = %s, want %s", test.input, got, test.want)
		}
	}
}

func TestStrictWarnings(t *testing.T) {
	opts := &syntax.Options{StrictWarnings: true}
	for _, test := range []struct {
		input, want string
		fatal       bool // in strict code
	}{
		{`with (o) {}`, `strict mode code may not contain with statements`, true},
		{`x = {a: 1, a: 2}`, `property name a appears more than once in object literal`, true},
		{`delete x`, `delete of an unqualified name is not allowed in strict mode`, true},
		{`function f(a) { var a; }`, `variable a redeclares argument`, false},
		{`if (x) { function f() {} }`, `functions may be declared only at top level or immediately within another function in strict mode`, true},
		{`var x = 017`, `octal literals are not allowed in strict mode`, true},
		{`eval = 1`, `assignment to eval is not allowed in strict mode`, true},
	} {
		f, err := syntax.Parse("foo.js", test.input, 0, opts)
		if err != nil {
			t.Errorf("parse `%s` failed: %v", test.input, err)
			continue
		}
		var msgs []string
		for _, d := range f.Diagnostics {
			if d.Severity != syntax.Warning {
				t.Errorf("parse `%s`: diagnostic %s is not a warning", test.input, d)
			}
			msgs = append(msgs, d.Msg)
		}
		if got := strings.Join(msgs, "; "); got != test.want {
			t.Errorf("parse `%s`: warnings = [%s], want [%s]", test.input, got, test.want)
		}

		// Without the option these conditions pass silently.
		f, err = syntax.Parse("foo.js", test.input, 0, nil)
		if err != nil {
			t.Errorf("parse `%s` failed: %v", test.input, err)
		} else if len(f.Diagnostics) > 0 {
			t.Errorf("parse `%s`: unexpected warnings %v", test.input, f.Diagnostics)
		}

		// In strict code most of them are fatal.
		src := `"use strict"; ` + test.input
		_, err = syntax.Parse("foo.js", src, 0, nil)
		switch {
		case !test.fatal:
			if err != nil {
				t.Errorf("parse `%s` failed: %v", src, err)
			}
		case err == nil:
			t.Errorf("parse `%s` succeeded, want error", src)
		case !strings.Contains(err.Error(), test.want):
			t.Errorf("parse `%s` = %v, want error %s", src, err, test.want)
		}
	}

	// StrictWarnings upgrades redeclaration warnings to errors.
	const src = `function f() {} var f;`
	f, err := syntax.Parse("foo.js", src, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Diagnostics) != 1 || f.Diagnostics[0].Code != syntax.ErrRedeclared {
		t.Errorf("parse `%s`: got diagnostics %v, want one redeclaration warning", src, f.Diagnostics)
	}
	if _, err := syntax.Parse("foo.js", src, 0, opts); err == nil {
		t.Errorf("parse `%s` with strict warnings succeeded, want error", src)
	}
}

func TestErrorKinds(t *testing.T) {
	for _, test := range []struct {
		input string
		code  syntax.Code
		kind  syntax.ErrorKind
	}{
		{`"abc`, syntax.ErrUnterminatedString, syntax.LexError},
		{`x = ;`, syntax.ErrUnexpected, syntax.SyntaxError},
		{`const c = 1; c++`, syntax.ErrAssignConst, syntax.BindingError},
		{`"use strict"; with (o) {}`, syntax.ErrStrictWith, syntax.StrictModeError},
	} {
		_, err := syntax.Parse("foo.js", test.input, 0, nil)
		var serr syntax.Error
		if !errors.As(err, &serr) {
			t.Errorf("parse `%s`: got %v, want a syntax.Error", test.input, err)
			continue
		}
		if serr.Code != test.code || serr.Kind != test.kind || serr.Code.Kind() != test.kind {
			t.Errorf("parse `%s`: got code %d kind %s, want %d %s", test.input, serr.Code, serr.Kind, test.code, test.kind)
		}
		if d := serr.Diagnostic(); d.Severity != syntax.Fatal || d.Msg != serr.Msg {
			t.Errorf("parse `%s`: bad diagnostic %v", test.input, d)
		}
	}
}

func TestSpans(t *testing.T) {
	const src = "var x = 1;\nfoo(x.y, [a, b])\nif (x) { y = `t${z}` } else z--\n"
	f, err := syntax.Parse("foo.js", src, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, stmt := range f.Stmts {
		start, end := stmt.Span()
		got = append(got, fmt.Sprintf("%s %s %q", start, end, src[start.Offset:end.Offset]))
	}
	want := []string{
		`foo.js:1:1 foo.js:1:10 "var x = 1"`,
		`foo.js:2:1 foo.js:2:17 "foo(x.y, [a, b])"`,
		"foo.js:3:1 foo.js:3:32 \"if (x) { y = `t${z}` } else z--\"",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("spans:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}

	// Line numbers may start elsewhere.
	f, err = syntax.Parse("foo.js", "f(x)", 7, nil)
	if err != nil {
		t.Fatal(err)
	}
	if span := fmt.Sprint(f.Stmts[0].Span()); span != "foo.js:7:1 foo.js:7:5" {
		t.Errorf("wrong span: got %q", span)
	}
}

func TestParseFile(t *testing.T) {
	filename := filepath.Join("testdata", "scan.js")
	f, err := syntax.Parse(filename, nil, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Stmts) == 0 {
		t.Fatalf("%s: no statements", filename)
	}
	if err := f.CheckInvariants(); err != nil {
		t.Errorf("%s: %v", filename, err)
	}

	if _, err := syntax.Parse("nonesuch.js", nil, 0, nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("parsing missing file: got %v, want not-exist error", err)
	}
	if _, err := syntax.Parse("foo.js", 42, 0, nil); err == nil {
		t.Errorf("parsing an int succeeded")
	}
}

func BenchmarkParse(b *testing.B) {
	filename := filepath.Join("testdata", "scan.js")
	b.StopTimer()
	data, err := os.ReadFile(filename)
	if err != nil {
		b.Fatal(err)
	}
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		f, err := syntax.Parse(filename, data, 0, nil)
		if err != nil {
			b.Fatal(err)
		}
		f.Release()
	}
}
