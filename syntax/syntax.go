// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax provides a JavaScript parser and abstract syntax tree.
//
// The parser resolves names as it goes: every Ident in a successfully
// parsed File is either the binding site of a Definition or a use linked
// to one, and every function is described by a FunctionRecord.
package syntax // import "go.jsfront.dev/syntax"

import "go.jsfront.dev/atom"

// A Node is a node in a JavaScript syntax tree.
type Node interface {
	// Span returns the start and end position of the node.
	Span() (start, end Position)
}

// Start returns the start position of the node.
func Start(n Node) Position {
	start, _ := n.Span()
	return start
}

// End returns the end position of the node.
func End(n Node) Position {
	_, end := n.Span()
	return end
}

// A File represents a parsed JavaScript program.
type File struct {
	Path   string
	Stmts  []Stmt
	Strict bool // the program is strict mode code

	// set during parsing:
	Flags       FuncFlags         // facts about the top level, as for a function
	Functions   []*FunctionRecord // records of functions declared at top level
	Vars        []DefID           // top-level var, const, let and function bindings
	FreeVars    []DefID           // names left unresolved: global references
	Diagnostics []Diagnostic      // warnings

	pool  *NodePool
	atoms *atom.Table
}

func (x *File) Span() (start, end Position) {
	if len(x.Stmts) == 0 {
		return
	}
	start, _ = x.Stmts[0].Span()
	_, end = x.Stmts[len(x.Stmts)-1].Span()
	return start, end
}

// Def returns the definition that id binds or refers to, or nil.
func (x *File) Def(id *Ident) *Definition {
	if id.Def == 0 {
		return nil
	}
	return x.pool.def(id.Def)
}

// Definition returns the definition with the given id.
func (x *File) Definition(id DefID) *Definition { return x.pool.def(id) }

// Ident returns the identifier with the given reference.
func (x *File) Ident(ref NameRef) *Ident { return x.pool.ident(ref) }

// Name returns the text of an interned name.
func (x *File) Name(a atom.Atom) string { return x.atoms.String(a) }

// Atoms returns the table that interns the file's names.
func (x *File) Atoms() *atom.Table { return x.atoms }

// Idents returns every identifier of the file in source order,
// indexed by NameRef-1.
func (x *File) Idents() []*Ident { return x.pool.names[1:] }

// Definitions returns every definition of the file, indexed by DefID-1.
// Dead definitions are included.
func (x *File) Definitions() []*Definition { return x.pool.defs[1:] }

// Walk calls Walk on each statement of the file.
func (x *File) Walk(f func(Node) bool) { Walk(x, f) }

// Release frees the file's nodes. The file must not be used afterwards.
func (x *File) Release() {
	x.pool.ReleaseAll()
	x.Stmts = nil
	x.Functions = nil
}

// A Stmt is a JavaScript statement.
type Stmt interface {
	Node
	stmt()
}

func (*BlockStmt) stmt()    {}
func (*BranchStmt) stmt()   {}
func (*DebuggerStmt) stmt() {}
func (*DoWhileStmt) stmt()  {}
func (*EmptyStmt) stmt()    {}
func (*ExprStmt) stmt()     {}
func (*ForInStmt) stmt()    {}
func (*ForStmt) stmt()      {}
func (*FuncDecl) stmt()     {}
func (*IfStmt) stmt()       {}
func (*LabeledStmt) stmt()  {}
func (*LetStmt) stmt()      {}
func (*ReturnStmt) stmt()   {}
func (*SeqStmt) stmt()      {}
func (*SwitchStmt) stmt()   {}
func (*ThrowStmt) stmt()    {}
func (*TryStmt) stmt()      {}
func (*VarDecl) stmt()      {}
func (*WhileStmt) stmt()    {}
func (*WithStmt) stmt()     {}

// An ExprStmt is an expression evaluated for side effects.
type ExprStmt struct {
	X Expr
}

func (x *ExprStmt) Span() (start, end Position) {
	return x.X.Span()
}

// A VarDecl declares variables: var x = 1, y; also let and const.
type VarDecl struct {
	Token    Token // = VAR | LET | CONST
	TokenPos Position
	List     []*VarSpec
}

func (x *VarDecl) Span() (start, end Position) {
	return x.TokenPos, End(x.List[len(x.List)-1])
}

// A VarSpec is one declarator: Target = Init.
type VarSpec struct {
	Target Expr // *Ident, *ArrayExpr or *ObjectExpr
	Eq     Position
	Init   Expr // may be nil
}

func (x *VarSpec) Span() (start, end Position) {
	if x.Init != nil {
		return Start(x.Target), End(x.Init)
	}
	return x.Target.Span()
}

// A FuncDecl is a function statement.
type FuncDecl struct {
	Function
}

func (x *FuncDecl) Span() (start, end Position) { return x.Function.Span() }

// A ReturnStmt returns from a function.
type ReturnStmt struct {
	Return Position
	Result Expr // may be nil
}

func (x *ReturnStmt) Span() (start, end Position) {
	if x.Result == nil {
		return x.Return, x.Return.add("return")
	}
	return x.Return, End(x.Result)
}

// An IfStmt is a conditional: if (Cond) Then else Else.
type IfStmt struct {
	If      Position
	Cond    Expr
	Then    Stmt
	ElsePos Position
	Else    Stmt // may be nil
}

func (x *IfStmt) Span() (start, end Position) {
	if x.Else != nil {
		return x.If, End(x.Else)
	}
	return x.If, End(x.Then)
}

// A BlockStmt is a braced statement list.
type BlockStmt struct {
	Lbrace  Position
	Stmts   []Stmt
	Rbrace  Position
	BlockID int
	Scoped  bool // declares let or const bindings
}

func (x *BlockStmt) Span() (start, end Position) {
	return x.Lbrace, x.Rbrace.add("}")
}

// A WhileStmt is a loop: while (Cond) Body.
type WhileStmt struct {
	While Position
	Cond  Expr
	Body  Stmt
}

func (x *WhileStmt) Span() (start, end Position) {
	return x.While, End(x.Body)
}

// A DoWhileStmt is a loop: do Body while (Cond).
type DoWhileStmt struct {
	Do     Position
	Body   Stmt
	Cond   Expr
	Rparen Position
}

func (x *DoWhileStmt) Span() (start, end Position) {
	return x.Do, x.Rparen.add(")")
}

// A ForStmt is a C-style loop: for (Init; Cond; Post) Body.
type ForStmt struct {
	For     Position
	Init    Node // *VarDecl or Expr; may be nil
	Cond    Expr // may be nil
	Post    Expr // may be nil
	Body    Stmt
	BlockID int // scope of a let or const Init; zero otherwise
}

func (x *ForStmt) Span() (start, end Position) {
	return x.For, End(x.Body)
}

// A ForInStmt is an enumeration loop: for [each] (Target in X) Body,
// or for (Target of X) Body.
type ForInStmt struct {
	For     Position
	Each    bool
	Of      bool
	Decl    Token // VAR, LET or CONST if Target is declared here; else ILLEGAL
	Target  Expr  // *Ident, member expression or destructuring pattern
	X       Expr
	Body    Stmt
	BlockID int // scope of a let or const Target; zero otherwise
}

func (x *ForInStmt) Span() (start, end Position) {
	return x.For, End(x.Body)
}

// A SwitchStmt is a multi-way branch.
type SwitchStmt struct {
	Switch  Position
	Tag     Expr
	Cases   []*CaseClause
	Rbrace  Position
	BlockID int
}

func (x *SwitchStmt) Span() (start, end Position) {
	return x.Switch, x.Rbrace.add("}")
}

// A CaseClause is one arm of a switch: case Value: Body, or default: Body.
type CaseClause struct {
	Case  Position
	Value Expr // nil for default
	Colon Position
	Body  []Stmt
}

func (x *CaseClause) Span() (start, end Position) {
	if len(x.Body) > 0 {
		return x.Case, End(x.Body[len(x.Body)-1])
	}
	return x.Case, x.Colon.add(":")
}

// A TryStmt is an exception handler.
type TryStmt struct {
	Try        Position
	Body       *BlockStmt
	Catches    []*CatchClause // guarded clauses first; at most one unguarded
	FinallyPos Position
	Finally    *BlockStmt // may be nil
}

func (x *TryStmt) Span() (start, end Position) {
	if x.Finally != nil {
		return x.Try, End(x.Finally)
	}
	return x.Try, End(x.Catches[len(x.Catches)-1])
}

// A CatchClause is catch (Param if Guard) Body.
type CatchClause struct {
	Catch   Position
	Param   Expr // *Ident or destructuring pattern
	Guard   Expr // may be nil
	Body    *BlockStmt
	BlockID int
}

func (x *CatchClause) Span() (start, end Position) {
	return x.Catch, End(x.Body)
}

// A WithStmt is with (Object) Body.
type WithStmt struct {
	With   Position
	Object Expr
	Body   Stmt
}

func (x *WithStmt) Span() (start, end Position) {
	return x.With, End(x.Body)
}

// A LabeledStmt is Label: Body.
type LabeledStmt struct {
	LabelPos Position
	Label    atom.Atom
	Raw      string
	Body     Stmt
}

func (x *LabeledStmt) Span() (start, end Position) {
	return x.LabelPos, End(x.Body)
}

// A BranchStmt changes the flow of control: break or continue.
type BranchStmt struct {
	Token    Token // = BREAK | CONTINUE
	TokenPos Position
	Label    atom.Atom // zero if absent
	Raw      string
	LabelPos Position
}

func (x *BranchStmt) Span() (start, end Position) {
	if x.Label != 0 {
		return x.TokenPos, x.LabelPos.add(x.Raw)
	}
	return x.TokenPos, x.TokenPos.add(x.Token.String())
}

// A ThrowStmt raises an exception.
type ThrowStmt struct {
	Throw Position
	X     Expr
}

func (x *ThrowStmt) Span() (start, end Position) {
	return x.Throw, End(x.X)
}

// A DebuggerStmt is the debugger statement.
type DebuggerStmt struct {
	Debugger Position
}

func (x *DebuggerStmt) Span() (start, end Position) {
	return x.Debugger, x.Debugger.add("debugger")
}

// An EmptyStmt is a lone semicolon.
type EmptyStmt struct {
	Semi Position
}

func (x *EmptyStmt) Span() (start, end Position) {
	return x.Semi, x.Semi.add(";")
}

// A LetStmt is a let block: let (Vars) Body.
type LetStmt struct {
	Let     Position
	Vars    []*VarSpec
	Body    *BlockStmt
	BlockID int
}

func (x *LetStmt) Span() (start, end Position) {
	return x.Let, End(x.Body)
}

// A SeqStmt is a statement sequence produced by desugaring, such as
// for (var x = i in o) becoming var x = i; for (x in o).
type SeqStmt struct {
	List []Stmt
}

// The statements of a SeqStmt may nest textually, so its span is
// the union of theirs.
func (x *SeqStmt) Span() (start, end Position) {
	start, end = x.List[0].Span()
	for _, stmt := range x.List[1:] {
		s, e := stmt.Span()
		if s.isBefore(start) {
			start = s
		}
		if end.isBefore(e) {
			end = e
		}
	}
	return start, end
}

// An Expr is a JavaScript expression.
type Expr interface {
	Node
	expr()
}

func (*ArrayExpr) expr()     {}
func (*AssignExpr) expr()    {}
func (*BinaryExpr) expr()    {}
func (*CallExpr) expr()      {}
func (*Comprehension) expr() {}
func (*CondExpr) expr()      {}
func (*DotExpr) expr()       {}
func (*FuncExpr) expr()      {}
func (*Ident) expr()         {}
func (*IndexExpr) expr()     {}
func (*LetExpr) expr()       {}
func (*Literal) expr()       {}
func (*NewExpr) expr()       {}
func (*ObjectExpr) expr()    {}
func (*ParenExpr) expr()     {}
func (*SeqExpr) expr()       {}
func (*TemplateExpr) expr()  {}
func (*UnaryExpr) expr()     {}
func (*UpdateExpr) expr()    {}
func (*YieldExpr) expr()     {}

// An Ident represents an identifier.
type Ident struct {
	NamePos Position
	Name    atom.Atom
	Raw     string // source text, which may contain escapes

	// set during parsing:
	Ref     NameRef    // index in the file's name table
	Flags   IdentFlags // binding site or use, and how it is used
	Def     DefID      // the definition this identifier binds or refers to
	BlockID int        // innermost block scope at the point of occurrence
	Level   int        // static nesting level of the enclosing function
}

func (x *Ident) Span() (start, end Position) {
	return x.NamePos, x.NamePos.add(x.Raw)
}

// A Literal represents a literal value or a keyword operand.
type Literal struct {
	Token    Token // = NUMBER | STRING | REGEXP | TEMPLATE | TRUE | FALSE | NULL | THIS | NAME (property keys)
	TokenPos Position
	EndPos   Position
	Raw      string      // uninterpreted text
	Value    interface{} // = float64 | string | bool | nil
	Flags    string      // REGEXP flags
}

func (x *Literal) Span() (start, end Position) {
	return x.TokenPos, x.EndPos
}

// A TemplateExpr is a template literal with substitutions.
// len(Quasis) == len(Exprs)+1.
type TemplateExpr struct {
	Start  Position
	Quasis []string // cooked text pieces
	Exprs  []Expr
	EndPos Position
}

func (x *TemplateExpr) Span() (start, end Position) {
	return x.Start, x.EndPos
}

// An ArrayExpr is an array literal or array destructuring pattern.
// Nil elements are holes.
type ArrayExpr struct {
	Lbrack Position
	List   []Expr
	Rbrack Position
}

func (x *ArrayExpr) Span() (start, end Position) {
	return x.Lbrack, x.Rbrack.add("]")
}

// An ObjectExpr is an object literal or object destructuring pattern.
type ObjectExpr struct {
	Lbrace Position
	List   []*Property
	Rbrace Position
}

func (x *ObjectExpr) Span() (start, end Position) {
	return x.Lbrace, x.Rbrace.add("}")
}

// A PropKind distinguishes the forms of object literal property.
type PropKind uint8

const (
	PropInit      PropKind = iota // key: value
	PropGet                       // get key() {...}
	PropSet                       // set key(v) {...}
	PropShorthand                 // {x}, meaning {x: x}
)

// A Property is one entry of an object literal.
type Property struct {
	Kind  PropKind
	Key   *Literal // NAME, STRING or NUMBER
	Colon Position
	Value Expr // a *FuncExpr for accessors; an *Ident for shorthand
}

func (x *Property) Span() (start, end Position) {
	return Start(x.Key), End(x.Value)
}

// A FuncExpr is a function expression, getter or setter.
type FuncExpr struct {
	Function
}

func (x *FuncExpr) Span() (start, end Position) { return x.Function.Span() }

// A Function represents the common parts of FuncDecl and FuncExpr.
type Function struct {
	StartPos Position // position of FUNCTION, or of the accessor key
	Name     *Ident   // may be nil
	Params   []Expr   // *Ident or destructuring pattern
	Rest     *Ident   // ...rest parameter; may be nil
	Body     []Stmt
	ExprBody Expr     // body of an expression closure; Body is then nil
	EndPos   Position // end of the closing brace or expression body

	Record *FunctionRecord
}

func (x *Function) Span() (start, end Position) {
	return x.StartPos, x.EndPos
}

// A UnaryExpr represents a prefix operator: Op X.
type UnaryExpr struct {
	OpPos Position
	Op    Token // = NOT | BITNOT | PLUS | MINUS | TYPEOF | VOID | DELETE
	X     Expr
}

func (x *UnaryExpr) Span() (start, end Position) {
	return x.OpPos, End(x.X)
}

// An UpdateExpr represents ++X, --X, X++ or X--.
type UpdateExpr struct {
	OpPos  Position
	Op     Token // = INC | DEC
	Prefix bool
	X      Expr
}

func (x *UpdateExpr) Span() (start, end Position) {
	if x.Prefix {
		return x.OpPos, End(x.X)
	}
	return Start(x.X), x.OpPos.add(x.Op.String())
}

// A BinaryExpr represents a binary expression: X Op Y.
type BinaryExpr struct {
	X     Expr
	OpPos Position
	Op    Token
	Y     Expr
}

func (x *BinaryExpr) Span() (start, end Position) {
	return Start(x.X), End(x.Y)
}

// An AssignExpr represents an assignment: LHS Op RHS.
type AssignExpr struct {
	LHS   Expr
	OpPos Position
	Op    Token // = ASSIGN | ADD_ASSIGN | ...
	RHS   Expr
}

func (x *AssignExpr) Span() (start, end Position) {
	return Start(x.LHS), End(x.RHS)
}

// CondExpr represents the conditional: Cond ? True : False.
type CondExpr struct {
	Cond  Expr
	Hook  Position
	True  Expr
	Colon Position
	False Expr
}

func (x *CondExpr) Span() (start, end Position) {
	return Start(x.Cond), End(x.False)
}

// A SeqExpr is a comma-separated expression list.
type SeqExpr struct {
	List []Expr
}

func (x *SeqExpr) Span() (start, end Position) {
	return Start(x.List[0]), End(x.List[len(x.List)-1])
}

// A CallExpr represents a function call expression: Fn(Args).
type CallExpr struct {
	Fn     Expr
	Lparen Position
	Args   []Expr
	Rparen Position
}

func (x *CallExpr) Span() (start, end Position) {
	return Start(x.Fn), x.Rparen.add(")")
}

// A NewExpr represents new Fn(Args); the parentheses are optional.
type NewExpr struct {
	New    Position
	Fn     Expr
	Lparen Position // invalid if there is no argument list
	Args   []Expr
	Rparen Position
}

func (x *NewExpr) Span() (start, end Position) {
	if x.Lparen.IsValid() {
		return x.New, x.Rparen.add(")")
	}
	return x.New, End(x.Fn)
}

// A DotExpr represents a property selector: X.Name.
type DotExpr struct {
	X       Expr
	Dot     Position
	NamePos Position
	Name    atom.Atom
	Raw     string
}

func (x *DotExpr) Span() (start, end Position) {
	return Start(x.X), x.NamePos.add(x.Raw)
}

// An IndexExpr represents an index expression: X[Y].
type IndexExpr struct {
	X      Expr
	Lbrack Position
	Y      Expr
	Rbrack Position
}

func (x *IndexExpr) Span() (start, end Position) {
	return Start(x.X), x.Rbrack.add("]")
}

// A ParenExpr represents a parenthesized expression: (X).
type ParenExpr struct {
	Lparen Position
	X      Expr
	Rparen Position
}

func (x *ParenExpr) Span() (start, end Position) {
	return x.Lparen, x.Rparen.add(")")
}

// A Comprehension represents an array comprehension [Body for ... if ...]
// or a generator expression (Body for ... if ...). Either is parsed as a
// synthesized function, described by Func, that binds the loop variables.
type Comprehension struct {
	Generator bool
	Lbrack    Position // '[' or '('
	Body      Expr
	Clauses   []Node // = *ForClause | *IfClause
	Rbrack    Position
	BlockID   int // scope of the loop variables
	Func      *FunctionRecord
}

func (x *Comprehension) Span() (start, end Position) {
	if x.Generator {
		return x.Lbrack, x.Rbrack.add(")")
	}
	return x.Lbrack, x.Rbrack.add("]")
}

// A ForClause represents a for clause in a comprehension:
// for [each] (Target in X), or for (Target of X).
type ForClause struct {
	For    Position
	Each   bool
	Of     bool
	Target Expr // *Ident or destructuring pattern
	X      Expr
	Rparen Position
}

func (x *ForClause) Span() (start, end Position) {
	return x.For, x.Rparen.add(")")
}

// An IfClause represents an if clause in a comprehension: if (Cond).
type IfClause struct {
	If     Position
	Cond   Expr
	Rparen Position
}

func (x *IfClause) Span() (start, end Position) {
	return x.If, x.Rparen.add(")")
}

// A LetExpr is a let expression: let (Vars) Body.
type LetExpr struct {
	Let     Position
	Vars    []*VarSpec
	Body    Expr
	BlockID int
}

func (x *LetExpr) Span() (start, end Position) {
	return x.Let, End(x.Body)
}

// A YieldExpr is yield X.
type YieldExpr struct {
	Yield Position
	X     Expr // may be nil
}

func (x *YieldExpr) Span() (start, end Position) {
	if x.X == nil {
		return x.Yield, x.Yield.add("yield")
	}
	return x.Yield, End(x.X)
}
