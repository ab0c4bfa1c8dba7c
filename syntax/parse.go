// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// This file defines a recursive-descent parser for JavaScript.
// Statements are parsed here; expressions in parse_expr.go.
//
// Each function comment gives the production it parses.
// Names are resolved as they are parsed; see scope.go.

import (
	"log/slog"

	"go.jsfront.dev/atom"
)

// Parse parses the input data and returns the corresponding parse tree.
//
// If src != nil, Parse parses the source from src and the filename
// is only used when recording position information.
// The type of the argument for the src parameter must be string,
// []byte, or io.Reader.
// If src == nil, Parse parses the file specified by filename.
//
// Line numbers start at startLine, or 1 if startLine is not positive.
// A nil opts is equivalent to a zero Options.
//
// The first fatal condition aborts the parse; the error is a syntax.Error
// and no tree is returned. Warnings are recorded in File.Diagnostics.
func Parse(filename string, src interface{}, startLine int, opts *Options) (f *File, err error) {
	p, err := newParser(filename, src, startLine, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			f = nil
			p.pool.ReleaseAll()
		}
	}()
	defer p.rep.recover(&err)

	f = p.parseFile()
	p.log.Debug("parsed",
		slog.String("file", filename),
		slog.Int("stmts", len(f.Stmts)),
		slog.Int("functions", len(f.Functions)),
		slog.Int("nodes", p.pool.Len()),
		slog.Int("warnings", len(f.Diagnostics)))
	return p.fold(f)
}

// ParseExpr parses a JavaScript expression.
// The result includes the File that owns the expression's bindings.
func ParseExpr(filename string, src interface{}, opts *Options) (expr Expr, f *File, err error) {
	p, err := newParser(filename, src, 1, opts)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err != nil {
			expr, f = nil, nil
			p.pool.ReleaseAll()
		}
	}()
	defer p.rep.recover(&err)

	expr = p.expr()
	p.want(EOF, 0)
	stmt := node[ExprStmt](p)
	stmt.X = expr
	p.file.Stmts = []Stmt{stmt}
	p.finishProgram()
	p.file.Diagnostics = p.rep.diags
	return expr, p.file, nil
}

func (p *parser) fold(f *File) (*File, error) {
	if !p.opts.FoldConstants || p.opts.Folder == nil {
		return f, nil
	}
	return p.opts.Folder.Fold(f)
}

type parser struct {
	in    *scanner
	opts  *Options
	pool  *NodePool
	atoms *atom.Table
	rep   *reporter
	log   *slog.Logger
	file  *File

	top *scopeContext // the program
	sc  *scopeContext // innermost open function, or top

	depth    int  // recursion depth
	maxDepth int  // limit on depth
	noIn     bool // in is not a binary operator: first clause of a for head
	blockGen int  // last block id generated

	atomArguments, atomEval, atomEach, atomOf, atomGet, atomSet atom.Atom
}

func newParser(filename string, src interface{}, startLine int, opts *Options) (*parser, error) {
	if opts == nil {
		opts = new(Options)
	}
	atoms := opts.Atoms
	if atoms == nil {
		atoms = new(atom.Table)
	}
	rep := &reporter{logger: opts.Logger}
	in, err := newScanner(filename, src, startLine, rep, atoms)
	if err != nil {
		return nil, err
	}
	in.strict = opts.StrictMode
	in.legacy = opts.AllowLegacy
	in.strictWarnings = opts.StrictWarnings

	pool := NewNodePool(opts.MaxNodes)
	p := &parser{
		in:       in,
		opts:     opts,
		pool:     pool,
		atoms:    atoms,
		rep:      rep,
		log:      opts.logger(),
		file:     &File{Path: filename, pool: pool, atoms: atoms},
		maxDepth: opts.maxDepth(),

		atomArguments: atoms.Intern("arguments"),
		atomEval:      atoms.Intern("eval"),
		atomEach:      atoms.Intern("each"),
		atomOf:        atoms.Intern("of"),
		atomGet:       atoms.Intern("get"),
		atomSet:       atoms.Intern("set"),
	}
	p.top = &scopeContext{
		flags:  &p.file.Flags,
		vars:   &p.file.Vars,
		decls:  make(bindingTable),
		strict: opts.StrictMode,
	}
	p.sc = p.top
	return p, nil
}

// node returns a new T from the pool, charging it to the budget.
func node[T any](p *parser) *T {
	if !p.pool.reserve() {
		t := p.in.cur()
		p.rep.fatal(t.pos, t.end, ErrOutOfMemory)
	}
	return alloc[T](p.pool)
}

// enter and exit bracket every recursive production.
func (p *parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		t := p.in.cur()
		p.rep.fatal(t.pos, t.end, ErrTooDeep)
	}
}

func (p *parser) exit() { p.depth-- }

// want consumes the next token, which must have the given kind.
func (p *parser) want(kind Token, mode scanMode) *token {
	t := p.in.next(mode)
	if t.kind != kind {
		p.unexpected(t, kind)
	}
	return t
}

// unexpected reports t where a token of kind want (or, if want is
// ILLEGAL, anything else) was expected.
func (p *parser) unexpected(t *token, want Token) {
	switch {
	case t.kind == RESERVED:
		p.rep.fatal(t.pos, t.end, ErrReservedWord, t.raw)
	case want == ILLEGAL:
		p.rep.fatal(t.pos, t.end, ErrUnexpected, t.kind.GoString())
	default:
		p.rep.fatal(t.pos, t.end, ErrWant, t.kind.GoString(), want.GoString())
	}
}

// semi consumes the statement terminator, or infers it before a line
// break, a closing brace, or the end of input.
func (p *parser) semi() {
	switch p.in.peekSameLine(0) {
	case SEMI:
		p.in.next(0)
	case RBRACE, EOF, EOL:
	default:
		t := p.in.peek(0)
		p.rep.fatal(t.pos, t.end, ErrMissingSemi)
	}
}

// file = stmts EOF
func (p *parser) parseFile() *File {
	p.file.Stmts = p.statements(true)
	p.want(EOF, modeOperand)
	p.finishProgram()
	p.file.Diagnostics = p.rep.diags
	return p.file
}

// stmts = {stmt}
//
// A statement list ends before '}', case, default, or EOF.
// If prologue is set, leading string literal statements are directives.
func (p *parser) statements(prologue bool) []Stmt {
	p.in.sawOctalEscape = false
	var stmts []Stmt
	for {
		switch p.in.peek(modeOperand).kind {
		case EOF, RBRACE, CASE, DEFAULT:
			return stmts
		}
		stmt := p.statement()
		if prologue {
			prologue = p.directive(stmt)
		}
		stmts = append(stmts, stmt)
	}
}

// directive processes stmt as part of a directive prologue, reporting
// whether it was a directive.
func (p *parser) directive(stmt Stmt) bool {
	es, ok := stmt.(*ExprStmt)
	if !ok {
		return false
	}
	lit, ok := es.X.(*Literal)
	if !ok || lit.Token != STRING {
		return false
	}
	if lit.Raw == `"use strict"` || lit.Raw == `'use strict'` {
		ctx := p.sc
		if p.in.sawOctalEscape {
			p.rep.fatal(lit.TokenPos, lit.EndPos, ErrOctalEscape)
		}
		if !ctx.strict {
			ctx.strict = true
			*ctx.flags |= FuncStrict
			p.in.setStrict(true)
			p.log.Debug("strict mode", slog.String("pos", lit.TokenPos.String()))
		}
	}
	return true
}

// statement parses one statement.
func (p *parser) statement() Stmt {
	p.enter()
	defer p.exit()

	t := *p.in.next(modeOperand)
	switch t.kind {
	case LBRACE:
		return p.blockStatement(t.pos)
	case VAR, CONST:
		decl := p.varDecl(t.kind, t.pos, false)
		p.semi()
		return decl
	case LET:
		if p.in.peek(0).kind == LPAREN {
			return p.letStatement(t.pos)
		}
		decl := p.varDecl(LET, t.pos, false)
		p.semi()
		return decl
	case FUNCTION:
		return p.functionStatement(t.pos)
	case IF:
		return p.ifStatement(t.pos)
	case WHILE:
		return p.whileStatement(t.pos)
	case DO:
		return p.doStatement(t.pos)
	case FOR:
		return p.forStatement(t.pos)
	case SWITCH:
		return p.switchStatement(t.pos)
	case TRY:
		return p.tryStatement(t.pos)
	case WITH:
		return p.withStatement(t)
	case RETURN:
		return p.returnStatement(t)
	case BREAK, CONTINUE:
		return p.branchStatement(t)
	case THROW:
		return p.throwStatement(t)
	case DEBUGGER:
		stmt := node[DebuggerStmt](p)
		stmt.Debugger = t.pos
		p.semi()
		return stmt
	case SEMI:
		stmt := node[EmptyStmt](p)
		stmt.Semi = t.pos
		return stmt
	case NAME:
		if p.in.peek(0).kind == COLON {
			return p.labeledStatement(t)
		}
	}
	p.in.unget()
	stmt := node[ExprStmt](p)
	stmt.X = p.expr()
	p.semi()
	return stmt
}

// condition = '(' expr ')'
func (p *parser) condition() Expr {
	p.want(LPAREN, 0)
	saveNoIn := p.noIn
	p.noIn = false
	x := p.expr()
	p.noIn = saveNoIn
	p.want(RPAREN, 0)
	return x
}

// block = '{' stmts '}'
//
// The opening brace has been consumed.
func (p *parser) blockStatement(lbrace Position) *BlockStmt {
	b := node[BlockStmt](p)
	s := p.pushBlock(stmtBlock, lbrace)
	b.Lbrace = lbrace
	b.BlockID = s.blockID
	b.Stmts = p.statements(false)
	b.Rbrace = p.want(RBRACE, modeOperand).pos
	b.Scoped = s.isScope
	p.popStatement()
	return b
}

// letScope returns the statement that a let or const declaration at
// the current point is scoped to, or nil at function body level.
func (p *parser) letScope(kind Token, pos Position) *stmtInfo {
	s := p.sc.topStmt
	switch {
	case s == nil:
		return nil
	case s.kind == stmtBlock || s.kind == stmtSwitch:
		return s
	}
	p.rep.fatal(pos, pos.add(kind.String()), ErrLetNotInBlock, kind)
	panic("unreachable")
}

// varDecl = (VAR | LET | CONST) varSpec {',' varSpec}
// varSpec = (NAME | pattern) ['=' assignExpr]
//
// The keyword has been consumed. If forHead is set the declaration is
// the first clause of a for statement, whose own scope is the top
// statement; patterns then need no initializer.
func (p *parser) varDecl(kind Token, pos Position, forHead bool) *VarDecl {
	var scope *stmtInfo
	switch {
	case kind == VAR:
	case forHead:
		scope = p.sc.topStmt
	default:
		scope = p.letScope(kind, pos)
	}
	defKind := Var
	switch kind {
	case LET:
		defKind = Let
	case CONST:
		defKind = Const
	}
	bind := func(id *Ident, init bool) {
		if scope != nil {
			d := p.bindLet(id, defKind, scope)
			if init {
				d.Flags |= DefInitialized
			}
		} else {
			p.bindVarOrConst(id, defKind, init)
		}
	}

	decl := node[VarDecl](p)
	decl.Token = kind
	decl.TokenPos = pos
	for {
		spec := node[VarSpec](p)
		t := p.in.next(0)
		switch t.kind {
		case NAME:
			id := p.newIdent(t)
			bind(id, p.in.peek(0).kind == ASSIGN)
			spec.Target = id
		case LBRACK, LBRACE:
			spec.Target = p.bindingPattern(t, func(id *Ident) { bind(id, true) })
		default:
			p.unexpected(t, NAME)
		}
		if eq := p.in.next(0); eq.kind == ASSIGN {
			spec.Eq = eq.pos
			spec.Init = p.assignExpr()
		} else {
			p.in.unget()
			if _, isName := spec.Target.(*Ident); !isName && !(forHead && p.atInOrOf()) {
				p.unexpected(eq, ASSIGN)
			}
		}
		decl.List = append(decl.List, spec)
		if !p.in.match(COMMA, 0) {
			return decl
		}
	}
}

// atInOrOf reports whether the next token is in, or of.
func (p *parser) atInOrOf() bool {
	t := p.in.peek(0)
	return t.kind == IN || t.kind == NAME && t.atom == p.atomOf
}

// functionStatement = FUNCTION NAME function
func (p *parser) functionStatement(pos Position) Stmt {
	t := p.want(NAME, 0)
	name := p.newIdent(t)
	p.bindFunctionName(name)
	decl := node[FuncDecl](p)
	p.function(&decl.Function, FuncStatement, pos, name, decl)
	if decl.ExprBody != nil {
		p.semi()
	}
	return decl
}

// function = '(' params ')' ('{' stmts '}' | assignExpr)
//
// The second form is an expression closure.
func (p *parser) function(fn *Function, kind FuncKind, start Position, name *Ident, n Node) {
	var nameAtom atom.Atom
	if name != nil {
		nameAtom = name.Name
	}
	rec := p.newFunctionRecord(kind, nameAtom, n)
	fn.Record = rec
	fn.StartPos = start
	fn.Name = name

	saveNoIn := p.noIn
	p.noIn = false
	ctx := p.enterFunction(rec)
	if name != nil && kind != FuncStatement {
		name.Level = ctx.level
		name.BlockID = ctx.bodyID
	}
	p.log.Debug("enter function",
		slog.String("name", p.atoms.String(nameAtom)),
		slog.String("kind", kind.String()),
		slog.Int("level", ctx.level))

	p.want(LPAREN, 0)
	fn.Params, fn.Rest = p.params()
	switch kind {
	case FuncGetter:
		if len(fn.Params) != 0 || fn.Rest != nil {
			p.rep.fatal(start, start, ErrBadAccessor, "getter")
		}
	case FuncSetter:
		if len(fn.Params) != 1 || fn.Rest != nil {
			p.rep.fatal(start, start, ErrBadAccessor, "setter")
		}
	}

	if lbrace := p.in.next(modeOperand); lbrace.kind == LBRACE {
		fn.Body = p.statements(true)
		fn.EndPos = p.want(RBRACE, modeOperand).end
	} else {
		p.in.unget()
		if !p.opts.AllowLegacy {
			p.unexpected(lbrace, LBRACE)
		}
		rec.Flags |= FuncExprClosure
		fn.ExprBody = p.assignExpr()
		fn.EndPos = End(fn.ExprBody)
	}
	p.leaveFunction(ctx, name)
	p.noIn = saveNoIn
}

// params = [param {',' param}] [',' '...' NAME]
// param = NAME | pattern
//
// The opening parenthesis has been consumed; params consumes the closing one.
func (p *parser) params() (params []Expr, rest *Ident) {
	if p.in.match(RPAREN, 0) {
		return nil, nil
	}
	ctx := p.sc
	for {
		t := p.in.next(0)
		switch t.kind {
		case NAME:
			id := p.newIdent(t)
			p.bindArg(id)
			params = append(params, id)
		case LBRACK, LBRACE:
			ctx.destructArg = true
			params = append(params, p.bindingPattern(t, p.bindDestructuredArg))
			ctx.fn.Args = append(ctx.fn.Args, 0)
		case TRIPLEDOT:
			rest = p.newIdent(p.want(NAME, 0))
			p.bindArg(rest)
			ctx.fn.Flags |= FuncHasRest
			p.want(RPAREN, 0)
			return params, rest
		default:
			p.unexpected(t, NAME)
		}
		if !p.in.match(COMMA, 0) {
			p.want(RPAREN, 0)
			return params, rest
		}
	}
}

// ifStatement = IF condition stmt [ELSE stmt]
func (p *parser) ifStatement(pos Position) Stmt {
	stmt := node[IfStmt](p)
	stmt.If = pos
	stmt.Cond = p.condition()
	s := p.pushStatement(stmtIf, pos)
	stmt.Then = p.statement()
	if t := p.in.next(modeOperand); t.kind == ELSE {
		s.kind = stmtElse
		stmt.ElsePos = t.pos
		stmt.Else = p.statement()
	} else {
		p.in.unget()
	}
	p.popStatement()
	return stmt
}

// whileStatement = WHILE condition stmt
func (p *parser) whileStatement(pos Position) Stmt {
	stmt := node[WhileStmt](p)
	stmt.While = pos
	stmt.Cond = p.condition()
	p.pushStatement(stmtWhileLoop, pos)
	stmt.Body = p.statement()
	p.popStatement()
	return stmt
}

// doStatement = DO stmt WHILE condition [';']
func (p *parser) doStatement(pos Position) Stmt {
	stmt := node[DoWhileStmt](p)
	stmt.Do = pos
	p.pushStatement(stmtDoLoop, pos)
	stmt.Body = p.statement()
	p.popStatement()
	p.want(WHILE, modeOperand)
	p.want(LPAREN, 0)
	stmt.Cond = p.expr()
	stmt.Rparen = p.want(RPAREN, 0).pos
	p.in.match(SEMI, 0)
	return stmt
}

// forStatement = FOR [EACH] '(' forHead ')' stmt
// forHead = [init] ';' [expr] ';' [expr]
//         | (varDecl | expr) (IN | OF) expr
func (p *parser) forStatement(pos Position) Stmt {
	each := false
	if t := p.in.peek(0); t.kind == NAME && t.atom == p.atomEach {
		if !p.opts.AllowLegacy {
			p.rep.fatal(t.pos, t.end, ErrLegacySyntax, "for each")
		}
		p.in.next(0)
		each = true
	}
	p.want(LPAREN, 0)
	s := p.pushStatement(stmtForLoop, pos)
	blockID := 0

	var init Node
	var decl *VarDecl
	p.noIn = true
	switch t := p.in.next(modeOperand); t.kind {
	case SEMI:
		p.in.unget()
	case VAR:
		decl = p.varDecl(VAR, t.pos, true)
		init = decl
	case LET, CONST:
		if t.kind == LET && p.in.peek(0).kind == LPAREN {
			p.in.unget()
			init = p.expr()
			break
		}
		s.blockID = p.newBlockID()
		blockID = s.blockID
		p.makeScope(s)
		decl = p.varDecl(t.kind, t.pos, true)
		init = decl
	default:
		p.in.unget()
		init = p.expr()
	}
	p.noIn = false

	var result Stmt
	if init != nil && p.atInOrOf() {
		s.kind = stmtForInLoop
		of := p.in.next(0).kind != IN
		if each && of {
			p.rep.fatal(pos, pos, ErrBadForEach)
		}
		loop := node[ForInStmt](p)
		loop.For = pos
		loop.Each = each
		loop.Of = of
		loop.BlockID = blockID
		result = loop
		if decl != nil {
			spec := decl.List[0]
			if len(decl.List) != 1 {
				p.rep.fatal(Start(decl.List[1]), End(decl.List[1]), ErrBadForInTarget)
			}
			loop.Decl = decl.Token
			loop.Target = spec.Target
			if spec.Init != nil {
				// for (var x = init in o) is var x = init; for (x in o).
				id, ok := spec.Target.(*Ident)
				if !ok || decl.Token != VAR {
					p.rep.fatal(Start(spec), End(spec), ErrBadForInTarget)
				}
				loop.Decl = ILLEGAL
				loop.Target = p.reuseIdent(id)
				seq := node[SeqStmt](p)
				seq.List = []Stmt{decl, loop}
				result = seq
			}
		} else {
			p.checkForInTarget(init.(Expr))
			loop.Target = init.(Expr)
		}
		loop.X = p.expr()
		p.want(RPAREN, 0)
		loop.Body = p.statement()
	} else {
		if each {
			p.rep.fatal(pos, pos, ErrBadForEach)
		}
		loop := node[ForStmt](p)
		loop.For = pos
		loop.Init = init
		loop.BlockID = blockID
		p.want(SEMI, modeOperand)
		if p.in.peek(modeOperand).kind != SEMI {
			loop.Cond = p.expr()
		}
		p.want(SEMI, modeOperand)
		if p.in.peek(modeOperand).kind != RPAREN {
			loop.Post = p.expr()
		}
		p.want(RPAREN, 0)
		loop.Body = p.statement()
		result = loop
	}
	p.popStatement()
	return result
}

// reuseIdent returns a fresh assigned reference to the name of id.
func (p *parser) reuseIdent(id *Ident) *Ident {
	ref := node[Ident](p)
	ref.NamePos = id.NamePos
	ref.Name = id.Name
	ref.Raw = id.Raw
	ref.BlockID = p.sc.blockID()
	ref.Level = p.sc.level
	p.pool.addIdent(ref)
	p.use(ref)
	p.noteAssigned(ref)
	return ref
}

// switchStatement = SWITCH condition '{' {caseClause} '}'
// caseClause = (CASE expr | DEFAULT) ':' stmts
func (p *parser) switchStatement(pos Position) Stmt {
	stmt := node[SwitchStmt](p)
	stmt.Switch = pos
	stmt.Tag = p.condition()
	p.want(LBRACE, 0)
	s := p.pushBlock(stmtSwitch, pos)
	stmt.BlockID = s.blockID
	sawDefault := false
	for {
		t := p.in.next(modeOperand)
		if t.kind == RBRACE {
			stmt.Rbrace = t.pos
			break
		}
		c := node[CaseClause](p)
		c.Case = t.pos
		switch t.kind {
		case CASE:
			c.Value = p.expr()
		case DEFAULT:
			if sawDefault {
				p.rep.fatal(t.pos, t.end, ErrDuplicateDefault)
			}
			sawDefault = true
		default:
			p.unexpected(t, ILLEGAL)
		}
		c.Colon = p.want(COLON, 0).pos
		c.Body = p.statements(false)
		stmt.Cases = append(stmt.Cases, c)
	}
	p.popStatement()
	return stmt
}

// tryStatement = TRY block {catchClause} [FINALLY block]
// catchClause = CATCH '(' (NAME | pattern) [IF expr] ')' block
func (p *parser) tryStatement(pos Position) Stmt {
	stmt := node[TryStmt](p)
	stmt.Try = pos
	p.pushStatement(stmtTry, pos)
	stmt.Body = p.blockStatement(p.want(LBRACE, 0).pos)
	p.popStatement()

	unguarded := false
	for {
		t := p.in.next(modeOperand)
		if t.kind != CATCH {
			p.in.unget()
			break
		}
		if unguarded {
			p.rep.fatal(t.pos, t.end, ErrCatchAfterGeneral)
		}
		c := node[CatchClause](p)
		c.Catch = t.pos
		p.want(LPAREN, 0)
		s := p.pushBlock(stmtCatch, t.pos)
		p.makeScope(s)
		c.BlockID = s.blockID
		bind := func(id *Ident) {
			d := p.bindLet(id, Let, s)
			d.Flags |= DefCatchParam | DefInitialized
		}
		switch pt := p.in.next(0); pt.kind {
		case NAME:
			id := p.newIdent(pt)
			bind(id)
			c.Param = id
		case LBRACK, LBRACE:
			c.Param = p.bindingPattern(pt, bind)
		default:
			p.unexpected(pt, NAME)
		}
		if it := p.in.next(0); it.kind == IF {
			if !p.opts.AllowLegacy {
				p.rep.fatal(it.pos, it.end, ErrLegacySyntax, "catch guard")
			}
			c.Guard = p.expr()
		} else {
			p.in.unget()
			unguarded = true
		}
		p.want(RPAREN, 0)
		c.Body = p.blockStatement(p.want(LBRACE, 0).pos)
		p.popStatement()
		stmt.Catches = append(stmt.Catches, c)
	}

	if t := p.in.next(modeOperand); t.kind == FINALLY {
		stmt.FinallyPos = t.pos
		p.pushStatement(stmtFinally, t.pos)
		stmt.Finally = p.blockStatement(p.want(LBRACE, 0).pos)
		p.popStatement()
	} else {
		p.in.unget()
		if len(stmt.Catches) == 0 {
			p.rep.fatal(t.pos, t.end, ErrTryWithoutCatch)
		}
	}
	return stmt
}

// withStatement = WITH condition stmt
func (p *parser) withStatement(t token) Stmt {
	ctx := p.sc
	p.reportStrict(ctx, t.pos, t.end, ErrStrictWith)
	stmt := node[WithStmt](p)
	stmt.With = t.pos
	stmt.Object = p.condition()
	s := p.pushStatement(stmtWith, t.pos)
	p.makeScope(s)
	stmt.Body = p.statement()
	p.popStatement()
	*ctx.flags |= FuncBindingsAccessedDynamically | FuncHeavyweight
	return stmt
}

// returnStatement = RETURN [expr]
func (p *parser) returnStatement(t token) Stmt {
	ctx := p.sc
	if ctx.fn == nil {
		p.rep.fatal(t.pos, t.end, ErrBadReturn)
	}
	stmt := node[ReturnStmt](p)
	stmt.Return = t.pos
	switch p.in.peekSameLine(modeOperand) {
	case SEMI, RBRACE, EOF, EOL:
	default:
		stmt.Result = p.expr()
		if !ctx.returnValue.IsValid() {
			ctx.returnValue = t.pos
		}
	}
	p.semi()
	return stmt
}

// branchStatement = (BREAK | CONTINUE) [NAME]
//
// The label, if any, must be on the same line.
func (p *parser) branchStatement(t token) Stmt {
	stmt := node[BranchStmt](p)
	stmt.Token = t.kind
	stmt.TokenPos = t.pos
	if p.in.peekSameLine(0) == NAME {
		lt := p.in.next(0)
		stmt.Label = lt.atom
		stmt.Raw = lt.raw
		stmt.LabelPos = lt.pos
	}

	top := p.sc.topStmt
	switch {
	case stmt.Label != 0:
		var inner *stmtInfo
		s := top
		for ; s != nil; s = s.down {
			if s.kind == stmtLabel && s.label == stmt.Label {
				break
			}
			if s.kind != stmtLabel {
				inner = s
			}
		}
		if s == nil {
			p.rep.fatal(stmt.LabelPos, stmt.LabelPos.add(stmt.Raw), ErrLabelNotFound, stmt.Raw)
		}
		if t.kind == CONTINUE && (inner == nil || !inner.kind.isLoop()) {
			p.rep.fatal(t.pos, t.end, ErrBadContinue)
		}
	case t.kind == BREAK:
		s := top
		for s != nil && !s.kind.isLoop() && s.kind != stmtSwitch {
			s = s.down
		}
		if s == nil {
			p.rep.fatal(t.pos, t.end, ErrBadBreak)
		}
	default:
		s := top
		for s != nil && !s.kind.isLoop() {
			s = s.down
		}
		if s == nil {
			p.rep.fatal(t.pos, t.end, ErrBadContinue)
		}
	}
	p.semi()
	return stmt
}

// throwStatement = THROW expr
func (p *parser) throwStatement(t token) Stmt {
	if p.in.peekSameLine(modeOperand) == EOL {
		p.rep.fatal(t.pos, t.end, ErrThrowNewline)
	}
	stmt := node[ThrowStmt](p)
	stmt.Throw = t.pos
	stmt.X = p.expr()
	p.semi()
	return stmt
}

// labeledStatement = NAME ':' stmt
func (p *parser) labeledStatement(t token) Stmt {
	for s := p.sc.topStmt; s != nil; s = s.down {
		if s.kind == stmtLabel && s.label == t.atom {
			p.rep.fatal(t.pos, t.end, ErrDuplicateLabel, t.raw)
		}
	}
	p.want(COLON, 0)
	stmt := node[LabeledStmt](p)
	stmt.LabelPos = t.pos
	stmt.Label = t.atom
	stmt.Raw = t.raw
	s := p.pushStatement(stmtLabel, t.pos)
	s.label = t.atom
	stmt.Body = p.statement()
	p.popStatement()
	return stmt
}

// letStatement = LET letHead (block | assignExpr)
//
// The second form is a let expression used as a statement.
func (p *parser) letStatement(pos Position) Stmt {
	if !p.opts.AllowLegacy {
		p.rep.fatal(pos, pos.add("let"), ErrLegacySyntax, "let block")
	}
	vars, s := p.letHead(pos)
	if t := p.in.next(modeOperand); t.kind == LBRACE {
		stmt := node[LetStmt](p)
		stmt.Let = pos
		stmt.Vars = vars
		stmt.BlockID = s.blockID
		stmt.Body = p.blockStatement(t.pos)
		p.popStatement()
		return stmt
	}
	p.in.unget()
	x := node[LetExpr](p)
	x.Let = pos
	x.Vars = vars
	x.BlockID = s.blockID
	x.Body = p.assignExpr()
	p.popStatement()
	stmt := node[ExprStmt](p)
	stmt.X = p.exprTail(x)
	p.semi()
	return stmt
}

// letHead = '(' [varSpec {',' varSpec}] ')'
//
// The initializers are evaluated outside the scope of the variables,
// which is pushed after them. The caller pops it.
func (p *parser) letHead(pos Position) ([]*VarSpec, *stmtInfo) {
	p.want(LPAREN, 0)
	var vars []*VarSpec
	var names []*Ident
	collect := func(id *Ident) { names = append(names, id) }
	if !p.in.match(RPAREN, 0) {
		for {
			spec := node[VarSpec](p)
			t := p.in.next(0)
			switch t.kind {
			case NAME:
				id := p.newIdent(t)
				collect(id)
				spec.Target = id
			case LBRACK, LBRACE:
				spec.Target = p.bindingPattern(t, collect)
			default:
				p.unexpected(t, NAME)
			}
			if eq := p.in.next(0); eq.kind == ASSIGN {
				spec.Eq = eq.pos
				spec.Init = p.assignExpr()
			} else {
				p.in.unget()
			}
			vars = append(vars, spec)
			if !p.in.match(COMMA, 0) {
				break
			}
		}
		p.want(RPAREN, 0)
	}
	s := p.pushBlock(stmtLet, pos)
	p.makeScope(s)
	for _, id := range names {
		id.BlockID = s.blockID
		p.bindLet(id, Let, s)
	}
	return vars, s
}
