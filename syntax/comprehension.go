// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Array comprehensions and generator expressions.
//
// The body of a comprehension precedes its for clauses, so by the time
// the parser knows it is in one, the body has been parsed and resolved
// in the enclosing scope. comprehension then moves everything the body
// created or referenced into the scope of a new function, as if the
// body had been parsed there in the first place.

import "slices"

// A compMark records the parser state at the start of an expression
// that may turn out to be a comprehension body.
type compMark struct {
	nameRef  NameRef   // first name of the body
	defID    DefID     // first definition of the body
	records  int       // function records of the context created before the body
	blockGen int       // last block id before the body
	yields   int       // yields of the context before the body
	flags    FuncFlags // flags of the context before the body
}

func (p *parser) mark() compMark {
	ctx := p.sc
	return compMark{
		nameRef:  NameRef(len(p.pool.names)),
		defID:    DefID(len(p.pool.defs)),
		records:  len(*p.childRecords(ctx)),
		blockGen: p.blockGen,
		yields:   ctx.yields,
		flags:    *ctx.flags,
	}
}

// childRecords returns the list of records of functions nested
// directly in ctx.
func (p *parser) childRecords(ctx *scopeContext) *[]*FunctionRecord {
	if ctx.fn != nil {
		return &ctx.fn.Children
	}
	return &p.file.Functions
}

// comprehension = body comprehensionTail
// comprehensionTail = forClause {forClause} [IF '(' expr ')'] (']' | ')')
// forClause = FOR [EACH] '(' (NAME | pattern) (IN | OF) expr ')'
//
// body has already been parsed; m was taken just before it.
// open is the position of the opening bracket or parenthesis.
func (p *parser) comprehension(body Expr, m compMark, generator bool, open Position) *Comprehension {
	t := p.in.peek(0)
	if !p.opts.AllowLegacy {
		what := "array comprehension"
		if generator {
			what = "generator expression"
		}
		p.rep.fatal(t.pos, t.end, ErrLegacySyntax, what)
	}
	ctx := p.sc
	if generator && ctx.yields > m.yields {
		p.rep.fatal(open, open, ErrGenexpYield)
	}

	namesEnd := NameRef(len(p.pool.names))
	defsEnd := DefID(len(p.pool.defs))
	bodyBlocks := p.blockGen - m.blockGen

	c := node[Comprehension](p)
	c.Generator = generator
	c.Lbrack = open
	c.Body = body

	kind := FuncComprehension
	if generator {
		kind = FuncGenexp
	}
	rec := p.newFunctionRecord(kind, 0, c)
	if generator {
		rec.Flags |= FuncGenerator
	}
	rec.Flags |= (*ctx.flags &^ m.flags) & (FuncBindingsAccessedDynamically | FuncHeavyweight)
	c.Func = rec

	// Functions of the body become children of rec.
	siblings := p.childRecords(ctx)
	moved := slices.Clone((*siblings)[m.records : len(*siblings)-1])
	*siblings = append((*siblings)[:m.records], rec)
	for _, child := range moved {
		child.Parent = rec
	}
	rec.Children = moved

	g := p.enterFunction(rec)
	s := p.pushBlock(stmtComp, open)
	p.makeScope(s)
	c.BlockID = s.blockID

	// The body's blocks are renumbered to follow the comprehension's
	// own, so that they nest within it.
	delta := s.blockID - m.blockGen
	shift := func(id int) int {
		if id > m.blockGen {
			return id + delta
		}
		return id
	}
	p.blockGen = s.blockID + bodyBlocks

	for ref := m.nameRef; ref < namesEnd; ref++ {
		id := p.pool.ident(ref)
		id.Level++
		if id.BlockID > m.blockGen {
			id.BlockID += delta
		} else {
			id.BlockID = s.blockID
		}
	}
	for did := m.defID; did < defsEnd; did++ {
		d := p.pool.def(did)
		d.Level++
		if d.BlockID > m.blockGen {
			d.BlockID += delta
		} else {
			d.BlockID = g.bodyID
		}
		if d.Func == ctx.fn {
			d.Func = rec
			d.Flags &^= DefTopLevel
		}
	}
	var relevel func(fns []*FunctionRecord)
	relevel = func(fns []*FunctionRecord) {
		for _, fn := range fns {
			fn.Level++
			fn.BodyID = shift(fn.BodyID)
			relevel(fn.Children)
		}
	}
	relevel(moved)
	Walk(body, func(n Node) bool {
		switch n := n.(type) {
		case *BlockStmt:
			n.BlockID = shift(n.BlockID)
		case *ForStmt:
			n.BlockID = shift(n.BlockID)
		case *ForInStmt:
			n.BlockID = shift(n.BlockID)
		case *SwitchStmt:
			n.BlockID = shift(n.BlockID)
		case *CatchClause:
			n.BlockID = shift(n.BlockID)
		case *LetStmt:
			n.BlockID = shift(n.BlockID)
		case *LetExpr:
			n.BlockID = shift(n.BlockID)
		case *Comprehension:
			n.BlockID = shift(n.BlockID)
		}
		return true
	})

	// References from the body to the enclosing scope now come from
	// within rec: they go through placeholders of rec, which the loop
	// variables may capture and leaveFunction resolves outward.
	split := make(map[DefID]*Definition)
	for ref := m.nameRef; ref < namesEnd; ref++ {
		id := p.pool.ident(ref)
		if id.Def == 0 || id.Flags&IdentDefinition != 0 {
			continue
		}
		d := p.pool.def(id.Def)
		switch {
		case d.ID < m.defID:
			if split[d.ID] == nil {
				ph := p.newDef(d.Name, Placeholder, id.NamePos)
				g.lexdeps.add(d.Name, ph.ID)
				split[d.ID] = ph
			}
		case d.Kind == Placeholder && ctx.lexdeps.lookup(d.Name) == d.ID:
			ctx.lexdeps.remove(d.Name)
			g.lexdeps.add(d.Name, d.ID)
		}
	}
	outerIDs := make([]DefID, 0, len(split))
	for outerID := range split {
		outerIDs = append(outerIDs, outerID)
	}
	slices.Sort(outerIDs)
	for _, outerID := range outerIDs {
		outer, ph := p.pool.def(outerID), split[outerID]
		k, _ := slices.BinarySearch(outer.Uses, m.nameRef)
		uses := outer.Uses[k:]
		outer.Uses = outer.Uses[:k:k]
		p.relink(ph, uses)
		if len(outer.Uses) == 0 && outer.IsPlaceholder() && ctx.lexdeps.lookup(outer.Name) == outer.ID {
			outer.Uses = nil
			outer.Flags |= DefDead
			ctx.lexdeps.remove(outer.Name)
		}
	}

	for {
		ft := p.in.next(0)
		if ft.kind != FOR {
			p.in.unget()
			break
		}
		c.Clauses = append(c.Clauses, p.forClause(ft.pos, s))
	}
	if it := p.in.next(0); it.kind == IF {
		clause := node[IfClause](p)
		clause.If = it.pos
		p.want(LPAREN, 0)
		clause.Cond = p.expr()
		clause.Rparen = p.want(RPAREN, 0).pos
		c.Clauses = append(c.Clauses, clause)
	} else {
		p.in.unget()
	}
	if generator {
		c.Rbrack = p.want(RPAREN, 0).pos
	} else {
		c.Rbrack = p.want(RBRACK, 0).pos
	}

	p.popStatement()
	p.leaveFunction(g, nil)
	return c
}

// forClause parses a for clause of a comprehension, whose loop
// variables are declared in s. FOR has been consumed.
func (p *parser) forClause(pos Position, s *stmtInfo) *ForClause {
	clause := node[ForClause](p)
	clause.For = pos
	if t := p.in.peek(0); t.kind == NAME && t.atom == p.atomEach {
		p.in.next(0)
		clause.Each = true
	}
	p.want(LPAREN, 0)
	bind := func(id *Ident) {
		d := p.bindLet(id, Let, s)
		d.Flags |= DefInitialized
	}
	switch t := p.in.next(0); t.kind {
	case NAME:
		id := p.newIdent(t)
		bind(id)
		clause.Target = id
	case LBRACK, LBRACE:
		clause.Target = p.bindingPattern(t, bind)
	default:
		p.unexpected(t, NAME)
	}
	if !p.atInOrOf() {
		p.unexpected(p.in.next(0), IN)
	}
	clause.Of = p.in.next(0).kind != IN
	if clause.Each && clause.Of {
		p.rep.fatal(pos, pos, ErrBadForEach)
	}
	clause.X = p.expr()
	clause.Rparen = p.want(RPAREN, 0).pos
	return clause
}
