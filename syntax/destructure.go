// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Destructuring patterns and assignment targets.

// bindingPattern = '[' [elem] {',' [elem]} ']'
//                | '{' [prop {',' prop} [',']] '}'
// elem = NAME | bindingPattern
// prop = key ':' elem | NAME
//
// The opening token t has been consumed. bind is called for each name
// the pattern declares, in source order.
func (p *parser) bindingPattern(t *token, bind func(*Ident)) Expr {
	p.enter()
	defer p.exit()

	open := t.pos
	if t.kind == LBRACK {
		arr := node[ArrayExpr](p)
		arr.Lbrack = open
		for {
			et := p.in.next(0)
			switch et.kind {
			case RBRACK:
				arr.Rbrack = et.pos
				return arr
			case COMMA:
				arr.List = append(arr.List, nil)
				continue
			}
			arr.List = append(arr.List, p.bindingElement(et, bind))
			if !p.in.match(COMMA, 0) {
				arr.Rbrack = p.want(RBRACK, 0).pos
				return arr
			}
		}
	}

	obj := node[ObjectExpr](p)
	obj.Lbrace = open
	for {
		kt := p.in.next(modeKeywordIsName)
		if kt.kind == RBRACE {
			obj.Rbrace = kt.pos
			return obj
		}
		prop := node[Property](p)
		if kt.kind == NAME && p.in.peek(0).kind != COLON {
			// {x} binds x to property x.
			if isReservedName(kt.str, p.sc.strict) {
				p.rep.fatal(kt.pos, kt.end, ErrReservedWord, kt.raw)
			}
			prop.Kind = PropShorthand
			prop.Key = p.propertyKey(kt)
			id := p.newIdent(kt)
			bind(id)
			prop.Value = id
		} else {
			prop.Key = p.propertyKey(kt)
			prop.Colon = p.want(COLON, 0).pos
			prop.Value = p.bindingElement(p.in.next(0), bind)
		}
		obj.List = append(obj.List, prop)
		if !p.in.match(COMMA, 0) {
			obj.Rbrace = p.want(RBRACE, 0).pos
			return obj
		}
	}
}

// bindingElement parses one target of a binding pattern; t is its
// first token.
func (p *parser) bindingElement(t *token, bind func(*Ident)) Expr {
	switch t.kind {
	case NAME:
		id := p.newIdent(t)
		bind(id)
		return id
	case LBRACK, LBRACE:
		return p.bindingPattern(t, bind)
	}
	p.rep.fatal(t.pos, t.end, ErrBadDestructuring)
	panic("unreachable")
}

// checkAssignTarget validates the left operand of an assignment.
func (p *parser) checkAssignTarget(lhs Expr, op Token) {
	switch x := lhs.(type) {
	case *Ident:
		p.noteAssigned(x)
	case *DotExpr, *IndexExpr:
		// ok
	case *ParenExpr:
		switch unparen(x).(type) {
		case *ArrayExpr, *ObjectExpr:
			// A parenthesized literal is not a pattern.
			p.rep.fatal(Start(x), End(x), ErrBadAssignTarget)
		}
		p.checkAssignTarget(x.X, op)
	case *CallExpr:
		p.reportStrict(p.sc, Start(x), End(x), ErrAssignCall)
	case *ArrayExpr, *ObjectExpr:
		if op != ASSIGN {
			p.rep.fatal(Start(x), End(x), ErrBadAssignTarget)
		}
		p.checkDestructuringAssign(x)
	default:
		p.rep.fatal(Start(lhs), End(lhs), ErrBadAssignTarget)
	}
}

// checkDestructuringAssign validates an array or object literal used
// as the target of a destructuring assignment. Every name in it is
// already a reference, and becomes an assigned one.
func (p *parser) checkDestructuringAssign(x Expr) {
	p.enter()
	defer p.exit()

	switch x := x.(type) {
	case *Ident:
		p.noteAssigned(x)
	case *DotExpr, *IndexExpr:
		// ok
	case *ArrayExpr:
		for _, elem := range x.List {
			if elem != nil {
				p.checkDestructuringAssign(elem)
			}
		}
	case *ObjectExpr:
		for _, prop := range x.List {
			if prop.Kind == PropGet || prop.Kind == PropSet {
				p.rep.fatal(Start(prop), End(prop), ErrBadDestructuring)
			}
			p.checkDestructuringAssign(prop.Value)
		}
	default:
		p.rep.fatal(Start(x), End(x), ErrBadDestructuring)
	}
}

// checkForInTarget validates the target of a for-in or for-of loop
// given as an expression.
func (p *parser) checkForInTarget(x Expr) {
	switch x := x.(type) {
	case *Ident:
		p.noteAssigned(x)
	case *DotExpr, *IndexExpr:
		// ok
	case *ParenExpr:
		p.checkForInTarget(x.X)
	case *CallExpr:
		p.reportStrict(p.sc, Start(x), End(x), ErrAssignCall)
	case *ArrayExpr, *ObjectExpr:
		p.checkDestructuringAssign(x)
	default:
		p.rep.fatal(Start(x), End(x), ErrBadForInTarget)
	}
}

// checkIncOperand validates the operand of ++ or --.
func (p *parser) checkIncOperand(x Expr) {
	switch x := x.(type) {
	case *Ident:
		p.noteAssigned(x)
	case *DotExpr, *IndexExpr:
		// ok
	case *ParenExpr:
		p.checkIncOperand(x.X)
	case *CallExpr:
		p.reportStrict(p.sc, Start(x), End(x), ErrAssignCall)
	default:
		p.rep.fatal(Start(x), End(x), ErrBadIncOperand)
	}
}
