// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Expression grammar.

import "strconv"

// expr = assignExpr {',' assignExpr}
func (p *parser) expr() Expr {
	return p.exprTail(p.assignExpr())
}

// exprTail parses the rest of a comma expression whose first operand is x.
func (p *parser) exprTail(x Expr) Expr {
	if p.in.peek(0).kind != COMMA {
		return x
	}
	seq := node[SeqExpr](p)
	seq.List = []Expr{x}
	for p.in.match(COMMA, 0) {
		seq.List = append(seq.List, p.assignExpr())
	}
	return seq
}

// assignExpr = yieldExpr
//            | condExpr [assignOp assignExpr]
func (p *parser) assignExpr() Expr {
	p.enter()
	defer p.exit()

	if p.in.peek(modeOperand).kind == YIELD {
		return p.yieldExpr()
	}
	lhs := p.condExpr()
	op := p.in.next(0)
	if !op.kind.isAssign() {
		p.in.unget()
		return lhs
	}
	x := node[AssignExpr](p)
	x.LHS = lhs
	x.OpPos = op.pos
	x.Op = op.kind
	p.checkAssignTarget(lhs, x.Op)
	x.RHS = p.assignExpr()
	return x
}

// yieldExpr = YIELD [assignExpr]
func (p *parser) yieldExpr() Expr {
	t := p.in.next(modeOperand)
	ctx := p.sc
	switch {
	case !p.opts.AllowLegacy:
		p.rep.fatal(t.pos, t.end, ErrReservedWord, t.raw)
	case ctx.fn == nil || ctx.fn.Kind == FuncComprehension:
		p.rep.fatal(t.pos, t.end, ErrBadYield)
	case ctx.fn.Kind == FuncGenexp:
		p.rep.fatal(t.pos, t.end, ErrGenexpYield)
	}
	ctx.yields++
	*ctx.flags |= FuncGenerator

	y := node[YieldExpr](p)
	y.Yield = t.pos
	switch p.in.peekSameLine(modeOperand) {
	case RPAREN, RBRACK, RBRACE, SEMI, COMMA, COLON, EOL, EOF, FOR:
	default:
		y.X = p.assignExpr()
	}
	return y
}

// condExpr = binaryExpr ['?' assignExpr ':' assignExpr]
func (p *parser) condExpr() Expr {
	cond := p.binaryExpr(0)
	hook := p.in.next(0)
	if hook.kind != HOOK {
		p.in.unget()
		return cond
	}
	x := node[CondExpr](p)
	x.Cond = cond
	x.Hook = hook.pos
	saveNoIn := p.noIn
	p.noIn = false
	x.True = p.assignExpr()
	p.noIn = saveNoIn
	x.Colon = p.want(COLON, 0).pos
	x.False = p.assignExpr()
	return x
}

// preclevels groups operators of equal precedence.
// Comparisons are nonassociative; other binary operators associate to the left.
// Unary operators are handled by unaryExpr.
var preclevels = [...][]Token{
	{OR},                                 // ||
	{AND},                                // &&
	{BITOR},                              // |
	{BITXOR},                             // ^
	{BITAND},                             // &
	{EQ, NE, STRICTEQ, STRICTNE},         // == != === !==
	{LT, GT, LE, GE, INSTANCEOF, IN},     // < > <= >= instanceof in
	{LSH, RSH, URSH},                     // << >> >>>
	{PLUS, MINUS},                        // + -
	{STAR, DIV, MOD},                     // * / %
}

// precedence maps each operator to its precedence (0-9), or -1 for other tokens.
var precedence [maxToken]int8

func init() {
	for i := range precedence {
		precedence[i] = -1
	}
	for level, tokens := range preclevels {
		for _, tok := range tokens {
			precedence[tok] = int8(level)
		}
	}
}

// binaryExpr = unaryExpr {binop unaryExpr}
//
// binaryExpr parses operators of precedence prec and higher.
func (p *parser) binaryExpr(prec int) Expr {
	if prec >= len(preclevels) {
		return p.unaryExpr()
	}
	x := p.binaryExpr(prec + 1)
	for {
		t := p.in.next(0)
		opprec := int(precedence[t.kind])
		if opprec < prec || t.kind == IN && p.noIn {
			p.in.unget()
			return x
		}
		b := node[BinaryExpr](p)
		b.X = x
		b.OpPos = t.pos
		b.Op = t.kind
		b.Y = p.binaryExpr(opprec + 1)
		x = b
	}
}

// unaryExpr = unop unaryExpr
//           | ('++' | '--') unaryExpr
//           | memberExpr ['++' | '--']
//
// A postfix operator must be on the same line as its operand.
func (p *parser) unaryExpr() Expr {
	p.enter()
	defer p.exit()

	t := p.in.next(modeOperand)
	switch t.kind {
	case NOT, BITNOT, PLUS, MINUS, TYPEOF, VOID, DELETE:
		x := node[UnaryExpr](p)
		x.OpPos = t.pos
		x.Op = t.kind
		x.X = p.unaryExpr()
		if x.Op == DELETE {
			if id, ok := unparen(x.X).(*Ident); ok {
				p.reportStrict(p.sc, id.NamePos, End(id), ErrDeleteName)
			}
		}
		return x
	case INC, DEC:
		x := node[UpdateExpr](p)
		x.OpPos = t.pos
		x.Op = t.kind
		x.Prefix = true
		x.X = p.unaryExpr()
		p.checkIncOperand(x.X)
		return x
	}
	p.in.unget()

	operand := p.memberExpr(true)
	switch p.in.peekSameLine(0) {
	case INC, DEC:
		t := p.in.next(0)
		x := node[UpdateExpr](p)
		x.OpPos = t.pos
		x.Op = t.kind
		x.X = operand
		p.checkIncOperand(operand)
		return x
	}
	return operand
}

// memberExpr = (primaryExpr | NEW memberExpr [arguments]) {suffix}
// suffix = '.' NAME | '[' expr ']' | arguments
//
// Call suffixes are accepted only if allowCall is set, so that
// the operand of new extends up to its argument list.
func (p *parser) memberExpr(allowCall bool) Expr {
	p.enter()
	defer p.exit()

	var x Expr
	if t := p.in.next(modeOperand); t.kind == NEW {
		nx := node[NewExpr](p)
		nx.New = t.pos
		nx.Fn = p.memberExpr(false)
		if lp := p.in.next(0); lp.kind == LPAREN {
			nx.Lparen = lp.pos
			nx.Args, nx.Rparen = p.arguments()
		} else {
			p.in.unget()
		}
		x = nx
	} else {
		p.in.unget()
		x = p.primaryExpr()
	}

	for {
		t := p.in.next(0)
		switch t.kind {
		case DOT:
			dot := t.pos
			name := p.in.next(modeKeywordIsName)
			if name.kind != NAME {
				p.unexpected(name, NAME)
			}
			dx := node[DotExpr](p)
			dx.X = x
			dx.Dot = dot
			dx.NamePos = name.pos
			dx.Name = name.atom
			dx.Raw = name.raw
			x = dx
		case LBRACK:
			ix := node[IndexExpr](p)
			ix.X = x
			ix.Lbrack = t.pos
			saveNoIn := p.noIn
			p.noIn = false
			ix.Y = p.expr()
			p.noIn = saveNoIn
			ix.Rbrack = p.want(RBRACK, 0).pos
			x = ix
		case LPAREN:
			if !allowCall {
				p.in.unget()
				return x
			}
			call := node[CallExpr](p)
			call.Fn = x
			call.Lparen = t.pos
			if id, ok := x.(*Ident); ok && id.Name == p.atomEval {
				*p.sc.flags |= FuncBindingsAccessedDynamically | FuncHeavyweight
			}
			call.Args, call.Rparen = p.arguments()
			x = call
		default:
			p.in.unget()
			return x
		}
	}
}

// arguments = '(' [assignExpr {',' assignExpr}] ')'
//           | '(' assignExpr comprehensionTail ')'
//
// The opening parenthesis has been consumed.
func (p *parser) arguments() ([]Expr, Position) {
	saveNoIn := p.noIn
	p.noIn = false
	defer func() { p.noIn = saveNoIn }()

	if t := p.in.next(modeOperand); t.kind == RPAREN {
		return nil, t.pos
	} else {
		p.in.unget()
	}
	lparen := p.in.cur().pos
	m := p.mark()
	var args []Expr
	for {
		x := p.assignExpr()
		if len(args) == 0 && p.in.peek(0).kind == FOR {
			c := p.comprehension(x, m, true, lparen)
			return []Expr{c}, c.Rbrack
		}
		args = append(args, x)
		if !p.in.match(COMMA, 0) {
			return args, p.want(RPAREN, 0).pos
		}
	}
}

// primaryExpr = NAME | literal | template
//             | '(' expr ')' | arrayLiteral | objectLiteral
//             | FUNCTION [NAME] function
//             | LET letHead assignExpr
func (p *parser) primaryExpr() Expr {
	p.enter()
	defer p.exit()

	t := p.in.next(modeOperand)
	switch t.kind {
	case NAME:
		id := p.newIdent(t)
		p.use(id)
		return id

	case NUMBER, STRING, REGEXP, TEMPLATE, TRUE, FALSE, NULL, THIS:
		return p.literal(t)

	case TEMPLATE_HEAD:
		return p.template(t)

	case LPAREN:
		return p.parenExpr(t.pos)

	case LBRACK:
		return p.arrayLiteral(t.pos)

	case LBRACE:
		return p.objectLiteral(t.pos)

	case FUNCTION:
		pos := t.pos
		fx := node[FuncExpr](p)
		var name *Ident
		if nt := p.in.next(0); nt.kind == NAME {
			name = p.newIdent(nt)
		} else {
			p.in.unget()
		}
		p.function(&fx.Function, FuncExpression, pos, name, fx)
		return fx

	case LET:
		pos := t.pos
		if !p.opts.AllowLegacy {
			p.rep.fatal(t.pos, t.end, ErrLegacySyntax, "let expression")
		}
		x := node[LetExpr](p)
		x.Let = pos
		var s *stmtInfo
		x.Vars, s = p.letHead(pos)
		x.BlockID = s.blockID
		x.Body = p.assignExpr()
		p.popStatement()
		return x
	}
	p.unexpected(t, ILLEGAL)
	panic("unreachable")
}

func (p *parser) literal(t *token) *Literal {
	lit := node[Literal](p)
	lit.Token = t.kind
	lit.TokenPos = t.pos
	lit.EndPos = t.end
	lit.Raw = t.raw
	switch t.kind {
	case NUMBER:
		lit.Value = t.num
	case STRING, TEMPLATE:
		lit.Value = t.str
	case REGEXP:
		lit.Value = t.str
		lit.Flags = t.flags
	case TRUE:
		lit.Value = true
	case FALSE:
		lit.Value = false
	}
	return lit
}

// template = TEMPLATE_HEAD expr {TEMPLATE_MIDDLE expr} TEMPLATE_TAIL
func (p *parser) template(t *token) Expr {
	x := node[TemplateExpr](p)
	x.Start = t.pos
	x.Quasis = []string{t.str}
	saveNoIn := p.noIn
	p.noIn = false
	for {
		x.Exprs = append(x.Exprs, p.expr())
		piece := p.in.resumeTemplate()
		x.Quasis = append(x.Quasis, piece.str)
		if piece.kind == TEMPLATE_TAIL {
			x.EndPos = piece.end
			break
		}
	}
	p.noIn = saveNoIn
	return x
}

// parenExpr = '(' expr ')'
//           | '(' assignExpr comprehensionTail ')'
//
// The opening parenthesis has been consumed.
func (p *parser) parenExpr(lparen Position) Expr {
	saveNoIn := p.noIn
	p.noIn = false
	defer func() { p.noIn = saveNoIn }()

	m := p.mark()
	x := p.assignExpr()
	if p.in.peek(0).kind == FOR {
		return p.comprehension(x, m, true, lparen)
	}
	paren := node[ParenExpr](p)
	paren.Lparen = lparen
	paren.X = p.exprTail(x)
	paren.Rparen = p.want(RPAREN, 0).pos
	return paren
}

// arrayLiteral = '[' [elem {',' elem}] ']'
//              | '[' assignExpr comprehensionTail ']'
//
// An elided elem is a hole. The opening bracket has been consumed.
func (p *parser) arrayLiteral(lbrack Position) Expr {
	saveNoIn := p.noIn
	p.noIn = false
	defer func() { p.noIn = saveNoIn }()

	arr := node[ArrayExpr](p)
	arr.Lbrack = lbrack
	m := p.mark()
	for {
		t := p.in.next(modeOperand)
		switch t.kind {
		case RBRACK:
			arr.Rbrack = t.pos
			return arr
		case COMMA:
			arr.List = append(arr.List, nil)
			continue
		}
		p.in.unget()
		x := p.assignExpr()
		if len(arr.List) == 0 && p.in.peek(0).kind == FOR {
			return p.comprehension(x, m, false, lbrack)
		}
		arr.List = append(arr.List, x)
		if !p.in.match(COMMA, 0) {
			arr.Rbrack = p.want(RBRACK, 0).pos
			return arr
		}
	}
}

// objectLiteral = '{' [property {',' property} [',']] '}'
// property = key ':' assignExpr
//          | (GET | SET) key function
//          | NAME
// key = NAME | STRING | NUMBER
//
// The opening brace has been consumed.
func (p *parser) objectLiteral(lbrace Position) Expr {
	saveNoIn := p.noIn
	p.noIn = false
	defer func() { p.noIn = saveNoIn }()

	obj := node[ObjectExpr](p)
	obj.Lbrace = lbrace
	const (
		seenData = 1 << iota
		seenGet
		seenSet
	)
	seen := make(map[string]int)
	for {
		t := p.in.next(modeKeywordIsName)
		if t.kind == RBRACE {
			obj.Rbrace = t.pos
			return obj
		}
		prop := node[Property](p)
		switch next := p.in.peek(0).kind; {
		case t.kind == NAME && (t.atom == p.atomGet || t.atom == p.atomSet) &&
			next != COLON && next != COMMA && next != RBRACE:
			kind, fkind, bit := PropGet, FuncGetter, seenGet
			if t.atom == p.atomSet {
				kind, fkind, bit = PropSet, FuncSetter, seenSet
			}
			start := t.pos
			prop.Kind = kind
			prop.Key = p.propertyKey(p.in.next(modeKeywordIsName))
			fx := node[FuncExpr](p)
			p.function(&fx.Function, fkind, start, nil, fx)
			prop.Value = fx
			key := keyString(prop.Key)
			if seen[key]&(seenData|bit) != 0 {
				p.reportStrict(p.sc, prop.Key.TokenPos, prop.Key.EndPos, ErrDuplicateProperty, prop.Key.Raw)
			}
			seen[key] |= bit

		case next == COLON:
			prop.Key = p.propertyKey(t)
			prop.Colon = p.in.next(0).pos
			prop.Value = p.assignExpr()
			key := keyString(prop.Key)
			if seen[key] != 0 {
				p.reportStrict(p.sc, prop.Key.TokenPos, prop.Key.EndPos, ErrDuplicateProperty, prop.Key.Raw)
			}
			seen[key] |= seenData

		case t.kind == NAME && (next == COMMA || next == RBRACE):
			// {x} means {x: x}.
			if isReservedName(t.str, p.sc.strict) {
				p.rep.fatal(t.pos, t.end, ErrReservedWord, t.raw)
			}
			prop.Kind = PropShorthand
			prop.Key = p.propertyKey(t)
			id := p.newIdent(t)
			p.use(id)
			prop.Value = id
			seen[keyString(prop.Key)] |= seenData

		default:
			p.propertyKey(t)
			p.want(COLON, 0)
		}
		obj.List = append(obj.List, prop)
		if !p.in.match(COMMA, 0) {
			obj.Rbrace = p.want(RBRACE, 0).pos
			return obj
		}
	}
}

// propertyKey returns the key of an object literal property.
func (p *parser) propertyKey(t *token) *Literal {
	switch t.kind {
	case NAME, STRING, NUMBER:
	default:
		p.unexpected(t, NAME)
	}
	key := p.literal(t)
	if t.kind == NAME {
		key.Value = t.str
	}
	return key
}

// keyString returns the property name denoted by a key.
func keyString(key *Literal) string {
	if f, ok := key.Value.(float64); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s, _ := key.Value.(string)
	return s
}

// isReservedName reports whether name cannot be an identifier.
func isReservedName(name string, strict bool) bool {
	if _, ok := keywordToken[name]; ok {
		return name != "let" && name != "yield" || strict
	}
	return strict && strictReserved[name]
}

func unparen(x Expr) Expr {
	for {
		paren, ok := x.(*ParenExpr)
		if !ok {
			return x
		}
		x = paren.X
	}
}
