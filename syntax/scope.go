// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// This file implements name binding. The parser calls use for every
// reference to a name and one of the bind functions for every binding
// site. A name used before its declaration gets a placeholder
// definition, which a later declaration takes over and which is
// otherwise handed to the enclosing function when the current one ends.

import (
	"log/slog"
	"slices"

	"go.jsfront.dev/atom"
)

// A stmtKind identifies an open syntactic construct.
type stmtKind uint8

const (
	stmtLabel stmtKind = iota
	stmtIf
	stmtElse
	stmtSwitch
	stmtBlock
	stmtWith
	stmtCatch
	stmtTry
	stmtFinally
	stmtDoLoop
	stmtForLoop
	stmtForInLoop
	stmtWhileLoop
	stmtLet  // head of a let block or let expression
	stmtComp // comprehension variables
)

func (k stmtKind) isLoop() bool { return k >= stmtDoLoop && k <= stmtWhileLoop }

// A stmtInfo is an entry of the statement stack.
type stmtInfo struct {
	kind      stmtKind
	blockID   int
	label     atom.Atom // for stmtLabel
	isScope   bool      // on the scope chain: declares lets, or is a with
	decls     []DefID   // lets declared directly in this scope
	down      *stmtInfo // enclosing statement
	downScope *stmtInfo // enclosing scope statement
	start     Position
}

// declares reports whether s declares a let named name.
func (s *stmtInfo) declares(p *parser, name atom.Atom) bool {
	for _, id := range s.decls {
		if p.pool.def(id).Name == name {
			return true
		}
	}
	return false
}

// A scopeContext holds the binding state of the program or of one
// open function. Contexts form a chain mirroring function nesting.
type scopeContext struct {
	parent  *scopeContext
	fn      *FunctionRecord // nil for the program
	flags   *FuncFlags      // fn.Flags, or the program's
	vars    *[]DefID        // fn.Vars, or the program's
	decls   bindingTable
	lexdeps placeholderMap

	topStmt      *stmtInfo
	topScopeStmt *stmtInfo
	bodyID       int
	level        int
	strict       bool

	yields      int      // yield expressions seen
	returnValue Position // first return with an operand
	dupArgs     []*Ident // parameters that repeat an earlier name
	destructArg bool     // a parameter is a destructuring pattern
}

// blockID returns the id of the innermost block.
func (ctx *scopeContext) blockID() int {
	if ctx.topStmt != nil {
		return ctx.topStmt.blockID
	}
	return ctx.bodyID
}

// innermostWith returns the innermost open with statement, if any.
func (ctx *scopeContext) innermostWith() *stmtInfo {
	for s := ctx.topScopeStmt; s != nil; s = s.downScope {
		if s.kind == stmtWith {
			return s
		}
	}
	return nil
}

func (p *parser) newBlockID() int {
	p.blockGen++
	return p.blockGen
}

// pushStatement opens a construct that shares the enclosing block.
func (p *parser) pushStatement(kind stmtKind, start Position) *stmtInfo {
	ctx := p.sc
	s := &stmtInfo{kind: kind, blockID: ctx.blockID(), down: ctx.topStmt, start: start}
	ctx.topStmt = s
	return s
}

// pushBlock opens a construct with a block id of its own.
func (p *parser) pushBlock(kind stmtKind, start Position) *stmtInfo {
	s := p.pushStatement(kind, start)
	s.blockID = p.newBlockID()
	return s
}

// makeScope puts s, the top statement, on the scope chain.
func (p *parser) makeScope(s *stmtInfo) {
	if s.isScope {
		return
	}
	ctx := p.sc
	s.isScope = true
	s.downScope = ctx.topScopeStmt
	ctx.topScopeStmt = s
}

// popStatement closes the top statement, removing its lets from scope.
func (p *parser) popStatement() {
	ctx := p.sc
	s := ctx.topStmt
	if s.isScope {
		for i := len(s.decls) - 1; i >= 0; i-- {
			d := p.pool.def(s.decls[i])
			if ctx.decls.lookupFirst(d.Name) != d.ID {
				panic("syntax: unbalanced let binding")
			}
			ctx.decls.remove(d.Name)
		}
		ctx.topScopeStmt = s.downScope
	}
	ctx.topStmt = s.down
}

// newIdent returns an identifier for the NAME token t.
func (p *parser) newIdent(t *token) *Ident {
	id := node[Ident](p)
	id.NamePos = t.pos
	id.Name = t.atom
	id.Raw = t.raw
	id.BlockID = p.sc.blockID()
	id.Level = p.sc.level
	p.pool.addIdent(id)
	return id
}

func (p *parser) newDef(name atom.Atom, kind DefKind, pos Position) *Definition {
	ctx := p.sc
	d := node[Definition](p)
	d.Name = name
	d.Kind = kind
	d.Pos = pos
	d.Slot = -1
	d.Level = ctx.level
	d.BlockID = ctx.bodyID
	d.Func = ctx.fn
	if ctx.fn == nil && kind != Placeholder {
		d.Flags |= DefTopLevel
	}
	p.pool.addDef(d)
	return d
}

// linkUse makes id a reference to d.
func (p *parser) linkUse(d *Definition, id *Ident) {
	p.relink(d, []NameRef{id.Ref})
}

// relink makes each of refs, a sorted list, a reference to d.
func (p *parser) relink(d *Definition, refs []NameRef) {
	for _, ref := range refs {
		id := p.pool.ident(ref)
		id.Def = d.ID
		id.Flags |= IdentUsed
		if id.Flags&IdentAssigned != 0 {
			if d.Kind == Const {
				p.rep.fatal(id.NamePos, End(id), ErrAssignConst, id.Raw)
			}
			d.Flags |= DefAssigned
		}
		if id.Flags&IdentDeoptimized != 0 {
			d.Flags |= DefDeoptimized
		}
		if d.Kind != Placeholder && id.Level > d.Level {
			d.Flags |= DefClosed
		}
	}
	if n := len(d.Uses); n == 0 || d.Uses[n-1] < refs[0] {
		d.Uses = append(d.Uses, refs...)
	} else {
		d.Uses = mergeUses(d.Uses, refs)
	}
}

// use resolves a reference to a name.
func (p *parser) use(id *Ident) {
	ctx := p.sc
	for s := ctx.topScopeStmt; s != nil; s = s.downScope {
		if s.kind == stmtWith {
			id.Flags |= IdentDeoptimized
			break
		}
		if s.declares(p, id.Name) {
			break
		}
	}
	var d *Definition
	if dn := ctx.decls.lookupFirst(id.Name); dn != 0 {
		d = p.pool.def(dn)
	} else if ph := ctx.lexdeps.lookup(id.Name); ph != 0 {
		d = p.pool.def(ph)
	} else {
		d = p.newDef(id.Name, Placeholder, id.NamePos)
		ctx.lexdeps.add(id.Name, d.ID)
	}
	p.linkUse(d, id)
}

// noteAssigned marks a reference as the target of an assignment.
func (p *parser) noteAssigned(id *Ident) {
	ctx := p.sc
	if id.Name == p.atomEval || id.Name == p.atomArguments {
		p.reportStrict(ctx, id.NamePos, End(id), ErrStrictAssign, id.Raw)
	}
	if id.Name == p.atomArguments && ctx.fn != nil {
		*ctx.flags |= FuncArgsReassigned
	}
	id.Flags |= IdentAssigned
	d := p.pool.def(id.Def)
	if d.Kind == Const {
		p.rep.fatal(id.NamePos, End(id), ErrAssignConst, id.Raw)
	}
	d.Flags |= DefAssigned
}

// define makes id the binding site of a new definition visible from
// block blockID on. Uses of a placeholder for the same name that occur
// within that block are taken over.
func (p *parser) define(id *Ident, kind DefKind, blockID int) *Definition {
	d := p.newDef(id.Name, kind, id.NamePos)
	d.Ident = id
	d.BlockID = blockID
	id.Flags |= IdentDefinition
	id.Def = d.ID
	p.capture(d, blockID)
	return d
}

// capture moves to d the uses of the current placeholder for d's name
// that occur in block blockID or a later one. Such uses are a suffix
// of the placeholder's uses.
func (p *parser) capture(d *Definition, blockID int) {
	ctx := p.sc
	ph := ctx.lexdeps.lookup(d.Name)
	if ph == 0 {
		return
	}
	pd := p.pool.def(ph)
	k := len(pd.Uses)
	for k > 0 && p.pool.ident(pd.Uses[k-1]).BlockID >= blockID {
		k--
	}
	if k < len(pd.Uses) {
		moved := pd.Uses[k:]
		pd.Uses = pd.Uses[:k:k]
		p.relink(d, moved)
	}
	if len(pd.Uses) == 0 {
		pd.Uses = nil
		pd.Flags |= DefDead
		ctx.lexdeps.remove(d.Name)
	}
}

// reportStrict reports a condition that is an error in strict mode code.
// Elsewhere it is a warning if StrictWarnings is set or the condition
// is always worth a warning.
func (p *parser) reportStrict(ctx *scopeContext, pos, end Position, code Code, args ...interface{}) {
	switch {
	case ctx.strict:
		p.rep.fatal(pos, end, code, args...)
	case p.opts.StrictWarnings || codes[code].always:
		p.rep.warn(pos, end, code, args...)
	}
}

// checkStrictBinding reports binding eval or arguments.
func (p *parser) checkStrictBinding(id *Ident) {
	if id.Name == p.atomEval || id.Name == p.atomArguments {
		p.reportStrict(p.sc, id.NamePos, End(id), ErrBadBinding, id.Raw)
	}
}

// declareVar adds a function-scoped definition to the current context.
func (p *parser) declareVar(d *Definition) {
	ctx := p.sc
	d.Slot = len(*ctx.vars)
	*ctx.vars = append(*ctx.vars, d.ID)
	if ctx.innermostWith() != nil {
		d.Flags |= DefDeoptimized
		*ctx.flags |= FuncMightAliasLocals
	}
}

// bindArg binds a formal parameter.
func (p *parser) bindArg(id *Ident) {
	ctx := p.sc
	if prev := ctx.decls.lookupFirst(id.Name); prev != 0 {
		if ctx.destructArg || p.pool.def(prev).Kind != Argument {
			p.rep.fatal(id.NamePos, End(id), ErrDuplicateParam, id.Raw)
		}
		ctx.dupArgs = append(ctx.dupArgs, id)
		d := p.define(id, Argument, ctx.bodyID)
		ctx.decls.updateFirst(id.Name, d.ID)
		p.addArg(d)
		return
	}
	d := p.define(id, Argument, ctx.bodyID)
	ctx.decls.addUnique(id.Name, d.ID)
	p.addArg(d)
}

func (p *parser) addArg(d *Definition) {
	fn := p.sc.fn
	d.Slot = len(fn.Args)
	fn.Args = append(fn.Args, d.ID)
}

// bindDestructuredArg binds a name within a destructuring parameter.
// Repeated names are always an error.
func (p *parser) bindDestructuredArg(id *Ident) {
	ctx := p.sc
	if len(ctx.dupArgs) > 0 {
		dup := ctx.dupArgs[0]
		p.rep.fatal(dup.NamePos, End(dup), ErrDuplicateParam, dup.Raw)
	}
	if ctx.decls.lookupFirst(id.Name) != 0 {
		p.rep.fatal(id.NamePos, End(id), ErrDuplicateParam, id.Raw)
	}
	d := p.define(id, Var, ctx.bodyID)
	ctx.decls.addUnique(id.Name, d.ID)
	p.declareVar(d)
}

// bindVarOrConst binds a var, a const, or a let at function body level.
func (p *parser) bindVarOrConst(id *Ident, kind DefKind, init bool) {
	ctx := p.sc
	p.checkStrictBinding(id)
	prevID := ctx.decls.lookupFirst(id.Name)
	if prevID == 0 {
		d := p.define(id, kind, ctx.bodyID)
		ctx.decls.addUnique(id.Name, d.ID)
		p.declareVar(d)
		if init {
			d.Flags |= DefInitialized
		}
		return
	}

	prev := p.pool.def(prevID)
	catchParam := prev.Flags&DefCatchParam != 0
	switch {
	case prev.Kind == Argument:
		if kind == Const {
			p.rep.fatal(id.NamePos, End(id), ErrRedeclaredParam, id.Raw)
		}
		if p.opts.StrictWarnings {
			p.rep.warn(id.NamePos, End(id), ErrVarHidesArg, id.Raw)
		}
	case kind != Var || prev.Kind == Const || prev.Kind == Let && !catchParam:
		p.rep.fatal(id.NamePos, End(id), ErrRedeclared, prev.Kind, id.Raw)
	case prev.Kind == Var || catchParam:
		// var over var: nothing to report
	case p.opts.StrictWarnings:
		p.rep.fatal(id.NamePos, End(id), ErrRedeclared, prev.Kind, id.Raw)
	default:
		p.rep.warn(id.NamePos, End(id), ErrRedeclared, prev.Kind, id.Raw)
	}

	// The declaration restates an existing binding: id refers to it.
	p.linkUse(prev, id)
	if init {
		p.noteAssigned(id)
	}
	if ctx.innermostWith() != nil {
		prev.Flags |= DefDeoptimized
		*ctx.flags |= FuncMightAliasLocals
	}
	if catchParam {
		p.hoistVar(id)
	}
}

// hoistVar makes sure a var declared within the scope of a catch
// parameter of the same name also exists at function level.
func (p *parser) hoistVar(id *Ident) {
	ctx := p.sc
	for _, did := range ctx.decls.lookupAll(id.Name) {
		if d := p.pool.def(did); d.Kind != Let && d.Kind != Const {
			return
		}
	}
	d := p.newDef(id.Name, Var, id.NamePos)
	ctx.decls.addHoist(id.Name, d.ID)
	p.declareVar(d)
	p.capture(d, ctx.bodyID)
}

// bindLet binds a let or const declared directly in scope statement s.
func (p *parser) bindLet(id *Ident, kind DefKind, s *stmtInfo) *Definition {
	ctx := p.sc
	p.checkStrictBinding(id)
	if s.declares(p, id.Name) {
		p.rep.fatal(id.NamePos, End(id), ErrRedeclared, kind, id.Raw)
	}
	d := p.define(id, kind, s.blockID)
	if prev := ctx.decls.lookupFirst(id.Name); prev != 0 {
		p.takeUses(p.pool.def(prev), d, s.blockID)
	}
	d.Slot = len(s.decls)
	s.decls = append(s.decls, d.ID)
	p.makeScope(s)
	ctx.decls.addShadow(id.Name, d.ID)
	return d
}

// takeUses moves to d the uses of the enclosing binding outer that
// occur in block blockID or a later one. The flags that outer derives
// from its uses are recomputed from those that remain.
func (p *parser) takeUses(outer, d *Definition, blockID int) {
	k := len(outer.Uses)
	for k > 0 && p.pool.ident(outer.Uses[k-1]).BlockID >= blockID {
		k--
	}
	if k == len(outer.Uses) {
		return
	}
	moved := outer.Uses[k:]
	outer.Uses = outer.Uses[:k:k]
	outer.Flags &^= DefClosed | DefAssigned
	for _, ref := range outer.Uses {
		id := p.pool.ident(ref)
		if id.Flags&IdentAssigned != 0 {
			outer.Flags |= DefAssigned
		}
		if id.Level > outer.Level {
			outer.Flags |= DefClosed
		}
	}
	p.relink(d, moved)
}

// bindFunctionName binds the name of a function statement.
func (p *parser) bindFunctionName(id *Ident) *Definition {
	ctx := p.sc
	inBlock := ctx.topStmt != nil
	if inBlock {
		p.reportStrict(ctx, id.NamePos, End(id), ErrFunctionInBlock)
		*ctx.flags |= FuncExtensibleScope | FuncHeavyweight
	}

	var d *Definition
	prevID := ctx.decls.lookupFirst(id.Name)
	if prevID == 0 {
		d = p.define(id, FunctionDef, ctx.bodyID)
		ctx.decls.addUnique(id.Name, d.ID)
		p.declareVar(d)
	} else {
		prev := p.pool.def(prevID)
		switch prev.Kind {
		case Const, Let:
			p.rep.fatal(id.NamePos, End(id), ErrRedeclared, prev.Kind, id.Raw)
		case Argument:
			*ctx.flags |= FuncFunStmtAliasesArg
			d = p.define(id, FunctionDef, ctx.bodyID)
			p.declareVar(d)
		default:
			if p.opts.StrictWarnings {
				p.rep.warn(id.NamePos, End(id), ErrRedeclared, prev.Kind, id.Raw)
			}
			d = p.define(id, FunctionDef, ctx.bodyID)
			d.Slot = prev.Slot
			(*ctx.vars)[prev.Slot] = d.ID
			p.makeDefIntoUse(prev, d)
		}
		ctx.decls.updateFirst(id.Name, d.ID)
	}
	if inBlock {
		d.Flags |= DefDeoptimized
	}
	return d
}

// makeDefIntoUse retires prev in favor of d: the binding site of prev
// and all its uses become uses of d.
func (p *parser) makeDefIntoUse(prev, d *Definition) {
	refs := prev.Uses
	if site := prev.Ident; site != nil {
		site.Flags &^= IdentDefinition
		if prev.Flags&DefInitialized != 0 {
			site.Flags |= IdentAssigned
		}
		refs = mergeUses(refs, []NameRef{site.Ref})
	}
	prev.Uses = nil
	prev.Flags |= DefDead
	if len(refs) > 0 {
		p.relink(d, refs)
	}
}

// enterFunction opens the scope of the function described by fn.
func (p *parser) enterFunction(fn *FunctionRecord) *scopeContext {
	parent := p.sc
	ctx := &scopeContext{
		parent: parent,
		fn:     fn,
		flags:  &fn.Flags,
		vars:   &fn.Vars,
		decls:  make(bindingTable),
		bodyID: p.newBlockID(),
		level:  parent.level + 1,
		strict: parent.strict,
	}
	fn.BodyID = ctx.bodyID
	fn.Level = ctx.level
	p.sc = ctx
	return ctx
}

// newFunctionRecord returns a record for a function nested in the
// current context.
func (p *parser) newFunctionRecord(kind FuncKind, name atom.Atom, n Node) *FunctionRecord {
	fn := node[FunctionRecord](p)
	fn.Kind = kind
	fn.Name = name
	fn.Node = n
	if parent := p.sc.fn; parent != nil {
		fn.Parent = parent
		parent.Children = append(parent.Children, fn)
	} else {
		p.file.Functions = append(p.file.Functions, fn)
	}
	return fn
}

// leaveFunction closes ctx, the current context. Placeholders left in
// it are resolved against the enclosing context, or handed to it.
func (p *parser) leaveFunction(ctx *scopeContext, callee *Ident) {
	fn := ctx.fn
	parent := ctx.parent
	real := fn.Kind != FuncGenexp && fn.Kind != FuncComprehension

	if real {
		p.checkStrictParameters(ctx, callee)
	}
	if fn.Flags&FuncGenerator != 0 && ctx.returnValue.IsValid() {
		p.rep.fatal(ctx.returnValue, ctx.returnValue, ErrGeneratorReturn, p.atoms.String(fn.Name))
	}
	if ctx.strict {
		fn.Flags |= FuncStrict
	}

	// A named function expression binds its own name.
	if callee != nil && fn.Kind != FuncStatement {
		d := p.define(callee, Callee, ctx.bodyID)
		fn.Callee = d.ID
	}

	// An unresolved arguments refers to the arguments object.
	if ph := ctx.lexdeps.lookup(p.atomArguments); ph != 0 {
		switch {
		case fn.Kind == FuncGenexp:
			pd := p.pool.def(ph)
			p.rep.fatal(pd.Pos, pd.Pos, ErrGenexpArguments)
		case real:
			pd := p.pool.def(ph)
			if fn.Flags&FuncHasRest != 0 {
				p.rep.fatal(pd.Pos, pd.Pos, ErrRestArguments)
			}
			d := p.newDef(p.atomArguments, Arguments, pd.Pos)
			p.capture(d, ctx.bodyID)
			fn.ArgsObj = d.ID
			fn.Flags |= FuncUsesArguments
		}
	}
	if real {
		if fn.Flags&FuncUsesArguments != 0 && fn.Flags&FuncBindingsAccessedDynamically != 0 {
			fn.Flags |= FuncDefinitelyNeedsArgsObj
		}
		if ctx.strict {
			for _, a := range fn.Args {
				if a != 0 && p.pool.def(a).Flags&DefAssigned != 0 {
					fn.Flags |= FuncDefinitelyNeedsArgsObj
				}
			}
		}
	}

	with := parent.innermostWith()
	for _, name := range ctx.lexdeps.names() {
		pd := p.pool.def(ctx.lexdeps.lookup(name))
		uses := pd.Uses
		fn.Upvars = append(fn.Upvars, Upvar{Name: name, Use: uses[0]})

		outerID := parent.decls.lookupFirst(name)
		deopt := fn.Flags&FuncBindingsAccessedDynamically != 0 ||
			with != nil && (outerID == 0 || p.pool.def(outerID).Pos.isBefore(with.start))
		if deopt {
			for _, ref := range uses {
				p.pool.ident(ref).Flags |= IdentDeoptimized
			}
		}

		pd.Uses = nil
		pd.Flags |= DefDead
		ctx.lexdeps.remove(name)
		if outerID != 0 {
			p.relink(p.pool.def(outerID), uses)
			continue
		}
		outer := parent.lexdeps.lookup(name)
		if outer == 0 {
			p.sc = parent
			od := p.newDef(name, Placeholder, pd.Pos)
			p.sc = ctx
			parent.lexdeps.add(name, od.ID)
			outer = od.ID
		}
		p.relink(p.pool.def(outer), uses)
	}

	p.log.Debug("leave function",
		slog.String("name", p.atoms.String(fn.Name)),
		slog.String("kind", fn.Kind.String()),
		slog.Int("level", fn.Level),
		slog.Int("upvars", len(fn.Upvars)),
		slog.Any("flags", fn.Flags.Names()))

	p.sc = parent
	p.in.setStrict(parent.strict)
}

// checkStrictParameters rechecks the parameters of a function once the
// strictness of its body is known.
func (p *parser) checkStrictParameters(ctx *scopeContext, name *Ident) {
	if name != nil {
		p.checkBindable(ctx, name)
	}
	for _, a := range ctx.fn.Args {
		if a != 0 {
			p.checkBindable(ctx, p.pool.def(a).Ident)
		}
	}
	for _, dup := range ctx.dupArgs {
		p.reportStrict(ctx, dup.NamePos, End(dup), ErrDuplicateParam, dup.Raw)
	}
}

func (p *parser) checkBindable(ctx *scopeContext, id *Ident) {
	if id.Name == p.atomEval || id.Name == p.atomArguments || strictReserved[p.atoms.String(id.Name)] {
		p.reportStrict(ctx, id.NamePos, End(id), ErrBadBinding, id.Raw)
	}
}

// finishProgram records the bindings of the top level.
// Names still unresolved are free.
func (p *parser) finishProgram() {
	ctx := p.top
	for _, name := range ctx.lexdeps.names() {
		p.file.FreeVars = append(p.file.FreeVars, ctx.lexdeps.lookup(name))
	}
	if ctx.strict {
		p.file.Flags |= FuncStrict
	}
	p.file.Strict = ctx.strict
	slices.Sort(p.file.FreeVars)
}
