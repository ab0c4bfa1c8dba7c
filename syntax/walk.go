// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Walk traverses a syntax tree in depth-first order.
// It starts by calling f(n); n must not be nil.
// If f returns true, Walk calls itself
// recursively for each non-nil child of n.
// Walk then calls f(nil).
func Walk(n Node, f func(Node) bool) {
	if n == nil {
		panic("nil")
	}
	if !f(n) {
		return
	}

	switch n := n.(type) {
	case *File:
		walkStmts(n.Stmts, f)

	case *ExprStmt:
		Walk(n.X, f)

	case *VarDecl:
		for _, spec := range n.List {
			Walk(spec, f)
		}

	case *VarSpec:
		Walk(n.Target, f)
		if n.Init != nil {
			Walk(n.Init, f)
		}

	case *FuncDecl:
		walkFunction(&n.Function, f)

	case *ReturnStmt:
		if n.Result != nil {
			Walk(n.Result, f)
		}

	case *IfStmt:
		Walk(n.Cond, f)
		Walk(n.Then, f)
		if n.Else != nil {
			Walk(n.Else, f)
		}

	case *BlockStmt:
		walkStmts(n.Stmts, f)

	case *WhileStmt:
		Walk(n.Cond, f)
		Walk(n.Body, f)

	case *DoWhileStmt:
		Walk(n.Body, f)
		Walk(n.Cond, f)

	case *ForStmt:
		if n.Init != nil {
			Walk(n.Init, f)
		}
		if n.Cond != nil {
			Walk(n.Cond, f)
		}
		if n.Post != nil {
			Walk(n.Post, f)
		}
		Walk(n.Body, f)

	case *ForInStmt:
		Walk(n.Target, f)
		Walk(n.X, f)
		Walk(n.Body, f)

	case *SwitchStmt:
		Walk(n.Tag, f)
		for _, c := range n.Cases {
			Walk(c, f)
		}

	case *CaseClause:
		if n.Value != nil {
			Walk(n.Value, f)
		}
		walkStmts(n.Body, f)

	case *TryStmt:
		Walk(n.Body, f)
		for _, c := range n.Catches {
			Walk(c, f)
		}
		if n.Finally != nil {
			Walk(n.Finally, f)
		}

	case *CatchClause:
		Walk(n.Param, f)
		if n.Guard != nil {
			Walk(n.Guard, f)
		}
		Walk(n.Body, f)

	case *WithStmt:
		Walk(n.Object, f)
		Walk(n.Body, f)

	case *LabeledStmt:
		Walk(n.Body, f)

	case *ThrowStmt:
		Walk(n.X, f)

	case *LetStmt:
		for _, spec := range n.Vars {
			Walk(spec, f)
		}
		Walk(n.Body, f)

	case *SeqStmt:
		walkStmts(n.List, f)

	case *BranchStmt, *DebuggerStmt, *EmptyStmt, *Ident, *Literal:
		// no-op

	case *TemplateExpr:
		for _, x := range n.Exprs {
			Walk(x, f)
		}

	case *ArrayExpr:
		for _, x := range n.List {
			if x != nil {
				Walk(x, f)
			}
		}

	case *ObjectExpr:
		for _, prop := range n.List {
			Walk(prop, f)
		}

	case *Property:
		// In {x}, key and value are the same text.
		if n.Kind != PropShorthand {
			Walk(n.Key, f)
		}
		Walk(n.Value, f)

	case *FuncExpr:
		walkFunction(&n.Function, f)

	case *UnaryExpr:
		Walk(n.X, f)

	case *UpdateExpr:
		Walk(n.X, f)

	case *BinaryExpr:
		Walk(n.X, f)
		Walk(n.Y, f)

	case *AssignExpr:
		Walk(n.LHS, f)
		Walk(n.RHS, f)

	case *CondExpr:
		Walk(n.Cond, f)
		Walk(n.True, f)
		Walk(n.False, f)

	case *SeqExpr:
		for _, x := range n.List {
			Walk(x, f)
		}

	case *CallExpr:
		Walk(n.Fn, f)
		for _, arg := range n.Args {
			Walk(arg, f)
		}

	case *NewExpr:
		Walk(n.Fn, f)
		for _, arg := range n.Args {
			Walk(arg, f)
		}

	case *DotExpr:
		Walk(n.X, f)

	case *IndexExpr:
		Walk(n.X, f)
		Walk(n.Y, f)

	case *ParenExpr:
		Walk(n.X, f)

	case *Comprehension:
		Walk(n.Body, f)
		for _, c := range n.Clauses {
			Walk(c, f)
		}

	case *ForClause:
		Walk(n.Target, f)
		Walk(n.X, f)

	case *IfClause:
		Walk(n.Cond, f)

	case *LetExpr:
		for _, spec := range n.Vars {
			Walk(spec, f)
		}
		Walk(n.Body, f)

	case *YieldExpr:
		if n.X != nil {
			Walk(n.X, f)
		}

	default:
		panic(n)
	}

	f(nil)
}

func walkStmts(stmts []Stmt, f func(Node) bool) {
	for _, stmt := range stmts {
		Walk(stmt, f)
	}
}

func walkFunction(fn *Function, f func(Node) bool) {
	if fn.Name != nil {
		Walk(fn.Name, f)
	}
	for _, param := range fn.Params {
		Walk(param, f)
	}
	if fn.Rest != nil {
		Walk(fn.Rest, f)
	}
	walkStmts(fn.Body, f)
	if fn.ExprBody != nil {
		Walk(fn.ExprBody, f)
	}
}
