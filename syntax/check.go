// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"errors"
	"fmt"
)

const maxCheckErrors = 10

// CheckInvariants verifies the binding annotations of a parsed file:
//
//   - every identifier is the binding site of its definition or one of
//     its uses, but not both;
//   - the uses of a definition are in source order and refer back to it;
//   - dead definitions have no uses;
//   - a use occurs in the block of its definition or a nested one, at the
//     same or a deeper function level, and a use from a deeper level
//     marks a real definition closed;
//   - statements of one list do not overlap.
//
// It returns nil if all hold, or an error describing the violations.
func (x *File) CheckInvariants() error {
	c := checker{f: x}
	c.checkIdents()
	c.checkDefs()
	Walk(x, func(n Node) bool {
		switch n := n.(type) {
		case *File:
			c.checkStmts(n.Stmts)
		case *BlockStmt:
			c.checkStmts(n.Stmts)
		case *CaseClause:
			c.checkStmts(n.Body)
		case *FuncDecl:
			c.checkStmts(n.Body)
		case *FuncExpr:
			c.checkStmts(n.Body)
		}
		return len(c.errs) < maxCheckErrors
	})
	return errors.Join(c.errs...)
}

type checker struct {
	f    *File
	errs []error
}

func (c *checker) errorf(pos Position, format string, args ...interface{}) {
	if len(c.errs) < maxCheckErrors {
		c.errs = append(c.errs, fmt.Errorf("%s: %s", pos, fmt.Sprintf(format, args...)))
	}
}

func (c *checker) checkIdents() {
	pool := c.f.pool
	for ref := NameRef(1); int(ref) < len(pool.names); ref++ {
		id := pool.ident(ref)
		if id.Ref != ref {
			c.errorf(id.NamePos, "%s: ref %d, want %d", id.Raw, id.Ref, ref)
		}
		if id.Def == 0 {
			c.errorf(id.NamePos, "%s: unresolved", id.Raw)
			continue
		}
		d := pool.def(id.Def)
		if d.Name != id.Name {
			c.errorf(id.NamePos, "%s: bound to definition of %s", id.Raw, c.f.Name(d.Name))
		}
		isSite := d.Ident == id
		isUse := containsRef(d.Uses, ref)
		switch {
		case isSite && isUse:
			c.errorf(id.NamePos, "%s: both binding site and use", id.Raw)
		case !isSite && !isUse:
			c.errorf(id.NamePos, "%s: neither binding site nor use of its definition", id.Raw)
		case isSite != (id.Flags&IdentDefinition != 0):
			c.errorf(id.NamePos, "%s: definition flag disagrees with binding site", id.Raw)
		}
		if isUse {
			if id.BlockID < d.BlockID {
				c.errorf(id.NamePos, "%s: used in block %d outside its scope %d", id.Raw, id.BlockID, d.BlockID)
			}
			if id.Level < d.Level {
				c.errorf(id.NamePos, "%s: used at level %d, defined at %d", id.Raw, id.Level, d.Level)
			}
			if id.Level > d.Level && !d.IsPlaceholder() && d.Flags&DefClosed == 0 {
				c.errorf(id.NamePos, "%s: used from an inner function but not closed", id.Raw)
			}
		}
	}
}

func (c *checker) checkDefs() {
	pool := c.f.pool
	for did := DefID(1); int(did) < len(pool.defs); did++ {
		d := pool.def(did)
		if d.Flags&DefDead != 0 && len(d.Uses) > 0 {
			c.errorf(d.Pos, "dead definition of %s has %d uses", c.f.Name(d.Name), len(d.Uses))
		}
		for i, ref := range d.Uses {
			if i > 0 && d.Uses[i-1] >= ref {
				c.errorf(d.Pos, "uses of %s out of order", c.f.Name(d.Name))
				break
			}
			if id := pool.ident(ref); id.Def != did {
				c.errorf(id.NamePos, "%s: listed as a use of definition %d but bound to %d", id.Raw, did, id.Def)
			}
		}
	}
}

func (c *checker) checkStmts(stmts []Stmt) {
	for i := 1; i < len(stmts); i++ {
		_, prevEnd := stmts[i-1].Span()
		start, _ := stmts[i].Span()
		if start.Offset < prevEnd.Offset {
			c.errorf(start, "statement overlaps the previous one, which ends at %s", prevEnd)
		}
	}
}

func containsRef(refs []NameRef, ref NameRef) bool {
	lo, hi := 0, len(refs)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case refs[mid] == ref:
			return true
		case refs[mid] < ref:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return false
}
