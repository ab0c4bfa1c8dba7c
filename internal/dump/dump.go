// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dump converts parsed files to protocol buffer Values, for
// printing as JSON, text format, an indented tree or an S-expression.
//
// A syntax node becomes a Struct whose "type" field names the node
// type and whose other fields are its non-zero exported fields.
// Identifiers carry their binding: the kind and id of the definition
// they bind or refer to.
package dump // import "go.jsfront.dev/internal/dump"

import (
	"fmt"
	"reflect"

	"google.golang.org/protobuf/types/known/structpb"

	"go.jsfront.dev/syntax"
)

// Options controls what a conversion includes.
type Options struct {
	Positions bool // include line:col positions of nodes
}

type converter struct {
	file *syntax.File
	opts Options
	recs map[*syntax.FunctionRecord]int // preorder index
}

func newConverter(f *syntax.File, opts *Options) *converter {
	c := &converter{file: f, recs: make(map[*syntax.FunctionRecord]int)}
	if opts != nil {
		c.opts = *opts
	}
	var number func([]*syntax.FunctionRecord)
	number = func(recs []*syntax.FunctionRecord) {
		for _, r := range recs {
			c.recs[r] = len(c.recs)
			number(r.Children)
		}
	}
	number(f.Functions)
	return c
}

// File returns the whole of f: its statements, function records,
// top-level and free names, and diagnostics.
func File(f *syntax.File, opts *Options) *structpb.Value {
	c := newConverter(f, opts)
	stmts := make([]*structpb.Value, len(f.Stmts))
	for i, stmt := range f.Stmts {
		stmts[i] = c.node(stmt)
	}
	fields := map[string]*structpb.Value{
		"type":      structpb.NewStringValue("File"),
		"path":      structpb.NewStringValue(f.Path),
		"body":      list(stmts),
		"functions": c.functions(),
		"vars":      c.defNames(f.Vars),
		"free":      c.defNames(f.FreeVars),
	}
	if f.Strict {
		fields["strict"] = structpb.NewBoolValue(true)
	}
	if names := f.Flags.Names(); len(names) > 0 {
		fields["flags"] = stringList(names)
	}
	if len(f.Diagnostics) > 0 {
		fields["diagnostics"] = Diagnostics(f.Diagnostics)
	}
	return object(fields)
}

// Node returns the subtree rooted at n, which belongs to f.
func Node(f *syntax.File, n syntax.Node, opts *Options) *structpb.Value {
	return newConverter(f, opts).node(n)
}

// Functions returns the function records of f in preorder.
func Functions(f *syntax.File) *structpb.Value {
	return newConverter(f, nil).functions()
}

// Diagnostics returns a list of the diagnostics.
func Diagnostics(diags []syntax.Diagnostic) *structpb.Value {
	vals := make([]*structpb.Value, len(diags))
	for i, d := range diags {
		vals[i] = object(map[string]*structpb.Value{
			"severity": structpb.NewStringValue(d.Severity.String()),
			"kind":     structpb.NewStringValue(d.Kind.String()),
			"code":     structpb.NewNumberValue(float64(d.Code)),
			"pos":      structpb.NewStringValue(d.Pos.String()),
			"msg":      structpb.NewStringValue(d.Msg),
		})
	}
	return list(vals)
}

// Tokens returns a list of the tokens.
func Tokens(toks []syntax.TokenInfo) *structpb.Value {
	vals := make([]*structpb.Value, len(toks))
	for i, tok := range toks {
		fields := map[string]*structpb.Value{
			"kind": structpb.NewStringValue(tok.Kind.String()),
			"pos":  structpb.NewStringValue(lineCol(tok.Pos)),
		}
		if tok.Raw != "" {
			fields["raw"] = structpb.NewStringValue(tok.Raw)
		}
		if tok.NewlineBefore {
			fields["newline"] = structpb.NewBoolValue(true)
		}
		vals[i] = object(fields)
	}
	return list(vals)
}

func (c *converter) functions() *structpb.Value {
	vals := make([]*structpb.Value, len(c.recs))
	for r, i := range c.recs {
		fields := map[string]*structpb.Value{
			"index": structpb.NewNumberValue(float64(i)),
			"kind":  structpb.NewStringValue(r.Kind.String()),
			"level": structpb.NewNumberValue(float64(r.Level)),
		}
		if r.Name != 0 {
			fields["name"] = structpb.NewStringValue(c.file.Name(r.Name))
		}
		if r.Parent != nil {
			fields["parent"] = structpb.NewNumberValue(float64(c.recs[r.Parent]))
		}
		if names := r.Flags.Names(); len(names) > 0 {
			fields["flags"] = stringList(names)
		}
		if len(r.Args) > 0 {
			fields["args"] = c.defNames(r.Args)
		}
		if len(r.Vars) > 0 {
			fields["vars"] = c.defNames(r.Vars)
		}
		if len(r.Upvars) > 0 {
			names := make([]string, len(r.Upvars))
			for j, u := range r.Upvars {
				names[j] = c.file.Name(u.Name)
			}
			fields["upvars"] = stringList(names)
		}
		if r.Callee != 0 {
			fields["callee"] = c.defNames([]syntax.DefID{r.Callee}).GetListValue().Values[0]
		}
		if r.ArgsObj != 0 {
			fields["arguments"] = structpb.NewBoolValue(true)
		}
		vals[i] = object(fields)
	}
	return list(vals)
}

// defNames names each definition; anonymous ones, such as
// destructured parameters, appear as "".
func (c *converter) defNames(ids []syntax.DefID) *structpb.Value {
	names := make([]string, len(ids))
	for i, id := range ids {
		if d := c.file.Definition(id); d.Name != 0 {
			names[i] = c.file.Name(d.Name)
		}
	}
	return stringList(names)
}

var (
	positionType = reflect.TypeFor[syntax.Position]()
	recordType   = reflect.TypeFor[*syntax.FunctionRecord]()
	stringerType = reflect.TypeFor[fmt.Stringer]()
)

var propKinds = [...]string{
	syntax.PropInit:      "init",
	syntax.PropGet:       "get",
	syntax.PropSet:       "set",
	syntax.PropShorthand: "shorthand",
}

func (c *converter) node(n syntax.Node) *structpb.Value {
	if id, ok := n.(*syntax.Ident); ok {
		return c.ident(id)
	}
	return c.value(reflect.ValueOf(n))
}

func (c *converter) ident(id *syntax.Ident) *structpb.Value {
	fields := map[string]*structpb.Value{
		"type": structpb.NewStringValue("Ident"),
		"name": structpb.NewStringValue(id.Raw),
	}
	if d := c.file.Def(id); d != nil {
		kind := d.Kind.String()
		if d.IsPlaceholder() {
			kind = "free"
		}
		fields["def"] = structpb.NewStringValue(fmt.Sprintf("%s#%d", kind, d.ID))
	}
	var flags []string
	if id.Flags&syntax.IdentDefinition != 0 {
		flags = append(flags, "definition")
	}
	if id.Flags&syntax.IdentAssigned != 0 {
		flags = append(flags, "assigned")
	}
	if id.Flags&syntax.IdentDeoptimized != 0 {
		flags = append(flags, "deoptimized")
	}
	if len(flags) > 0 {
		fields["flags"] = stringList(flags)
	}
	if c.opts.Positions {
		fields["pos"] = structpb.NewStringValue(lineCol(id.NamePos))
	}
	return object(fields)
}

// value converts a node, or a field of one.
func (c *converter) value(v reflect.Value) *structpb.Value {
	switch v.Type() {
	case positionType:
		return structpb.NewStringValue(lineCol(v.Interface().(syntax.Position)))
	case recordType:
		return structpb.NewNumberValue(float64(c.recs[v.Interface().(*syntax.FunctionRecord)]))
	}
	if v.Kind() != reflect.Interface && v.Type().Implements(stringerType) {
		return structpb.NewStringValue(v.Interface().(fmt.Stringer).String())
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return structpb.NewNullValue()
		}
		if n, ok := v.Interface().(syntax.Node); ok {
			return c.node(n)
		}
		return c.value(v.Elem())
	case reflect.Pointer:
		if v.IsNil() {
			return structpb.NewNullValue()
		}
		if id, ok := v.Interface().(*syntax.Ident); ok {
			return c.ident(id)
		}
		fields := map[string]*structpb.Value{
			"type": structpb.NewStringValue(v.Elem().Type().Name()),
		}
		c.fields(v.Elem(), fields)
		return object(fields)
	case reflect.Slice:
		vals := make([]*structpb.Value, v.Len())
		for i := range vals {
			vals[i] = c.value(v.Index(i))
		}
		return list(vals)
	case reflect.String:
		return structpb.NewStringValue(v.String())
	case reflect.Bool:
		return structpb.NewBoolValue(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return structpb.NewNumberValue(float64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if k, ok := v.Interface().(syntax.PropKind); ok {
			return structpb.NewStringValue(propKinds[k])
		}
		return structpb.NewNumberValue(float64(v.Uint()))
	case reflect.Float32, reflect.Float64:
		return structpb.NewNumberValue(v.Float())
	}
	panic(fmt.Sprintf("dump: unexpected %s", v.Type()))
}

// fields adds the non-zero exported fields of the struct v,
// flattening embedded structs.
func (c *converter) fields(v reflect.Value, out map[string]*structpb.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		ft := t.Field(i)
		f := v.Field(i)
		switch {
		case !ft.IsExported(), f.IsZero():
			continue
		case ft.Anonymous:
			c.fields(f, out)
			continue
		case ft.Type == positionType && !c.opts.Positions:
			continue
		case ft.Type.PkgPath() == atomPkg:
			// names are also present as Raw text
			continue
		}
		out[ft.Name] = c.value(f)
	}
}

const atomPkg = "go.jsfront.dev/atom"

func lineCol(pos syntax.Position) string {
	return fmt.Sprintf("%d:%d", pos.Line, pos.Col)
}

func object(fields map[string]*structpb.Value) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: fields})
}

func list(vals []*structpb.Value) *structpb.Value {
	return structpb.NewListValue(&structpb.ListValue{Values: vals})
}

func stringList(ss []string) *structpb.Value {
	vals := make([]*structpb.Value, len(ss))
	for i, s := range ss {
		vals[i] = structpb.NewStringValue(s)
	}
	return list(vals)
}
