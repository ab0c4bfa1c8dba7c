// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dump

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/types/known/structpb"
)

// A Format is an output encoding.
type Format uint8

const (
	Tree  Format = iota // indented, one node per line
	SExpr               // (Type Field=value ...) on one line
	JSON                // protojson
	Text                // prototext
)

var formatNames = [...]string{
	Tree:  "tree",
	SExpr: "sexpr",
	JSON:  "json",
	Text:  "text",
}

func (f Format) String() string { return formatNames[f] }

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	for i, s := range formatNames {
		if s == name {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("unknown output format %q", name)
}

// Write writes v to w in the given format, followed by a newline.
func Write(w io.Writer, v *structpb.Value, format Format) error {
	var data []byte
	switch format {
	case JSON:
		var err error
		if data, err = (protojson.MarshalOptions{Multiline: true, Indent: "\t"}).Marshal(v); err != nil {
			return err
		}
	case Text:
		var err error
		if data, err = (prototext.MarshalOptions{Multiline: true, Indent: "\t"}).Marshal(v); err != nil {
			return err
		}
	case SExpr:
		var buf bytes.Buffer
		writeSExpr(&buf, v)
		data = buf.Bytes()
	default:
		var buf bytes.Buffer
		writeTree(&buf, v, 0)
		data = bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// String returns v in S-expression form.
func String(v *structpb.Value) string {
	var buf bytes.Buffer
	writeSExpr(&buf, v)
	return buf.String()
}

// keys returns the field names of s other than "type", sorted.
func keys(s *structpb.Struct) []string {
	var ks []string
	for k := range s.GetFields() {
		if k != "type" {
			ks = append(ks, k)
		}
	}
	slices.Sort(ks)
	return ks
}

func writeSExpr(out *bytes.Buffer, v *structpb.Value) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StructValue:
		out.WriteByte('(')
		out.WriteString(k.StructValue.GetFields()["type"].GetStringValue())
		for _, key := range keys(k.StructValue) {
			fmt.Fprintf(out, " %s=", key)
			writeSExpr(out, k.StructValue.Fields[key])
		}
		out.WriteByte(')')
	case *structpb.Value_ListValue:
		out.WriteByte('(')
		for i, elem := range k.ListValue.GetValues() {
			if i > 0 {
				out.WriteByte(' ')
			}
			writeSExpr(out, elem)
		}
		out.WriteByte(')')
	default:
		out.WriteString(scalar(v))
	}
}

func scalar(v *structpb.Value) string {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return strconv.Quote(k.StringValue)
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(k.NumberValue, 'g', -1, 64)
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(k.BoolValue)
	}
	return "null"
}

// isFlat reports whether v prints on one line: a scalar, or a list of
// scalars.
func isFlat(v *structpb.Value) bool {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StructValue:
		return false
	case *structpb.Value_ListValue:
		for _, elem := range k.ListValue.GetValues() {
			if !isFlat(elem) || elem.GetListValue() != nil {
				return false
			}
		}
	}
	return true
}

func writeTree(out *bytes.Buffer, v *structpb.Value, depth int) {
	indent := func(d int) {
		for range d {
			out.WriteString("  ")
		}
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StructValue:
		indent(depth)
		if t := k.StructValue.GetFields()["type"]; t != nil {
			out.WriteString(t.GetStringValue())
		} else {
			out.WriteByte('.')
		}
		var nested []string
		for _, key := range keys(k.StructValue) {
			if f := k.StructValue.Fields[key]; isFlat(f) {
				fmt.Fprintf(out, " %s=", key)
				writeSExpr(out, f)
			} else {
				nested = append(nested, key)
			}
		}
		out.WriteByte('\n')
		for _, key := range nested {
			indent(depth + 1)
			fmt.Fprintf(out, "%s:\n", key)
			writeTree(out, k.StructValue.Fields[key], depth+2)
		}
	case *structpb.Value_ListValue:
		for _, elem := range k.ListValue.GetValues() {
			writeTree(out, elem, depth)
		}
	default:
		indent(depth)
		out.WriteString(scalar(v))
		out.WriteByte('\n')
	}
}
