// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// JavaScript quoted string syntax.

import (
	"strings"
	"unicode/utf8"
)

const hex = "0123456789abcdef"

// Quote returns a double-quoted JavaScript string literal denoting s.
// Printable characters other than '"' and '\\' appear literally;
// control characters and line separators are escaped.
func Quote(s string) string {
	var buf strings.Builder
	buf.Grow(len(s) + 2)
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && n == 1 {
			// Not UTF-8: the byte stands for the code point of its value.
			buf.WriteString(`\x`)
			buf.WriteByte(hex[s[i]>>4])
			buf.WriteByte(hex[s[i]&0xF])
			i++
			continue
		}
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\v':
			buf.WriteString(`\v`)
		case '\u2028', '\u2029':
			buf.WriteString(`\u`)
			for shift := 12; shift >= 0; shift -= 4 {
				buf.WriteByte(hex[(r>>shift)&0xF])
			}
		default:
			if r < 0x20 || r == 0x7f {
				buf.WriteString(`\x`)
				buf.WriteByte(hex[r>>4])
				buf.WriteByte(hex[r&0xF])
			} else {
				buf.WriteString(s[i : i+n])
			}
		}
		i += n
	}
	buf.WriteByte('"')
	return buf.String()
}
