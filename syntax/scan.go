// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// A lexical scanner for JavaScript.

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.jsfront.dev/atom"
)

// A scanMode selects context-sensitive tokenization.
type scanMode uint8

const (
	modeOperand       scanMode = 1 << iota // '/' begins a regular expression
	modeKeywordIsName                      // reserved words scan as NAME
)

// A token is one scanned lexical unit plus its payload.
type token struct {
	kind     Token
	pos, end Position
	raw      string
	atom     atom.Atom // NAME and keywords
	str      string    // name, decoded string or template piece, regexp body
	num      float64   // NUMBER
	flags    string    // REGEXP flags
	nlBefore bool      // a line terminator precedes the token
	octal    bool      // legacy octal literal or escape
	escaped  bool      // a backslash escape occurred
	mode     scanMode  // mode the token was scanned in
	strict   bool      // strictness the token was scanned in
}

// sensitive reports whether rescanning t under a different mode or
// strictness might produce a different token.
func (t *token) sensitive() bool {
	switch t.kind {
	case DIV, DIV_ASSIGN, REGEXP, NAME, RESERVED:
		return true
	case NUMBER, STRING:
		return t.octal
	case TEMPLATE_MIDDLE, TEMPLATE_TAIL:
		return false // produced by resumeTemplate; cannot be rescanned from pos
	}
	return t.kind.isKeyword()
}

const ringSize = 4 // current token plus up to three of lookahead

type scanner struct {
	rep            *reporter
	atoms          *atom.Table
	filename       *string
	src            []byte
	offset         int   // byte offset of next rune
	line, col      int32 // position of next rune
	strict         bool
	legacy         bool
	strictWarnings bool
	sawOctalEscape bool // an octal escape was scanned since the last reset
	sawToken       bool

	ring      [ringSize]token
	cursor    int // ring index of the current token
	lookahead int // number of tokens buffered after cursor
}

func newScanner(filename string, src interface{}, startLine int, rep *reporter, atoms *atom.Table) (*scanner, error) {
	data, err := readSource(filename, src)
	if err != nil {
		return nil, err
	}
	if startLine <= 0 {
		startLine = 1
	}
	sc := &scanner{
		rep:      rep,
		atoms:    atoms,
		filename: &filename,
		src:      data,
		line:     int32(startLine),
		col:      1,
	}
	sc.ring[0] = token{kind: ILLEGAL, pos: sc.position(), end: sc.position()}
	return sc, nil
}

func readSource(filename string, src interface{}) ([]byte, error) {
	switch src := src.(type) {
	case string:
		return []byte(src), nil
	case []byte:
		return src, nil
	case io.Reader:
		data, err := io.ReadAll(src)
		if err != nil {
			err = &os.PathError{Op: "read", Path: filename, Err: err}
			return nil, err
		}
		return data, nil
	case nil:
		return os.ReadFile(filename)
	default:
		return nil, fmt.Errorf("invalid source: %T", src)
	}
}

func (sc *scanner) position() Position {
	return Position{file: sc.filename, Line: sc.line, Col: sc.col, Offset: int32(sc.offset)}
}

func (sc *scanner) seek(pos Position) {
	sc.offset = int(pos.Offset)
	sc.line = pos.Line
	sc.col = pos.Col
}

func (sc *scanner) error(pos Position, code Code, args ...interface{}) {
	sc.rep.fatal(pos, sc.position(), code, args...)
}

// setStrict changes the strictness of subsequently scanned tokens.
// Buffered lookahead is rescanned lazily as it is consumed.
func (sc *scanner) setStrict(strict bool) { sc.strict = strict }

// cur returns the most recently consumed token.
func (sc *scanner) cur() *token { return &sc.ring[sc.cursor] }

// next consumes and returns the next token, scanned in the given mode.
func (sc *scanner) next(mode scanMode) *token {
	sc.cursor = (sc.cursor + 1) % ringSize
	t := &sc.ring[sc.cursor]
	if sc.lookahead > 0 {
		sc.lookahead--
		if t.mode != mode || t.strict != sc.strict {
			if t.sensitive() {
				nl := t.nlBefore
				sc.lookahead = 0
				sc.seek(t.pos)
				sc.scan(t, mode)
				t.nlBefore = nl
			} else {
				t.mode, t.strict = mode, sc.strict
			}
		}
		return t
	}
	sc.scan(t, mode)
	return t
}

// unget pushes back the current token.
func (sc *scanner) unget() {
	sc.lookahead++
	if sc.lookahead >= ringSize {
		panic("syntax: token lookahead overflow")
	}
	sc.cursor = (sc.cursor + ringSize - 1) % ringSize
}

// peek returns the next token without consuming it.
func (sc *scanner) peek(mode scanMode) *token {
	t := sc.next(mode)
	sc.unget()
	return t
}

// peekSameLine is like peek but returns EOL if a line terminator
// precedes the next token.
func (sc *scanner) peekSameLine(mode scanMode) Token {
	t := sc.peek(mode)
	if t.nlBefore {
		return EOL
	}
	return t.kind
}

// match consumes the next token if it has the given kind.
func (sc *scanner) match(kind Token, mode scanMode) bool {
	if sc.next(mode).kind == kind {
		return true
	}
	sc.unget()
	return false
}

// resumeTemplate consumes the '}' that closes a template substitution
// and scans the template piece that follows it.
func (sc *scanner) resumeTemplate() *token {
	t := sc.next(0)
	if t.kind != RBRACE {
		sc.rep.fatal(t.pos, t.end, ErrWant, t.kind.GoString(), RBRACE.GoString())
	}
	sc.lookahead = 0
	sc.seek(t.end)
	pos, nl := t.pos, t.nlBefore
	*t = token{pos: pos, nlBefore: nl, strict: sc.strict}
	sc.scanTemplate(t, false)
	sc.finish(t, int(pos.Offset))
	return t
}

// scan reads the next token from the input into t.
func (sc *scanner) scan(t *token, mode scanMode) {
	nl := sc.skipSpace()
	*t = token{nlBefore: nl, mode: mode, strict: sc.strict}
	t.pos = sc.position()
	start := sc.offset
	sc.sawToken = true
	defer sc.finish(t, start)

	c := sc.peekRune()
	switch {
	case c == eofRune:
		t.kind = EOF
		return
	case isIdentStart(c) || c == '\\':
		sc.scanIdent(t, mode)
		return
	case isDigit(c) || c == '.' && isDigit(rune(sc.peekByte(1))):
		sc.scanNumber(t)
		return
	case c == '"' || c == '\'':
		sc.scanString(t)
		return
	case c == '`':
		sc.readRune()
		sc.scanTemplate(t, true)
		return
	case c == '/' && mode&modeOperand != 0:
		sc.scanRegexp(t)
		return
	}

	sc.readRune()
	switch c {
	case ';':
		t.kind = SEMI
	case ',':
		t.kind = COMMA
	case '?':
		t.kind = HOOK
	case ':':
		t.kind = COLON
	case '(':
		t.kind = LPAREN
	case ')':
		t.kind = RPAREN
	case '[':
		t.kind = LBRACK
	case ']':
		t.kind = RBRACK
	case '{':
		t.kind = LBRACE
	case '}':
		t.kind = RBRACE
	case '~':
		t.kind = BITNOT
	case '.':
		t.kind = DOT
		if sc.peekByte(0) == '.' && sc.peekByte(1) == '.' {
			sc.readRune()
			sc.readRune()
			t.kind = TRIPLEDOT
		}
	case '|':
		t.kind = sc.choose('|', OR, '=', BITOR_ASSIGN, BITOR)
	case '&':
		t.kind = sc.choose('&', AND, '=', BITAND_ASSIGN, BITAND)
	case '^':
		t.kind = sc.choose('=', BITXOR_ASSIGN, 0, 0, BITXOR)
	case '+':
		t.kind = sc.choose('+', INC, '=', ADD_ASSIGN, PLUS)
	case '-':
		t.kind = sc.choose('-', DEC, '=', SUB_ASSIGN, MINUS)
	case '*':
		t.kind = sc.choose('=', MUL_ASSIGN, 0, 0, STAR)
	case '/':
		t.kind = sc.choose('=', DIV_ASSIGN, 0, 0, DIV)
	case '%':
		t.kind = sc.choose('=', MOD_ASSIGN, 0, 0, MOD)
	case '=':
		t.kind = ASSIGN
		if sc.eat('=') {
			t.kind = EQ
			if sc.eat('=') {
				t.kind = STRICTEQ
			}
		}
	case '!':
		t.kind = NOT
		if sc.eat('=') {
			t.kind = NE
			if sc.eat('=') {
				t.kind = STRICTNE
			}
		}
	case '<':
		t.kind = LT
		if sc.eat('=') {
			t.kind = LE
		} else if sc.eat('<') {
			t.kind = sc.choose('=', LSH_ASSIGN, 0, 0, LSH)
		}
	case '>':
		t.kind = GT
		if sc.eat('=') {
			t.kind = GE
		} else if sc.eat('>') {
			t.kind = RSH
			if sc.eat('=') {
				t.kind = RSH_ASSIGN
			} else if sc.eat('>') {
				t.kind = sc.choose('=', URSH_ASSIGN, 0, 0, URSH)
			}
		}
	default:
		sc.error(t.pos, ErrIllegalChar, strconv.QuoteRune(c))
	}
}

// choose consumes a following c1 or c2, returning the corresponding
// token, or returns otherwise.
func (sc *scanner) choose(c1 byte, t1 Token, c2 byte, t2 Token, otherwise Token) Token {
	if sc.eat(c1) {
		return t1
	}
	if c2 != 0 && sc.eat(c2) {
		return t2
	}
	return otherwise
}

func (sc *scanner) eat(c byte) bool {
	if sc.offset < len(sc.src) && sc.src[sc.offset] == c {
		sc.readRune()
		return true
	}
	return false
}

func (sc *scanner) finish(t *token, start int) {
	t.end = sc.position()
	t.raw = string(sc.src[start:sc.offset])
}

const eofRune = -1

func (sc *scanner) peekRune() rune {
	if sc.offset >= len(sc.src) {
		return eofRune
	}
	if b := sc.src[sc.offset]; b < utf8.RuneSelf {
		return rune(b)
	}
	r, _ := utf8.DecodeRune(sc.src[sc.offset:])
	return r
}

// peekByte returns the byte n bytes ahead, or zero at end of input.
func (sc *scanner) peekByte(n int) byte {
	if sc.offset+n < len(sc.src) {
		return sc.src[sc.offset+n]
	}
	return 0
}

func (sc *scanner) hasPrefix(s string) bool {
	return strings.HasPrefix(string(sc.src[sc.offset:min(len(sc.src), sc.offset+len(s))]), s)
}

// readRune consumes and returns the next rune, updating the position.
// CR LF counts as a single line terminator.
func (sc *scanner) readRune() rune {
	if sc.offset >= len(sc.src) {
		return eofRune
	}
	r, size := rune(sc.src[sc.offset]), 1
	if r >= utf8.RuneSelf {
		r, size = utf8.DecodeRune(sc.src[sc.offset:])
		if r == utf8.RuneError && size == 1 {
			sc.error(sc.position(), ErrIllegalChar, "(invalid UTF-8)")
		}
	}
	sc.offset += size
	switch {
	case r == '\r' && sc.peekByte(0) == '\n':
		sc.col++
	case isLineTerminator(r):
		sc.line++
		sc.col = 1
	default:
		sc.col++
	}
	return r
}

// skipSpace skips white space and comments, reporting whether
// a line terminator was among them.
func (sc *scanner) skipSpace() (nl bool) {
	for {
		c := sc.peekRune()
		switch {
		case c == ' ' || c == '\t' || c == '\v' || c == '\f' || c == 0xA0 || c == 0xFEFF:
			sc.readRune()
		case isLineTerminator(c):
			sc.readRune()
			nl = true
		case c > utf8.RuneSelf && unicode.Is(unicode.Zs, c):
			sc.readRune()
		case c == '/' && sc.peekByte(1) == '/':
			sc.skipLine()
		case c == '/' && sc.peekByte(1) == '*':
			start := sc.position()
			sc.readRune()
			sc.readRune()
			for {
				c := sc.peekRune()
				if c == eofRune {
					sc.error(start, ErrUnterminatedComment)
				}
				if c == '*' && sc.peekByte(1) == '/' {
					sc.readRune()
					sc.readRune()
					break
				}
				if isLineTerminator(c) {
					nl = true
				}
				sc.readRune()
			}
		case sc.legacy && c == '<' && sc.hasPrefix("<!--"):
			sc.skipLine()
		case sc.legacy && c == '-' && (nl || !sc.sawToken) && sc.hasPrefix("-->"):
			sc.skipLine()
		default:
			return nl
		}
	}
}

// skipLine skips to the next line terminator, leaving it unread.
func (sc *scanner) skipLine() {
	for c := sc.peekRune(); c != eofRune && !isLineTerminator(c); c = sc.peekRune() {
		sc.readRune()
	}
}

func (sc *scanner) scanIdent(t *token, mode scanMode) {
	var buf strings.Builder
	for first := true; ; first = false {
		c := sc.peekRune()
		if c == '\\' {
			pos := sc.position()
			sc.readRune()
			if sc.peekRune() != 'u' {
				sc.error(pos, ErrMalformedEscape, "Unicode")
			}
			sc.readRune()
			r, ok := sc.readHex(4)
			if !ok || first && !isIdentStart(r) || !first && !isIdentPart(r) {
				sc.error(pos, ErrMalformedEscape, "Unicode")
			}
			t.escaped = true
			buf.WriteRune(r)
			continue
		}
		if first && !isIdentStart(c) || !first && !isIdentPart(c) {
			break
		}
		sc.readRune()
		buf.WriteRune(c)
	}
	name := buf.String()
	t.kind = NAME
	t.str = name
	t.atom = sc.atoms.Intern(name)
	if t.escaped || mode&modeKeywordIsName != 0 {
		return
	}
	if k, ok := keywordToken[name]; ok {
		if (k == LET || k == YIELD) && !sc.strict && !sc.legacy {
			return
		}
		t.kind = k
	} else if sc.strict && strictReserved[name] {
		t.kind = RESERVED
	}
}

func (sc *scanner) scanNumber(t *token) {
	start := sc.offset
	t.kind = NUMBER
	c := sc.peekRune()
	decimal := true
	switch {
	case c == '0' && (sc.peekByte(1) == 'x' || sc.peekByte(1) == 'X'):
		sc.readRune()
		sc.readRune()
		decimal = false
		digits := 0
		for isHex(sc.peekRune()) {
			t.num = t.num*16 + float64(hexValue(sc.readRune()))
			digits++
		}
		if digits == 0 {
			sc.error(t.pos, ErrBadNumber, string(sc.src[start:sc.offset]))
		}

	case c == '0' && isDigit(rune(sc.peekByte(1))):
		// Legacy octal, unless an 8 or 9 makes it decimal.
		sc.readRune()
		octal := true
		for isDigit(sc.peekRune()) {
			if sc.readRune() >= '8' {
				octal = false
			}
		}
		if octal {
			decimal = false
			for _, d := range sc.src[start+1 : sc.offset] {
				t.num = t.num*8 + float64(d-'0')
			}
			t.octal = true
			if sc.strict {
				sc.error(t.pos, ErrOctalNumber)
			} else if sc.strictWarnings {
				sc.rep.warn(t.pos, sc.position(), ErrOctalNumber)
			}
		} else {
			sc.scanFraction()
		}

	default:
		for isDigit(sc.peekRune()) {
			sc.readRune()
		}
		sc.scanFraction()
	}

	if c := sc.peekRune(); isIdentStart(c) || isDigit(c) || c == '\\' {
		sc.error(sc.position(), ErrIdentAfterNumber)
	}
	if decimal {
		f, err := strconv.ParseFloat(string(sc.src[start:sc.offset]), 64)
		if err != nil && !isRangeError(err) {
			sc.error(t.pos, ErrBadNumber, string(sc.src[start:sc.offset]))
		}
		t.num = f
	}
}

// scanFraction scans the optional fraction and exponent of a decimal literal.
func (sc *scanner) scanFraction() {
	if sc.peekRune() == '.' {
		sc.readRune()
		for isDigit(sc.peekRune()) {
			sc.readRune()
		}
	}
	if c := sc.peekRune(); c == 'e' || c == 'E' {
		pos := sc.position()
		sc.readRune()
		if c := sc.peekRune(); c == '+' || c == '-' {
			sc.readRune()
		}
		if !isDigit(sc.peekRune()) {
			sc.error(pos, ErrBadNumber, "exponent")
		}
		for isDigit(sc.peekRune()) {
			sc.readRune()
		}
	}
}

func isRangeError(err error) bool {
	if e, ok := err.(*strconv.NumError); ok {
		return e.Err == strconv.ErrRange
	}
	return false
}

func (sc *scanner) scanString(t *token) {
	t.kind = STRING
	quote := sc.readRune()
	var buf strings.Builder
	for {
		c := sc.peekRune()
		if c == eofRune || isLineTerminator(c) {
			sc.error(t.pos, ErrUnterminatedString)
		}
		escPos := sc.position()
		sc.readRune()
		if c == quote {
			break
		}
		if c != '\\' {
			buf.WriteRune(c)
			continue
		}
		t.escaped = true
		sc.scanEscape(&buf, t, escPos, false)
	}
	t.str = buf.String()
}

// scanTemplate scans a template piece after its opening '`' or '}'.
func (sc *scanner) scanTemplate(t *token, head bool) {
	var buf strings.Builder
	for {
		c := sc.peekRune()
		if c == eofRune {
			sc.error(t.pos, ErrUnterminatedTemplate)
		}
		escPos := sc.position()
		sc.readRune()
		switch c {
		case '`':
			t.kind = TEMPLATE_TAIL
			if head {
				t.kind = TEMPLATE
			}
			t.str = buf.String()
			return
		case '$':
			if sc.eat('{') {
				t.kind = TEMPLATE_MIDDLE
				if head {
					t.kind = TEMPLATE_HEAD
				}
				t.str = buf.String()
				return
			}
			buf.WriteRune(c)
		case '\\':
			t.escaped = true
			sc.scanEscape(&buf, t, escPos, true)
		case '\r':
			sc.eat('\n')
			buf.WriteByte('\n')
		default:
			buf.WriteRune(c)
		}
	}
}

// scanEscape decodes the escape sequence following a backslash at pos.
func (sc *scanner) scanEscape(buf *strings.Builder, t *token, pos Position, template bool) {
	c := sc.peekRune()
	switch c {
	case eofRune:
		if template {
			sc.error(t.pos, ErrUnterminatedTemplate)
		}
		sc.error(t.pos, ErrUnterminatedString)
	case 'b':
		buf.WriteByte('\b')
	case 'f':
		buf.WriteByte('\f')
	case 'n':
		buf.WriteByte('\n')
	case 'r':
		buf.WriteByte('\r')
	case 't':
		buf.WriteByte('\t')
	case 'v':
		buf.WriteByte('\v')
	case '\r':
		sc.readRune() // line continuation
		sc.eat('\n')
		return
	case '\n', '\u2028', '\u2029':
		sc.readRune()
		return
	case 'x', 'u':
		sc.readRune()
		n, what := 2, "hexadecimal"
		if c == 'u' {
			n, what = 4, "Unicode"
		}
		r, ok := sc.readHex(n)
		if !ok {
			sc.error(pos, ErrMalformedEscape, what)
		}
		buf.WriteRune(r)
		return
	case '0', '1', '2', '3', '4', '5', '6', '7':
		if c == '0' && !isDigit(rune(sc.peekByte(1))) {
			sc.readRune()
			buf.WriteByte(0)
			return
		}
		if template {
			sc.error(pos, ErrTemplateOctal)
		}
		max := 3
		if c > '3' {
			max = 2
		}
		v := 0
		for n := 0; n < max && isOctal(sc.peekRune()); n++ {
			v = v*8 + int(sc.readRune()-'0')
		}
		buf.WriteRune(rune(v))
		t.octal = true
		if sc.strict {
			sc.error(pos, ErrOctalEscape)
		}
		sc.sawOctalEscape = true
		return
	default:
		buf.WriteRune(c)
	}
	sc.readRune()
}

func (sc *scanner) readHex(n int) (rune, bool) {
	var r rune
	for i := 0; i < n; i++ {
		c := sc.peekRune()
		if !isHex(c) {
			return 0, false
		}
		sc.readRune()
		r = r*16 + rune(hexValue(c))
	}
	return r, true
}

func (sc *scanner) scanRegexp(t *token) {
	t.kind = REGEXP
	sc.readRune() // '/'
	bodyStart := sc.offset
	inClass := false
loop:
	for {
		c := sc.peekRune()
		if c == eofRune || isLineTerminator(c) {
			sc.error(t.pos, ErrUnterminatedRegexp)
		}
		sc.readRune()
		switch c {
		case '\\':
			if c := sc.peekRune(); c == eofRune || isLineTerminator(c) {
				sc.error(t.pos, ErrUnterminatedRegexp)
			}
			sc.readRune()
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				break loop
			}
		}
	}
	t.str = string(sc.src[bodyStart : sc.offset-1])

	flagsStart := sc.offset
	for c := sc.peekRune(); isIdentPart(c); c = sc.peekRune() {
		seen := string(sc.src[flagsStart:sc.offset])
		if !strings.ContainsRune("gimy", c) || strings.ContainsRune(seen, c) {
			sc.error(sc.position(), ErrRegexpFlag, string(c))
		}
		sc.readRune()
	}
	t.flags = string(sc.src[flagsStart:sc.offset])
}

func isLineTerminator(c rune) bool {
	return c == '\n' || c == '\r' || c == '\u2028' || c == '\u2029'
}

func isDigit(c rune) bool { return '0' <= c && c <= '9' }
func isOctal(c rune) bool { return '0' <= c && c <= '7' }
func isHex(c rune) bool {
	return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func hexValue(c rune) int {
	switch {
	case c <= '9':
		return int(c - '0')
	case c <= 'F':
		return int(c-'A') + 10
	default:
		return int(c-'a') + 10
	}
}

func isIdentStart(c rune) bool {
	return 'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		c == '$' || c == '_' ||
		c >= utf8.RuneSelf && (unicode.IsLetter(c) || unicode.Is(unicode.Nl, c))
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || isDigit(c) ||
		c >= utf8.RuneSelf && (unicode.In(c, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc) ||
			c == '\u200c' || c == '\u200d')
}

// A TokenInfo describes one token of a source file.
type TokenInfo struct {
	Kind          Token
	Pos, End      Position
	Raw           string
	NewlineBefore bool
}

// Tokens scans a whole source file without parsing it.
// A '/' begins a regular expression unless the previous token
// can end an expression.
func Tokens(filename string, src interface{}, opts *Options) (toks []TokenInfo, err error) {
	if opts == nil {
		opts = new(Options)
	}
	atoms := opts.Atoms
	if atoms == nil {
		atoms = new(atom.Table)
	}
	rep := &reporter{logger: opts.Logger}
	sc, err := newScanner(filename, src, 1, rep, atoms)
	if err != nil {
		return nil, err
	}
	sc.strict, sc.legacy, sc.strictWarnings = opts.StrictMode, opts.AllowLegacy, opts.StrictWarnings
	defer rep.recover(&err)

	var templates []int // brace depth at each open template substitution
	depth := 0
	prev := ILLEGAL
	for {
		var t *token
		if n := len(templates); n > 0 && templates[n-1] == depth && sc.peek(0).kind == RBRACE {
			t = sc.resumeTemplate()
			templates = templates[:n-1]
		} else {
			mode := modeOperand
			if endsOperand(prev) {
				mode = 0
			}
			if prev == DOT {
				mode |= modeKeywordIsName
			}
			t = sc.next(mode)
		}
		toks = append(toks, TokenInfo{t.kind, t.pos, t.end, t.raw, t.nlBefore})
		switch t.kind {
		case EOF:
			return toks, nil
		case LBRACE:
			depth++
		case RBRACE:
			depth--
		case TEMPLATE_HEAD, TEMPLATE_MIDDLE:
			templates = append(templates, depth)
		}
		prev = t.kind
	}
}

func endsOperand(tok Token) bool {
	switch tok {
	case NAME, NUMBER, STRING, REGEXP, TEMPLATE, TEMPLATE_TAIL,
		RPAREN, RBRACK, RBRACE, THIS, TRUE, FALSE, NULL, INC, DEC:
		return true
	}
	return false
}
