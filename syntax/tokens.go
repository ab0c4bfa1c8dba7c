// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// A Token represents a lexical token.
type Token int8

const (
	ILLEGAL Token = iota
	EOF
	EOL // pseudo-token: a line terminator precedes the next token

	NAME            // x
	NUMBER          // 123, 0x7f, 1.5e3
	STRING          // "foo" or 'foo'
	TEMPLATE        // `foo`
	TEMPLATE_HEAD   // `foo${
	TEMPLATE_MIDDLE // }foo${
	TEMPLATE_TAIL   // }foo`
	REGEXP          // /re/flags

	// Punctuation
	SEMI      // ;
	COMMA     // ,
	HOOK      // ?
	COLON     // :
	DOT       // .
	TRIPLEDOT // ...
	LPAREN    // (
	RPAREN    // )
	LBRACK    // [
	RBRACK    // ]
	LBRACE    // {
	RBRACE    // }

	// Operators
	OR       // ||
	AND      // &&
	BITOR    // |
	BITXOR   // ^
	BITAND   // &
	EQ       // ==
	NE       // !=
	STRICTEQ // ===
	STRICTNE // !==
	LT       // <
	LE       // <=
	GT       // >
	GE       // >=
	LSH      // <<
	RSH      // >>
	URSH     // >>>
	PLUS     // +
	MINUS    // -
	STAR     // *
	DIV      // /
	MOD      // %
	NOT      // !
	BITNOT   // ~
	INC      // ++
	DEC      // --

	// Assignment operators
	ASSIGN        // =
	ADD_ASSIGN    // +=
	SUB_ASSIGN    // -=
	MUL_ASSIGN    // *=
	DIV_ASSIGN    // /=
	MOD_ASSIGN    // %=
	LSH_ASSIGN    // <<=
	RSH_ASSIGN    // >>=
	URSH_ASSIGN   // >>>=
	BITAND_ASSIGN // &=
	BITOR_ASSIGN  // |=
	BITXOR_ASSIGN // ^=

	// Keywords
	BREAK
	CASE
	CATCH
	CONST
	CONTINUE
	DEBUGGER
	DEFAULT
	DELETE
	DO
	ELSE
	FALSE
	FINALLY
	FOR
	FUNCTION
	IF
	IN
	INSTANCEOF
	LET
	NEW
	NULL
	RETURN
	SWITCH
	THIS
	THROW
	TRUE
	TRY
	TYPEOF
	VAR
	VOID
	WHILE
	WITH
	YIELD
	RESERVED // future reserved word, or strict reserved word in strict code

	maxToken
)

func (tok Token) String() string { return tokenNames[tok] }

// GoString is like String but quotes punctuation tokens.
// Use Sprintf("%#v", tok) when constructing error messages.
func (tok Token) GoString() string {
	if tok >= SEMI && tok <= BITXOR_ASSIGN {
		return "'" + tokenNames[tok] + "'"
	}
	return tokenNames[tok]
}

var tokenNames = [...]string{
	ILLEGAL:         "illegal token",
	EOF:             "end of file",
	EOL:             "end of line",
	NAME:            "identifier",
	NUMBER:          "number literal",
	STRING:          "string literal",
	TEMPLATE:        "template literal",
	TEMPLATE_HEAD:   "template head",
	TEMPLATE_MIDDLE: "template middle",
	TEMPLATE_TAIL:   "template tail",
	REGEXP:          "regular expression literal",
	SEMI:            ";",
	COMMA:           ",",
	HOOK:            "?",
	COLON:           ":",
	DOT:             ".",
	TRIPLEDOT:       "...",
	LPAREN:          "(",
	RPAREN:          ")",
	LBRACK:          "[",
	RBRACK:          "]",
	LBRACE:          "{",
	RBRACE:          "}",
	OR:              "||",
	AND:             "&&",
	BITOR:           "|",
	BITXOR:          "^",
	BITAND:          "&",
	EQ:              "==",
	NE:              "!=",
	STRICTEQ:        "===",
	STRICTNE:        "!==",
	LT:              "<",
	LE:              "<=",
	GT:              ">",
	GE:              ">=",
	LSH:             "<<",
	RSH:             ">>",
	URSH:            ">>>",
	PLUS:            "+",
	MINUS:           "-",
	STAR:            "*",
	DIV:             "/",
	MOD:             "%",
	NOT:             "!",
	BITNOT:          "~",
	INC:             "++",
	DEC:             "--",
	ASSIGN:          "=",
	ADD_ASSIGN:      "+=",
	SUB_ASSIGN:      "-=",
	MUL_ASSIGN:      "*=",
	DIV_ASSIGN:      "/=",
	MOD_ASSIGN:      "%=",
	LSH_ASSIGN:      "<<=",
	RSH_ASSIGN:      ">>=",
	URSH_ASSIGN:     ">>>=",
	BITAND_ASSIGN:   "&=",
	BITOR_ASSIGN:    "|=",
	BITXOR_ASSIGN:   "^=",
	BREAK:           "break",
	CASE:            "case",
	CATCH:           "catch",
	CONST:           "const",
	CONTINUE:        "continue",
	DEBUGGER:        "debugger",
	DEFAULT:         "default",
	DELETE:          "delete",
	DO:              "do",
	ELSE:            "else",
	FALSE:           "false",
	FINALLY:         "finally",
	FOR:             "for",
	FUNCTION:        "function",
	IF:              "if",
	IN:              "in",
	INSTANCEOF:      "instanceof",
	LET:             "let",
	NEW:             "new",
	NULL:            "null",
	RETURN:          "return",
	SWITCH:          "switch",
	THIS:            "this",
	THROW:           "throw",
	TRUE:            "true",
	TRY:             "try",
	TYPEOF:          "typeof",
	VAR:             "var",
	VOID:            "void",
	WHILE:           "while",
	WITH:            "with",
	YIELD:           "yield",
	RESERVED:        "reserved word",
}

// keywordToken records the special tokens for
// strings that should not be treated as ordinary identifiers.
// let and yield are keywords only in strict or legacy code.
var keywordToken = map[string]Token{
	"break":      BREAK,
	"case":       CASE,
	"catch":      CATCH,
	"const":      CONST,
	"continue":   CONTINUE,
	"debugger":   DEBUGGER,
	"default":    DEFAULT,
	"delete":     DELETE,
	"do":         DO,
	"else":       ELSE,
	"false":      FALSE,
	"finally":    FINALLY,
	"for":        FOR,
	"function":   FUNCTION,
	"if":         IF,
	"in":         IN,
	"instanceof": INSTANCEOF,
	"let":        LET,
	"new":        NEW,
	"null":       NULL,
	"return":     RETURN,
	"switch":     SWITCH,
	"this":       THIS,
	"throw":      THROW,
	"true":       TRUE,
	"try":        TRY,
	"typeof":     TYPEOF,
	"var":        VAR,
	"void":       VOID,
	"while":      WHILE,
	"with":       WITH,
	"yield":      YIELD,

	// future reserved words
	"class":   RESERVED,
	"enum":    RESERVED,
	"export":  RESERVED,
	"extends": RESERVED,
	"import":  RESERVED,
	"super":   RESERVED,
}

// strictReserved lists the words reserved only in strict mode code.
var strictReserved = map[string]bool{
	"implements": true,
	"interface":  true,
	"package":    true,
	"private":    true,
	"protected":  true,
	"public":     true,
	"static":     true,
}

// isAssign reports whether tok is an assignment operator.
func (tok Token) isAssign() bool { return tok >= ASSIGN && tok <= BITXOR_ASSIGN }

// binaryOp returns the binary operator underlying a compound assignment.
func (tok Token) binaryOp() Token {
	switch tok {
	case ADD_ASSIGN:
		return PLUS
	case SUB_ASSIGN:
		return MINUS
	case MUL_ASSIGN:
		return STAR
	case DIV_ASSIGN:
		return DIV
	case MOD_ASSIGN:
		return MOD
	case LSH_ASSIGN:
		return LSH
	case RSH_ASSIGN:
		return RSH
	case URSH_ASSIGN:
		return URSH
	case BITAND_ASSIGN:
		return BITAND
	case BITOR_ASSIGN:
		return BITOR
	case BITXOR_ASSIGN:
		return BITXOR
	}
	return ILLEGAL
}

// isKeyword reports whether tok is a reserved word,
// which may still appear as a property name.
func (tok Token) isKeyword() bool { return tok >= BREAK && tok <= RESERVED }
