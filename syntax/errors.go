// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"fmt"
	"log/slog"
)

// Severity distinguishes fatal errors from warnings.
type Severity uint8

const (
	Warning Severity = iota
	Fatal
)

func (s Severity) String() string {
	if s == Fatal {
		return "error"
	}
	return "warning"
}

// An ErrorKind classifies a diagnostic.
type ErrorKind uint8

const (
	LexError        ErrorKind = iota // malformed token
	SyntaxError                      // grammar violation
	BindingError                     // illegal declaration or assignment
	StrictModeError                  // fatal only in strict mode code
	ResourceError                    // node budget or nesting depth exhausted
)

var kindNames = [...]string{
	LexError:        "LexError",
	SyntaxError:     "SyntaxError",
	BindingError:    "BindingError",
	StrictModeError: "StrictModeError",
	ResourceError:   "ResourceError",
}

func (k ErrorKind) String() string { return kindNames[k] }

// A Code identifies a diagnostic message.
type Code uint16

const (
	_ Code = iota

	// lexical
	ErrIllegalChar
	ErrUnterminatedString
	ErrUnterminatedComment
	ErrUnterminatedRegexp
	ErrUnterminatedTemplate
	ErrRegexpFlag
	ErrMalformedEscape
	ErrBadNumber
	ErrIdentAfterNumber
	ErrTemplateOctal

	// grammar
	ErrUnexpected
	ErrWant
	ErrMissingSemi
	ErrBadBreak
	ErrBadContinue
	ErrLabelNotFound
	ErrDuplicateLabel
	ErrDuplicateDefault
	ErrLetNotInBlock
	ErrBadAssignTarget
	ErrBadIncOperand
	ErrBadForInTarget
	ErrBadReturn
	ErrBadYield
	ErrGenexpYield
	ErrGenexpArguments
	ErrCatchAfterGeneral
	ErrTryWithoutCatch
	ErrLegacySyntax
	ErrReservedWord
	ErrThrowNewline
	ErrBadForEach
	ErrGeneratorReturn
	ErrBadAccessor

	// binding
	ErrRedeclared
	ErrRedeclaredParam
	ErrDuplicateParam
	ErrAssignConst
	ErrBadDestructuring
	ErrRestArguments
	ErrBadBinding
	ErrVarHidesArg

	// strict mode
	ErrOctalEscape
	ErrOctalNumber
	ErrStrictWith
	ErrDeleteName
	ErrDuplicateProperty
	ErrFunctionInBlock
	ErrAssignCall
	ErrStrictAssign

	// resources
	ErrTooDeep
	ErrOutOfMemory

	maxCode
)

type codeInfo struct {
	kind   ErrorKind
	format string
	always bool // for strict mode conditions: warn even without StrictWarnings
}

var codes = [...]codeInfo{
	ErrIllegalChar:          {LexError, "unexpected character %s", false},
	ErrUnterminatedString:   {LexError, "unterminated string literal", false},
	ErrUnterminatedComment:  {LexError, "unterminated comment", false},
	ErrUnterminatedRegexp:   {LexError, "unterminated regular expression literal", false},
	ErrUnterminatedTemplate: {LexError, "unterminated template literal", false},
	ErrRegexpFlag:           {LexError, "invalid regular expression flag %s", false},
	ErrMalformedEscape:      {LexError, "malformed %s escape sequence", false},
	ErrBadNumber:            {LexError, "invalid number literal %s", false},
	ErrIdentAfterNumber:     {LexError, "identifier starts immediately after numeric literal", false},
	ErrTemplateOctal:        {LexError, "octal escape sequences are not allowed in template literals", false},

	ErrUnexpected:        {SyntaxError, "unexpected %s", false},
	ErrWant:              {SyntaxError, "got %s, want %s", false},
	ErrMissingSemi:       {SyntaxError, "missing ; before statement", false},
	ErrBadBreak:          {SyntaxError, "break must be inside loop or switch", false},
	ErrBadContinue:       {SyntaxError, "continue must be inside loop", false},
	ErrLabelNotFound:     {SyntaxError, "label %s not found", false},
	ErrDuplicateLabel:    {SyntaxError, "duplicate label %s", false},
	ErrDuplicateDefault:  {SyntaxError, "more than one switch default", false},
	ErrLetNotInBlock:     {SyntaxError, "%s declaration not directly within block", false},
	ErrBadAssignTarget:   {SyntaxError, "invalid assignment left-hand side", false},
	ErrBadIncOperand:     {SyntaxError, "invalid increment/decrement operand", false},
	ErrBadForInTarget:    {SyntaxError, "invalid for/in left-hand side", false},
	ErrBadReturn:         {SyntaxError, "return not in function", false},
	ErrBadYield:          {SyntaxError, "yield not in function", false},
	ErrGenexpYield:       {SyntaxError, "yield not allowed in generator expression", false},
	ErrGenexpArguments:   {SyntaxError, "arguments not allowed in generator expression", false},
	ErrCatchAfterGeneral: {SyntaxError, "catch after unconditional catch", false},
	ErrTryWithoutCatch:   {SyntaxError, "missing catch or finally after try", false},
	ErrLegacySyntax:      {SyntaxError, "%s requires legacy syntax extensions", false},
	ErrReservedWord:      {SyntaxError, "%s is a reserved identifier", false},
	ErrThrowNewline:      {SyntaxError, "line break not allowed between throw and its expression", false},
	ErrBadForEach:        {SyntaxError, "invalid for each loop", false},
	ErrGeneratorReturn:   {SyntaxError, "generator function %s returns a value", false},
	ErrBadAccessor:       {SyntaxError, "invalid %s definition", false},

	ErrRedeclared:       {BindingError, "redeclaration of %s %s", false},
	ErrRedeclaredParam:  {BindingError, "redeclaration of formal parameter %s", false},
	ErrDuplicateParam:   {BindingError, "duplicate argument %s", true},
	ErrAssignConst:      {BindingError, "invalid assignment to const %s", false},
	ErrBadDestructuring: {BindingError, "invalid destructuring target", false},
	ErrRestArguments:    {BindingError, "arguments is not allowed in a function with a rest parameter", false},
	ErrBadBinding:       {BindingError, "%s cannot be bound in strict mode code", false},
	ErrVarHidesArg:      {BindingError, "variable %s redeclares argument", false},

	ErrOctalEscape:       {StrictModeError, "octal escape sequences are not allowed in strict mode", false},
	ErrOctalNumber:       {StrictModeError, "octal literals are not allowed in strict mode", false},
	ErrStrictWith:        {StrictModeError, "strict mode code may not contain with statements", false},
	ErrDeleteName:        {StrictModeError, "delete of an unqualified name is not allowed in strict mode", false},
	ErrDuplicateProperty: {StrictModeError, "property name %s appears more than once in object literal", false},
	ErrFunctionInBlock:   {StrictModeError, "functions may be declared only at top level or immediately within another function in strict mode", false},
	ErrAssignCall:        {StrictModeError, "invalid assignment to function call", false},
	ErrStrictAssign:      {BindingError, "assignment to %s is not allowed in strict mode", false},

	ErrTooDeep:     {ResourceError, "too deeply nested", false},
	ErrOutOfMemory: {ResourceError, "out of memory", false},
}

// Kind returns the error kind of diagnostics with this code.
func (c Code) Kind() ErrorKind { return codes[c].kind }

// A Diagnostic is a message about the source, with its location.
type Diagnostic struct {
	Severity Severity
	Kind     ErrorKind
	Code     Code
	Pos, End Position
	Msg      string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Msg)
}

// An Error describes the fatal condition that aborted a parse.
type Error struct {
	Pos  Position
	Msg  string
	Kind ErrorKind
	Code Code
	End  Position
}

func (e Error) Error() string { return e.Pos.String() + ": " + e.Msg }

// Diagnostic returns e as a fatal diagnostic.
func (e Error) Diagnostic() Diagnostic {
	return Diagnostic{Fatal, e.Kind, e.Code, e.Pos, e.End, e.Msg}
}

// A reporter accumulates warnings and raises fatal errors.
// Fatal errors panic with an Error; the entry points recover them.
type reporter struct {
	diags  []Diagnostic
	seen   map[warnKey]bool
	logger *slog.Logger
}

type warnKey struct {
	offset int32
	code   Code
}

func (r *reporter) fatal(pos, end Position, code Code, args ...interface{}) {
	panic(Error{
		Pos:  pos,
		Msg:  fmt.Sprintf(codes[code].format, args...),
		Kind: codes[code].kind,
		Code: code,
		End:  end,
	})
}

func (r *reporter) warn(pos, end Position, code Code, args ...interface{}) {
	k := warnKey{pos.Offset, code}
	if r.seen[k] {
		return
	}
	if r.seen == nil {
		r.seen = make(map[warnKey]bool)
	}
	r.seen[k] = true
	d := Diagnostic{Warning, codes[code].kind, code, pos, end, fmt.Sprintf(codes[code].format, args...)}
	r.diags = append(r.diags, d)
	if r.logger != nil {
		r.logger.Debug("warning", slog.String("pos", pos.String()), slog.String("msg", d.Msg))
	}
}

// recover converts a panic carrying an Error into an error result.
func (r *reporter) recover(err *error) {
	switch e := recover().(type) {
	case nil:
		// no panic
	case Error:
		*err = e
	default:
		panic(e)
	}
}
