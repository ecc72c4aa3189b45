// File: doc.go
// Title: xentpl Parser Package Documentation
// Description: Implements the lexical analyzer and parser for xentpl
//              templates. Converts template source into syntax trees with
//              line-accurate, localisable errors.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial parser implementation
// - 2026-10-14 v0.2.0: Stacked-state lexer and generated SLR(1) tables

/*
Package parser provides lexical analysis and parsing for xentpl templates.

The Lexer is a stack of states (Start, TagOpen, TagInner, CurlyStart,
CurlyVarStart, CurlyVarInner, CurlyFunctionStart, CurlyFunctionInner,
DoubleQuoted, SingleQuoted). Each state matches anchored regular expressions
against the remaining input; the longest match wins and may emit a token,
skip whitespace, or push and pop states. Expressions inside quoted attribute
values inside tags re-enter the curly states.

The Parser is a shift-reduce parser whose ACTION and GOTO tables are
generated from the grammar when the package is initialised:

	start        := in
	in           := in PLAIN_TEXT | in curly | in tag | in TAG_COMMENT | in TAG_CLOSE | ε
	tag          := TAG_OPEN attrs TAG_SELF_CLOSE | TAG_OPEN attrs TAG_END
	attrs        := attrs TAG_ATTRIBUTE quote quoted_inner quote | ε
	curly        := curly_var | curly_function
	curly_var    := CURLY_VAR var_inner CURLY_END
	var_inner    := var_inner DIM KEY | var_inner DIM curly_var | ε
	curly_func   := CURLY_FUNCTION arg extra_args CURLY_END
	arg          := SIMPLE_VARIABLE | LITERAL | quoted | curly
	extra_args   := extra_args SEP arg | ε
	quoted       := quote quoted_inner quote
	quoted_inner := quoted_inner LITERAL | quoted_inner curly | ε

Open tags are tracked on a frame stack; a close tag pops the innermost frame
and attaches its nodes as the tag's children.

Every failure is an *Error with a Kind, the source line and a phrase key:

	nodes, err := p.Parse(src)
	var perr *parser.Error
	if errors.As(err, &perr) {
		fmt.Println(perr.Line, perr.MessageKey())
	}

A Parser or Lexer serves one input at a time. Use separate instances for
concurrent compiles.
*/
package parser
