// File: token.go
// Title: xentpl Token Definitions
// Description: Token kinds produced by the template lexer and the token
//              value type.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial token definitions
// - 2026-10-14 v0.2.0: Template markup token kinds

package parser

import "fmt"

// TokenType represents the type of a lexical token
type TokenType int

const (
	TokenEOF TokenType = iota

	// Markup
	TokenPlainText    // literal text
	TokenTagComment   // <xen:comment>...</xen:comment>, value is the body
	TokenTagClose     // </xen:name>
	TokenTagOpen      // <xen:name
	TokenTagSelfClose // />
	TokenTagEnd       // >
	TokenTagAttribute // name=
	TokenDoubleQuote  // "
	TokenSingleQuote  // '

	// Expressions
	TokenCurlyVar       // {$name
	TokenCurlyEnd       // }
	TokenCurlyArrayDim  // .
	TokenCurlyVarKey    // key after a dot
	TokenCurlyFunction  // {xen:name
	TokenSimpleVariable // $name inside a function
	TokenLiteral        // bare or quoted text
	TokenCurlyArgSep    // ,

	tokenKindCount
)

var tokenNames = [tokenKindCount]string{
	TokenEOF:            "EOF",
	TokenPlainText:      "PLAIN_TEXT",
	TokenTagComment:     "TAG_COMMENT",
	TokenTagClose:       "TAG_CLOSE",
	TokenTagOpen:        "TAG_OPEN",
	TokenTagSelfClose:   "TAG_SELF_CLOSE",
	TokenTagEnd:         "TAG_END",
	TokenTagAttribute:   "TAG_ATTRIBUTE",
	TokenDoubleQuote:    "DOUBLE_QUOTE",
	TokenSingleQuote:    "SINGLE_QUOTE",
	TokenCurlyVar:       "CURLY_VAR",
	TokenCurlyEnd:       "CURLY_END",
	TokenCurlyArrayDim:  "CURLY_ARRAY_DIM",
	TokenCurlyVarKey:    "CURLY_VAR_KEY",
	TokenCurlyFunction:  "CURLY_FUNCTION",
	TokenSimpleVariable: "SIMPLE_VARIABLE",
	TokenLiteral:        "LITERAL",
	TokenCurlyArgSep:    "CURLY_ARG_SEP",
}

// String returns the upper-case name of the token type
func (tt TokenType) String() string {
	if tt >= 0 && tt < tokenKindCount {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TOKEN(%d)", int(tt))
}

// Token represents a lexical token with its source line
type Token struct {
	Type  TokenType // Token type
	Value string    // Token payload (names, text, literal values)
	Line  int       // Line number (1-based) where the token starts
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Value)
}
