// File: grammar.go
// Title: xentpl Template Grammar
// Description: Declares the grammar symbols and productions of the template
//              language together with the semantic action run when each
//              production is reduced.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.2.0: Initial grammar

package parser

// symbol is a grammar symbol. Terminals share their values with TokenType,
// nonterminals follow after the last token kind.
type symbol int

const ntBase = symbol(tokenKindCount)

const (
	ntAccept symbol = ntBase + iota
	ntStart
	ntIn
	ntTag
	ntAttrs
	ntCurly
	ntCurlyVar
	ntVarInner
	ntCurlyFunction
	ntArg
	ntExtraArgs
	ntQuoted
	ntQuotedInner

	symbolCount
)

func (s symbol) isTerminal() bool { return s < ntBase }

func terminal(tt TokenType) symbol { return symbol(tt) }

// reduceFunc builds the semantic value of a production from the values of
// its right-hand side
type reduceFunc func(p *Parser, values []any) (any, error)

type production struct {
	lhs    symbol
	rhs    []symbol
	reduce reduceFunc
}

var productions = []production{
	{ntAccept, []symbol{ntStart}, nil},

	{ntStart, []symbol{ntIn}, (*Parser).reduceStart},

	{ntIn, []symbol{ntIn, terminal(TokenPlainText)}, (*Parser).reduceText},
	{ntIn, []symbol{ntIn, ntCurly}, (*Parser).reduceCurly},
	{ntIn, []symbol{ntIn, ntTag}, (*Parser).reduceTag},
	{ntIn, []symbol{ntIn, terminal(TokenTagComment)}, reduceNone},
	{ntIn, []symbol{ntIn, terminal(TokenTagClose)}, (*Parser).reduceTagClose},
	{ntIn, nil, reduceNone},

	{ntTag, []symbol{terminal(TokenTagOpen), ntAttrs, terminal(TokenTagSelfClose)}, reduceSelfClosingTag},
	{ntTag, []symbol{terminal(TokenTagOpen), ntAttrs, terminal(TokenTagEnd)}, reduceOpeningTag},

	{ntAttrs, []symbol{ntAttrs, terminal(TokenTagAttribute), terminal(TokenDoubleQuote), ntQuotedInner, terminal(TokenDoubleQuote)}, reduceAttribute},
	{ntAttrs, []symbol{ntAttrs, terminal(TokenTagAttribute), terminal(TokenSingleQuote), ntQuotedInner, terminal(TokenSingleQuote)}, reduceAttribute},
	{ntAttrs, nil, reduceNoAttributes},

	{ntCurly, []symbol{ntCurlyVar}, reduceFirst},
	{ntCurly, []symbol{ntCurlyFunction}, reduceFirst},

	{ntCurlyVar, []symbol{terminal(TokenCurlyVar), ntVarInner, terminal(TokenCurlyEnd)}, reduceCurlyVar},

	{ntVarInner, []symbol{ntVarInner, terminal(TokenCurlyArrayDim), terminal(TokenCurlyVarKey)}, reduceKeyLiteral},
	{ntVarInner, []symbol{ntVarInner, terminal(TokenCurlyArrayDim), ntCurlyVar}, reduceKeyVar},
	{ntVarInner, nil, reduceNoKeys},

	{ntCurlyFunction, []symbol{terminal(TokenCurlyFunction), ntArg, ntExtraArgs, terminal(TokenCurlyEnd)}, reduceCurlyFunction},

	{ntArg, []symbol{terminal(TokenSimpleVariable)}, reduceSimpleVariable},
	{ntArg, []symbol{terminal(TokenLiteral)}, reduceLiteralArg},
	{ntArg, []symbol{ntQuoted}, reduceFirst},
	{ntArg, []symbol{ntCurly}, reduceFirst},

	{ntExtraArgs, []symbol{ntExtraArgs, terminal(TokenCurlyArgSep), ntArg}, reduceExtraArg},
	{ntExtraArgs, nil, reduceNoArgs},

	{ntQuoted, []symbol{terminal(TokenDoubleQuote), ntQuotedInner, terminal(TokenDoubleQuote)}, reduceQuoted},
	{ntQuoted, []symbol{terminal(TokenSingleQuote), ntQuotedInner, terminal(TokenSingleQuote)}, reduceQuoted},

	{ntQuotedInner, []symbol{ntQuotedInner, terminal(TokenLiteral)}, reducePartLiteral},
	{ntQuotedInner, []symbol{ntQuotedInner, ntCurly}, reducePartCurly},
	{ntQuotedInner, nil, reduceNoParts},
}

// tables is generated once; the grammar is fixed at compile time
var tables = buildTables(productions)
