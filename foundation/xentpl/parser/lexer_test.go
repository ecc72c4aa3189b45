// File: lexer_test.go
// Title: xentpl Lexer Unit Tests
// Description: Tests for the stacked-state lexer: token streams for all
//              markup forms, merging of text runs, line tracking and lexical
//              errors.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial comprehensive test suite
// - 2026-10-14 v0.2.0: Template markup token streams

package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tok(tt TokenType, value string, line int) Token {
	return Token{Type: tt, Value: value, Line: line}
}

func TestLexer_Tokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:     "Plain text",
			input:    "hello world",
			expected: []Token{tok(TokenPlainText, "hello world", 1)},
		},
		{
			name:     "Braces and angle brackets stay text",
			input:    "a { b < c",
			expected: []Token{tok(TokenPlainText, "a { b < c", 1)},
		},
		{
			name:  "Variable with keys",
			input: "{$a.b.c}",
			expected: []Token{
				tok(TokenCurlyVar, "a", 1),
				tok(TokenCurlyArrayDim, ".", 1),
				tok(TokenCurlyVarKey, "b", 1),
				tok(TokenCurlyArrayDim, ".", 1),
				tok(TokenCurlyVarKey, "c", 1),
				tok(TokenCurlyEnd, "}", 1),
			},
		},
		{
			name:  "Variable with dynamic key",
			input: "{$a.{$i}}",
			expected: []Token{
				tok(TokenCurlyVar, "a", 1),
				tok(TokenCurlyArrayDim, ".", 1),
				tok(TokenCurlyVar, "i", 1),
				tok(TokenCurlyEnd, "}", 1),
				tok(TokenCurlyEnd, "}", 1),
			},
		},
		{
			name:  "Function with mixed arguments",
			input: `{xen:foo $x, 'lit', "a{$b}c"}`,
			expected: []Token{
				tok(TokenCurlyFunction, "foo", 1),
				tok(TokenSimpleVariable, "x", 1),
				tok(TokenCurlyArgSep, ",", 1),
				tok(TokenSingleQuote, "'", 1),
				tok(TokenLiteral, "lit", 1),
				tok(TokenSingleQuote, "'", 1),
				tok(TokenCurlyArgSep, ",", 1),
				tok(TokenDoubleQuote, `"`, 1),
				tok(TokenLiteral, "a", 1),
				tok(TokenCurlyVar, "b", 1),
				tok(TokenCurlyEnd, "}", 1),
				tok(TokenLiteral, "c", 1),
				tok(TokenDoubleQuote, `"`, 1),
				tok(TokenCurlyEnd, "}", 1),
			},
		},
		{
			name:  "Nested function and dotted simple variable",
			input: "{xen:if $thread.id, {xen:phrase yes}}",
			expected: []Token{
				tok(TokenCurlyFunction, "if", 1),
				tok(TokenSimpleVariable, "thread.id", 1),
				tok(TokenCurlyArgSep, ",", 1),
				tok(TokenCurlyFunction, "phrase", 1),
				tok(TokenLiteral, "yes", 1),
				tok(TokenCurlyEnd, "}", 1),
				tok(TokenCurlyEnd, "}", 1),
			},
		},
		{
			name:  "Brace inside quoted literal merges",
			input: `{xen:f "ab{cd"}`,
			expected: []Token{
				tok(TokenCurlyFunction, "f", 1),
				tok(TokenDoubleQuote, `"`, 1),
				tok(TokenLiteral, "ab{cd", 1),
				tok(TokenDoubleQuote, `"`, 1),
				tok(TokenCurlyEnd, "}", 1),
			},
		},
		{
			name:  "Tags with attribute expression",
			input: `<xen:foo bar="{$x}"><xen:baz/>text</xen:foo>`,
			expected: []Token{
				tok(TokenTagOpen, "foo", 1),
				tok(TokenTagAttribute, "bar", 1),
				tok(TokenDoubleQuote, `"`, 1),
				tok(TokenCurlyVar, "x", 1),
				tok(TokenCurlyEnd, "}", 1),
				tok(TokenDoubleQuote, `"`, 1),
				tok(TokenTagEnd, ">", 1),
				tok(TokenTagOpen, "baz", 1),
				tok(TokenTagSelfClose, "/>", 1),
				tok(TokenPlainText, "text", 1),
				tok(TokenTagClose, "foo", 1),
			},
		},
		{
			name:  "Comment",
			input: "a<xen:comment>x {$y}</xen:comment>b",
			expected: []Token{
				tok(TokenPlainText, "a", 1),
				tok(TokenTagComment, "x {$y}", 1),
				tok(TokenPlainText, "b", 1),
			},
		},
		{
			name:     "Untreated section",
			input:    "<xen:untreated>{$x} <xen:if></xen:untreated>",
			expected: []Token{tok(TokenPlainText, "{$x} <xen:if>", 1)},
		},
		{
			name:  "Line numbers",
			input: "a\nb{$x}\n<xen:t\n c='1'/>",
			expected: []Token{
				tok(TokenPlainText, "a\nb", 1),
				tok(TokenCurlyVar, "x", 2),
				tok(TokenCurlyEnd, "}", 2),
				tok(TokenPlainText, "\n", 2),
				tok(TokenTagOpen, "t", 3),
				tok(TokenTagAttribute, "c", 4),
				tok(TokenSingleQuote, "'", 4),
				tok(TokenLiteral, "1", 4),
				tok(TokenSingleQuote, "'", 4),
				tok(TokenTagSelfClose, "/>", 4),
			},
		},
		{
			name:  "Close tag with whitespace",
			input: "</xen:foo  >",
			expected: []Token{
				tok(TokenTagClose, "foo", 1),
			},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := TokenizeInput(tt.input)
			if err != nil {
				t.Fatalf("TokenizeInput() error = %v", err)
			}
			if diff := cmp.Diff(tt.expected, tokens); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
		line  int
		found string
	}{
		{"Unquoted attribute value", "<xen:a b=c>", KindLexical, 1, "TagInner"},
		{"Attribute without value", "\n<xen:a b>", KindLexical, 2, "TagInner"},
		{"Variable without name", "{$}", KindLexical, 1, "CurlyVarStart"},
		{"Unterminated quote", `<xen:a b="x`, KindUnterminated, 1, "DoubleQuoted"},
		{"Unterminated variable", "{$a", KindUnterminated, 1, "CurlyVarInner"},
		{"Unterminated tag", "<xen:a\n", KindUnterminated, 2, "TagInner"},
		{"Space in variable", "{$a b}", KindLexical, 1, "CurlyVarInner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TokenizeInput(tt.input)
			if !IsKind(err, tt.kind) {
				t.Fatalf("error = %v, want kind %s", err, tt.kind)
			}
			perr := err.(*Error)
			if perr.Line != tt.line {
				t.Errorf("Line = %d, want %d", perr.Line, tt.line)
			}
			if perr.Found != tt.found {
				t.Errorf("Found = %q, want %q", perr.Found, tt.found)
			}
		})
	}
}

func TestLexer_ErrorIsSticky(t *testing.T) {
	l := NewLexer("ok<xen:a b=c>", LexerOptions{})

	first, err := l.NextToken()
	if err != nil || first.Type != TokenPlainText || first.Value != "ok" {
		t.Fatalf("NextToken() = %v, %v; want PLAIN_TEXT(ok)", first, err)
	}
	for i := 0; i < 10 && err == nil; i++ {
		_, err = l.NextToken()
	}
	if !IsKind(err, KindLexical) {
		t.Fatalf("expected lexical error, got %v", err)
	}
	if _, again := l.NextToken(); again != err {
		t.Errorf("second call returned %v, want the same error %v", again, err)
	}
}

func TestLexer_EOFRepeats(t *testing.T) {
	l := NewLexer("x", LexerOptions{})
	if _, err := l.NextToken(); err != nil {
		t.Fatalf("NextToken() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		got, err := l.NextToken()
		if err != nil || got.Type != TokenEOF {
			t.Fatalf("call %d: NextToken() = %v, %v; want EOF", i, got, err)
		}
	}
}

func TestLexer_StateAndDepth(t *testing.T) {
	l := NewLexer(`<xen:a b="{$c}">`, LexerOptions{})

	steps := []struct {
		token TokenType
		state LexerState
		depth int
	}{
		{TokenTagOpen, StateTagInner, 3},
		{TokenTagAttribute, StateTagInner, 3},
		{TokenDoubleQuote, StateDoubleQuoted, 4},
		{TokenCurlyVar, StateCurlyVarInner, 7},
		{TokenCurlyEnd, StateDoubleQuoted, 4},
		{TokenDoubleQuote, StateTagInner, 3},
		{TokenTagEnd, StateStart, 1},
	}

	for i, step := range steps {
		got, err := l.NextToken()
		if err != nil {
			t.Fatalf("step %d: NextToken() error = %v", i, err)
		}
		if got.Type != step.token || l.State() != step.state || l.Depth() != step.depth {
			t.Errorf("step %d: got %s in %s at depth %d, want %s in %s at depth %d",
				i, got.Type, l.State(), l.Depth(), step.token, step.state, step.depth)
		}
	}
}

func TestLexer_MaxDepth(t *testing.T) {
	input := strings.Repeat("{xen:f ", 50) + "x" + strings.Repeat("}", 50)

	_, err := NewLexer(input, LexerOptions{MaxDepth: 10}).Tokenize()
	if !IsKind(err, KindStackOverflow) {
		t.Fatalf("error = %v, want stack overflow", err)
	}
	if err.(*Error).Limit != 10 {
		t.Errorf("Limit = %d, want 10", err.(*Error).Limit)
	}

	if _, err := NewLexer(input, LexerOptions{MaxDepth: 500}).Tokenize(); err != nil {
		t.Errorf("deep input within limit failed: %v", err)
	}
}

func TestTokenType_String(t *testing.T) {
	tests := map[TokenType]string{
		TokenEOF:            "EOF",
		TokenPlainText:      "PLAIN_TEXT",
		TokenTagOpen:        "TAG_OPEN",
		TokenCurlyVarKey:    "CURLY_VAR_KEY",
		TokenSimpleVariable: "SIMPLE_VARIABLE",
		TokenCurlyArgSep:    "CURLY_ARG_SEP",
		TokenType(99):       "TOKEN(99)",
	}
	for tt, want := range tests {
		if got := tt.String(); got != want {
			t.Errorf("TokenType(%d).String() = %q, want %q", int(tt), got, want)
		}
	}
}

func TestToken_String(t *testing.T) {
	if got := tok(TokenTagOpen, "foo", 1).String(); got != `TAG_OPEN("foo")` {
		t.Errorf("String() = %q", got)
	}
	if got := (Token{Type: TokenEOF}).String(); got != "EOF" {
		t.Errorf("String() = %q", got)
	}
	if got := StateCurlyFunctionInner.String(); got != "CurlyFunctionInner" {
		t.Errorf("LexerState.String() = %q", got)
	}
}

// Benchmarks

func BenchmarkLexer_Template(b *testing.B) {
	input := strings.Repeat(`<xen:foreach loop="$threads" value="$thread"><a href="{xen:link threads, $thread}">{$thread.title}</a></xen:foreach>`+"\n", 50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := TokenizeInput(input); err != nil {
			b.Fatal(err)
		}
	}
}
