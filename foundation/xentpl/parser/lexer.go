// File: lexer.go
// Title: xentpl Stacked-State Lexer
// Description: Implements the lexical analysis of templates. The lexer keeps
//              a stack of states; every state owns a set of anchored regular
//              expression rules that emit tokens, skip input, or push and pop
//              states. Expressions nested in quoted values nested in tags are
//              handled by re-entering states.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial lexer implementation
// - 2026-10-14 v0.2.0: Rule tables per lexer state for template markup

package parser

import (
	"regexp"
	"strings"
)

// DefaultMaxDepth bounds the lexer state stack and the parser stacks
const DefaultMaxDepth = 100

// maxRedirects bounds consecutive state changes that consume no input
const maxRedirects = 16

// LexerState identifies one lexer context
type LexerState int

const (
	StateStart LexerState = iota
	StateTagOpen
	StateTagInner
	StateCurlyStart
	StateCurlyVarStart
	StateCurlyVarInner
	StateCurlyFunctionStart
	StateCurlyFunctionInner
	StateDoubleQuoted
	StateSingleQuoted

	lexerStateCount
)

var stateNames = [lexerStateCount]string{
	StateStart:              "Start",
	StateTagOpen:            "TagOpen",
	StateTagInner:           "TagInner",
	StateCurlyStart:         "CurlyStart",
	StateCurlyVarStart:      "CurlyVarStart",
	StateCurlyVarInner:      "CurlyVarInner",
	StateCurlyFunctionStart: "CurlyFunctionStart",
	StateCurlyFunctionInner: "CurlyFunctionInner",
	StateDoubleQuoted:       "DoubleQuoted",
	StateSingleQuoted:       "SingleQuoted",
}

// String returns the name of the state
func (s LexerState) String() string {
	if s >= 0 && s < lexerStateCount {
		return stateNames[s]
	}
	return "Unknown"
}

type stackAction uint8

const (
	actionStay stackAction = iota
	actionPush
	actionPop
)

// lexRule is one alternative of a lexer state. A rule either emits a token,
// skips its match, or (redirect) changes the state without consuming input
// so the same input is lexed again in the new top state.
type lexRule struct {
	pattern  *regexp.Regexp
	token    TokenType
	emits    bool
	action   stackAction
	target   LexerState
	redirect bool
	group    int
	more     bool
}

func match(pattern string) lexRule {
	return lexRule{pattern: regexp.MustCompile(`^(?:` + pattern + `)`)}
}

func (r lexRule) emit(t TokenType) lexRule {
	r.token = t
	r.emits = true
	return r
}

// value selects the capture group used as token value
func (r lexRule) value(group int) lexRule {
	r.group = group
	return r
}

func (r lexRule) push(s LexerState) lexRule {
	r.action = actionPush
	r.target = s
	return r
}

func (r lexRule) pop() lexRule {
	r.action = actionPop
	return r
}

func (r lexRule) rewind() lexRule {
	r.redirect = true
	return r
}

// merge marks the rule as "more": consecutive tokens it produces in the same
// state are joined into one
func (r lexRule) merge() lexRule {
	r.more = true
	return r
}

const (
	curlyOpener = `\{(?:\$|xen:)`
	tagName     = `([A-Za-z0-9_\-]+)`
)

var lexRules = [lexerStateCount][]lexRule{
	StateStart: {
		match(curlyOpener).push(StateCurlyStart).rewind(),
		match(`</?xen:`).push(StateTagOpen).rewind(),
		match(`[^{<]+`).emit(TokenPlainText).merge(),
		match(`[{<]`).emit(TokenPlainText).merge(),
	},
	StateTagOpen: {
		match(`<xen:comment>((?s:.*?))</xen:comment>`).emit(TokenTagComment).value(1).pop(),
		match(`<xen:untreated>((?s:.*?))</xen:untreated>`).emit(TokenPlainText).value(1).pop(),
		match(`<xen:` + tagName).emit(TokenTagOpen).value(1).push(StateTagInner),
		match(`</xen:` + tagName + `\s*>`).emit(TokenTagClose).value(1).pop(),
		match(`/>`).emit(TokenTagSelfClose).pop(),
		match(`>`).emit(TokenTagEnd).pop(),
	},
	StateTagInner: {
		match(`\s+`),
		match(`([A-Za-z0-9_\-:]+)\s*=\s*`).emit(TokenTagAttribute).value(1),
		match(`"`).emit(TokenDoubleQuote).push(StateDoubleQuoted),
		match(`'`).emit(TokenSingleQuote).push(StateSingleQuoted),
		match(`/?>`).pop().rewind(),
	},
	StateCurlyStart: {
		match(`\{\$`).push(StateCurlyVarStart).rewind(),
		match(`\{xen:`).push(StateCurlyFunctionStart).rewind(),
		match(`\}`).emit(TokenCurlyEnd).pop(),
	},
	StateCurlyVarStart: {
		match(`\{\$([A-Za-z_][A-Za-z0-9_]*)`).emit(TokenCurlyVar).value(1).push(StateCurlyVarInner),
		match(`\}`).pop().rewind(),
	},
	StateCurlyVarInner: {
		match(`\.`).emit(TokenCurlyArrayDim),
		match(`\{\$`).push(StateCurlyStart).rewind(),
		match(`[^.{}\s"']+`).emit(TokenCurlyVarKey),
		match(`\}`).pop().rewind(),
	},
	StateCurlyFunctionStart: {
		match(`\{xen:([A-Za-z0-9_]+)\s*`).emit(TokenCurlyFunction).value(1).push(StateCurlyFunctionInner),
		match(`\}`).pop().rewind(),
	},
	StateCurlyFunctionInner: {
		match(`\s+`),
		match(`\$([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z0-9_]+)*)`).emit(TokenSimpleVariable).value(1),
		match(`[^\s,{}"'$]+`).emit(TokenLiteral),
		match(`,`).emit(TokenCurlyArgSep),
		match(`"`).emit(TokenDoubleQuote).push(StateDoubleQuoted),
		match(`'`).emit(TokenSingleQuote).push(StateSingleQuoted),
		match(curlyOpener).push(StateCurlyStart).rewind(),
		match(`\}`).pop().rewind(),
	},
	StateDoubleQuoted: {
		match(curlyOpener).push(StateCurlyStart).rewind(),
		match(`"`).emit(TokenDoubleQuote).pop(),
		match(`[^"{]+`).emit(TokenLiteral).merge(),
		match(`\{`).emit(TokenLiteral).merge(),
	},
	StateSingleQuoted: {
		match(curlyOpener).push(StateCurlyStart).rewind(),
		match(`'`).emit(TokenSingleQuote).pop(),
		match(`[^'{]+`).emit(TokenLiteral).merge(),
		match(`\{`).emit(TokenLiteral).merge(),
	},
}

// LexerOptions configures a Lexer
type LexerOptions struct {
	MaxDepth int // maximum state stack depth (default DefaultMaxDepth)
}

// Lexer tokenizes one template. It is not safe for concurrent use; create
// one lexer per input.
type Lexer struct {
	input    string
	pos      int
	line     int
	stack    []LexerState
	maxDepth int

	pending *rawToken // token scanned ahead while merging
	err     error     // sticky error
}

// rawToken is a scanned token before merging
type rawToken struct {
	tok   Token
	more  bool
	state LexerState
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string, opts LexerOptions) *Lexer {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Lexer{
		input:    input,
		line:     1,
		stack:    []LexerState{StateStart},
		maxDepth: opts.MaxDepth,
	}
}

// State returns the current top state
func (l *Lexer) State() LexerState {
	return l.stack[len(l.stack)-1]
}

// Depth returns the number of states on the stack, including Start
func (l *Lexer) Depth() int {
	return len(l.stack)
}

// Line returns the current line number
func (l *Lexer) Line() int {
	return l.line
}

// NextToken returns the next token. TokenEOF is returned once the input is
// exhausted and on every call after that. Errors are sticky.
func (l *Lexer) NextToken() (Token, error) {
	raw, err := l.next()
	if err != nil {
		return Token{}, err
	}
	if !raw.more {
		return raw.tok, nil
	}

	tok := raw.tok
	for {
		following, err := l.scan()
		if err != nil {
			// reported on the next call
			return tok, nil
		}
		if following.more && following.tok.Type == tok.Type && following.state == raw.state {
			tok.Value += following.tok.Value
			continue
		}
		l.pending = &following
		return tok, nil
	}
}

// Tokenize returns all tokens up to, but not including, TokenEOF
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		if tok.Type == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) next() (rawToken, error) {
	if l.pending != nil {
		raw := *l.pending
		l.pending = nil
		return raw, nil
	}
	return l.scan()
}

// scan matches rules until one emits a token
func (l *Lexer) scan() (rawToken, error) {
	if l.err != nil {
		return rawToken{}, l.err
	}

	redirects := 0
	for {
		if l.pos >= len(l.input) {
			if len(l.stack) > 1 {
				return rawToken{}, l.fail(&Error{Kind: KindUnterminated, Line: l.line, Found: l.State().String()})
			}
			return rawToken{tok: Token{Type: TokenEOF, Line: l.line}}, nil
		}

		state := l.State()
		rest := l.input[l.pos:]
		rule, loc := longestMatch(lexRules[state], rest)
		if rule == nil {
			return rawToken{}, l.fail(&Error{Kind: KindLexical, Line: l.line, Found: state.String(), Near: excerpt(rest, 20)})
		}

		if rule.redirect {
			redirects++
			if redirects > maxRedirects {
				return rawToken{}, l.fail(&Error{Kind: KindLexical, Line: l.line, Found: state.String(), Near: excerpt(rest, 20)})
			}
			if err := l.apply(rule); err != nil {
				return rawToken{}, err
			}
			continue
		}

		text := rest[:loc[1]]
		value := text
		if rule.group > 0 {
			value = rest[loc[2*rule.group]:loc[2*rule.group+1]]
		}

		line := l.line
		l.pos += len(text)
		l.line += strings.Count(text, "\n")
		if err := l.apply(rule); err != nil {
			return rawToken{}, err
		}

		if !rule.emits {
			redirects = 0
			continue
		}
		return rawToken{tok: Token{Type: rule.token, Value: value, Line: line}, more: rule.more, state: state}, nil
	}
}

// longestMatch returns the rule with the longest match; ties go to the
// earlier rule
func longestMatch(rules []lexRule, input string) (*lexRule, []int) {
	var best *lexRule
	var bestLoc []int
	for i := range rules {
		loc := rules[i].pattern.FindStringSubmatchIndex(input)
		if loc == nil || loc[1] == 0 {
			continue
		}
		if best == nil || loc[1] > bestLoc[1] {
			best = &rules[i]
			bestLoc = loc
		}
	}
	return best, bestLoc
}

func (l *Lexer) apply(rule *lexRule) error {
	switch rule.action {
	case actionPush:
		if len(l.stack) >= l.maxDepth {
			return l.fail(&Error{Kind: KindStackOverflow, Line: l.line, Found: l.State().String(), Limit: l.maxDepth})
		}
		l.stack = append(l.stack, rule.target)
	case actionPop:
		if len(l.stack) == 1 {
			return l.fail(&Error{Kind: KindLexical, Line: l.line, Found: l.State().String(), Near: excerpt(l.input[l.pos:], 20)})
		}
		l.stack = l.stack[:len(l.stack)-1]
	}
	return nil
}

func (l *Lexer) fail(err *Error) error {
	l.err = err
	return err
}

// TokenizeInput is a convenience function to tokenize a complete input
func TokenizeInput(input string) ([]Token, error) {
	return NewLexer(input, LexerOptions{}).Tokenize()
}
