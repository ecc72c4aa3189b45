// File: parser.go
// Title: xentpl Shift-Reduce Parser
// Description: Implements the table-driven parser that consumes the token
//              stream of the lexer and assembles the template syntax tree.
//              The parser keeps an explicit stack of (state, value) entries
//              and a frame stack for the children of open tags.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial recursive descent parser implementation
// - 2026-10-14 v0.2.0: Replaced by an SLR(1) shift-reduce parser for templates

package parser

import (
	xterror "github.com/msto63/xentpl/foundation/core/error"
	xtlog "github.com/msto63/xentpl/foundation/core/log"
	"github.com/msto63/xentpl/foundation/xentpl/ast"
)

// DefaultMaxInputLength is the input limit applied when none is configured
const DefaultMaxInputLength = 1 << 20

// Parser turns template source into a syntax tree. A Parser holds the state
// of one parse and is not safe for concurrent use.
type Parser struct {
	opts   Options
	logger *xtlog.Logger

	stack    []stackEntry
	frames   []*frame
	tree     []ast.Node
	accepted bool
	err      error
}

// Options defines parser configuration
type Options struct {
	Logger         *xtlog.Logger
	MaxStackDepth  int // bound for parser stack, tag nesting and lexer states
	MaxInputLength int // bytes
}

type stackEntry struct {
	state int
	value any
}

// New creates a new parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.MaxStackDepth < 0 || opts.MaxInputLength < 0 {
		return nil, xterror.New("parser limits must not be negative").
			WithCode(xterror.CodeInvalidInput).
			WithOperation("parser.New").
			WithDetail("max_stack_depth", opts.MaxStackDepth).
			WithDetail("max_input_length", opts.MaxInputLength)
	}
	if opts.MaxStackDepth == 0 {
		opts.MaxStackDepth = DefaultMaxDepth
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.Logger == nil {
		opts.Logger = xtlog.GetDefault()
	}

	p := &Parser{
		opts:   opts,
		logger: opts.Logger.WithField("component", "xentpl.parser"),
	}
	p.Reset()
	return p, nil
}

// Parse lexes and parses a complete template
func (p *Parser) Parse(input string) ([]ast.Node, error) {
	p.Reset()

	if len(input) > p.opts.MaxInputLength {
		p.err = &Error{Kind: KindInputTooLong, Line: 1, Limit: p.opts.MaxInputLength, Size: len(input)}
		return nil, p.err
	}

	p.logger.Trace("parsing template", xtlog.Fields{"length": len(input)})

	lexer := NewLexer(input, LexerOptions{MaxDepth: p.opts.MaxStackDepth})
	for {
		tok, err := lexer.NextToken()
		if err != nil {
			p.err = err
			return nil, err
		}
		if err := p.Feed(tok); err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF {
			break
		}
	}

	return p.Tree(), nil
}

// Reset clears all parse state so the parser can be reused
func (p *Parser) Reset() {
	p.stack = append(p.stack[:0], stackEntry{state: 0})
	p.frames = []*frame{{}}
	p.tree = nil
	p.accepted = false
	p.err = nil
}

// Feed advances the parser by one token. Feeding TokenEOF completes the
// parse. The first error is sticky.
func (p *Parser) Feed(tok Token) error {
	if p.err != nil {
		return p.err
	}
	if p.accepted {
		return p.fail(&Error{Kind: KindSyntax, Line: tok.Line, Found: tok.Type.String(), Near: tok.Value})
	}

	for {
		state := p.stack[len(p.stack)-1].state
		act := tables.action[state][tok.Type]

		switch act.kind {
		case actShift:
			if err := p.push(act.target, tok, tok.Line); err != nil {
				return p.fail(err)
			}
			return nil

		case actReduce:
			if err := p.reduce(act.target, tok.Line); err != nil {
				return p.fail(err)
			}

		case actAccept:
			p.accepted = true
			p.logger.Trace("template accepted", xtlog.Fields{"nodes": len(p.tree)})
			return nil

		default:
			return p.fail(&Error{
				Kind:     KindSyntax,
				Line:     tok.Line,
				Found:    tok.Type.String(),
				Near:     tok.Value,
				Expected: tables.expectedTokens(state),
			})
		}
	}
}

// Accepted reports whether the input was accepted
func (p *Parser) Accepted() bool {
	return p.accepted
}

// Tree returns the root nodes after acceptance, nil before
func (p *Parser) Tree() []ast.Node {
	if !p.accepted {
		return nil
	}
	return p.tree
}

func (p *Parser) reduce(prodIndex, line int) error {
	prod := &productions[prodIndex]
	n := len(prod.rhs)

	values := make([]any, n)
	for i, entry := range p.stack[len(p.stack)-n:] {
		values[i] = entry.value
	}
	p.stack = p.stack[:len(p.stack)-n]

	value, err := prod.reduce(p, values)
	if err != nil {
		return err
	}

	top := p.stack[len(p.stack)-1].state
	return p.push(tables.gotos[top][prod.lhs-ntBase], value, line)
}

func (p *Parser) push(state int, value any, line int) error {
	if len(p.stack) >= p.opts.MaxStackDepth {
		return &Error{Kind: KindStackOverflow, Line: line, Limit: p.opts.MaxStackDepth}
	}
	p.stack = append(p.stack, stackEntry{state: state, value: value})
	return nil
}

func (p *Parser) fail(err error) error {
	p.err = err
	p.logger.Trace("parse failed", xtlog.Fields{"error": err.Error()})
	return err
}
