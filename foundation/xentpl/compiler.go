// File: compiler.go
// Title: xentpl Template Compiler
// Description: Front end entry point that turns template source into a
//              syntax tree. Each call runs an independent parser, so a
//              Compiler can be shared between goroutines. Failures are
//              wrapped into coded, localisable foundation errors.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.2.0: Initial implementation

package xentpl

import (
	"errors"

	xterror "github.com/msto63/xentpl/foundation/core/error"
	xtlog "github.com/msto63/xentpl/foundation/core/log"
	"github.com/msto63/xentpl/foundation/xentpl/ast"
	"github.com/msto63/xentpl/foundation/xentpl/parser"
)

// Compiler compiles template source into syntax trees
type Compiler struct {
	opts   Options
	logger *xtlog.Logger
}

// Options defines compiler configuration. Zero limits select the parser
// defaults.
type Options struct {
	Logger         *xtlog.Logger
	MaxStackDepth  int
	MaxInputLength int
}

// New creates a compiler with the given options
func New(opts Options) (*Compiler, error) {
	if opts.Logger == nil {
		opts.Logger = xtlog.GetDefault()
	}

	c := &Compiler{opts: opts, logger: opts.Logger.WithField("component", "xentpl.compiler")}
	if _, err := c.newParser(); err != nil {
		return nil, xterror.Wrap(err, "invalid compiler options").WithOperation("xentpl.New")
	}
	return c, nil
}

// Compile parses the source of the template named title
func (c *Compiler) Compile(title, source string) ([]ast.Node, error) {
	timer := c.logger.StartTimer("compile").
		WithField("title", title).
		WithField("length", len(source))

	p, err := c.newParser()
	if err != nil {
		timer.StopWithError(err)
		return nil, err
	}

	tree, err := p.Parse(source)
	if err != nil {
		cerr := wrapError(title, err)
		timer.StopWithError(cerr)
		return nil, cerr
	}

	timer.WithField("nodes", len(tree)).Stop()
	return tree, nil
}

// Tokenize runs only the lexer and returns the token stream without the
// final EOF token
func (c *Compiler) Tokenize(source string) ([]parser.Token, error) {
	limit := c.opts.MaxInputLength
	if limit == 0 {
		limit = parser.DefaultMaxInputLength
	}
	if len(source) > limit {
		return nil, wrapError("", &parser.Error{Kind: parser.KindInputTooLong, Line: 1, Limit: limit, Size: len(source)})
	}

	tokens, err := parser.NewLexer(source, parser.LexerOptions{MaxDepth: c.opts.MaxStackDepth}).Tokenize()
	if err != nil {
		return nil, wrapError("", err)
	}
	return tokens, nil
}

func (c *Compiler) newParser() (*parser.Parser, error) {
	return parser.New(parser.Options{
		Logger:         c.opts.Logger,
		MaxStackDepth:  c.opts.MaxStackDepth,
		MaxInputLength: c.opts.MaxInputLength,
	})
}

// ErrorCode maps a parser error kind to the foundation error code
func ErrorCode(kind parser.ErrorKind) xterror.Code {
	switch kind {
	case parser.KindLexical, parser.KindUnterminated:
		return xterror.CodeTemplateLexical
	case parser.KindSyntax:
		return xterror.CodeTemplateSyntax
	case parser.KindTagCloseUnexpected, parser.KindTagCloseMismatch, parser.KindTagNeverClosed:
		return xterror.CodeTemplateStructure
	case parser.KindStackOverflow, parser.KindInputTooLong:
		return xterror.CodeTemplateLimit
	default:
		return xterror.CodeInternal
	}
}

func wrapError(title string, err error) error {
	var perr *parser.Error
	if !errors.As(err, &perr) {
		return xterror.Wrap(err, "template compilation failed").
			WithCode(xterror.CodeInternal).
			WithOperation("xentpl.Compile").
			WithDetail("title", title)
	}

	args := perr.MessageArgs()
	args["title"] = title

	return xterror.Wrap(perr, "template compilation failed").
		WithCode(ErrorCode(perr.Kind)).
		WithOperation("xentpl.Compile").
		WithMessage(perr.MessageKey(), args).
		WithDetail("title", title).
		WithDetail("kind", perr.Kind.String()).
		WithDetail("line", perr.Line)
}
