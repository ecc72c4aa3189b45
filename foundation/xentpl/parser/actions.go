// File: actions.go
// Title: xentpl Semantic Actions
// Description: Semantic actions run on reduction. They build syntax tree
//              fragments bottom-up and maintain the frame stack that collects
//              the children of open tags.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.2.0: Initial semantic actions

package parser

import (
	"github.com/msto63/xentpl/foundation/xentpl/ast"
)

// frame collects the nodes of one nesting level; tag is nil for the root
type frame struct {
	tag   *ast.Tag
	nodes []ast.Node
}

// tagValue is the semantic value of the tag nonterminal
type tagValue struct {
	tag  *ast.Tag
	open bool
}

func (p *Parser) current() *frame {
	return p.frames[len(p.frames)-1]
}

func (p *Parser) reduceStart(values []any) (any, error) {
	if len(p.frames) > 1 {
		open := p.current().tag
		return nil, &Error{Kind: KindTagNeverClosed, Line: open.Line, Tag: open.Name}
	}
	p.tree = p.frames[0].nodes
	return nil, nil
}

func (p *Parser) reduceText(values []any) (any, error) {
	tok := values[1].(Token)
	f := p.current()
	if n := len(f.nodes); n > 0 {
		if prev, ok := f.nodes[n-1].(*ast.PlainText); ok {
			prev.Text += tok.Value
			return nil, nil
		}
	}
	f.nodes = append(f.nodes, &ast.PlainText{Text: tok.Value, Line: tok.Line})
	return nil, nil
}

func (p *Parser) reduceCurly(values []any) (any, error) {
	f := p.current()
	f.nodes = append(f.nodes, values[1].(ast.Node))
	return nil, nil
}

func (p *Parser) reduceTag(values []any) (any, error) {
	tv := values[1].(tagValue)
	f := p.current()
	f.nodes = append(f.nodes, tv.tag)
	if !tv.open {
		return nil, nil
	}
	if len(p.frames)-1 >= p.opts.MaxStackDepth {
		return nil, &Error{Kind: KindStackOverflow, Line: tv.tag.Line, Tag: tv.tag.Name, Limit: p.opts.MaxStackDepth}
	}
	p.frames = append(p.frames, &frame{tag: tv.tag})
	return nil, nil
}

func (p *Parser) reduceTagClose(values []any) (any, error) {
	tok := values[1].(Token)
	if len(p.frames) == 1 {
		return nil, &Error{Kind: KindTagCloseUnexpected, Line: tok.Line, Tag: tok.Value}
	}
	f := p.current()
	if f.tag.Name != tok.Value {
		return nil, &Error{Kind: KindTagCloseMismatch, Line: tok.Line, Tag: tok.Value, Expected: []string{f.tag.Name}}
	}
	p.frames = p.frames[:len(p.frames)-1]
	f.tag.Children = f.nodes
	return nil, nil
}

func reduceNone(*Parser, []any) (any, error) {
	return nil, nil
}

func reduceFirst(_ *Parser, values []any) (any, error) {
	return values[0], nil
}

func newTag(values []any) *ast.Tag {
	tok := values[0].(Token)
	return &ast.Tag{Name: tok.Value, Attributes: values[1].(ast.Attributes), Line: tok.Line}
}

func reduceSelfClosingTag(_ *Parser, values []any) (any, error) {
	return tagValue{tag: newTag(values)}, nil
}

func reduceOpeningTag(_ *Parser, values []any) (any, error) {
	return tagValue{tag: newTag(values), open: true}, nil
}

func reduceAttribute(_ *Parser, values []any) (any, error) {
	attrs := values[0].(ast.Attributes)
	name := values[1].(Token).Value
	parts := values[3].([]ast.Part)
	return attrs.Set(name, &ast.QuotedString{Parts: parts}), nil
}

func reduceNoAttributes(*Parser, []any) (any, error) {
	return ast.Attributes(nil), nil
}

func reduceCurlyVar(_ *Parser, values []any) (any, error) {
	tok := values[0].(Token)
	return &ast.CurlyVar{Name: tok.Value, Keys: values[1].([]ast.Key), Line: tok.Line}, nil
}

func reduceKeyLiteral(_ *Parser, values []any) (any, error) {
	keys := values[0].([]ast.Key)
	return append(keys, &ast.Literal{Value: values[2].(Token).Value}), nil
}

func reduceKeyVar(_ *Parser, values []any) (any, error) {
	keys := values[0].([]ast.Key)
	return append(keys, values[2].(*ast.CurlyVar)), nil
}

func reduceNoKeys(*Parser, []any) (any, error) {
	return []ast.Key(nil), nil
}

func reduceCurlyFunction(_ *Parser, values []any) (any, error) {
	tok := values[0].(Token)
	rest := values[2].([]ast.Argument)
	args := make([]ast.Argument, 0, 1+len(rest))
	args = append(args, values[1].(ast.Argument))
	args = append(args, rest...)
	return &ast.CurlyFunction{Name: tok.Value, Arguments: args, Line: tok.Line}, nil
}

func reduceSimpleVariable(_ *Parser, values []any) (any, error) {
	return &ast.SimpleVariable{Name: values[0].(Token).Value}, nil
}

func reduceLiteralArg(_ *Parser, values []any) (any, error) {
	return &ast.Literal{Value: values[0].(Token).Value}, nil
}

func reduceExtraArg(_ *Parser, values []any) (any, error) {
	args := values[0].([]ast.Argument)
	return append(args, values[2].(ast.Argument)), nil
}

func reduceNoArgs(*Parser, []any) (any, error) {
	return []ast.Argument(nil), nil
}

// reduceQuoted turns a quoted function argument into a Literal when it holds
// at most one literal part
func reduceQuoted(_ *Parser, values []any) (any, error) {
	parts := values[1].([]ast.Part)
	switch {
	case len(parts) == 0:
		return &ast.Literal{}, nil
	case len(parts) == 1:
		if lit, ok := parts[0].(*ast.Literal); ok {
			return lit, nil
		}
	}
	return &ast.QuotedString{Parts: parts}, nil
}

func reducePartLiteral(_ *Parser, values []any) (any, error) {
	parts := values[0].([]ast.Part)
	text := values[1].(Token).Value
	if n := len(parts); n > 0 {
		if prev, ok := parts[n-1].(*ast.Literal); ok {
			prev.Value += text
			return parts, nil
		}
	}
	return append(parts, &ast.Literal{Value: text}), nil
}

func reducePartCurly(_ *Parser, values []any) (any, error) {
	parts := values[0].([]ast.Part)
	return append(parts, values[1].(ast.Part)), nil
}

func reduceNoParts(*Parser, []any) (any, error) {
	return []ast.Part(nil), nil
}
